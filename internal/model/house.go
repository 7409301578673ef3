package model

import "time"

// House represents a house grouping rooms and thermostats.
type House struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created"`
	UpdatedAt time.Time `gorm:"not null" json:"modified"`

	// Associations
	Rooms       []Room       `gorm:"foreignKey:HouseID" json:"-"`
	Thermostats []Thermostat `gorm:"foreignKey:HouseID" json:"-"`
}
