package model

import (
	"time"

	"smarthome-backend/internal/track"
)

// Room represents a single room inside a house. Its current temperature is a
// monitored field: every change on update is written to the audit log.
type Room struct {
	ID                 int64   `gorm:"primaryKey" json:"id"`
	Name               string  `gorm:"size:200;not null" json:"name"`
	HouseID            int64   `gorm:"index;not null" json:"house"`
	CurrentTemperature float64 `gorm:"type:decimal(5,2);not null" json:"current_temperature"`

	CreatedAt time.Time `gorm:"not null" json:"created"`
	UpdatedAt time.Time `gorm:"not null" json:"modified"`

	// Associations
	Lights []Light `gorm:"foreignKey:RoomID" json:"-"`
}

// RoomMonitoredFields is the audit order for room updates.
var RoomMonitoredFields = []track.Field{track.FieldCurrentTemperature}

// MonitoredValues returns the room's monitored field values in their
// canonical string form.
func (r Room) MonitoredValues() map[track.Field]string {
	return map[track.Field]string{
		track.FieldCurrentTemperature: FormatDecimal(r.CurrentTemperature),
	}
}
