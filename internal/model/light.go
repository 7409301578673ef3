package model

import (
	"time"

	"smarthome-backend/internal/track"
)

// LightState is the on/off state of a light.
type LightState string

const (
	LightOn  LightState = "on"
	LightOff LightState = "off"
)

// Valid reports whether s is a known light state.
func (s LightState) Valid() bool {
	return s == LightOn || s == LightOff
}

// Light represents a light fixture inside a room. Its state is a monitored
// field.
type Light struct {
	ID     int64      `gorm:"primaryKey" json:"id"`
	Name   string     `gorm:"size:200;not null" json:"name"`
	RoomID int64      `gorm:"index;not null" json:"room"`
	State  LightState `gorm:"size:3;not null;default:off" json:"state"`

	CreatedAt time.Time `gorm:"not null" json:"created"`
	UpdatedAt time.Time `gorm:"not null" json:"modified"`
}

// LightMonitoredFields is the audit order for light updates.
var LightMonitoredFields = []track.Field{track.FieldState}

// MonitoredValues returns the light's monitored field values in their
// canonical string form.
func (l Light) MonitoredValues() map[track.Field]string {
	return map[track.Field]string{
		track.FieldState: string(l.State),
	}
}
