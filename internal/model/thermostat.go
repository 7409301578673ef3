package model

import (
	"time"

	"smarthome-backend/internal/track"
)

// Mode is the operating mode of a thermostat.
type Mode string

const (
	ModeOff  Mode = "off"
	ModeFan  Mode = "fan"
	ModeAuto Mode = "auto"
	ModeCool Mode = "cool"
	ModeHeat Mode = "heat"
)

// Valid reports whether m is one of the known thermostat modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeOff, ModeFan, ModeAuto, ModeCool, ModeHeat:
		return true
	}
	return false
}

// Thermostat represents a thermostat mounted in a house. Mode, current
// temperature and the set point are monitored fields.
type Thermostat struct {
	ID                  int64   `gorm:"primaryKey" json:"id"`
	Name                string  `gorm:"size:200;not null" json:"name"`
	HouseID             int64   `gorm:"index;not null" json:"house"`
	Mode                Mode    `gorm:"size:5;not null;default:off" json:"mode"`
	CurrentTemperature  float64 `gorm:"type:decimal(5,2);not null" json:"current_temperature"`
	TemperatureSetPoint float64 `gorm:"type:decimal(5,2);not null" json:"temperature_set_point"`

	CreatedAt time.Time `gorm:"not null" json:"created"`
	UpdatedAt time.Time `gorm:"not null" json:"modified"`
}

// ThermostatMonitoredFields is the audit order for thermostat updates:
// temperatures first, mode last.
var ThermostatMonitoredFields = []track.Field{
	track.FieldCurrentTemperature,
	track.FieldTemperatureSetPoint,
	track.FieldMode,
}

// MonitoredValues returns the thermostat's monitored field values in their
// canonical string form.
func (t Thermostat) MonitoredValues() map[track.Field]string {
	return map[track.Field]string{
		track.FieldCurrentTemperature:  FormatDecimal(t.CurrentTemperature),
		track.FieldTemperatureSetPoint: FormatDecimal(t.TemperatureSetPoint),
		track.FieldMode:                string(t.Mode),
	}
}
