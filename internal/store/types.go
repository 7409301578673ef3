package store

import "smarthome-backend/internal/model"

// HouseParams is the full writable field set of a house.
type HouseParams struct {
	Name string
}

// RoomParams is the full writable field set of a room.
type RoomParams struct {
	Name               string
	HouseID            int64
	CurrentTemperature float64
}

// LightParams is the full writable field set of a light.
type LightParams struct {
	Name   string
	RoomID int64
	State  model.LightState
}

// ThermostatParams is the full writable field set of a thermostat.
type ThermostatParams struct {
	Name                string
	HouseID             int64
	Mode                model.Mode
	CurrentTemperature  float64
	TemperatureSetPoint float64
}

// HouseDetail is a house with the ids of its rooms and thermostats, computed
// at read time.
type HouseDetail struct {
	model.House
	RoomIDs       []int64 `json:"rooms"`
	ThermostatIDs []int64 `json:"thermostats"`
}

// RoomDetail is a room with the ids of its lights, computed at read time.
type RoomDetail struct {
	model.Room
	LightIDs []int64 `json:"lights"`
}

// TrackRecordView is an audit entry plus its rendered display line. Display
// is empty when the record's target can no longer be resolved.
type TrackRecordView struct {
	model.TrackRecord
	Display string `json:"display,omitempty"`
}
