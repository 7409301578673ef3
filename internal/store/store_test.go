package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smarthome-backend/internal/model"
)

var testDBSeq int64

// newTestStore opens a fresh in-memory SQLite database with the full schema.
func newTestStore(t *testing.T) Store {
	t.Helper()

	dsn := fmt.Sprintf("file:storetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.House{},
		&model.Room{},
		&model.Thermostat{},
		&model.Light{},
		&model.TrackRecord{},
		&model.PushSubscription{},
		&model.SubscriptionTarget{},
	))

	return NewGormStore(db)
}

// newTestHouse creates a house to hang fixtures off.
func newTestHouse(t *testing.T, s Store) model.House {
	t.Helper()
	house, err := s.CreateHouse(context.Background(), HouseParams{Name: "Villa"})
	require.NoError(t, err)
	return house
}

func TestCreateNeverEmitsTrackRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	house := newTestHouse(t, s)

	room, err := s.CreateRoom(ctx, RoomParams{Name: "Kitchen", HouseID: house.ID, CurrentTemperature: 21.5})
	require.NoError(t, err)

	_, err = s.CreateLight(ctx, LightParams{Name: "Ceiling", RoomID: room.ID, State: model.LightOn})
	require.NoError(t, err)

	_, err = s.CreateThermostat(ctx, ThermostatParams{
		Name: "Hallway", HouseID: house.ID, Mode: model.ModeCool,
		CurrentTemperature: 30, TemperatureSetPoint: 45,
	})
	require.NoError(t, err)

	records, err := s.ListTrackRecords(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, records, "initial creation must not produce audit entries")
}

func TestUpdateThermostatTemperatureOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	house := newTestHouse(t, s)

	thermostat, err := s.CreateThermostat(ctx, ThermostatParams{
		Name: "Hallway", HouseID: house.ID, Mode: model.ModeCool,
		CurrentTemperature: 30, TemperatureSetPoint: 45,
	})
	require.NoError(t, err)

	updated, recordIDs, err := s.UpdateThermostat(ctx, thermostat.ID, ThermostatParams{
		Name: "Hallway", HouseID: house.ID, Mode: model.ModeCool,
		CurrentTemperature: 66, TemperatureSetPoint: 45,
	})
	require.NoError(t, err)
	assert.Equal(t, 66.0, updated.CurrentTemperature)
	assert.Len(t, recordIDs, 1)

	records, err := s.ListTrackRecords(ctx, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Temperature", rec.StateType)
	assert.Equal(t, "30.00", rec.FromState)
	assert.Equal(t, "66.00", rec.ToState)
	assert.Equal(t, model.KindThermostat, rec.TargetKind)
	assert.Equal(t, thermostat.ID, rec.TargetID)
	assert.Equal(t, "Hallway", rec.Name)
}

func TestUpdateThermostatAllMonitoredFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	house := newTestHouse(t, s)

	thermostat, err := s.CreateThermostat(ctx, ThermostatParams{
		Name: "Hallway", HouseID: house.ID, Mode: model.ModeCool,
		CurrentTemperature: 30, TemperatureSetPoint: 45,
	})
	require.NoError(t, err)

	_, recordIDs, err := s.UpdateThermostat(ctx, thermostat.ID, ThermostatParams{
		Name: "Hallway", HouseID: house.ID, Mode: model.ModeFan,
		CurrentTemperature: 66, TemperatureSetPoint: 89,
	})
	require.NoError(t, err)
	assert.Len(t, recordIDs, 3, "one independent record per changed field")

	records, err := s.ListTrackRecords(ctx, nil)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Newest first: records are appended temperature, set point, mode.
	assert.Equal(t, "Mode", records[0].StateType)
	assert.Equal(t, "cool", records[0].FromState)
	assert.Equal(t, "fan", records[0].ToState)

	assert.Equal(t, "Temperature set point", records[1].StateType)
	assert.Equal(t, "45.00", records[1].FromState)
	assert.Equal(t, "89.00", records[1].ToState)

	assert.Equal(t, "Temperature", records[2].StateType)
	assert.Equal(t, "30.00", records[2].FromState)
	assert.Equal(t, "66.00", records[2].ToState)
}

func TestUpdateUnmonitoredFieldsOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	house := newTestHouse(t, s)
	other, err := s.CreateHouse(ctx, HouseParams{Name: "Cabin"})
	require.NoError(t, err)

	room, err := s.CreateRoom(ctx, RoomParams{Name: "Kitchen", HouseID: house.ID, CurrentTemperature: 21.5})
	require.NoError(t, err)

	// Rename and move house; current_temperature stays put.
	moved, recordIDs, err := s.UpdateRoom(ctx, room.ID, RoomParams{
		Name: "Pantry", HouseID: other.ID, CurrentTemperature: 21.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pantry", moved.Name)
	assert.Equal(t, other.ID, moved.HouseID)
	assert.Empty(t, recordIDs)

	records, err := s.ListTrackRecords(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestUpdateLightState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	house := newTestHouse(t, s)

	room, err := s.CreateRoom(ctx, RoomParams{Name: "Kitchen", HouseID: house.ID, CurrentTemperature: 20})
	require.NoError(t, err)
	light, err := s.CreateLight(ctx, LightParams{Name: "Ceiling", RoomID: room.ID, State: model.LightOff})
	require.NoError(t, err)

	_, recordIDs, err := s.UpdateLight(ctx, light.ID, LightParams{
		Name: "Ceiling", RoomID: room.ID, State: model.LightOn,
	})
	require.NoError(t, err)
	require.Len(t, recordIDs, 1)

	records, err := s.ListTrackRecords(ctx, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "State", records[0].StateType)
	assert.Equal(t, "off", records[0].FromState)
	assert.Equal(t, "on", records[0].ToState)
	assert.Equal(t, model.KindLight, records[0].TargetKind)
}

func TestDeleteThermostatCascadesTrackRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	house := newTestHouse(t, s)

	thermostat, err := s.CreateThermostat(ctx, ThermostatParams{
		Name: "Hallway", HouseID: house.ID, Mode: model.ModeCool,
		CurrentTemperature: 30, TemperatureSetPoint: 45,
	})
	require.NoError(t, err)

	_, recordIDs, err := s.UpdateThermostat(ctx, thermostat.ID, ThermostatParams{
		Name: "Hallway", HouseID: house.ID, Mode: model.ModeHeat,
		CurrentTemperature: 31, TemperatureSetPoint: 45,
	})
	require.NoError(t, err)
	require.Len(t, recordIDs, 2)

	require.NoError(t, s.DeleteThermostat(ctx, thermostat.ID))

	_, err = s.GetThermostat(ctx, thermostat.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	records, err := s.ListTrackRecords(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, records, "audit entries must vanish with their target")
}

func TestDeleteHouseCascadesEverything(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	house := newTestHouse(t, s)

	room, err := s.CreateRoom(ctx, RoomParams{Name: "Kitchen", HouseID: house.ID, CurrentTemperature: 20})
	require.NoError(t, err)
	light, err := s.CreateLight(ctx, LightParams{Name: "Ceiling", RoomID: room.ID, State: model.LightOff})
	require.NoError(t, err)
	thermostat, err := s.CreateThermostat(ctx, ThermostatParams{
		Name: "Hallway", HouseID: house.ID, Mode: model.ModeOff,
		CurrentTemperature: 20, TemperatureSetPoint: 22,
	})
	require.NoError(t, err)

	// Produce audit entries for every kind.
	_, _, err = s.UpdateRoom(ctx, room.ID, RoomParams{Name: "Kitchen", HouseID: house.ID, CurrentTemperature: 23})
	require.NoError(t, err)
	_, _, err = s.UpdateLight(ctx, light.ID, LightParams{Name: "Ceiling", RoomID: room.ID, State: model.LightOn})
	require.NoError(t, err)
	_, _, err = s.UpdateThermostat(ctx, thermostat.ID, ThermostatParams{
		Name: "Hallway", HouseID: house.ID, Mode: model.ModeAuto,
		CurrentTemperature: 20, TemperatureSetPoint: 22,
	})
	require.NoError(t, err)

	records, err := s.ListTrackRecords(ctx, nil)
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.NoError(t, s.DeleteHouse(ctx, house.ID))

	_, err = s.GetRoom(ctx, room.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetLight(ctx, light.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetThermostat(ctx, thermostat.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	records, err = s.ListTrackRecords(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAppendTrackRecordValidatesTarget(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := model.TrackRecord{
		Name:       "Ghost",
		TargetKind: model.KindRoom,
		TargetID:   999,
		StateType:  "Temperature",
		FromState:  "20.00",
		ToState:    "21.00",
	}
	err := s.AppendTrackRecord(ctx, &rec)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "room with id 999 does not exist!", verr.Message)

	records, err := s.ListTrackRecords(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, records, "failed validation must not persist anything")
}

func TestAppendTrackRecordWithoutKindSkipsValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := model.TrackRecord{Name: "Orphan", StateType: "State", FromState: "on", ToState: "off"}
	require.NoError(t, s.AppendTrackRecord(ctx, &rec))

	records, err := s.ListTrackRecords(ctx, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Display)
}

func TestListTrackRecordsFilteredByKind(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	house := newTestHouse(t, s)

	room, err := s.CreateRoom(ctx, RoomParams{Name: "Kitchen", HouseID: house.ID, CurrentTemperature: 20})
	require.NoError(t, err)
	light, err := s.CreateLight(ctx, LightParams{Name: "Ceiling", RoomID: room.ID, State: model.LightOff})
	require.NoError(t, err)
	thermostat, err := s.CreateThermostat(ctx, ThermostatParams{
		Name: "Hallway", HouseID: house.ID, Mode: model.ModeOff,
		CurrentTemperature: 20, TemperatureSetPoint: 22,
	})
	require.NoError(t, err)

	_, _, err = s.UpdateRoom(ctx, room.ID, RoomParams{Name: "Kitchen", HouseID: house.ID, CurrentTemperature: 23})
	require.NoError(t, err)
	_, _, err = s.UpdateLight(ctx, light.ID, LightParams{Name: "Ceiling", RoomID: room.ID, State: model.LightOn})
	require.NoError(t, err)
	_, _, err = s.UpdateThermostat(ctx, thermostat.ID, ThermostatParams{
		Name: "Hallway", HouseID: house.ID, Mode: model.ModeHeat,
		CurrentTemperature: 20, TemperatureSetPoint: 22,
	})
	require.NoError(t, err)

	kind := model.KindLight
	lightRecords, err := s.ListTrackRecords(ctx, &kind)
	require.NoError(t, err)
	require.Len(t, lightRecords, 1)
	assert.Equal(t, model.KindLight, lightRecords[0].TargetKind)
	assert.Equal(t, light.ID, lightRecords[0].TargetID)

	all, err := s.ListTrackRecords(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Descending by modification time: thermostat, light, room.
	assert.Equal(t, model.KindThermostat, all[0].TargetKind)
	assert.Equal(t, model.KindLight, all[1].TargetKind)
	assert.Equal(t, model.KindRoom, all[2].TargetKind)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].UpdatedAt.After(all[i-1].UpdatedAt))
	}
}

func TestTrackRecordDisplay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	house := newTestHouse(t, s)

	room, err := s.CreateRoom(ctx, RoomParams{Name: "Kitchen", HouseID: house.ID, CurrentTemperature: 20})
	require.NoError(t, err)
	_, _, err = s.UpdateRoom(ctx, room.ID, RoomParams{Name: "Kitchen", HouseID: house.ID, CurrentTemperature: 23.5})
	require.NoError(t, err)

	records, err := s.ListTrackRecords(ctx, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	expected := fmt.Sprintf("[Kitchen] Temperature has been changed from 20.00 to 23.50 at %s",
		records[0].UpdatedAt.Format(time.RFC3339))
	assert.Equal(t, expected, records[0].Display)
}

func TestGetHouseIncludesChildIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	house := newTestHouse(t, s)

	room1, err := s.CreateRoom(ctx, RoomParams{Name: "Kitchen", HouseID: house.ID, CurrentTemperature: 20})
	require.NoError(t, err)
	room2, err := s.CreateRoom(ctx, RoomParams{Name: "Bedroom", HouseID: house.ID, CurrentTemperature: 19})
	require.NoError(t, err)
	thermostat, err := s.CreateThermostat(ctx, ThermostatParams{
		Name: "Hallway", HouseID: house.ID, Mode: model.ModeOff,
		CurrentTemperature: 20, TemperatureSetPoint: 22,
	})
	require.NoError(t, err)
	light, err := s.CreateLight(ctx, LightParams{Name: "Ceiling", RoomID: room1.ID, State: model.LightOff})
	require.NoError(t, err)

	detail, err := s.GetHouse(ctx, house.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{room1.ID, room2.ID}, detail.RoomIDs)
	assert.Equal(t, []int64{thermostat.ID}, detail.ThermostatIDs)

	roomDetail, err := s.GetRoom(ctx, room1.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{light.ID}, roomDetail.LightIDs)
}

func TestCreateRoomRequiresHouse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateRoom(ctx, RoomParams{Name: "Kitchen", HouseID: 42, CurrentTemperature: 20})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "house with id 42 does not exist!", verr.Message)
}

func TestCreateThermostatRejectsOutOfRangeTemperature(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	house := newTestHouse(t, s)

	_, err := s.CreateThermostat(ctx, ThermostatParams{
		Name: "Hallway", HouseID: house.ID, Mode: model.ModeOff,
		CurrentTemperature: 1234.5, TemperatureSetPoint: 22,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestUpdateMissingEntityReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpdateHouse(ctx, 7, HouseParams{Name: "Nowhere"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = s.UpdateRoom(ctx, 7, RoomParams{Name: "Nowhere", HouseID: 1, CurrentTemperature: 20})
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.DeleteLight(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestThermostatModeDefaultsToOff(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	house := newTestHouse(t, s)

	thermostat, err := s.CreateThermostat(ctx, ThermostatParams{
		Name: "Hallway", HouseID: house.ID,
		CurrentTemperature: 20, TemperatureSetPoint: 22,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ModeOff, thermostat.Mode)
}
