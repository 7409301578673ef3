package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"smarthome-backend/internal/model"
)

// ErrNotFound is returned when a requested entity id does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a referential-integrity failure, e.g. an audit
// entry pointing at a target that does not exist. Its message is part of the
// API contract.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Store defines the interface for all database operations. Update calls on
// trackable entities return the ids of the audit entries they appended, for
// notification dispatch.
type Store interface {
	DB() *gorm.DB

	CreateHouse(ctx context.Context, p HouseParams) (model.House, error)
	GetHouse(ctx context.Context, id int64) (HouseDetail, error)
	ListHouses(ctx context.Context) ([]model.House, error)
	UpdateHouse(ctx context.Context, id int64, p HouseParams) (model.House, error)
	DeleteHouse(ctx context.Context, id int64) error

	CreateRoom(ctx context.Context, p RoomParams) (model.Room, error)
	GetRoom(ctx context.Context, id int64) (RoomDetail, error)
	ListRooms(ctx context.Context) ([]model.Room, error)
	UpdateRoom(ctx context.Context, id int64, p RoomParams) (model.Room, []int64, error)
	DeleteRoom(ctx context.Context, id int64) error

	CreateLight(ctx context.Context, p LightParams) (model.Light, error)
	GetLight(ctx context.Context, id int64) (model.Light, error)
	ListLights(ctx context.Context) ([]model.Light, error)
	UpdateLight(ctx context.Context, id int64, p LightParams) (model.Light, []int64, error)
	DeleteLight(ctx context.Context, id int64) error

	CreateThermostat(ctx context.Context, p ThermostatParams) (model.Thermostat, error)
	GetThermostat(ctx context.Context, id int64) (model.Thermostat, error)
	ListThermostats(ctx context.Context) ([]model.Thermostat, error)
	UpdateThermostat(ctx context.Context, id int64, p ThermostatParams) (model.Thermostat, []int64, error)
	DeleteThermostat(ctx context.Context, id int64) error

	AppendTrackRecord(ctx context.Context, rec *model.TrackRecord) error
	ListTrackRecords(ctx context.Context, kind *model.TargetKind) ([]TrackRecordView, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection for collaborators that manage their
// own rows (push subscriptions, notification workers).
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// translateErr maps gorm's not-found sentinel onto the store's.
func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
