package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"smarthome-backend/internal/model"
	"smarthome-backend/internal/track"
)

// requireRoom fails with a ValidationError when the referenced room does not
// exist.
func requireRoom(tx *gorm.DB, id int64) error {
	var count int64
	if err := tx.Model(&model.Room{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &ValidationError{Message: fmt.Sprintf("room with id %d does not exist!", id)}
	}
	return nil
}

func normalizeLightState(state model.LightState) (model.LightState, error) {
	if state == "" {
		return model.LightOff, nil
	}
	if !state.Valid() {
		return "", &ValidationError{Message: fmt.Sprintf("invalid light state %q", state)}
	}
	return state, nil
}

// CreateLight inserts a new light. Initial creation never emits audit
// entries.
func (s *gormStore) CreateLight(ctx context.Context, p LightParams) (model.Light, error) {
	state, err := normalizeLightState(p.State)
	if err != nil {
		return model.Light{}, err
	}

	light := model.Light{Name: p.Name, RoomID: p.RoomID, State: state}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRoom(tx, p.RoomID); err != nil {
			return err
		}
		return tx.Create(&light).Error
	})
	if err != nil {
		return model.Light{}, err
	}
	return light, nil
}

func (s *gormStore) GetLight(ctx context.Context, id int64) (model.Light, error) {
	var light model.Light
	if err := s.db.WithContext(ctx).First(&light, id).Error; err != nil {
		return model.Light{}, translateErr(err)
	}
	return light, nil
}

func (s *gormStore) ListLights(ctx context.Context) ([]model.Light, error) {
	var lights []model.Light
	if err := s.db.WithContext(ctx).Order("id").Find(&lights).Error; err != nil {
		return nil, err
	}
	return lights, nil
}

// UpdateLight applies the full field set to an existing light, auditing a
// state flip before the row is saved. One transaction.
func (s *gormStore) UpdateLight(ctx context.Context, id int64, p LightParams) (model.Light, []int64, error) {
	state, err := normalizeLightState(p.State)
	if err != nil {
		return model.Light{}, nil, err
	}

	var light model.Light
	var recordIDs []int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&light, id).Error; err != nil {
			return translateErr(err)
		}
		tracker := track.New(light.MonitoredValues())

		if p.RoomID != light.RoomID {
			if err := requireRoom(tx, p.RoomID); err != nil {
				return err
			}
		}
		light.Name = p.Name
		light.RoomID = p.RoomID
		light.State = state

		changes := tracker.Diff(model.LightMonitoredFields, light.MonitoredValues())
		ids, err := appendChangeRecords(tx, model.KindLight, light.ID, light.Name, changes)
		if err != nil {
			return err
		}
		recordIDs = ids
		return tx.Save(&light).Error
	})
	if err != nil {
		return model.Light{}, nil, err
	}
	return light, recordIDs, nil
}

// DeleteLight removes a light and its audit entries in one transaction.
func (s *gormStore) DeleteLight(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var light model.Light
		if err := tx.First(&light, id).Error; err != nil {
			return translateErr(err)
		}
		if err := removeTargetRows(tx, model.KindLight, []int64{id}); err != nil {
			return err
		}
		return tx.Delete(&model.Light{}, id).Error
	})
}
