package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"smarthome-backend/internal/model"
	"smarthome-backend/internal/track"
)

func validateRoomParams(p RoomParams) error {
	if !model.ValidDecimal(p.CurrentTemperature) {
		return &ValidationError{
			Message: fmt.Sprintf("current_temperature %s is out of range", model.FormatDecimal(p.CurrentTemperature)),
		}
	}
	return nil
}

// CreateRoom inserts a new room. Initial creation never emits audit entries,
// whatever the field values.
func (s *gormStore) CreateRoom(ctx context.Context, p RoomParams) (model.Room, error) {
	if err := validateRoomParams(p); err != nil {
		return model.Room{}, err
	}

	room := model.Room{
		Name:               p.Name,
		HouseID:            p.HouseID,
		CurrentTemperature: p.CurrentTemperature,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireHouse(tx, p.HouseID); err != nil {
			return err
		}
		return tx.Create(&room).Error
	})
	if err != nil {
		return model.Room{}, err
	}
	return room, nil
}

func (s *gormStore) GetRoom(ctx context.Context, id int64) (RoomDetail, error) {
	var detail RoomDetail
	if err := s.db.WithContext(ctx).First(&detail.Room, id).Error; err != nil {
		return RoomDetail{}, translateErr(err)
	}
	if err := s.db.WithContext(ctx).Model(&model.Light{}).Where("room_id = ?", id).
		Order("id").Pluck("id", &detail.LightIDs).Error; err != nil {
		return RoomDetail{}, err
	}
	return detail, nil
}

func (s *gormStore) ListRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).Order("id").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// UpdateRoom applies the full field set to an existing room. The row as
// loaded inside the transaction is the change-tracking snapshot: one audit
// entry is appended per monitored field whose value differs, then the row is
// saved. Everything commits or rolls back together.
func (s *gormStore) UpdateRoom(ctx context.Context, id int64, p RoomParams) (model.Room, []int64, error) {
	if err := validateRoomParams(p); err != nil {
		return model.Room{}, nil, err
	}

	var room model.Room
	var recordIDs []int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&room, id).Error; err != nil {
			return translateErr(err)
		}
		tracker := track.New(room.MonitoredValues())

		if p.HouseID != room.HouseID {
			if err := requireHouse(tx, p.HouseID); err != nil {
				return err
			}
		}
		room.Name = p.Name
		room.HouseID = p.HouseID
		room.CurrentTemperature = p.CurrentTemperature

		changes := tracker.Diff(model.RoomMonitoredFields, room.MonitoredValues())
		ids, err := appendChangeRecords(tx, model.KindRoom, room.ID, room.Name, changes)
		if err != nil {
			return err
		}
		recordIDs = ids
		return tx.Save(&room).Error
	})
	if err != nil {
		return model.Room{}, nil, err
	}
	return room, recordIDs, nil
}

// DeleteRoom removes a room, its lights and all their audit entries in one
// transaction.
func (s *gormStore) DeleteRoom(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room model.Room
		if err := tx.First(&room, id).Error; err != nil {
			return translateErr(err)
		}

		var lightIDs []int64
		if err := tx.Model(&model.Light{}).Where("room_id = ?", id).
			Pluck("id", &lightIDs).Error; err != nil {
			return err
		}

		if err := removeTargetRows(tx, model.KindLight, lightIDs); err != nil {
			return err
		}
		if err := removeTargetRows(tx, model.KindRoom, []int64{id}); err != nil {
			return err
		}
		if len(lightIDs) > 0 {
			if err := tx.Delete(&model.Light{}, lightIDs).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Room{}, id).Error
	})
}
