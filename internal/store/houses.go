package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"smarthome-backend/internal/model"
)

// requireHouse fails with a ValidationError when the referenced house does
// not exist.
func requireHouse(tx *gorm.DB, id int64) error {
	var count int64
	if err := tx.Model(&model.House{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &ValidationError{Message: fmt.Sprintf("house with id %d does not exist!", id)}
	}
	return nil
}

func (s *gormStore) CreateHouse(ctx context.Context, p HouseParams) (model.House, error) {
	house := model.House{Name: p.Name}
	if err := s.db.WithContext(ctx).Create(&house).Error; err != nil {
		return model.House{}, fmt.Errorf("failed to create house: %w", err)
	}
	return house, nil
}

func (s *gormStore) GetHouse(ctx context.Context, id int64) (HouseDetail, error) {
	var detail HouseDetail
	if err := s.db.WithContext(ctx).First(&detail.House, id).Error; err != nil {
		return HouseDetail{}, translateErr(err)
	}

	db := s.db.WithContext(ctx)
	if err := db.Model(&model.Room{}).Where("house_id = ?", id).
		Order("id").Pluck("id", &detail.RoomIDs).Error; err != nil {
		return HouseDetail{}, err
	}
	if err := db.Model(&model.Thermostat{}).Where("house_id = ?", id).
		Order("id").Pluck("id", &detail.ThermostatIDs).Error; err != nil {
		return HouseDetail{}, err
	}
	return detail, nil
}

func (s *gormStore) ListHouses(ctx context.Context) ([]model.House, error) {
	var houses []model.House
	if err := s.db.WithContext(ctx).Order("id").Find(&houses).Error; err != nil {
		return nil, err
	}
	return houses, nil
}

func (s *gormStore) UpdateHouse(ctx context.Context, id int64, p HouseParams) (model.House, error) {
	var house model.House
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&house, id).Error; err != nil {
			return translateErr(err)
		}
		house.Name = p.Name
		return tx.Save(&house).Error
	})
	if err != nil {
		return model.House{}, err
	}
	return house, nil
}

// DeleteHouse removes a house together with its rooms, thermostats, lights
// and every audit entry of those, in one transaction.
func (s *gormStore) DeleteHouse(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var house model.House
		if err := tx.First(&house, id).Error; err != nil {
			return translateErr(err)
		}

		var roomIDs, thermostatIDs, lightIDs []int64
		if err := tx.Model(&model.Room{}).Where("house_id = ?", id).
			Pluck("id", &roomIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Thermostat{}).Where("house_id = ?", id).
			Pluck("id", &thermostatIDs).Error; err != nil {
			return err
		}
		if len(roomIDs) > 0 {
			if err := tx.Model(&model.Light{}).Where("room_id IN ?", roomIDs).
				Pluck("id", &lightIDs).Error; err != nil {
				return err
			}
		}

		if err := removeTargetRows(tx, model.KindLight, lightIDs); err != nil {
			return err
		}
		if err := removeTargetRows(tx, model.KindRoom, roomIDs); err != nil {
			return err
		}
		if err := removeTargetRows(tx, model.KindThermostat, thermostatIDs); err != nil {
			return err
		}

		if len(lightIDs) > 0 {
			if err := tx.Delete(&model.Light{}, lightIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("house_id = ?", id).Delete(&model.Room{}).Error; err != nil {
			return err
		}
		if err := tx.Where("house_id = ?", id).Delete(&model.Thermostat{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.House{}, id).Error
	})
}
