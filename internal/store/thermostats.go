package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"smarthome-backend/internal/model"
	"smarthome-backend/internal/track"
)

func validateThermostatParams(p ThermostatParams) (model.Mode, error) {
	mode := p.Mode
	if mode == "" {
		mode = model.ModeOff
	}
	if !mode.Valid() {
		return "", &ValidationError{Message: fmt.Sprintf("invalid thermostat mode %q", p.Mode)}
	}
	if !model.ValidDecimal(p.CurrentTemperature) {
		return "", &ValidationError{
			Message: fmt.Sprintf("current_temperature %s is out of range", model.FormatDecimal(p.CurrentTemperature)),
		}
	}
	if !model.ValidDecimal(p.TemperatureSetPoint) {
		return "", &ValidationError{
			Message: fmt.Sprintf("temperature_set_point %s is out of range", model.FormatDecimal(p.TemperatureSetPoint)),
		}
	}
	return mode, nil
}

// CreateThermostat inserts a new thermostat. Initial creation never emits
// audit entries.
func (s *gormStore) CreateThermostat(ctx context.Context, p ThermostatParams) (model.Thermostat, error) {
	mode, err := validateThermostatParams(p)
	if err != nil {
		return model.Thermostat{}, err
	}

	thermostat := model.Thermostat{
		Name:                p.Name,
		HouseID:             p.HouseID,
		Mode:                mode,
		CurrentTemperature:  p.CurrentTemperature,
		TemperatureSetPoint: p.TemperatureSetPoint,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireHouse(tx, p.HouseID); err != nil {
			return err
		}
		return tx.Create(&thermostat).Error
	})
	if err != nil {
		return model.Thermostat{}, err
	}
	return thermostat, nil
}

func (s *gormStore) GetThermostat(ctx context.Context, id int64) (model.Thermostat, error) {
	var thermostat model.Thermostat
	if err := s.db.WithContext(ctx).First(&thermostat, id).Error; err != nil {
		return model.Thermostat{}, translateErr(err)
	}
	return thermostat, nil
}

func (s *gormStore) ListThermostats(ctx context.Context) ([]model.Thermostat, error) {
	var thermostats []model.Thermostat
	if err := s.db.WithContext(ctx).Order("id").Find(&thermostats).Error; err != nil {
		return nil, err
	}
	return thermostats, nil
}

// UpdateThermostat applies the full field set to an existing thermostat.
// Monitored fields are audited in a fixed order: current temperature, set
// point, then mode. One transaction covers the audit entries and the row.
func (s *gormStore) UpdateThermostat(ctx context.Context, id int64, p ThermostatParams) (model.Thermostat, []int64, error) {
	mode, err := validateThermostatParams(p)
	if err != nil {
		return model.Thermostat{}, nil, err
	}

	var thermostat model.Thermostat
	var recordIDs []int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&thermostat, id).Error; err != nil {
			return translateErr(err)
		}
		tracker := track.New(thermostat.MonitoredValues())

		if p.HouseID != thermostat.HouseID {
			if err := requireHouse(tx, p.HouseID); err != nil {
				return err
			}
		}
		thermostat.Name = p.Name
		thermostat.HouseID = p.HouseID
		thermostat.Mode = mode
		thermostat.CurrentTemperature = p.CurrentTemperature
		thermostat.TemperatureSetPoint = p.TemperatureSetPoint

		changes := tracker.Diff(model.ThermostatMonitoredFields, thermostat.MonitoredValues())
		ids, err := appendChangeRecords(tx, model.KindThermostat, thermostat.ID, thermostat.Name, changes)
		if err != nil {
			return err
		}
		recordIDs = ids
		return tx.Save(&thermostat).Error
	})
	if err != nil {
		return model.Thermostat{}, nil, err
	}
	return thermostat, recordIDs, nil
}

// DeleteThermostat removes a thermostat and its audit entries in one
// transaction.
func (s *gormStore) DeleteThermostat(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var thermostat model.Thermostat
		if err := tx.First(&thermostat, id).Error; err != nil {
			return translateErr(err)
		}
		if err := removeTargetRows(tx, model.KindThermostat, []int64{id}); err != nil {
			return err
		}
		return tx.Delete(&model.Thermostat{}, id).Error
	})
}
