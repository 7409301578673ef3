package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"smarthome-backend/internal/model"
	"smarthome-backend/internal/track"
)

// resolveTarget maps a (kind, id) pair to the name of the concrete entity it
// references. The kind set is closed; anything else is a programming error.
func resolveTarget(tx *gorm.DB, kind model.TargetKind, id int64) (string, bool, error) {
	var name string
	var err error

	switch kind {
	case model.KindRoom:
		var row model.Room
		err = tx.Select("name").First(&row, id).Error
		name = row.Name
	case model.KindLight:
		var row model.Light
		err = tx.Select("name").First(&row, id).Error
		name = row.Name
	case model.KindThermostat:
		var row model.Thermostat
		err = tx.Select("name").First(&row, id).Error
		name = row.Name
	default:
		return "", false, fmt.Errorf("unknown target kind %q", kind)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// appendTrackRecord validates and persists one audit entry inside tx. When a
// target kind is set the referenced entity must exist; a record without a
// kind skips the check (the save hooks always stamp one, this guard just
// keeps a malformed record from crashing the append).
func appendTrackRecord(tx *gorm.DB, rec *model.TrackRecord) error {
	if rec.TargetKind != "" {
		_, found, err := resolveTarget(tx, rec.TargetKind, rec.TargetID)
		if err != nil {
			return err
		}
		if !found {
			return &ValidationError{
				Message: fmt.Sprintf("%s with id %d does not exist!", rec.TargetKind, rec.TargetID),
			}
		}
	}
	return tx.Create(rec).Error
}

// appendChangeRecords writes one audit entry per change, in order, and
// returns the new row ids. Runs inside the caller's save transaction so the
// entries commit or roll back with the entity row.
func appendChangeRecords(tx *gorm.DB, kind model.TargetKind, targetID int64, name string, changes []track.Change) ([]int64, error) {
	ids := make([]int64, 0, len(changes))
	for _, ch := range changes {
		rec := model.TrackRecord{
			Name:       name,
			TargetKind: kind,
			TargetID:   targetID,
			StateType:  ch.Field.StateType(),
			FromState:  ch.From,
			ToState:    ch.To,
		}
		if err := appendTrackRecord(tx, &rec); err != nil {
			return nil, err
		}
		ids = append(ids, rec.ID)
	}
	return ids, nil
}

// removeTargetRows deletes the audit entries and push-subscription bindings
// of the given targets. Runs inside the caller's delete transaction so the
// cascade commits or rolls back with the entity rows.
func removeTargetRows(tx *gorm.DB, kind model.TargetKind, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("target_kind = ? AND target_id IN ?", kind, ids).
		Delete(&model.TrackRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete track records for %s: %w", kind, err)
	}
	if err := tx.Where("target_kind = ? AND target_id IN ?", kind, ids).
		Delete(&model.SubscriptionTarget{}).Error; err != nil {
		return fmt.Errorf("failed to delete subscription targets for %s: %w", kind, err)
	}
	return nil
}

// AppendTrackRecord validates and persists one audit entry on its own
// transaction. The CRUD surface never calls this; it exists for the save
// hooks' shared path and for direct appends by in-process collaborators.
func (s *gormStore) AppendTrackRecord(ctx context.Context, rec *model.TrackRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return appendTrackRecord(tx, rec)
	})
}

// ListTrackRecords returns audit entries, optionally filtered to one
// equipment kind, newest-modified first.
func (s *gormStore) ListTrackRecords(ctx context.Context, kind *model.TargetKind) ([]TrackRecordView, error) {
	q := s.db.WithContext(ctx).Order("updated_at DESC, id DESC")
	if kind != nil {
		q = q.Where("target_kind = ?", *kind)
	}

	var records []model.TrackRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list track records: %w", err)
	}

	views := make([]TrackRecordView, 0, len(records))
	for _, rec := range records {
		if rec.TargetKind == "" {
			views = append(views, TrackRecordView{TrackRecord: rec})
			continue
		}
		name, found, err := resolveTarget(s.db.WithContext(ctx), rec.TargetKind, rec.TargetID)
		if err != nil {
			return nil, err
		}
		view := TrackRecordView{TrackRecord: rec}
		if found {
			view.Display = rec.Display(name)
		}
		views = append(views, view)
	}
	return views, nil
}
