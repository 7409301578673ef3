package model

import (
	"fmt"
	"strings"
	"time"
)

// TargetKind identifies which trackable table an audit record points at.
// The set is closed: rooms, lights and thermostats are the only equipment
// whose state changes are audited.
type TargetKind string

const (
	KindRoom       TargetKind = "room"
	KindLight      TargetKind = "light"
	KindThermostat TargetKind = "thermostat"
)

// ParseTargetKind maps external input onto the closed kind set.
func ParseTargetKind(s string) (TargetKind, error) {
	switch k := TargetKind(strings.ToLower(s)); k {
	case KindRoom, KindLight, KindThermostat:
		return k, nil
	}
	return "", fmt.Errorf("unknown equipment kind %q", s)
}

// TrackRecord is one immutable audit entry recording a monitored field
// transition on a trackable entity. Rows are created by the entity save
// hooks only; they are never updated and are deleted together with their
// target.
type TrackRecord struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"size:200;not null" json:"name"`
	TargetKind TargetKind `gorm:"size:16;not null;index:idx_track_records_target" json:"target_kind"`
	TargetID   int64      `gorm:"not null;index:idx_track_records_target" json:"target_id"`
	StateType  string     `gorm:"size:25;not null" json:"state_type"`
	FromState  string     `gorm:"size:6;not null" json:"from_state"`
	ToState    string     `gorm:"size:6;not null" json:"to_state"`
	CreatedAt  time.Time  `gorm:"not null" json:"created"`
	UpdatedAt  time.Time  `gorm:"not null;index" json:"modified"`
}

// Display renders the canonical audit line for a record whose target
// resolved to targetName. Callers pass the empty string when the target is
// gone; the result is then empty as well.
func (r TrackRecord) Display(targetName string) string {
	if targetName == "" {
		return ""
	}
	return fmt.Sprintf("[%s] %s has been changed from %s to %s at %s",
		targetName, r.StateType, r.FromState, r.ToState,
		r.UpdatedAt.Format(time.RFC3339))
}
