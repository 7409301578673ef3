package track

import "fmt"

// Field identifies a monitored attribute of a trackable entity.
type Field string

const (
	FieldCurrentTemperature  Field = "current_temperature"
	FieldTemperatureSetPoint Field = "temperature_set_point"
	FieldMode                Field = "mode"
	FieldState               Field = "state"
)

// StateType returns the audit category label recorded for a change of f.
func (f Field) StateType() string {
	switch f {
	case FieldCurrentTemperature:
		return "Temperature"
	case FieldTemperatureSetPoint:
		return "Temperature set point"
	case FieldMode:
		return "Mode"
	case FieldState:
		return "State"
	}
	return string(f)
}

// Change describes one monitored field transition.
type Change struct {
	Field Field
	From  string
	To    string
}

// Tracker holds the monitored field values of an entity as they were loaded
// from storage. It answers change queries against pending in-memory values.
// A tracker is never mutated after capture; a fresh load produces a fresh
// tracker.
type Tracker struct {
	loaded map[Field]string
}

// New captures a snapshot of values as loaded from storage.
func New(loaded map[Field]string) *Tracker {
	vals := make(map[Field]string, len(loaded))
	for f, v := range loaded {
		vals[f] = v
	}
	return &Tracker{loaded: vals}
}

// Empty returns a tracker without a snapshot, for instances that were never
// persisted. HasChanged always reports false on it.
func Empty() *Tracker {
	return &Tracker{}
}

// HasChanged reports whether the pending value differs from the snapshot.
// It reports false when no snapshot exists for f.
func (t *Tracker) HasChanged(f Field, current string) bool {
	if t == nil || t.loaded == nil {
		return false
	}
	prev, ok := t.loaded[f]
	if !ok {
		return false
	}
	return prev != current
}

// Previous returns the snapshot value of f. It fails when no snapshot was
// ever loaded or f is not part of it.
func (t *Tracker) Previous(f Field) (string, error) {
	if t == nil || t.loaded == nil {
		return "", fmt.Errorf("no snapshot loaded")
	}
	v, ok := t.loaded[f]
	if !ok {
		return "", fmt.Errorf("field %s has no snapshot", f)
	}
	return v, nil
}

// Diff returns one Change per field in order whose pending value differs
// from the snapshot.
func (t *Tracker) Diff(order []Field, current map[Field]string) []Change {
	var changes []Change
	for _, f := range order {
		cur, ok := current[f]
		if !ok || !t.HasChanged(f, cur) {
			continue
		}
		prev, err := t.Previous(f)
		if err != nil {
			continue
		}
		changes = append(changes, Change{Field: f, From: prev, To: cur})
	}
	return changes
}
