package model

import "strconv"

// FormatDecimal renders a temperature-style value with exactly two fraction
// digits, matching the persisted decimal(5,2) representation. Change
// detection and audit entries both go through this, so "66" and "66.00"
// compare equal.
func FormatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ValidDecimal reports whether v fits a decimal(5,2) column.
func ValidDecimal(v float64) bool {
	return v > -1000 && v < 1000
}
