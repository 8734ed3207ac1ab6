// Package analytics is the efficiency and burndown engine: pure, in-memory
// aggregation of case-record snapshots into progress, backlog, overdue-risk,
// delivery-window and burndown results. Nothing here touches persistence or
// mutates its input; every function is total over any finite record set.
package analytics

import "math"

// Rate returns part/whole as a percentage rounded to two decimals.
// A non-positive whole yields 0 so an empty population never divides by zero.
func Rate(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return FormatFixed(part/whole*100, 2)
}

// FormatFixed rounds v half-up to the given number of decimals. Every rate
// and averaged workload the engine surfaces passes through here so results
// compare exactly in tests and across serialization.
func FormatFixed(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Floor(v*pow+0.5) / pow
}

// DivideOr returns num/den, or fallback when den is not positive.
func DivideOr(num, den, fallback float64) float64 {
	if den <= 0 {
		return fallback
	}
	return num / den
}
