// Package usage turns redemption counters into the bounded percentages shown
// on progress bars.
package usage

import "math"

// Progress returns round(current/total*100) clamped to [0,100]. A total of
// zero or less has no meaningful ratio and reports 0.
func Progress(current, total int64) int {
	if total <= 0 || current <= 0 {
		return 0
	}
	pct := math.Round(float64(current) / float64(total) * 100)
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// Remaining returns how many uses are left before total is reached, never
// negative.
func Remaining(current, total int64) int64 {
	if total <= 0 || current >= total {
		return 0
	}
	if current < 0 {
		return total
	}
	return total - current
}

// AverageProgress returns the rounded mean of the provided percentages, or 0
// for an empty input.
func AverageProgress(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}
