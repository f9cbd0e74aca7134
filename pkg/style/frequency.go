package style

import (
	"time"
)

// PostsPerDay divides count by the number of days between the oldest and
// newest timestamp. With fewer than two timestamps it returns count itself,
// which is an approximation rather than a rate. The same holds when every
// timestamp is identical.
func PostsPerDay(count int, times []time.Time) float64 {
	if len(times) < 2 {
		return float64(count)
	}
	oldest, newest := times[0], times[0]
	for _, t := range times[1:] {
		if t.Before(oldest) {
			oldest = t
		}
		if t.After(newest) {
			newest = t
		}
	}
	span := newest.Sub(oldest)
	if span <= 0 {
		return float64(count)
	}
	return float64(count) / (span.Hours() / 24)
}

// PerMonthOverYear assumes the items were published over one year and
// returns the monthly average. Actual dates are ignored.
func PerMonthOverYear(count int) float64 {
	return float64(count) / 12
}
