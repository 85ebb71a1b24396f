package services

import (
	"math"
	"time"
)

// DateAtLocation truncates a timestamp to its calendar date in the given
// location.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayRange returns the half-open [start, end) range covering the calendar day
// of value.
func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// CeilDaysBetween returns the number of days from earlier to later, rounding
// any partial day up. Date-only values yield exact whole-day differences.
func CeilDaysBetween(earlier, later time.Time) int {
	return int(math.Ceil(later.Sub(earlier).Hours() / 24))
}
