package period

import "time"

// Overlaps reports whether the inclusive date ranges [aStart, aEnd] and
// [bStart, bEnd] intersect, regardless of containment direction.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// IsOpen reports whether a period accepts writes on the given day: the active
// flag must be set and the day must fall inside the period's date range.
func IsOpen(isActive bool, start, end, today time.Time) bool {
	if !isActive {
		return false
	}
	day := truncateToDay(today)
	return !day.Before(truncateToDay(start)) && !day.After(truncateToDay(end))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
