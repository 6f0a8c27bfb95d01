package utils

import "time"

// TargetDate returns the forecast horizon for a prediction made now,
// truncated to midnight UTC so repeated analyses on the same day agree.
func TargetDate(now time.Time, days int) time.Time {
	return StartOfDay(now.UTC().AddDate(0, 0, days))
}

func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
