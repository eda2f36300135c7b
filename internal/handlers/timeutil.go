package handlers

import "time"

// startOfDay truncates t to midnight in loc. Class listings use it so that
// today's classes still count as upcoming.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	tl := t.In(loc)
	return time.Date(tl.Year(), tl.Month(), tl.Day(), 0, 0, 0, 0, loc)
}
