// Package timeutil renders stored UTC instants in the dashboard's fixed
// display offset and provides day-window helpers for daily aggregates.
package timeutil

import "time"

// Display formats used by the dashboard frontend.
const (
	DisplayDateTime = "02.01.2006 15:04"
	DisplayDate     = "02.01.2006"
	DisplayDayMonth = "02.01"
)

// EnsureLocation returns UTC when loc is nil.
func EnsureLocation(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

// FormatDateTime renders the instant as "02.01.2006 15:04" in loc.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(EnsureLocation(loc)).Format(DisplayDateTime)
}

// FormatDate renders the instant as "02.01.2006" in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(EnsureLocation(loc)).Format(DisplayDate)
}

// DayMonthLabel renders a calendar date as the short "02.01" series label.
func DayMonthLabel(t time.Time) string {
	return t.Format(DisplayDayMonth)
}

// TruncateToDay normalizes the timestamp to midnight in the provided zone.
func TruncateToDay(t time.Time, loc *time.Location) time.Time {
	loc = EnsureLocation(loc)
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Today returns the current calendar date at midnight UTC. Aggregate tables
// key on the storage day, not the display day.
func Today() time.Time {
	return TruncateToDay(time.Now().UTC(), time.UTC)
}

// WindowStart returns the first day of a trailing window of length days that
// ends on (and includes) end. A window of 7 days ending on the 10th starts
// on the 4th.
func WindowStart(end time.Time, days int) time.Time {
	if days < 1 {
		days = 1
	}
	return end.AddDate(0, 0, -(days - 1))
}
