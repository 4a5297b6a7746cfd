// Package timeframe computes the calendar-week windows used to scope
// spending analysis. All windows are UTC-anchored and Monday-start.
package timeframe

import (
	"time"
)

// WeekWindow is a closed UTC interval covering one calendar week, from
// Monday 00:00:00.000 through Sunday 23:59:59.999.
type WeekWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, bounds included.
func (w WeekWindow) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(w.Start) && !t.After(w.End)
}

// ThisWeek returns the calendar week containing now.
//
// The reference instant is first shifted to the Thursday of its week
// (ISO-8601 week numbering anchors on Thursday), and Monday/Sunday are
// derived from that anchor. Going back a fixed number of days from now
// instead would be off by one around week boundaries.
func ThisWeek(now time.Time) WeekWindow {
	thursday := thursdayOf(now)
	y, m, d := thursday.Date()
	return WeekWindow{
		Start: time.Date(y, m, d-3, 0, 0, 0, 0, time.UTC),
		End:   time.Date(y, m, d+3, 23, 59, 59, 999000000, time.UTC),
	}
}

// LastWeek returns the calendar week immediately before the one
// containing now.
func LastWeek(now time.Time) WeekWindow {
	thursday := thursdayOf(now)
	y, m, d := thursday.Date()
	return WeekWindow{
		Start: time.Date(y, m, d-10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(y, m, d-4, 23, 59, 59, 999000000, time.UTC),
	}
}

// thursdayOf shifts now to the Thursday of its ISO week, treating Sunday as
// weekday 7 rather than 0.
func thursdayOf(now time.Time) time.Time {
	now = now.UTC()
	day := int(now.Weekday())
	if day == 0 {
		day = 7
	}
	return now.AddDate(0, 0, 4-day)
}
