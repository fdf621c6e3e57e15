package model

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire format of event dates.
const DateLayout = "2006-01-02"

// DayOf strips the time of day, keeping the calendar day t shows in its own
// location, and returns it as a UTC midnight.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateOf converts a day into the stored column type.
func DateOf(t time.Time) datatypes.Date {
	return datatypes.Date(DayOf(t))
}

// ParseDay parses a YYYY-MM-DD date. A full RFC 3339 timestamp is accepted too
// and truncated to its calendar day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err == nil {
		return t, nil
	}
	ts, tsErr := time.Parse(time.RFC3339, s)
	if tsErr != nil {
		return time.Time{}, err
	}
	return DayOf(ts), nil
}
