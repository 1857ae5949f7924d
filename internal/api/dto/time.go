package dto

import (
	"fmt"
	"time"
)

const (
	dateTimeLayout = "2006-01-02 15:04"
	clockLayout    = "15:04"
)

// ParseClock parses a request time value: either a bare "HH:MM" clock
// (combined with today's date, so internal computation always carries a full
// date and midnight rollover stays unambiguous) or a full RFC 3339
// timestamp.
func ParseClock(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04", s); err == nil {
		return t, nil
	}

	clock, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: expected HH:MM or timestamp", s)
	}

	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(),
		clock.Hour(), clock.Minute(), 0, 0, now.Location()), nil
}

func formatDateTime(t time.Time) string { return t.Format(dateTimeLayout) }

func formatHM(t time.Time) string { return t.Format(clockLayout) }
