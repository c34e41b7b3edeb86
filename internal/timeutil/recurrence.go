package timeutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
	"github.com/alexanderramin/mosaic/internal/domain"
)

// NextOccurrence computes the follow-up time for a recurring reminder.
// Arithmetic runs on the wall clock in loc so the local time of day
// survives DST transitions; the result is a UTC instant. Monthly
// recurrence shifts one calendar month and clamps the pinned day to the
// target month's length, so Jan 31 lands on Feb 28 or 29.
func NextOccurrence(current time.Time, cfg *domain.RecurrenceConfig, loc *time.Location) (time.Time, error) {
	if cfg == nil {
		return time.Time{}, fmt.Errorf("recurrence config is required: %w", apperr.ErrInvalidArgument)
	}
	if err := cfg.Validate(); err != nil {
		return time.Time{}, err
	}

	lt := current.In(loc)
	switch cfg.Frequency {
	case domain.RecurDaily:
		return lt.AddDate(0, 0, 1).UTC(), nil
	case domain.RecurWeekly:
		return lt.AddDate(0, 0, 7).UTC(), nil
	default:
		day := lt.Day()
		if cfg.DayOfMonth != nil {
			day = *cfg.DayOfMonth
		}
		year, month := lt.Year(), lt.Month()+1
		if month > time.December {
			year, month = year+1, time.January
		}
		if last := daysIn(year, month); day > last {
			day = last
		}
		next := time.Date(year, month, day, lt.Hour(), lt.Minute(), lt.Second(), lt.Nanosecond(), loc)
		return next.UTC(), nil
	}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}
