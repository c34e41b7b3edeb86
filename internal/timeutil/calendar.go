package timeutil

import (
	"time"

	"github.com/alexanderramin/mosaic/internal/domain"
)

// DateLayout is the storage form for date-only values.
const DateLayout = "2006-01-02"

// LocalDate returns the calendar day of t in loc, normalized to
// midnight UTC. Date-only fields are held in this form in memory.
func LocalDate(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfDay returns local midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// WeekStartDay maps a week boundary to the weekday that opens the week.
// Both working-week styles anchored on Monday share that start.
func WeekStartDay(b domain.WeekBoundary) time.Weekday {
	if b == domain.WeekSunSat {
		return time.Sunday
	}
	return time.Monday
}

// StartOfWeek returns local midnight of the first day of t's week under
// the given boundary.
func StartOfWeek(t time.Time, loc *time.Location, boundary domain.WeekBoundary) time.Time {
	day := StartOfDay(t, loc)
	delta := (int(day.Weekday()) - int(WeekStartDay(boundary)) + 7) % 7
	return day.AddDate(0, 0, -delta)
}

// StartOfMonth returns local midnight of the first of t's month in loc.
func StartOfMonth(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, loc)
}

// StartOfYear returns local midnight of January 1 of t's year in loc.
func StartOfYear(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), time.January, 1, 0, 0, 0, 0, loc)
}
