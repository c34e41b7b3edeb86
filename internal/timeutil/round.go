// Package timeutil implements the half-hour billing round and the
// calendar arithmetic behind timecards, query time shortcuts, and
// reminder recurrence.
package timeutil

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

// RoundHalfHour converts a minute count to billable hours. Any positive
// remainder past the hour bills as a half hour up to and including 30
// minutes, and as a full hour from 31 on. Non-positive input is zero
// hours. Results are exact decimals at one decimal place.
func RoundHalfHour(minutes int) decimal.Decimal {
	if minutes <= 0 {
		return decimal.New(0, -1)
	}
	h := int64(minutes / 60)
	switch r := minutes % 60; {
	case r == 0:
		return decimal.New(h*10, -1)
	case r <= 30:
		return decimal.New(h*10+5, -1)
	default:
		return decimal.New(h*10+10, -1)
	}
}

// DurationRounded rounds the span between two instants. The span is
// truncated to whole minutes first, so 29m59s bills as 29 minutes.
// An end before start is rejected; equal instants round to zero.
func DurationRounded(start, end time.Time) (decimal.Decimal, error) {
	if end.Before(start) {
		return decimal.Decimal{}, fmt.Errorf("end %s precedes start %s: %w",
			end.Format(time.RFC3339), start.Format(time.RFC3339), apperr.ErrInvalidArgument)
	}
	return RoundHalfHour(int(end.Sub(start) / time.Minute)), nil
}

// FormatHours renders a duration decimal at the stored one-decimal
// precision, e.g. "2.0" or "1.5".
func FormatHours(d decimal.Decimal) string {
	return d.StringFixed(1)
}
