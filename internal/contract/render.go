// Package contract holds the wire records the tool surface returns and
// the mappers that build them from domain values. Datetimes render as
// RFC3339 with offset, calendar dates as YYYY-MM-DD, and decimal hours
// as one-decimal strings, so every tool serializes the same way.
package contract

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/mosaic/internal/timeutil"
)

const dateLayout = "2006-01-02"

func renderTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func renderTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := renderTime(*t)
	return &s
}

func renderDate(t time.Time) string {
	return t.Format(dateLayout)
}

func renderDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := renderDate(*t)
	return &s
}

func renderHours(d decimal.Decimal) string {
	return timeutil.FormatHours(d)
}

// renderTags never returns nil so the wire form is always an array.
func renderTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// Ack confirms a delete.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Delivery reports a notification dispatch outcome.
type Delivery struct {
	Delivered bool `json:"delivered"`
	Attempts  int  `json:"attempts"`
}
