package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
	"github.com/shopspring/decimal"
)

// WorkSession is a billable time entry against a project. Duration is
// stored half-hour rounded at one decimal place; Date is the local
// calendar day of StartTime in the user's timezone.
type WorkSession struct {
	ID            int64
	ProjectID     int64
	Date          time.Time
	StartTime     time.Time
	EndTime       time.Time
	DurationHours decimal.Decimal
	Summary       *string
	PrivacyLevel  PrivacyLevel
	Tags          []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s *WorkSession) Validate() error {
	if s.ProjectID <= 0 {
		return fmt.Errorf("work session project_id is required: %w", apperr.ErrInvalidArgument)
	}
	if !s.EndTime.After(s.StartTime) {
		return fmt.Errorf("work session end_time must be after start_time: %w", apperr.ErrInvalidArgument)
	}
	if !ValidPrivacyLevels[string(s.PrivacyLevel)] {
		return fmt.Errorf("privacy_level %q must be one of public, internal, private: %w", s.PrivacyLevel, apperr.ErrInvalidArgument)
	}
	return nil
}
