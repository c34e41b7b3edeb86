package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

// Meeting is a discussion event, optionally tied to a project. When a
// project is set at creation time a billable work session is generated
// alongside it in the same transaction.
type Meeting struct {
	ID              int64
	Title           string
	StartTime       time.Time
	DurationMinutes int
	Summary         *string
	PrivacyLevel    PrivacyLevel
	ProjectID       *int64
	MeetingType     *string
	Location        *string
	Tags            []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (m *Meeting) Validate() error {
	if m.Title == "" {
		return fmt.Errorf("meeting title is required: %w", apperr.ErrInvalidArgument)
	}
	if m.StartTime.IsZero() {
		return fmt.Errorf("meeting start_time is required: %w", apperr.ErrInvalidArgument)
	}
	if m.DurationMinutes <= 0 {
		return fmt.Errorf("meeting duration_minutes must be positive: %w", apperr.ErrInvalidArgument)
	}
	if !ValidPrivacyLevels[string(m.PrivacyLevel)] {
		return fmt.Errorf("privacy_level %q must be one of public, internal, private: %w", m.PrivacyLevel, apperr.ErrInvalidArgument)
	}
	return nil
}

// MeetingAttendee joins a person to a meeting. Rows are unique per
// (meeting, person) and cascade-delete with either side.
type MeetingAttendee struct {
	ID        int64
	MeetingID int64
	PersonID  int64
}
