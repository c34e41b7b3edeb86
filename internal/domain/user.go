package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

// User is the singleton profile row (id=1). Timezone, week boundary,
// and default privacy act as fallbacks for every operation that needs
// them; until the row is persisted the configured defaults apply.
type User struct {
	ID                  int64
	FullName            string
	Email               *string
	Phone               *string
	Timezone            string
	WeekBoundary        WeekBoundary
	DefaultPrivacy      PrivacyLevel
	WorkingHoursStart   *int
	WorkingHoursEnd     *int
	CommunicationStyle  *string
	WorkApproach        *string
	ProfileLastUpdated  *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (u *User) Validate() error {
	if u.FullName == "" {
		return fmt.Errorf("user full_name is required: %w", apperr.ErrInvalidArgument)
	}
	if _, err := time.LoadLocation(u.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", u.Timezone, apperr.ErrInvalidArgument)
	}
	if !ValidWeekBoundaries[string(u.WeekBoundary)] {
		return fmt.Errorf("week_boundary %q must be one of mon-fri, sun-sat, mon-sun: %w", u.WeekBoundary, apperr.ErrInvalidArgument)
	}
	if !ValidPrivacyLevels[string(u.DefaultPrivacy)] {
		return fmt.Errorf("default_privacy_level %q must be one of public, internal, private: %w", u.DefaultPrivacy, apperr.ErrInvalidArgument)
	}
	if u.WorkingHoursStart != nil && (*u.WorkingHoursStart < 0 || *u.WorkingHoursStart > 23) {
		return fmt.Errorf("working_hours_start %d must be 0-23: %w", *u.WorkingHoursStart, apperr.ErrInvalidArgument)
	}
	if u.WorkingHoursEnd != nil && (*u.WorkingHoursEnd < 0 || *u.WorkingHoursEnd > 23) {
		return fmt.Errorf("working_hours_end %d must be 0-23: %w", *u.WorkingHoursEnd, apperr.ErrInvalidArgument)
	}
	return nil
}

// Location resolves the user's timezone, falling back to UTC when the
// name fails to load.
func (u *User) Location() *time.Location {
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
