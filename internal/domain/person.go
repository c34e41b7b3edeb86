package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

// Person is an individual contact. Profiles persist across job changes;
// the link to a client at a point in time lives in EmploymentHistory.
type Person struct {
	ID             int64
	FullName       string
	Email          *string
	Phone          *string
	LinkedInURL    *string
	IsStakeholder  bool
	Company        *string
	Title          *string
	Notes          *string
	Tags           []string
	AdditionalInfo map[string]any
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p *Person) Validate() error {
	if p.FullName == "" {
		return fmt.Errorf("person full_name is required: %w", apperr.ErrInvalidArgument)
	}
	return nil
}

// EmploymentHistory records a person working at a client over a date
// range. A nil EndDate marks the current engagement; at most one row
// per (person, client) pair may be current.
type EmploymentHistory struct {
	ID        int64
	PersonID  int64
	ClientID  int64
	Role      *string
	StartDate time.Time
	EndDate   *time.Time
}

func (h *EmploymentHistory) Validate() error {
	if h.PersonID <= 0 {
		return fmt.Errorf("employment person_id is required: %w", apperr.ErrInvalidArgument)
	}
	if h.ClientID <= 0 {
		return fmt.Errorf("employment client_id is required: %w", apperr.ErrInvalidArgument)
	}
	if h.StartDate.IsZero() {
		return fmt.Errorf("employment start_date is required: %w", apperr.ErrInvalidArgument)
	}
	if h.EndDate != nil && h.EndDate.Before(h.StartDate) {
		return fmt.Errorf("employment end_date precedes start_date: %w", apperr.ErrInvalidArgument)
	}
	return nil
}

// IsCurrent reports whether the engagement is still open.
func (h *EmploymentHistory) IsCurrent() bool {
	return h.EndDate == nil
}
