package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

// Employer is who work is done on behalf of: a company the user works
// for, or the user themselves when freelancing.
type Employer struct {
	ID          int64
	Name        string
	IsCurrent   bool
	IsSelf      bool
	ContactInfo *string
	Notes       *string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (e *Employer) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("employer name is required: %w", apperr.ErrInvalidArgument)
	}
	return nil
}
