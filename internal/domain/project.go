package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

// Project is a work initiative done for a client, optionally on behalf
// of an employer. Work sessions and meetings attach to projects.
type Project struct {
	ID           int64
	Name         string
	ClientID     int64
	OnBehalfOfID *int64
	Description  *string
	Status       ProjectStatus
	StartDate    *time.Time
	EndDate      *time.Time
	Tags         []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required: %w", apperr.ErrInvalidArgument)
	}
	if p.ClientID <= 0 {
		return fmt.Errorf("project client_id is required: %w", apperr.ErrInvalidArgument)
	}
	if !ValidProjectStatuses[string(p.Status)] {
		return fmt.Errorf("project status %q must be one of active, paused, completed: %w", p.Status, apperr.ErrInvalidArgument)
	}
	if p.Status == ProjectCompleted && p.EndDate == nil {
		return fmt.Errorf("completed project requires end_date: %w", apperr.ErrInvalidArgument)
	}
	return nil
}
