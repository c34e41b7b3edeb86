package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

// ActionItem is a tracked task, optionally due-dated and attached to an
// entity. CompletedAt is set exactly when status reaches completed.
type ActionItem struct {
	ID           int64
	Title        string
	Description  *string
	Status       ActionItemStatus
	DueDate      *time.Time
	CompletedAt  *time.Time
	EntityType   *EntityType
	EntityID     *int64
	PrivacyLevel PrivacyLevel
	Tags         []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a *ActionItem) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("action item title is required: %w", apperr.ErrInvalidArgument)
	}
	if !ValidActionItemStatuses[string(a.Status)] {
		return fmt.Errorf("action item status %q must be one of pending, in_progress, completed, cancelled: %w", a.Status, apperr.ErrInvalidArgument)
	}
	if !ValidPrivacyLevels[string(a.PrivacyLevel)] {
		return fmt.Errorf("privacy_level %q must be one of public, internal, private: %w", a.PrivacyLevel, apperr.ErrInvalidArgument)
	}
	return ValidateEntityRef(a.EntityType, a.EntityID)
}
