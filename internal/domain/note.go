package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

// Note is a timestamped annotation, free-standing or attached to one
// entity via the polymorphic (EntityType, EntityID) pair.
type Note struct {
	ID           int64
	Text         string
	PrivacyLevel PrivacyLevel
	EntityType   *EntityType
	EntityID     *int64
	Tags         []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (n *Note) Validate() error {
	if n.Text == "" {
		return fmt.Errorf("note text is required: %w", apperr.ErrInvalidArgument)
	}
	if !ValidPrivacyLevels[string(n.PrivacyLevel)] {
		return fmt.Errorf("privacy_level %q must be one of public, internal, private: %w", n.PrivacyLevel, apperr.ErrInvalidArgument)
	}
	if n.EntityType != nil && *n.EntityType == EntityNote {
		return fmt.Errorf("notes cannot attach to notes: %w", apperr.ErrInvalidArgument)
	}
	return ValidateEntityRef(n.EntityType, n.EntityID)
}
