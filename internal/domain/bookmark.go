package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

// Bookmark is a saved resource link, optionally attached to an entity.
type Bookmark struct {
	ID           int64
	Title        string
	URL          string
	Description  *string
	EntityType   *EntityType
	EntityID     *int64
	PrivacyLevel PrivacyLevel
	Tags         []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (b *Bookmark) Validate() error {
	if b.Title == "" {
		return fmt.Errorf("bookmark title is required: %w", apperr.ErrInvalidArgument)
	}
	if b.URL == "" {
		return fmt.Errorf("bookmark url is required: %w", apperr.ErrInvalidArgument)
	}
	if !ValidPrivacyLevels[string(b.PrivacyLevel)] {
		return fmt.Errorf("privacy_level %q must be one of public, internal, private: %w", b.PrivacyLevel, apperr.ErrInvalidArgument)
	}
	return ValidateEntityRef(b.EntityType, b.EntityID)
}
