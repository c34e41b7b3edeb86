package domain

import (
	"fmt"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

// ValidateEntityRef checks a polymorphic (entity_type, entity_id) pair:
// both set or both absent, and the type one of the known entity kinds.
// Existence of the referenced row is not checked here.
func ValidateEntityRef(entityType *EntityType, entityID *int64) error {
	if (entityType == nil) != (entityID == nil) {
		return fmt.Errorf("entity_type and entity_id must be provided together: %w", apperr.ErrInvalidArgument)
	}
	if entityType == nil {
		return nil
	}
	if !ValidEntityTypes[string(*entityType)] {
		return fmt.Errorf("unknown entity_type %q: %w", *entityType, apperr.ErrInvalidArgument)
	}
	if *entityID <= 0 {
		return fmt.Errorf("entity_id must be positive: %w", apperr.ErrInvalidArgument)
	}
	return nil
}
