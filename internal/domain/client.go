package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

// Client is a company or individual that work is billed to. Projects
// hang off clients, so deleting a client with projects is refused.
type Client struct {
	ID              int64
	Name            string
	Type            ClientType
	Status          ClientStatus
	ContactPersonID *int64
	Notes           *string
	Tags            []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (c *Client) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("client name is required: %w", apperr.ErrInvalidArgument)
	}
	if !ValidClientTypes[string(c.Type)] {
		return fmt.Errorf("client type %q must be one of company, individual: %w", c.Type, apperr.ErrInvalidArgument)
	}
	if !ValidClientStatuses[string(c.Status)] {
		return fmt.Errorf("client status %q must be one of active, past: %w", c.Status, apperr.ErrInvalidArgument)
	}
	return nil
}
