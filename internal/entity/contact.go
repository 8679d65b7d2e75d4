package entity

import (
	"context"
	"time"
)

// Contact is a captured visitor. Email is the identity key; first_name is
// the only mutable attribute.
type Contact struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated on reads that join the association table.
	Leads []Lead `json:"leads,omitempty"`
}

type ContactRepositoryInterface interface {
	Create(ctx context.Context, c *Contact) error
	FindByID(ctx context.Context, id string) (*Contact, error)
	FindByEmail(ctx context.Context, email string) (*Contact, error)
	List(ctx context.Context, page, perPage int) ([]Contact, int, error)
	Update(ctx context.Context, c *Contact) error
	Delete(ctx context.Context, id string) error

	AttachLeads(ctx context.Context, contactID string, leadIDs []string) error
	DetachLeads(ctx context.Context, contactID string, leadIDs []string) error
	SyncLeads(ctx context.Context, contactID string, leadIDs []string) error
}
