package entity

import (
	"context"
	"time"
)

// Lead is a named campaign bucket, keyed by the landing page route that
// captured the contact (e.g. "giveaway.k8s"). Leads are never deleted by
// the submission flow.
type Lead struct {
	ID        string    `json:"id"`
	Route     string    `json:"route"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LeadRepositoryInterface interface {
	FindOrCreate(ctx context.Context, route string) (*Lead, error)
	List(ctx context.Context) ([]Lead, error)
}
