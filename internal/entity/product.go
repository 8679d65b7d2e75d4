package entity

import (
	"context"
	"errors"
	"time"
)

// StripeProduct is a catalog entry managed through the admin area. The
// stripe_id links it to the product object on Stripe's side.
type StripeProduct struct {
	ID          string    `json:"id"`
	StripeID    string    `json:"stripe_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *StripeProduct) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Price < 0 {
		return errors.New("price must not be negative")
	}
	if len(p.Currency) != 3 {
		return errors.New("currency must be a 3 letter code")
	}
	return nil
}

type StripeProductRepositoryInterface interface {
	Create(ctx context.Context, p *StripeProduct) error
	FindByID(ctx context.Context, id string) (*StripeProduct, error)
	ListActive(ctx context.Context) ([]StripeProduct, error)
	Update(ctx context.Context, p *StripeProduct) error
	Delete(ctx context.Context, id string) error
}
