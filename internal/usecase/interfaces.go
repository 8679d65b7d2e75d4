package usecase

import (
	"context"

	"github.com/cloudguides/leadcapture/internal/entity"
	"github.com/cloudguides/leadcapture/internal/infra/integration/mailerlite"
)

// SubmissionStore persists a validated submission atomically: contact
// upsert, lead upsert and association in one transaction.
type SubmissionStore interface {
	Record(ctx context.Context, email, firstName, route string) (*entity.Contact, *entity.Lead, bool, error)
}

// SubscriberGateway mirrors contacts into the email marketing provider.
type SubscriberGateway interface {
	CreateSubscriber(ctx context.Context, input mailerlite.CreateSubscriberInput) (*mailerlite.Subscriber, error)
	GetSubscriberByEmail(ctx context.Context, email string) (*mailerlite.Subscriber, error)
}

type SubmitEmailInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	LeadRoute   string `json:"lead_route"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

type SubmitEmailOutput struct {
	ContactID    string `json:"contact_id"`
	LeadRoute    string `json:"lead_route"`
	NewContact   bool   `json:"new_contact"`
	SubscriberID string `json:"subscriber_id,omitempty"`
	RedirectURL  string `json:"-"`
	Msg          string `json:"msg"`
}

type SubscribeNewsletterInput struct {
	Email      string   `json:"email"`
	Name       string   `json:"name,omitempty"`
	Country    string   `json:"country,omitempty"`
	Groups     []string `json:"groups,omitempty"`
	Subscribed *bool    `json:"status,omitempty"`
}

type SubscribeNewsletterOutput struct {
	Subscriber *mailerlite.Subscriber `json:"subscriber"`
	Msg        string                 `json:"msg"`
}

type NewsletterStatusOutput struct {
	Email      string   `json:"email"`
	Subscribed bool     `json:"subscribed"`
	Status     string   `json:"status,omitempty"`
	Groups     []string `json:"groups,omitempty"`
}
