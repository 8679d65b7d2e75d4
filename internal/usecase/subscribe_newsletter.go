package usecase

import (
	"context"
	"log"

	"github.com/cloudguides/leadcapture/internal/infra/integration/mailerlite"
)

// SubscribeNewsletterUseCase is the remote-only flow: no local persistence,
// the provider is the single source of truth. Used by the newsletter API.
type SubscribeNewsletterUseCase struct {
	Subscribers SubscriberGateway
	Groups      map[string]string
}

func NewSubscribeNewsletterUseCase(subscribers SubscriberGateway, groups map[string]string) *SubscribeNewsletterUseCase {
	if groups == nil {
		groups = map[string]string{}
	}
	return &SubscribeNewsletterUseCase{Subscribers: subscribers, Groups: groups}
}

func (uc *SubscribeNewsletterUseCase) Execute(ctx context.Context, input SubscribeNewsletterInput) (*SubscribeNewsletterOutput, error) {
	if validationErrors := ValidateSubscribeNewsletterInput(input); len(validationErrors) > 0 {
		return nil, newValidationError(validationErrors)
	}

	fields := map[string]string{}
	if input.Name != "" {
		fields["name"] = input.Name
	}
	if input.Country != "" {
		fields["country"] = input.Country
	}

	subscribed := true
	if input.Subscribed != nil {
		subscribed = *input.Subscribed
	}

	subscriber, err := uc.Subscribers.CreateSubscriber(ctx, mailerlite.CreateSubscriberInput{
		Email:      input.Email,
		Fields:     fields,
		Groups:     uc.resolveGroups(input.Groups),
		Subscribed: subscribed,
	})
	if err != nil {
		log.Printf("newsletter subscribe failed: email=%s err=%v", input.Email, err)
		return nil, &TechnicalError{
			Code:    CodeRemoteSync,
			Message: "failed to create subscriber: " + err.Error(),
		}
	}

	log.Printf("newsletter subscriber created: email=%s subscriber_id=%s", input.Email, subscriber.ID)

	return &SubscribeNewsletterOutput{
		Subscriber: subscriber,
		Msg:        "Successfully subscribed to newsletter!",
	}, nil
}

// Status checks the remote subscriber record. Used to gate resource pages
// on a prior subscription; absence is a regular answer, not an error.
func (uc *SubscribeNewsletterUseCase) Status(ctx context.Context, email string) (*NewsletterStatusOutput, error) {
	if validationErrors := validateEmail(email); len(validationErrors) > 0 {
		return nil, newValidationError(validationErrors)
	}

	subscriber, err := uc.Subscribers.GetSubscriberByEmail(ctx, email)
	if err != nil {
		log.Printf("newsletter status lookup failed: email=%s err=%v", email, err)
		return nil, &TechnicalError{
			Code:    CodeRemoteSync,
			Message: "failed to look up subscriber: " + err.Error(),
		}
	}

	out := &NewsletterStatusOutput{Email: email}
	if subscriber == nil {
		return out, nil
	}

	out.Subscribed = subscriber.Status == "active"
	out.Status = subscriber.Status
	for _, g := range subscriber.Groups {
		out.Groups = append(out.Groups, g.ID)
	}

	return out, nil
}

// Group entries may be short config keys or raw provider group IDs; known
// keys resolve through the map, all-digit values pass through, anything
// else is dropped rather than failing the submission.
func (uc *SubscribeNewsletterUseCase) resolveGroups(keys []string) []string {
	var groups []string
	for _, key := range keys {
		if id, ok := uc.Groups[key]; ok && id != "" {
			groups = append(groups, id)
			continue
		}
		if isDigits(key) {
			groups = append(groups, key)
		}
	}
	return groups
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
