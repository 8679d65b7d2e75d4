package usecase

import (
	"context"
	"log"

	"github.com/cloudguides/leadcapture/internal/infra/integration/mailerlite"
)

type SubmitEmailUseCase struct {
	Store       SubmissionStore
	Subscribers SubscriberGateway

	// Lead route -> provider group ID. Unmapped routes sync without a group.
	Groups map[string]string
}

func NewSubmitEmailUseCase(store SubmissionStore, subscribers SubscriberGateway, groups map[string]string) *SubmitEmailUseCase {
	if groups == nil {
		groups = map[string]string{}
	}
	return &SubmitEmailUseCase{
		Store:       store,
		Subscribers: subscribers,
		Groups:      groups,
	}
}

// Execute runs the whole submission: validate, persist locally, then sync
// the subscriber remotely. Local capture is committed before the remote
// call so a provider outage never loses the email; a sync failure still
// surfaces as an error distinct from validation.
func (uc *SubmitEmailUseCase) Execute(ctx context.Context, input SubmitEmailInput) (*SubmitEmailOutput, error) {
	if validationErrors := ValidateSubmitEmailInput(input); len(validationErrors) > 0 {
		return nil, newValidationError(validationErrors)
	}

	groups := uc.resolveGroups(input.LeadRoute)

	contact, lead, created, err := uc.Store.Record(ctx, input.Email, input.Name, input.LeadRoute)
	if err != nil {
		log.Printf("submission failed to persist: email=%s lead_route=%s err=%v", input.Email, input.LeadRoute, err)
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "failed to persist submission: " + err.Error(),
		}
	}

	subscriber, err := uc.Subscribers.CreateSubscriber(ctx, mailerlite.CreateSubscriberInput{
		Email:      input.Email,
		Fields:     map[string]string{"name": input.Name},
		Groups:     groups,
		Subscribed: true,
	})
	if err != nil {
		log.Printf("submission persisted but remote sync failed: email=%s lead_route=%s err=%v", input.Email, input.LeadRoute, err)
		return nil, &TechnicalError{
			Code:    CodeRemoteSync,
			Message: "failed to sync subscriber: " + err.Error(),
		}
	}

	log.Printf("email submission successful: email=%s lead_route=%s subscriber_id=%s new_contact=%t",
		contact.Email, lead.Route, subscriber.ID, created)

	msg := "Success!"
	if input.RedirectURL != "" {
		msg = "Your free guide is on its way."
	}

	return &SubmitEmailOutput{
		ContactID:    contact.ID,
		LeadRoute:    lead.Route,
		NewContact:   created,
		SubscriberID: subscriber.ID,
		RedirectURL:  input.RedirectURL,
		Msg:          msg,
	}, nil
}

func (uc *SubmitEmailUseCase) resolveGroups(route string) []string {
	if id, ok := uc.Groups[route]; ok && id != "" {
		return []string{id}
	}
	return nil
}
