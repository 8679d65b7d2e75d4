package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cloudguides/leadcapture/internal/infra/http/middleware"
	"github.com/cloudguides/leadcapture/internal/usecase"
)

type NewsletterHandler struct {
	SubscribeUC *usecase.SubscribeNewsletterUseCase
}

func NewNewsletterHandler(uc *usecase.SubscribeNewsletterUseCase) *NewsletterHandler {
	return &NewsletterHandler{SubscribeUC: uc}
}

func (h *NewsletterHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubscribeNewsletterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	output, err := h.SubscribeUC.Execute(r.Context(), input)
	if err != nil {
		var domainErr *usecase.DomainError
		if errors.As(err, &domainErr) {
			writeValidationErrors(w, domainErr.Fields)
			return
		}

		middleware.RecordSyncError("mailerlite")
		writeError(w, http.StatusInternalServerError, "An error occurred while subscribing to the newsletter")
		return
	}

	writeSuccess(w, http.StatusCreated, output.Msg, output.Subscriber)
}

// HandleStatus reports whether the email has an active remote subscription.
// Resource pages use it to gate downloads on a prior opt-in.
func (h *NewsletterHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	output, err := h.SubscribeUC.Status(r.Context(), email)
	if err != nil {
		var domainErr *usecase.DomainError
		if errors.As(err, &domainErr) {
			writeValidationErrors(w, domainErr.Fields)
			return
		}

		middleware.RecordSyncError("mailerlite")
		writeError(w, http.StatusBadGateway, genericFailureMsg)
		return
	}

	writeSuccess(w, http.StatusOK, "Subscription status checked", output)
}
