package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cloudguides/leadcapture/internal/entity"
)

// ContactHandler is the admin CRUD surface over captured contacts and
// their lead associations.
type ContactHandler struct {
	Contacts entity.ContactRepositoryInterface
	Leads    entity.LeadRepositoryInterface
}

func NewContactHandler(contacts entity.ContactRepositoryInterface, leads entity.LeadRepositoryInterface) *ContactHandler {
	return &ContactHandler{Contacts: contacts, Leads: leads}
}

type contactPayload struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
}

type leadIDsPayload struct {
	LeadIDs []string `json:"lead_ids"`
}

func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	contacts, total, err := h.Contacts.List(r.Context(), page, perPage)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list contacts")
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{
		"contacts": contacts,
		"total":    total,
	})
}

func (h *ContactHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	contact, err := h.Contacts.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Contact not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load contact")
		return
	}

	writeSuccess(w, http.StatusOK, "", contact)
}

func (h *ContactHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload contactPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if fields := validateContactPayload(payload); len(fields) > 0 {
		writeValidationErrors(w, fields)
		return
	}

	contact := &entity.Contact{FirstName: payload.FirstName, Email: payload.Email}
	if err := h.Contacts.Create(r.Context(), contact); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			writeError(w, http.StatusConflict, "A contact with this email already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create contact")
		return
	}

	writeSuccess(w, http.StatusCreated, "Email created successfully", contact)
}

func (h *ContactHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload contactPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if fields := validateContactPayload(payload); len(fields) > 0 {
		writeValidationErrors(w, fields)
		return
	}

	contact := &entity.Contact{
		ID:        chi.URLParam(r, "id"),
		FirstName: payload.FirstName,
		Email:     payload.Email,
	}

	if err := h.Contacts.Update(r.Context(), contact); err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			writeError(w, http.StatusNotFound, "Contact not found")
		case errors.Is(err, entity.ErrEmailAlreadyExists):
			writeError(w, http.StatusConflict, "A contact with this email already exists")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update contact")
		}
		return
	}

	writeSuccess(w, http.StatusOK, "Email updated successfully", contact)
}

func (h *ContactHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Contacts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Contact not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete contact")
		return
	}

	writeSuccess(w, http.StatusOK, "Email deleted successfully", nil)
}

func (h *ContactHandler) HandleAttachLeads(w http.ResponseWriter, r *http.Request) {
	h.handleLeadAssociation(w, r, h.Contacts.AttachLeads, "Leads attached successfully", true)
}

func (h *ContactHandler) HandleDetachLeads(w http.ResponseWriter, r *http.Request) {
	h.handleLeadAssociation(w, r, h.Contacts.DetachLeads, "Leads detached successfully", true)
}

// Sync replaces the whole set, so an empty list is a valid request.
func (h *ContactHandler) HandleSyncLeads(w http.ResponseWriter, r *http.Request) {
	h.handleLeadAssociation(w, r, h.Contacts.SyncLeads, "Leads synced successfully", false)
}

func (h *ContactHandler) handleLeadAssociation(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, contactID string, leadIDs []string) error,
	successMsg string,
	requireIDs bool,
) {
	var payload leadIDsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if requireIDs && len(payload.LeadIDs) == 0 {
		writeValidationErrors(w, map[string]string{"lead_ids": "is required"})
		return
	}

	contactID := chi.URLParam(r, "id")
	if _, err := h.Contacts.FindByID(r.Context(), contactID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Contact not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load contact")
		return
	}

	if err := op(r.Context(), contactID, payload.LeadIDs); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update lead associations")
		return
	}

	writeSuccess(w, http.StatusOK, successMsg, nil)
}

func validateContactPayload(payload contactPayload) map[string]string {
	fields := map[string]string{}
	if len(payload.FirstName) < 2 || len(payload.FirstName) > 255 {
		fields["first_name"] = "must be between 2 and 255 characters"
	}
	if payload.Email == "" || len(payload.Email) > 255 {
		fields["email"] = "is required and must not exceed 255 characters"
	}
	return fields
}
