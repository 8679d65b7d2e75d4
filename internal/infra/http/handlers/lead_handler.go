package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cloudguides/leadcapture/internal/entity"
)

// LeadHandler is the admin surface over lead buckets. Leads are normally
// created as a side effect of submissions; this allows seeding them ahead
// of a campaign launch.
type LeadHandler struct {
	Leads entity.LeadRepositoryInterface
}

func NewLeadHandler(leads entity.LeadRepositoryInterface) *LeadHandler {
	return &LeadHandler{Leads: leads}
}

func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Leads.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leads")
		return
	}

	writeSuccess(w, http.StatusOK, "", leads)
}

func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Route string `json:"route"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if payload.Route == "" || len(payload.Route) > 255 {
		writeValidationErrors(w, map[string]string{"route": "is required and must not exceed 255 characters"})
		return
	}

	lead, err := h.Leads.FindOrCreate(r.Context(), payload.Route)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create lead")
		return
	}

	writeSuccess(w, http.StatusCreated, "Lead created successfully", lead)
}
