package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cloudguides/leadcapture/internal/entity"
)

type ProductHandler struct {
	Products entity.StripeProductRepositoryInterface
}

func NewProductHandler(products entity.StripeProductRepositoryInterface) *ProductHandler {
	return &ProductHandler{Products: products}
}

type productPayload struct {
	StripeID    string  `json:"stripe_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Active      *bool   `json:"active"`
}

func (p productPayload) toEntity(id string) *entity.StripeProduct {
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return &entity.StripeProduct{
		ID:          id,
		StripeID:    p.StripeID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Currency:    p.Currency,
		Active:      active,
	}
}

func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.ListActive(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	writeSuccess(w, http.StatusOK, "", products)
}

func (h *ProductHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	product, err := h.Products.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}

	writeSuccess(w, http.StatusOK, "", product)
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	product := payload.toEntity("")
	if err := product.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.Products.Create(r.Context(), product); err != nil {
		if errors.Is(err, entity.ErrDuplicate) {
			writeError(w, http.StatusConflict, "A product with this stripe_id already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	writeSuccess(w, http.StatusCreated, "Product created successfully", product)
}

func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	product := payload.toEntity(chi.URLParam(r, "id"))
	if err := product.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.Products.Update(r.Context(), product); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	writeSuccess(w, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	writeSuccess(w, http.StatusOK, "Product deleted successfully", nil)
}
