package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/beiramar/pousada/internal/api/middleware"
	"github.com/beiramar/pousada/internal/api/response"
	"github.com/beiramar/pousada/internal/api/validation"
	"github.com/beiramar/pousada/internal/product"
)

type productRequest struct {
	NamePT        string  `json:"namePt"`
	NameEN        string  `json:"nameEn"`
	DescriptionPT string  `json:"descriptionPt"`
	DescriptionEN string  `json:"descriptionEn"`
	PriceCents    int     `json:"priceCents"`
	ImageURL      *string `json:"imageUrl"`
	Available     *bool   `json:"available"`
}

type productResponse struct {
	ID            string  `json:"id"`
	NamePT        string  `json:"namePt"`
	NameEN        string  `json:"nameEn"`
	DescriptionPT string  `json:"descriptionPt"`
	DescriptionEN string  `json:"descriptionEn"`
	PriceCents    int     `json:"priceCents"`
	ImageURL      *string `json:"imageUrl,omitempty"`
	Available     bool    `json:"available"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func toProductResponse(p *product.Product) productResponse {
	return productResponse{
		ID:            p.ID.String(),
		NamePT:        p.NamePT,
		NameEN:        p.NameEN,
		DescriptionPT: p.DescriptionPT,
		DescriptionEN: p.DescriptionEN,
		PriceCents:    p.PriceCents,
		ImageURL:      p.ImageURL,
		Available:     p.Available,
		CreatedAt:     p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:     p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// ProductHandler handles café product endpoints, public and admin.
type ProductHandler struct {
	repo product.Repository
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(repo product.Repository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// ListPublic handles GET /cafe/products. Only available products are returned.
func (h *ProductHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// List handles GET /admin/cafe/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request, availableOnly bool) {
	requestID := middleware.GetRequestID(r.Context())

	products, err := h.repo.List(r.Context(), availableOnly)
	if err != nil {
		slog.Error("failed to list products", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list products", requestID)
		return
	}

	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}

	response.SuccessList(w, http.StatusOK, out, len(out), 1, 100, requestID)
}

// Create handles POST /admin/cafe/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateProductRequest(validation.ProductRequest{
		NamePT:     req.NamePT,
		NameEN:     req.NameEN,
		PriceCents: req.PriceCents,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	p := &product.Product{
		NamePT:        req.NamePT,
		NameEN:        req.NameEN,
		DescriptionPT: req.DescriptionPT,
		DescriptionEN: req.DescriptionEN,
		PriceCents:    req.PriceCents,
		ImageURL:      req.ImageURL,
		Available:     true,
	}
	if req.Available != nil {
		p.Available = *req.Available
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		slog.Error("failed to create product", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create product", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toProductResponse(p), requestID)
}

// Update handles PATCH /admin/cafe/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Product not found", requestID)
			return
		}
		slog.Error("failed to get product", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update product", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateProductRequest(validation.ProductRequest{
		NamePT:     req.NamePT,
		NameEN:     req.NameEN,
		PriceCents: req.PriceCents,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	p.NamePT = req.NamePT
	p.NameEN = req.NameEN
	p.DescriptionPT = req.DescriptionPT
	p.DescriptionEN = req.DescriptionEN
	p.PriceCents = req.PriceCents
	p.ImageURL = req.ImageURL
	if req.Available != nil {
		p.Available = *req.Available
	}

	if err := h.repo.Update(r.Context(), p); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Product not found", requestID)
			return
		}
		slog.Error("failed to update product", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update product", requestID)
		return
	}

	response.Success(w, http.StatusOK, toProductResponse(p), requestID)
}

// Delete handles DELETE /admin/cafe/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Product not found", requestID)
			return
		}
		slog.Error("failed to delete product", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete product", requestID)
		return
	}

	response.NoContent(w)
}
