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
	"github.com/beiramar/pousada/internal/menu"
)

type menuItemRequest struct {
	NamePT        string  `json:"namePt"`
	NameEN        string  `json:"nameEn"`
	DescriptionPT string  `json:"descriptionPt"`
	DescriptionEN string  `json:"descriptionEn"`
	Category      string  `json:"category"`
	PriceCents    int     `json:"priceCents"`
	ImageURL      *string `json:"imageUrl"`
	Available     *bool   `json:"available"`
	Position      int     `json:"position"`
}

type menuItemResponse struct {
	ID            string  `json:"id"`
	NamePT        string  `json:"namePt"`
	NameEN        string  `json:"nameEn"`
	DescriptionPT string  `json:"descriptionPt"`
	DescriptionEN string  `json:"descriptionEn"`
	Category      string  `json:"category"`
	PriceCents    int     `json:"priceCents"`
	ImageURL      *string `json:"imageUrl,omitempty"`
	Available     bool    `json:"available"`
	Position      int     `json:"position"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func toMenuItemResponse(item *menu.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:            item.ID.String(),
		NamePT:        item.NamePT,
		NameEN:        item.NameEN,
		DescriptionPT: item.DescriptionPT,
		DescriptionEN: item.DescriptionEN,
		Category:      item.Category,
		PriceCents:    item.PriceCents,
		ImageURL:      item.ImageURL,
		Available:     item.Available,
		Position:      item.Position,
		CreatedAt:     item.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:     item.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// MenuHandler handles restaurant menu endpoints, public and admin.
type MenuHandler struct {
	repo menu.Repository
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(repo menu.Repository) *MenuHandler {
	return &MenuHandler{repo: repo}
}

// ListPublic handles GET /menu. Only available items are returned.
func (h *MenuHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// List handles GET /admin/menu.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *MenuHandler) list(w http.ResponseWriter, r *http.Request, availableOnly bool) {
	requestID := middleware.GetRequestID(r.Context())

	filter := menu.ListFilter{AvailableOnly: availableOnly}
	if c := r.URL.Query().Get("category"); c != "" {
		if !menu.ValidCategory(c) {
			response.Err(w, http.StatusBadRequest, "INVALID_CATEGORY", "Unknown menu category", requestID)
			return
		}
		filter.Category = &c
	}

	items, err := h.repo.List(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list menu items", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list menu items", requestID)
		return
	}

	out := make([]menuItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toMenuItemResponse(&items[i]))
	}

	response.SuccessList(w, http.StatusOK, out, len(out), 1, 100, requestID)
}

// Create handles POST /admin/menu.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateMenuItemRequest(validation.MenuItemRequest{
		NamePT:     req.NamePT,
		NameEN:     req.NameEN,
		Category:   req.Category,
		PriceCents: req.PriceCents,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	item := &menu.MenuItem{
		NamePT:        req.NamePT,
		NameEN:        req.NameEN,
		DescriptionPT: req.DescriptionPT,
		DescriptionEN: req.DescriptionEN,
		Category:      req.Category,
		PriceCents:    req.PriceCents,
		ImageURL:      req.ImageURL,
		Available:     true,
		Position:      req.Position,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := h.repo.Create(r.Context(), item); err != nil {
		slog.Error("failed to create menu item", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create menu item", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toMenuItemResponse(item), requestID)
}

// Update handles PATCH /admin/menu/{id}.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	item, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, menu.ErrItemNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Menu item not found", requestID)
			return
		}
		slog.Error("failed to get menu item", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update menu item", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateMenuItemRequest(validation.MenuItemRequest{
		NamePT:     req.NamePT,
		NameEN:     req.NameEN,
		Category:   req.Category,
		PriceCents: req.PriceCents,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	item.NamePT = req.NamePT
	item.NameEN = req.NameEN
	item.DescriptionPT = req.DescriptionPT
	item.DescriptionEN = req.DescriptionEN
	item.Category = req.Category
	item.PriceCents = req.PriceCents
	item.ImageURL = req.ImageURL
	item.Position = req.Position
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := h.repo.Update(r.Context(), item); err != nil {
		if errors.Is(err, menu.ErrItemNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Menu item not found", requestID)
			return
		}
		slog.Error("failed to update menu item", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update menu item", requestID)
		return
	}

	response.Success(w, http.StatusOK, toMenuItemResponse(item), requestID)
}

// Delete handles DELETE /admin/menu/{id}.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, menu.ErrItemNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Menu item not found", requestID)
			return
		}
		slog.Error("failed to delete menu item", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete menu item", requestID)
		return
	}

	response.NoContent(w)
}
