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
	"github.com/beiramar/pousada/internal/room"
)

// HTMLSanitizer strips unsafe markup from admin-authored rich text.
type HTMLSanitizer interface {
	Sanitize(html string) string
}

type roomRequest struct {
	NamePT             string   `json:"namePt"`
	NameEN             string   `json:"nameEn"`
	DescriptionPT      string   `json:"descriptionPt"`
	DescriptionEN      string   `json:"descriptionEn"`
	Capacity           int      `json:"capacity"`
	PriceCentsPerNight int      `json:"priceCentsPerNight"`
	ImageURLs          []string `json:"imageUrls"`
	Available          *bool    `json:"available"`
}

type roomResponse struct {
	ID                 string   `json:"id"`
	NamePT             string   `json:"namePt"`
	NameEN             string   `json:"nameEn"`
	DescriptionPT      string   `json:"descriptionPt"`
	DescriptionEN      string   `json:"descriptionEn"`
	Capacity           int      `json:"capacity"`
	PriceCentsPerNight int      `json:"priceCentsPerNight"`
	ImageURLs          []string `json:"imageUrls"`
	Available          bool     `json:"available"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}

func toRoomResponse(rm *room.Room) roomResponse {
	urls := rm.ImageURLs
	if urls == nil {
		urls = []string{}
	}
	return roomResponse{
		ID:                 rm.ID.String(),
		NamePT:             rm.NamePT,
		NameEN:             rm.NameEN,
		DescriptionPT:      rm.DescriptionPT,
		DescriptionEN:      rm.DescriptionEN,
		Capacity:           rm.Capacity,
		PriceCentsPerNight: rm.PriceCentsPerNight,
		ImageURLs:          urls,
		Available:          rm.Available,
		CreatedAt:          rm.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:          rm.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// RoomHandler handles pousada room endpoints, public and admin.
type RoomHandler struct {
	repo      room.Repository
	sanitizer HTMLSanitizer
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(repo room.Repository, sanitizer HTMLSanitizer) *RoomHandler {
	return &RoomHandler{repo: repo, sanitizer: sanitizer}
}

// ListPublic handles GET /rooms. Only available rooms are returned.
func (h *RoomHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// List handles GET /admin/rooms.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *RoomHandler) list(w http.ResponseWriter, r *http.Request, availableOnly bool) {
	requestID := middleware.GetRequestID(r.Context())

	rooms, err := h.repo.List(r.Context(), availableOnly)
	if err != nil {
		slog.Error("failed to list rooms", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list rooms", requestID)
		return
	}

	out := make([]roomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, toRoomResponse(&rooms[i]))
	}

	response.SuccessList(w, http.StatusOK, out, len(out), 1, 100, requestID)
}

// GetByID handles GET /rooms/{id}.
func (h *RoomHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	rm, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Room not found", requestID)
			return
		}
		slog.Error("failed to get room", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get room", requestID)
		return
	}

	response.Success(w, http.StatusOK, toRoomResponse(rm), requestID)
}

// Create handles POST /admin/rooms.
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateRoomRequest(validation.RoomRequest{
		NamePT:             req.NamePT,
		NameEN:             req.NameEN,
		Capacity:           req.Capacity,
		PriceCentsPerNight: req.PriceCentsPerNight,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	rm := &room.Room{
		NamePT:             req.NamePT,
		NameEN:             req.NameEN,
		DescriptionPT:      h.sanitizer.Sanitize(req.DescriptionPT),
		DescriptionEN:      h.sanitizer.Sanitize(req.DescriptionEN),
		Capacity:           req.Capacity,
		PriceCentsPerNight: req.PriceCentsPerNight,
		ImageURLs:          req.ImageURLs,
		Available:          true,
	}
	if rm.ImageURLs == nil {
		rm.ImageURLs = []string{}
	}
	if req.Available != nil {
		rm.Available = *req.Available
	}

	if err := h.repo.Create(r.Context(), rm); err != nil {
		slog.Error("failed to create room", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create room", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toRoomResponse(rm), requestID)
}

// Update handles PATCH /admin/rooms/{id}.
func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	rm, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Room not found", requestID)
			return
		}
		slog.Error("failed to get room", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update room", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateRoomRequest(validation.RoomRequest{
		NamePT:             req.NamePT,
		NameEN:             req.NameEN,
		Capacity:           req.Capacity,
		PriceCentsPerNight: req.PriceCentsPerNight,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	rm.NamePT = req.NamePT
	rm.NameEN = req.NameEN
	rm.DescriptionPT = h.sanitizer.Sanitize(req.DescriptionPT)
	rm.DescriptionEN = h.sanitizer.Sanitize(req.DescriptionEN)
	rm.Capacity = req.Capacity
	rm.PriceCentsPerNight = req.PriceCentsPerNight
	if req.ImageURLs != nil {
		rm.ImageURLs = req.ImageURLs
	}
	if req.Available != nil {
		rm.Available = *req.Available
	}

	if err := h.repo.Update(r.Context(), rm); err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Room not found", requestID)
			return
		}
		slog.Error("failed to update room", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update room", requestID)
		return
	}

	response.Success(w, http.StatusOK, toRoomResponse(rm), requestID)
}

// Delete handles DELETE /admin/rooms/{id}.
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Room not found", requestID)
			return
		}
		slog.Error("failed to delete room", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete room", requestID)
		return
	}

	response.NoContent(w)
}
