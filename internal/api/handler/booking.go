package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/beiramar/pousada/internal/api/middleware"
	"github.com/beiramar/pousada/internal/api/response"
	"github.com/beiramar/pousada/internal/api/validation"
	"github.com/beiramar/pousada/internal/booking"
)

type createBookingRequest struct {
	Kind       string  `json:"kind"`
	RoomID     *string `json:"roomId"`
	GuestName  string  `json:"guestName"`
	GuestEmail string  `json:"guestEmail"`
	GuestPhone *string `json:"guestPhone"`
	PartySize  int     `json:"partySize"`
	StartsOn   string  `json:"startsOn"`
	EndsOn     *string `json:"endsOn"`
	Notes      *string `json:"notes"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status"`
}

type bookingResponse struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	RoomID     *string `json:"roomId,omitempty"`
	GuestName  string  `json:"guestName"`
	GuestEmail string  `json:"guestEmail"`
	GuestPhone *string `json:"guestPhone,omitempty"`
	PartySize  int     `json:"partySize"`
	StartsOn   string  `json:"startsOn"`
	EndsOn     *string `json:"endsOn,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

func toBookingResponse(b *booking.Booking) bookingResponse {
	out := bookingResponse{
		ID:         b.ID.String(),
		Kind:       b.Kind,
		GuestName:  b.GuestName,
		GuestEmail: b.GuestEmail,
		GuestPhone: b.GuestPhone,
		PartySize:  b.PartySize,
		StartsOn:   b.StartsOn.Format("2006-01-02"),
		Notes:      b.Notes,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:  b.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if b.RoomID != nil {
		s := b.RoomID.String()
		out.RoomID = &s
	}
	if b.EndsOn != nil {
		s := b.EndsOn.Format("2006-01-02")
		out.EndsOn = &s
	}
	return out
}

// BookingHandler handles booking requests from guests and the back office.
type BookingHandler struct {
	repo booking.Repository
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(repo booking.Repository) *BookingHandler {
	return &BookingHandler{repo: repo}
}

// Create handles POST /bookings. This is the only public write endpoint;
// new bookings always start out pending.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	roomID := ""
	if req.RoomID != nil {
		roomID = *req.RoomID
	}
	endsOn := ""
	if req.EndsOn != nil {
		endsOn = *req.EndsOn
	}
	fieldErrors := validation.ValidateCreateBookingRequest(validation.CreateBookingRequest{
		Kind:       req.Kind,
		RoomID:     roomID,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		PartySize:  req.PartySize,
		StartsOn:   req.StartsOn,
		EndsOn:     endsOn,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	startsOn, err := time.Parse("2006-01-02", req.StartsOn)
	if err != nil {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
			[]validation.FieldError{{Field: "startsOn", Message: "startsOn must be a date in YYYY-MM-DD format"}}, requestID)
		return
	}

	b := &booking.Booking{
		Kind:       req.Kind,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
		PartySize:  req.PartySize,
		StartsOn:   startsOn,
		Notes:      req.Notes,
		Status:     booking.StatusPending,
	}

	if req.Kind == booking.KindRoom {
		rid, err := uuid.Parse(roomID)
		if err != nil {
			response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
				[]validation.FieldError{{Field: "roomId", Message: "roomId must be a valid UUID"}}, requestID)
			return
		}
		b.RoomID = &rid

		end, err := time.Parse("2006-01-02", endsOn)
		if err != nil {
			response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
				[]validation.FieldError{{Field: "endsOn", Message: "endsOn must be a date in YYYY-MM-DD format"}}, requestID)
			return
		}
		if !end.After(startsOn) {
			response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
				[]validation.FieldError{{Field: "endsOn", Message: "endsOn must be after startsOn"}}, requestID)
			return
		}
		b.EndsOn = &end
	}

	if err := h.repo.Create(r.Context(), b); err != nil {
		slog.Error("failed to create booking", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking", requestID)
		return
	}

	slog.Info("booking created", "id", b.ID, "kind", b.Kind, "startsOn", req.StartsOn)

	response.Success(w, http.StatusCreated, toBookingResponse(b), requestID)
}

// List handles GET /admin/bookings with optional status and kind filters.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var filter booking.ListFilter
	if s := r.URL.Query().Get("status"); s != "" {
		if s != booking.StatusPending && s != booking.StatusConfirmed && s != booking.StatusCancelled {
			response.Err(w, http.StatusBadRequest, "INVALID_STATUS", "Unknown booking status", requestID)
			return
		}
		filter.Status = &s
	}
	if k := r.URL.Query().Get("kind"); k != "" {
		if !booking.ValidKind(k) {
			response.Err(w, http.StatusBadRequest, "INVALID_KIND", "Unknown booking kind", requestID)
			return
		}
		filter.Kind = &k
	}

	bookings, err := h.repo.List(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list bookings", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings", requestID)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}

	response.SuccessList(w, http.StatusOK, out, len(out), 1, 100, requestID)
}

// GetByID handles GET /admin/bookings/{id}.
func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	b, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Booking not found", requestID)
			return
		}
		slog.Error("failed to get booking", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get booking", requestID)
		return
	}

	response.Success(w, http.StatusOK, toBookingResponse(b), requestID)
}

// UpdateStatus handles PATCH /admin/bookings/{id}/status. Only pending
// bookings may be confirmed or cancelled.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateUpdateBookingStatusRequest(validation.UpdateBookingStatusRequest{Status: req.Status})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	b, err := h.repo.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Booking not found", requestID)
			return
		}
		if errors.Is(err, booking.ErrInvalidTransition) {
			response.Err(w, http.StatusConflict, "INVALID_TRANSITION", "Only pending bookings can change status", requestID)
			return
		}
		slog.Error("failed to update booking status", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update booking", requestID)
		return
	}

	slog.Info("booking status updated", "id", id, "status", req.Status)

	response.Success(w, http.StatusOK, toBookingResponse(b), requestID)
}

// Delete handles DELETE /admin/bookings/{id}.
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Booking not found", requestID)
			return
		}
		slog.Error("failed to delete booking", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete booking", requestID)
		return
	}

	response.NoContent(w)
}
