package validation

import (
	"net/mail"
	"strings"

	"github.com/beiramar/pousada/internal/booking"
)

// CreateBookingRequest mirrors the fields needed for booking validation.
type CreateBookingRequest struct {
	Kind       string
	RoomID     string
	GuestName  string
	GuestEmail string
	PartySize  int
	StartsOn   string
	EndsOn     string
}

// ValidateCreateBookingRequest validates the fields of a public booking
// request. Dates are ISO 8601 calendar dates.
func ValidateCreateBookingRequest(req CreateBookingRequest) []FieldError {
	var errs []FieldError

	if req.Kind == "" {
		errs = append(errs, FieldError{Field: "kind", Message: "kind is required"})
	} else if !booking.ValidKind(req.Kind) {
		errs = append(errs, FieldError{Field: "kind", Message: "kind must be \"table\" or \"room\""})
	}

	if req.Kind == booking.KindRoom {
		if req.RoomID == "" {
			errs = append(errs, FieldError{Field: "roomId", Message: "roomId is required for room bookings"})
		}
		if req.EndsOn == "" {
			errs = append(errs, FieldError{Field: "endsOn", Message: "endsOn is required for room bookings"})
		}
	}

	if strings.TrimSpace(req.GuestName) == "" {
		errs = append(errs, FieldError{Field: "guestName", Message: "guestName is required"})
	}

	if req.GuestEmail == "" {
		errs = append(errs, FieldError{Field: "guestEmail", Message: "guestEmail is required"})
	} else if _, err := mail.ParseAddress(req.GuestEmail); err != nil {
		errs = append(errs, FieldError{Field: "guestEmail", Message: "guestEmail must be a valid email address"})
	}

	if req.PartySize < 1 {
		errs = append(errs, FieldError{Field: "partySize", Message: "partySize must be at least 1"})
	}

	if req.StartsOn == "" {
		errs = append(errs, FieldError{Field: "startsOn", Message: "startsOn is required"})
	}

	return errs
}

// UpdateBookingStatusRequest mirrors the fields needed for status updates.
type UpdateBookingStatusRequest struct {
	Status string
}

// ValidateUpdateBookingStatusRequest validates a booking status update.
func ValidateUpdateBookingStatusRequest(req UpdateBookingStatusRequest) []FieldError {
	var errs []FieldError

	if req.Status == "" {
		errs = append(errs, FieldError{Field: "status", Message: "status is required"})
	} else if req.Status != booking.StatusConfirmed && req.Status != booking.StatusCancelled {
		errs = append(errs, FieldError{Field: "status", Message: "status must be \"confirmed\" or \"cancelled\""})
	}

	return errs
}
