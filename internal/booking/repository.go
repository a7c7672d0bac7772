package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrBookingNotFound is returned when a booking record is not found.
var ErrBookingNotFound = errors.New("booking not found")

// ErrInvalidTransition is returned for a status change the state machine
// does not allow.
var ErrInvalidTransition = errors.New("invalid booking status transition")

// ListFilter narrows a booking listing.
type ListFilter struct {
	Status *string
	Kind   *string
}

// Repository provides operations on the bookings table.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	List(ctx context.Context, filter ListFilter) ([]Booking, error)
	// UpdateStatus applies a transition; the pending check happens in the
	// same statement so concurrent updates cannot race past it.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// CancelPendingBefore cancels pending bookings created before the
	// cutoff and returns how many were affected.
	CancelPendingBefore(ctx context.Context, cutoff time.Time) (int, error)
}
