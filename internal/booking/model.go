package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking kinds: a restaurant table reservation or a room stay.
const (
	KindTable = "table"
	KindRoom  = "room"
)

// Booking statuses. Guests create pending requests; staff confirm or cancel
// them in the back office. Cancelled is terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// ValidKind reports whether k is a known booking kind.
func ValidKind(k string) bool {
	return k == KindTable || k == KindRoom
}

// ValidTransition reports whether a booking may move from one status to
// another. Only pending bookings change state.
func ValidTransition(from, to string) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusConfirmed || to == StatusCancelled
}

// Booking represents a row in the bookings table.
type Booking struct {
	ID         uuid.UUID
	Kind       string
	RoomID     *uuid.UUID // set for room stays; survives room deletion as nil
	GuestName  string
	GuestEmail string
	GuestPhone *string
	PartySize  int
	StartsOn   time.Time
	EndsOn     *time.Time // room stays only
	Notes      *string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
