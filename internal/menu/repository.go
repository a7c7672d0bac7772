package menu

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrItemNotFound is returned when a menu item record is not found.
var ErrItemNotFound = errors.New("menu item not found")

// ListFilter narrows a menu listing.
type ListFilter struct {
	// AvailableOnly hides items flagged unavailable; the public surface
	// always sets it.
	AvailableOnly bool
	Category      *string
}

// Repository provides operations on the menu_items table.
type Repository interface {
	Create(ctx context.Context, item *MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*MenuItem, error)
	List(ctx context.Context, filter ListFilter) ([]MenuItem, error)
	Update(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}
