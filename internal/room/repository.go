package room

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrRoomNotFound is returned when a room record is not found.
var ErrRoomNotFound = errors.New("room not found")

// Repository provides operations on the rooms table.
type Repository interface {
	Create(ctx context.Context, rm *Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	List(ctx context.Context, availableOnly bool) ([]Room, error)
	Update(ctx context.Context, rm *Room) error
	Delete(ctx context.Context, id uuid.UUID) error
}
