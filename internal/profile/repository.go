package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when a profile record is not found.
var ErrProfileNotFound = errors.New("profile not found")

// ErrDuplicateEmail is returned when an email is already taken by another profile.
var ErrDuplicateEmail = errors.New("email already in use")

// Repository provides operations on the profiles table. Implementations are
// constructed with the service-role connection so admin lookups are not
// subject to row-level security.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
	List(ctx context.Context) ([]Profile, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (*Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
