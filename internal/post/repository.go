package post

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrPostNotFound is returned when a post record is not found.
var ErrPostNotFound = errors.New("post not found")

// ErrDuplicateSlug is returned when a slug is already taken by another post.
var ErrDuplicateSlug = errors.New("slug already in use")

// Repository provides operations on the posts table.
type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	// GetBySlug only returns published posts; it backs the public surface.
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, publishedOnly bool) ([]Post, error)
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}
