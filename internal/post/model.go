package post

import (
	"time"

	"github.com/google/uuid"
)

// Post represents a row in the posts table: a bilingual blog entry. Bodies
// carry sanitized HTML. PublishedAt is set once, on first publication.
type Post struct {
	ID            uuid.UUID
	Slug          string
	TitlePT       string
	TitleEN       string
	BodyPT        string
	BodyEN        string
	CoverImageURL *string
	Published     bool
	PublishedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
