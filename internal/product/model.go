package product

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a row in the products table: items sold at the café
// counter, separate from the restaurant menu.
type Product struct {
	ID            uuid.UUID
	NamePT        string
	NameEN        string
	DescriptionPT string
	DescriptionEN string
	PriceCents    int
	ImageURL      *string
	Available     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
