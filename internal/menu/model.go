package menu

import (
	"time"

	"github.com/google/uuid"
)

// Categories a menu item may belong to, in the order the public menu
// renders them.
const (
	CategoryStarters = "starters"
	CategoryMains    = "mains"
	CategoryDesserts = "desserts"
	CategoryDrinks   = "drinks"
)

// ValidCategory reports whether c is a known menu category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryStarters, CategoryMains, CategoryDesserts, CategoryDrinks:
		return true
	}
	return false
}

// MenuItem represents a row in the menu_items table. Names and descriptions
// are stored in both Portuguese and English.
type MenuItem struct {
	ID            uuid.UUID
	NamePT        string
	NameEN        string
	DescriptionPT string
	DescriptionEN string
	Category      string
	PriceCents    int
	ImageURL      *string
	Available     bool
	Position      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
