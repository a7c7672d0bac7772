package validation

import (
	"strings"

	"github.com/beiramar/pousada/internal/menu"
)

// MenuItemRequest mirrors the fields needed for menu item validation.
type MenuItemRequest struct {
	NamePT     string
	NameEN     string
	Category   string
	PriceCents int
}

// ValidateMenuItemRequest validates the fields of a create or update menu
// item request. Returns a slice of field errors; empty slice means valid.
func ValidateMenuItemRequest(req MenuItemRequest) []FieldError {
	var errs []FieldError

	errs = append(errs, validateBilingualName(req.NamePT, req.NameEN)...)

	if req.Category == "" {
		errs = append(errs, FieldError{Field: "category", Message: "category is required"})
	} else if !menu.ValidCategory(req.Category) {
		errs = append(errs, FieldError{Field: "category", Message: "category must be one of starters, mains, desserts, drinks"})
	}

	if req.PriceCents < 0 {
		errs = append(errs, FieldError{Field: "priceCents", Message: "priceCents must not be negative"})
	}

	return errs
}

func validateBilingualName(namePT, nameEN string) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(namePT) == "" {
		errs = append(errs, FieldError{Field: "namePt", Message: "namePt is required"})
	} else if len(namePT) > 255 {
		errs = append(errs, FieldError{Field: "namePt", Message: "namePt must be at most 255 characters"})
	}

	if strings.TrimSpace(nameEN) == "" {
		errs = append(errs, FieldError{Field: "nameEn", Message: "nameEn is required"})
	} else if len(nameEN) > 255 {
		errs = append(errs, FieldError{Field: "nameEn", Message: "nameEn must be at most 255 characters"})
	}

	return errs
}
