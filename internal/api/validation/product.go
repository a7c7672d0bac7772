package validation

// ProductRequest mirrors the fields needed for café product validation.
type ProductRequest struct {
	NamePT     string
	NameEN     string
	PriceCents int
}

// ValidateProductRequest validates the fields of a create or update product
// request.
func ValidateProductRequest(req ProductRequest) []FieldError {
	errs := validateBilingualName(req.NamePT, req.NameEN)

	if req.PriceCents < 0 {
		errs = append(errs, FieldError{Field: "priceCents", Message: "priceCents must not be negative"})
	}

	return errs
}
