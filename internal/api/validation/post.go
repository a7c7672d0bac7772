package validation

import (
	"regexp"
	"strings"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// PostRequest mirrors the fields needed for blog post validation.
type PostRequest struct {
	Slug    string
	TitlePT string
	TitleEN string
}

// ValidatePostRequest validates the fields of a create or update post request.
func ValidatePostRequest(req PostRequest) []FieldError {
	var errs []FieldError

	if req.Slug == "" {
		errs = append(errs, FieldError{Field: "slug", Message: "slug is required"})
	} else if len(req.Slug) > 120 || !slugRegex.MatchString(req.Slug) {
		errs = append(errs, FieldError{Field: "slug", Message: "slug must be lowercase alphanumeric with single hyphens, at most 120 characters"})
	}

	if strings.TrimSpace(req.TitlePT) == "" {
		errs = append(errs, FieldError{Field: "titlePt", Message: "titlePt is required"})
	}

	if strings.TrimSpace(req.TitleEN) == "" {
		errs = append(errs, FieldError{Field: "titleEn", Message: "titleEn is required"})
	}

	return errs
}
