package validation

import "github.com/beiramar/pousada/internal/profile"

// UpdateRoleRequest mirrors the fields needed for role update validation.
type UpdateRoleRequest struct {
	Role string
}

// ValidateUpdateRoleRequest validates an admin user role update.
func ValidateUpdateRoleRequest(req UpdateRoleRequest) []FieldError {
	var errs []FieldError

	if req.Role == "" {
		errs = append(errs, FieldError{Field: "role", Message: "role is required"})
	} else if req.Role != profile.RoleUser && req.Role != profile.RoleAdmin {
		errs = append(errs, FieldError{Field: "role", Message: "role must be \"user\" or \"admin\""})
	}

	return errs
}
