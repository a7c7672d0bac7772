package profile

import (
	"time"

	"github.com/google/uuid"
)

// Role values for a profile row.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile represents a row in the profiles table. The id matches the
// identity provider's subject id for the same account.
type Profile struct {
	ID        uuid.UUID
	Email     string
	Role      string
	FullName  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the profile carries the admin role.
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
