package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/beiramar/pousada/internal/identity"
	"github.com/beiramar/pousada/internal/profile"
)

// Gate decides admin access for a resolved identity. Checks run in a fixed
// order and the first definitive answer wins:
//
//  1. Case-sensitive match against the injected operator address. This keeps
//     the operator account usable even when the profiles table is down.
//  2. Profile row by id. A found row is definitive either way.
//  3. Profile row by email, for identities whose id is malformed or whose
//     row was keyed before the provider assigned the current id.
//
// A store error never grants access; the terminal branch always denies.
type Gate struct {
	adminEmail string
	profiles   profile.Repository
}

// NewGate creates a Gate. adminEmail is the always-admin operator address;
// profiles must be backed by the service-role connection.
func NewGate(adminEmail string, profiles profile.Repository) *Gate {
	return &Gate{
		adminEmail: adminEmail,
		profiles:   profiles,
	}
}

// Authorize runs the decision chain for the given identity.
func (g *Gate) Authorize(ctx context.Context, id *identity.Identity) Decision {
	if id == nil {
		return Decision{
			IsAdmin: false,
			Method:  MethodServiceRoleFallback,
			Err:     errors.New("no identity"),
		}
	}

	if id.Email == g.adminEmail {
		g.ensureAdminProfile(ctx, id)
		return Decision{IsAdmin: true, Method: MethodEmailLiteral}
	}

	var lookupErr error

	if pid, err := uuid.Parse(id.ID); err == nil {
		p, err := g.profiles.GetByID(ctx, pid)
		if err == nil {
			return Decision{IsAdmin: p.IsAdmin(), Method: MethodProfileRole}
		}
		if !errors.Is(err, profile.ErrProfileNotFound) {
			lookupErr = err
		}
	} else {
		lookupErr = fmt.Errorf("malformed identity id %q: %w", id.ID, err)
	}

	p, err := g.profiles.GetByEmail(ctx, id.Email)
	if err == nil {
		return Decision{IsAdmin: p.IsAdmin(), Method: MethodProfileRole}
	}
	if !errors.Is(err, profile.ErrProfileNotFound) {
		lookupErr = errors.Join(lookupErr, err)
	}

	if lookupErr != nil {
		slog.Warn("admin authorization fell through with lookup errors",
			"email", id.Email,
			"error", lookupErr,
		)
	}

	return Decision{
		IsAdmin: false,
		Method:  MethodServiceRoleFallback,
		Err:     lookupErr,
	}
}

// ensureAdminProfile lazily upserts the operator's profile row so later
// profile-based checks succeed too. Keyed by id, safe to repeat; failures
// are logged and do not affect the decision.
func (g *Gate) ensureAdminProfile(ctx context.Context, id *identity.Identity) {
	pid, err := uuid.Parse(id.ID)
	if err != nil {
		slog.Warn("cannot ensure admin profile: malformed identity id", "id", id.ID)
		return
	}

	p := &profile.Profile{
		ID:    pid,
		Email: id.Email,
		Role:  profile.RoleAdmin,
	}

	if err := g.profiles.Upsert(ctx, p); err != nil {
		slog.Warn("failed to ensure admin profile", "email", id.Email, "error", err)
	}
}
