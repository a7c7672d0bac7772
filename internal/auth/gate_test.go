package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beiramar/pousada/internal/auth"
	"github.com/beiramar/pousada/internal/identity"
	"github.com/beiramar/pousada/internal/profile"
)

const ownerEmail = "dona@beiramar.pt"

// --- Mock Repository ---

type mockProfileRepo struct {
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*profile.Profile, error)
	getByEmailFn func(ctx context.Context, email string) (*profile.Profile, error)
	upsertFn     func(ctx context.Context, p *profile.Profile) error

	upsertCalls []*profile.Profile
	lookupCalls int
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	m.lookupCalls++
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, profile.ErrProfileNotFound
}

func (m *mockProfileRepo) GetByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	m.lookupCalls++
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, profile.ErrProfileNotFound
}

func (m *mockProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	m.upsertCalls = append(m.upsertCalls, p)
	if m.upsertFn != nil {
		return m.upsertFn(ctx, p)
	}
	return nil
}

func (m *mockProfileRepo) List(_ context.Context) ([]profile.Profile, error) {
	return nil, nil
}

func (m *mockProfileRepo) UpdateRole(_ context.Context, _ uuid.UUID, _ string) (*profile.Profile, error) {
	return nil, profile.ErrProfileNotFound
}

func (m *mockProfileRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return profile.ErrProfileNotFound
}

func adminIdentity() *identity.Identity {
	return &identity.Identity{ID: uuid.New().String(), Email: ownerEmail}
}

// ===== Owner email path =====

func TestGate_OwnerEmail_Allowed(t *testing.T) {
	t.Parallel()

	repo := &mockProfileRepo{}
	gate := auth.NewGate(ownerEmail, repo)

	decision := gate.Authorize(context.Background(), adminIdentity())

	assert.True(t, decision.IsAdmin)
	assert.Equal(t, auth.MethodEmailLiteral, decision.Method)
	assert.NoError(t, decision.Err)
}

func TestGate_OwnerEmail_AllowedEvenWhenStoreDown(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	repo := &mockProfileRepo{
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*profile.Profile, error) {
			return nil, storeErr
		},
		getByEmailFn: func(_ context.Context, _ string) (*profile.Profile, error) {
			return nil, storeErr
		},
		upsertFn: func(_ context.Context, _ *profile.Profile) error {
			return storeErr
		},
	}
	gate := auth.NewGate(ownerEmail, repo)

	decision := gate.Authorize(context.Background(), adminIdentity())

	assert.True(t, decision.IsAdmin)
	assert.Equal(t, auth.MethodEmailLiteral, decision.Method)
}

func TestGate_OwnerEmail_CaseSensitive(t *testing.T) {
	t.Parallel()

	repo := &mockProfileRepo{}
	gate := auth.NewGate(ownerEmail, repo)

	decision := gate.Authorize(context.Background(), &identity.Identity{
		ID:    uuid.New().String(),
		Email: "Dona@Beiramar.pt",
	})

	assert.False(t, decision.IsAdmin)
	assert.Equal(t, auth.MethodServiceRoleFallback, decision.Method)
}

func TestGate_OwnerEmail_UpsertsAdminProfile(t *testing.T) {
	t.Parallel()

	repo := &mockProfileRepo{}
	gate := auth.NewGate(ownerEmail, repo)

	id := adminIdentity()
	gate.Authorize(context.Background(), id)
	gate.Authorize(context.Background(), id)

	require.Len(t, repo.upsertCalls, 2)
	for _, p := range repo.upsertCalls {
		assert.Equal(t, id.ID, p.ID.String())
		assert.Equal(t, ownerEmail, p.Email)
		assert.Equal(t, profile.RoleAdmin, p.Role)
	}
}

func TestGate_OwnerEmail_MalformedIDSkipsUpsert(t *testing.T) {
	t.Parallel()

	repo := &mockProfileRepo{}
	gate := auth.NewGate(ownerEmail, repo)

	decision := gate.Authorize(context.Background(), &identity.Identity{
		ID:    "not-a-uuid",
		Email: ownerEmail,
	})

	assert.True(t, decision.IsAdmin)
	assert.Empty(t, repo.upsertCalls)
}

// ===== Profile role path =====

func TestGate_AdminProfileByID_Allowed(t *testing.T) {
	t.Parallel()

	pid := uuid.New()
	repo := &mockProfileRepo{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*profile.Profile, error) {
			require.Equal(t, pid, id)
			return &profile.Profile{ID: id, Email: "staff@beiramar.pt", Role: profile.RoleAdmin}, nil
		},
	}
	gate := auth.NewGate(ownerEmail, repo)

	decision := gate.Authorize(context.Background(), &identity.Identity{
		ID:    pid.String(),
		Email: "staff@beiramar.pt",
	})

	assert.True(t, decision.IsAdmin)
	assert.Equal(t, auth.MethodProfileRole, decision.Method)
}

func TestGate_UserRoleByID_DeniedWithoutEmailLookup(t *testing.T) {
	t.Parallel()

	pid := uuid.New()
	repo := &mockProfileRepo{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*profile.Profile, error) {
			return &profile.Profile{ID: id, Email: "guest@example.com", Role: profile.RoleUser}, nil
		},
	}
	gate := auth.NewGate(ownerEmail, repo)

	decision := gate.Authorize(context.Background(), &identity.Identity{
		ID:    pid.String(),
		Email: "guest@example.com",
	})

	// A found row is definitive; the email fallback must not run.
	assert.False(t, decision.IsAdmin)
	assert.Equal(t, auth.MethodProfileRole, decision.Method)
	assert.Equal(t, 1, repo.lookupCalls)
}

func TestGate_AdminProfileByEmail_WhenIDMalformed(t *testing.T) {
	t.Parallel()

	repo := &mockProfileRepo{
		getByEmailFn: func(_ context.Context, email string) (*profile.Profile, error) {
			require.Equal(t, "staff@beiramar.pt", email)
			return &profile.Profile{ID: uuid.New(), Email: email, Role: profile.RoleAdmin}, nil
		},
	}
	gate := auth.NewGate(ownerEmail, repo)

	decision := gate.Authorize(context.Background(), &identity.Identity{
		ID:    "legacy-subject",
		Email: "staff@beiramar.pt",
	})

	assert.True(t, decision.IsAdmin)
	assert.Equal(t, auth.MethodProfileRole, decision.Method)
}

func TestGate_AdminProfileByEmail_WhenIDRowMissing(t *testing.T) {
	t.Parallel()

	repo := &mockProfileRepo{
		getByEmailFn: func(_ context.Context, email string) (*profile.Profile, error) {
			return &profile.Profile{ID: uuid.New(), Email: email, Role: profile.RoleAdmin}, nil
		},
	}
	gate := auth.NewGate(ownerEmail, repo)

	decision := gate.Authorize(context.Background(), &identity.Identity{
		ID:    uuid.New().String(),
		Email: "staff@beiramar.pt",
	})

	assert.True(t, decision.IsAdmin)
	assert.Equal(t, auth.MethodProfileRole, decision.Method)
	assert.Equal(t, 2, repo.lookupCalls)
}

// ===== Deny-by-default =====

func TestGate_NoProfile_Denied(t *testing.T) {
	t.Parallel()

	repo := &mockProfileRepo{}
	gate := auth.NewGate(ownerEmail, repo)

	decision := gate.Authorize(context.Background(), &identity.Identity{
		ID:    uuid.New().String(),
		Email: "guest@example.com",
	})

	assert.False(t, decision.IsAdmin)
	assert.Equal(t, auth.MethodServiceRoleFallback, decision.Method)
	assert.NoError(t, decision.Err)
}

func TestGate_StoreError_Denied(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	repo := &mockProfileRepo{
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*profile.Profile, error) {
			return nil, storeErr
		},
		getByEmailFn: func(_ context.Context, _ string) (*profile.Profile, error) {
			return nil, storeErr
		},
	}
	gate := auth.NewGate(ownerEmail, repo)

	decision := gate.Authorize(context.Background(), &identity.Identity{
		ID:    uuid.New().String(),
		Email: "staff@beiramar.pt",
	})

	assert.False(t, decision.IsAdmin)
	assert.Equal(t, auth.MethodServiceRoleFallback, decision.Method)
	assert.ErrorIs(t, decision.Err, storeErr)
}

func TestGate_NilIdentity_Denied(t *testing.T) {
	t.Parallel()

	gate := auth.NewGate(ownerEmail, &mockProfileRepo{})

	decision := gate.Authorize(context.Background(), nil)

	assert.False(t, decision.IsAdmin)
	assert.Error(t, decision.Err)
}
