package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beiramar/pousada/internal/auth"
	"github.com/beiramar/pousada/internal/identity"
)

const testCookieName = "sb-access-token"

type mockVerifier struct {
	verifyFn func(ctx context.Context, token string) (*identity.Identity, error)
	calls    []string
}

func (m *mockVerifier) VerifyToken(ctx context.Context, token string) (*identity.Identity, error) {
	m.calls = append(m.calls, token)
	if m.verifyFn != nil {
		return m.verifyFn(ctx, token)
	}
	return &identity.Identity{ID: "11111111-1111-1111-1111-111111111111", Email: "dona@beiramar.pt"}, nil
}

func TestResolver_BearerHeader(t *testing.T) {
	t.Parallel()

	verifier := &mockVerifier{}
	resolver := auth.NewResolver(verifier, testCookieName)

	req := httptest.NewRequest(http.MethodGet, "/admin/menu", nil)
	req.Header.Set("Authorization", "Bearer token-abc")

	id, serr := resolver.Resolve(req)

	require.Nil(t, serr)
	assert.Equal(t, "dona@beiramar.pt", id.Email)
	assert.Equal(t, []string{"token-abc"}, verifier.calls)
}

func TestResolver_SessionCookie(t *testing.T) {
	t.Parallel()

	verifier := &mockVerifier{}
	resolver := auth.NewResolver(verifier, testCookieName)

	req := httptest.NewRequest(http.MethodGet, "/admin/menu", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "cookie-token"})

	id, serr := resolver.Resolve(req)

	require.Nil(t, serr)
	assert.NotNil(t, id)
	assert.Equal(t, []string{"cookie-token"}, verifier.calls)
}

func TestResolver_HeaderWinsOverCookie(t *testing.T) {
	t.Parallel()

	verifier := &mockVerifier{}
	resolver := auth.NewResolver(verifier, testCookieName)

	req := httptest.NewRequest(http.MethodGet, "/admin/menu", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "cookie-token"})

	_, serr := resolver.Resolve(req)

	require.Nil(t, serr)
	assert.Equal(t, []string{"header-token"}, verifier.calls)
}

func TestResolver_NoCredential_ProviderNeverCalled(t *testing.T) {
	t.Parallel()

	verifier := &mockVerifier{}
	resolver := auth.NewResolver(verifier, testCookieName)

	req := httptest.NewRequest(http.MethodGet, "/admin/menu", nil)

	id, serr := resolver.Resolve(req)

	assert.Nil(t, id)
	require.NotNil(t, serr)
	assert.Equal(t, auth.NoCredential, serr.Kind)
	assert.Empty(t, verifier.calls)
}

func TestResolver_MalformedHeader_NoCredential(t *testing.T) {
	t.Parallel()

	verifier := &mockVerifier{}
	resolver := auth.NewResolver(verifier, testCookieName)

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/admin/menu", nil)
		req.Header.Set("Authorization", header)

		_, serr := resolver.Resolve(req)

		require.NotNil(t, serr, "header %q", header)
		assert.Equal(t, auth.NoCredential, serr.Kind, "header %q", header)
	}
	assert.Empty(t, verifier.calls)
}

func TestResolver_InvalidToken(t *testing.T) {
	t.Parallel()

	verifier := &mockVerifier{
		verifyFn: func(_ context.Context, _ string) (*identity.Identity, error) {
			return nil, identity.ErrInvalidToken
		},
	}
	resolver := auth.NewResolver(verifier, testCookieName)

	req := httptest.NewRequest(http.MethodGet, "/admin/menu", nil)
	req.Header.Set("Authorization", "Bearer expired")

	id, serr := resolver.Resolve(req)

	assert.Nil(t, id)
	require.NotNil(t, serr)
	assert.Equal(t, auth.InvalidCredential, serr.Kind)
	assert.ErrorIs(t, serr, identity.ErrInvalidToken)
}

func TestResolver_ProviderUnavailable(t *testing.T) {
	t.Parallel()

	verifier := &mockVerifier{
		verifyFn: func(_ context.Context, _ string) (*identity.Identity, error) {
			return nil, errors.New("dial tcp: connection refused")
		},
	}
	resolver := auth.NewResolver(verifier, testCookieName)

	req := httptest.NewRequest(http.MethodGet, "/admin/menu", nil)
	req.Header.Set("Authorization", "Bearer token")

	id, serr := resolver.Resolve(req)

	assert.Nil(t, id)
	require.NotNil(t, serr)
	assert.Equal(t, auth.ProviderUnavailable, serr.Kind)
}
