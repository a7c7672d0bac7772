package identity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beiramar/pousada/internal/identity"
)

func TestVerifyToken_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "11111111-1111-1111-1111-111111111111",
			"email": "dona@beiramar.pt",
			"email_confirmed_at": "2026-01-15T10:00:00Z"
		}`))
	}))
	defer srv.Close()

	client := identity.NewClient(srv.URL, "anon-key")

	id, err := client.VerifyToken(context.Background(), "token-abc")

	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", id.ID)
	assert.Equal(t, "dona@beiramar.pt", id.Email)
	require.NotNil(t, id.EmailVerifiedAt)
}

func TestVerifyToken_Rejected(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		client := identity.NewClient(srv.URL, "anon-key")
		id, err := client.VerifyToken(context.Background(), "expired")
		srv.Close()

		assert.Nil(t, id)
		assert.ErrorIs(t, err, identity.ErrInvalidToken, "status %d", status)
	}
}

func TestVerifyToken_ProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := identity.NewClient(srv.URL, "anon-key")

	id, err := client.VerifyToken(context.Background(), "token")

	assert.Nil(t, id)
	require.Error(t, err)
	assert.NotErrorIs(t, err, identity.ErrInvalidToken)
}

func TestVerifyToken_ProviderUnreachable(t *testing.T) {
	t.Parallel()

	client := identity.NewClient("http://127.0.0.1:1", "anon-key")

	id, err := client.VerifyToken(context.Background(), "token")

	assert.Nil(t, id)
	require.Error(t, err)
	assert.NotErrorIs(t, err, identity.ErrInvalidToken)
}

func TestVerifyToken_IncompleteSubject(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "", "email": ""}`))
	}))
	defer srv.Close()

	client := identity.NewClient(srv.URL, "anon-key")

	id, err := client.VerifyToken(context.Background(), "token")

	assert.Nil(t, id)
	assert.Error(t, err)
}
