package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/beiramar/pousada/internal/identity"
)

// TokenVerifier is the subset of the identity provider client needed for
// session resolution.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*identity.Identity, error)
}

// Resolver extracts an identity from either an Authorization bearer header
// or the provider's session cookie, normalizing both into one shape.
type Resolver struct {
	verifier   TokenVerifier
	cookieName string
}

// NewResolver creates a Resolver using the given verifier and the name of
// the cookie the hosted provider stores its access token in.
func NewResolver(verifier TokenVerifier, cookieName string) *Resolver {
	return &Resolver{
		verifier:   verifier,
		cookieName: cookieName,
	}
}

// Resolve produces the request's Identity or a SessionError. The bearer
// header wins when both sources are present. When no credential exists the
// provider is never called.
func (r *Resolver) Resolve(req *http.Request) (*identity.Identity, *SessionError) {
	token, serr := r.extractToken(req)
	if serr != nil {
		return nil, serr
	}

	id, err := r.verifier.VerifyToken(req.Context(), token)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			return nil, &SessionError{Kind: InvalidCredential, Err: err}
		}
		return nil, &SessionError{Kind: ProviderUnavailable, Err: err}
	}

	return id, nil
}

func (r *Resolver) extractToken(req *http.Request) (string, *SessionError) {
	if header := req.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", &SessionError{Kind: NoCredential}
		}
		return parts[1], nil
	}

	cookie, err := req.Cookie(r.cookieName)
	if err != nil || cookie.Value == "" {
		return "", &SessionError{Kind: NoCredential}
	}

	return cookie.Value, nil
}
