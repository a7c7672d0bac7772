package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/beiramar/pousada/internal/api/response"
	"github.com/beiramar/pousada/internal/auth"
	"github.com/beiramar/pousada/internal/identity"
)

const identityKey contextKey = "identity"

// SessionResolver is the subset of auth.Resolver the middleware needs.
type SessionResolver interface {
	Resolve(r *http.Request) (*identity.Identity, *auth.SessionError)
}

// Authenticate is middleware that resolves the request's credential (bearer
// header or session cookie) into an Identity. Unauthenticated requests are
// rejected before the next handler runs.
func Authenticate(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			id, serr := resolver.Resolve(r)
			if serr != nil {
				switch serr.Kind {
				case auth.NoCredential:
					response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", requestID)
				case auth.InvalidCredential:
					response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired credentials", requestID)
				default:
					slog.Error("identity provider unavailable", "error", serr, "requestId", requestID)
					response.Err(w, http.StatusInternalServerError, "PROVIDER_UNAVAILABLE", "Authentication service unavailable", requestID)
				}
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the authenticated Identity from the request context.
func GetIdentity(ctx context.Context) *identity.Identity {
	if id, ok := ctx.Value(identityKey).(*identity.Identity); ok {
		return id
	}
	return nil
}
