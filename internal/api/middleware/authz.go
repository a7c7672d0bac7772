package middleware

import (
	"context"
	"net/http"

	"github.com/beiramar/pousada/internal/api/response"
	"github.com/beiramar/pousada/internal/auth"
	"github.com/beiramar/pousada/internal/identity"
)

const decisionKey contextKey = "authzDecision"

// AdminAuthorizer is the subset of auth.Gate the middleware needs.
type AdminAuthorizer interface {
	Authorize(ctx context.Context, id *identity.Identity) auth.Decision
}

// DecisionRecorder receives the outcome of every authorization decision.
type DecisionRecorder interface {
	RecordAuthDecision(method string, allowed bool)
}

// RequireAdmin returns middleware that runs the admin authorization gate on
// the authenticated identity and rejects non-admin callers with 403. The
// wrapped handler never runs for an unauthenticated or non-admin caller.
func RequireAdmin(gate AdminAuthorizer, recorder DecisionRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			id := GetIdentity(r.Context())
			if id == nil {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", requestID)
				return
			}

			decision := gate.Authorize(r.Context(), id)
			recorder.RecordAuthDecision(string(decision.Method), decision.IsAdmin)

			if !decision.IsAdmin {
				response.ErrWithDetails(w, http.StatusForbidden, "FORBIDDEN", "Admin access required",
					map[string]string{"method": string(decision.Method)}, requestID)
				return
			}

			ctx := context.WithValue(r.Context(), decisionKey, decision)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetDecision retrieves the authorization decision from the request context.
// Only set for requests that passed RequireAdmin.
func GetDecision(ctx context.Context) (auth.Decision, bool) {
	d, ok := ctx.Value(decisionKey).(auth.Decision)
	return d, ok
}
