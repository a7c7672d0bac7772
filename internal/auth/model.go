// Package auth resolves request credentials into identities and decides
// admin access. Every request runs the full chain; no decision is cached,
// so a role change takes effect on the next request.
package auth

import "fmt"

// SessionErrorKind classifies why a session could not be resolved.
type SessionErrorKind string

const (
	// NoCredential means the caller supplied no token or session cookie.
	NoCredential SessionErrorKind = "no_credential"
	// InvalidCredential means a credential was present but the identity
	// provider rejected it.
	InvalidCredential SessionErrorKind = "invalid_credential"
	// ProviderUnavailable means the identity provider could not be reached.
	ProviderUnavailable SessionErrorKind = "provider_unavailable"
)

// SessionError is the failure outcome of session resolution.
type SessionError struct {
	Kind SessionErrorKind
	Err  error
}

func (e *SessionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// Method records which check in the authorization chain produced a decision.
type Method string

const (
	// MethodEmailLiteral matched the injected always-admin operator address.
	MethodEmailLiteral Method = "email_literal"
	// MethodProfileRole resolved a definitive profile row, by id or email.
	MethodProfileRole Method = "profile_role"
	// MethodServiceRoleFallback is the terminal branch: no check produced a
	// definitive answer. It only ever denies.
	MethodServiceRoleFallback Method = "service_role_fallback"
)

// Decision is the outcome of the admin authorization gate for one request.
type Decision struct {
	IsAdmin bool
	Method  Method
	Err     error
}
