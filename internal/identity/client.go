// Package identity talks to the hosted authentication provider. The server
// never verifies credentials itself; every token is forwarded to the
// provider's user endpoint and the returned subject is mapped to an Identity.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrInvalidToken is returned when the provider rejects a token (expired,
// malformed signature, revoked session).
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the verified subject of a request. It lives for one request
// and is never persisted.
type Identity struct {
	ID              string
	Email           string
	EmailVerifiedAt *time.Time
}

// Client calls the hosted identity provider over HTTP.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewClient creates a Client for the given provider base URL and public key.
func NewClient(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type userResponse struct {
	ID               string  `json:"id"`
	Email            string  `json:"email"`
	EmailConfirmedAt *string `json:"email_confirmed_at"`
}

// VerifyToken forwards a bearer token to the provider's user endpoint and
// maps the returned subject to an Identity. Rejected tokens return
// ErrInvalidToken; transport failures and unexpected statuses are wrapped
// so callers can treat them as provider outages.
func (c *Client) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("building verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling identity provider: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Fall through to decode.
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrInvalidToken
	default:
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var u userResponse
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decoding identity provider response: %w", err)
	}

	if u.ID == "" || u.Email == "" {
		return nil, fmt.Errorf("identity provider returned incomplete subject")
	}

	id := &Identity{
		ID:    u.ID,
		Email: u.Email,
	}

	if u.EmailConfirmedAt != nil && *u.EmailConfirmedAt != "" {
		if t, err := time.Parse(time.RFC3339, *u.EmailConfirmedAt); err == nil {
			id.EmailVerifiedAt = &t
		}
	}

	return id, nil
}
