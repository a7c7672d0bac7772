// Package security provides sanitization of admin-authored HTML before it
// reaches the database.
package security

import "github.com/microcosm-cc/bluemonday"

// Sanitizer strips unsafe markup from rich-text fields (post bodies, room
// descriptions). The policy allows common formatting plus images and links
// with forced rel attributes.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer with the user-generated-content policy.
func NewSanitizer() *Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AllowAttrs("loading").OnElements("img")

	return &Sanitizer{policy: policy}
}

// Sanitize returns html with unsafe markup removed.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
