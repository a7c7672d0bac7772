package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beiramar/pousada/internal/security"
)

func TestSanitize_StripsScripts(t *testing.T) {
	t.Parallel()

	s := security.NewSanitizer()

	out := s.Sanitize(`<p>Bem-vindos</p><script>alert("x")</script>`)

	assert.Equal(t, "<p>Bem-vindos</p>", out)
}

func TestSanitize_StripsEventHandlers(t *testing.T) {
	t.Parallel()

	s := security.NewSanitizer()

	out := s.Sanitize(`<img src="praia.jpg" onerror="alert(1)" loading="lazy">`)

	assert.NotContains(t, out, "onerror")
	assert.Contains(t, out, `loading="lazy"`)
}

func TestSanitize_ForcesRelOnLinks(t *testing.T) {
	t.Parallel()

	s := security.NewSanitizer()

	out := s.Sanitize(`<a href="https://example.com">reservas</a>`)

	assert.Contains(t, out, "nofollow")
	assert.Contains(t, out, "reservas")
}

func TestSanitize_KeepsFormatting(t *testing.T) {
	t.Parallel()

	s := security.NewSanitizer()

	in := "<h2>Menu de Outono</h2><p><strong>Novos pratos</strong> da época.</p>"
	assert.Equal(t, in, s.Sanitize(in))
}
