package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beiramar/pousada/internal/api/middleware"
)

type stubLimitRecorder struct {
	count int
}

func (s *stubLimitRecorder) RecordRateLimited() {
	s.count++
}

func TestRateLimiter_AllowsWithinBudget(t *testing.T) {
	t.Parallel()

	rl := middleware.NewRateLimiter(60, nil)
	defer rl.Stop()

	called := false
	handler := rl.Handler(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestRateLimiter_RejectsOverBudget(t *testing.T) {
	t.Parallel()

	recorder := &stubLimitRecorder{}
	rl := middleware.NewRateLimiter(2, recorder)
	defer rl.Stop()

	called := false
	handler := rl.Handler(okHandler(&called))

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.RemoteAddr = "203.0.113.8:51234"
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, "60", last.Header().Get("Retry-After"))
	assert.Equal(t, 1, recorder.count)

	env := parseErrorResponse(t, last)
	errObj := env["error"].(map[string]interface{})
	assert.Equal(t, "RATE_LIMITED", errObj["code"])
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	t.Parallel()

	rl := middleware.NewRateLimiter(1, nil)
	defer rl.Stop()

	called := false
	handler := rl.Handler(okHandler(&called))

	first := httptest.NewRequest(http.MethodGet, "/menu", nil)
	first.RemoteAddr = "203.0.113.9:1000"
	w1 := httptest.NewRecorder()
	handler.ServeHTTP(w1, first)

	exhausted := httptest.NewRequest(http.MethodGet, "/menu", nil)
	exhausted.RemoteAddr = "203.0.113.9:1001"
	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, exhausted)

	other := httptest.NewRequest(http.MethodGet, "/menu", nil)
	other.RemoteAddr = "203.0.113.10:1000"
	w3 := httptest.NewRecorder()
	handler.ServeHTTP(w3, other)

	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code, "same IP shares one bucket")
	assert.Equal(t, http.StatusOK, w3.Code, "a different IP gets its own bucket")
}
