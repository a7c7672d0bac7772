package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beiramar/pousada/internal/api/middleware"
)

func TestRecovery_PanicReturns500(t *testing.T) {
	t.Parallel()

	handler := middleware.Recovery(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(w, req)
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	env := parseErrorResponse(t, w)
	errObj := env["error"].(map[string]interface{})
	assert.Equal(t, "INTERNAL_ERROR", errObj["code"])
	assert.NotContains(t, errObj["message"], "boom")
}

func TestRecovery_NormalRequestPassesThrough(t *testing.T) {
	t.Parallel()

	called := false
	handler := middleware.Recovery(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}
