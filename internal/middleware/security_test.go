package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/journals", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "default-src 'self'", rec.Header().Get("Content-Security-Policy"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestGlobalRateLimitBlocksAfterBurst(t *testing.T) {
	h := GlobalRateLimit(okHandler())

	var lastStatus int
	for i := 0; i < globalRateLimitBurst+1; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
		req.RemoteAddr = "203.0.113.50:4242"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		lastStatus = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastStatus)
}

func TestGlobalRateLimitIsPerIP(t *testing.T) {
	h := GlobalRateLimit(okHandler())

	for i := 0; i < globalRateLimitBurst+1; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
		req.RemoteAddr = "203.0.113.60:1000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	req.RemoteAddr = "203.0.113.61:1000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRateLimitOnlyGuardsLoginPaths(t *testing.T) {
	h := LoginRateLimit(okHandler())

	// Exhaust the login allowance.
	for i := 0; i < loginRateLimitBurst; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", nil)
		req.RemoteAddr = "203.0.113.70:1000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", nil)
	req.RemoteAddr = "203.0.113.70:1000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Other paths are unaffected for the same IP.
	req = httptest.NewRequest(http.MethodGet, "/api/journals", nil)
	req.RemoteAddr = "203.0.113.70:1000"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
