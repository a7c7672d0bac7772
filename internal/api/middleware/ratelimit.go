package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/beiramar/pousada/internal/api/response"
)

// LimitRecorder receives a signal for every rejected request.
type LimitRecorder interface {
	RecordRateLimited()
}

// RateLimiter applies a per-client token bucket to the public surface.
// Clients are keyed by remote IP; stale entries are evicted in the
// background so the map does not grow without bound.
type RateLimiter struct {
	perMinute int
	burst     int
	recorder  LimitRecorder

	mu       sync.Mutex
	limiters map[string]*clientLimiter

	stopCh chan struct{}
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewRateLimiter creates a RateLimiter allowing perMinute requests per
// client and starts the cleanup loop. recorder may be nil.
func NewRateLimiter(perMinute int, recorder LimitRecorder) *RateLimiter {
	rl := &RateLimiter{
		perMinute: perMinute,
		burst:     perMinute,
		recorder:  recorder,
		limiters:  make(map[string]*clientLimiter),
		stopCh:    make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Handler wraps next with the rate limit. Over-limit requests get 429.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientKey(r)) {
			if rl.recorder != nil {
				rl.recorder.RecordRateLimited()
			}
			requestID := GetRequestID(r.Context())
			w.Header().Set("Retry-After", "60")
			response.Err(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests", requestID)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Stop terminates the cleanup loop.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(rl.perMinute)/60.0), rl.burst),
		}
		rl.limiters[key] = cl
	}
	cl.lastAccess = time.Now()
	rl.mu.Unlock()

	return cl.limiter.Allow()
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.cleanup(10 * time.Minute)
		}
	}
}

func (rl *RateLimiter) cleanup(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)

	rl.mu.Lock()
	for key, cl := range rl.limiters {
		if cl.lastAccess.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
	rl.mu.Unlock()
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
