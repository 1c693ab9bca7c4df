package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ActionLimiter throttles the action endpoints per user so a misbehaving
// rendering layer cannot hammer the remote decision service. Entries expire
// after a quiet period.
type ActionLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
}

// NewActionLimiter allows up to perSecond events per key with the given
// burst capacity.
func NewActionLimiter(perSecond float64, burst int) *ActionLimiter {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &ActionLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		ttl:      5 * time.Minute,
	}
}

// Allow reports whether the caller behind key may act now.
func (l *ActionLimiter) Allow(key string) bool {
	if key == "" {
		key = "unknown"
	}
	now := time.Now()

	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	for k, vv := range l.visitors {
		if now.Sub(vv.lastSeen) > l.ttl {
			delete(l.visitors, k)
		}
	}
	l.mu.Unlock()

	return v.limiter.Allow()
}

// Handler wraps next, keying on the userId query parameter (falling back to
// the remote address) and answering 429 for over-limit callers.
func (l *ActionLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("userId")
		if key == "" {
			key = r.RemoteAddr
		}
		if !l.Allow(key) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
