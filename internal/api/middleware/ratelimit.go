package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Jeffreasy/PasswordLab/internal/api/helpers"
)

// Adaptive hashing is deliberately slow, so the demo endpoints are limited per client IP.

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter holds the rate limiters for each visitor.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	config   LimiterConfig
}

type LimiterConfig struct {
	RPS   rate.Limit
	Burst int
	// IdleTTL is how long an unused limiter is kept before cleanup evicts it.
	IdleTTL time.Duration
}

// NewIPRateLimiter creates a per-IP rate limiter.
func NewIPRateLimiter(rps rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		config: LimiterConfig{
			RPS:     rps,
			Burst:   burst,
			IdleTTL: 10 * time.Minute,
		},
	}
}

// GetLimiter returns the rate limiter for the provided IP address.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	v, exists := i.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(i.config.RPS, i.config.Burst)}
		i.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Len returns the number of tracked visitors.
func (i *IPRateLimiter) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.visitors)
}

// Cleanup evicts visitors idle for longer than IdleTTL as of now.
func (i *IPRateLimiter) Cleanup(now time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for ip, v := range i.visitors {
		if now.Sub(v.lastSeen) > i.config.IdleTTL {
			delete(i.visitors, ip)
		}
	}
}

// Run calls Cleanup every interval until ctx is cancelled.
func (i *IPRateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			i.Cleanup(now)
		}
	}
}

// Middleware enforces the rate limit per IP.
func (i *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := helpers.GetRealIP(r).String()

		if !i.GetLimiter(ip).Allow() {
			slog.Warn("rate_limit_exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", "1")
			helpers.RespondError(w, http.StatusTooManyRequests, "Too Many Requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}
