package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/magadrive/pricing-core/internal/config"
	"github.com/magadrive/pricing-core/internal/http/response"
	"github.com/magadrive/pricing-core/internal/observability"
)

const (
	limiterIdleExpiry   = 3 * time.Minute
	limiterSweepEvery   = time.Minute
	retryAfterSeconds   = "1"
	headerRetryAfter    = "Retry-After"
	rateLimitedResponse = "rate limit exceeded"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore keeps one token bucket per client and forgets idle clients.
type limiterStore struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterStore(rps float64, burst int, now func() time.Time) *limiterStore {
	return &limiterStore{
		mu:        sync.Mutex{},
		clients:   make(map[string]*clientLimiter),
		limit:     rate.Limit(rps),
		burst:     burst,
		lastSweep: now(),
		now:       now,
	}
}

// Allow reports whether the client may proceed now.
func (s *limiterStore) Allow(client string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= limiterSweepEvery {
		for key, c := range s.clients {
			if now.Sub(c.lastSeen) >= limiterIdleExpiry {
				delete(s.clients, key)
			}
		}
		s.lastSweep = now
	}

	c, exists := s.clients[client]
	if !exists {
		c = &clientLimiter{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.clients[client] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

func (s *limiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// RateLimit creates a per-client token bucket middleware keyed by remote
// address. It is a no-op when disabled.
func RateLimit(cfg *config.RateLimitConfig) Middleware {
	if cfg == nil || !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return rateLimit(newLimiterStore(cfg.RPS, cfg.Burst, time.Now))
}

func rateLimit(store *limiterStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientKey(r)
			if !store.Allow(client) {
				ctx := r.Context()
				observability.FromContext(ctx).Warn("rate limit exceeded",
					observability.String("client", client),
					observability.String("path", r.URL.Path),
				)

				w.Header().Set(headerRetryAfter, retryAfterSeconds)
				_ = response.Fail(w, observability.GetTraceID(ctx), http.StatusTooManyRequests,
					response.CodeRateLimited, rateLimitedResponse)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
