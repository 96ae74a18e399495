package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/talenthub/talenthub-api/internal/api/metrics"
)

const rateLimitedMessage = "Too many requests, please try again later."

// FixedWindowStore is an echo RateLimiterStore that admits at most limit
// requests per identifier in each window. Counters live in process memory.
type FixedWindowStore struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	counters  map[string]*windowCounter
	nextSweep time.Time
	now       func() time.Time
}

type windowCounter struct {
	start time.Time
	count int
}

func NewFixedWindowStore(limit int, window time.Duration) *FixedWindowStore {
	return &FixedWindowStore{
		limit:    limit,
		window:   window,
		counters: make(map[string]*windowCounter),
		now:      time.Now,
	}
}

// Allow satisfies echomiddleware.RateLimiterStore.
func (s *FixedWindowStore) Allow(identifier string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.After(s.nextSweep) {
		for id, wc := range s.counters {
			if now.Sub(wc.start) >= s.window {
				delete(s.counters, id)
			}
		}
		s.nextSweep = now.Add(s.window)
	}

	wc, ok := s.counters[identifier]
	if !ok || now.Sub(wc.start) >= s.window {
		wc = &windowCounter{start: now}
		s.counters[identifier] = wc
	}
	if wc.count >= s.limit {
		return false, nil
	}
	wc.count++
	return true, nil
}

// LoginRateLimit throttles requests per client IP with store.
func LoginRateLimit(store echomiddleware.RateLimiterStore) echo.MiddlewareFunc {
	deny := func(c echo.Context, _ string, _ error) error {
		metrics.LoginRateLimitedTotal.Inc()
		return c.String(http.StatusTooManyRequests, rateLimitedMessage)
	}
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler:  deny,
		ErrorHandler: func(c echo.Context, err error) error { return deny(c, "", err) },
	})
}
