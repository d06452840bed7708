package ratelimitsvc

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// MemoryStore is the single-instance counterpart of RedisStore: a fixed window per identifier,
// so a client gets at most limit requests until its window resets.
type MemoryStore struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	windows map[string]*clientWindow
	sweep   rate.Sometimes
	now     func() time.Time
}

type clientWindow struct {
	count   int
	resetAt time.Time
}

var _ middleware.RateLimiterStore = (*MemoryStore)(nil)

func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	return &MemoryStore{
		limit:   limit,
		window:  window,
		windows: map[string]*clientWindow{},
		sweep:   rate.Sometimes{Interval: window},
		now:     time.Now,
	}
}

func (s *MemoryStore) Allow(identifier string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep.Do(func() { s.dropExpired(now) })

	w, ok := s.windows[identifier]
	if !ok || !now.Before(w.resetAt) {
		w = &clientWindow{resetAt: now.Add(s.window)}
		s.windows[identifier] = w
	}
	w.count++
	return w.count <= s.limit, nil
}

// RetryAfter returns how long until the window of identifier resets.
func (s *MemoryStore) RetryAfter(identifier string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w, ok := s.windows[identifier]; ok {
		if left := w.resetAt.Sub(s.now()); left > 0 {
			return left
		}
	}
	return s.window
}

// dropExpired forgets clients whose window is over. Allow runs it at most once a window.
// Callers hold mu.
func (s *MemoryStore) dropExpired(now time.Time) {
	for id, w := range s.windows {
		if !now.Before(w.resetAt) {
			delete(s.windows, id)
		}
	}
}
