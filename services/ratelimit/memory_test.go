package ratelimitsvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newMemoryStore(limit int, window time.Duration) (*MemoryStore, *clock) {
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(limit, window)
	store.now = c.now
	return store, c
}

func allowed(t *testing.T, store *MemoryStore, identifier string, n int) int {
	t.Helper()
	var admitted int
	for i := 0; i < n; i++ {
		ok, err := store.Allow(identifier)
		require.NoError(t, err)
		if ok {
			admitted++
		}
	}
	return admitted
}

func TestMemoryStore_Allow(t *testing.T) {
	store, c := newMemoryStore(3, 15*time.Minute)

	assert.Equal(t, 3, allowed(t, store, "10.0.0.1", 5))
	// other clients have their own window
	assert.Equal(t, 1, allowed(t, store, "10.0.0.2", 1))

	c.advance(10 * time.Minute)
	assert.Equal(t, 5*time.Minute, store.RetryAfter("10.0.0.1"))
	assert.Equal(t, 15*time.Minute, store.RetryAfter("10.0.0.9"))

	// window reset
	c.advance(5 * time.Minute)
	assert.Equal(t, 3, allowed(t, store, "10.0.0.1", 5))
}

func TestMemoryStore_NoRefillWithinWindow(t *testing.T) {
	store, c := newMemoryStore(100, 15*time.Minute)

	// requests spread over a whole window never exceed the limit
	var admitted int
	for i := 0; i < 300; i++ {
		admitted += allowed(t, store, "10.0.0.1", 1)
		c.advance(3 * time.Second)
	}
	assert.Equal(t, 100, admitted)
}

func TestMemoryStore_DropsExpiredClients(t *testing.T) {
	store, c := newMemoryStore(1, time.Minute)

	allowed(t, store, "10.0.0.1", 1)
	allowed(t, store, "10.0.0.2", 1)
	c.advance(2 * time.Minute)
	allowed(t, store, "10.0.0.3", 1)

	store.mu.Lock()
	defer store.mu.Unlock()
	store.dropExpired(c.now())
	assert.Len(t, store.windows, 1)
	assert.Contains(t, store.windows, "10.0.0.3")
}
