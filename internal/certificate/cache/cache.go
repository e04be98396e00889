// Package cache provides a TTL-bounded read-through cache for certificate
// verification answers. Verification is the hot read path (external parties
// checking a document hash), so stale positives are bounded by the TTL and
// revocation invalidates eagerly.
package cache

import (
	"context"
	"sync"
	"time"
)

// VerificationCache stores hash -> validity answers.
type VerificationCache interface {
	// Get returns the cached answer and whether one was present.
	Get(ctx context.Context, contentHash string) (valid bool, ok bool, err error)
	Set(ctx context.Context, contentHash string, valid bool) error
	Invalidate(ctx context.Context, contentHash string) error
}

type cachedAnswer struct {
	valid    bool
	storedAt time.Time
}

// InMemoryCache is the default cache when Redis is not configured.
type InMemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	answers map[string]cachedAnswer
}

func NewInMemoryCache(ttl time.Duration) *InMemoryCache {
	return &InMemoryCache{ttl: ttl, answers: make(map[string]cachedAnswer)}
}

func (c *InMemoryCache) Get(_ context.Context, contentHash string) (bool, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if cached, ok := c.answers[contentHash]; ok {
		if time.Since(cached.storedAt) < c.ttl {
			return cached.valid, true, nil
		}
	}
	return false, false, nil
}

func (c *InMemoryCache) Set(_ context.Context, contentHash string, valid bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers[contentHash] = cachedAnswer{valid: valid, storedAt: time.Now()}
	return nil
}

func (c *InMemoryCache) Invalidate(_ context.Context, contentHash string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.answers, contentHash)
	return nil
}
