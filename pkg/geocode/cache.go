package geocode

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// cacheKey returns SHA-256 hex of the normalized address.
func cacheKey(address string) string {
	normalized := strings.ToLower(strings.TrimSpace(address))
	h := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", h)
}

type cacheEntry struct {
	pt      *Point
	matched bool
}

// Cached wraps a Geocoder with an in-memory memo. Non-matches are cached
// too, so an unknown address costs at most one upstream call per run. A
// planning batch re-geocodes the same district strings many times, which
// makes this worthwhile for the rate-limited Google provider.
type Cached struct {
	inner Geocoder

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCached wraps inner with result memoization.
func NewCached(inner Geocoder) *Cached {
	return &Cached{
		inner:   inner,
		entries: make(map[string]cacheEntry),
	}
}

func (c *Cached) Geocode(ctx context.Context, address string) (*Point, error) {
	key := cacheKey(address)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		zap.L().Debug("geocode cache hit",
			zap.String("key", key[:12]),
			zap.Bool("matched", entry.matched),
		)
		if !entry.matched {
			return nil, nil
		}
		pt := *entry.pt
		return &pt, nil
	}

	pt, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{pt: pt, matched: pt != nil}
	c.mu.Unlock()

	if pt == nil {
		return nil, nil
	}
	out := *pt
	return &out, nil
}

// Len reports the number of cached addresses.
func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
