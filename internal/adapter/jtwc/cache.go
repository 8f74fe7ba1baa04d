package jtwc

import (
	"context"
	"fmt"

	"github.com/couchcryptid/storm-data-cyclone-service/internal/domain"
	"github.com/couchcryptid/storm-data-cyclone-service/internal/observability"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedFetcher wraps a BulletinFetcher with an in-memory LRU cache.
// Bulletin URLs are reused for every warning of a cyclone, so entries are
// keyed by link and warning number: a new warning is always downloaded.
type CachedFetcher struct {
	inner   domain.BulletinFetcher
	cache   *lru.Cache[string, string]
	metrics *observability.Metrics
}

// NewCachedFetcher creates a cache decorator around a bulletin fetcher.
// Sizes below 1 are treated as 1.
func NewCachedFetcher(inner domain.BulletinFetcher, maxEntries int, metrics *observability.Metrics) *CachedFetcher {
	cache, err := lru.New[string, string](max(maxEntries, 1))
	if err != nil {
		panic(fmt.Sprintf("bulletin cache: %v", err))
	}
	return &CachedFetcher{
		inner:   inner,
		cache:   cache,
		metrics: metrics,
	}
}

func (c *CachedFetcher) FetchBulletin(ctx context.Context, header domain.CycloneHeader) (string, error) {
	key := cacheKey(header)
	if text, ok := c.cache.Get(key); ok {
		c.metrics.BulletinCache.WithLabelValues("hit").Inc()
		return text, nil
	}
	c.metrics.BulletinCache.WithLabelValues("miss").Inc()

	text, err := c.inner.FetchBulletin(ctx, header)
	if err != nil {
		return "", err
	}
	// Empty bodies are not cached so a half-published bulletin is retried.
	if text != "" {
		c.cache.Add(key, text)
	}
	return text, nil
}

func cacheKey(h domain.CycloneHeader) string {
	return fmt.Sprintf("%s|%d", h.BulletinLink, h.WarningNumber)
}
