package jtwc

import (
	"context"
	"errors"
	"testing"

	"github.com/couchcryptid/storm-data-cyclone-service/internal/domain"
	"github.com/couchcryptid/storm-data-cyclone-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingFetcher struct {
	calls int
	text  string
	err   error
}

func (m *countingFetcher) FetchBulletin(_ context.Context, _ domain.CycloneHeader) (string, error) {
	m.calls++
	return m.text, m.err
}

func noruHeader(warning int) domain.CycloneHeader {
	return domain.CycloneHeader{
		Code:          "07W",
		WarningNumber: warning,
		BulletinLink:  "https://www.metoc.navy.mil/jtwc/products/wp0717web.txt",
	}
}

// --- CachedFetcher tests ---

func TestCachedFetcher_CacheHit(t *testing.T) {
	inner := &countingFetcher{text: "bulletin"}
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedFetcher(inner, 10, metrics)

	t1, err := cached.FetchBulletin(context.Background(), noruHeader(47))
	require.NoError(t, err)
	t2, err := cached.FetchBulletin(context.Background(), noruHeader(47))
	require.NoError(t, err)

	assert.Equal(t, "bulletin", t1)
	assert.Equal(t, t1, t2)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.Equal(t, 1.0, counterValue(t, metrics.BulletinCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, counterValue(t, metrics.BulletinCache.WithLabelValues("miss")))
}

func TestCachedFetcher_NewWarningMisses(t *testing.T) {
	inner := &countingFetcher{text: "bulletin"}
	cached := NewCachedFetcher(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.FetchBulletin(context.Background(), noruHeader(47))
	_, _ = cached.FetchBulletin(context.Background(), noruHeader(48))

	assert.Equal(t, 2, inner.calls)
}

func TestCachedFetcher_ErrorsNotCached(t *testing.T) {
	inner := &countingFetcher{err: errors.New("timeout")}
	cached := NewCachedFetcher(inner, 10, observability.NewMetricsForTesting())

	_, err := cached.FetchBulletin(context.Background(), noruHeader(47))
	require.Error(t, err)
	_, err = cached.FetchBulletin(context.Background(), noruHeader(47))
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 0, cached.cache.Len())
}

func TestCachedFetcher_EmptyTextNotCached(t *testing.T) {
	inner := &countingFetcher{}
	cached := NewCachedFetcher(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.FetchBulletin(context.Background(), noruHeader(47))
	_, _ = cached.FetchBulletin(context.Background(), noruHeader(47))

	assert.Equal(t, 2, inner.calls)
}

func TestCachedFetcher_EvictsLeastRecentlyUsed(t *testing.T) {
	inner := &countingFetcher{text: "bulletin"}
	cached := NewCachedFetcher(inner, 2, observability.NewMetricsForTesting())
	ctx := context.Background()

	_, _ = cached.FetchBulletin(ctx, noruHeader(46))
	_, _ = cached.FetchBulletin(ctx, noruHeader(47))
	_, _ = cached.FetchBulletin(ctx, noruHeader(46)) // promotes 46
	_, _ = cached.FetchBulletin(ctx, noruHeader(48)) // evicts 47
	require.Equal(t, 3, inner.calls)
	assert.Equal(t, 2, cached.cache.Len())

	_, _ = cached.FetchBulletin(ctx, noruHeader(46))
	assert.Equal(t, 3, inner.calls, "46 was used recently and stays cached")

	_, _ = cached.FetchBulletin(ctx, noruHeader(47))
	assert.Equal(t, 4, inner.calls, "47 was evicted")
}

func TestCachedFetcher_NonPositiveSize(t *testing.T) {
	inner := &countingFetcher{text: "bulletin"}
	cached := NewCachedFetcher(inner, 0, observability.NewMetricsForTesting())

	_, _ = cached.FetchBulletin(context.Background(), noruHeader(47))
	_, _ = cached.FetchBulletin(context.Background(), noruHeader(47))

	assert.Equal(t, 1, inner.calls)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "https://www.metoc.navy.mil/jtwc/products/wp0717web.txt|47", cacheKey(noruHeader(47)))
}
