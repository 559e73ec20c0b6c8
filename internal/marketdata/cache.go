package marketdata

import (
	"context"
	"sync"
	"time"

	"pmcc-analyzer/internal/models"
)

// CachingProvider wraps a Provider with a bounded-staleness cache. The
// freshness policy lives here with the caller, never in the engine: every
// entry carries its FetchedAt and is re-fetched once older than the TTL.
type CachingProvider struct {
	inner Provider
	ttl   time.Duration
	now   func() time.Time

	mu     sync.Mutex
	spots  map[string]*SpotInfo
	chains map[chainKey]chainEntry
}

type chainKey struct {
	symbol string
	expiry int64
}

type chainEntry struct {
	quotes    []models.OptionQuote
	fetchedAt time.Time
}

// NewCachingProvider wraps inner with a TTL cache.
func NewCachingProvider(inner Provider, ttl time.Duration) *CachingProvider {
	return &CachingProvider{
		inner:  inner,
		ttl:    ttl,
		now:    time.Now,
		spots:  make(map[string]*SpotInfo),
		chains: make(map[chainKey]chainEntry),
	}
}

// GetSpotAndExpiries serves a cached result while fresh, otherwise
// delegates and stores the new snapshot.
func (c *CachingProvider) GetSpotAndExpiries(ctx context.Context, symbol string) (*SpotInfo, error) {
	c.mu.Lock()
	if info, ok := c.spots[symbol]; ok && c.now().Sub(info.FetchedAt) < c.ttl {
		c.mu.Unlock()
		return info, nil
	}
	c.mu.Unlock()

	info, err := c.inner.GetSpotAndExpiries(ctx, symbol)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.spots[symbol] = info
	c.mu.Unlock()
	return info, nil
}

// GetCallChain serves a cached chain while fresh.
func (c *CachingProvider) GetCallChain(ctx context.Context, symbol string, expiry time.Time) ([]models.OptionQuote, error) {
	key := chainKey{symbol: symbol, expiry: expiry.Unix()}

	c.mu.Lock()
	if entry, ok := c.chains[key]; ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		c.mu.Unlock()
		return entry.quotes, nil
	}
	c.mu.Unlock()

	quotes, err := c.inner.GetCallChain(ctx, symbol, expiry)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.chains[key] = chainEntry{quotes: quotes, fetchedAt: c.now()}
	c.mu.Unlock()
	return quotes, nil
}
