package holiday

import (
	"context"
	"log"
	"sync"
	"time"
)

// CachedProvider memoizes another provider per year. A successful lookup is
// kept for the life of the process; failures are not cached so a transient
// outage heals on the next request.
type CachedProvider struct {
	inner Provider

	mu    sync.Mutex
	cache map[int][]time.Time
}

// Cached wraps a provider with a year-keyed in-memory cache.
func Cached(inner Provider) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: make(map[int][]time.Time),
	}
}

// HolidaysFor returns the cached dates for the year, consulting the wrapped
// provider on a miss.
func (p *CachedProvider) HolidaysFor(ctx context.Context, year int) ([]time.Time, error) {
	p.mu.Lock()
	if dates, ok := p.cache[year]; ok {
		p.mu.Unlock()
		return dates, nil
	}
	p.mu.Unlock()

	dates, err := p.inner.HolidaysFor(ctx, year)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[year] = dates
	p.mu.Unlock()
	return dates, nil
}

// Warm pre-loads the cache for the given years. Used at startup and from the
// scheduled refresh so request paths rarely pay for a network fetch.
func (p *CachedProvider) Warm(ctx context.Context, years ...int) {
	for _, year := range years {
		if _, err := p.HolidaysFor(ctx, year); err != nil {
			log.Printf("⚠️  [HOLIDAY] Cache warm failed for year %d: %v", year, err)
		}
	}
}
