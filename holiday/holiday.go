package holiday

import (
	"context"
	"log"
	"time"
)

// Provider resolves the holiday dates of a calendar year. Implementations may
// hit the network; callers on a request path should wrap them with Cached.
type Provider interface {
	HolidaysFor(ctx context.Context, year int) ([]time.Time, error)
}

// Set is a lookup table of holiday dates, keyed by calendar day.
type Set map[string]struct{}

const dateKey = "2006-01-02"

// NewSet builds a Set from a list of dates. Time-of-day is ignored.
func NewSet(dates []time.Time) Set {
	s := make(Set, len(dates))
	for _, d := range dates {
		s[d.Format(dateKey)] = struct{}{}
	}
	return s
}

// Contains reports whether the given date is a holiday.
func (s Set) Contains(t time.Time) bool {
	_, ok := s[t.Format(dateKey)]
	return ok
}

// Add inserts a date into the set.
func (s Set) Add(t time.Time) {
	s[t.Format(dateKey)] = struct{}{}
}

// FetchSet collects the holidays of the given years into one Set. A provider
// failure never propagates: the year is skipped with a warning and the
// computation continues without holiday awareness for it.
func FetchSet(ctx context.Context, p Provider, years ...int) Set {
	s := make(Set)
	if p == nil {
		return s
	}
	for _, year := range years {
		dates, err := p.HolidaysFor(ctx, year)
		if err != nil {
			log.Printf("⚠️  [HOLIDAY] Lookup failed for year %d, treating all days as regular: %v", year, err)
			continue
		}
		for _, d := range dates {
			s.Add(d)
		}
	}
	return s
}
