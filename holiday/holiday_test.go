package holiday

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProviderNationalHolidays(t *testing.T) {
	p := NewStaticProvider()
	dates, err := p.HolidaysFor(context.Background(), 2025)
	require.NoError(t, err)

	s := NewSet(dates)
	assert.True(t, s.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, s.Contains(time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC)))
	assert.True(t, s.Contains(time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)))
	// Easter 2025 fell on April 20: Good Friday April 18, Corpus Christi June 19.
	assert.True(t, s.Contains(time.Date(2025, 4, 18, 0, 0, 0, 0, time.UTC)))
	assert.True(t, s.Contains(time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC)))
	// Carnival 2025: March 3 and 4.
	assert.True(t, s.Contains(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)))
	assert.True(t, s.Contains(time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)))

	assert.False(t, s.Contains(time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)))
}

func TestEasterSunday(t *testing.T) {
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), easterSunday(2024))
	assert.Equal(t, time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC), easterSunday(2025))
	assert.Equal(t, time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC), easterSunday(2026))
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.yml")
	content := "holidays:\n  - 2025-06-09\n  - 2025-11-20\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := LoadYAMLFile(path)
	require.NoError(t, err)

	dates, err := p.HolidaysFor(context.Background(), 2025)
	require.NoError(t, err)
	s := NewSet(dates)
	assert.True(t, s.Contains(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)), "extra regional date")
	assert.True(t, s.Contains(time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)), "national table still present")
}

func TestLoadYAMLFileInvalidDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.yml")
	require.NoError(t, os.WriteFile(path, []byte("holidays:\n  - not-a-date\n"), 0o644))

	_, err := LoadYAMLFile(path)
	assert.Error(t, err)
}

func TestAPIProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2025", r.URL.Path)
		w.Write([]byte(`[{"date":"2025-01-01","name":"Confraternização mundial"},{"date":"2025-04-21","name":"Tiradentes"}]`))
	}))
	defer srv.Close()

	p := &APIProvider{BaseURL: srv.URL, Client: srv.Client()}
	dates, err := p.HolidaysFor(context.Background(), 2025)
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC), dates[1])
}

func TestAPIProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := &APIProvider{BaseURL: srv.URL, Client: srv.Client()}
	_, err := p.HolidaysFor(context.Background(), 1800)
	assert.Error(t, err)
}

type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) HolidaysFor(context.Context, int) ([]time.Time, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return []time.Time{time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}, nil
}

func TestCachedProviderMemoizes(t *testing.T) {
	inner := &countingProvider{}
	p := Cached(inner)

	for i := 0; i < 3; i++ {
		dates, err := p.HolidaysFor(context.Background(), 2025)
		require.NoError(t, err)
		assert.Len(t, dates, 1)
	}
	assert.Equal(t, 1, inner.calls, "only the first lookup hits the source")
}

func TestCachedProviderDoesNotCacheFailures(t *testing.T) {
	inner := &countingProvider{err: errors.New("down")}
	p := Cached(inner)

	_, err := p.HolidaysFor(context.Background(), 2025)
	require.Error(t, err)

	inner.err = nil
	dates, err := p.HolidaysFor(context.Background(), 2025)
	require.NoError(t, err)
	assert.Len(t, dates, 1)
	assert.Equal(t, 2, inner.calls)
}

func TestFetchSetDegradesOnFailure(t *testing.T) {
	s := FetchSet(context.Background(), &countingProvider{err: errors.New("network down")}, 2024, 2025)
	assert.Empty(t, s, "provider failure yields an empty set, not an error")

	s = FetchSet(context.Background(), nil, 2025)
	assert.Empty(t, s)

	s = FetchSet(context.Background(), &countingProvider{}, 2025)
	assert.True(t, s.Contains(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)))
}
