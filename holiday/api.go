package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultAPIBaseURL is the public BrasilAPI endpoint for national holidays.
const DefaultAPIBaseURL = "https://brasilapi.com.br/api/feriados/v1"

// APIProvider fetches holidays from a BrasilAPI-compatible endpoint. It has
// no cache of its own; wrap it with Cached before putting it on a request
// path.
type APIProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewAPIProvider returns an APIProvider against BrasilAPI with a bounded
// request timeout.
func NewAPIProvider() *APIProvider {
	return &APIProvider{
		BaseURL: DefaultAPIBaseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// HolidaysFor fetches the holiday list of a year.
func (p *APIProvider) HolidaysFor(ctx context.Context, year int) ([]time.Time, error) {
	url := fmt.Sprintf("%s/%d", p.BaseURL, year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching holidays for %d: %w", year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday API returned status %d for year %d", resp.StatusCode, year)
	}

	var payload []struct {
		Date string `json:"date"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding holiday API response: %w", err)
	}

	dates := make([]time.Time, 0, len(payload))
	for _, h := range payload {
		d, err := time.Parse(dateKey, h.Date)
		if err != nil {
			return nil, fmt.Errorf("holiday API returned invalid date %q: %w", h.Date, err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}
