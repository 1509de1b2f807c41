package forecast

import (
	"context"
	"time"

	"vendaboard/models"
	"vendaboard/store"
)

// --- Test fakes for the store interfaces ---

type fakeHistory struct {
	rows     []models.HistoryRow
	pageSize int
	latest   time.Time
	queries  int
}

func (f *fakeHistory) Query(_ context.Context, q store.HistoryQuery, page int) ([]models.HistoryRow, bool, error) {
	f.queries++
	ids := make(map[string]bool, len(q.EntityIDs))
	for _, id := range q.EntityIDs {
		ids[id] = true
	}
	matched := []models.HistoryRow{}
	for _, r := range f.rows {
		if ids[r.EntityID] && !r.Date.Before(q.Start) && !r.Date.After(q.End) {
			matched = append(matched, r)
		}
	}

	size := f.pageSize
	if size <= 0 {
		size = 1000
	}
	start := page * size
	if start >= len(matched) {
		return nil, false, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], end-start == size, nil
}

func (f *fakeHistory) LatestDate(_ context.Context, entityIDs []string) (time.Time, error) {
	if !f.latest.IsZero() {
		return f.latest, nil
	}
	ids := make(map[string]bool, len(entityIDs))
	for _, id := range entityIDs {
		ids[id] = true
	}
	var latest time.Time
	for _, r := range f.rows {
		if ids[r.EntityID] && r.Date.After(latest) {
			latest = r.Date
		}
	}
	return latest, nil
}

type fakeSummary struct {
	total float64
	err   error
}

func (f *fakeSummary) MonthlyTotal(context.Context, []string, int, time.Month) (float64, error) {
	return f.total, f.err
}

type fakeStock struct {
	rows   map[string][]models.StockRow
	errFor map[string]error
	err    error
}

func (f *fakeStock) StockFor(_ context.Context, itemID, _ string) ([]models.StockRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := f.errFor[itemID]; err != nil {
		return nil, err
	}
	return f.rows[itemID], nil
}

type fakeCatalog struct {
	company      *models.Company
	saleProducts []string
	groups       map[string]bool
	rawMaterials []models.TrackableItem
	resale       []models.TrackableItem
}

func (f *fakeCatalog) GetCompany(_ context.Context, id string) (*models.Company, error) {
	if f.company == nil || f.company.ID != id {
		return nil, store.ErrNotFound
	}
	return f.company, nil
}

func (f *fakeCatalog) GroupExists(_ context.Context, id string) (bool, error) {
	return f.groups[id], nil
}

func (f *fakeCatalog) SaleProductIDs(context.Context, string) ([]string, error) {
	return f.saleProducts, nil
}

func (f *fakeCatalog) RawMaterials(context.Context, string) ([]models.TrackableItem, error) {
	return f.rawMaterials, nil
}

func (f *fakeCatalog) ResaleProducts(context.Context, string) ([]models.TrackableItem, error) {
	return f.resale, nil
}

type fakeHolidays struct {
	dates []time.Time
	err   error
}

func (f *fakeHolidays) HolidaysFor(_ context.Context, year int) ([]time.Time, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []time.Time{}
	for _, d := range f.dates {
		if d.Year() == year {
			out = append(out, d)
		}
	}
	return out, nil
}

// day is shorthand for a UTC midnight date.
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// constantHistory builds one row per day at the given amount for an entity.
func constantHistory(entityID string, from, to time.Time, amount float64) []models.HistoryRow {
	rows := []models.HistoryRow{}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		rows = append(rows, models.HistoryRow{Date: d, Amount: amount, EntityID: entityID})
	}
	return rows
}
