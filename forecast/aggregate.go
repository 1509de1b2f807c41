package forecast

import (
	"context"
	"log"
	"time"

	"vendaboard/models"
	"vendaboard/store"
)

// DailyTotal is one calendar day's summed value for an entity set. The
// aggregator emits exactly one per day of the requested range; days with no
// rows carry zero.
type DailyTotal struct {
	Date  time.Time
	Value float64
}

// DefaultPageCeiling bounds how many history pages one aggregation will
// read. A runaway or misbehaving source stops here with partial data instead
// of an unbounded loop.
const DefaultPageCeiling = 50

// Aggregator turns raw history rows into per-day totals.
type Aggregator struct {
	History     store.TransactionHistoryStore
	PageCeiling int
}

// NewAggregator builds an Aggregator with the default page ceiling.
func NewAggregator(history store.TransactionHistoryStore) *Aggregator {
	return &Aggregator{History: history, PageCeiling: DefaultPageCeiling}
}

func (a *Aggregator) ceiling() int {
	if a.PageCeiling > 0 {
		return a.PageCeiling
	}
	return DefaultPageCeiling
}

// Aggregate sums the history rows of the entities into one DailyTotal per
// day of [start, end]. Every entity weighs 1; see AggregateWeighted for
// per-entity multipliers.
func (a *Aggregator) Aggregate(ctx context.Context, entityIDs []string, start, end time.Time) ([]DailyTotal, error) {
	weights := make(map[string]float64, len(entityIDs))
	for _, id := range entityIDs {
		weights[id] = 1
	}
	return a.AggregateWeighted(ctx, weights, start, end)
}

// AggregateWeighted sums history rows with a per-entity multiplier applied
// to each row's amount. Raw-material links use this: one sold unit of a
// product consumes QuantityPerUnit of the material.
//
// Retrieval paginates until the store is exhausted or the page ceiling is
// hit; hitting the ceiling logs a warning and proceeds with partial data.
func (a *Aggregator) AggregateWeighted(ctx context.Context, weights map[string]float64, start, end time.Time) ([]DailyTotal, error) {
	start = truncateDay(start)
	end = truncateDay(end)

	entityIDs := make([]string, 0, len(weights))
	for id := range weights {
		entityIDs = append(entityIDs, id)
	}

	byDay := make(map[string]float64)
	if len(entityIDs) > 0 {
		q := store.HistoryQuery{EntityIDs: entityIDs, Start: start, End: end.AddDate(0, 0, 1).Add(-time.Second)}
		page := 0
		for {
			rows, hasMore, err := a.History.Query(ctx, q, page)
			if err != nil {
				return nil, err
			}
			a.accumulate(byDay, rows, weights)
			if !hasMore {
				break
			}
			page++
			if page >= a.ceiling() {
				log.Printf("⚠️  [AGGREGATOR] Page ceiling (%d) reached for %d entities between %s and %s, proceeding with partial data",
					a.ceiling(), len(entityIDs), start.Format("2006-01-02"), end.Format("2006-01-02"))
				break
			}
		}
	}

	// One entry per calendar day, zero-filled.
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 0 {
		days = 0
	}
	totals := make([]DailyTotal, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		totals = append(totals, DailyTotal{Date: d, Value: byDay[d.Format("2006-01-02")]})
	}
	return totals, nil
}

func (a *Aggregator) accumulate(byDay map[string]float64, rows []models.HistoryRow, weights map[string]float64) {
	for _, r := range rows {
		w, ok := weights[r.EntityID]
		if !ok {
			w = 1
		}
		byDay[truncateDay(r.Date).Format("2006-01-02")] += r.Amount * w
	}
}

// ReferenceDate resolves the "current day" of a computation: the most recent
// date present in the history for the entities. Synced data may lag behind
// wall-clock time, so today is only the fallback for an empty store.
func (a *Aggregator) ReferenceDate(ctx context.Context, entityIDs []string) (time.Time, error) {
	latest, err := a.History.LatestDate(ctx, entityIDs)
	if err != nil {
		return time.Time{}, err
	}
	if latest.IsZero() {
		return truncateDay(time.Now().UTC()), nil
	}
	return truncateDay(latest), nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
