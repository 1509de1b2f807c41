// Package store holds the read-only data-access boundary of the forecast
// engine. The synchronization pipeline that fills these tables lives in
// another service; everything here only queries.
package store

import (
	"context"
	"errors"
	"time"

	"vendaboard/models"
)

// ErrNotFound is returned when a company, group or item does not exist.
var ErrNotFound = errors.New("not found")

// HistoryQuery scopes a transaction-history lookup.
type HistoryQuery struct {
	EntityIDs []string
	Start     time.Time
	End       time.Time
}

// TransactionHistoryStore reads the pre-synced revenue/consumption records.
// Query is paginated: callers pass a zero-based page and keep going while
// hasMore is true. Page mechanics stay behind this interface so the
// forecasting code never sees offsets.
type TransactionHistoryStore interface {
	Query(ctx context.Context, q HistoryQuery, page int) (rows []models.HistoryRow, hasMore bool, err error)

	// LatestDate returns the most recent record date for the entities, or
	// the zero time when there is none.
	LatestDate(ctx context.Context, entityIDs []string) (time.Time, error)
}

// SummaryStore reads pre-aggregated monthly totals kept by the sync
// pipeline, used only to cross-check the daily sums.
type SummaryStore interface {
	MonthlyTotal(ctx context.Context, entityIDs []string, year int, month time.Month) (float64, error)
}

// StockPositionStore reads the physical stock records linked to trackable
// items. companyID narrows the lookup to one company when non-empty.
type StockPositionStore interface {
	StockFor(ctx context.Context, itemID string, companyID string) ([]models.StockRow, error)
}

// CatalogStore resolves companies, groups and trackable items, and the
// mapping from a company to its synced sale-product identifiers.
type CatalogStore interface {
	GetCompany(ctx context.Context, companyID string) (*models.Company, error)
	GroupExists(ctx context.Context, groupID string) (bool, error)

	// SaleProductIDs maps a company to the external sale-product ids its
	// history rows are keyed by. An existing company with no mapping
	// returns an empty slice and no error; the orchestrator decides what
	// that means.
	SaleProductIDs(ctx context.Context, companyID string) ([]string, error)

	RawMaterials(ctx context.Context, groupID string) ([]models.TrackableItem, error)
	ResaleProducts(ctx context.Context, groupID string) ([]models.TrackableItem, error)
}
