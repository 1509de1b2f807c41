// Package handlers wires the HTTP surface to the forecast engine. Each
// handler validates parameters, runs one request-scoped computation and
// renders the result; no state is shared between requests.
package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"vendaboard/forecast"
	"vendaboard/holiday"
	"vendaboard/store"
)

// Handler carries the read-only collaborators the endpoints need. Handlers
// hang off a struct so tests can swap in fakes.
type Handler struct {
	History  store.TransactionHistoryStore
	Summary  store.SummaryStore
	Stock    store.StockPositionStore
	Catalog  store.CatalogStore
	Holidays holiday.Provider

	Revenue  *forecast.RevenueForecaster
	Purchase *forecast.PurchaseCalculator
}

// Options tunes the engine per deployment.
type Options struct {
	PageCeiling            int
	TrendThreshold         float64
	IncludeZeroDays        bool
	RevenueMissingMapping  forecast.MissingMappingPolicy
	PurchaseMissingMapping forecast.MissingMappingPolicy
}

// NewHandler assembles the engine on top of the given stores.
func NewHandler(history store.TransactionHistoryStore, summary store.SummaryStore, stock store.StockPositionStore, catalog store.CatalogStore, holidays holiday.Provider, opts Options) *Handler {
	agg := forecast.NewAggregator(history)
	if opts.PageCeiling > 0 {
		agg.PageCeiling = opts.PageCeiling
	}
	stats := forecast.StatsOptions{IncludeZeroDays: opts.IncludeZeroDays}

	return &Handler{
		History:  history,
		Summary:  summary,
		Stock:    stock,
		Catalog:  catalog,
		Holidays: holidays,
		Revenue: &forecast.RevenueForecaster{
			Aggregator:     agg,
			Summary:        summary,
			Catalog:        catalog,
			Holidays:       holidays,
			TrendThreshold: opts.TrendThreshold,
			Stats:          stats,
			MissingMapping: opts.RevenueMissingMapping,
		},
		Purchase: &forecast.PurchaseCalculator{
			Aggregator:     agg,
			Stock:          stock,
			Catalog:        catalog,
			Holidays:       holidays,
			Stats:          stats,
			MissingMapping: opts.PurchaseMissingMapping,
		},
	}
}

// requestID tags the logs of one computation so interleaved requests stay
// readable.
func requestID() string {
	return uuid.NewString()[:8]
}

// renderError maps engine errors onto the API error contract: not-found
// conditions become 404s, anything else is logged and served as a generic
// 500. Raw downstream errors never reach the client.
func renderError(c *fiber.Ctx, reqID string, err error, entity, operation string) error {
	switch {
	case errors.Is(err, forecast.ErrNoMapping):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": entity + " has no external source mapping"})
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": entity + " not found"})
	}
	log.Printf("❌ [%s] %s failed: %v", reqID, operation, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to compute " + operation})
}
