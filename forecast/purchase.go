package forecast

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"vendaboard/holiday"
	"vendaboard/models"
	"vendaboard/store"
	"vendaboard/utils"
)

// maxConcurrentItems bounds how many items are projected at once in a batch.
const maxConcurrentItems = 4

// PurchaseCalculator computes purchase recommendations for a group's
// trackable items from their projected consumption and stock position.
type PurchaseCalculator struct {
	Aggregator *Aggregator
	Stock      store.StockPositionStore
	Catalog    store.CatalogStore
	Holidays   holiday.Provider
	Stats      StatsOptions

	// MissingMapping decides what to do with items that have no synced
	// sale-product links: MappingRequired drops them from the response,
	// MappingOptional keeps them with zero consumption.
	MissingMapping MissingMappingPolicy
}

// PurchaseRequest scopes one projection batch.
type PurchaseRequest struct {
	GroupID        string
	CompanyID      string // optional: narrows stock to one company
	Kind           models.ItemKind
	ProjectionDays int
	HistoryDays    int
	Mode           Mode
}

// Project runs the purchase pipeline for every trackable item of the
// requested kind. One item failing is logged and zeroed, never aborts the
// batch. Results come back needsPurchase-first, then alphabetical.
func (pc *PurchaseCalculator) Project(ctx context.Context, req PurchaseRequest) (*models.PurchaseProjectionResponse, error) {
	exists, err := pc.Catalog.GroupExists(ctx, req.GroupID)
	if err != nil {
		return nil, fmt.Errorf("resolving group %s: %w", req.GroupID, err)
	}
	if !exists {
		return nil, fmt.Errorf("group %s: %w", req.GroupID, store.ErrNotFound)
	}

	var items []models.TrackableItem
	if req.Kind == models.ItemRawMaterial {
		items, err = pc.Catalog.RawMaterials(ctx, req.GroupID)
	} else {
		items, err = pc.Catalog.ResaleProducts(ctx, req.GroupID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing items for group %s: %w", req.GroupID, err)
	}

	if pc.MissingMapping == MappingRequired {
		linked := items[:0]
		for _, it := range items {
			if len(it.Links) == 0 {
				log.Printf("⚠️  [PURCHASE] Item %s (%s) has no sale-product links, dropping", it.Name, it.ID)
				continue
			}
			linked = append(linked, it)
		}
		items = linked
	}

	// Reference date over the union of every item's sale products, so the
	// whole batch shares one cutoff even when the sync lags.
	allEntities := []string{}
	for _, it := range items {
		for _, l := range it.Links {
			allEntities = append(allEntities, l.SaleProductID)
		}
	}
	refDate, err := pc.Aggregator.ReferenceDate(ctx, allEntities)
	if err != nil {
		return nil, fmt.Errorf("resolving reference date: %w", err)
	}

	histStart := refDate.AddDate(0, 0, -(req.HistoryDays - 1))
	horizon := refDate.AddDate(0, 0, req.ProjectionDays)
	holidays := holiday.FetchSet(ctx, pc.Holidays, yearsBetween(histStart, horizon)...)
	cl := Classifier{Holidays: holidays, Policy: HolidayOwnBucket}

	results := make([]models.ItemProjection, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentItems)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			p, err := pc.projectItem(gctx, item, req, refDate, histStart, cl)
			if err != nil {
				log.Printf("⚠️  [PURCHASE] Item %s (%s) failed, zeroing: %v", item.Name, item.ID, err)
				p = models.ItemProjection{
					ItemID:        item.ID,
					Name:          item.Name,
					Unit:          item.Unit,
					AveragesByDay: map[string]float64{},
					StockStatus:   models.StockOut,
				}
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(a, b int) bool {
		if results[a].NeedsPurchase != results[b].NeedsPurchase {
			return results[a].NeedsPurchase
		}
		return results[a].Name < results[b].Name
	})

	return &models.PurchaseProjectionResponse{
		GroupID:        req.GroupID,
		ProjectionDays: req.ProjectionDays,
		HistoryDays:    req.HistoryDays,
		ProjectionType: req.Mode.String(),
		Items:          results,
	}, nil
}

// projectItem runs the single-item pipeline: weighted history aggregation,
// bucket statistics, projection, loss factor, and the stock balance math.
// The history and stock lookups have no data dependency and run in parallel.
func (pc *PurchaseCalculator) projectItem(ctx context.Context, item models.TrackableItem, req PurchaseRequest, refDate, histStart time.Time, cl Classifier) (models.ItemProjection, error) {
	weights := make(map[string]float64, len(item.Links))
	for _, l := range item.Links {
		w := l.QuantityPerUnit
		if w <= 0 {
			w = 1
		}
		weights[l.SaleProductID] = w
	}

	var (
		totals []DailyTotal
		stock  []models.StockRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = pc.Aggregator.AggregateWeighted(gctx, weights, histStart, refDate)
		return err
	})
	g.Go(func() error {
		var err error
		stock, err = pc.Stock.StockFor(gctx, item.ID, req.CompanyID)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.ItemProjection{}, err
	}

	totalHistory := 0.0
	for _, dt := range totals {
		totalHistory += dt.Value
	}
	avgDaily := 0.0
	if req.HistoryDays > 0 {
		avgDaily = totalHistory / float64(req.HistoryDays)
	}

	stats := ComputeStats(totals, cl, pc.Stats)
	averages := make(map[string]float64, len(stats))
	for b, s := range stats {
		averages[b.String()] = utils.Round3(s.Mean)
	}

	proj := Project(req.Mode, stats, avgDaily, refDate, req.ProjectionDays, cl)
	projected := proj.Realistic
	if item.Kind == models.ItemRawMaterial && item.LossFactor > 0 {
		projected *= 1 + item.LossFactor/100
	}

	pos := sumStock(stock)
	need := projected + pos.MinQuantity - pos.Quantity
	if need < 0 {
		need = 0
	}
	conv := pos.ConversionFactor
	if conv <= 0 {
		conv = 1
	}

	status := models.StockOK
	switch {
	case pos.Quantity <= 0:
		status = models.StockOut
	case pos.Quantity <= pos.MinQuantity:
		status = models.StockLow
	}

	return models.ItemProjection{
		ItemID:               item.ID,
		Name:                 item.Name,
		Unit:                 item.Unit,
		TotalHistorySales:    utils.Round3(totalHistory),
		AvgDailySales:        utils.Round3(avgDaily),
		AveragesByDay:        averages,
		ProjectedConsumption: utils.Round3(projected),
		DailyProjection:      dailyProjection(proj, 3),
		CurrentStock:         utils.Round3(pos.Quantity),
		MinStock:             utils.Round3(pos.MinQuantity),
		ConversionFactor:     conv,
		PurchaseUnit:         pos.PurchaseUnit,
		PurchaseNeed:         utils.Round3(need),
		PurchaseQuantity:     utils.Round3(need / conv),
		NeedsPurchase:        need > 0,
		StockStatus:          status,
	}, nil
}

// sumStock folds multiple physical stock rows into one position. Quantities
// add up; the conversion factor and purchase unit come from the first row
// that sets them.
func sumStock(rows []models.StockRow) models.StockRow {
	var pos models.StockRow
	for _, r := range rows {
		pos.Quantity += r.Quantity
		pos.MinQuantity += r.MinQuantity
		if pos.ConversionFactor == 0 && r.ConversionFactor != 0 {
			pos.ConversionFactor = r.ConversionFactor
		}
		if pos.PurchaseUnit == "" {
			pos.PurchaseUnit = r.PurchaseUnit
		}
	}
	return pos
}
