package forecast

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"vendaboard/holiday"
	"vendaboard/models"
	"vendaboard/store"
	"vendaboard/utils"
)

// ErrNoMapping is returned when an existing company has no synced
// sale-product identifiers and the orchestrator is configured to treat that
// as an error.
var ErrNoMapping = errors.New("company has no external source mapping")

// MissingMappingPolicy decides what an unmapped company means. The two
// behaviors both exist in production consumers, so it is configuration, not
// a guess.
type MissingMappingPolicy string

const (
	// MappingRequired rejects unmapped companies with ErrNoMapping.
	MappingRequired MissingMappingPolicy = "error"
	// MappingOptional serves an empty-but-valid forecast for them.
	MappingOptional MissingMappingPolicy = "empty"
)

// DefaultHistoryMonths is the trailing window used to build bucket
// statistics when the request does not say otherwise.
const DefaultHistoryMonths = 3

// RevenueForecaster assembles the full-month revenue forecast of a company.
type RevenueForecaster struct {
	Aggregator     *Aggregator
	Summary        store.SummaryStore
	Catalog        store.CatalogStore
	Holidays       holiday.Provider
	TrendThreshold float64
	Stats          StatsOptions
	MissingMapping MissingMappingPolicy
}

// RevenueRequest scopes one forecast computation.
type RevenueRequest struct {
	CompanyID       string
	Year            int
	Month           time.Month
	HistoryMonths   int
	ComparePrevious bool
}

// Forecast produces the month forecast: realized-to-date, the three
// projected month-end scenarios, the daily graph series and trend metadata.
func (f *RevenueForecaster) Forecast(ctx context.Context, req RevenueRequest) (*models.RevenueForecastResponse, error) {
	company, err := f.Catalog.GetCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	entityIDs, err := f.Catalog.SaleProductIDs(ctx, company.ID)
	if err != nil {
		return nil, fmt.Errorf("resolving sale products for company %s: %w", company.ID, err)
	}
	if len(entityIDs) == 0 && f.MissingMapping == MappingRequired {
		return nil, fmt.Errorf("company %s: %w", company.ID, ErrNoMapping)
	}

	historyMonths := req.HistoryMonths
	if historyMonths < 1 {
		historyMonths = DefaultHistoryMonths
	}

	refDate, err := f.Aggregator.ReferenceDate(ctx, entityIDs)
	if err != nil {
		return nil, fmt.Errorf("resolving reference date: %w", err)
	}

	monthStart := time.Date(req.Year, req.Month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	daysInMonth := monthEnd.Day()

	// Cutoff: last day of the month with actual data. A reference date
	// past the month means the whole month is realized; before it, none.
	cutoff := refDate
	if cutoff.After(monthEnd) {
		cutoff = monthEnd
	}
	daysPassed := 0
	if !cutoff.Before(monthStart) {
		daysPassed = cutoff.Day()
	}

	// Holiday coverage spans the statistics window and the target month.
	histStart := monthStart.AddDate(0, -historyMonths, 0)
	holidays := holiday.FetchSet(ctx, f.Holidays, yearsBetween(histStart, monthEnd)...)
	cl := Classifier{Holidays: holidays, Policy: HolidayAsSaturday}

	resp := &models.RevenueForecastResponse{
		CompanyID:     company.ID,
		Year:          req.Year,
		Month:         int(req.Month),
		ReferenceDate: refDate.Format("2006-01-02"),
		Averages:      map[string]float64{},
	}

	// Realized portion of the target month.
	var realized []DailyTotal
	if daysPassed > 0 {
		realized, err = f.Aggregator.Aggregate(ctx, entityIDs, monthStart, cutoff)
		if err != nil {
			return nil, fmt.Errorf("aggregating realized revenue: %w", err)
		}
	}
	realizedValues := make([]float64, len(realized))
	realizedTotal := 0.0
	for i, dt := range realized {
		realizedValues[i] = dt.Value
		realizedTotal += dt.Value
	}

	// Cross-check against the pre-aggregated official total. The two
	// representations are synced separately and may drift; drift is
	// logged, never fatal.
	official := realizedTotal
	if f.Summary != nil {
		official, err = f.Summary.MonthlyTotal(ctx, entityIDs, req.Year, req.Month)
		if err != nil {
			log.Printf("⚠️  [FORECAST] Official monthly total unavailable for company %s: %v", company.ID, err)
			official = realizedTotal
		} else if math.Abs(official-realizedTotal) > 0.01 {
			log.Printf("⚠️  [FORECAST] Company %s %d-%02d: official total %.2f diverges from daily sum %.2f",
				company.ID, req.Year, req.Month, official, realizedTotal)
		}
	}

	avgDaily := 0.0
	if daysPassed > 0 {
		avgDaily = realizedTotal / float64(daysPassed)
	}
	resp.Realized = models.RealizedBlock{
		Total:         utils.Round2(realizedTotal),
		DaysPassed:    daysPassed,
		AvgPerDay:     utils.Round2(avgDaily),
		OfficialTotal: utils.Round2(official),
	}

	// Bucket statistics over the trailing window before the target month.
	histTotals, err := f.Aggregator.Aggregate(ctx, entityIDs, histStart, monthStart.AddDate(0, 0, -1))
	if err != nil {
		return nil, fmt.Errorf("aggregating statistics window: %w", err)
	}
	stats := ComputeStats(histTotals, cl, f.Stats)
	for b, s := range stats {
		resp.Averages[b.String()] = utils.Round2(s.Mean)
	}

	// Remaining-day breakdown and weekly-mode projection to month end.
	projStart := cutoff
	if daysPassed == 0 {
		projStart = monthStart.AddDate(0, 0, -1)
	}
	remaining := daysInMonth - daysPassed
	resp.RemainingDays = countRemaining(projStart, remaining, holidays)

	proj := Project(ModeWeekly, stats, avgDaily, projStart, remaining, cl)
	resp.Scenarios = models.ScenarioTotals{
		Optimistic:  utils.Round2(realizedTotal + proj.Optimistic),
		Realistic:   utils.Round2(realizedTotal + proj.Realistic),
		Pessimistic: utils.Round2(realizedTotal + proj.Pessimistic),
	}

	resp.Graph, resp.GraphRealized = buildGraph(realizedValues, daysPassed, proj, realizedTotal, daysInMonth)
	resp.DailyProjection = dailyProjection(proj, 2)

	trend := ComputeTrend(realizedValues, f.TrendThreshold)
	resp.Statistics = models.TrendStatistics{
		Mean:      utils.Round2(Mean(realizedValues)),
		Median:    utils.Round2(Median(realizedValues)),
		Trend:     trend.Direction,
		Slope:     utils.Round2(trend.Slope),
		Intercept: utils.Round2(trend.Intercept),
	}

	if req.ComparePrevious {
		cmp, err := f.previousMonth(ctx, entityIDs, monthStart, daysPassed, realizedTotal, resp.Scenarios.Realistic)
		if err != nil {
			log.Printf("⚠️  [FORECAST] Previous month comparison failed for company %s: %v", company.ID, err)
		} else {
			resp.PreviousMonth = cmp
		}
	}

	return resp, nil
}

// previousMonth aggregates the prior month for the comparison block.
func (f *RevenueForecaster) previousMonth(ctx context.Context, entityIDs []string, monthStart time.Time, daysPassed int, realizedTotal, realisticTotal float64) (*models.MonthComparison, error) {
	prevStart := monthStart.AddDate(0, -1, 0)
	prevEnd := monthStart.AddDate(0, 0, -1)

	totals, err := f.Aggregator.Aggregate(ctx, entityIDs, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	prevTotal := 0.0
	samePeriod := 0.0
	for i, dt := range totals {
		prevTotal += dt.Value
		if i < daysPassed {
			samePeriod += dt.Value
		}
	}

	return &models.MonthComparison{
		PreviousTotal:   utils.Round2(prevTotal),
		RealizedToDate:  utils.Round2(samePeriod),
		PercentChange:   utils.Round2(utils.PercentChange(samePeriod, realizedTotal)),
		RealisticChange: utils.Round2(utils.PercentChange(prevTotal, realisticTotal)),
	}, nil
}

// countRemaining classifies the days strictly after start into the
// remaining-days breakdown. Holidays count only as holidays here, whatever
// the bucket policy says.
func countRemaining(start time.Time, days int, holidays holiday.Set) models.RemainingDays {
	rd := models.RemainingDays{Total: days}
	for i := 1; i <= days; i++ {
		d := start.AddDate(0, 0, i)
		switch {
		case holidays.Contains(d):
			rd.Holidays++
		case d.Weekday() == time.Sunday:
			rd.Sundays++
		case d.Weekday() == time.Saturday:
			rd.Saturdays++
		default:
			rd.BusinessDays++
		}
	}
	return rd
}

// buildGraph assembles the tri-state month series: realized-only up to the
// cutoff day, all four fields equal at the cutoff day, scenarios-only after.
func buildGraph(realizedValues []float64, daysPassed int, proj Projection, realizedTotal float64, daysInMonth int) (graph, graphRealized []models.GraphPoint) {
	graph = make([]models.GraphPoint, 0, daysInMonth)
	graphRealized = make([]models.GraphPoint, 0, daysPassed)

	cum := 0.0
	for day := 1; day <= daysPassed; day++ {
		cum += realizedValues[day-1]
		v := utils.Round2(cum)
		p := models.GraphPoint{Day: day, Realized: &v}
		if day == daysPassed {
			// Continuity point: scenarios anchor on the realized
			// cumulative value.
			p.Optimistic, p.Realistic, p.Pessimistic = &v, &v, &v
		}
		graph = append(graph, p)
		rp := models.GraphPoint{Day: day, Realized: &v}
		graphRealized = append(graphRealized, rp)
	}

	for i, ds := range proj.Cumulative(realizedTotal) {
		day := daysPassed + i + 1
		o, r, pe := utils.Round2(ds.Optimistic), utils.Round2(ds.Realistic), utils.Round2(ds.Pessimistic)
		graph = append(graph, models.GraphPoint{Day: day, Optimistic: &o, Realistic: &r, Pessimistic: &pe})
	}
	return graph, graphRealized
}

// dailyProjection renders a projection's per-day series. Revenue rounds to 2
// places, stock quantities to 3.
func dailyProjection(proj Projection, places int) []models.DailyProjectionPoint {
	out := make([]models.DailyProjectionPoint, 0, len(proj.Daily))
	for _, ds := range proj.Daily {
		out = append(out, models.DailyProjectionPoint{
			Date:        ds.Date.Format("2006-01-02"),
			Optimistic:  utils.Round(ds.Optimistic, places),
			Realistic:   utils.Round(ds.Realistic, places),
			Pessimistic: utils.Round(ds.Pessimistic, places),
		})
	}
	return out
}

// yearsBetween lists the calendar years touched by [start, end].
func yearsBetween(start, end time.Time) []int {
	years := []int{}
	for y := start.Year(); y <= end.Year(); y++ {
		years = append(years, y)
	}
	return years
}
