package forecast

// Trend direction labels, as the dashboard displays them.
const (
	TrendUp     = "crescente"
	TrendDown   = "decrescente"
	TrendStable = "estável"
)

// DefaultTrendThreshold classifies a slope as a real movement only when its
// per-day change exceeds this fraction of the mean daily value. A relative
// threshold keeps the classification meaningful across companies of very
// different sizes.
const DefaultTrendThreshold = 0.01

// Trend is the ordinary least-squares fit of a realized daily series, with
// its classified direction.
type Trend struct {
	Slope     float64
	Intercept float64
	Direction string
}

// ComputeTrend fits y = slope*x + intercept over the series (x = day index)
// and classifies the direction against threshold * mean(values). A
// non-positive threshold falls back to DefaultTrendThreshold.
func ComputeTrend(values []float64, threshold float64) Trend {
	if threshold <= 0 {
		threshold = DefaultTrendThreshold
	}

	n := float64(len(values))
	if n < 2 {
		return Trend{Direction: TrendStable}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return Trend{Direction: TrendStable}
	}

	t := Trend{}
	t.Slope = (n*sumXY - sumX*sumY) / denom
	t.Intercept = (sumY - t.Slope*sumX) / n

	limit := threshold * (sumY / n)
	if limit < 0 {
		limit = -limit
	}
	switch {
	case t.Slope > limit:
		t.Direction = TrendUp
	case t.Slope < -limit:
		t.Direction = TrendDown
	default:
		t.Direction = TrendStable
	}
	return t
}
