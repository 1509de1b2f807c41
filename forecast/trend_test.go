package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTrendDirections(t *testing.T) {
	up := ComputeTrend([]float64{100, 120, 140, 160, 180}, 0.01)
	assert.Equal(t, TrendUp, up.Direction)
	assert.InDelta(t, 20, up.Slope, 1e-9)
	assert.InDelta(t, 100, up.Intercept, 1e-9)

	down := ComputeTrend([]float64{180, 160, 140, 120, 100}, 0.01)
	assert.Equal(t, TrendDown, down.Direction)
	assert.InDelta(t, -20, down.Slope, 1e-9)

	flat := ComputeTrend([]float64{140, 140, 140, 140}, 0.01)
	assert.Equal(t, TrendStable, flat.Direction)
	assert.InDelta(t, 0, flat.Slope, 1e-9)
}

func TestComputeTrendRelativeThreshold(t *testing.T) {
	// Slope of 1 on a mean of ~1000: noise at a 1% threshold (limit 10),
	// movement at a 0.01% threshold.
	series := []float64{1000, 1001, 1002, 1003, 1004}

	assert.Equal(t, TrendStable, ComputeTrend(series, 0.01).Direction)
	assert.Equal(t, TrendUp, ComputeTrend(series, 0.0001).Direction)
}

func TestComputeTrendDegenerate(t *testing.T) {
	assert.Equal(t, TrendStable, ComputeTrend(nil, 0.01).Direction)
	assert.Equal(t, TrendStable, ComputeTrend([]float64{42}, 0.01).Direction)
	assert.Equal(t, TrendStable, ComputeTrend([]float64{0, 0, 0}, 0.01).Direction)
}
