package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendaboard/holiday"
)

func TestNearestRank(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}

	// ceil(25/100*4)-1 = 0, ceil(75/100*4)-1 = 2
	assert.Equal(t, 10.0, nearestRank(sorted, 25))
	assert.Equal(t, 30.0, nearestRank(sorted, 75))

	// Single element: everything clamps to it.
	assert.Equal(t, 7.0, nearestRank([]float64{7}, 25))
	assert.Equal(t, 7.0, nearestRank([]float64{7}, 75))

	assert.Equal(t, 0.0, nearestRank(nil, 50))
}

func TestComputeStatsExcludesZeroDays(t *testing.T) {
	cl := Classifier{Holidays: holiday.Set{}, Policy: HolidayOwnBucket}

	// Two Mondays with sales, one Monday closed.
	totals := []DailyTotal{
		{Date: day(2025, time.June, 2), Value: 100},  // Monday
		{Date: day(2025, time.June, 9), Value: 0},    // Monday, excluded
		{Date: day(2025, time.June, 16), Value: 200}, // Monday
	}

	stats := ComputeStats(totals, cl, StatsOptions{})
	require.Contains(t, stats, BucketMonday)
	assert.Equal(t, 2, stats[BucketMonday].SampleCount)
	assert.Equal(t, 150.0, stats[BucketMonday].Mean)

	// Flipping the config keeps the zero day.
	stats = ComputeStats(totals, cl, StatsOptions{IncludeZeroDays: true})
	assert.Equal(t, 3, stats[BucketMonday].SampleCount)
	assert.Equal(t, 100.0, stats[BucketMonday].Mean)
}

func TestComputeStatsPercentileOrdering(t *testing.T) {
	cl := Classifier{Holidays: holiday.Set{}, Policy: HolidayOwnBucket}

	// Irregular values across several weeks; property: p25 <= mean <= p75
	// for every populated bucket.
	values := []float64{12, 95, 40, 7, 130, 58, 23, 310, 64, 11, 89, 260, 45, 77}
	totals := make([]DailyTotal, len(values))
	start := day(2025, time.March, 1)
	for i, v := range values {
		totals[i] = DailyTotal{Date: start.AddDate(0, 0, i), Value: v}
	}

	stats := ComputeStats(totals, cl, StatsOptions{})
	require.NotEmpty(t, stats)
	for bucket, s := range stats {
		assert.LessOrEqual(t, s.P25, s.Mean, "bucket %s", bucket)
		assert.LessOrEqual(t, s.Mean, s.P75, "bucket %s", bucket)
	}
}

func TestComputeStatsIdempotent(t *testing.T) {
	cl := Classifier{Holidays: holiday.Set{}, Policy: HolidayAsSaturday}
	totals := []DailyTotal{
		{Date: day(2025, time.May, 1), Value: 50},
		{Date: day(2025, time.May, 2), Value: 75},
		{Date: day(2025, time.May, 3), Value: 20},
	}

	first := ComputeStats(totals, cl, StatsOptions{})
	second := ComputeStats(totals, cl, StatsOptions{})
	assert.Equal(t, first, second)
}

func TestComputeStatsConsistentWeeks(t *testing.T) {
	// Four weeks where only Sunday (100), Tuesday (150) and Thursday (200)
	// have sales. Each populated bucket has a single distinct value, so
	// mean = p25 = p75.
	cl := Classifier{Holidays: holiday.Set{}, Policy: HolidayOwnBucket}

	totals := []DailyTotal{}
	sunday := day(2025, time.June, 1) // a Sunday
	for week := 0; week < 4; week++ {
		base := sunday.AddDate(0, 0, 7*week)
		totals = append(totals,
			DailyTotal{Date: base, Value: 100},
			DailyTotal{Date: base.AddDate(0, 0, 1), Value: 0},
			DailyTotal{Date: base.AddDate(0, 0, 2), Value: 150},
			DailyTotal{Date: base.AddDate(0, 0, 3), Value: 0},
			DailyTotal{Date: base.AddDate(0, 0, 4), Value: 200},
			DailyTotal{Date: base.AddDate(0, 0, 5), Value: 0},
			DailyTotal{Date: base.AddDate(0, 0, 6), Value: 0},
		)
	}

	stats := ComputeStats(totals, cl, StatsOptions{})
	require.Contains(t, stats, BucketSunday)
	assert.Equal(t, BucketStats{Mean: 100, P25: 100, P75: 100, SampleCount: 4}, stats[BucketSunday])
	assert.Equal(t, 150.0, stats[BucketTuesday].Mean)
	assert.Equal(t, 200.0, stats[BucketThursday].Mean)

	// Buckets with only zero days never appear.
	assert.NotContains(t, stats, BucketMonday)
	assert.NotContains(t, stats, BucketSaturday)

	// Projecting one day ahead landing on a Sunday in weekly mode yields
	// the Sunday mean.
	saturday := day(2025, time.June, 28)
	proj := Project(ModeWeekly, stats, 0, saturday, 1, cl)
	assert.Equal(t, 100.0, proj.Realistic)
}

func TestMeanAndMedian(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 20.0, Mean([]float64{10, 20, 30}))
	assert.Equal(t, 20.0, Median([]float64{30, 10, 20}))
	assert.Equal(t, 15.0, Median([]float64{10, 20, 30, 5}))
}
