package forecast

import (
	"math"
	"sort"
)

// BucketStats holds the per-bucket statistics the projector samples from.
// All fields are zero when the bucket had no qualifying samples.
type BucketStats struct {
	Mean        float64
	P25         float64
	P75         float64
	SampleCount int
}

// StatsOptions tunes the statistics computation.
type StatsOptions struct {
	// IncludeZeroDays keeps zero-value days in the samples. The synced
	// history cannot tell "closed that day" from "no data arrived", so the
	// historical behavior (and the default) is to drop zeros; flipping
	// this is a deliberate configuration choice, not a code change.
	IncludeZeroDays bool
}

// ComputeStats groups daily totals by bucket and computes mean and
// nearest-rank quartiles per bucket.
func ComputeStats(totals []DailyTotal, cl Classifier, opts StatsOptions) map[DayBucket]BucketStats {
	samples := make(map[DayBucket][]float64)
	for _, dt := range totals {
		if dt.Value == 0 && !opts.IncludeZeroDays {
			continue
		}
		b := cl.Classify(dt.Date)
		samples[b] = append(samples[b], dt.Value)
	}

	stats := make(map[DayBucket]BucketStats, len(samples))
	for b, values := range samples {
		stats[b] = bucketStats(values)
	}
	return stats
}

func bucketStats(values []float64) BucketStats {
	n := len(values)
	if n == 0 {
		return BucketStats{}
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return BucketStats{
		Mean:        sum / float64(n),
		P25:         nearestRank(sorted, 25),
		P75:         nearestRank(sorted, 75),
		SampleCount: n,
	}
}

// nearestRank returns the p-th percentile of an ascending-sorted slice by
// the nearest-rank method: index ceil(p/100*n)-1, clamped. No interpolation.
func nearestRank(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := int(math.Ceil(p/100*float64(n))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}

// Mean returns the arithmetic mean of a series, zero for an empty one.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the median of a series, zero for an empty one.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
