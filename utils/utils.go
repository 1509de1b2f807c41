package utils

import "math"

// Round rounds to the given number of decimal places.
func Round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

// Round2 rounds monetary values (2 decimal places).
func Round2(v float64) float64 {
	return Round(v, 2)
}

// Round3 rounds stock/consumption quantities (3 decimal places).
func Round3(v float64) float64 {
	return Round(v, 3)
}

// PercentChange returns the percentage change from base to value, zero when
// base is zero.
func PercentChange(base, value float64) float64 {
	if base == 0 {
		return 0
	}
	return (value - base) / base * 100
}
