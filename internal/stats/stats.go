// Package stats holds the descriptive statistics shared by cleaning and
// analysis. Empty input yields NaN, the "undefined" statistic.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of x.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Mean(x, nil)
}

// Std returns the sample standard deviation of x (n-1 denominator).
func Std(x []float64) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	_, std := stat.MeanStdDev(x, nil)
	return std
}

// Min returns the smallest value of x.
func Min(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return floats.Min(x)
}

// Max returns the largest value of x.
func Max(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return floats.Max(x)
}

// Median returns the middle value of x, averaging the two middle values
// when len(x) is even. x is not modified.
func Median(x []float64) float64 {
	return Quantile(x, 0.5)
}

// Quantile returns the p-quantile of x using linear interpolation between
// closest ranks: position (n-1)*p in the sorted data. x is not modified.
func Quantile(x []float64, p float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)

	pos := float64(n-1) * p
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return cp[lo]
	}
	frac := pos - float64(lo)
	return cp[lo] + (cp[hi]-cp[lo])*frac
}

// OrZero maps an undefined (NaN) statistic to 0.
func OrZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
