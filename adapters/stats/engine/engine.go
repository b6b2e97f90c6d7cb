package engine

import (
	"math"
	"sort"
)

// Engine is the statistical analysis core. It holds no state: every method is
// a pure function of its dataset and parameters, so one Engine value is safe
// to share across concurrent requests.
type Engine struct{}

// NewEngine creates the statistical engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Options control dataset interpretation shared by all engines.
type Options struct {
	// SkipHeader drops the first row before analysis. On by default because
	// selected ranges from the host spreadsheet normally include the header.
	SkipHeader bool
}

// DefaultOptions returns the standard interpretation: skip row 0.
func DefaultOptions() Options {
	return Options{SkipHeader: true}
}

// percentile computes the p-th percentile by linear interpolation between
// order statistics at index p/100·(n−1). This is the quantile definition the
// whole core is keyed to (quartiles, outlier fences, percentile maps); the
// library percentile methods use a different rank convention and must not be
// substituted here.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	idx := p / 100 * float64(n-1)
	lower := int(math.Floor(idx))
	if lower >= n-1 {
		return sorted[n-1]
	}
	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

// sortedCopy returns an ascending copy, leaving the row-ordered sample intact.
func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}

// meanOf is plain accumulation in slice order. Accumulation order determines
// floating-point rounding, so callers must pass samples in row order.
func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
