package engine

import (
	"math"

	"gridsage/domain/analysis"
	"gridsage/domain/dataset"
)

// Correlations computes the pairwise Pearson coefficient for every unordered
// pair of numeric columns, keyed "col_i_col_j" with i<j. Pairs with fewer
// than two overlapping values are omitted.
func (e *Engine) Correlations(ds *dataset.Dataset, opts Options) map[string]analysis.Correlation {
	results := make(map[string]analysis.Correlation)
	labels := ds.Header()
	cols := ds.NumericColumns(opts.SkipHeader)

	for a := 0; a < len(cols); a++ {
		for b := a + 1; b < len(cols); b++ {
			i, j := cols[a], cols[b]

			// Each column is filtered to numeric values independently, then
			// paired elementwise up to the shorter length. This positional
			// truncation (not an inner join on validity) is the contract the
			// reference outputs are keyed to.
			x := ds.NumericColumn(i, opts.SkipHeader)
			y := ds.NumericColumn(j, opts.SkipHeader)
			n := len(x)
			if len(y) < n {
				n = len(y)
			}
			if n < 2 {
				continue
			}

			r := pearson(x[:n], y[:n])
			results[analysis.CorrelationKey(i, j)] = analysis.Correlation{
				ColumnX:        i,
				ColumnY:        j,
				Coefficient:    r,
				Strength:       analysis.CorrelationStrength(r),
				Interpretation: analysis.CorrelationInterpretation(r, labels[i], labels[j]),
				SampleSize:     n,
			}
		}
	}

	return results
}

// pearson computes the coefficient by the computational formula
// r = (n·Σxy − Σx·Σy) / sqrt((n·Σx² − (Σx)²)(n·Σy² − (Σy)²)),
// returning 0 on a degenerate (zero) denominator.
func pearson(x, y []float64) float64 {
	n := float64(len(x))

	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumXX += x[i] * x[i]
		sumYY += y[i] * y[i]
	}

	denominator := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if denominator == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denominator
}
