package engine

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"gridsage/domain/analysis"
	"gridsage/domain/dataset"
)

// percentileLevels is the fixed set exposed in every column record.
var percentileLevels = []int{5, 10, 25, 50, 75, 90, 95}

// DescriptiveStatistics computes a Column Statistics record for every numeric
// column of the dataset. Columns whose filtered sample is empty are omitted
// rather than failing the request.
func (e *Engine) DescriptiveStatistics(ds *dataset.Dataset, opts Options) map[int]analysis.ColumnStatistics {
	results := make(map[int]analysis.ColumnStatistics)
	labels := ds.Header()

	for _, col := range ds.NumericColumns(opts.SkipHeader) {
		values := ds.NumericColumn(col, opts.SkipHeader)
		if len(values) == 0 {
			continue
		}
		record := e.columnStatistics(values)
		record.Column = col
		record.Label = labels[col]
		results[col] = record
	}

	return results
}

// columnStatistics computes the full record for one row-ordered sample.
func (e *Engine) columnStatistics(values []float64) analysis.ColumnStatistics {
	n := len(values)

	// Sum and mean accumulate in row order.
	sum, _ := stats.Sum(values)
	mean := sum / float64(n)

	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	median, _ := stats.Median(values)
	mode, _ := stats.Mode(values)
	if mode == nil {
		mode = []float64{}
	}

	variance := 0.0
	stdDev := 0.0
	if n >= 2 {
		variance, _ = stats.SampleVariance(values)
		stdDev, _ = stats.StandardDeviationSample(values)
	}

	sorted := sortedCopy(values)
	percentiles := make(map[int]float64, len(percentileLevels))
	for _, p := range percentileLevels {
		percentiles[p] = percentile(sorted, float64(p))
	}

	record := analysis.ColumnStatistics{
		Count:    n,
		Sum:      sum,
		Mean:     mean,
		Median:   median,
		Mode:     mode,
		Min:      min,
		Max:      max,
		Range:    max - min,
		Variance: variance,
		StdDev:   stdDev,
		Quartiles: analysis.Quartiles{
			Q1: percentile(sorted, 25),
			Q2: percentile(sorted, 50),
			Q3: percentile(sorted, 75),
		},
		Percentile: percentiles,
	}

	if skew, ok := sampleSkewness(values, mean, stdDev); ok {
		record.Skewness = &skew
	}
	if kurt, ok := sampleKurtosis(values, mean, stdDev); ok {
		record.Kurtosis = &kurt
	}
	if record.Skewness != nil && record.Kurtosis != nil {
		normal := assessNormality(*record.Skewness, *record.Kurtosis)
		record.Normality = &normal
	}

	return record
}

// sampleSkewness computes the adjusted Fisher-Pearson coefficient.
// Undefined for n<3 or zero deviation.
func sampleSkewness(values []float64, mean, stdDev float64) (float64, bool) {
	n := float64(len(values))
	if len(values) < 3 || stdDev == 0 {
		return 0, false
	}

	sumCubed := 0.0
	for _, x := range values {
		z := (x - mean) / stdDev
		sumCubed += z * z * z
	}

	skew := sumCubed / n
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skew * correction, true
}

// sampleKurtosis computes bias-corrected excess kurtosis.
// Undefined for n<4 or zero deviation.
func sampleKurtosis(values []float64, mean, stdDev float64) (float64, bool) {
	n := float64(len(values))
	if len(values) < 4 || stdDev == 0 {
		return 0, false
	}

	sumFourth := 0.0
	for _, x := range values {
		z := (x - mean) / stdDev
		sumFourth += z * z * z * z
	}

	g2 := sumFourth/n - 3
	excess := ((n+1)*g2 + 6) * (n - 1) / ((n - 2) * (n - 3))
	return excess, true
}

// assessNormality is a simplified Shapiro-Wilk style check built from the
// shape statistics; a chi-square approximation stands in for the real test.
func assessNormality(skewness, excessKurtosis float64) analysis.Normality {
	testStat := math.Abs(skewness) + math.Abs(excessKurtosis)/2

	chi := distuv.ChiSquared{K: 2}
	pValue := 1 - chi.CDF(testStat*testStat)

	return analysis.Normality{
		IsNormal: pValue > 0.05,
		PValue:   pValue,
	}
}
