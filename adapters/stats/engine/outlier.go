package engine

import (
	"gridsage/domain/analysis"
	"gridsage/domain/dataset"
)

// Fence multipliers for mild and extreme outlier classification.
const (
	mildFenceFactor    = 1.5
	extremeFenceFactor = 3.0
)

// Outliers classifies every numeric column's samples against IQR fences.
// Columns with fewer than 4 samples are omitted: quartiles on tiny samples
// flag everything and nothing usefully.
func (e *Engine) Outliers(ds *dataset.Dataset, opts Options) map[int]analysis.OutlierAssessment {
	results := make(map[int]analysis.OutlierAssessment)
	labels := ds.Header()

	for _, col := range ds.NumericColumns(opts.SkipHeader) {
		values := ds.NumericColumn(col, opts.SkipHeader)
		if len(values) < 4 {
			continue
		}
		record := e.assessOutliers(values)
		record.Column = col
		record.Label = labels[col]
		results[col] = record
	}

	return results
}

func (e *Engine) assessOutliers(values []float64) analysis.OutlierAssessment {
	sorted := sortedCopy(values)
	q1 := percentile(sorted, 25)
	q3 := percentile(sorted, 75)
	iqr := q3 - q1

	lowerMild := q1 - mildFenceFactor*iqr
	upperMild := q3 + mildFenceFactor*iqr
	lowerExtreme := q1 - extremeFenceFactor*iqr
	upperExtreme := q3 + extremeFenceFactor*iqr

	mild := []float64{}
	extreme := []float64{}
	for _, v := range values {
		switch {
		case v < lowerExtreme || v > upperExtreme:
			extreme = append(extreme, v)
		case v < lowerMild || v > upperMild:
			mild = append(mild, v)
		}
	}

	flagged := len(mild) + len(extreme)
	percentage := float64(flagged) / float64(len(values)) * 100

	return analysis.OutlierAssessment{
		Q1:                 q1,
		Q3:                 q3,
		IQR:                iqr,
		LowerFence:         lowerMild,
		UpperFence:         upperMild,
		LowerExtremeFence:  lowerExtreme,
		UpperExtremeFence:  upperExtreme,
		MildOutliers:       mild,
		ExtremeOutliers:    extreme,
		SampleSize:         len(values),
		PercentageAffected: percentage,
		Impact:             analysis.OutlierImpact(percentage),
	}
}
