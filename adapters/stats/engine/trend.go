package engine

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"gridsage/domain/analysis"
	"gridsage/domain/dataset"
)

const (
	// movingAverageWindow and momentumWindow are fixed design constants.
	movingAverageWindow = 3
	momentumWindow      = 3

	// zTwoTailed95 is the fixed two-tailed z approximation for the default
	// 0.95 confidence level. It is a constant, not looked up from a table.
	zTwoTailed95 = 1.96

	// defaultForecastHorizon applies when a forecast request omits the horizon.
	defaultForecastHorizon = 3

	defaultConfidenceLevel = 0.95
)

// Trends fits an OLS line over index positions for every numeric column and
// derives direction, moving average, volatility and momentum. Columns with
// fewer than 2 samples are omitted.
func (e *Engine) Trends(ds *dataset.Dataset, opts Options) map[int]analysis.TrendAnalysis {
	results := make(map[int]analysis.TrendAnalysis)
	labels := ds.Header()

	for _, col := range ds.NumericColumns(opts.SkipHeader) {
		values := ds.NumericColumn(col, opts.SkipHeader)
		if len(values) < 2 {
			continue
		}
		record := e.trendAnalysis(values)
		record.Column = col
		record.Label = labels[col]
		record.Description = analysis.TrendDescription(record.Slope, labels[col])
		results[col] = record
	}

	return results
}

func (e *Engine) trendAnalysis(values []float64) analysis.TrendAnalysis {
	slope, intercept := fitLine(values)

	return analysis.TrendAnalysis{
		Slope:         slope,
		Intercept:     intercept,
		Direction:     analysis.TrendDirection(slope),
		Strength:      math.Abs(slope),
		MovingAverage: movingAverage(values, movingAverageWindow),
		Volatility:    volatility(values),
		Momentum:      momentum(values, momentumWindow),
		SampleSize:    len(values),
	}
}

// fitLine runs ordinary least squares over index positions 0..n−1.
func fitLine(values []float64) (slope, intercept float64) {
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	intercept, slope = stat.LinearRegression(xs, values, nil, false)
	return slope, intercept
}

// movingAverage produces n−window+1 points; empty when the sample is shorter
// than the window.
func movingAverage(values []float64, window int) []float64 {
	if len(values) < window || window <= 0 {
		return []float64{}
	}
	out := make([]float64, 0, len(values)-window+1)
	for i := 0; i+window <= len(values); i++ {
		out = append(out, meanOf(values[i:i+window]))
	}
	return out
}

// volatility is the sample standard deviation of period-over-period
// percentage returns. Periods with a zero denominator are skipped, and a
// degenerate sample yields 0 rather than an error.
func volatility(values []float64) float64 {
	returns := make([]float64, 0, len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		returns = append(returns, (values[i]-values[i-1])/values[i-1])
	}
	if len(returns) < 2 {
		return 0
	}
	sd, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return 0
	}
	return sd
}

// momentum is the mean of the most recent window minus the mean of the
// preceding equal-length window; 0 when the sample cannot hold both windows.
func momentum(values []float64, window int) float64 {
	n := len(values)
	if n < 2*window+1 {
		return 0
	}
	recent := meanOf(values[n-window:])
	previous := meanOf(values[n-2*window : n-window])
	return recent - previous
}

// Forecasts extends each fitted trend by horizon periods with a symmetric
// confidence band derived from the fitted line's residual MSE. Columns with
// fewer than 2 samples cannot be fitted and are omitted.
func (e *Engine) Forecasts(ds *dataset.Dataset, opts Options, horizon int, confidence float64) map[int]analysis.Forecast {
	if horizon <= 0 {
		horizon = defaultForecastHorizon
	}
	if confidence <= 0 || confidence >= 1 {
		confidence = defaultConfidenceLevel
	}

	results := make(map[int]analysis.Forecast)
	labels := ds.Header()

	for _, col := range ds.NumericColumns(opts.SkipHeader) {
		values := ds.NumericColumn(col, opts.SkipHeader)
		if len(values) < 2 {
			continue
		}

		trend := e.trendAnalysis(values)
		trend.Column = col
		trend.Label = labels[col]
		trend.Description = analysis.TrendDescription(trend.Slope, labels[col])

		mse := meanSquaredResidual(values, trend.Slope, trend.Intercept)
		band := zTwoTailed95 * math.Sqrt(mse)

		n := len(values)
		predictions := make([]analysis.ForecastPoint, 0, horizon)
		for i := 1; i <= horizon; i++ {
			// The last observation sits at index n−1, so period n−1+i
			// continues the fitted line without a gap.
			value := trend.Slope*float64(n-1+i) + trend.Intercept
			predictions = append(predictions, analysis.ForecastPoint{
				Period: n + i,
				Value:  value,
				Lower:  value - band,
				Upper:  value + band,
			})
		}

		results[col] = analysis.Forecast{
			Column:      col,
			Label:       labels[col],
			Horizon:     horizon,
			Confidence:  confidence,
			MSE:         mse,
			Predictions: predictions,
			Reliability: analysis.ForecastReliability(horizon, n),
			Trend:       trend,
		}
	}

	return results
}

func meanSquaredResidual(values []float64, slope, intercept float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for i, v := range values {
		residual := v - (slope*float64(i) + intercept)
		sum += residual * residual
	}
	return sum / float64(len(values))
}
