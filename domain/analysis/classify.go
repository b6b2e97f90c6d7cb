package analysis

import (
	"fmt"
	"math"
)

// Fixed classification thresholds. These are design constants carried over
// from the original product and must not drift.
const (
	corrVeryWeak = 0.3
	corrWeak     = 0.5
	corrModerate = 0.7
	corrStrong   = 0.9

	outlierLowPct    = 5.0
	outlierMediumPct = 10.0

	slopeDeadband = 0.01
)

// CorrelationStrength maps |r| to a discrete strength label.
func CorrelationStrength(r float64) string {
	abs := math.Abs(r)
	switch {
	case abs < corrVeryWeak:
		return "very weak"
	case abs < corrWeak:
		return "weak"
	case abs < corrModerate:
		return "moderate"
	case abs < corrStrong:
		return "strong"
	default:
		return "very strong"
	}
}

// CorrelationInterpretation renders a directional reading of one coefficient.
func CorrelationInterpretation(r float64, labelX, labelY string) string {
	direction := "positive"
	if r < 0 {
		direction = "negative"
	}
	return fmt.Sprintf("%s %s relationship between %s and %s (r=%.3f)",
		CorrelationStrength(r), direction, labelX, labelY, r)
}

// OutlierImpact maps the flagged percentage to a qualitative impact level.
func OutlierImpact(percentage float64) string {
	switch {
	case percentage > outlierMediumPct:
		return "high"
	case percentage > outlierLowPct:
		return "medium"
	default:
		return "low"
	}
}

// TrendDirection applies the ±0.01 slope deadband.
func TrendDirection(slope float64) string {
	switch {
	case slope > slopeDeadband:
		return "increasing"
	case slope < -slopeDeadband:
		return "decreasing"
	default:
		return "stable"
	}
}

// TrendDescription renders the fitted direction for display.
func TrendDescription(slope float64, label string) string {
	direction := TrendDirection(slope)
	if direction == "stable" {
		return fmt.Sprintf("%s shows a stable trend (slope %.4f within deadband)", label, slope)
	}
	return fmt.Sprintf("%s shows an %s trend of %.4f per period", label, direction, math.Abs(slope))
}

// ForecastReliability is deterministic: High when the horizon fits in half
// the observed sample, Medium when it fits in the sample, Low beyond that.
func ForecastReliability(horizon, sampleSize int) string {
	switch {
	case horizon*2 <= sampleSize:
		return "High"
	case horizon <= sampleSize:
		return "Medium"
	default:
		return "Low"
	}
}

// SensitivityImpact maps a percentage change to its qualitative description.
func SensitivityImpact(change float64) string {
	switch {
	case change > 20:
		return "significant increase"
	case change > 10:
		return "moderate increase"
	case change > 0:
		return "slight increase"
	case change == 0:
		return "no change"
	case change > -10:
		return "slight decrease"
	case change > -20:
		return "moderate decrease"
	default:
		return "significant decrease"
	}
}

// QualityGrade maps the overall quality score to a letter grade.
func QualityGrade(overall float64) string {
	switch {
	case overall >= 0.9:
		return "A"
	case overall >= 0.8:
		return "B"
	case overall >= 0.7:
		return "C"
	case overall >= 0.6:
		return "D"
	default:
		return "F"
	}
}

// CorrelationKey builds the canonical unordered-pair map key, lower index first.
func CorrelationKey(i, j int) string {
	if j < i {
		i, j = j, i
	}
	return fmt.Sprintf("col_%d_col_%d", i, j)
}
