package app

import (
	"fmt"
	"math"

	"gridsage/domain/analysis"
)

// Recommendation thresholds. Each sub-result is threshold-tested
// independently; missing sub-results contribute nothing.
const (
	qualityAttentionThreshold      = 0.7
	completenessAttentionThreshold = 0.9
	strongCorrelationThreshold     = 0.7
)

// deriveRecommendations turns the merged report into an advisory list.
func deriveRecommendations(report *analysis.Report) []string {
	recs := []string{}

	if report.Quality.Overall < qualityAttentionThreshold {
		recs = append(recs, fmt.Sprintf(
			"Data quality grade is %s (%.2f); clean the range before relying on derived statistics.",
			report.Quality.Grade, report.Quality.Overall))
	}
	if report.Quality.Completeness < completenessAttentionThreshold {
		recs = append(recs, fmt.Sprintf(
			"%d of %d cells are empty; fill or remove incomplete rows to stabilize the statistics.",
			report.Quality.MissingCells, report.Quality.TotalCells))
	}
	if report.Quality.DuplicateRows > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d duplicate rows detected; deduplicate to avoid double counting.",
			report.Quality.DuplicateRows))
	}

	for _, o := range report.Outliers {
		if o.Impact == "high" {
			recs = append(recs, fmt.Sprintf(
				"%s has %.1f%% of values outside the IQR fences; review them before trend or forecast use.",
				o.Label, o.PercentageAffected))
		}
	}

	for _, c := range report.Correlations {
		if math.Abs(c.Coefficient) >= strongCorrelationThreshold {
			recs = append(recs, fmt.Sprintf(
				"%s; consider it when modeling either column.", c.Interpretation))
		}
	}

	for _, t := range report.Trends {
		if t.Direction == "decreasing" {
			recs = append(recs, fmt.Sprintf(
				"%s is decreasing (slope %.4f); investigate the decline.", t.Label, t.Slope))
		}
	}

	return recs
}
