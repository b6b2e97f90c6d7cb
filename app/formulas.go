package app

import (
	"fmt"

	"gridsage/domain/analysis"
	"gridsage/domain/dataset"
)

// SuggestFormulas emits advisory spreadsheet-formula strings tied to the
// analyses that actually produced results. The strings are templates only;
// the service never parses, validates or executes them.
func SuggestFormulas(ds *dataset.Dataset, report *analysis.Report) []string {
	addr := ds.Address
	if addr == "" {
		addr = "range"
	}

	suggestions := []string{}
	if len(report.Statistics) > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("=AVERAGE(%s)", addr),
			fmt.Sprintf("=MEDIAN(%s)", addr),
			fmt.Sprintf("=STDEV.S(%s)", addr),
		)
	}
	if len(report.Correlations) > 0 {
		suggestions = append(suggestions, "=CORREL(range1, range2)")
	}
	if len(report.Outliers) > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("=QUARTILE.INC(%s, 1)", addr),
			fmt.Sprintf("=QUARTILE.INC(%s, 3)", addr),
		)
	}
	if len(report.Trends) > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("=TREND(%s)", addr),
			fmt.Sprintf("=FORECAST.LINEAR(next_x, %s, index_range)", addr),
			fmt.Sprintf("=SLOPE(%s, index_range)", addr),
		)
	}
	if report.Quality.TotalCells > 0 {
		suggestions = append(suggestions, fmt.Sprintf("=COUNTBLANK(%s)", addr))
	}

	return suggestions
}
