package engine

import (
	"gridsage/domain/analysis"
	"gridsage/domain/dataset"
)

// Consistency and accuracy are not yet modeled: the original product shipped
// fixed heuristic scores here, and replacing them with a real rule engine is
// an open product decision. The constants are named so the extension point is
// visible. See DESIGN.md.
const (
	notYetModeledConsistency = 0.90
	notYetModeledAccuracy    = 0.85
)

// AssessQuality scores the dataset on completeness, uniqueness, consistency
// and accuracy, and grades the arithmetic mean. An empty dataset scores
// completeness and uniqueness of 1 by convention.
func (e *Engine) AssessQuality(ds *dataset.Dataset) analysis.QualityReport {
	totalCells := ds.RowCount * ds.ColumnCount

	missing := 0
	for _, row := range ds.Cells {
		for _, c := range row {
			if c.IsEmpty() {
				missing++
			}
		}
	}

	completeness := 1.0
	if totalCells > 0 {
		completeness = 1 - float64(missing)/float64(totalCells)
	}

	duplicates := 0
	seen := make(map[string]bool, ds.RowCount)
	for i := 0; i < ds.RowCount; i++ {
		key := ds.RowKey(i)
		if seen[key] {
			duplicates++
		}
		seen[key] = true
	}

	uniqueness := 1.0
	if ds.RowCount > 0 {
		uniqueness = 1 - float64(duplicates)/float64(ds.RowCount)
	}

	overall := (completeness + uniqueness + notYetModeledConsistency + notYetModeledAccuracy) / 4

	return analysis.QualityReport{
		Completeness:  completeness,
		Uniqueness:    uniqueness,
		Consistency:   notYetModeledConsistency,
		Accuracy:      notYetModeledAccuracy,
		Overall:       overall,
		Grade:         analysis.QualityGrade(overall),
		MissingCells:  missing,
		TotalCells:    totalCells,
		DuplicateRows: duplicates,
		RowCount:      ds.RowCount,
	}
}
