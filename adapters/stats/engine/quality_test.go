package engine

import (
	"testing"

	"gridsage/domain/dataset"
)

func TestAssessQuality_CleanGrid(t *testing.T) {
	eng := NewEngine()
	ds := gridDataset(t, [][]interface{}{
		{1.0, 2.0, 3.0},
		{4.0, 5.0, 6.0},
		{7.0, 8.0, 9.0},
	})

	report := eng.AssessQuality(ds)
	if !almostEqual(report.Completeness, 1.0) {
		t.Errorf("distinct full grid must score completeness 1.0, got %f", report.Completeness)
	}
	if !almostEqual(report.Uniqueness, 1.0) {
		t.Errorf("distinct rows must score uniqueness 1.0, got %f", report.Uniqueness)
	}
	if report.MissingCells != 0 || report.DuplicateRows != 0 {
		t.Errorf("clean grid reported missing=%d dup=%d", report.MissingCells, report.DuplicateRows)
	}

	expectedOverall := (1.0 + 1.0 + 0.90 + 0.85) / 4
	if !almostEqual(report.Overall, expectedOverall) {
		t.Errorf("expected overall %f, got %f", expectedOverall, report.Overall)
	}
	if report.Grade != "A" {
		t.Errorf("expected grade A, got %s", report.Grade)
	}
}

func TestAssessQuality_MissingCells(t *testing.T) {
	eng := NewEngine()
	ds := gridDataset(t, [][]interface{}{
		{1.0, nil},
		{2.0, ""},
		{3.0, 4.0},
	})

	report := eng.AssessQuality(ds)
	if report.MissingCells != 2 {
		t.Errorf("expected 2 missing cells, got %d", report.MissingCells)
	}
	if !almostEqual(report.Completeness, 1-2.0/6.0) {
		t.Errorf("expected completeness %f, got %f", 1-2.0/6.0, report.Completeness)
	}
}

func TestAssessQuality_DuplicateRows(t *testing.T) {
	eng := NewEngine()
	ds := gridDataset(t, [][]interface{}{
		{1.0, "a"},
		{1.0, "a"},
		{1.0, "a"},
		{2.0, "b"},
	})

	report := eng.AssessQuality(ds)
	if report.DuplicateRows != 2 {
		t.Errorf("expected 2 duplicate rows, got %d", report.DuplicateRows)
	}
	if !almostEqual(report.Uniqueness, 0.5) {
		t.Errorf("expected uniqueness 0.5, got %f", report.Uniqueness)
	}
}

func TestAssessQuality_EmptyDatasetConvention(t *testing.T) {
	eng := NewEngine()

	report := eng.AssessQuality(&dataset.Dataset{})
	if !almostEqual(report.Completeness, 1.0) || !almostEqual(report.Uniqueness, 1.0) {
		t.Errorf("empty dataset must score 1.0 on both ratios, got %f/%f",
			report.Completeness, report.Uniqueness)
	}
}

func TestAssessQuality_OverallIsDimensionMean(t *testing.T) {
	eng := NewEngine()
	ds := gridDataset(t, [][]interface{}{
		{1.0, nil},
		{1.0, nil},
		{2.0, 3.0},
		{4.0, 5.0},
	})

	report := eng.AssessQuality(ds)
	expected := (report.Completeness + report.Uniqueness + report.Consistency + report.Accuracy) / 4
	if !almostEqual(report.Overall, expected) {
		t.Errorf("overall %f != dimension mean %f", report.Overall, expected)
	}
}
