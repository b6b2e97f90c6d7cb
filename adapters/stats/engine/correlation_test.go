package engine

import (
	"testing"

	"gridsage/domain/analysis"
)

func TestPearson_SelfCorrelation(t *testing.T) {
	values := []float64{1, 3, 2, 5, 4}
	if r := pearson(values, values); !almostEqual(r, 1.0) {
		t.Errorf("self-correlation must be 1.0, got %f", r)
	}
}

func TestPearson_Symmetry(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 1, 4, 3, 6}
	if rxy, ryx := pearson(x, y), pearson(y, x); !almostEqual(rxy, ryx) {
		t.Errorf("pearson must be symmetric: %f vs %f", rxy, ryx)
	}
}

func TestPearson_ZeroVariance(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	flat := []float64{7, 7, 7, 7}
	if r := pearson(x, flat); r != 0 {
		t.Errorf("zero-variance column must yield 0, got %f", r)
	}
}

func TestPearson_PerfectNegative(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{10, 8, 6, 4, 2}
	if r := pearson(x, y); !almostEqual(r, -1.0) {
		t.Errorf("expected -1.0, got %f", r)
	}
}

func TestCorrelations_KeyAndClassification(t *testing.T) {
	eng := NewEngine()
	ds := gridDataset(t, [][]interface{}{
		{1.0, 2.0},
		{2.0, 4.0},
		{3.0, 6.0},
		{4.0, 8.0},
	})

	results := eng.Correlations(ds, rawOptions())
	record, ok := results["col_0_col_1"]
	if !ok {
		t.Fatalf("expected key col_0_col_1, got %v", results)
	}
	if !almostEqual(record.Coefficient, 1.0) {
		t.Errorf("expected perfect correlation, got %f", record.Coefficient)
	}
	if record.Strength != "very strong" {
		t.Errorf("expected very strong, got %s", record.Strength)
	}
	if record.SampleSize != 4 {
		t.Errorf("expected sample size 4, got %d", record.SampleSize)
	}
}

func TestCorrelations_PositionalTruncation(t *testing.T) {
	eng := NewEngine()

	// Column 1 has a text gap in the middle. Each column is filtered
	// independently, so column 1 collapses to [4, 8, 10] and pairs against
	// column 0's first three values rather than the rows it came from.
	ds := gridDataset(t, [][]interface{}{
		{1.0, 4.0},
		{2.0, "n/a"},
		{3.0, 8.0},
		{4.0, 10.0},
	})

	results := eng.Correlations(ds, rawOptions())
	record, ok := results["col_0_col_1"]
	if !ok {
		t.Fatal("expected pair despite unequal column lengths")
	}
	if record.SampleSize != 3 {
		t.Errorf("expected truncated sample size 3, got %d", record.SampleSize)
	}
	expected := pearson([]float64{1, 2, 3}, []float64{4, 8, 10})
	if !almostEqual(record.Coefficient, expected) {
		t.Errorf("expected positionally truncated coefficient %f, got %f", expected, record.Coefficient)
	}
}

func TestCorrelations_TooFewSamplesOmitted(t *testing.T) {
	eng := NewEngine()
	ds := gridDataset(t, [][]interface{}{
		{1.0, 2.0},
	})

	if results := eng.Correlations(ds, rawOptions()); len(results) != 0 {
		t.Errorf("pairs with n<2 must be omitted, got %v", results)
	}
}

func TestCorrelationKey_Canonical(t *testing.T) {
	if analysis.CorrelationKey(3, 1) != "col_1_col_3" {
		t.Error("key must order the lower column first")
	}
	if analysis.CorrelationKey(1, 3) != analysis.CorrelationKey(3, 1) {
		t.Error("key must be order-independent")
	}
}
