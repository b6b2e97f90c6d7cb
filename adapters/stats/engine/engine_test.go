package engine

import (
	"math"
	"testing"

	"gridsage/domain/dataset"
)

const epsilon = 1e-9

// columnDataset builds a single-column headerless dataset from raw values.
func columnDataset(t *testing.T, values []float64) *dataset.Dataset {
	t.Helper()
	grid := make([][]interface{}, len(values))
	for i, v := range values {
		grid[i] = []interface{}{v}
	}
	return gridDataset(t, grid)
}

func gridDataset(t *testing.T, grid [][]interface{}) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(&dataset.RangeInput{
		Address:     "Sheet1!A1:Z100",
		Values:      grid,
		RowCount:    len(grid),
		ColumnCount: len(grid[0]),
	})
	if err != nil {
		t.Fatalf("failed to build dataset: %v", err)
	}
	return ds
}

func rawOptions() Options {
	return Options{SkipHeader: false}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestPercentile_Interpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	// index = 0.5 * 3 = 1.5 → interpolate between 2 and 3
	if got := percentile(sorted, 50); !almostEqual(got, 2.5) {
		t.Errorf("expected 2.5, got %f", got)
	}
	// index = 0.25 * 3 = 0.75 → 1 + 0.75
	if got := percentile(sorted, 25); !almostEqual(got, 1.75) {
		t.Errorf("expected 1.75, got %f", got)
	}
	if got := percentile(sorted, 0); !almostEqual(got, 1) {
		t.Errorf("expected 1, got %f", got)
	}
	if got := percentile(sorted, 100); !almostEqual(got, 4) {
		t.Errorf("expected 4, got %f", got)
	}
	if got := percentile([]float64{7}, 90); !almostEqual(got, 7) {
		t.Errorf("single sample: expected 7, got %f", got)
	}
}
