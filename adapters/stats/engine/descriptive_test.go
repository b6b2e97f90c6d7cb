package engine

import (
	"math"
	"reflect"
	"testing"
)

func TestDescriptiveStatistics_BasicProperties(t *testing.T) {
	eng := NewEngine()
	values := []float64{4, 1, 7, 3, 9, 2, 8}
	ds := columnDataset(t, values)

	results := eng.DescriptiveStatistics(ds, rawOptions())
	record, ok := results[0]
	if !ok {
		t.Fatal("expected statistics for column 0")
	}

	if record.Count != len(values) {
		t.Errorf("expected count %d, got %d", len(values), record.Count)
	}

	// mean == sum/len exactly
	if !almostEqual(record.Mean, record.Sum/float64(record.Count)) {
		t.Errorf("mean %f != sum/len %f", record.Mean, record.Sum/float64(record.Count))
	}

	// variance ≥ 0, stddev == sqrt(variance)
	if record.Variance < 0 {
		t.Errorf("variance must be non-negative, got %f", record.Variance)
	}
	if !almostEqual(record.StdDev, math.Sqrt(record.Variance)) {
		t.Errorf("stddev %f != sqrt(variance) %f", record.StdDev, math.Sqrt(record.Variance))
	}

	if !almostEqual(record.Range, record.Max-record.Min) {
		t.Errorf("range %f != max-min %f", record.Range, record.Max-record.Min)
	}
}

func TestDescriptiveStatistics_MedianMatchesP50(t *testing.T) {
	eng := NewEngine()

	for _, values := range [][]float64{
		{5, 1, 3, 2, 4},    // odd length
		{6, 1, 3, 2, 4, 5}, // even length
	} {
		ds := columnDataset(t, values)
		record := eng.DescriptiveStatistics(ds, rawOptions())[0]

		if !almostEqual(record.Median, record.Percentile[50]) {
			t.Errorf("n=%d: median %f != percentile(50) %f",
				len(values), record.Median, record.Percentile[50])
		}
		if !almostEqual(record.Median, record.Quartiles.Q2) {
			t.Errorf("n=%d: median %f != Q2 %f", len(values), record.Median, record.Quartiles.Q2)
		}
	}
}

func TestDescriptiveStatistics_PercentileLevels(t *testing.T) {
	eng := NewEngine()
	ds := columnDataset(t, []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100})

	record := eng.DescriptiveStatistics(ds, rawOptions())[0]
	for _, p := range []int{5, 10, 25, 50, 75, 90, 95} {
		if _, ok := record.Percentile[p]; !ok {
			t.Errorf("missing percentile %d", p)
		}
	}
	if !almostEqual(record.Percentile[50], 55) {
		t.Errorf("expected P50 55, got %f", record.Percentile[50])
	}
}

func TestDescriptiveStatistics_ShapeUndefinedForSmallOrFlatSamples(t *testing.T) {
	eng := NewEngine()

	// n=2: skewness needs 3, kurtosis needs 4
	record := eng.DescriptiveStatistics(columnDataset(t, []float64{1, 2}), rawOptions())[0]
	if record.Skewness != nil {
		t.Error("skewness must be undefined for n=2")
	}
	if record.Kurtosis != nil {
		t.Error("kurtosis must be undefined for n=2")
	}

	// n=3: skewness defined, kurtosis not
	record = eng.DescriptiveStatistics(columnDataset(t, []float64{1, 2, 4}), rawOptions())[0]
	if record.Skewness == nil {
		t.Error("skewness must be defined for n=3 with spread")
	}
	if record.Kurtosis != nil {
		t.Error("kurtosis must be undefined for n=3")
	}

	// zero deviation: both undefined regardless of n
	record = eng.DescriptiveStatistics(columnDataset(t, []float64{5, 5, 5, 5, 5}), rawOptions())[0]
	if record.Skewness != nil || record.Kurtosis != nil {
		t.Error("shape statistics must be undefined for zero deviation")
	}
}

func TestDescriptiveStatistics_SkewnessSign(t *testing.T) {
	eng := NewEngine()

	// Right tail → positive skew
	record := eng.DescriptiveStatistics(columnDataset(t, []float64{1, 2, 2, 3, 3, 3, 50}), rawOptions())[0]
	if record.Skewness == nil || *record.Skewness <= 0 {
		t.Errorf("expected positive skewness for right-tailed sample, got %v", record.Skewness)
	}
}

func TestDescriptiveStatistics_Mode(t *testing.T) {
	eng := NewEngine()
	record := eng.DescriptiveStatistics(columnDataset(t, []float64{1, 2, 2, 3, 3, 4}), rawOptions())[0]

	if len(record.Mode) != 2 {
		t.Fatalf("expected bimodal result, got %v", record.Mode)
	}
}

func TestDescriptiveStatistics_SkipsNonNumericColumns(t *testing.T) {
	eng := NewEngine()
	ds := gridDataset(t, [][]interface{}{
		{"Name", "Score"},
		{"alice", 10.0},
		{"bob", 20.0},
	})

	results := eng.DescriptiveStatistics(ds, DefaultOptions())
	if _, ok := results[0]; ok {
		t.Error("text column must not produce statistics")
	}
	record, ok := results[1]
	if !ok {
		t.Fatal("numeric column missing from results")
	}
	if record.Label != "Score" {
		t.Errorf("expected label Score, got %s", record.Label)
	}
	if !almostEqual(record.Mean, 15) {
		t.Errorf("expected mean 15, got %f", record.Mean)
	}
}

func TestDescriptiveStatistics_Deterministic(t *testing.T) {
	eng := NewEngine()
	ds := columnDataset(t, []float64{3.1, 4.1, 5.9, 2.6, 5.3, 5.8, 9.7, 9.3})

	first := eng.DescriptiveStatistics(ds, rawOptions())
	second := eng.DescriptiveStatistics(ds, rawOptions())

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated runs over the same dataset must be bit-identical")
	}
}
