package analysis

import (
	"time"

	"gridsage/domain/core"
)

// ColumnStatistics is the per-column descriptive statistics record.
// Skewness and kurtosis are nil when undefined (zero deviation, or fewer than
// 3 / 4 samples respectively).
type ColumnStatistics struct {
	Column     int             `json:"column"`
	Label      string          `json:"label"`
	Count      int             `json:"count"`
	Sum        float64         `json:"sum"`
	Mean       float64         `json:"mean"`
	Median     float64         `json:"median"`
	Mode       []float64       `json:"mode"`
	Min        float64         `json:"min"`
	Max        float64         `json:"max"`
	Range      float64         `json:"range"`
	Variance   float64         `json:"variance"`
	StdDev     float64         `json:"std_dev"`
	Skewness   *float64        `json:"skewness,omitempty"`
	Kurtosis   *float64        `json:"kurtosis,omitempty"`
	Quartiles  Quartiles       `json:"quartiles"`
	Percentile map[int]float64 `json:"percentiles"`
	Normality  *Normality      `json:"normality,omitempty"`
}

// Quartiles holds the 25th/50th/75th percentiles of a sample.
type Quartiles struct {
	Q1 float64 `json:"q1"`
	Q2 float64 `json:"q2"`
	Q3 float64 `json:"q3"`
}

// Normality is a skewness/kurtosis based distribution-shape assessment.
type Normality struct {
	IsNormal bool    `json:"is_normal"`
	PValue   float64 `json:"p_value"`
}

// Correlation records one pairwise Pearson relationship.
type Correlation struct {
	ColumnX        int     `json:"column_x"`
	ColumnY        int     `json:"column_y"`
	Coefficient    float64 `json:"coefficient"`
	Strength       string  `json:"strength"`
	Interpretation string  `json:"interpretation"`
	SampleSize     int     `json:"sample_size"`
}

// OutlierAssessment records IQR-fence outlier classification for one column.
type OutlierAssessment struct {
	Column             int       `json:"column"`
	Label              string    `json:"label"`
	Q1                 float64   `json:"q1"`
	Q3                 float64   `json:"q3"`
	IQR                float64   `json:"iqr"`
	LowerFence         float64   `json:"lower_fence"`
	UpperFence         float64   `json:"upper_fence"`
	LowerExtremeFence  float64   `json:"lower_extreme_fence"`
	UpperExtremeFence  float64   `json:"upper_extreme_fence"`
	MildOutliers       []float64 `json:"mild_outliers"`
	ExtremeOutliers    []float64 `json:"extreme_outliers"`
	SampleSize         int       `json:"sample_size"`
	PercentageAffected float64   `json:"percentage_affected"`
	Impact             string    `json:"impact"`
}

// TrendAnalysis records the OLS fit and derived momentum measures for one column.
type TrendAnalysis struct {
	Column        int       `json:"column"`
	Label         string    `json:"label"`
	Slope         float64   `json:"slope"`
	Intercept     float64   `json:"intercept"`
	Direction     string    `json:"direction"`
	Strength      float64   `json:"strength"`
	Description   string    `json:"description"`
	MovingAverage []float64 `json:"moving_average"`
	Volatility    float64   `json:"volatility"`
	Momentum      float64   `json:"momentum"`
	SampleSize    int       `json:"sample_size"`
}

// ForecastPoint is one future period estimate with its confidence band.
type ForecastPoint struct {
	Period int     `json:"period"`
	Value  float64 `json:"value"`
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
}

// Forecast extends a fitted trend by a requested horizon.
type Forecast struct {
	Column      int             `json:"column"`
	Label       string          `json:"label"`
	Horizon     int             `json:"horizon"`
	Confidence  float64         `json:"confidence"`
	MSE         float64         `json:"mse"`
	Predictions []ForecastPoint `json:"predictions"`
	Reliability string          `json:"reliability"`
	Trend       TrendAnalysis   `json:"trend"`
}

// ScenarioModification is one per-column percentage perturbation.
type ScenarioModification struct {
	Column     int     `json:"column"`
	Label      string  `json:"label"`
	Percentage float64 `json:"percentage"`
	Rationale  string  `json:"rationale"`
}

// Scenario is a named hypothetical perturbation of the baseline.
// Probability is a relative weight; scenario sets are not required to sum to 1.
type Scenario struct {
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	Assumptions     []string               `json:"assumptions"`
	Modifications   []ScenarioModification `json:"modifications"`
	ExpectedOutcome float64                `json:"expected_outcome"`
	OutcomeSummary  string                 `json:"outcome_summary"`
	RiskLevel       string                 `json:"risk_level"`
	Probability     float64                `json:"probability"`
}

// ScenarioComparison summarizes a set of two or more scenarios.
type ScenarioComparison struct {
	Best               string     `json:"best"`
	Worst              string     `json:"worst"`
	MostLikely         string     `json:"most_likely"`
	Mean               float64    `json:"mean"`
	Variance           float64    `json:"variance"`
	StdDev             float64    `json:"std_dev"`
	ConfidenceInterval [2]float64 `json:"confidence_interval"`
}

// SensitivityStep is one row of a stepped percentage sensitivity sweep.
type SensitivityStep struct {
	Change     float64 `json:"change"`
	Multiplier float64 `json:"multiplier"`
	Projected  float64 `json:"projected"`
	Impact     string  `json:"impact"`
}

// QualityReport scores a dataset on four dimensions and grades the mean.
type QualityReport struct {
	Completeness  float64 `json:"completeness"`
	Uniqueness    float64 `json:"uniqueness"`
	Consistency   float64 `json:"consistency"`
	Accuracy      float64 `json:"accuracy"`
	Overall       float64 `json:"overall"`
	Grade         string  `json:"grade"`
	MissingCells  int     `json:"missing_cells"`
	TotalCells    int     `json:"total_cells"`
	DuplicateRows int     `json:"duplicate_rows"`
	RowCount      int     `json:"row_count"`
}

// Report is the composed deep-analysis output. Sub-results are partial by
// design: an engine that cannot produce a record for a column simply omits it.
type Report struct {
	ID              core.ReportID                `json:"id"`
	Address         string                       `json:"address"`
	GeneratedAt     time.Time                    `json:"generated_at"`
	Statistics      map[int]ColumnStatistics     `json:"statistics"`
	Correlations    map[string]Correlation       `json:"correlations"`
	Outliers        map[int]OutlierAssessment    `json:"outliers"`
	Trends          map[int]TrendAnalysis        `json:"trends"`
	Forecasts       map[int]Forecast             `json:"forecasts,omitempty"`
	Quality         QualityReport                `json:"quality"`
	Scenarios       []Scenario                   `json:"scenarios"`
	Comparison      *ScenarioComparison          `json:"scenario_comparison,omitempty"`
	Recommendations []string                     `json:"recommendations"`
	Suggestions     []string                     `json:"suggested_formulas"`
	Narrative       string                       `json:"narrative,omitempty"`
}
