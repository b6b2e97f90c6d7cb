package engine

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"gridsage/domain/analysis"
	"gridsage/domain/dataset"
)

// Standard scenario percentages and probability weights. Fixed design
// constants; the three-scenario set sums to 1.0 by construction, custom
// scenarios carry caller-supplied weights that need not.
const (
	optimisticPct  = 20.0
	realisticPct   = 6.0
	pessimisticPct = -15.0

	optimisticProb  = 0.25
	realisticProb   = 0.60
	pessimisticProb = 0.15

	sensitivityStep = 10.0
)

// CustomScenarioSpec is a caller-supplied hypothesis definition.
type CustomScenarioSpec struct {
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Modifications []CustomModification  `json:"modifications"`
	Probability   float64               `json:"probability"`
}

// CustomModification perturbs a single column by a percentage.
type CustomModification struct {
	Column     int     `json:"column"`
	Percentage float64 `json:"percentage"`
	Rationale  string  `json:"rationale"`
}

// StandardScenarios derives the optimistic/realistic/pessimistic set from the
// baseline dataset. Each scenario applies its percentage to every numeric
// column; the expected outcome is the sum of perturbed column baselines
// (column baseline = column mean).
func (e *Engine) StandardScenarios(ds *dataset.Dataset, opts Options) []analysis.Scenario {
	baselines, labels := e.columnBaselines(ds, opts)

	return []analysis.Scenario{
		e.buildScenario("optimistic", "Favorable conditions across all measures",
			optimisticPct, optimisticProb, "medium",
			[]string{"market conditions improve", "no adverse events", "current drivers hold"},
			baselines, labels),
		e.buildScenario("realistic", "Continuation of current conditions",
			realisticPct, realisticProb, "low",
			[]string{"recent growth rate continues", "no structural changes"},
			baselines, labels),
		e.buildScenario("pessimistic", "Adverse conditions across all measures",
			pessimisticPct, pessimisticProb, "high",
			[]string{"demand contracts", "external pressure on all measures"},
			baselines, labels),
	}
}

// CustomScenario builds one scenario from explicit modifications. Columns
// without a modification contribute their baseline unchanged.
func (e *Engine) CustomScenario(ds *dataset.Dataset, opts Options, spec CustomScenarioSpec) analysis.Scenario {
	baselines, labels := e.columnBaselines(ds, opts)

	byColumn := make(map[int]CustomModification, len(spec.Modifications))
	for _, m := range spec.Modifications {
		byColumn[m.Column] = m
	}

	mods := make([]analysis.ScenarioModification, 0, len(spec.Modifications))
	outcome := 0.0
	for _, col := range sortedBaselineColumns(baselines) {
		baseline := baselines[col]
		if m, ok := byColumn[col]; ok {
			outcome += baseline * (1 + m.Percentage/100)
			mods = append(mods, analysis.ScenarioModification{
				Column:     col,
				Label:      labels[col],
				Percentage: m.Percentage,
				Rationale:  m.Rationale,
			})
		} else {
			outcome += baseline
		}
	}

	name := spec.Name
	if name == "" {
		name = "custom"
	}

	return analysis.Scenario{
		Name:            name,
		Description:     spec.Description,
		Assumptions:     []string{"caller-supplied modifications hold"},
		Modifications:   mods,
		ExpectedOutcome: outcome,
		OutcomeSummary:  outcomeSummary(outcome, sumBaselines(baselines)),
		RiskLevel:       "custom",
		Probability:     spec.Probability,
	}
}

func (e *Engine) buildScenario(name, description string, pct, probability float64, risk string, assumptions []string, baselines map[int]float64, labels []string) analysis.Scenario {
	mods := make([]analysis.ScenarioModification, 0, len(baselines))
	outcome := 0.0
	for _, col := range sortedBaselineColumns(baselines) {
		outcome += baselines[col] * (1 + pct/100)
		mods = append(mods, analysis.ScenarioModification{
			Column:     col,
			Label:      labels[col],
			Percentage: pct,
			Rationale:  fmt.Sprintf("%s adjustment of %+.0f%%", name, pct),
		})
	}

	return analysis.Scenario{
		Name:            name,
		Description:     description,
		Assumptions:     assumptions,
		Modifications:   mods,
		ExpectedOutcome: outcome,
		OutcomeSummary:  outcomeSummary(outcome, sumBaselines(baselines)),
		RiskLevel:       risk,
		Probability:     probability,
	}
}

// columnBaselines maps each numeric column to its mean value.
func (e *Engine) columnBaselines(ds *dataset.Dataset, opts Options) (map[int]float64, []string) {
	baselines := make(map[int]float64)
	for _, col := range ds.NumericColumns(opts.SkipHeader) {
		values := ds.NumericColumn(col, opts.SkipHeader)
		if len(values) == 0 {
			continue
		}
		baselines[col] = meanOf(values)
	}
	return baselines, ds.Header()
}

func sortedBaselineColumns(baselines map[int]float64) []int {
	cols := make([]int, 0, len(baselines))
	for col := range baselines {
		cols = append(cols, col)
	}
	// Small sets; insertion sort keeps iteration deterministic.
	for i := 1; i < len(cols); i++ {
		for j := i; j > 0 && cols[j] < cols[j-1]; j-- {
			cols[j], cols[j-1] = cols[j-1], cols[j]
		}
	}
	return cols
}

func sumBaselines(baselines map[int]float64) float64 {
	sum := 0.0
	for _, v := range baselines {
		sum += v
	}
	return sum
}

func outcomeSummary(outcome, baseline float64) string {
	if baseline == 0 {
		return "no baseline to compare against"
	}
	change := (outcome - baseline) / baseline * 100
	return fmt.Sprintf("%s versus baseline", analysis.SensitivityImpact(roundHalfAway(change)))
}

// roundHalfAway keeps the threshold comparison stable against floating-point
// noise in the computed change percentage.
func roundHalfAway(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}

// CompareScenarios summarizes two or more scenarios: best and worst by
// expected outcome, most likely by probability weight (first wins ties), and
// a sample variance/σ/confidence-interval summary over the discrete outcomes.
// Probabilities are treated purely as relative weights here.
func (e *Engine) CompareScenarios(scenarios []analysis.Scenario) (*analysis.ScenarioComparison, error) {
	if len(scenarios) < 2 {
		return nil, fmt.Errorf("scenario comparison requires at least 2 scenarios, got %d", len(scenarios))
	}

	best, worst, mostLikely := scenarios[0], scenarios[0], scenarios[0]
	outcomes := make([]float64, len(scenarios))
	for i, s := range scenarios {
		outcomes[i] = s.ExpectedOutcome
		if s.ExpectedOutcome > best.ExpectedOutcome {
			best = s
		}
		if s.ExpectedOutcome < worst.ExpectedOutcome {
			worst = s
		}
		if s.Probability > mostLikely.Probability {
			mostLikely = s
		}
	}

	mean := meanOf(outcomes)
	variance, _ := stats.SampleVariance(outcomes)
	stdDev := math.Sqrt(variance)
	margin := zTwoTailed95 * stdDev / math.Sqrt(float64(len(outcomes)))

	return &analysis.ScenarioComparison{
		Best:       best.Name,
		Worst:      worst.Name,
		MostLikely: mostLikely.Name,
		Mean:       mean,
		Variance:   variance,
		StdDev:     stdDev,
		ConfidenceInterval: [2]float64{
			mean - margin,
			mean + margin,
		},
	}, nil
}

// WeightedPrediction is the probability-weighted outcome Σ pᵢ·outcomeᵢ.
func (e *Engine) WeightedPrediction(scenarios []analysis.Scenario) float64 {
	sum := 0.0
	for _, s := range scenarios {
		sum += s.Probability * s.ExpectedOutcome
	}
	return sum
}

// Sensitivity sweeps a stepped percentage range over a baseline value,
// stepping by 10 percentage points.
func (e *Engine) Sensitivity(baseline, minPct, maxPct float64) []analysis.SensitivityStep {
	if minPct > maxPct {
		minPct, maxPct = maxPct, minPct
	}

	steps := make([]analysis.SensitivityStep, 0)
	for change := minPct; change <= maxPct; change += sensitivityStep {
		multiplier := 1 + change/100
		steps = append(steps, analysis.SensitivityStep{
			Change:     change,
			Multiplier: multiplier,
			Projected:  baseline * multiplier,
			Impact:     analysis.SensitivityImpact(change),
		})
	}
	return steps
}
