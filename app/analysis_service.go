package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"gridsage/adapters/stats/engine"
	"gridsage/domain/analysis"
	"gridsage/domain/core"
	"gridsage/domain/dataset"
	"gridsage/internal"
	"gridsage/ports"
)

// AnalysisService orchestrates the statistical engines into per-request
// analyses. It carries no per-request state; the engine itself is pure.
type AnalysisService struct {
	engine  *engine.Engine
	llm     ports.LLMClient
	reports ports.ReportRepository
}

// NewAnalysisService creates the orchestrator. llm and reports are optional;
// nil disables narrative wrapping and report archiving respectively.
func NewAnalysisService(eng *engine.Engine, llm ports.LLMClient, reports ports.ReportRepository) *AnalysisService {
	return &AnalysisService{
		engine:  eng,
		llm:     llm,
		reports: reports,
	}
}

// DeepAnalysisParams tune one composed analysis call.
type DeepAnalysisParams struct {
	SkipHeader      *bool                       `json:"skipHeader,omitempty"`
	ForecastHorizon int                         `json:"forecastHorizon,omitempty"`
	Scenarios       bool                        `json:"scenarios,omitempty"`
	CustomScenarios []engine.CustomScenarioSpec `json:"customScenarios,omitempty"`
}

func (p DeepAnalysisParams) options() engine.Options {
	opts := engine.DefaultOptions()
	if p.SkipHeader != nil {
		opts.SkipHeader = *p.SkipHeader
	}
	return opts
}

// DeepAnalysis runs every engine over the dataset and merges the outputs into
// one report. Sub-engines are independent pure functions, so they fan out on
// an errgroup; a sub-result that cannot be computed is simply absent and
// never aborts its siblings.
func (s *AnalysisService) DeepAnalysis(ctx context.Context, ds *dataset.Dataset, params DeepAnalysisParams) (*analysis.Report, error) {
	opts := params.options()
	report := &analysis.Report{
		ID:          core.ReportID(core.NewID()),
		Address:     ds.Address,
		GeneratedAt: time.Now().UTC(),
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.Statistics = s.engine.DescriptiveStatistics(ds, opts)
		return nil
	})
	g.Go(func() error {
		report.Correlations = s.engine.Correlations(ds, opts)
		return nil
	})
	g.Go(func() error {
		report.Outliers = s.engine.Outliers(ds, opts)
		return nil
	})
	g.Go(func() error {
		report.Trends = s.engine.Trends(ds, opts)
		return nil
	})
	g.Go(func() error {
		report.Quality = s.engine.AssessQuality(ds)
		return nil
	})
	if params.ForecastHorizon > 0 {
		g.Go(func() error {
			report.Forecasts = s.engine.Forecasts(ds, opts, params.ForecastHorizon, 0)
			return nil
		})
	}
	if params.Scenarios || len(params.CustomScenarios) > 0 {
		g.Go(func() error {
			report.Scenarios = s.buildScenarios(ds, opts, params)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(report.Scenarios) >= 2 {
		if comparison, err := s.engine.CompareScenarios(report.Scenarios); err == nil {
			report.Comparison = comparison
		}
	}

	report.Recommendations = deriveRecommendations(report)
	report.Suggestions = SuggestFormulas(ds, report)

	s.attachNarrative(ctx, report)
	s.archive(ctx, report)

	return report, nil
}

func (s *AnalysisService) buildScenarios(ds *dataset.Dataset, opts engine.Options, params DeepAnalysisParams) []analysis.Scenario {
	var scenarios []analysis.Scenario
	if params.Scenarios {
		scenarios = s.engine.StandardScenarios(ds, opts)
	}
	for _, spec := range params.CustomScenarios {
		scenarios = append(scenarios, s.engine.CustomScenario(ds, opts, spec))
	}
	return scenarios
}

// attachNarrative asks the text-completion service to wrap the numbers in
// prose. Failures are logged and swallowed: a report without narrative beats
// a failed request.
func (s *AnalysisService) attachNarrative(ctx context.Context, report *analysis.Report) {
	if s.llm == nil {
		return
	}
	narrative, err := s.llm.ChatCompletion(ctx, narrativePrompt(report))
	if err != nil {
		internal.DefaultLogger.Warn("narrative generation failed for report %s: %v", report.ID, err)
		return
	}
	report.Narrative = narrative
}

func (s *AnalysisService) archive(ctx context.Context, report *analysis.Report) {
	if s.reports == nil {
		return
	}
	if err := s.reports.Save(ctx, report); err != nil {
		internal.DefaultLogger.Warn("report archive failed for %s: %v", report.ID, err)
	}
}

// GetReport retrieves an archived report by ID.
func (s *AnalysisService) GetReport(ctx context.Context, id core.ReportID) (*analysis.Report, error) {
	if s.reports == nil {
		return nil, fmt.Errorf("report archive not configured")
	}
	return s.reports.Get(ctx, id)
}

// narrativePrompt summarizes the report compactly for the completion service.
// Prompt text is advisory context only; the numbers stand on their own.
func narrativePrompt(report *analysis.Report) string {
	prompt := fmt.Sprintf(
		"Summarize this spreadsheet analysis for a business user in short markdown.\n"+
			"Range: %s\nColumns analyzed: %d\nCorrelations found: %d\nQuality grade: %s (%.2f)\n",
		report.Address, len(report.Statistics), len(report.Correlations),
		report.Quality.Grade, report.Quality.Overall)
	for _, t := range report.Trends {
		prompt += fmt.Sprintf("- %s\n", t.Description)
	}
	for _, r := range report.Recommendations {
		prompt += fmt.Sprintf("- recommendation: %s\n", r)
	}
	return prompt
}
