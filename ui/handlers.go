package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"

	"gridsage/adapters/stats/engine"
	"gridsage/app"
	"gridsage/domain/core"
	"gridsage/domain/dataset"
	"gridsage/internal/errors"
)

// analyzeRequest is the shared request envelope: the selected range plus the
// parameters each analysis type cares about.
type analyzeRequest struct {
	Range      *dataset.RangeInput `json:"range"`
	SkipHeader *bool               `json:"skipHeader,omitempty"`

	// Forecast parameters.
	Horizon    int     `json:"horizon,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`

	// Scenario parameters.
	ScenarioType    string                      `json:"scenarioType,omitempty"`
	CustomScenarios []engine.CustomScenarioSpec `json:"customScenarios,omitempty"`

	// Sensitivity parameters.
	Column     *int    `json:"column,omitempty"`
	Baseline   float64 `json:"baseline,omitempty"`
	MinPercent float64 `json:"minPercent,omitempty"`
	MaxPercent float64 `json:"maxPercent,omitempty"`
}

func (r *analyzeRequest) options() engine.Options {
	opts := engine.DefaultOptions()
	if r.SkipHeader != nil {
		opts.SkipHeader = *r.SkipHeader
	}
	return opts
}

// bindDataset parses the request body and builds the validated dataset.
// Structural input failures surface here and nowhere deeper.
func (s *Server) bindDataset(c *gin.Context) (*analyzeRequest, *dataset.Dataset, bool) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidInput("request body must be valid JSON"))
		return nil, nil, false
	}

	ds, err := dataset.New(req.Range)
	if err != nil {
		writeError(c, err)
		return nil, nil, false
	}
	return &req, ds, true
}

func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeSelectedDataRequired, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStatistics(c *gin.Context) {
	req, ds, ok := s.bindDataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"address":    ds.Address,
		"statistics": s.engine.DescriptiveStatistics(ds, req.options()),
	})
}

func (s *Server) handleCorrelations(c *gin.Context) {
	req, ds, ok := s.bindDataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"address":      ds.Address,
		"correlations": s.engine.Correlations(ds, req.options()),
	})
}

func (s *Server) handleOutliers(c *gin.Context) {
	req, ds, ok := s.bindDataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"address":  ds.Address,
		"outliers": s.engine.Outliers(ds, req.options()),
	})
}

func (s *Server) handleTrends(c *gin.Context) {
	req, ds, ok := s.bindDataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"address": ds.Address,
		"trends":  s.engine.Trends(ds, req.options()),
	})
}

func (s *Server) handleForecast(c *gin.Context) {
	req, ds, ok := s.bindDataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"address":   ds.Address,
		"forecasts": s.engine.Forecasts(ds, req.options(), req.Horizon, req.Confidence),
	})
}

func (s *Server) handleScenarios(c *gin.Context) {
	req, ds, ok := s.bindDataset(c)
	if !ok {
		return
	}

	opts := req.options()
	scenarios := s.engine.StandardScenarios(ds, opts)
	if req.ScenarioType == "custom" {
		scenarios = nil
	}
	for _, spec := range req.CustomScenarios {
		scenarios = append(scenarios, s.engine.CustomScenario(ds, opts, spec))
	}

	response := gin.H{
		"address":            ds.Address,
		"scenarios":          scenarios,
		"weightedPrediction": s.engine.WeightedPrediction(scenarios),
	}
	if comparison, err := s.engine.CompareScenarios(scenarios); err == nil {
		response["comparison"] = comparison
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) handleSensitivity(c *gin.Context) {
	req, ds, ok := s.bindDataset(c)
	if !ok {
		return
	}

	baseline := req.Baseline
	if baseline == 0 {
		// Default baseline: mean of the requested column, or of the first
		// numeric column when none is named.
		opts := req.options()
		cols := ds.NumericColumns(opts.SkipHeader)
		col := -1
		if req.Column != nil {
			col = *req.Column
		} else if len(cols) > 0 {
			col = cols[0]
		}
		if col >= 0 {
			values := ds.NumericColumn(col, opts.SkipHeader)
			if len(values) > 0 {
				sum := 0.0
				for _, v := range values {
					sum += v
				}
				baseline = sum / float64(len(values))
			}
		}
	}

	minPct, maxPct := req.MinPercent, req.MaxPercent
	if minPct == 0 && maxPct == 0 {
		minPct, maxPct = -30, 30
	}

	c.JSON(http.StatusOK, gin.H{
		"address":  ds.Address,
		"baseline": baseline,
		"steps":    s.engine.Sensitivity(baseline, minPct, maxPct),
	})
}

func (s *Server) handleQuality(c *gin.Context) {
	_, ds, ok := s.bindDataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"address": ds.Address,
		"quality": s.engine.AssessQuality(ds),
	})
}

func (s *Server) handleDeepAnalysis(c *gin.Context) {
	req, ds, ok := s.bindDataset(c)
	if !ok {
		return
	}

	report, err := s.service.DeepAnalysis(c.Request.Context(), ds, app.DeepAnalysisParams{
		SkipHeader:      req.SkipHeader,
		ForecastHorizon: req.Horizon,
		Scenarios:       req.ScenarioType != "",
		CustomScenarios: req.CustomScenarios,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleGetReport(c *gin.Context) {
	id, err := core.ParseReportID(c.Param("id"))
	if err != nil {
		writeError(c, errors.InvalidInput(err.Error()))
		return
	}
	report, err := s.service.GetReport(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// handleReportHTML renders the archived report's narrative (markdown) as
// HTML. Reports without a narrative fall back to the recommendation list.
func (s *Server) handleReportHTML(c *gin.Context) {
	id, err := core.ParseReportID(c.Param("id"))
	if err != nil {
		writeError(c, errors.InvalidInput(err.Error()))
		return
	}
	report, err := s.service.GetReport(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	md := report.Narrative
	if md == "" {
		md = "# Analysis of " + report.Address + "\n\n"
		for _, rec := range report.Recommendations {
			md += "- " + rec + "\n"
		}
	}

	html := markdown.ToHTML([]byte(md), nil, nil)
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
