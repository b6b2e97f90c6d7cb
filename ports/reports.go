package ports

import (
	"context"

	"gridsage/domain/analysis"
	"gridsage/domain/core"
)

// ReportRepository archives finished deep-analysis reports. Dataset values
// are never stored, only the derived report.
type ReportRepository interface {
	EnsureSchema(ctx context.Context) error
	Save(ctx context.Context, report *analysis.Report) error
	Get(ctx context.Context, id core.ReportID) (*analysis.Report, error)
}
