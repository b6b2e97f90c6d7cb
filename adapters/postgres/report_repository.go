package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"gridsage/domain/analysis"
	"gridsage/domain/core"
	"gridsage/internal/errors"
	"gridsage/ports"
)

// ReportRepository archives deep-analysis reports as JSON documents.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a PostgreSQL report repository.
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &ReportRepository{db: db}
}

// EnsureSchema creates the archive table when missing.
func (r *ReportRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS analysis_reports (
			id         TEXT PRIMARY KEY,
			address    TEXT NOT NULL,
			report     JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return errors.Wrap(err, "failed to create analysis_reports table")
	}
	return nil
}

type reportRow struct {
	ID        string    `db:"id"`
	Address   string    `db:"address"`
	Report    []byte    `db:"report"`
	CreatedAt time.Time `db:"created_at"`
}

// Save archives one report. Only the derived report is stored, never the
// dataset values it was computed from.
func (r *ReportRepository) Save(ctx context.Context, report *analysis.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "failed to serialize report")
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO analysis_reports (id, address, report, created_at)
		VALUES (:id, :address, :report, :created_at)
		ON CONFLICT (id) DO UPDATE SET report = EXCLUDED.report
	`, reportRow{
		ID:        report.ID.String(),
		Address:   report.Address,
		Report:    payload,
		CreatedAt: report.GeneratedAt,
	})
	if err != nil {
		return errors.Wrap(err, "failed to insert report")
	}
	return nil
}

// Get loads an archived report by ID.
func (r *ReportRepository) Get(ctx context.Context, id core.ReportID) (*analysis.Report, error) {
	var row reportRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, address, report, created_at
		FROM analysis_reports
		WHERE id = $1
	`, id.String())
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("report")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load report")
	}

	var report analysis.Report
	if err := json.Unmarshal(row.Report, &report); err != nil {
		return nil, errors.Wrap(err, "failed to decode archived report")
	}
	return &report, nil
}
