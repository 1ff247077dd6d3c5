// Package store persists analysis reports keyed by equipment name. Two
// backends exist: JSON files on disk (the default) and SQLite.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/clm6/transformer-diagnostic-ai/internal/config"
	"github.com/clm6/transformer-diagnostic-ai/internal/model"
)

// ErrNotFound is returned when no report exists for an equipment name.
var ErrNotFound = eris.New("store: report not found")

// ReportStore persists one report per equipment name. Save overwrites any
// prior report for the same equipment (last write wins).
type ReportStore interface {
	Save(ctx context.Context, report *model.AnalysisReport) error
	Get(ctx context.Context, equipmentName string) (*model.AnalysisReport, error)
	List(ctx context.Context) ([]model.ReportListing, error)
	// Delete removes the report for one equipment name, returning how many
	// reports were removed (0 or 1).
	Delete(ctx context.Context, equipmentName string) (int, error)
	// DeleteAll removes every report and returns the count removed.
	DeleteAll(ctx context.Context) (int, error)
	Close() error
}

// New creates a ReportStore from config.
func New(cfg config.StoreConfig) (ReportStore, error) {
	switch cfg.Driver {
	case "fs", "":
		return NewFS(cfg.ReportsDir)
	case "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
