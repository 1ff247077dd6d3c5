package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/clm6/transformer-diagnostic-ai/internal/model"
)

// SQLiteStore keeps reports in a single table keyed by equipment name, with
// the full report as a JSON column and a few extracted columns for listing.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path, configures WAL mode,
// and applies the schema.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = "reports.db"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "store: sqlite open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: sqlite exec %s", pragma)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS reports (
	equipment_name TEXT PRIMARY KEY,
	analysis_date  TEXT NOT NULL DEFAULT '',
	risk_level     TEXT NOT NULL DEFAULT '',
	report         TEXT NOT NULL,
	updated_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_reports_risk_level ON reports(risk_level);
`

func (s *SQLiteStore) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "store: sqlite migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, r *model.AnalysisReport) error {
	if r.EquipmentName == "" {
		return eris.New("store: report has no equipment name")
	}

	data, err := json.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "store: marshal report")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (equipment_name, analysis_date, risk_level, report, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(equipment_name) DO UPDATE SET
			analysis_date = excluded.analysis_date,
			risk_level    = excluded.risk_level,
			report        = excluded.report,
			updated_at    = excluded.updated_at`,
		r.EquipmentName, r.AnalysisDate, string(r.RiskAssessment.RiskLevel), string(data), time.Now().UTC(),
	)
	return eris.Wrapf(err, "store: upsert report for %s", r.EquipmentName)
}

func (s *SQLiteStore) Get(ctx context.Context, equipmentName string) (*model.AnalysisReport, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM reports WHERE equipment_name = ?`, equipmentName,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, eris.Wrapf(ErrNotFound, "equipment %s", equipmentName)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "store: query report for %s", equipmentName)
	}

	var r model.AnalysisReport
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, eris.Wrapf(err, "store: parse report for %s", equipmentName)
	}
	return &r, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]model.ReportListing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT equipment_name, report FROM reports ORDER BY equipment_name`)
	if err != nil {
		return nil, eris.Wrap(err, "store: list reports")
	}
	defer rows.Close()

	var listings []model.ReportListing
	for rows.Next() {
		var name, data string
		if err := rows.Scan(&name, &data); err != nil {
			return nil, eris.Wrap(err, "store: scan report row")
		}

		var r model.AnalysisReport
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			zap.L().Warn("store: skipping corrupt report row", zap.String("equipment", name), zap.Error(err))
			continue
		}

		listings = append(listings, model.ReportListing{
			Filename:      name + reportSuffix,
			EquipmentName: r.EquipmentName,
			AnalysisDate:  r.AnalysisDate,
			HealthScore:   r.AssetHealth.OverallScore,
			RiskLevel:     r.RiskAssessment.RiskLevel,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "store: iterate report rows")
	}
	if listings == nil {
		listings = []model.ReportListing{}
	}
	return listings, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, equipmentName string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM reports WHERE equipment_name = ?`, equipmentName)
	if err != nil {
		return 0, eris.Wrapf(err, "store: delete report for %s", equipmentName)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "store: rows affected")
	}
	return int(n), nil
}

func (s *SQLiteStore) DeleteAll(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports`)
	if err != nil {
		return 0, eris.Wrap(err, "store: delete all reports")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "store: rows affected")
	}
	return int(n), nil
}
