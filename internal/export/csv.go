// Package export renders persisted analysis reports as CSV files and Excel
// workbooks, and computes the fleet-wide dashboard summary.
package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/clm6/transformer-diagnostic-ai/internal/config"
	"github.com/clm6/transformer-diagnostic-ai/internal/model"
	"github.com/clm6/transformer-diagnostic-ai/internal/report"
	"github.com/clm6/transformer-diagnostic-ai/internal/store"
)

// MasterCSVName is the combined export across all equipment.
const MasterCSVName = "TransformIQ_Master_Analysis.csv"

// csvHeaders is the exact column set consumers of these exports depend on.
// Order and spelling (including the en dash in "Risk Score (1–5)") are fixed.
var csvHeaders = []string{
	"Equipment Name",
	"Serial Number",
	"Manufacturer",
	"MVA Rating",
	"Voltage Class",
	"Date",
	"Test Type",
	"Measurement Point",
	"Value(s)",
	"IEEE Reference / Correction",
	"Comment",
	"Risk Analysis",
	"Risk Score (1–5)",
	"Predictive Maintenance (Action Plan)",
	"Life Expectancy (Years)",
	"Remaining Life Forecast (Unit-Level)",
	"ROI Scenario Comparison (A=Bushings / B=Run-to-Failure / C=Replace)",
	"V-Curve Analysis (Tap Sweep)",
	"Estimated Cost to Remediate (USD)",
	"Health Index (IEEE C57.152)",
	"Average Risk Score",
}

const dash = "—"

var moneyPrinter = message.NewPrinter(language.English)

// Exporter writes CSV and XLSX files under a single output directory.
type Exporter struct {
	dir string
}

// NewExporter creates the output directory if needed.
func NewExporter(cfg config.ExportConfig) (*Exporter, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "csv_exports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "export: create output dir %s", dir)
	}
	return &Exporter{dir: dir}, nil
}

// Dir returns the output directory.
func (e *Exporter) Dir() string { return e.dir }

// ExportReport writes one per-equipment CSV: a row per measurement followed by
// two roll-up rows. Returns the written file path.
func (e *Exporter) ExportReport(r *model.AnalysisReport) (string, error) {
	path := filepath.Join(e.dir, report.SanitizeName(r.EquipmentName)+"_detailed_analysis.csv")

	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeaders); err != nil {
		return "", eris.Wrap(err, "export: write header")
	}

	for _, row := range reportRows(r) {
		if err := w.Write(row); err != nil {
			return "", eris.Wrap(err, "export: write row")
		}
	}

	if s := r.CSVSummary; s != nil {
		if err := w.Write(rollUpRow(s)); err != nil {
			return "", eris.Wrap(err, "export: write roll-up row")
		}
		if err := w.Write(healthIndexRow(s)); err != nil {
			return "", eris.Wrap(err, "export: write health index row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", eris.Wrapf(err, "export: flush %s", path)
	}
	return path, nil
}

// ExportAll writes a per-equipment CSV for every stored report. Reports that
// fail to export are logged and skipped so one bad report cannot block the
// rest of the fleet.
func (e *Exporter) ExportAll(ctx context.Context, s store.ReportStore) ([]string, error) {
	reports, err := loadAll(ctx, s)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(reports))
	for _, r := range reports {
		path, err := e.ExportReport(r)
		if err != nil {
			zap.L().Warn("export: skipping report", zap.String("equipment", r.EquipmentName), zap.Error(err))
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ExportMaster writes the combined CSV across all equipment, ordered by
// equipment name and then by each report's row order.
func (e *Exporter) ExportMaster(ctx context.Context, s store.ReportStore) (string, error) {
	reports, err := loadAll(ctx, s)
	if err != nil {
		return "", err
	}

	path := filepath.Join(e.dir, MasterCSVName)
	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeaders); err != nil {
		return "", eris.Wrap(err, "export: write header")
	}
	for _, r := range reports {
		for _, row := range reportRows(r) {
			if err := w.Write(row); err != nil {
				return "", eris.Wrap(err, "export: write row")
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", eris.Wrapf(err, "export: flush %s", path)
	}
	return path, nil
}

// loadAll fetches full reports in listing order (sorted by equipment name).
func loadAll(ctx context.Context, s store.ReportStore) ([]*model.AnalysisReport, error) {
	listings, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]*model.AnalysisReport, 0, len(listings))
	for _, l := range listings {
		r, err := s.Get(ctx, l.EquipmentName)
		if err != nil {
			zap.L().Warn("export: skipping unreadable report", zap.String("equipment", l.EquipmentName), zap.Error(err))
			continue
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// reportRows renders the measurement rows, each repeating the equipment-level
// identifier and scoring columns.
func reportRows(r *model.AnalysisReport) [][]string {
	var serial, manufacturer, mva, voltage string
	if ids := r.EquipmentIdentifiers; ids != nil {
		serial = ids.SerialNumber
		manufacturer = ids.Manufacturer
		mva = model.RenderID(ids.MVARating)
		voltage = ids.VoltageClass
	}
	healthIndex := formatNumber(r.AssetHealth.HealthIndexIEEE)
	avgRisk := formatNumber(r.AssetHealth.AverageRiskScore)

	rows := make([][]string, 0, len(r.DetailedTabularData))
	for _, d := range r.DetailedTabularData {
		rows = append(rows, []string{
			r.EquipmentName,
			serial,
			manufacturer,
			mva,
			voltage,
			d.Date,
			d.TestType,
			d.MeasurementPoint,
			d.Values,
			d.IEEEReference,
			d.Comment,
			d.RiskAnalysis,
			strconv.Itoa(d.RiskScore),
			d.PredictiveMaintenance,
			model.RenderID(d.LifeExpectancyYears),
			d.RemainingLifeForecast,
			d.ROIScenarioComparison,
			d.VCurveAnalysis,
			formatNumber(d.EstimatedCostUSD),
			healthIndex,
			avgRisk,
		})
	}
	return rows
}

// rollUpRow is the unit summary line: aggregate risk in the risk score column
// and the formatted cost total in the cost column, dashes elsewhere.
func rollUpRow(s *model.CSVSummary) []string {
	return []string{
		"", "", "", "", "",
		dash,
		"Roll-Up",
		"Unit Summary",
		dash, dash, dash, dash,
		"Avg ≈ " + formatNumber(s.AverageRiskScore),
		dash, dash, dash, dash, dash,
		formatMoneyTotal(s.TotalEstimatedCost),
		"", "",
	}
}

// formatMoneyTotal renders a dollar amount with thousands separators, e.g.
// "$45,000 (Total)".
func formatMoneyTotal(f float64) string {
	if f == float64(int64(f)) {
		return moneyPrinter.Sprintf("$%d (Total)", int64(f))
	}
	return moneyPrinter.Sprintf("$%.2f (Total)", f)
}

// healthIndexRow carries the unit health index in the cost column, matching
// the layout downstream spreadsheets already parse.
func healthIndexRow(s *model.CSVSummary) []string {
	return []string{
		"", "", "", "", "",
		dash,
		"Health Index (0–100)",
		"Unit Score",
		dash, dash, dash, dash, dash, dash, dash, dash, dash, dash,
		"≈ " + formatNumber(s.HealthIndexIEEE),
		"", "",
	}
}

// formatNumber renders a float without a trailing ".0" when whole.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
