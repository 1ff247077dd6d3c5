package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clm6/transformer-diagnostic-ai/internal/config"
	"github.com/clm6/transformer-diagnostic-ai/internal/model"
	"github.com/clm6/transformer-diagnostic-ai/internal/store"
)

func testExporter(t *testing.T) *Exporter {
	t.Helper()
	e, err := NewExporter(config.ExportConfig{Dir: filepath.Join(t.TempDir(), "csv_exports")})
	require.NoError(t, err)
	return e
}

func testStore(t *testing.T, reports ...*model.AnalysisReport) store.ReportStore {
	t.Helper()
	s, err := store.NewFS(filepath.Join(t.TempDir(), "results"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	for _, r := range reports {
		require.NoError(t, s.Save(context.Background(), r))
	}
	return s
}

func fullReport(name string) *model.AnalysisReport {
	ids := model.NewEquipmentIdentifiers()
	ids.SerialNumber = "H 880287"
	ids.Manufacturer = "ABB"
	ids.MVARating = 25.0
	ids.VoltageClass = "115kV/13.8kV"

	return &model.AnalysisReport{
		EquipmentName: name,
		DocumentDate:  "2024-03-17",
		AnalysisDate:  "2024-03-18",
		AssetHealth: model.AssetHealth{
			OverallScore:     70.0,
			HealthIndexIEEE:  57.5,
			AverageRiskScore: 2.7,
		},
		RiskAssessment:       model.RiskAssessment{RiskLevel: model.RiskHigh},
		EquipmentIdentifiers: &ids,
		DetailedTabularData: []model.TabularRow{
			{
				Date:                "2024-03-17",
				TestType:            "Winding Resistance",
				MeasurementPoint:    "H1-H3/X1-X0",
				Values:              "1.097 Ohm",
				IEEEReference:       "IEEE C57.152",
				Comment:             "Normal",
				RiskAnalysis:        "Stable",
				RiskScore:           2,
				LifeExpectancyYears: 12.0,
				EstimatedCostUSD:    0,
			},
			{
				Date:             "2024-03-17",
				TestType:         "Tan Delta - Bushings C1",
				MeasurementPoint: "H1",
				RiskScore:        4,
				EstimatedCostUSD: 15000,
			},
		},
		CSVSummary: &model.CSVSummary{
			AverageRiskScore:      2.7,
			HealthIndexIEEE:       57,
			TotalEstimatedCost:    45000,
			CriticalItemsCount:    1,
			ImmediateActionsCount: 2,
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportReport_Layout(t *testing.T) {
	e := testExporter(t)
	path, err := e.ExportReport(fullReport("Substation_22"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(e.Dir(), "Substation_22_detailed_analysis.csv"), path)

	rows := readCSV(t, path)
	require.Len(t, rows, 5) // header + 2 measurements + 2 roll-up rows
	assert.Equal(t, csvHeaders, rows[0])

	// Measurement rows repeat the equipment-level columns.
	for _, row := range rows[1:3] {
		assert.Equal(t, "Substation_22", row[0])
		assert.Equal(t, "H 880287", row[1])
		assert.Equal(t, "ABB", row[2])
		assert.Equal(t, "25", row[3])
		assert.Equal(t, "115kV/13.8kV", row[4])
		assert.Equal(t, "57.5", row[19])
		assert.Equal(t, "2.7", row[20])
	}
	assert.Equal(t, "Winding Resistance", rows[1][6])
	assert.Equal(t, "2", rows[1][12])
	assert.Equal(t, "12", rows[1][14])
	assert.Equal(t, "15000", rows[2][18])

	// Roll-up row carries the aggregate risk and formatted cost total.
	rollUp := rows[3]
	assert.Equal(t, "", rollUp[0])
	assert.Equal(t, "Roll-Up", rollUp[6])
	assert.Equal(t, "Unit Summary", rollUp[7])
	assert.Equal(t, "Avg ≈ 2.7", rollUp[12])
	assert.Equal(t, "$45,000 (Total)", rollUp[18])
	assert.Equal(t, "—", rollUp[5])

	// Health index row carries the unit score.
	health := rows[4]
	assert.Equal(t, "Health Index (0–100)", health[6])
	assert.Equal(t, "Unit Score", health[7])
	assert.Equal(t, "≈ 57", health[18])
}

func TestExportReport_NoSummaryBlock(t *testing.T) {
	e := testExporter(t)
	r := fullReport("Substation_1")
	r.CSVSummary = nil

	path, err := e.ExportReport(r)
	require.NoError(t, err)

	rows := readCSV(t, path)
	assert.Len(t, rows, 3) // header + 2 measurements, no roll-up
}

func TestExportMaster_SortedAcrossEquipment(t *testing.T) {
	e := testExporter(t)
	s := testStore(t, fullReport("Substation_B"), fullReport("Substation_A"))

	path, err := e.ExportMaster(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(e.Dir(), MasterCSVName), path)

	rows := readCSV(t, path)
	require.Len(t, rows, 5) // header + 2 rows per report, no roll-up rows
	assert.Equal(t, "Substation_A", rows[1][0])
	assert.Equal(t, "Substation_A", rows[2][0])
	assert.Equal(t, "Substation_B", rows[3][0])
	assert.Equal(t, "Substation_B", rows[4][0])
}

func TestExportAll(t *testing.T) {
	e := testExporter(t)
	s := testStore(t, fullReport("Substation_1"), fullReport("Substation_2"))

	paths, err := e.ExportAll(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}

func TestExportMasterXLSX(t *testing.T) {
	e := testExporter(t)
	s := testStore(t, fullReport("Substation_1"))

	path, err := e.ExportMasterXLSX(context.Background(), s)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSummarize(t *testing.T) {
	critical := fullReport("Substation_1")
	critical.RiskAssessment.RiskLevel = model.RiskCritical
	critical.AssetHealth.OverallScore = 30.0

	high := fullReport("Substation_2")
	high.RiskAssessment.RiskLevel = model.RiskHigh
	high.AssetHealth.OverallScore = 55.0

	unknown := fullReport("Substation_3")
	unknown.RiskAssessment.RiskLevel = model.RiskLow
	unknown.AssetHealth.OverallScore = "N/A"

	s := testStore(t, critical, high, unknown)

	summary, listings, err := Summarize(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, listings, 3)

	assert.Equal(t, 3, summary.TotalEquipment)
	// Non-numeric scores are excluded from the average: (30+55)/2.
	assert.InDelta(t, 42.5, summary.AverageHealthScore, 0.001)
	assert.Equal(t, 1, summary.CriticalEquipment)
	assert.Equal(t, 2, summary.HighRiskEquipment)
}

func TestSummarize_EmptyStore(t *testing.T) {
	s := testStore(t)
	summary, listings, err := Summarize(context.Background(), s)
	require.NoError(t, err)
	assert.Empty(t, listings)
	assert.Equal(t, 0, summary.TotalEquipment)
	assert.Zero(t, summary.AverageHealthScore)
}
