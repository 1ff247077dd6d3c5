package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clm6/transformer-diagnostic-ai/internal/model"
)

func testAssembler() *Assembler {
	return NewAssemblerWithClock(
		func() time.Time { return time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC) },
		func() string { return "fixed-id" },
	)
}

func TestHealthIndex(t *testing.T) {
	// Component scores {2,2,3,3,1} average to 2.2 and map to 70.0.
	assert.InDelta(t, 70.0, HealthIndex(2.2), 0.0001)
	assert.InDelta(t, 100.0, HealthIndex(1), 0.0001)
	assert.InDelta(t, 0.0, HealthIndex(5), 0.0001)
}

func TestFinalize_BackfillsNameAndDates(t *testing.T) {
	r := &model.AnalysisReport{}
	testAssembler().Finalize(r, "Substation_7", "2024-03-01", model.NewEquipmentIdentifiers())

	assert.Equal(t, "Substation_7", r.EquipmentName)
	assert.Equal(t, "2024-03-01", r.DocumentDate)
	assert.Equal(t, "2024-03-18", r.AnalysisDate)
}

func TestFinalize_ModelValuesWin(t *testing.T) {
	r := &model.AnalysisReport{
		EquipmentName: "Substation_9",
		DocumentDate:  "2023-12-31",
		AnalysisDate:  "2024-01-01",
	}
	testAssembler().Finalize(r, "Substation_7", "2024-03-01", model.NewEquipmentIdentifiers())

	assert.Equal(t, "Substation_9", r.EquipmentName)
	assert.Equal(t, "2023-12-31", r.DocumentDate)
	assert.Equal(t, "2024-01-01", r.AnalysisDate)
}

func TestFinalize_MergesIdentifiers(t *testing.T) {
	ids := model.NewEquipmentIdentifiers()
	ids.SerialNumber = "H 880287"
	ids.Manufacturer = "ABB"

	r := &model.AnalysisReport{
		EquipmentIdentifiers: &model.EquipmentIdentifiers{
			Manufacturer: "SIEMENS", // model answer wins
		},
	}
	testAssembler().Finalize(r, "Substation_7", "2024-03-01", ids)

	require.NotNil(t, r.EquipmentIdentifiers)
	assert.Equal(t, "SIEMENS", r.EquipmentIdentifiers.Manufacturer)
	assert.Equal(t, "H 880287", r.EquipmentIdentifiers.SerialNumber)
	assert.Equal(t, model.NotSpecified, r.EquipmentIdentifiers.VoltageClass)
}

func TestFinalize_DerivesScoresFromComponents(t *testing.T) {
	r := &model.AnalysisReport{
		AssetHealth: model.AssetHealth{
			ComponentRiskScores: map[string]float64{
				"winding_resistance": 2,
				"turns_ratio":        2,
				"main_insulation":    3,
				"bushing_pf":         3,
				"demagnetization":    1,
			},
		},
	}
	testAssembler().Finalize(r, "Substation_7", "2024-03-01", model.NewEquipmentIdentifiers())

	assert.InDelta(t, 2.2, r.AssetHealth.AverageRiskScore, 0.0001)
	assert.InDelta(t, 70.0, r.AssetHealth.HealthIndexIEEE, 0.0001)
}

func TestFinalize_DerivesScoresFromRows(t *testing.T) {
	r := &model.AnalysisReport{
		DetailedTabularData: []model.TabularRow{
			{TestType: "Winding Resistance", RiskScore: 2, EstimatedCostUSD: 0},
			{TestType: "Bushing C1", RiskScore: 4, EstimatedCostUSD: 15000},
		},
	}
	testAssembler().Finalize(r, "Substation_7", "2024-03-01", model.NewEquipmentIdentifiers())

	assert.InDelta(t, 3.0, r.AssetHealth.AverageRiskScore, 0.0001)
	assert.InDelta(t, 50.0, r.AssetHealth.HealthIndexIEEE, 0.0001)

	require.NotNil(t, r.CSVSummary)
	assert.InDelta(t, 3.0, r.CSVSummary.AverageRiskScore, 0.0001)
	assert.InDelta(t, 15000.0, r.CSVSummary.TotalEstimatedCost, 0.0001)
	assert.Equal(t, 1, r.CSVSummary.CriticalItemsCount)
}

func TestAttachFileInfo(t *testing.T) {
	r := &model.AnalysisReport{}
	testAssembler().AttachFileInfo(r, "sub7_trax.pdf", "pdf", 120000, 9800)

	require.NotNil(t, r.FileInfo)
	assert.Equal(t, "sub7_trax.pdf", r.FileInfo.OriginalFilename)
	assert.Equal(t, "fixed-id", r.FileInfo.FileID)
	assert.Equal(t, "2024-03-18T09:00:00Z", r.FileInfo.UploadTimestamp)
	assert.Equal(t, 9800, r.FileInfo.TextLength)
	assert.Equal(t, int64(120000), r.FileInfo.FileSize)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Substation_12", SanitizeName("Substation_12"))
	assert.Equal(t, "Sub_12__west_", SanitizeName("Sub 12 (west)"))
	assert.Equal(t, "a_b", SanitizeName("a/b"))
}

func TestValidate_OK(t *testing.T) {
	r := &model.AnalysisReport{
		EquipmentName: "Substation_7",
		AssetHealth: model.AssetHealth{
			AverageRiskScore: 2.2,
			HealthIndexIEEE:  70,
			ComponentRiskScores: map[string]float64{
				"winding_resistance": 2,
				"turns_ratio":        2,
				"main_insulation":    3,
				"bushing_pf":         3,
				"demagnetization":    1,
			},
		},
		RiskAssessment:      model.RiskAssessment{RiskLevel: model.RiskModerate},
		DetailedTabularData: []model.TabularRow{{TestType: "TTR", RiskScore: 1}},
	}
	assert.NoError(t, Validate(r))
}

func TestValidate_RoundedHealthIndexTolerated(t *testing.T) {
	// Average 2.7 maps to 57.5; responses often round to 57.
	r := &model.AnalysisReport{
		EquipmentName:  "Substation_7",
		AssetHealth:    model.AssetHealth{AverageRiskScore: 2.7, HealthIndexIEEE: 57},
		RiskAssessment: model.RiskAssessment{RiskLevel: model.RiskHigh},
	}
	assert.NoError(t, Validate(r))
}

func TestValidate_ComponentScoresAnchorDerivedValues(t *testing.T) {
	// Components averaging 2.2 fix the health index at 70; a response
	// claiming a perfect score alongside them is self-contradictory.
	scores := map[string]float64{
		"winding_resistance": 2,
		"turns_ratio":        2,
		"main_insulation":    3,
		"bushing_pf":         3,
		"demagnetization":    1,
	}

	r := &model.AnalysisReport{
		EquipmentName:  "Substation_7",
		RiskAssessment: model.RiskAssessment{RiskLevel: model.RiskLow},
		AssetHealth: model.AssetHealth{
			ComponentRiskScores: scores,
			AverageRiskScore:    1.0,
			HealthIndexIEEE:     100,
		},
	}
	assert.True(t, errors.Is(Validate(r), ErrSchemaViolation))

	// Even with no reported average, the index is checked against the mean.
	r.AssetHealth.AverageRiskScore = 0
	assert.True(t, errors.Is(Validate(r), ErrSchemaViolation))

	r.AssetHealth.AverageRiskScore = 2.2
	r.AssetHealth.HealthIndexIEEE = 70
	assert.NoError(t, Validate(r))
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name string
		r    model.AnalysisReport
	}{
		{"empty name", model.AnalysisReport{
			RiskAssessment: model.RiskAssessment{RiskLevel: model.RiskLow},
		}},
		{"bad risk level", model.AnalysisReport{
			EquipmentName:  "Substation_7",
			RiskAssessment: model.RiskAssessment{RiskLevel: "SEVERE"},
		}},
		{"component score out of range", model.AnalysisReport{
			EquipmentName:  "Substation_7",
			RiskAssessment: model.RiskAssessment{RiskLevel: model.RiskLow},
			AssetHealth:    model.AssetHealth{ComponentRiskScores: map[string]float64{"bushing_pf": 6}},
		}},
		{"row score out of range", model.AnalysisReport{
			EquipmentName:       "Substation_7",
			RiskAssessment:      model.RiskAssessment{RiskLevel: model.RiskLow},
			DetailedTabularData: []model.TabularRow{{TestType: "TTR", RiskScore: 0}},
		}},
		{"inconsistent health index", model.AnalysisReport{
			EquipmentName:  "Substation_7",
			RiskAssessment: model.RiskAssessment{RiskLevel: model.RiskLow},
			AssetHealth:    model.AssetHealth{AverageRiskScore: 2.2, HealthIndexIEEE: 90},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.r)
			assert.True(t, errors.Is(err, ErrSchemaViolation))
		})
	}
}
