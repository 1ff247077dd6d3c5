package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverallScoreValue(t *testing.T) {
	h := AssetHealth{OverallScore: 72.5}
	v, ok := h.OverallScoreValue()
	assert.True(t, ok)
	assert.Equal(t, 72.5, v)

	h = AssetHealth{OverallScore: "N/A"}
	_, ok = h.OverallScoreValue()
	assert.False(t, ok)

	h = AssetHealth{}
	_, ok = h.OverallScoreValue()
	assert.False(t, ok)
}

func TestRenderID(t *testing.T) {
	assert.Equal(t, "2018", RenderID(float64(2018)))
	assert.Equal(t, "13.8", RenderID(13.8))
	assert.Equal(t, "H 880287", RenderID("H 880287"))
	assert.Equal(t, "25", RenderID(25))
	assert.Equal(t, "", RenderID(nil))
}

func TestAnalysisReportRoundTrip(t *testing.T) {
	ids := NewEquipmentIdentifiers()
	r := AnalysisReport{
		EquipmentName: "Substation_12",
		DocumentDate:  "2024-03-17",
		AnalysisDate:  "2024-03-18T09:00:00Z",
		AssetHealth: AssetHealth{
			OverallScore:     70.0,
			HealthIndexIEEE:  70.0,
			AverageRiskScore: 2.2,
			Condition:        "Fair",
		},
		RiskAssessment:       RiskAssessment{RiskLevel: RiskModerate},
		EquipmentIdentifiers: &ids,
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var back AnalysisReport
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "Substation_12", back.EquipmentName)
	assert.Equal(t, RiskModerate, back.RiskAssessment.RiskLevel)
	require.NotNil(t, back.EquipmentIdentifiers)
	assert.Equal(t, NotFoundInDocument, back.EquipmentIdentifiers.SerialNumber)
}
