package model

import "encoding/json"

// RiskLevel is the unit-level risk classification assigned by the analysis.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// AnalysisReport is the canonical persisted entity: one diagnostic analysis of
// one transformer, keyed by EquipmentName. Re-analysis of the same equipment
// replaces the prior report wholesale (last-write-wins, no versioning).
type AnalysisReport struct {
	EquipmentName string `json:"equipment_name"`
	DocumentDate  string `json:"document_date"`
	AnalysisDate  string `json:"analysis_date"`

	AssetHealth    AssetHealth    `json:"asset_health"`
	RiskAssessment RiskAssessment `json:"risk_assessment"`

	// Sections the pipeline passes through without interpreting.
	FinancialAnalysis map[string]any `json:"financial_analysis,omitempty"`
	TechnicalAnalysis map[string]any `json:"technical_analysis,omitempty"`

	ExecutiveSummary           string                      `json:"executive_summary,omitempty"`
	MaintenanceRecommendations []MaintenanceRecommendation `json:"maintenance_recommendations,omitempty"`
	DetailedTabularData        []TabularRow                `json:"detailed_tabular_data,omitempty"`

	EquipmentIdentifiers *EquipmentIdentifiers `json:"equipment_identifiers,omitempty"`
	CSVSummary           *CSVSummary           `json:"csv_summary,omitempty"`
	FileInfo             *FileInfo             `json:"file_info,omitempty"`
}

// AssetHealth carries unit-level scoring. OverallScore is kept loosely typed:
// upstream models occasionally emit "N/A" and aggregation must exclude, not
// coerce, non-numeric scores.
type AssetHealth struct {
	OverallScore                any                `json:"overall_score,omitempty"`
	HealthIndexIEEE             float64            `json:"health_index_ieee"`
	AverageRiskScore            float64            `json:"average_risk_score"`
	Condition                   string             `json:"condition,omitempty"`
	EstimatedRemainingLifeYears any                `json:"estimated_remaining_life_years,omitempty"`
	ComponentRiskScores         map[string]float64 `json:"component_risk_scores,omitempty"`
	ComponentScores             map[string]float64 `json:"component_scores,omitempty"`
}

// OverallScoreValue returns the overall score as a float64 when it is numeric.
func (h AssetHealth) OverallScoreValue() (float64, bool) {
	switch n := h.OverallScore.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// RiskAssessment lists issues and time-bucketed actions.
type RiskAssessment struct {
	RiskLevel        RiskLevel `json:"risk_level"`
	CriticalIssues   []string  `json:"critical_issues,omitempty"`
	ImmediateActions []string  `json:"immediate_actions,omitempty"`
	NearTermActions  []string  `json:"near_term_actions,omitempty"`
}

// MaintenanceRecommendation is one prioritized action item.
type MaintenanceRecommendation struct {
	Priority  string `json:"priority"`
	Action    string `json:"action"`
	Timeframe string `json:"timeframe"`
}

// TabularRow is one test measurement destined for CSV export. RiskScore is the
// atomic unit the health index derives from; 1 ≤ RiskScore ≤ 5 when present.
type TabularRow struct {
	Date                  string  `json:"date"`
	TestType              string  `json:"test_type"`
	MeasurementPoint      string  `json:"measurement_point"`
	Values                string  `json:"values"`
	IEEEReference         string  `json:"ieee_reference"`
	Comment               string  `json:"comment"`
	RiskAnalysis          string  `json:"risk_analysis"`
	RiskScore             int     `json:"risk_score"`
	PredictiveMaintenance string  `json:"predictive_maintenance"`
	LifeExpectancyYears   any     `json:"life_expectancy_years,omitempty"`
	RemainingLifeForecast string  `json:"remaining_life_forecast"`
	ROIScenarioComparison string  `json:"roi_scenario_comparison"`
	VCurveAnalysis        string  `json:"v_curve_analysis"`
	EstimatedCostUSD      float64 `json:"estimated_cost_usd"`
}

// CSVSummary is the roll-up block the analysis emits for spreadsheet export.
type CSVSummary struct {
	AverageRiskScore      float64 `json:"average_risk_score"`
	HealthIndexIEEE       float64 `json:"health_index_ieee"`
	TotalEstimatedCost    float64 `json:"total_estimated_cost"`
	CriticalItemsCount    int     `json:"critical_items_count"`
	ImmediateActionsCount int     `json:"immediate_actions_count"`
}

// FileInfo records upload provenance for audit/debugging.
type FileInfo struct {
	OriginalFilename string `json:"original_filename,omitempty"`
	FileID           string `json:"file_id,omitempty"`
	InputType        string `json:"input_type,omitempty"`
	UploadTimestamp  string `json:"upload_timestamp"`
	TextLength       int    `json:"text_length"`
	FileSize         int64  `json:"file_size,omitempty"`
}

// ReportListing is the lightweight view returned by list endpoints.
type ReportListing struct {
	Filename      string    `json:"filename"`
	EquipmentName string    `json:"equipment_name"`
	AnalysisDate  string    `json:"analysis_date"`
	HealthScore   any       `json:"asset_health_score"`
	RiskLevel     RiskLevel `json:"risk_level"`
}

// Summary is the fleet-wide dashboard roll-up.
type Summary struct {
	TotalEquipment     int     `json:"total_equipment"`
	AverageHealthScore float64 `json:"average_health_score"`
	CriticalEquipment  int     `json:"critical_equipment"`
	HighRiskEquipment  int     `json:"high_risk_equipment"`
}
