package report

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/clm6/transformer-diagnostic-ai/internal/model"
)

// ErrSchemaViolation marks a report that fails structural or scoring
// constraints and must not be persisted.
var ErrSchemaViolation = eris.New("report: schema violation")

// healthIndexTolerance absorbs model-side rounding: responses regularly emit
// integer health indexes for fractional averages.
const healthIndexTolerance = 0.5

// averageRiskTolerance allows the reported average to be the component mean
// rounded to one decimal, nothing looser.
const averageRiskTolerance = 0.05

var validRiskLevels = map[model.RiskLevel]bool{
	model.RiskLow:      true,
	model.RiskModerate: true,
	model.RiskHigh:     true,
	model.RiskCritical: true,
}

// Validate checks a finalized report against the scoring invariants. Reports
// that fail are rejected wholesale rather than partially persisted.
func Validate(r *model.AnalysisReport) error {
	if r.EquipmentName == "" {
		return eris.Wrap(ErrSchemaViolation, "equipment_name is empty")
	}

	if !validRiskLevels[r.RiskAssessment.RiskLevel] {
		return eris.Wrapf(ErrSchemaViolation, "risk_level %q is not one of LOW/MODERATE/HIGH/CRITICAL", r.RiskAssessment.RiskLevel)
	}

	for component, score := range r.AssetHealth.ComponentRiskScores {
		if score < 1 || score > 5 {
			return eris.Wrapf(ErrSchemaViolation, "component %s risk score %.1f outside 1-5", component, score)
		}
	}

	for i, row := range r.DetailedTabularData {
		if row.RiskScore < 1 || row.RiskScore > 5 {
			return eris.Wrapf(ErrSchemaViolation, "tabular row %d (%s) risk score %d outside 1-5", i, row.TestType, row.RiskScore)
		}
	}

	avg := r.AssetHealth.AverageRiskScore
	hi := r.AssetHealth.HealthIndexIEEE

	// The component scores anchor both derived values: the reported average
	// must be their mean, and the health index follows from the average. A
	// response whose numbers contradict each other is rejected wholesale.
	if scores := r.AssetHealth.ComponentRiskScores; len(scores) > 0 {
		var sum float64
		for _, score := range scores {
			sum += score
		}
		mean := sum / float64(len(scores))
		if avg > 0 && math.Abs(avg-mean) > averageRiskTolerance {
			return eris.Wrapf(ErrSchemaViolation, "average risk %.2f inconsistent with component scores (mean %.2f)", avg, mean)
		}
		if avg == 0 {
			avg = mean
		}
	}

	if avg > 0 && hi > 0 {
		if want := HealthIndex(avg); math.Abs(hi-want) > healthIndexTolerance {
			return eris.Wrapf(ErrSchemaViolation, "health index %.2f inconsistent with average risk %.2f (expected %.2f)", hi, avg, want)
		}
	}

	return nil
}
