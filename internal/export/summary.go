package export

import (
	"context"
	"math"

	"github.com/clm6/transformer-diagnostic-ai/internal/model"
	"github.com/clm6/transformer-diagnostic-ai/internal/store"
)

// Summarize computes the fleet dashboard roll-up from stored reports. Reports
// whose overall score is non-numeric ("N/A") are excluded from the health
// average but still counted in the totals.
func Summarize(ctx context.Context, s store.ReportStore) (*model.Summary, []model.ReportListing, error) {
	listings, err := s.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	summary := &model.Summary{TotalEquipment: len(listings)}

	var healthSum float64
	var healthN int
	for _, l := range listings {
		if v, ok := (model.AssetHealth{OverallScore: l.HealthScore}).OverallScoreValue(); ok {
			healthSum += v
			healthN++
		}
		switch l.RiskLevel {
		case model.RiskCritical:
			summary.CriticalEquipment++
			summary.HighRiskEquipment++
		case model.RiskHigh:
			summary.HighRiskEquipment++
		}
	}
	if healthN > 0 {
		summary.AverageHealthScore = math.Round(healthSum/float64(healthN)*10) / 10
	}

	return summary, listings, nil
}
