// Package report finalizes and validates analysis output before persistence:
// backfilling fields the model omitted, merging extractor identifiers, and
// enforcing the IEEE C57.152 scoring invariants.
package report

import "math"

// HealthIndex converts an average component risk score (1-5) to the IEEE
// C57.152 health index (0-100). An average of 1 maps to 100, 5 maps to 0.
func HealthIndex(avgRisk float64) float64 {
	return 100 - ((avgRisk-1)/4)*100
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
