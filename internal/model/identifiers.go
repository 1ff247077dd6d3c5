package model

import (
	"fmt"
	"strconv"
)

// Placeholder values used when a field could not be recovered from the
// document text. Exporters render these verbatim, never empty cells.
const (
	NotFoundInDocument = "Not found in document"
	NotSpecified       = "Not specified"
)

// EquipmentIdentifiers is the nameplate block for a unit, recovered either
// from the analysis response or from pattern matching over the document text.
// YearOfManufacture and MVARating stay loosely typed: upstream responses emit
// them as numbers or strings interchangeably.
type EquipmentIdentifiers struct {
	SerialNumber      string         `json:"serial_number"`
	Manufacturer      string         `json:"manufacturer"`
	YearOfManufacture any            `json:"year_of_manufacture"`
	MVARating         any            `json:"mva_rating"`
	VoltageClass      string         `json:"voltage_class"`
	AssetTag          string         `json:"asset_tag,omitempty"`
	AdditionalIDs     map[string]any `json:"additional_ids,omitempty"`
}

// NewEquipmentIdentifiers returns an identifier block with every field set to
// its placeholder.
func NewEquipmentIdentifiers() EquipmentIdentifiers {
	return EquipmentIdentifiers{
		SerialNumber:      NotFoundInDocument,
		Manufacturer:      NotSpecified,
		YearOfManufacture: NotSpecified,
		MVARating:         NotSpecified,
		VoltageClass:      NotSpecified,
	}
}

// RenderID formats a loosely typed identifier value for display. Whole-number
// floats (the usual JSON decoding of years and ratings) render without a
// trailing ".0".
func RenderID(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		if n == float64(int64(n)) {
			return strconv.FormatInt(int64(n), 10)
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	default:
		return fmt.Sprintf("%v", v)
	}
}
