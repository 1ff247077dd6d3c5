package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clm6/transformer-diagnostic-ai/internal/model"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, 3, 15, 10, 45, 0, 0, time.UTC)
	}
}

func TestEquipmentName(t *testing.T) {
	e := NewWithClock(fixedClock())

	tests := []struct {
		name string
		text string
		want string
	}{
		{"substation number", "Report for Substation 12, annual test", "Substation_12"},
		{"short sub form", "SUB 7 maintenance record", "Substation_7"},
		{"transformer word", "Transformer T1 insulation results", "Substation_T1"},
		{"tx prefix", "Asset TX_9B dissolved gas analysis", "Substation_9B"},
		{"unit word", "Unit 44 bushing data", "Substation_44"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.EquipmentName(tt.text))
		})
	}
}

func TestEquipmentName_FallbackTimestamp(t *testing.T) {
	e := NewWithClock(fixedClock())
	assert.Equal(t, "Transformer_20240315_104500", e.EquipmentName("no recognizable labels here"))
}

func TestDocumentDate(t *testing.T) {
	e := NewWithClock(fixedClock())

	tests := []struct {
		name string
		text string
		want string
	}{
		{"us slash", "Tested on 03/17/2024 by field crew", "03/17/2024"},
		{"iso dash", "Date 2024-03-17 recorded", "2024-03-17"},
		{"month name", "Inspection completed January 5, 2024.", "January 5, 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.DocumentDate(tt.text))
		})
	}
}

func TestDocumentDate_FallbackToday(t *testing.T) {
	e := NewWithClock(fixedClock())
	assert.Equal(t, "2024-03-15", e.DocumentDate("undated notes"))
}

func TestIdentifiers_SerialNumber(t *testing.T) {
	e := New()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"trax table format", "Serial #\nH 880287\nType", "H 880287"},
		{"labeled serial number", "Serial Number: 12345", "12345"},
		{"s/n shorthand", "S/N: A 4711", "A 4711"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := e.Identifiers(tt.text)
			assert.Equal(t, tt.want, ids.SerialNumber)
		})
	}
}

func TestIdentifiers_SerialTooShortRejected(t *testing.T) {
	e := New()
	ids := e.Identifiers("Unit ID: 12")
	assert.Equal(t, model.NotFoundInDocument, ids.SerialNumber)
}

func TestIdentifiers_Manufacturer(t *testing.T) {
	e := New()

	ids := e.Identifiers("Manufacturer: ABB")
	assert.Equal(t, "ABB", ids.Manufacturer)

	// Vendor names are upper-cased regardless of how the document spells them.
	ids = e.Identifiers("Built by siemens in Nuremberg")
	assert.Equal(t, "SIEMENS", ids.Manufacturer)
}

func TestIdentifiers_YearRange(t *testing.T) {
	e := New()

	ids := e.Identifiers("Year: 2018")
	assert.Equal(t, 2018, ids.YearOfManufacture)

	// 1900 parses but falls outside the plausible manufacturing window.
	ids = e.Identifiers("Year: 1900")
	assert.Equal(t, model.NotSpecified, ids.YearOfManufacture)
}

func TestIdentifiers_MVARating(t *testing.T) {
	e := New()

	ids := e.Identifiers("Rated 25 MVA continuous")
	assert.Equal(t, 25.0, ids.MVARating)

	ids = e.Identifiers("Rated 5000 MVA continuous")
	assert.Equal(t, model.NotSpecified, ids.MVARating)
}

func TestIdentifiers_VoltageClass(t *testing.T) {
	e := New()
	ids := e.Identifiers("Windings rated 115 kV / 13.8 kV")
	assert.Equal(t, "115kV/13.8kV", ids.VoltageClass)
}

func TestIdentifiers_EmptyTextKeepsPlaceholders(t *testing.T) {
	e := New()
	ids := e.Identifiers("")
	assert.Equal(t, model.NewEquipmentIdentifiers(), ids)
}
