// Package extract recovers equipment metadata from raw diagnostic report text
// using ordered pattern lists. It is deliberately deterministic: the same text
// always yields the same name, date, and nameplate fields, so results can be
// re-keyed and overwritten safely.
package extract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clm6/transformer-diagnostic-ai/internal/model"
)

// Extractor derives equipment metadata from document text. The clock is
// injectable so fallback names and dates are testable.
type Extractor struct {
	now func() time.Time
}

// New returns an Extractor using the system clock.
func New() *Extractor {
	return &Extractor{now: time.Now}
}

// NewWithClock returns an Extractor with a fixed clock, for tests.
func NewWithClock(now func() time.Time) *Extractor {
	return &Extractor{now: now}
}

// EquipmentName derives a stable equipment key from the text. The first
// matching pattern wins and the capture is prefixed "Substation_"; when
// nothing matches the name falls back to a timestamp so the report is still
// persistable under a unique key.
func (e *Extractor) EquipmentName(text string) string {
	for _, re := range namePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return "Substation_" + m[1]
		}
	}
	return "Transformer_" + e.now().Format("20060102_150405")
}

// DocumentDate returns the first date-like substring found in the text, raw
// and unnormalized. Falls back to today's date in YYYY-MM-DD form.
func (e *Extractor) DocumentDate(text string) string {
	for _, re := range datePatterns {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return e.now().Format("2006-01-02")
}

// Identifiers scans the text for nameplate fields. Fields that cannot be
// recovered keep their placeholder values so downstream consumers always see
// the full key set.
func (e *Extractor) Identifiers(text string) model.EquipmentIdentifiers {
	ids := model.NewEquipmentIdentifiers()

	for _, re := range serialPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		serial := strings.TrimSpace(m[1])
		if len(serial) > 3 {
			ids.SerialNumber = serial
			break
		}
	}

	for _, re := range manufacturerPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			ids.Manufacturer = strings.ToUpper(m[1])
			break
		}
	}

	for _, re := range yearPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		// Plausible manufacturing window; bare 4-digit hits outside it are
		// usually measurement values, not years.
		if year >= 1950 && year <= 2030 {
			ids.YearOfManufacture = year
			break
		}
	}

	for _, re := range mvaPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		mva, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if mva >= 0.1 && mva <= 1000 {
			ids.MVARating = mva
			break
		}
	}

	for _, re := range voltagePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			ids.VoltageClass = fmt.Sprintf("%skV/%skV", m[1], m[2])
			break
		}
	}

	return ids
}
