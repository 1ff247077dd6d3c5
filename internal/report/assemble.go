package report

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/clm6/transformer-diagnostic-ai/internal/model"
)

// Assembler backfills analysis reports with locally derived data. Clock and
// ID generation are injectable for tests.
type Assembler struct {
	now   func() time.Time
	newID func() string
}

// NewAssembler returns an Assembler using the system clock and random UUIDs.
func NewAssembler() *Assembler {
	return &Assembler{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// NewAssemblerWithClock returns a deterministic Assembler for tests.
func NewAssemblerWithClock(now func() time.Time, newID func() string) *Assembler {
	return &Assembler{now: now, newID: newID}
}

// Finalize fills in everything the model response may have left out: names,
// dates, nameplate identifiers, derived scores, and the export summary. The
// model's own values always win; extractor data and derivations are fallbacks.
func (a *Assembler) Finalize(r *model.AnalysisReport, equipmentName, documentDate string, ids model.EquipmentIdentifiers) {
	if r.EquipmentName == "" {
		r.EquipmentName = equipmentName
	}
	if r.DocumentDate == "" {
		r.DocumentDate = documentDate
	}
	if r.AnalysisDate == "" {
		r.AnalysisDate = a.now().Format("2006-01-02")
	}

	mergeIdentifiers(r, ids)
	deriveScores(r)
	fillCSVSummary(r)
}

// AttachFileInfo records upload provenance on the report.
func (a *Assembler) AttachFileInfo(r *model.AnalysisReport, originalFilename, inputType string, fileSize int64, textLength int) {
	r.FileInfo = &model.FileInfo{
		OriginalFilename: originalFilename,
		FileID:           a.newID(),
		InputType:        inputType,
		UploadTimestamp:  a.now().UTC().Format(time.RFC3339),
		TextLength:       textLength,
		FileSize:         fileSize,
	}
}

// mergeIdentifiers keeps the model's identifier block where populated and
// falls back to extractor values field by field. The result always carries the
// full key set, placeholders included.
func mergeIdentifiers(r *model.AnalysisReport, ids model.EquipmentIdentifiers) {
	if r.EquipmentIdentifiers == nil {
		r.EquipmentIdentifiers = &ids
		return
	}

	got := r.EquipmentIdentifiers
	if got.SerialNumber == "" {
		got.SerialNumber = ids.SerialNumber
	}
	if got.Manufacturer == "" {
		got.Manufacturer = ids.Manufacturer
	}
	if got.YearOfManufacture == nil {
		got.YearOfManufacture = ids.YearOfManufacture
	}
	if got.MVARating == nil {
		got.MVARating = ids.MVARating
	}
	if got.VoltageClass == "" {
		got.VoltageClass = ids.VoltageClass
	}
}

// deriveScores recomputes the average risk score and health index from
// component risk scores when the model left them out, falling back to the
// tabular rows. Values the model did provide are kept as-is.
func deriveScores(r *model.AnalysisReport) {
	if r.AssetHealth.AverageRiskScore == 0 {
		if avg, ok := averageComponentRisk(r.AssetHealth.ComponentRiskScores); ok {
			r.AssetHealth.AverageRiskScore = round2(avg)
		} else if avg, ok := averageRowRisk(r.DetailedTabularData); ok {
			r.AssetHealth.AverageRiskScore = round2(avg)
		}
	}

	if r.AssetHealth.HealthIndexIEEE == 0 && r.AssetHealth.AverageRiskScore > 0 {
		r.AssetHealth.HealthIndexIEEE = round2(HealthIndex(r.AssetHealth.AverageRiskScore))
	}
}

// fillCSVSummary builds or completes the csv_summary block from the report
// body so exports never read missing keys.
func fillCSVSummary(r *model.AnalysisReport) {
	if r.CSVSummary == nil {
		r.CSVSummary = &model.CSVSummary{}
	}
	s := r.CSVSummary

	if s.AverageRiskScore == 0 {
		s.AverageRiskScore = r.AssetHealth.AverageRiskScore
	}
	if s.HealthIndexIEEE == 0 {
		s.HealthIndexIEEE = r.AssetHealth.HealthIndexIEEE
	}
	if s.TotalEstimatedCost == 0 {
		var total float64
		for _, row := range r.DetailedTabularData {
			total += row.EstimatedCostUSD
		}
		s.TotalEstimatedCost = total
	}
	if s.CriticalItemsCount == 0 {
		for _, row := range r.DetailedTabularData {
			if row.RiskScore >= 4 {
				s.CriticalItemsCount++
			}
		}
	}
	if s.ImmediateActionsCount == 0 {
		s.ImmediateActionsCount = len(r.RiskAssessment.ImmediateActions)
	}
}

func averageComponentRisk(scores map[string]float64) (float64, bool) {
	if len(scores) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range scores {
		sum += v
	}
	return sum / float64(len(scores)), true
}

func averageRowRisk(rows []model.TabularRow) (float64, bool) {
	var sum float64
	var n int
	for _, row := range rows {
		if row.RiskScore >= 1 {
			sum += float64(row.RiskScore)
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeName makes an equipment name safe for use as a filename component.
func SanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}
