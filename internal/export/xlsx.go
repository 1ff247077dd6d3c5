package export

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/clm6/transformer-diagnostic-ai/internal/store"
)

// MasterXLSXName is the Excel rendition of the master export.
const MasterXLSXName = "TransformIQ_Master_Analysis.xlsx"

// ExportMasterXLSX writes an Excel workbook with the combined measurement
// rows on one sheet and the fleet summary on another.
func (e *Exporter) ExportMasterXLSX(ctx context.Context, s store.ReportStore) (string, error) {
	reports, err := loadAll(ctx, s)
	if err != nil {
		return "", err
	}

	f := xlsx.NewFile()

	dataSheet, err := f.AddSheet("Master Analysis")
	if err != nil {
		return "", eris.Wrap(err, "export: add data sheet")
	}
	writeXLSXRow(dataSheet, csvHeaders)
	for _, r := range reports {
		for _, row := range reportRows(r) {
			writeXLSXRow(dataSheet, row)
		}
	}

	summary, _, err := Summarize(ctx, s)
	if err != nil {
		return "", err
	}
	summarySheet, err := f.AddSheet("Fleet Summary")
	if err != nil {
		return "", eris.Wrap(err, "export: add summary sheet")
	}
	writeXLSXRow(summarySheet, []string{"Total Equipment", strconv.Itoa(summary.TotalEquipment)})
	writeXLSXRow(summarySheet, []string{"Average Health Score", formatNumber(summary.AverageHealthScore)})
	writeXLSXRow(summarySheet, []string{"Critical Equipment", strconv.Itoa(summary.CriticalEquipment)})
	writeXLSXRow(summarySheet, []string{"High Risk Equipment", strconv.Itoa(summary.HighRiskEquipment)})

	path := filepath.Join(e.dir, MasterXLSXName)
	if err := f.Save(path); err != nil {
		return "", eris.Wrapf(err, "export: save %s", path)
	}
	return path, nil
}

func writeXLSXRow(sheet *xlsx.Sheet, values []string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
