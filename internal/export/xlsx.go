package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/engine"
)

// Sheet names used in exported workbooks.
const (
	SheetPlans      = "Plans"
	SheetResources  = "Resources"
	SheetComparison = "Comparison"
)

// Excel built-in number formats.
const (
	numFmtThousands = 3  // #,##0
	numFmtPercent   = 10 // 0.00%
)

// workbook wraps an excelize file with the shared header and number styles.
type workbook struct {
	f         *excelize.File
	header    int
	thousands int
	percent   int
}

func newWorkbook(firstSheet string) (*workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", firstSheet); err != nil {
		f.Close()
		return nil, err
	}
	wb := &workbook{f: f}

	var err error
	if wb.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6E6"}},
	}); err != nil {
		f.Close()
		return nil, err
	}
	if wb.thousands, err = f.NewStyle(&excelize.Style{NumFmt: numFmtThousands}); err != nil {
		f.Close()
		return nil, err
	}
	if wb.percent, err = f.NewStyle(&excelize.Style{NumFmt: numFmtPercent}); err != nil {
		f.Close()
		return nil, err
	}
	return wb, nil
}

// writeRow puts values into row (1-based) starting at column A.
func (wb *workbook) writeRow(sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return wb.f.SetSheetRow(sheet, cell, &values)
}

// writeHeader writes a bold first row and freezes it.
func (wb *workbook) writeHeader(sheet string, headers ...interface{}) error {
	if err := wb.writeRow(sheet, 1, headers...); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := wb.f.SetCellStyle(sheet, "A1", last, wb.header); err != nil {
		return err
	}
	return wb.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// styleColumn applies style to column col (1-based) for rows 2..lastRow.
func (wb *workbook) styleColumn(sheet string, col, lastRow, style int) error {
	if lastRow < 2 {
		return nil
	}
	from, err := excelize.CoordinatesToCellName(col, 2)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(col, lastRow)
	if err != nil {
		return err
	}
	return wb.f.SetCellStyle(sheet, from, to, style)
}

// ExportBatchXLSX writes batch results to a workbook: one row per scenario on
// the Plans sheet and one row per scenario resource on the Resources sheet.
// Scenarios that failed validation keep their row with the error text.
func ExportBatchXLSX(path string, results []engine.BatchResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no batch results to export")
	}

	wb, err := newWorkbook(SheetPlans)
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	defer wb.f.Close()

	if _, err := wb.f.NewSheet(SheetResources); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	if err := wb.writeHeader(SheetPlans,
		"Scenario", "Product X", "Units X", "Product Y", "Units Y",
		"Vertex X", "Vertex Y", "Objective", "Plan Profit", "Binding", "Error"); err != nil {
		return err
	}
	if err := wb.writeHeader(SheetResources,
		"Scenario", "Resource", "Used", "Capacity", "Slack", "Utilization", "Exhausted"); err != nil {
		return err
	}

	planRow, resRow := 2, 2
	for _, r := range results {
		nameX := productName(r.Input.ProductX, "X")
		nameY := productName(r.Input.ProductY, "Y")
		if r.Err != nil {
			if err := wb.writeRow(SheetPlans, planRow, r.Name, nameX, nil, nameY, nil, nil, nil, nil, nil, nil, r.Err.Error()); err != nil {
				return err
			}
			planRow++
			continue
		}

		sol := r.Solution
		if err := wb.writeRow(SheetPlans, planRow,
			r.Name, nameX, sol.OperatingPoint.X, nameY, sol.OperatingPoint.Y,
			sol.Vertex.X, sol.Vertex.Y, sol.ObjectiveValue, sol.PlanProfit,
			sol.Binding.Describe(), ""); err != nil {
			return err
		}
		planRow++

		for _, u := range sol.Resources {
			if err := wb.writeRow(SheetResources, resRow,
				r.Name, u.Name, u.Used, u.Capacity, u.Slack, u.Utilization, u.Exhausted); err != nil {
				return err
			}
			resRow++
		}
	}

	for _, col := range []int{8, 9} {
		if err := wb.styleColumn(SheetPlans, col, planRow-1, wb.thousands); err != nil {
			return err
		}
	}
	if err := wb.styleColumn(SheetResources, 6, resRow-1, wb.percent); err != nil {
		return err
	}
	if err := wb.f.SetColWidth(SheetPlans, "A", "A", 28); err != nil {
		return err
	}
	if err := wb.f.SetColWidth(SheetPlans, "J", "K", 32); err != nil {
		return err
	}

	return wb.f.SaveAs(path)
}

// ExportComparisonXLSX writes what-if results, one row per scenario.
func ExportComparisonXLSX(path string, results []engine.ComparisonResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no comparison results to export")
	}

	wb, err := newWorkbook(SheetComparison)
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	defer wb.f.Close()

	if err := wb.writeHeader(SheetComparison,
		"Scenario", "Units X", "Units Y", "Objective", "Objective Delta",
		"Plan Profit", "Plan Profit Delta", "Binding"); err != nil {
		return err
	}

	for i, r := range results {
		sol := r.Solution
		if err := wb.writeRow(SheetComparison, i+2,
			r.Scenario.Name, sol.OperatingPoint.X, sol.OperatingPoint.Y,
			sol.ObjectiveValue, r.ObjectiveDelta, sol.PlanProfit, r.PlanProfitDelta,
			sol.Binding.Describe()); err != nil {
			return err
		}
	}

	for col := 4; col <= 7; col++ {
		if err := wb.styleColumn(SheetComparison, col, len(results)+1, wb.thousands); err != nil {
			return err
		}
	}
	if err := wb.f.SetColWidth(SheetComparison, "A", "A", 32); err != nil {
		return err
	}

	return wb.f.SaveAs(path)
}
