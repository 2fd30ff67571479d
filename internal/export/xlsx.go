package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"cajachica/internal/core"
)

const sheetName = "Reporte"

// WriteXLSX renders the report as a spreadsheet: one header block, one row
// per group with subtotals, and a closing grand-total row.
func WriteXLSX(w io.Writer, meta ReportMeta, rep core.GroupedReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	row := 1
	setRow(f, row, meta.BusinessName)
	f.SetCellStyle(sheetName, cell(1, row), cell(1, row), bold)
	row++
	setRow(f, row, groupByTitle(rep.GroupBy))
	row++
	setRow(f, row, fmt.Sprintf("Periodo: %s (%s a %s)",
		meta.PeriodLabel, meta.Limits.StartDate.ISO(), meta.Limits.EndDate.ISO()))
	row++
	setRow(f, row, "Generado: "+meta.GeneratedAt.Format("2006-01-02 15:04"))
	row += 2

	headerRow := row
	switch rep.GroupBy {
	case core.GroupByCategory:
		setRow(f, row, "Categoría", "Movimientos", "Total", "Promedio")
	default:
		setRow(f, row, "Persona / Categoría", "Movimientos", "Total", "Promedio")
	}
	f.SetCellStyle(sheetName, cell(1, headerRow), cell(4, headerRow), bold)
	row++

	for _, g := range rep.Groups {
		setRow(f, row, g.Key, g.Count, core.FormatAmount(g.Total), core.FormatAmount(g.Average))
		if len(g.Children) > 0 {
			f.SetCellStyle(sheetName, cell(1, row), cell(4, row), bold)
		}
		row++
		for _, c := range g.Children {
			setRow(f, row, "  "+c.Key, c.Count, core.FormatAmount(c.Total), core.FormatAmount(c.Average))
			row++
			for _, m := range c.Movements {
				setRow(f, row, "    "+m.Date.ISO(), m.VoucherNumber, core.FormatAmount(m.Amount), m.Notes)
				row++
			}
		}
	}

	row++
	setRow(f, row, "Total general", rep.Count, core.FormatAmount(rep.Total))
	f.SetCellStyle(sheetName, cell(1, row), cell(4, row), bold)

	if err := f.SetColWidth(sheetName, "A", "A", 36); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "D", 16); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values ...any) {
	for i, v := range values {
		f.SetCellValue(sheetName, cell(i+1, row), v)
	}
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
