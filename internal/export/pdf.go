package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"cajachica/internal/core"
)

// WritePDF renders the report as a printable A4 document.
func WritePDF(w io.Writer, meta ReportMeta, rep core.GroupedReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate the Spanish labels.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(groupByTitle(rep.GroupBy)), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr(meta.BusinessName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(groupByTitle(rep.GroupBy)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Periodo: %s (%s a %s)",
		meta.PeriodLabel, meta.Limits.StartDate.ISO(), meta.Limits.EndDate.ISO())), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Generado: "+meta.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	const (
		keyWidth    = 90.0
		countWidth  = 25.0
		moneyWidth  = 35.0
		lineHeight  = 6.0
		indentWidth = 6.0
	)

	pdf.SetFont("Helvetica", "B", 9)
	header := "Categoría"
	if rep.GroupBy != core.GroupByCategory {
		header = "Persona / Categoría"
	}
	pdf.CellFormat(keyWidth, lineHeight, tr(header), "B", 0, "L", false, 0, "")
	pdf.CellFormat(countWidth, lineHeight, "Mov.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(moneyWidth, lineHeight, "Total", "B", 0, "R", false, 0, "")
	pdf.CellFormat(moneyWidth, lineHeight, "Promedio", "B", 1, "R", false, 0, "")

	writeLine := func(indent int, bold bool, key string, count int, total, average string) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pad := float64(indent) * indentWidth
		if pad > 0 {
			pdf.CellFormat(pad, lineHeight, "", "", 0, "L", false, 0, "")
		}
		pdf.CellFormat(keyWidth-pad, lineHeight, tr(key), "", 0, "L", false, 0, "")
		pdf.CellFormat(countWidth, lineHeight, fmt.Sprintf("%d", count), "", 0, "R", false, 0, "")
		pdf.CellFormat(moneyWidth, lineHeight, total, "", 0, "R", false, 0, "")
		pdf.CellFormat(moneyWidth, lineHeight, average, "", 1, "R", false, 0, "")
	}

	for _, g := range rep.Groups {
		writeLine(0, len(g.Children) > 0, g.Key, g.Count,
			core.FormatAmount(g.Total), core.FormatAmount(g.Average))
		for _, c := range g.Children {
			writeLine(1, false, c.Key, c.Count,
				core.FormatAmount(c.Total), core.FormatAmount(c.Average))
			for _, m := range c.Movements {
				pdf.SetFont("Helvetica", "", 8)
				pdf.CellFormat(2*indentWidth, lineHeight-1, "", "", 0, "L", false, 0, "")
				pdf.CellFormat(keyWidth-2*indentWidth, lineHeight-1,
					tr(fmt.Sprintf("%s  %s  %s", m.Date.ISO(), m.VoucherNumber, m.Notes)),
					"", 0, "L", false, 0, "")
				pdf.CellFormat(countWidth, lineHeight-1, "", "", 0, "R", false, 0, "")
				pdf.CellFormat(moneyWidth, lineHeight-1, core.FormatAmount(m.Amount), "", 1, "R", false, 0, "")
			}
		}
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(keyWidth, lineHeight, "Total general", "T", 0, "L", false, 0, "")
	pdf.CellFormat(countWidth, lineHeight, fmt.Sprintf("%d", rep.Count), "T", 0, "R", false, 0, "")
	pdf.CellFormat(moneyWidth, lineHeight, core.FormatAmount(rep.Total), "T", 0, "R", false, 0, "")
	pdf.CellFormat(moneyWidth, lineHeight, "", "T", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
