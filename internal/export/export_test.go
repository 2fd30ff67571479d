package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"cajachica/internal/core"
)

func sampleReport(t *testing.T, groupBy core.GroupBy) core.GroupedReport {
	t.Helper()
	expenses := []core.Expense{
		{
			Date: core.NewDate(2026, 1, 5), CorrespondentTo: "Ana", Executor: "Juan",
			Amount: decimal.RequireFromString("50"), CategoryName: "Transporte",
			VoucherNumber: "CC-20260105-0001", Notes: "taxi", Status: core.StatusActive,
		},
		{
			Date: core.NewDate(2026, 1, 12), CorrespondentTo: "Ana", Executor: "Juan",
			Amount: decimal.RequireFromString("30"), CategoryName: "Transporte",
			VoucherNumber: "CC-20260112-0002", Status: core.StatusActive,
		},
		{
			Date: core.NewDate(2026, 1, 20), Executor: "Luis",
			Amount: decimal.RequireFromString("20"),
			VoucherNumber: "CC-20260120-0003", Status: core.StatusActive,
		},
	}
	rep, err := core.Aggregate(expenses, groupBy)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	return rep
}

func sampleMeta() ReportMeta {
	return ReportMeta{
		BusinessName: "Ferretería El Tornillo",
		PeriodLabel:  "Enero 2026",
		Limits: core.MonthLimits{
			StartDate: core.NewDate(2026, 1, 1),
			EndDate:   core.NewDate(2026, 1, 31),
		},
		GeneratedAt: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestWriteXLSXCategorySummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleMeta(), sampleReport(t, core.GroupByCategory)); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}

	var transporte, fallback, grand []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		switch row[0] {
		case "Transporte":
			transporte = row
		case core.NoCategoryLabel:
			fallback = row
		case "Total general":
			grand = row
		}
	}

	if transporte == nil || transporte[1] != "2" || transporte[2] != "$80.00" {
		t.Fatalf("Transporte row = %v", transporte)
	}
	if fallback == nil || fallback[2] != "$20.00" {
		t.Fatalf("fallback row = %v", fallback)
	}
	if grand == nil || grand[1] != "3" || grand[2] != "$100.00" {
		t.Fatalf("grand total row = %v", grand)
	}
}

func TestWriteXLSXMovementDetailKeepsRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleMeta(), sampleReport(t, core.GroupByPersonCategoryMovement)); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}

	vouchers := 0
	sawAna := false
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if row[0] == "Ana" {
			sawAna = true
		}
		if len(row) > 1 && len(row[1]) > 3 && row[1][:3] == "CC-" {
			vouchers++
		}
	}
	if !sawAna {
		t.Fatal("person group row missing")
	}
	if vouchers != 3 {
		t.Fatalf("movement rows = %d, want every movement exactly once", vouchers)
	}
}

func TestWritePDFProducesDocument(t *testing.T) {
	for _, groupBy := range []core.GroupBy{
		core.GroupByCategory,
		core.GroupByPersonCategory,
		core.GroupByPersonCategoryMovement,
	} {
		t.Run(string(groupBy), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WritePDF(&buf, sampleMeta(), sampleReport(t, groupBy)); err != nil {
				t.Fatalf("write: %v", err)
			}
			if buf.Len() == 0 || !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
				t.Fatalf("output does not look like a PDF (%d bytes)", buf.Len())
			}
		})
	}
}

func TestWriteEmptyReport(t *testing.T) {
	rep, err := core.Aggregate(nil, core.GroupByCategory)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	var xlsxBuf, pdfBuf bytes.Buffer
	if err := WriteXLSX(&xlsxBuf, sampleMeta(), rep); err != nil {
		t.Fatalf("xlsx: %v", err)
	}
	if err := WritePDF(&pdfBuf, sampleMeta(), rep); err != nil {
		t.Fatalf("pdf: %v", err)
	}
}
