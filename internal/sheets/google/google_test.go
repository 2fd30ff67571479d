package google

import (
	"testing"

	"github.com/shopspring/decimal"

	"cajachica/internal/core"
)

func TestMovementRowShape(t *testing.T) {
	e := core.Expense{
		ID:              7,
		Date:            core.NewDate(2026, 1, 15),
		CorrespondentTo: "Ana",
		Executor:        "Juan",
		Amount:          decimal.RequireFromString("150.25"),
		VoucherNumber:   "CC-20260115-0007",
		Notes:           "taxi",
		CategoryName:    "Transporte",
		Status:          core.StatusActive,
	}

	row := movementRow(e, string(e.Status))
	if len(row) != 8 {
		t.Fatalf("row has %d cells, want 8", len(row))
	}
	if row[0] != "2026-01-15" || row[1] != "CC-20260115-0007" || row[4] != "Transporte" {
		t.Fatalf("row = %v", row)
	}
	if row[6] != 150.25 {
		t.Fatalf("amount cell = %v", row[6])
	}
	if row[7] != "active" {
		t.Fatalf("status cell = %v", row[7])
	}
}

func TestMovementRowFallsBackOnMissingCategory(t *testing.T) {
	e := core.Expense{
		Date:     core.NewDate(2026, 1, 15),
		Executor: "Juan",
		Amount:   decimal.RequireFromString("20"),
	}
	row := movementRow(e, "anulado")
	if row[4] != core.NoCategoryLabel {
		t.Fatalf("category cell = %v", row[4])
	}
	if row[7] != "anulado" {
		t.Fatalf("status cell = %v", row[7])
	}
}

func TestReadCredentialPrecedence(t *testing.T) {
	b, err := readCredential(`{"inline":true}`, "/nonexistent")
	if err != nil {
		t.Fatalf("inline must win: %v", err)
	}
	if string(b) != `{"inline":true}` {
		t.Fatalf("got %s", b)
	}

	if _, err := readCredential("", ""); err == nil {
		t.Fatal("expected error when nothing is set")
	}
	if _, err := readCredential("", "/nonexistent/creds.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
