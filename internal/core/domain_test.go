package core

import (
	"errors"
	"testing"
	"time"
)

func TestStatusIsLive(t *testing.T) {
	if !StatusActive.IsLive() {
		t.Fatal("active must be live")
	}
	if StatusCancelled.IsLive() || StatusApproved.IsLive() {
		t.Fatal("only active rows count")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ISO() != "2026-02-28" {
		t.Fatalf("got %s", d.ISO())
	}
	for _, bad := range []string{"", "2026-2-28", "28/02/2026", "garbage"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q: expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:     NewDate(2026, 1, 15),
		Executor: "Juan",
		Amount:   dec("50"),
		Status:   StatusActive,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		mutate func(*Expense)
		want   error
	}{
		{func(e *Expense) { e.Date = Date{} }, ErrInvalidDate},
		{func(e *Expense) { e.Executor = "" }, ErrEmptyExecutor},
		{func(e *Expense) { e.Amount = dec("0") }, ErrInvalidAmount},
		{func(e *Expense) { e.Amount = dec("-1") }, ErrInvalidAmount},
		{func(e *Expense) { e.Status = "deleted" }, ErrInvalidStatus},
	}
	for i, tc := range cases {
		e := good
		tc.mutate(&e)
		if err := e.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestFundValidate(t *testing.T) {
	good := Fund{Date: NewDate(2026, 1, 1), Amount: dec("1000")}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Fund{Amount: dec("1000")}).Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatal("expected date error")
	}
	if err := (Fund{Date: NewDate(2026, 1, 1)}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatal("expected amount error")
	}
}

func TestCustomPeriodValidate(t *testing.T) {
	good := CustomPeriod{
		Year: 2026, Month: 1,
		StartDate: NewDate(2025, 12, 26),
		EndDate:   NewDate(2026, 1, 25),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bad := good
	bad.Month = 13
	if err := bad.Validate(); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("got %v", err)
	}

	bad = good
	bad.EndDate = bad.StartDate
	if err := bad.Validate(); !errors.Is(err, ErrPeriodBackwards) {
		t.Fatalf("end == start: got %v", err)
	}

	bad = good
	bad.StartDate, bad.EndDate = bad.EndDate, bad.StartDate
	if err := bad.Validate(); !errors.Is(err, ErrPeriodBackwards) {
		t.Fatalf("end < start: got %v", err)
	}
}

func TestSuggestIdentification(t *testing.T) {
	now := time.UnixMilli(1767225600123) // fixed clock
	got := SuggestIdentification("EXE", "Juan Pablo García", now)
	if len(got) == 0 {
		t.Fatal("empty suggestion")
	}
	if got != "EXE-JPG600123" {
		t.Fatalf("got %q", got)
	}
	if SuggestIdentification("EXE", "", now) != "" {
		t.Fatal("empty name must yield empty suggestion")
	}
	// Initials cap at three words.
	capped := SuggestIdentification("PER", "a b c d e", now)
	if capped[:7] != "PER-ABC" {
		t.Fatalf("got %q", capped)
	}
}

func TestSuggestVoucherNumber(t *testing.T) {
	got := SuggestVoucherNumber(NewDate(2026, 1, 15), 42)
	if got != "CC-20260115-0042" {
		t.Fatalf("got %q", got)
	}
	if got := SuggestVoucherNumber(NewDate(2026, 1, 15), 123456); got != "CC-20260115-123456" {
		t.Fatalf("got %q", got)
	}
}
