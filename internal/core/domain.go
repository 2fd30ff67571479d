package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle tag of an expense. "Deleting" an expense is a
// transition to StatusCancelled, never a hard delete, so historical reports
// stay reconstructable.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusApproved  Status = "approved"
)

// IsLive reports whether an expense with this status counts toward balances
// and reports. This is the single predicate every query path uses.
func (s Status) IsLive() bool {
	return s == StatusActive
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCancelled, StatusApproved:
		return true
	}
	return false
}

type (
	// Date is a calendar date without a time-of-day component.
	Date struct {
		time.Time
	}

	Expense struct {
		ID              int64
		Date            Date
		CorrespondentTo string // who the expense is billed to, optional
		Executor        string // who physically executed it, required
		CategoryID      int64  // 0 = uncategorized
		SubcategoryID   int64
		Amount          decimal.Decimal
		VoucherNumber   string
		Notes           string
		Status          Status

		// Denormalized from the category join for display and grouping.
		CategoryName  string
		CategoryIcon  string
		CategoryColor string
	}

	// Fund is a replenishment of the petty-cash pool.
	Fund struct {
		ID            int64
		Date          Date
		Amount        decimal.Decimal
		PersonID      int64
		VoucherNumber string
		Notes         string
	}

	// CustomPeriod overrides the natural calendar bounds of one month.
	CustomPeriod struct {
		ID        int64
		Year      int
		Month     int // 1-12
		StartDate Date
		EndDate   Date
		Active    bool
		Notes     string
	}

	Category struct {
		ID    int64
		Name  string
		Icon  string
		Color string
	}

	Subcategory struct {
		ID         int64
		CategoryID int64
		Name       string
		Active     bool
	}

	Person struct {
		ID             int64
		Name           string
		Identification string
		Active         bool
	}

	Executor struct {
		ID             int64
		Name           string
		Identification string
		Active         bool
	}

	// Balance is derived from fund and expense rows, never stored.
	Balance struct {
		TotalFunds    decimal.Decimal
		TotalExpenses decimal.Decimal
		Balance       decimal.Decimal
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidMonth    = errors.New("invalid month")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyExecutor   = errors.New("empty executor")
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrPeriodBackwards = errors.New("end date must be after start date")
)

const isoDate = "2006-01-02"

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// ISO returns the date formatted as "YYYY-MM-DD".
func (d Date) ISO() string {
	return d.Format(isoDate)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if e.Executor == "" {
		return ErrEmptyExecutor
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !e.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (f Fund) Validate() error {
	if err := f.Date.Validate(); err != nil {
		return err
	}
	if !f.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (p CustomPeriod) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidMonth
	}
	if err := p.StartDate.Validate(); err != nil {
		return err
	}
	if err := p.EndDate.Validate(); err != nil {
		return err
	}
	if !p.StartDate.Before(p.EndDate) {
		return ErrPeriodBackwards
	}
	return nil
}

func (c Category) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	return nil
}

// IsNegative reports whether the pool is overdrawn. Callers use this for UI
// warnings; the calculator itself never clamps.
func (b Balance) IsNegative() bool {
	return b.Balance.IsNegative()
}
