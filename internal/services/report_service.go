package services

import (
	"context"
	"fmt"

	"cajachica/internal/core"
	"cajachica/internal/storage"
)

// ReportService answers the read-side questions: what is the pool balance,
// and how does a month break down.
type ReportService struct {
	expenses ExpenseStore
	funds    FundStore
	periods  *PeriodService
}

func NewReportService(expenses ExpenseStore, funds FundStore, periods *PeriodService) *ReportService {
	return &ReportService{expenses: expenses, funds: funds, periods: periods}
}

// Balance computes the all-time pool balance. Funds are not scoped to any
// period, so neither side of the subtraction is date-filtered.
func (s *ReportService) Balance(ctx context.Context) (core.Balance, error) {
	funds, err := s.funds.ListFunds(ctx)
	if err != nil {
		return core.Balance{}, fmt.Errorf("list funds: %w", err)
	}
	expenses, err := s.expenses.ListExpenses(ctx, storage.ExpenseFilter{})
	if err != nil {
		return core.Balance{}, fmt.Errorf("list expenses: %w", err)
	}
	return core.ComputeBalance(funds, expenses), nil
}

// MonthExpenses lists the live movements of a "YYYY-MM" month, using the
// resolved period bounds.
func (s *ReportService) MonthExpenses(ctx context.Context, yearMonth string) ([]core.Expense, core.MonthLimits, error) {
	limits, err := s.periods.MonthLimits(ctx, yearMonth)
	if err != nil {
		return nil, core.MonthLimits{}, err
	}
	expenses, err := s.expenses.ListExpenses(ctx, storage.ExpenseFilter{
		Start:  limits.StartDate,
		End:    limits.EndDate,
		Status: core.StatusActive,
	})
	if err != nil {
		return nil, core.MonthLimits{}, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, limits, nil
}

// MonthlyReport aggregates a month's live movements under the requested
// grouping.
func (s *ReportService) MonthlyReport(ctx context.Context, yearMonth string, groupBy core.GroupBy) (core.GroupedReport, core.MonthLimits, error) {
	expenses, limits, err := s.MonthExpenses(ctx, yearMonth)
	if err != nil {
		return core.GroupedReport{}, core.MonthLimits{}, err
	}

	// Aggregation walks rows in first-appearance order; the storage layer
	// returns newest first, so reverse to read the month chronologically.
	for i, j := 0, len(expenses)-1; i < j; i, j = i+1, j-1 {
		expenses[i], expenses[j] = expenses[j], expenses[i]
	}

	report, err := core.Aggregate(expenses, groupBy)
	if err != nil {
		return core.GroupedReport{}, core.MonthLimits{}, err
	}
	return report, limits, nil
}
