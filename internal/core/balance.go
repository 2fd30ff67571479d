package core

import "github.com/shopspring/decimal"

// ComputeBalance derives the current cash balance from fund and expense rows.
//
// Funds always count in full (the balance is all-time, not month-scoped).
// Only live expenses count; cancelled ones are excluded. The result may be
// negative and is returned as-is.
func ComputeBalance(funds []Fund, expenses []Expense) Balance {
	totalFunds := decimal.Zero
	for _, f := range funds {
		totalFunds = totalFunds.Add(f.Amount)
	}

	totalExpenses := decimal.Zero
	for _, e := range expenses {
		if e.Status.IsLive() {
			totalExpenses = totalExpenses.Add(e.Amount)
		}
	}

	return Balance{
		TotalFunds:    totalFunds,
		TotalExpenses: totalExpenses,
		Balance:       totalFunds.Sub(totalExpenses),
	}
}
