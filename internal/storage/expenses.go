package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"cajachica/internal/core"
)

const expenseColumns = `
	e.id, e.date, e.correspondent_to, e.executor,
	e.category_id, e.subcategory_id, e.amount,
	e.voucher_number, e.notes, e.status,
	COALESCE(c.name, ''), COALESCE(c.icon, ''), COALESCE(c.color, '')`

// ExpenseFilter narrows ListExpenses. Zero-value fields are ignored.
type ExpenseFilter struct {
	Start    core.Date
	End      core.Date
	Status   core.Status
	Executor string
}

func (r *Repository) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (date, correspondent_to, executor, category_id,
			subcategory_id, amount, voucher_number, notes, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Date.ISO(), e.CorrespondentTo, e.Executor,
		nullableID(e.CategoryID), nullableID(e.SubcategoryID),
		e.Amount.String(), e.VoucherNumber, e.Notes, string(e.Status))
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", translateConstraint(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create expense id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"expense_id", id, "executor", e.Executor, "amount", e.Amount.String(), "date", e.Date.ISO())
	return id, nil
}

func (r *Repository) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses
		SET date = ?, correspondent_to = ?, executor = ?, category_id = ?,
			subcategory_id = ?, amount = ?, voucher_number = ?, notes = ?,
			status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		e.Date.ISO(), e.CorrespondentTo, e.Executor,
		nullableID(e.CategoryID), nullableID(e.SubcategoryID),
		e.Amount.String(), e.VoucherNumber, e.Notes, string(e.Status), e.ID)
	if err != nil {
		return fmt.Errorf("update expense %d: %w", e.ID, translateConstraint(err))
	}
	return requireRows(res, e.ID)
}

// CancelExpense is the soft delete: the row flips to cancelled and stops
// counting toward balances and reports, but stays queryable forever.
func (r *Repository) CancelExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(core.StatusCancelled), id)
	if err != nil {
		return fmt.Errorf("cancel expense %d: %w", id, err)
	}
	return requireRows(res, id)
}

func (r *Repository) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e
		LEFT JOIN categories c ON e.category_id = c.id
		WHERE e.id = ?`, id)
	e, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return core.Expense{}, fmt.Errorf("expense %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return e, nil
}

// ListExpenses returns expenses matching the filter, newest first, with the
// category join denormalized onto each row.
func (r *Repository) ListExpenses(ctx context.Context, f ExpenseFilter) ([]core.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		LEFT JOIN categories c ON e.category_id = c.id
		WHERE 1=1`
	var args []any

	if !f.Start.IsZero() && !f.End.IsZero() {
		query += ` AND e.date BETWEEN ? AND ?`
		args = append(args, f.Start.ISO(), f.End.ISO())
	}
	if f.Status != "" {
		query += ` AND e.status = ?`
		args = append(args, string(f.Status))
	}
	if f.Executor != "" {
		query += ` AND e.executor = ?`
		args = append(args, f.Executor)
	}
	query += ` ORDER BY e.date DESC, e.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// MarkMirrored records that a movement has been copied to the sheet ledger.
func (r *Repository) MarkMirrored(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET mirrored_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark mirrored %d: %w", id, err)
	}
	return requireRows(res, id)
}

// ListUnmirroredExpenses returns movements the worker still has to copy to
// the sheet ledger, oldest first, capped at limit.
func (r *Repository) ListUnmirroredExpenses(ctx context.Context, limit int) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e
		LEFT JOIN categories c ON e.category_id = c.id
		WHERE e.mirrored_at IS NULL
		ORDER BY e.id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list unmirrored expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e          core.Expense
		date       string
		catID      sql.NullInt64
		subID      sql.NullInt64
		amount     string
		status     string
	)
	err := row.Scan(&e.ID, &date, &e.CorrespondentTo, &e.Executor,
		&catID, &subID, &amount, &e.VoucherNumber, &e.Notes, &status,
		&e.CategoryName, &e.CategoryIcon, &e.CategoryColor)
	if err != nil {
		return core.Expense{}, err
	}
	if e.Date, err = core.ParseDate(date); err != nil {
		return core.Expense{}, fmt.Errorf("stored date %q: %w", date, err)
	}
	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return core.Expense{}, fmt.Errorf("stored amount %q: %w", amount, err)
	}
	e.CategoryID = catID.Int64
	e.SubcategoryID = subID.Int64
	e.Status = core.Status(status)
	return e, nil
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func requireRows(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	return nil
}
