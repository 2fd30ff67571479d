package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"cajachica/internal/core"
)

func (r *Repository) CreateFund(ctx context.Context, f core.Fund) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO funds (date, amount, person_id, voucher_number, notes)
		VALUES (?, ?, ?, ?, ?)`,
		f.Date.ISO(), f.Amount.String(), nullableID(f.PersonID), f.VoucherNumber, f.Notes)
	if err != nil {
		return 0, fmt.Errorf("create fund: %w", translateConstraint(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create fund id: %w", err)
	}

	slog.InfoContext(ctx, "Fund saved", "fund_id", id, "amount", f.Amount.String(), "date", f.Date.ISO())
	return id, nil
}

func (r *Repository) UpdateFund(ctx context.Context, f core.Fund) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE funds
		SET date = ?, amount = ?, person_id = ?, voucher_number = ?, notes = ?
		WHERE id = ?`,
		f.Date.ISO(), f.Amount.String(), nullableID(f.PersonID), f.VoucherNumber, f.Notes, f.ID)
	if err != nil {
		return fmt.Errorf("update fund %d: %w", f.ID, translateConstraint(err))
	}
	return requireRows(res, f.ID)
}

// DeleteFund removes the row for good. Funds have no status lifecycle.
func (r *Repository) DeleteFund(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM funds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete fund %d: %w", id, err)
	}
	return requireRows(res, id)
}

func (r *Repository) GetFund(ctx context.Context, id int64) (core.Fund, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, date, amount, person_id, voucher_number, notes
		FROM funds WHERE id = ?`, id)
	f, err := scanFund(row)
	if err == sql.ErrNoRows {
		return core.Fund{}, fmt.Errorf("fund %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Fund{}, fmt.Errorf("get fund %d: %w", id, err)
	}
	return f, nil
}

// ListFunds returns every replenishment, newest first. The balance is
// all-time, so there is no date filter here.
func (r *Repository) ListFunds(ctx context.Context) ([]core.Fund, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, amount, person_id, voucher_number, notes
		FROM funds ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list funds: %w", err)
	}
	defer rows.Close()

	var out []core.Fund
	for rows.Next() {
		f, err := scanFund(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fund: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func scanFund(row rowScanner) (core.Fund, error) {
	var (
		f        core.Fund
		date     string
		amount   string
		personID sql.NullInt64
	)
	err := row.Scan(&f.ID, &date, &amount, &personID, &f.VoucherNumber, &f.Notes)
	if err != nil {
		return core.Fund{}, err
	}
	if f.Date, err = core.ParseDate(date); err != nil {
		return core.Fund{}, fmt.Errorf("stored date %q: %w", date, err)
	}
	if f.Amount, err = decimal.NewFromString(amount); err != nil {
		return core.Fund{}, fmt.Errorf("stored amount %q: %w", amount, err)
	}
	f.PersonID = personID.Int64
	return f, nil
}
