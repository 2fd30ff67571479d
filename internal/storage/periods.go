package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"cajachica/internal/core"
)

// ActivePeriod implements core.PeriodLookup. It returns (nil, nil) when the
// month has no active override.
func (r *Repository) ActivePeriod(ctx context.Context, year, month int) (*core.CustomPeriod, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, year, month, start_date, end_date, active, notes
		FROM custom_periods
		WHERE year = ? AND month = ? AND active = 1
		LIMIT 1`, year, month)
	p, err := scanPeriod(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("active period %d-%02d: %w", year, month, err)
	}
	return &p, nil
}

// HasOtherActivePeriod reports whether an active period already exists for
// (year, month) under a different id. The service runs this before any write;
// the partial unique index backs it up at the store level.
func (r *Repository) HasOtherActivePeriod(ctx context.Context, year, month int, exceptID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM custom_periods
		WHERE year = ? AND month = ? AND active = 1 AND id != ?`,
		year, month, exceptID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check active period %d-%02d: %w", year, month, err)
	}
	return n > 0, nil
}

func (r *Repository) CreatePeriod(ctx context.Context, p core.CustomPeriod) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO custom_periods (year, month, start_date, end_date, active, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.Year, p.Month, p.StartDate.ISO(), p.EndDate.ISO(), boolInt(p.Active), p.Notes)
	if err != nil {
		return 0, fmt.Errorf("create period: %w", translateConstraint(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create period id: %w", err)
	}

	slog.InfoContext(ctx, "Custom period saved",
		"period_id", id, "year", p.Year, "month", p.Month,
		"start_date", p.StartDate.ISO(), "end_date", p.EndDate.ISO())
	return id, nil
}

func (r *Repository) UpdatePeriod(ctx context.Context, p core.CustomPeriod) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE custom_periods
		SET year = ?, month = ?, start_date = ?, end_date = ?, active = ?,
			notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		p.Year, p.Month, p.StartDate.ISO(), p.EndDate.ISO(), boolInt(p.Active), p.Notes, p.ID)
	if err != nil {
		return fmt.Errorf("update period %d: %w", p.ID, translateConstraint(err))
	}
	return requireRows(res, p.ID)
}

// DeactivatePeriod soft-deletes an override; natural month bounds apply again.
func (r *Repository) DeactivatePeriod(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE custom_periods SET active = 0, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivate period %d: %w", id, err)
	}
	return requireRows(res, id)
}

func (r *Repository) ListPeriods(ctx context.Context) ([]core.CustomPeriod, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, year, month, start_date, end_date, active, notes
		FROM custom_periods
		WHERE active = 1
		ORDER BY year DESC, month DESC`)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	defer rows.Close()

	var out []core.CustomPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPeriod(row rowScanner) (core.CustomPeriod, error) {
	var (
		p          core.CustomPeriod
		start, end string
		active     int
	)
	err := row.Scan(&p.ID, &p.Year, &p.Month, &start, &end, &active, &p.Notes)
	if err != nil {
		return core.CustomPeriod{}, err
	}
	if p.StartDate, err = core.ParseDate(start); err != nil {
		return core.CustomPeriod{}, fmt.Errorf("stored start date %q: %w", start, err)
	}
	if p.EndDate, err = core.ParseDate(end); err != nil {
		return core.CustomPeriod{}, fmt.Errorf("stored end date %q: %w", end, err)
	}
	p.Active = active != 0
	return p, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
