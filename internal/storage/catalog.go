package storage

import (
	"context"
	"database/sql"
	"fmt"

	"cajachica/internal/core"
)

func (r *Repository) CreateCategory(ctx context.Context, c core.Category) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (name, icon, color) VALUES (?, ?, ?)`,
		c.Name, c.Icon, c.Color)
	if err != nil {
		return 0, fmt.Errorf("create category: %w", translateConstraint(err))
	}
	return res.LastInsertId()
}

func (r *Repository) UpdateCategory(ctx context.Context, c core.Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories SET name = ?, icon = ?, color = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, c.Name, c.Icon, c.Color, c.ID)
	if err != nil {
		return fmt.Errorf("update category %d: %w", c.ID, translateConstraint(err))
	}
	return requireRows(res, c.ID)
}

// DeleteCategory hard-deletes a category. The foreign key from expenses (and
// subcategories) blocks the delete while references exist; that surfaces as
// ErrReferenced.
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, translateConstraint(err))
	}
	return requireRows(res, id)
}

func (r *Repository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, icon, color FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) CreateSubcategory(ctx context.Context, s core.Subcategory) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO subcategories (category_id, name, active) VALUES (?, ?, ?)`,
		s.CategoryID, s.Name, boolInt(s.Active))
	if err != nil {
		return 0, fmt.Errorf("create subcategory: %w", translateConstraint(err))
	}
	return res.LastInsertId()
}

func (r *Repository) UpdateSubcategory(ctx context.Context, s core.Subcategory) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE subcategories SET category_id = ?, name = ?, active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, s.CategoryID, s.Name, boolInt(s.Active), s.ID)
	if err != nil {
		return fmt.Errorf("update subcategory %d: %w", s.ID, translateConstraint(err))
	}
	return requireRows(res, s.ID)
}

// ListSubcategories returns active subcategories, optionally narrowed to one
// parent category (categoryID 0 means all).
func (r *Repository) ListSubcategories(ctx context.Context, categoryID int64) ([]core.Subcategory, error) {
	query := `SELECT id, category_id, name, active FROM subcategories WHERE active = 1`
	var args []any
	if categoryID != 0 {
		query += ` AND category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	var out []core.Subcategory
	for rows.Next() {
		var (
			s      core.Subcategory
			active int
		)
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &active); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		s.Active = active != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) CreatePerson(ctx context.Context, p core.Person) (int64, error) {
	return r.createNamed(ctx, "persons", p.Name, p.Identification, p.Active)
}

func (r *Repository) UpdatePerson(ctx context.Context, p core.Person) error {
	return r.updateNamed(ctx, "persons", p.ID, p.Name, p.Identification, p.Active)
}

func (r *Repository) ListPersons(ctx context.Context) ([]core.Person, error) {
	rows, err := r.listNamed(ctx, "persons")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Person
	for rows.Next() {
		var (
			p      core.Person
			active int
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Identification, &active); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		p.Active = active != 0
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) CreateExecutor(ctx context.Context, e core.Executor) (int64, error) {
	return r.createNamed(ctx, "executors", e.Name, e.Identification, e.Active)
}

func (r *Repository) UpdateExecutor(ctx context.Context, e core.Executor) error {
	return r.updateNamed(ctx, "executors", e.ID, e.Name, e.Identification, e.Active)
}

func (r *Repository) ListExecutors(ctx context.Context) ([]core.Executor, error) {
	rows, err := r.listNamed(ctx, "executors")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Executor
	for rows.Next() {
		var (
			e      core.Executor
			active int
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Identification, &active); err != nil {
			return nil, fmt.Errorf("scan executor: %w", err)
		}
		e.Active = active != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

// persons and executors share a shape: id, name, identification, active.
func (r *Repository) createNamed(ctx context.Context, table, name, identification string, active bool) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO `+table+` (name, identification, active) VALUES (?, ?, ?)`,
		name, identification, boolInt(active))
	if err != nil {
		return 0, fmt.Errorf("create %s row: %w", table, translateConstraint(err))
	}
	return res.LastInsertId()
}

func (r *Repository) updateNamed(ctx context.Context, table string, id int64, name, identification string, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE `+table+` SET name = ?, identification = ?, active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, identification, boolInt(active), id)
	if err != nil {
		return fmt.Errorf("update %s row %d: %w", table, id, translateConstraint(err))
	}
	return requireRows(res, id)
}

func (r *Repository) listNamed(ctx context.Context, table string) (*sql.Rows, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, identification, active FROM `+table+` WHERE active = 1 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return rows, nil
}
