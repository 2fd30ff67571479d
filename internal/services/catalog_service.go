package services

import (
	"context"
	"fmt"
	"time"

	"cajachica/internal/core"
)

type CatalogStore interface {
	CreateCategory(ctx context.Context, c core.Category) (int64, error)
	UpdateCategory(ctx context.Context, c core.Category) error
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]core.Category, error)

	CreateSubcategory(ctx context.Context, s core.Subcategory) (int64, error)
	UpdateSubcategory(ctx context.Context, s core.Subcategory) error
	ListSubcategories(ctx context.Context, categoryID int64) ([]core.Subcategory, error)

	CreatePerson(ctx context.Context, p core.Person) (int64, error)
	UpdatePerson(ctx context.Context, p core.Person) error
	ListPersons(ctx context.Context) ([]core.Person, error)

	CreateExecutor(ctx context.Context, e core.Executor) (int64, error)
	UpdateExecutor(ctx context.Context, e core.Executor) error
	ListExecutors(ctx context.Context) ([]core.Executor, error)
}

// CatalogService manages the lookup tables movements reference: categories,
// subcategories, persons, and executors.
type CatalogService struct {
	store CatalogStore
	now   func() time.Time
}

func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store, now: time.Now}
}

func (s *CatalogService) CreateCategory(ctx context.Context, c core.Category) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	id, err := s.store.CreateCategory(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("save category: %w", err)
	}
	return id, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, c core.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.store.UpdateCategory(ctx, c)
}

// DeleteCategory fails with storage.ErrReferenced while movements still
// point at the category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.store.DeleteCategory(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]core.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CatalogService) CreateSubcategory(ctx context.Context, sub core.Subcategory) (int64, error) {
	if sub.Name == "" {
		return 0, core.ErrEmptyName
	}
	id, err := s.store.CreateSubcategory(ctx, sub)
	if err != nil {
		return 0, fmt.Errorf("save subcategory: %w", err)
	}
	return id, nil
}

func (s *CatalogService) UpdateSubcategory(ctx context.Context, sub core.Subcategory) error {
	if sub.Name == "" {
		return core.ErrEmptyName
	}
	return s.store.UpdateSubcategory(ctx, sub)
}

func (s *CatalogService) ListSubcategories(ctx context.Context, categoryID int64) ([]core.Subcategory, error) {
	return s.store.ListSubcategories(ctx, categoryID)
}

func (s *CatalogService) CreatePerson(ctx context.Context, p core.Person) (int64, error) {
	if p.Name == "" {
		return 0, core.ErrEmptyName
	}
	if p.Identification == "" {
		p.Identification = core.SuggestIdentification("PER", p.Name, s.now())
	}
	id, err := s.store.CreatePerson(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("save person: %w", err)
	}
	return id, nil
}

func (s *CatalogService) UpdatePerson(ctx context.Context, p core.Person) error {
	if p.Name == "" {
		return core.ErrEmptyName
	}
	return s.store.UpdatePerson(ctx, p)
}

func (s *CatalogService) ListPersons(ctx context.Context) ([]core.Person, error) {
	return s.store.ListPersons(ctx)
}

func (s *CatalogService) CreateExecutor(ctx context.Context, e core.Executor) (int64, error) {
	if e.Name == "" {
		return 0, core.ErrEmptyName
	}
	if e.Identification == "" {
		e.Identification = core.SuggestIdentification("EXE", e.Name, s.now())
	}
	id, err := s.store.CreateExecutor(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save executor: %w", err)
	}
	return id, nil
}

func (s *CatalogService) UpdateExecutor(ctx context.Context, e core.Executor) error {
	if e.Name == "" {
		return core.ErrEmptyName
	}
	return s.store.UpdateExecutor(ctx, e)
}

func (s *CatalogService) ListExecutors(ctx context.Context) ([]core.Executor, error) {
	return s.store.ListExecutors(ctx)
}

// SuggestIdentification proposes a code for a new catalog entry without
// persisting anything.
func (s *CatalogService) SuggestIdentification(prefix, name string) string {
	return core.SuggestIdentification(prefix, name, s.now())
}
