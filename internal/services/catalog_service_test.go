package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"cajachica/internal/core"
	"cajachica/internal/storage"
)

type fakeCatalogStore struct {
	nextID     int64
	categories map[int64]core.Category
	persons    map[int64]core.Person
	executors  map[int64]core.Executor
	referenced map[int64]bool
}

func newFakeCatalogStore() *fakeCatalogStore {
	return &fakeCatalogStore{
		categories: map[int64]core.Category{},
		persons:    map[int64]core.Person{},
		executors:  map[int64]core.Executor{},
		referenced: map[int64]bool{},
	}
}

func (f *fakeCatalogStore) CreateCategory(_ context.Context, c core.Category) (int64, error) {
	for _, existing := range f.categories {
		if existing.Name == c.Name {
			return 0, storage.ErrDuplicate
		}
	}
	f.nextID++
	c.ID = f.nextID
	f.categories[c.ID] = c
	return c.ID, nil
}

func (f *fakeCatalogStore) UpdateCategory(_ context.Context, c core.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCatalogStore) DeleteCategory(_ context.Context, id int64) error {
	if f.referenced[id] {
		return storage.ErrReferenced
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCatalogStore) ListCategories(_ context.Context) ([]core.Category, error) {
	return nil, nil
}

func (f *fakeCatalogStore) CreateSubcategory(_ context.Context, s core.Subcategory) (int64, error) {
	f.nextID++
	return f.nextID, nil
}

func (f *fakeCatalogStore) UpdateSubcategory(_ context.Context, s core.Subcategory) error {
	return nil
}

func (f *fakeCatalogStore) ListSubcategories(_ context.Context, _ int64) ([]core.Subcategory, error) {
	return nil, nil
}

func (f *fakeCatalogStore) CreatePerson(_ context.Context, p core.Person) (int64, error) {
	f.nextID++
	p.ID = f.nextID
	f.persons[p.ID] = p
	return p.ID, nil
}

func (f *fakeCatalogStore) UpdatePerson(_ context.Context, p core.Person) error {
	f.persons[p.ID] = p
	return nil
}

func (f *fakeCatalogStore) ListPersons(_ context.Context) ([]core.Person, error) {
	return nil, nil
}

func (f *fakeCatalogStore) CreateExecutor(_ context.Context, e core.Executor) (int64, error) {
	f.nextID++
	e.ID = f.nextID
	f.executors[e.ID] = e
	return e.ID, nil
}

func (f *fakeCatalogStore) UpdateExecutor(_ context.Context, e core.Executor) error {
	f.executors[e.ID] = e
	return nil
}

func (f *fakeCatalogStore) ListExecutors(_ context.Context) ([]core.Executor, error) {
	return nil, nil
}

func fixedClock() time.Time {
	return time.UnixMilli(1767225600123)
}

func TestCreatePersonFillsIdentification(t *testing.T) {
	store := newFakeCatalogStore()
	svc := NewCatalogService(store)
	svc.now = fixedClock

	id, err := svc.CreatePerson(context.Background(), core.Person{Name: "Juan Perez Garcia", Active: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := store.persons[id].Identification; got != "PER-JPG600123" {
		t.Fatalf("identification = %q", got)
	}
}

func TestCreateExecutorKeepsGivenIdentification(t *testing.T) {
	store := newFakeCatalogStore()
	svc := NewCatalogService(store)
	svc.now = fixedClock

	id, err := svc.CreateExecutor(context.Background(), core.Executor{Name: "Ana", Identification: "EXE-CUSTOM", Active: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := store.executors[id].Identification; got != "EXE-CUSTOM" {
		t.Fatalf("identification = %q, explicit value must win", got)
	}
}

func TestCatalogNameRequired(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogStore())
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, core.Category{}); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("category: %v", err)
	}
	if _, err := svc.CreatePerson(ctx, core.Person{}); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("person: %v", err)
	}
	if _, err := svc.CreateExecutor(ctx, core.Executor{}); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("executor: %v", err)
	}
	if _, err := svc.CreateSubcategory(ctx, core.Subcategory{CategoryID: 1}); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("subcategory: %v", err)
	}
}

func TestDeleteCategoryBlockedWhileReferenced(t *testing.T) {
	store := newFakeCatalogStore()
	svc := NewCatalogService(store)
	ctx := context.Background()

	id, err := svc.CreateCategory(ctx, core.Category{Name: "Transporte"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	store.referenced[id] = true

	if err := svc.DeleteCategory(ctx, id); !errors.Is(err, storage.ErrReferenced) {
		t.Fatalf("delete: %v, want ErrReferenced", err)
	}
}

func TestSuggestIdentification(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogStore())
	svc.now = fixedClock

	if got := svc.SuggestIdentification("EXE", "Juan Perez Garcia"); got != "EXE-JPG600123" {
		t.Fatalf("got %q", got)
	}
}
