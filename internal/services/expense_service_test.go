package services

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/shopspring/decimal"

	"cajachica/internal/amqp"
	"cajachica/internal/core"
	"cajachica/internal/storage"
)

type fakeExpenseStore struct {
	nextID     int64
	expenses   map[int64]core.Expense
	lastFilter storage.ExpenseFilter
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{expenses: map[int64]core.Expense{}}
}

func (f *fakeExpenseStore) CreateExpense(_ context.Context, e core.Expense) (int64, error) {
	f.nextID++
	e.ID = f.nextID
	f.expenses[e.ID] = e
	return e.ID, nil
}

func (f *fakeExpenseStore) UpdateExpense(_ context.Context, e core.Expense) error {
	if _, ok := f.expenses[e.ID]; !ok {
		return storage.ErrNotFound
	}
	f.expenses[e.ID] = e
	return nil
}

func (f *fakeExpenseStore) CancelExpense(_ context.Context, id int64) error {
	e, ok := f.expenses[id]
	if !ok {
		return storage.ErrNotFound
	}
	e.Status = core.StatusCancelled
	f.expenses[id] = e
	return nil
}

func (f *fakeExpenseStore) GetExpense(_ context.Context, id int64) (core.Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return core.Expense{}, storage.ErrNotFound
	}
	return e, nil
}

func (f *fakeExpenseStore) ListExpenses(_ context.Context, filter storage.ExpenseFilter) ([]core.Expense, error) {
	f.lastFilter = filter
	// Mirror the real store's ordering: date DESC, id DESC (newest first).
	var out []core.Expense
	for id := f.nextID; id >= 1; id-- {
		e, ok := f.expenses[id]
		if !ok {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if !filter.Start.IsZero() && e.Date.Before(filter.Start) {
			continue
		}
		if !filter.End.IsZero() && filter.End.Before(e.Date) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[j].Date.Before(out[i].Date) })
	return out, nil
}

type fakePublisher struct {
	calls []string
	err   error
}

func (f *fakePublisher) PublishMovementMirror(_ context.Context, id int64, action string) error {
	f.calls = append(f.calls, action)
	return f.err
}

func validExpense() core.Expense {
	return core.Expense{
		Date:     core.NewDate(2026, 1, 15),
		Executor: "Juan",
		Amount:   decimal.RequireFromString("150.25"),
	}
}

func TestCreateExpenseDefaultsStatusAndPublishes(t *testing.T) {
	store := newFakeExpenseStore()
	pub := &fakePublisher{}
	svc := NewExpenseService(store, pub)

	id, err := svc.CreateExpense(context.Background(), validExpense())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if store.expenses[id].Status != core.StatusActive {
		t.Fatalf("status = %s, want active default", store.expenses[id].Status)
	}
	if len(pub.calls) != 1 || pub.calls[0] != amqp.ActionUpsert {
		t.Fatalf("published %v, want one upsert", pub.calls)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	svc := NewExpenseService(newFakeExpenseStore(), nil)
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*core.Expense)
		wantErr error
	}{
		{"missing executor", func(e *core.Expense) { e.Executor = "" }, core.ErrEmptyExecutor},
		{"zero amount", func(e *core.Expense) { e.Amount = decimal.Zero }, core.ErrInvalidAmount},
		{"negative amount", func(e *core.Expense) { e.Amount = decimal.RequireFromString("-5") }, core.ErrInvalidAmount},
		{"zero date", func(e *core.Expense) { e.Date = core.Date{} }, core.ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := validExpense()
			tc.mutate(&e)
			if _, err := svc.CreateExpense(ctx, e); !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	store := newFakeExpenseStore()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewExpenseService(store, pub)

	id, err := svc.CreateExpense(context.Background(), validExpense())
	if err != nil {
		t.Fatalf("create should succeed despite publish failure: %v", err)
	}
	if _, ok := store.expenses[id]; !ok {
		t.Fatal("expense not saved")
	}
}

func TestCancelExpensePublishesCancel(t *testing.T) {
	store := newFakeExpenseStore()
	pub := &fakePublisher{}
	svc := NewExpenseService(store, pub)

	id, _ := svc.CreateExpense(context.Background(), validExpense())
	if err := svc.CancelExpense(context.Background(), id); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if store.expenses[id].Status != core.StatusCancelled {
		t.Fatalf("status = %s", store.expenses[id].Status)
	}
	if len(pub.calls) != 2 || pub.calls[1] != amqp.ActionCancel {
		t.Fatalf("published %v, want upsert then cancel", pub.calls)
	}
}

func TestNilPublisherIsSilent(t *testing.T) {
	svc := NewExpenseService(newFakeExpenseStore(), nil)
	if _, err := svc.CreateExpense(context.Background(), validExpense()); err != nil {
		t.Fatalf("create without publisher: %v", err)
	}
}
