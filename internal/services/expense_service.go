package services

import (
	"context"
	"fmt"
	"log/slog"

	"cajachica/internal/amqp"
	"cajachica/internal/core"
	"cajachica/internal/storage"
)

// ExpenseStore is the slice of the repository the expense service needs.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, e core.Expense) (int64, error)
	UpdateExpense(ctx context.Context, e core.Expense) error
	CancelExpense(ctx context.Context, id int64) error
	GetExpense(ctx context.Context, id int64) (core.Expense, error)
	ListExpenses(ctx context.Context, f storage.ExpenseFilter) ([]core.Expense, error)
}

// MirrorPublisher enqueues movements for the external ledger mirror.
// A nil publisher disables mirroring.
type MirrorPublisher interface {
	PublishMovementMirror(ctx context.Context, movementID int64, action string) error
}

// ExpenseService orchestrates movement writes across SQLite and the mirror
// queue. The database is the source of truth; publish failures are logged
// and never fail the request.
type ExpenseService struct {
	store     ExpenseStore
	publisher MirrorPublisher
}

func NewExpenseService(store ExpenseStore, publisher MirrorPublisher) *ExpenseService {
	return &ExpenseService{store: store, publisher: publisher}
}

func (s *ExpenseService) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	if e.Status == "" {
		e.Status = core.StatusActive
	}
	if err := e.Validate(); err != nil {
		return 0, err
	}

	id, err := s.store.CreateExpense(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save expense: %w", err)
	}

	s.publish(ctx, id, amqp.ActionUpsert)
	return id, nil
}

func (s *ExpenseService) UpdateExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}

	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}

	s.publish(ctx, e.ID, amqp.ActionUpsert)
	return nil
}

// CancelExpense flips the movement to cancelled. The row is kept so past
// periods stay reconstructable.
func (s *ExpenseService) CancelExpense(ctx context.Context, id int64) error {
	if err := s.store.CancelExpense(ctx, id); err != nil {
		return fmt.Errorf("cancel expense: %w", err)
	}

	s.publish(ctx, id, amqp.ActionCancel)
	return nil
}

func (s *ExpenseService) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	return s.store.GetExpense(ctx, id)
}

func (s *ExpenseService) ListExpenses(ctx context.Context, f storage.ExpenseFilter) ([]core.Expense, error) {
	return s.store.ListExpenses(ctx, f)
}

func (s *ExpenseService) publish(ctx context.Context, id int64, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishMovementMirror(ctx, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish mirror message",
			"movement_id", id, "action", action, "error", err)
	}
}
