package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cajachica/internal/amqp"
	"cajachica/internal/core"
	"cajachica/internal/sheets"
)

// MirrorStore is the slice of the repository the worker needs.
type MirrorStore interface {
	GetExpense(ctx context.Context, id int64) (core.Expense, error)
	ListUnmirroredExpenses(ctx context.Context, limit int) ([]core.Expense, error)
	MarkMirrored(ctx context.Context, id int64) error
}

// MirrorWorker copies movements from SQLite to the ledger sheet. Queue
// messages drive the normal path; a periodic sweep catches movements whose
// messages were lost.
type MirrorWorker struct {
	store     MirrorStore
	ledger    sheets.LedgerWriter
	batchSize int
}

func NewMirrorWorker(store MirrorStore, ledger sheets.LedgerWriter, batchSize int) *MirrorWorker {
	if batchSize < 1 {
		batchSize = 10
	}
	return &MirrorWorker{store: store, ledger: ledger, batchSize: batchSize}
}

// HandleMirrorMessage processes one queue message. Returning an error makes
// the consumer requeue the message.
func (w *MirrorWorker) HandleMirrorMessage(ctx context.Context, msg *amqp.MovementMirrorMessage) error {
	e, err := w.store.GetExpense(ctx, msg.MovementID)
	if err != nil {
		return fmt.Errorf("get movement %d: %w", msg.MovementID, err)
	}

	switch msg.Action {
	case amqp.ActionUpsert:
		return w.mirrorMovement(ctx, e)
	case amqp.ActionCancel:
		if err := w.ledger.AppendCancellation(ctx, e); err != nil {
			return fmt.Errorf("append cancellation %d: %w", e.ID, err)
		}
		slog.InfoContext(ctx, "Recorded cancellation on ledger", "movement_id", e.ID)
		return nil
	default:
		return fmt.Errorf("unknown mirror action %q", msg.Action)
	}
}

// SweepPending mirrors movements that were never marked, oldest first. This
// backstop recovers from lost messages and worker downtime.
func (w *MirrorWorker) SweepPending(ctx context.Context) error {
	pending, err := w.store.ListUnmirroredExpenses(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unmirrored: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Sweeping unmirrored movements", "count", len(pending))

	for _, e := range pending {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := w.mirrorMovement(ctx, e); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror movement during sweep",
				"movement_id", e.ID, "error", err)
			// Keep going; the row stays unmirrored and the next sweep retries it.
		}
	}
	return nil
}

// Run consumes the queue while sweeping on a fixed interval, until ctx is
// cancelled. With a nil client only the sweep runs.
func (w *MirrorWorker) Run(ctx context.Context, client *amqp.Client, interval time.Duration) error {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	// Catch up before touching the queue.
	if err := w.SweepPending(ctx); err != nil {
		slog.WarnContext(ctx, "Startup sweep failed", "error", err)
	}

	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := w.SweepPending(ctx); err != nil && ctx.Err() == nil {
					slog.ErrorContext(ctx, "Sweep failed", "error", err)
				}
			}
		}
	}()

	var err error
	if client != nil {
		err = client.ConsumeMovementMirror(ctx, func(msg *amqp.MovementMirrorMessage) error {
			return w.HandleMirrorMessage(ctx, msg)
		})
	} else {
		<-ctx.Done()
		err = ctx.Err()
	}

	<-sweepDone
	return err
}

func (w *MirrorWorker) mirrorMovement(ctx context.Context, e core.Expense) error {
	ref, err := w.ledger.AppendMovement(ctx, e)
	if err != nil {
		return fmt.Errorf("append movement %d: %w", e.ID, err)
	}

	if err := w.store.MarkMirrored(ctx, e.ID); err != nil {
		// The append worked; losing the mark only means one duplicate row on
		// the next sweep.
		slog.ErrorContext(ctx, "Failed to mark movement mirrored",
			"movement_id", e.ID, "error", err)
	}

	slog.InfoContext(ctx, "Mirrored movement to ledger",
		"movement_id", e.ID, "sheet_ref", ref)
	return nil
}
