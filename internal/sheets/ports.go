package sheets

import (
	"context"

	"cajachica/internal/core"
)

// LedgerWriter is the outbound port to the shared accounting sheet. The
// sheet is append-only: a cancellation is recorded as its own row rather
// than by mutating the original one.
type LedgerWriter interface {
	// AppendMovement writes one movement row and returns a row reference.
	AppendMovement(ctx context.Context, e core.Expense) (rowRef string, err error)

	// AppendCancellation records that a previously mirrored movement was
	// cancelled.
	AppendCancellation(ctx context.Context, e core.Expense) error
}
