// Package memory holds an in-memory ledger used by tests and by local runs
// without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"cajachica/internal/core"
)

type Row struct {
	Movement  core.Expense
	Cancelled bool
}

type Ledger struct {
	mu   sync.Mutex
	rows []Row

	// AppendErr, when set, makes every write fail. Tests use it to exercise
	// retry paths.
	AppendErr error
}

func New() *Ledger {
	return &Ledger{}
}

func (l *Ledger) AppendMovement(_ context.Context, e core.Expense) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.AppendErr != nil {
		return "", l.AppendErr
	}
	l.rows = append(l.rows, Row{Movement: e})
	return fmt.Sprintf("mem:%d", len(l.rows)), nil
}

func (l *Ledger) AppendCancellation(_ context.Context, e core.Expense) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.AppendErr != nil {
		return l.AppendErr
	}
	l.rows = append(l.rows, Row{Movement: e, Cancelled: true})
	return nil
}

// Rows returns a copy of everything appended so far.
func (l *Ledger) Rows() []Row {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Row(nil), l.rows...)
}
