package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/phrazzld/lexis/internal/store"
)

// MockTxBeginner implements store.TxBeginner for testing.
// BeginTxFn must be set; use sqlmock for a *sql.Tx that can commit.
type MockTxBeginner struct {
	BeginTxFn func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)

	mu    sync.Mutex
	Calls int
}

var _ store.TxBeginner = (*MockTxBeginner)(nil)

// BeginTx implements store.TxBeginner
func (m *MockTxBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	return m.BeginTxFn(ctx, opts)
}
