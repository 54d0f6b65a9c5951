package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/store"
)

// MockWordStore implements store.WordStore for testing
type MockWordStore struct {
	// Function fields for customizable behavior
	CreateMultipleFn func(ctx context.Context, words []*domain.Word) error
	GetByIDFn        func(ctx context.Context, id int64) (*domain.Word, error)
	CountFn          func(ctx context.Context) (int, error)
	ListUnstudiedFn  func(ctx context.Context, learnerID uuid.UUID, limit int) ([]*domain.Word, error)

	// Data for default implementation
	Words  map[int64]*domain.Word
	NextID int64

	mu          sync.Mutex
	GetByIDs    []int64
	WithTxCalls int
}

// NewMockWordStore creates a mock store holding words, keyed by their IDs.
func NewMockWordStore(words ...*domain.Word) *MockWordStore {
	m := &MockWordStore{Words: make(map[int64]*domain.Word), NextID: 1}
	for _, w := range words {
		m.Words[w.ID] = w
		if w.ID >= m.NextID {
			m.NextID = w.ID + 1
		}
	}
	return m
}

var _ store.WordStore = (*MockWordStore)(nil)

// CreateMultiple implements the WordStore interface
func (m *MockWordStore) CreateMultiple(ctx context.Context, words []*domain.Word) error {
	if m.CreateMultipleFn != nil {
		return m.CreateMultipleFn(ctx, words)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Words == nil {
		m.Words = make(map[int64]*domain.Word)
	}
	for _, w := range words {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	for _, w := range words {
		if m.NextID == 0 {
			m.NextID = 1
		}
		w.ID = m.NextID
		m.NextID++
		m.Words[w.ID] = w
	}
	return nil
}

// GetByID implements the WordStore interface
func (m *MockWordStore) GetByID(ctx context.Context, id int64) (*domain.Word, error) {
	m.mu.Lock()
	m.GetByIDs = append(m.GetByIDs, id)
	m.mu.Unlock()

	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.Words[id]
	if !ok {
		return nil, store.ErrWordNotFound
	}
	return w, nil
}

// Count implements the WordStore interface
func (m *MockWordStore) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Words), nil
}

// ListUnstudied implements the WordStore interface.
// The default implementation returns no words.
func (m *MockWordStore) ListUnstudied(ctx context.Context, learnerID uuid.UUID, limit int) ([]*domain.Word, error) {
	if m.ListUnstudiedFn != nil {
		return m.ListUnstudiedFn(ctx, learnerID, limit)
	}
	return []*domain.Word{}, nil
}

// WithTx implements the WordStore interface and returns the mock itself
func (m *MockWordStore) WithTx(tx *sql.Tx) store.WordStore {
	m.mu.Lock()
	m.WithTxCalls++
	m.mu.Unlock()
	return m
}
