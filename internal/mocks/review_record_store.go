package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/store"
)

// MockReviewRecordStore implements store.ReviewRecordStore for testing.
// Without function fields it behaves like an in-memory store keyed by RecordKey.
type MockReviewRecordStore struct {
	// Function fields for customizable behavior
	GetFn             func(ctx context.Context, key domain.RecordKey) (*domain.ReviewRecord, error)
	GetForUpdateFn    func(ctx context.Context, key domain.RecordKey) (*domain.ReviewRecord, error)
	UpsertFn          func(ctx context.Context, record *domain.ReviewRecord) error
	ListByLearnerFn   func(ctx context.Context, learnerID uuid.UUID) ([]*domain.ReviewRecord, error)
	ListDueFn         func(ctx context.Context, learnerID uuid.UUID, now time.Time, limit int) ([]*domain.WordProgress, error)
	DeleteByLearnerFn func(ctx context.Context, learnerID uuid.UUID) (int64, error)

	// Data for default implementation
	Records map[domain.RecordKey]*domain.ReviewRecord

	// Call tracking for verification
	mu                 sync.Mutex
	GetForUpdateCalls  []domain.RecordKey
	UpsertCalls        []*domain.ReviewRecord
	WithTxCalls        int
	DeleteByLearnerIDs []uuid.UUID
}

// NewMockReviewRecordStore creates a new mock store with initialized defaults
func NewMockReviewRecordStore() *MockReviewRecordStore {
	return &MockReviewRecordStore{
		Records: make(map[domain.RecordKey]*domain.ReviewRecord),
	}
}

var _ store.ReviewRecordStore = (*MockReviewRecordStore)(nil)

// Get implements the ReviewRecordStore interface
func (m *MockReviewRecordStore) Get(ctx context.Context, key domain.RecordKey) (*domain.ReviewRecord, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	return m.lookup(key)
}

// GetForUpdate implements the ReviewRecordStore interface
func (m *MockReviewRecordStore) GetForUpdate(ctx context.Context, key domain.RecordKey) (*domain.ReviewRecord, error) {
	m.mu.Lock()
	m.GetForUpdateCalls = append(m.GetForUpdateCalls, key)
	m.mu.Unlock()

	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, key)
	}
	return m.lookup(key)
}

func (m *MockReviewRecordStore) lookup(key domain.RecordKey) (*domain.ReviewRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.Records[key]
	if !ok {
		return nil, store.ErrReviewRecordNotFound
	}
	return r.Clone(), nil
}

// Upsert implements the ReviewRecordStore interface
func (m *MockReviewRecordStore) Upsert(ctx context.Context, record *domain.ReviewRecord) error {
	m.mu.Lock()
	m.UpsertCalls = append(m.UpsertCalls, record)
	m.mu.Unlock()

	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, record)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Records == nil {
		m.Records = make(map[domain.RecordKey]*domain.ReviewRecord)
	}
	m.Records[record.Key()] = record.Clone()
	return nil
}

// ListByLearner implements the ReviewRecordStore interface
func (m *MockReviewRecordStore) ListByLearner(ctx context.Context, learnerID uuid.UUID) ([]*domain.ReviewRecord, error) {
	if m.ListByLearnerFn != nil {
		return m.ListByLearnerFn(ctx, learnerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	records := []*domain.ReviewRecord{}
	for key, r := range m.Records {
		if key.LearnerID == learnerID {
			records = append(records, r.Clone())
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].WordID < records[j].WordID })
	return records, nil
}

// ListDue implements the ReviewRecordStore interface.
// The default implementation has no words and returns records with a nil Word.
func (m *MockReviewRecordStore) ListDue(
	ctx context.Context,
	learnerID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.WordProgress, error) {
	if m.ListDueFn != nil {
		return m.ListDueFn(ctx, learnerID, now, limit)
	}
	return []*domain.WordProgress{}, nil
}

// DeleteByLearner implements the ReviewRecordStore interface
func (m *MockReviewRecordStore) DeleteByLearner(ctx context.Context, learnerID uuid.UUID) (int64, error) {
	m.mu.Lock()
	m.DeleteByLearnerIDs = append(m.DeleteByLearnerIDs, learnerID)
	m.mu.Unlock()

	if m.DeleteByLearnerFn != nil {
		return m.DeleteByLearnerFn(ctx, learnerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for key := range m.Records {
		if key.LearnerID == learnerID {
			delete(m.Records, key)
			n++
		}
	}
	return n, nil
}

// WithTx implements the ReviewRecordStore interface and returns the mock itself
func (m *MockReviewRecordStore) WithTx(tx *sql.Tx) store.ReviewRecordStore {
	m.mu.Lock()
	m.WithTxCalls++
	m.mu.Unlock()
	return m
}
