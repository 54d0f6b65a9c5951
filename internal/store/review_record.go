package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis/internal/domain"
)

// ReviewRecordStore persists the review record of each (learner, word) pair.
// At most one record exists per pair.
type ReviewRecordStore interface {
	// Get retrieves the record for key.
	// Returns ErrReviewRecordNotFound if the learner has never graded the word.
	// Get takes no lock; use GetForUpdate before writing.
	Get(ctx context.Context, key domain.RecordKey) (*domain.ReviewRecord, error)

	// GetForUpdate retrieves the record for key and locks it, or the key if no
	// row exists yet, until the surrounding transaction ends. It must be called
	// on a store bound to a transaction with WithTx.
	// Returns ErrReviewRecordNotFound if the learner has never graded the word.
	GetForUpdate(ctx context.Context, key domain.RecordKey) (*domain.ReviewRecord, error)

	// Upsert inserts the record or replaces the existing one for its key.
	// Returns ErrInvalidEntity wrapping the validation error for malformed records
	// and ErrWordNotFound if the word does not exist.
	Upsert(ctx context.Context, record *domain.ReviewRecord) error

	// ListByLearner returns all records of the learner ordered by word ID.
	ListByLearner(ctx context.Context, learnerID uuid.UUID) ([]*domain.ReviewRecord, error)

	// ListDue returns up to limit records with a next review at or before now,
	// joined with their words, ordered by next review then word ID.
	ListDue(ctx context.Context, learnerID uuid.UUID, now time.Time, limit int) ([]*domain.WordProgress, error)

	// DeleteByLearner removes every record of the learner and returns how many were removed.
	DeleteByLearner(ctx context.Context, learnerID uuid.UUID) (int64, error)

	// WithTx returns a store that runs its queries in tx.
	WithTx(tx *sql.Tx) ReviewRecordStore
}
