package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis/internal/domain"
)

// WordStore persists the vocabulary shared by all learners.
type WordStore interface {
	// CreateMultiple saves the words in one statement batch and sets their IDs.
	// Returns ErrInvalidEntity if any word fails validation; nothing is saved then.
	CreateMultiple(ctx context.Context, words []*domain.Word) error

	// GetByID retrieves a word. Returns ErrWordNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Word, error)

	// Count returns the number of words.
	Count(ctx context.Context) (int, error)

	// ListUnstudied returns up to limit words the learner has no record for,
	// in creation order (created_at, then id).
	ListUnstudied(ctx context.Context, learnerID uuid.UUID, limit int) ([]*domain.Word, error)

	// WithTx returns a store that runs its queries in tx.
	WithTx(tx *sql.Tx) WordStore
}
