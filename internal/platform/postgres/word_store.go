package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/store"
)

const wordColumns = `w.id, w.term, w.phonetic, w.meaning, w.example, w.category, w.created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the WordStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

// CreateMultiple implements store.WordStore.CreateMultiple.
// Every word is validated before anything is written. Run it inside a
// transaction to make the batch atomic.
func (s *PostgresWordStore) CreateMultiple(ctx context.Context, words []*domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(words) == 0 {
		return nil
	}

	for i, w := range words {
		if err := w.Validate(); err != nil {
			log.Warn("word validation failed during create",
				slog.String("error", err.Error()),
				slog.Int("index", i))
			return fmt.Errorf("%w: word %d: %w", store.ErrInvalidEntity, i, err)
		}
	}

	query := `
		INSERT INTO words (term, phonetic, meaning, example, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	for _, w := range words {
		err := s.db.QueryRowContext(ctx, query,
			w.Term,
			w.Phonetic,
			w.Meaning,
			w.Example,
			w.Category,
			w.CreatedAt,
		).Scan(&w.ID)
		if err != nil {
			log.Error("failed to create word",
				slog.String("error", err.Error()),
				slog.String("term", w.Term))
			return MapError(err)
		}
	}

	log.Info("words created successfully", slog.Int("count", len(words)))
	return nil
}

// GetByID implements store.WordStore.GetByID
func (s *PostgresWordStore) GetByID(ctx context.Context, id int64) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + wordColumns + ` FROM words w WHERE w.id = $1`

	word, err := scanWord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word not found", slog.Int64("word_id", id))
			return nil, store.ErrWordNotFound
		}
		log.Error("failed to get word by ID",
			slog.String("error", err.Error()),
			slog.Int64("word_id", id))
		return nil, MapError(err)
	}

	return word, nil
}

// Count implements store.WordStore.Count
func (s *PostgresWordStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM words`).Scan(&n); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count words",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	return n, nil
}

// ListUnstudied implements store.WordStore.ListUnstudied
func (s *PostgresWordStore) ListUnstudied(ctx context.Context, learnerID uuid.UUID, limit int) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		return []*domain.Word{}, nil
	}

	query := `
		SELECT ` + wordColumns + `
		FROM words w
		WHERE NOT EXISTS (
			SELECT 1 FROM review_records r
			WHERE r.word_id = w.id AND r.learner_id = $1
		)
		ORDER BY w.created_at ASC, w.id ASC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, learnerID, limit)
	if err != nil {
		log.Error("failed to list unstudied words",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	words := make([]*domain.Word, 0, limit)
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, MapError(err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("listed unstudied words",
		slog.String("learner_id", learnerID.String()),
		slog.Int("count", len(words)))
	return words, nil
}

// WithTx implements store.WordStore.WithTx
func (s *PostgresWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &PostgresWordStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanWord(row rowScanner) (*domain.Word, error) {
	var w domain.Word
	if err := row.Scan(&w.ID, &w.Term, &w.Phonetic, &w.Meaning, &w.Example, &w.Category, &w.CreatedAt); err != nil {
		return nil, err
	}
	w.CreatedAt = w.CreatedAt.UTC()
	return &w, nil
}
