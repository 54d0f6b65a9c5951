package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/store"
)

// wordRow is the stored form of a domain.Word.
type wordRow struct {
	ID        int64  `db:"id"`
	Term      string `db:"term"`
	Phonetic  string `db:"phonetic"`
	Meaning   string `db:"meaning"`
	Example   string `db:"example"`
	Category  string `db:"category"`
	CreatedAt string `db:"created_at"`
}

func (r wordRow) toDomain() (*domain.Word, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &domain.Word{
		ID:        r.ID,
		Term:      r.Term,
		Phonetic:  r.Phonetic,
		Meaning:   r.Meaning,
		Example:   r.Example,
		Category:  r.Category,
		CreatedAt: created,
	}, nil
}

// SQLiteWordStore implements the store.WordStore interface on SQLite.
type SQLiteWordStore struct {
	db     sqlx.ExtContext
	logger *slog.Logger
}

// NewSQLiteWordStore creates a WordStore backed by db, which may be a
// *sqlx.DB or a *sqlx.Tx. If logger is nil, a default logger will be used.
func NewSQLiteWordStore(db sqlx.ExtContext, logger *slog.Logger) *SQLiteWordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

var _ store.WordStore = (*SQLiteWordStore)(nil)

// CreateMultiple implements store.WordStore.CreateMultiple
func (s *SQLiteWordStore) CreateMultiple(ctx context.Context, words []*domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

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
		VALUES (?, ?, ?, ?, ?, ?)
	`

	for _, w := range words {
		result, err := s.db.ExecContext(ctx, query,
			w.Term, w.Phonetic, w.Meaning, w.Example, w.Category, formatTime(w.CreatedAt))
		if err != nil {
			log.Error("failed to create word",
				slog.String("error", err.Error()),
				slog.String("term", w.Term))
			return MapError(err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert ID: %w", err)
		}
		w.ID = id
	}

	if len(words) > 0 {
		log.Info("words created successfully", slog.Int("count", len(words)))
	}
	return nil
}

// GetByID implements store.WordStore.GetByID
func (s *SQLiteWordStore) GetByID(ctx context.Context, id int64) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row wordRow
	err := sqlx.GetContext(ctx, s.db, &row, `SELECT * FROM words WHERE id = ?`, id)
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

	return row.toDomain()
}

// Count implements store.WordStore.Count
func (s *SQLiteWordStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, s.db, &n, `SELECT COUNT(*) FROM words`); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count words",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	return n, nil
}

// ListUnstudied implements store.WordStore.ListUnstudied
func (s *SQLiteWordStore) ListUnstudied(ctx context.Context, learnerID uuid.UUID, limit int) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		return []*domain.Word{}, nil
	}

	query := `
		SELECT w.* FROM words w
		WHERE NOT EXISTS (
			SELECT 1 FROM review_records r
			WHERE r.word_id = w.id AND r.learner_id = ?
		)
		ORDER BY w.created_at ASC, w.id ASC
		LIMIT ?
	`

	var rows []wordRow
	if err := sqlx.SelectContext(ctx, s.db, &rows, query, learnerID.String(), limit); err != nil {
		log.Error("failed to list unstudied words",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, MapError(err)
	}

	words := make([]*domain.Word, 0, len(rows))
	for _, row := range rows {
		w, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, nil
}

// WithTx implements store.WordStore.WithTx
func (s *SQLiteWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &SQLiteWordStore{
		db:     wrapTx(tx),
		logger: s.logger,
	}
}
