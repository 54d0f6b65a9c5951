package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/store"
)

// recordRow is the stored form of a domain.ReviewRecord.
type recordRow struct {
	LearnerID    string         `db:"learner_id"`
	WordID       int64          `db:"word_id"`
	StudyCount   int            `db:"study_count"`
	CorrectCount int            `db:"correct_count"`
	LastStudied  sql.NullString `db:"last_studied"`
	NextReview   sql.NullString `db:"next_review"`
	IntervalDays float64        `db:"interval_days"`
	EaseFactor   float64        `db:"ease_factor"`
	Status       string         `db:"status"`
	CreatedAt    string         `db:"created_at"`
	UpdatedAt    string         `db:"updated_at"`
}

func (r recordRow) toDomain() (*domain.ReviewRecord, error) {
	learnerID, err := uuid.Parse(r.LearnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid stored learner ID %q: %w", r.LearnerID, err)
	}

	record := &domain.ReviewRecord{
		LearnerID:    learnerID,
		WordID:       r.WordID,
		StudyCount:   r.StudyCount,
		CorrectCount: r.CorrectCount,
		IntervalDays: r.IntervalDays,
		EaseFactor:   r.EaseFactor,
		Status:       domain.Status(r.Status),
	}

	if record.LastStudied, err = parseNullTime(r.LastStudied); err != nil {
		return nil, err
	}
	if record.NextReview, err = parseNullTime(r.NextReview); err != nil {
		return nil, err
	}
	if record.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return nil, err
	}
	if record.UpdatedAt, err = parseTime(r.UpdatedAt); err != nil {
		return nil, err
	}

	return record, nil
}

// dueRow is a record joined with its word; word columns carry a w_ prefix.
type dueRow struct {
	recordRow
	WID        int64  `db:"w_id"`
	WTerm      string `db:"w_term"`
	WPhonetic  string `db:"w_phonetic"`
	WMeaning   string `db:"w_meaning"`
	WExample   string `db:"w_example"`
	WCategory  string `db:"w_category"`
	WCreatedAt string `db:"w_created_at"`
}

// SQLiteReviewRecordStore implements the store.ReviewRecordStore interface on SQLite.
type SQLiteReviewRecordStore struct {
	db     sqlx.ExtContext
	logger *slog.Logger
}

// NewSQLiteReviewRecordStore creates a ReviewRecordStore backed by db, which
// may be a *sqlx.DB or a *sqlx.Tx. If logger is nil, a default logger will be used.
func NewSQLiteReviewRecordStore(db sqlx.ExtContext, logger *slog.Logger) *SQLiteReviewRecordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteReviewRecordStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_record_store")),
	}
}

var _ store.ReviewRecordStore = (*SQLiteReviewRecordStore)(nil)

// Get implements store.ReviewRecordStore.Get
func (s *SQLiteReviewRecordStore) Get(ctx context.Context, key domain.RecordKey) (*domain.ReviewRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row recordRow
	err := sqlx.GetContext(ctx, s.db, &row,
		`SELECT * FROM review_records WHERE learner_id = ? AND word_id = ?`,
		key.LearnerID.String(), key.WordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("review record not found",
				slog.String("learner_id", key.LearnerID.String()),
				slog.Int64("word_id", key.WordID))
			return nil, store.ErrReviewRecordNotFound
		}
		log.Error("failed to get review record",
			slog.String("error", err.Error()),
			slog.String("learner_id", key.LearnerID.String()),
			slog.Int64("word_id", key.WordID))
		return nil, MapError(err)
	}

	return row.toDomain()
}

// GetForUpdate implements store.ReviewRecordStore.GetForUpdate.
// SQLite has no row locks; transactions opened on a DSN from DSN already
// hold the database write lock, which serializes every key.
func (s *SQLiteReviewRecordStore) GetForUpdate(
	ctx context.Context,
	key domain.RecordKey,
) (*domain.ReviewRecord, error) {
	return s.Get(ctx, key)
}

// Upsert implements store.ReviewRecordStore.Upsert
func (s *SQLiteReviewRecordStore) Upsert(ctx context.Context, record *domain.ReviewRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		log.Warn("review record validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("learner_id", record.LearnerID.String()),
			slog.Int64("word_id", record.WordID))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO review_records (
			learner_id, word_id, study_count, correct_count, last_studied, next_review,
			interval_days, ease_factor, status, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (learner_id, word_id) DO UPDATE SET
			study_count   = excluded.study_count,
			correct_count = excluded.correct_count,
			last_studied  = excluded.last_studied,
			next_review   = excluded.next_review,
			interval_days = excluded.interval_days,
			ease_factor   = excluded.ease_factor,
			status        = excluded.status,
			updated_at    = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		record.LearnerID.String(),
		record.WordID,
		record.StudyCount,
		record.CorrectCount,
		formatNullTime(record.LastStudied),
		formatNullTime(record.NextReview),
		record.IntervalDays,
		record.EaseFactor,
		string(record.Status),
		formatTime(record.CreatedAt),
		formatTime(record.UpdatedAt),
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("review record references unknown word",
				slog.Int64("word_id", record.WordID))
			return fmt.Errorf("%w: word %d", store.ErrWordNotFound, record.WordID)
		}
		log.Error("failed to upsert review record",
			slog.String("error", err.Error()),
			slog.String("learner_id", record.LearnerID.String()),
			slog.Int64("word_id", record.WordID))
		return MapError(err)
	}

	log.Debug("review record saved",
		slog.String("learner_id", record.LearnerID.String()),
		slog.Int64("word_id", record.WordID),
		slog.String("status", string(record.Status)))
	return nil
}

// ListByLearner implements store.ReviewRecordStore.ListByLearner
func (s *SQLiteReviewRecordStore) ListByLearner(
	ctx context.Context,
	learnerID uuid.UUID,
) ([]*domain.ReviewRecord, error) {
	var rows []recordRow
	err := sqlx.SelectContext(ctx, s.db, &rows,
		`SELECT * FROM review_records WHERE learner_id = ? ORDER BY word_id`,
		learnerID.String())
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list review records",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, MapError(err)
	}

	records := make([]*domain.ReviewRecord, 0, len(rows))
	for _, row := range rows {
		r, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, nil
}

// ListDue implements store.ReviewRecordStore.ListDue
func (s *SQLiteReviewRecordStore) ListDue(
	ctx context.Context,
	learnerID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.WordProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		return []*domain.WordProgress{}, nil
	}

	query := `
		SELECT r.*,
			w.id AS w_id, w.term AS w_term, w.phonetic AS w_phonetic, w.meaning AS w_meaning,
			w.example AS w_example, w.category AS w_category, w.created_at AS w_created_at
		FROM review_records r
		JOIN words w ON w.id = r.word_id
		WHERE r.learner_id = ?
		  AND r.next_review IS NOT NULL
		  AND r.next_review <= ?
		ORDER BY r.next_review ASC, r.word_id ASC
		LIMIT ?
	`

	var rows []dueRow
	if err := sqlx.SelectContext(ctx, s.db, &rows, query, learnerID.String(), formatTime(now), limit); err != nil {
		log.Error("failed to list due review records",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, MapError(err)
	}

	due := make([]*domain.WordProgress, 0, len(rows))
	for _, row := range rows {
		record, err := row.recordRow.toDomain()
		if err != nil {
			return nil, err
		}
		word, err := wordRow{
			ID:        row.WID,
			Term:      row.WTerm,
			Phonetic:  row.WPhonetic,
			Meaning:   row.WMeaning,
			Example:   row.WExample,
			Category:  row.WCategory,
			CreatedAt: row.WCreatedAt,
		}.toDomain()
		if err != nil {
			return nil, err
		}
		due = append(due, &domain.WordProgress{Word: word, Record: record})
	}

	log.Debug("listed due review records",
		slog.String("learner_id", learnerID.String()),
		slog.Int("count", len(due)))
	return due, nil
}

// DeleteByLearner implements store.ReviewRecordStore.DeleteByLearner
func (s *SQLiteReviewRecordStore) DeleteByLearner(ctx context.Context, learnerID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM review_records WHERE learner_id = ?`, learnerID.String())
	if err != nil {
		log.Error("failed to delete review records",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return 0, MapError(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info("deleted review records",
		slog.String("learner_id", learnerID.String()),
		slog.Int64("count", n))
	return n, nil
}

// WithTx implements store.ReviewRecordStore.WithTx
func (s *SQLiteReviewRecordStore) WithTx(tx *sql.Tx) store.ReviewRecordStore {
	return &SQLiteReviewRecordStore{
		db:     wrapTx(tx),
		logger: s.logger,
	}
}
