package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/store"
)

const recordColumns = `r.learner_id, r.word_id, r.study_count, r.correct_count, r.last_studied,
	r.next_review, r.interval_days, r.ease_factor, r.status, r.created_at, r.updated_at`

// PostgresReviewRecordStore implements the store.ReviewRecordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewRecordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewRecordStore creates a new PostgreSQL implementation of the ReviewRecordStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReviewRecordStore(db store.DBTX, logger *slog.Logger) *PostgresReviewRecordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewRecordStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_record_store")),
	}
}

// Ensure PostgresReviewRecordStore implements store.ReviewRecordStore interface
var _ store.ReviewRecordStore = (*PostgresReviewRecordStore)(nil)

// Get implements store.ReviewRecordStore.Get
func (s *PostgresReviewRecordStore) Get(ctx context.Context, key domain.RecordKey) (*domain.ReviewRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM review_records r
		WHERE r.learner_id = $1 AND r.word_id = $2`

	return s.getOne(ctx, query, key)
}

// GetForUpdate implements store.ReviewRecordStore.GetForUpdate.
// The advisory lock is held until the transaction ends and also covers keys
// that have no row yet.
func (s *PostgresReviewRecordStore) GetForUpdate(
	ctx context.Context,
	key domain.RecordKey,
) (*domain.ReviewRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1::text), hashtext($2::text))`,
		key.LearnerID.String(),
		strconv.FormatInt(key.WordID, 10),
	)
	if err != nil {
		log.Error("failed to acquire review record lock",
			slog.String("error", err.Error()),
			slog.String("learner_id", key.LearnerID.String()),
			slog.Int64("word_id", key.WordID))
		return nil, MapError(err)
	}

	query := `SELECT ` + recordColumns + ` FROM review_records r
		WHERE r.learner_id = $1 AND r.word_id = $2
		FOR UPDATE`

	return s.getOne(ctx, query, key)
}

func (s *PostgresReviewRecordStore) getOne(
	ctx context.Context,
	query string,
	key domain.RecordKey,
) (*domain.ReviewRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, key.LearnerID, key.WordID))
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

	return record, nil
}

// Upsert implements store.ReviewRecordStore.Upsert
func (s *PostgresReviewRecordStore) Upsert(ctx context.Context, record *domain.ReviewRecord) error {
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (learner_id, word_id) DO UPDATE SET
			study_count   = EXCLUDED.study_count,
			correct_count = EXCLUDED.correct_count,
			last_studied  = EXCLUDED.last_studied,
			next_review   = EXCLUDED.next_review,
			interval_days = EXCLUDED.interval_days,
			ease_factor   = EXCLUDED.ease_factor,
			status        = EXCLUDED.status,
			updated_at    = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		record.LearnerID,
		record.WordID,
		record.StudyCount,
		record.CorrectCount,
		nullTime(record.LastStudied),
		nullTime(record.NextReview),
		record.IntervalDays,
		record.EaseFactor,
		string(record.Status),
		record.CreatedAt,
		record.UpdatedAt,
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
func (s *PostgresReviewRecordStore) ListByLearner(
	ctx context.Context,
	learnerID uuid.UUID,
) ([]*domain.ReviewRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + recordColumns + ` FROM review_records r
		WHERE r.learner_id = $1
		ORDER BY r.word_id`

	rows, err := s.db.QueryContext(ctx, query, learnerID)
	if err != nil {
		log.Error("failed to list review records",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	records := []*domain.ReviewRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, MapError(err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return records, nil
}

// ListDue implements store.ReviewRecordStore.ListDue
func (s *PostgresReviewRecordStore) ListDue(
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
		SELECT ` + recordColumns + `, ` + wordColumns + `
		FROM review_records r
		JOIN words w ON w.id = r.word_id
		WHERE r.learner_id = $1
		  AND r.next_review IS NOT NULL
		  AND r.next_review <= $2
		ORDER BY r.next_review ASC, r.word_id ASC
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, learnerID, now, limit)
	if err != nil {
		log.Error("failed to list due review records",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	due := make([]*domain.WordProgress, 0, limit)
	for rows.Next() {
		var r domain.ReviewRecord
		var w domain.Word
		var lastStudied, nextReview sql.NullTime
		var status string

		err := rows.Scan(
			&r.LearnerID, &r.WordID, &r.StudyCount, &r.CorrectCount, &lastStudied,
			&nextReview, &r.IntervalDays, &r.EaseFactor, &status, &r.CreatedAt, &r.UpdatedAt,
			&w.ID, &w.Term, &w.Phonetic, &w.Meaning, &w.Example, &w.Category, &w.CreatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}
		applyRecordColumns(&r, lastStudied, nextReview, status)
		w.CreatedAt = w.CreatedAt.UTC()

		due = append(due, &domain.WordProgress{Word: &w, Record: &r})
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("listed due review records",
		slog.String("learner_id", learnerID.String()),
		slog.Int("count", len(due)))
	return due, nil
}

// DeleteByLearner implements store.ReviewRecordStore.DeleteByLearner
func (s *PostgresReviewRecordStore) DeleteByLearner(ctx context.Context, learnerID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM review_records WHERE learner_id = $1`, learnerID)
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
func (s *PostgresReviewRecordStore) WithTx(tx *sql.Tx) store.ReviewRecordStore {
	return &PostgresReviewRecordStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanRecord(row rowScanner) (*domain.ReviewRecord, error) {
	var r domain.ReviewRecord
	var lastStudied, nextReview sql.NullTime
	var status string

	err := row.Scan(
		&r.LearnerID, &r.WordID, &r.StudyCount, &r.CorrectCount, &lastStudied,
		&nextReview, &r.IntervalDays, &r.EaseFactor, &status, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	applyRecordColumns(&r, lastStudied, nextReview, status)
	return &r, nil
}

func applyRecordColumns(r *domain.ReviewRecord, lastStudied, nextReview sql.NullTime, status string) {
	r.Status = domain.Status(status)
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	if lastStudied.Valid {
		t := lastStudied.Time.UTC()
		r.LastStudied = &t
	}
	if nextReview.Valid {
		t := nextReview.Time.UTC()
		r.NextReview = &t
	}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
