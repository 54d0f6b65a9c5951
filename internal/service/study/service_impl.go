package study

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/domain/srs"
	studyplan "github.com/phrazzld/lexis/internal/domain/study"
	"github.com/phrazzld/lexis/internal/events"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/store"
	"golang.org/x/sync/errgroup"
)

// Default batch limits used when Config leaves them unset.
const (
	DefaultBatchLimit = 20
	MaxBatchLimit     = 100
)

// Config holds the batch limits of the service.
type Config struct {
	DefaultBatchLimit int
	MaxBatchLimit     int
}

// Option configures optional service dependencies.
type Option func(*serviceImpl)

// WithClock replaces the clock used to timestamp gradings and decide which
// records are due.
func WithClock(now func() time.Time) Option {
	return func(s *serviceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEmitter sets the emitter that receives events after each committed grading.
func WithEmitter(emitter events.EventEmitter) Option {
	return func(s *serviceImpl) {
		if emitter != nil {
			s.emitter = emitter
		}
	}
}

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	db         store.TxBeginner
	records    store.ReviewRecordStore
	words      store.WordStore
	srsService srs.Service
	emitter    events.EventEmitter
	cfg        Config
	now        func() time.Time
	logger     *slog.Logger
}

// NewService creates a study Service. db starts the transactions that the
// stores join through WithTx.
func NewService(
	db store.TxBeginner,
	records store.ReviewRecordStore,
	words store.WordStore,
	srsService srs.Service,
	cfg Config,
	logger *slog.Logger,
	opts ...Option,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if records == nil {
		panic("records cannot be nil")
	}
	if words == nil {
		panic("words cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	if cfg.DefaultBatchLimit <= 0 {
		cfg.DefaultBatchLimit = DefaultBatchLimit
	}
	if cfg.MaxBatchLimit <= 0 {
		cfg.MaxBatchLimit = MaxBatchLimit
	}
	if cfg.DefaultBatchLimit > cfg.MaxBatchLimit {
		cfg.DefaultBatchLimit = cfg.MaxBatchLimit
	}

	s := &serviceImpl{
		db:         db,
		records:    records,
		words:      words,
		srsService: srsService,
		emitter:    events.NopEmitter{},
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger.With(slog.String("component", "study_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitRating implements Service.SubmitRating
func (s *serviceImpl) SubmitRating(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID int64,
	rating domain.Rating,
) (*domain.ReviewRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !rating.Valid() {
		log.Warn("invalid rating",
			slog.String("learner_id", learnerID.String()),
			slog.Int64("word_id", wordID),
			slog.Int("rating", int(rating)))
		return nil, fmt.Errorf("%w: %d", ErrInvalidRating, int(rating))
	}

	key := domain.RecordKey{LearnerID: learnerID, WordID: wordID}
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}

	if _, err := s.words.GetByID(ctx, wordID); err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			return nil, err
		}
		return nil, NewServiceError("submit_rating", "failed to get word", err)
	}

	now := s.now()
	var previous domain.Status
	var updated *domain.ReviewRecord

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		records := s.records.WithTx(tx)

		current, err := records.GetForUpdate(ctx, key)
		switch {
		case errors.Is(err, store.ErrReviewRecordNotFound):
			current = nil
			previous = domain.StatusNew
		case err != nil:
			return fmt.Errorf("failed to get review record: %w", err)
		default:
			previous = current.Status
		}

		next, err := s.srsService.ComputeNextState(key, current, rating, now)
		if err != nil {
			log.Error("failed to compute next review state",
				slog.String("error", err.Error()),
				slog.String("learner_id", learnerID.String()),
				slog.Int64("word_id", wordID))
			return fmt.Errorf("failed to compute next state: %w", err)
		}

		if err := records.Upsert(ctx, next); err != nil {
			return fmt.Errorf("failed to save review record: %w", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			return nil, store.ErrWordNotFound
		}
		log.Error("failed to submit rating",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.Int64("word_id", wordID))
		return nil, NewServiceError("submit_rating", "failed to apply rating", err)
	}

	s.emitReview(ctx, log, updated, previous, rating)

	log.Debug("rating applied",
		slog.String("learner_id", learnerID.String()),
		slog.Int64("word_id", wordID),
		slog.String("rating", rating.String()),
		slog.String("status", string(updated.Status)),
		slog.Float64("interval_days", updated.IntervalDays),
		slog.Float64("ease_factor", updated.EaseFactor))

	return updated, nil
}

// emitReview publishes the events of a committed grading. Failures are
// logged only; the grading is already durable.
func (s *serviceImpl) emitReview(
	ctx context.Context,
	log *slog.Logger,
	record *domain.ReviewRecord,
	previous domain.Status,
	rating domain.Rating,
) {
	payload := events.ReviewPayload{
		LearnerID:      record.LearnerID,
		WordID:         record.WordID,
		Rating:         int(rating),
		PreviousStatus: string(previous),
		Status:         string(record.Status),
		IntervalDays:   record.IntervalDays,
		NextReview:     record.NextReview,
	}

	types := []string{events.TypeReviewRecorded}
	if record.Status == domain.StatusMastered && previous != domain.StatusMastered {
		types = append(types, events.TypeWordMastered)
	}

	for _, eventType := range types {
		event, err := events.NewEvent(eventType, payload)
		if err == nil {
			err = s.emitter.EmitEvent(ctx, event)
		}
		if err != nil {
			log.Warn("failed to emit study event",
				slog.String("error", err.Error()),
				slog.String("event_type", eventType),
				slog.Int64("word_id", record.WordID))
		}
	}
}

// GetStudyBatch implements Service.GetStudyBatch
func (s *serviceImpl) GetStudyBatch(
	ctx context.Context,
	learnerID uuid.UUID,
	limit int,
) ([]domain.StudyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if learnerID == uuid.Nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidID, domain.ErrEmptyRecordLearnerID)
	}

	limit = s.batchLimit(limit)
	now := s.now()

	var due []*domain.WordProgress
	var fresh []*domain.Word

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		due, err = s.records.ListDue(gctx, learnerID, now, limit)
		if err != nil {
			return fmt.Errorf("failed to list due records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		fresh, err = s.words.ListUnstudied(gctx, learnerID, limit)
		if err != nil {
			return fmt.Errorf("failed to list unstudied words: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load study batch",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, NewServiceError("get_study_batch", "failed to load candidates", err)
	}

	items := studyplan.ComposeBatch(due, fresh, limit, now)

	log.Debug("study batch composed",
		slog.String("learner_id", learnerID.String()),
		slog.Int("limit", limit),
		slog.Int("due", len(due)),
		slog.Int("items", len(items)))
	return items, nil
}

func (s *serviceImpl) batchLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.DefaultBatchLimit
	}
	if limit > s.cfg.MaxBatchLimit {
		return s.cfg.MaxBatchLimit
	}
	return limit
}

// GetStats implements Service.GetStats
func (s *serviceImpl) GetStats(ctx context.Context, learnerID uuid.UUID) (*domain.StudyStats, error) {
	if learnerID == uuid.Nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidID, domain.ErrEmptyRecordLearnerID)
	}

	var records []*domain.ReviewRecord
	var total int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.records.ListByLearner(gctx, learnerID)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.words.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load study stats",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, NewServiceError("get_stats", "failed to load progress", err)
	}

	stats := studyplan.Summarize(records, total, s.now())
	return &stats, nil
}

// ResetLearner implements Service.ResetLearner
func (s *serviceImpl) ResetLearner(ctx context.Context, learnerID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if learnerID == uuid.Nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidID, domain.ErrEmptyRecordLearnerID)
	}

	n, err := s.records.DeleteByLearner(ctx, learnerID)
	if err != nil {
		log.Error("failed to reset learner",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return 0, NewServiceError("reset_learner", "failed to delete review records", err)
	}

	log.Info("learner reset",
		slog.String("learner_id", learnerID.String()),
		slog.Int64("deleted", n))
	return n, nil
}

// AddWords implements Service.AddWords
func (s *serviceImpl) AddWords(ctx context.Context, words []*domain.Word) error {
	if len(words) == 0 {
		return ErrNoWords
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.words.WithTx(tx).CreateMultiple(ctx, words)
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			return err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to add words",
			slog.String("error", err.Error()),
			slog.Int("count", len(words)))
		return NewServiceError("add_words", "failed to save words", err)
	}

	return nil
}

// GetWord implements Service.GetWord
func (s *serviceImpl) GetWord(ctx context.Context, id int64) (*domain.Word, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidID, domain.ErrInvalidRecordWordID)
	}

	word, err := s.words.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			return nil, err
		}
		return nil, NewServiceError("get_word", "failed to get word", err)
	}
	return word, nil
}
