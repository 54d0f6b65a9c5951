package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/service/study"
)

// MockStudyService implements study.Service for testing
type MockStudyService struct {
	// Custom behavior functions
	SubmitRatingFn  func(ctx context.Context, learnerID uuid.UUID, wordID int64, rating domain.Rating) (*domain.ReviewRecord, error)
	GetStudyBatchFn func(ctx context.Context, learnerID uuid.UUID, limit int) ([]domain.StudyItem, error)
	GetStatsFn      func(ctx context.Context, learnerID uuid.UUID) (*domain.StudyStats, error)
	ResetLearnerFn  func(ctx context.Context, learnerID uuid.UUID) (int64, error)
	AddWordsFn      func(ctx context.Context, words []*domain.Word) error
	GetWordFn       func(ctx context.Context, id int64) (*domain.Word, error)

	// Default response values
	Record *domain.ReviewRecord
	Items  []domain.StudyItem
	Stats  *domain.StudyStats
	Word   *domain.Word
	Err    error

	// Call tracking for verification
	SubmitRatingCalls struct {
		mu         sync.Mutex
		Count      int
		LearnerIDs []uuid.UUID
		WordIDs    []int64
		Ratings    []domain.Rating
	}

	GetStudyBatchCalls struct {
		mu     sync.Mutex
		Count  int
		Limits []int
	}
}

var _ study.Service = (*MockStudyService)(nil)

// SubmitRating implements the study.Service interface
func (m *MockStudyService) SubmitRating(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID int64,
	rating domain.Rating,
) (*domain.ReviewRecord, error) {
	m.SubmitRatingCalls.mu.Lock()
	m.SubmitRatingCalls.Count++
	m.SubmitRatingCalls.LearnerIDs = append(m.SubmitRatingCalls.LearnerIDs, learnerID)
	m.SubmitRatingCalls.WordIDs = append(m.SubmitRatingCalls.WordIDs, wordID)
	m.SubmitRatingCalls.Ratings = append(m.SubmitRatingCalls.Ratings, rating)
	m.SubmitRatingCalls.mu.Unlock()

	if m.SubmitRatingFn != nil {
		return m.SubmitRatingFn(ctx, learnerID, wordID, rating)
	}
	return m.Record, m.Err
}

// GetStudyBatch implements the study.Service interface
func (m *MockStudyService) GetStudyBatch(ctx context.Context, learnerID uuid.UUID, limit int) ([]domain.StudyItem, error) {
	m.GetStudyBatchCalls.mu.Lock()
	m.GetStudyBatchCalls.Count++
	m.GetStudyBatchCalls.Limits = append(m.GetStudyBatchCalls.Limits, limit)
	m.GetStudyBatchCalls.mu.Unlock()

	if m.GetStudyBatchFn != nil {
		return m.GetStudyBatchFn(ctx, learnerID, limit)
	}
	return m.Items, m.Err
}

// GetStats implements the study.Service interface
func (m *MockStudyService) GetStats(ctx context.Context, learnerID uuid.UUID) (*domain.StudyStats, error) {
	if m.GetStatsFn != nil {
		return m.GetStatsFn(ctx, learnerID)
	}
	return m.Stats, m.Err
}

// ResetLearner implements the study.Service interface
func (m *MockStudyService) ResetLearner(ctx context.Context, learnerID uuid.UUID) (int64, error) {
	if m.ResetLearnerFn != nil {
		return m.ResetLearnerFn(ctx, learnerID)
	}
	return 0, m.Err
}

// AddWords implements the study.Service interface
func (m *MockStudyService) AddWords(ctx context.Context, words []*domain.Word) error {
	if m.AddWordsFn != nil {
		return m.AddWordsFn(ctx, words)
	}
	return m.Err
}

// GetWord implements the study.Service interface
func (m *MockStudyService) GetWord(ctx context.Context, id int64) (*domain.Word, error) {
	if m.GetWordFn != nil {
		return m.GetWordFn(ctx, id)
	}
	return m.Word, m.Err
}
