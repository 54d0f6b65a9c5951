package study

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis/internal/domain"
)

// Service provides the study operations exposed by the API.
type Service interface {
	// SubmitRating applies one grading event for the learner and word and
	// returns the stored record.
	//
	// Returns:
	//   - ErrInvalidRating before any I/O when rating is outside AGAIN..EASY
	//   - ErrInvalidID when the learner or word ID is malformed
	//   - store.ErrWordNotFound when the word does not exist
	SubmitRating(ctx context.Context, learnerID uuid.UUID, wordID int64, rating domain.Rating) (*domain.ReviewRecord, error)

	// GetStudyBatch returns due words, most overdue first, followed by words
	// the learner has never graded. A limit of zero or less selects the
	// configured default; larger limits are capped at the configured maximum.
	GetStudyBatch(ctx context.Context, learnerID uuid.UUID, limit int) ([]domain.StudyItem, error)

	// GetStats summarizes the learner's progress over the whole vocabulary.
	GetStats(ctx context.Context, learnerID uuid.UUID) (*domain.StudyStats, error)

	// ResetLearner deletes every review record of the learner and returns
	// how many were deleted.
	ResetLearner(ctx context.Context, learnerID uuid.UUID) (int64, error)

	// AddWords stores the words atomically and sets their IDs.
	AddWords(ctx context.Context, words []*domain.Word) error

	// GetWord retrieves a single word.
	GetWord(ctx context.Context, id int64) (*domain.Word, error)
}

// Common error types for the study service
var (
	// ErrInvalidRating indicates a rating outside AGAIN..EASY.
	ErrInvalidRating = domain.ErrInvalidRating

	// ErrInvalidID indicates a nil learner ID or a non-positive word ID.
	ErrInvalidID = domain.ErrInvalidID

	// ErrNoWords indicates an AddWords call without words.
	ErrNoWords = errors.New("no words provided")
)

// ServiceError wraps errors from the study service with additional context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "submit_rating", "get_study_batch")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError returns a new ServiceError for operation.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
