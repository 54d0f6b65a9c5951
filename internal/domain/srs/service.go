package srs

import (
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
)

// Common errors
var (
	// ErrInvalidRating is returned for ratings outside AGAIN..EASY. Callers are
	// expected to validate ratings before invoking the scheduler.
	ErrInvalidRating = domain.ErrInvalidRating

	// ErrInvalidRecord wraps the validation error of a malformed input record.
	ErrInvalidRecord = errors.New("invalid review record")

	// ErrRecordKeyMismatch is returned when the current record belongs to another key.
	ErrRecordKeyMismatch = errors.New("review record does not match the requested key")
)

// Service defines the interface for SRS scheduling operations.
// Implementations are pure: they perform no I/O and are safe for concurrent use.
type Service interface {
	// ComputeNextState returns the record that results from grading the word
	// identified by key with rating at now. A nil current record means the
	// learner has never graded the word and a fresh record is assumed.
	ComputeNextState(
		key domain.RecordKey,
		current *domain.ReviewRecord,
		rating domain.Rating,
		now time.Time,
	) (*domain.ReviewRecord, error)

	// NewRecord returns the fresh record used when no history exists.
	NewRecord(key domain.RecordKey, now time.Time) (*domain.ReviewRecord, error)

	// Params returns a copy of the parameters the service schedules with.
	Params() Params
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() (Service, error) {
	return NewServiceWithParams(NewDefaultParams())
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params) (Service, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: params cannot be nil", ErrInvalidParams)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// Copy so later changes by the caller cannot alter scheduling
	p := *params
	return &defaultService{params: &p}, nil
}

// ComputeNextState implements the Service interface
func (s *defaultService) ComputeNextState(
	key domain.RecordKey,
	current *domain.ReviewRecord,
	rating domain.Rating,
	now time.Time,
) (*domain.ReviewRecord, error) {
	// Validate inputs
	if !rating.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRating, int(rating))
	}

	if current == nil {
		fresh, err := s.NewRecord(key, now)
		if err != nil {
			return nil, err
		}
		current = fresh
	} else {
		if current.Key() != key {
			return nil, ErrRecordKeyMismatch
		}
		if err := current.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
	}

	return calculateNextRecord(current, rating, now, s.params), nil
}

// NewRecord implements the Service interface
func (s *defaultService) NewRecord(key domain.RecordKey, now time.Time) (*domain.ReviewRecord, error) {
	record, err := domain.NewReviewRecord(key, s.params.InitialInterval, s.params.DefaultEaseFactor, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return record, nil
}

// Params implements the Service interface
func (s *defaultService) Params() Params {
	return *s.params
}
