package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle stage of a review record.
type Status string

// Possible status values
const (
	StatusNew      Status = "new"
	StatusLearning Status = "learning"
	StatusReview   Status = "review"
	StatusMastered Status = "mastered"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusLearning, StatusReview, StatusMastered:
		return true
	default:
		return false
	}
}

// Common validation errors for ReviewRecord
var (
	ErrEmptyRecordLearnerID  = errors.New("review record learner ID cannot be empty")
	ErrInvalidRecordWordID   = errors.New("review record word ID must be positive")
	ErrNegativeCount         = errors.New("study and correct counts cannot be negative")
	ErrCorrectExceedsStudied = errors.New("correct count cannot exceed study count")
	ErrInvalidInterval       = errors.New("interval must be greater than 0")
	ErrInvalidEaseFactor     = errors.New("ease factor must be greater than 1.0")
	ErrNewRecordStudied      = errors.New("a record with status new cannot have study history")
)

// RecordKey identifies the review record of one learner for one word.
type RecordKey struct {
	LearnerID uuid.UUID `json:"learner_id"`
	WordID    int64     `json:"word_id"`
}

// Validate checks that both parts of the key are set.
func (k RecordKey) Validate() error {
	if k.LearnerID == uuid.Nil {
		return ErrEmptyRecordLearnerID
	}
	if k.WordID <= 0 {
		return ErrInvalidRecordWordID
	}
	return nil
}

// ReviewRecord tracks the spaced repetition state of one word for one learner.
// A record is created by the first grading event and replaced on every
// subsequent one; only the scheduler decides its status.
type ReviewRecord struct {
	LearnerID    uuid.UUID  `json:"learner_id"`
	WordID       int64      `json:"word_id"`
	StudyCount   int        `json:"study_count"`   // Total grading events
	CorrectCount int        `json:"correct_count"` // Grading events rated HARD or better
	LastStudied  *time.Time `json:"last_studied"`
	NextReview   *time.Time `json:"next_review"`
	IntervalDays float64    `json:"interval_days"` // Current spacing in days
	EaseFactor   float64    `json:"ease_factor"`   // Interval growth multiplier (1.3-2.5)
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewReviewRecord returns the state of a word the learner has never graded.
func NewReviewRecord(key RecordKey, intervalDays, easeFactor float64, now time.Time) (*ReviewRecord, error) {
	record := &ReviewRecord{
		LearnerID:    key.LearnerID,
		WordID:       key.WordID,
		IntervalDays: intervalDays,
		EaseFactor:   easeFactor,
		Status:       StatusNew,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Key returns the composite key of the record.
func (r *ReviewRecord) Key() RecordKey {
	return RecordKey{LearnerID: r.LearnerID, WordID: r.WordID}
}

// IsDue reports whether the record should be reviewed at now.
// Records without a scheduled review are never due.
func (r *ReviewRecord) IsDue(now time.Time) bool {
	return r.NextReview != nil && !r.NextReview.After(now)
}

// Clone returns a deep copy of the record.
func (r *ReviewRecord) Clone() *ReviewRecord {
	c := *r
	if r.LastStudied != nil {
		t := *r.LastStudied
		c.LastStudied = &t
	}
	if r.NextReview != nil {
		t := *r.NextReview
		c.NextReview = &t
	}
	return &c
}

// Validate checks the structural invariants of the record.
// Range clamping of interval and ease is the scheduler's job, not validation's.
func (r *ReviewRecord) Validate() error {
	if err := r.Key().Validate(); err != nil {
		return err
	}

	if r.StudyCount < 0 || r.CorrectCount < 0 {
		return ErrNegativeCount
	}

	if r.CorrectCount > r.StudyCount {
		return ErrCorrectExceedsStudied
	}

	if !(r.IntervalDays > 0) || math.IsInf(r.IntervalDays, 0) {
		return ErrInvalidInterval
	}

	if !(r.EaseFactor > 1.0) || math.IsInf(r.EaseFactor, 0) {
		return ErrInvalidEaseFactor
	}

	if !r.Status.Valid() {
		return ErrInvalidStatus
	}

	if r.Status == StatusNew && r.StudyCount > 0 {
		return ErrNewRecordStudied
	}

	return nil
}
