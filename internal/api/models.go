package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis/internal/domain"
)

// SubmitReviewRequest is the body of POST /learners/{learnerID}/words/{wordID}/review.
type SubmitReviewRequest struct {
	// Rating is 1 (again), 2 (hard), 3 (good) or 4 (easy).
	Rating int `json:"rating" validate:"required"`
}

// WordInput describes one word of a CreateWordsRequest.
type WordInput struct {
	Term     string `json:"term"     validate:"required,max=200"`
	Phonetic string `json:"phonetic" validate:"max=200"`
	Meaning  string `json:"meaning"  validate:"required,max=2000"`
	Example  string `json:"example"  validate:"max=2000"`
	Category string `json:"category" validate:"max=100"`
}

// CreateWordsRequest is the body of POST /words.
type CreateWordsRequest struct {
	Words []WordInput `json:"words" validate:"required,min=1,max=500,dive"`
}

// WordResponse is the JSON form of a word.
type WordResponse struct {
	ID        int64     `json:"id"`
	Term      string    `json:"term"`
	Phonetic  string    `json:"phonetic"`
	Meaning   string    `json:"meaning"`
	Example   string    `json:"example"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// WordsResponse wraps the words created by one request.
type WordsResponse struct {
	Words []WordResponse `json:"words"`
}

// RecordResponse is the JSON form of a review record.
// Absent timestamps are serialized as null.
type RecordResponse struct {
	LearnerID    uuid.UUID  `json:"learner_id"`
	WordID       int64      `json:"word_id"`
	StudyCount   int        `json:"study_count"`
	CorrectCount int        `json:"correct_count"`
	LastStudied  *time.Time `json:"last_studied"`
	NextReview   *time.Time `json:"next_review"`
	IntervalDays float64    `json:"interval_days"`
	EaseFactor   float64    `json:"ease_factor"`
	Status       string     `json:"status"`
}

// StudyItemResponse is one entry of a study batch.
type StudyItemResponse struct {
	Word   WordResponse    `json:"word"`
	Record *RecordResponse `json:"record"`
	IsNew  bool            `json:"is_new"`
}

// StudyBatchResponse is the body of GET /learners/{learnerID}/study.
type StudyBatchResponse struct {
	Items []StudyItemResponse `json:"items"`
	Count int                 `json:"count"`
}

// ResetResponse reports how many records a reset removed.
type ResetResponse struct {
	Deleted int64 `json:"deleted"`
}

func wordToResponse(w *domain.Word) WordResponse {
	return WordResponse{
		ID:        w.ID,
		Term:      w.Term,
		Phonetic:  w.Phonetic,
		Meaning:   w.Meaning,
		Example:   w.Example,
		Category:  w.Category,
		CreatedAt: w.CreatedAt,
	}
}

func recordToResponse(r *domain.ReviewRecord) *RecordResponse {
	if r == nil {
		return nil
	}
	return &RecordResponse{
		LearnerID:    r.LearnerID,
		WordID:       r.WordID,
		StudyCount:   r.StudyCount,
		CorrectCount: r.CorrectCount,
		LastStudied:  r.LastStudied,
		NextReview:   r.NextReview,
		IntervalDays: r.IntervalDays,
		EaseFactor:   r.EaseFactor,
		Status:       string(r.Status),
	}
}

func batchToResponse(items []domain.StudyItem) StudyBatchResponse {
	out := make([]StudyItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, StudyItemResponse{
			Word:   wordToResponse(item.Word),
			Record: recordToResponse(item.Record),
			IsNew:  item.IsNew,
		})
	}
	return StudyBatchResponse{Items: out, Count: len(out)}
}
