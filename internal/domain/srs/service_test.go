package srs

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKey() domain.RecordKey {
	return domain.RecordKey{LearnerID: uuid.New(), WordID: 7}
}

func reviewRecord(key domain.RecordKey, interval, ease float64, studied, correct int, status domain.Status, now time.Time) *domain.ReviewRecord {
	last := now.Add(-time.Duration(interval * float64(day)))
	return &domain.ReviewRecord{
		LearnerID:    key.LearnerID,
		WordID:       key.WordID,
		StudyCount:   studied,
		CorrectCount: correct,
		LastStudied:  &last,
		NextReview:   &now,
		IntervalDays: interval,
		EaseFactor:   ease,
		Status:       status,
		CreatedAt:    last,
		UpdatedAt:    last,
	}
}

func TestNewDefaultService(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service, err := NewDefaultService()
	require.NoError(t, err, "Failed to create SRS service")
	require.NotNil(t, service)

	defaultService, ok := service.(*defaultService)
	require.True(t, ok, "Expected *defaultService type")
	require.NotNil(t, defaultService.params)

	assert.Equal(t, *NewDefaultParams(), service.Params())
}

func TestNewServiceWithParams(t *testing.T) {
	t.Parallel() // Enable parallel execution

	_, err := NewServiceWithParams(nil)
	assert.ErrorIs(t, err, ErrInvalidParams)

	bad := NewDefaultParams()
	bad.MaxEaseFactor = 1.0
	_, err = NewServiceWithParams(bad)
	assert.ErrorIs(t, err, ErrInvalidParams)

	params := NewDefaultParams()
	service, err := NewServiceWithParams(params)
	require.NoError(t, err)

	// Later changes to the caller's params do not leak into the service
	params.MaxInterval = 10
	assert.Equal(t, 365.0, service.Params().MaxInterval)
}

func TestComputeNextState_FirstGrading(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service, err := NewDefaultService()
	require.NoError(t, err)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name             string
		rating           domain.Rating
		expectedInterval float64
		expectedEase     float64
		expectedCorrect  int
	}{
		{"again", domain.RatingAgain, 1, 2.3, 0},
		{"hard is clamped to one day", domain.RatingHard, 1, 2.35, 1},
		{"good", domain.RatingGood, 1, 2.5, 1},
		{"easy", domain.RatingEasy, 4, 2.5, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key := newTestKey()
			next, err := service.ComputeNextState(key, nil, tc.rating, now)
			require.NoError(t, err)

			assert.Equal(t, key, next.Key())
			assert.Equal(t, domain.StatusLearning, next.Status)
			assert.InDelta(t, tc.expectedInterval, next.IntervalDays, 1e-9)
			assert.InDelta(t, tc.expectedEase, next.EaseFactor, 1e-9)
			assert.Equal(t, 1, next.StudyCount)
			assert.Equal(t, tc.expectedCorrect, next.CorrectCount)
			require.NotNil(t, next.NextReview)
			assert.Equal(t, now.Add(time.Duration(tc.expectedInterval*float64(day))), *next.NextReview)
			require.NotNil(t, next.LastStudied)
			assert.Equal(t, now, *next.LastStudied)
			assert.NoError(t, next.Validate())
		})
	}
}

func TestComputeNextState_ReviewGrowth(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service, err := NewDefaultService()
	require.NoError(t, err)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	key := newTestKey()

	current := reviewRecord(key, 10, 2.0, 3, 3, domain.StatusReview, now)
	next, err := service.ComputeNextState(key, current, domain.RatingGood, now)
	require.NoError(t, err)

	assert.InDelta(t, 20.0, next.IntervalDays, 1e-9)
	assert.InDelta(t, 2.0, next.EaseFactor, 1e-9)
	assert.Equal(t, domain.StatusReview, next.Status)
	assert.Equal(t, 4, next.StudyCount)
	assert.Equal(t, 4, next.CorrectCount)
	assert.Equal(t, now.Add(20*day), *next.NextReview)

	// Input is left untouched
	assert.InDelta(t, 10.0, current.IntervalDays, 1e-9)
	assert.Equal(t, 3, current.StudyCount)
}

func TestComputeNextState_Mastery(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service, err := NewDefaultService()
	require.NoError(t, err)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	key := newTestKey()

	// Correct count moves from four to five on this grading, which is enough
	current := reviewRecord(key, 20, 2.5, 4, 4, domain.StatusReview, now)
	next, err := service.ComputeNextState(key, current, domain.RatingGood, now)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, next.IntervalDays, 1e-9)
	assert.Equal(t, 5, next.CorrectCount)
	assert.Equal(t, domain.StatusMastered, next.Status)

	// HARD never promotes even when the thresholds are met
	current = reviewRecord(key, 20, 2.5, 9, 9, domain.StatusReview, now)
	next, err = service.ComputeNextState(key, current, domain.RatingHard, now)
	require.NoError(t, err)
	assert.InDelta(t, 24.0, next.IntervalDays, 1e-9)
	assert.Equal(t, domain.StatusReview, next.Status)

	// A mastered word drops back to review when the thresholds are no longer met by the rating
	current = reviewRecord(key, 50, 2.5, 9, 9, domain.StatusMastered, now)
	next, err = service.ComputeNextState(key, current, domain.RatingHard, now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReview, next.Status)

	// Too few correct answers
	current = reviewRecord(key, 20, 2.5, 8, 3, domain.StatusReview, now)
	next, err = service.ComputeNextState(key, current, domain.RatingEasy, now)
	require.NoError(t, err)
	assert.InDelta(t, 65.0, next.IntervalDays, 1e-9)
	assert.Equal(t, domain.StatusReview, next.Status)
}

func TestComputeNextState_AgainRestarts(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service, err := NewDefaultService()
	require.NoError(t, err)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	key := newTestKey()

	current := reviewRecord(key, 120, 2.5, 12, 11, domain.StatusMastered, now)
	next, err := service.ComputeNextState(key, current, domain.RatingAgain, now)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, next.IntervalDays, 1e-9)
	assert.InDelta(t, 2.3, next.EaseFactor, 1e-9)
	assert.Equal(t, domain.StatusLearning, next.Status)
	assert.Equal(t, 13, next.StudyCount)
	assert.Equal(t, 11, next.CorrectCount)
	assert.Equal(t, now.Add(day), *next.NextReview)
}

func TestComputeNextState_MaxInterval(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service, err := NewDefaultService()
	require.NoError(t, err)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	key := newTestKey()

	var current *domain.ReviewRecord
	for i := 0; i < 30; i++ {
		next, err := service.ComputeNextState(key, current, domain.RatingGood, now)
		require.NoError(t, err)
		assert.LessOrEqual(t, next.IntervalDays, 365.0)
		current = next
		now = *next.NextReview
	}
	assert.InDelta(t, 365.0, current.IntervalDays, 1e-9)
	assert.Equal(t, domain.StatusMastered, current.Status)
}

func TestComputeNextState_Errors(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service, err := NewDefaultService()
	require.NoError(t, err)
	now := time.Now().UTC()
	key := newTestKey()

	t.Run("invalid rating", func(t *testing.T) {
		for _, rating := range []domain.Rating{0, 5, -1} {
			_, err := service.ComputeNextState(key, nil, rating, now)
			assert.ErrorIs(t, err, ErrInvalidRating)
		}
	})

	t.Run("key mismatch", func(t *testing.T) {
		other := domain.RecordKey{LearnerID: key.LearnerID, WordID: key.WordID + 1}
		current := reviewRecord(other, 10, 2.0, 3, 3, domain.StatusReview, now)
		_, err := service.ComputeNextState(key, current, domain.RatingGood, now)
		assert.ErrorIs(t, err, ErrRecordKeyMismatch)
	})

	t.Run("malformed record", func(t *testing.T) {
		current := reviewRecord(key, 10, 2.0, 3, 5, domain.StatusReview, now)
		_, err := service.ComputeNextState(key, current, domain.RatingGood, now)
		assert.ErrorIs(t, err, ErrInvalidRecord)
		assert.ErrorIs(t, err, domain.ErrCorrectExceedsStudied)
	})

	t.Run("invalid key", func(t *testing.T) {
		_, err := service.ComputeNextState(domain.RecordKey{}, nil, domain.RatingGood, now)
		assert.ErrorIs(t, err, ErrInvalidRecord)
	})
}

// TestComputeNextState_RandomWalk grades one word with random ratings and
// checks the record invariants after every step.
func TestComputeNextState_RandomWalk(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service, err := NewDefaultService()
	require.NoError(t, err)
	params := service.Params()

	rng := rand.New(rand.NewSource(20240301))
	for walk := 0; walk < 50; walk++ {
		key := newTestKey()
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		var current *domain.ReviewRecord

		for step := 0; step < 60; step++ {
			rating := domain.Ratings[rng.Intn(len(domain.Ratings))]
			next, err := service.ComputeNextState(key, current, rating, now)
			require.NoError(t, err)

			require.NoError(t, next.Validate())
			assert.GreaterOrEqual(t, next.EaseFactor, params.MinEaseFactor)
			assert.LessOrEqual(t, next.EaseFactor, params.MaxEaseFactor)
			assert.GreaterOrEqual(t, next.IntervalDays, params.InitialInterval)
			assert.LessOrEqual(t, next.IntervalDays, params.MaxInterval)
			assert.Equal(t, step+1, next.StudyCount)
			assert.LessOrEqual(t, next.CorrectCount, next.StudyCount)
			assert.NotEqual(t, domain.StatusNew, next.Status)
			assert.True(t, next.NextReview.After(now))

			if rating == domain.RatingAgain {
				assert.Equal(t, domain.StatusLearning, next.Status)
				assert.InDelta(t, params.InitialInterval, next.IntervalDays, 1e-9)
			}
			if next.Status == domain.StatusMastered {
				assert.GreaterOrEqual(t, next.IntervalDays, params.MasteryIntervalDays)
				assert.GreaterOrEqual(t, next.CorrectCount, params.MasteryCorrectCount)
			}

			current = next
			// Review somewhere between half a day early and a week late
			now = next.NextReview.Add(time.Duration(rng.Int63n(int64(7*day+day/2))) - day/2)
		}
	}
}

func FuzzComputeNextState(f *testing.F) {
	f.Add(1.0, 2.5, 0, 0, 3, "new")
	f.Add(10.0, 2.0, 3, 3, 3, "review")
	f.Add(20.0, 2.5, 4, 4, 3, "review")
	f.Add(365.0, 1.3, 40, 12, 4, "mastered")
	f.Add(2.0, 1.9, 2, 1, 1, "learning")

	service, err := NewDefaultService()
	if err != nil {
		f.Fatalf("failed to create service: %v", err)
	}
	params := service.Params()
	key := domain.RecordKey{LearnerID: uuid.New(), WordID: 1}
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	f.Fuzz(func(t *testing.T, interval, ease float64, studied, correct, rating int, status string) {
		current := reviewRecord(key, interval, ease, studied, correct, domain.Status(status), now)
		if studied == 0 {
			current.LastStudied = nil
		}
		if current.Validate() != nil || !domain.Rating(rating).Valid() {
			return
		}

		next, err := service.ComputeNextState(key, current, domain.Rating(rating), now)
		if err != nil {
			t.Fatalf("unexpected error for valid input: %v", err)
		}
		if next.EaseFactor < params.MinEaseFactor || next.EaseFactor > params.MaxEaseFactor {
			t.Errorf("ease factor %f out of range", next.EaseFactor)
		}
		if next.IntervalDays < params.InitialInterval || next.IntervalDays > params.MaxInterval {
			t.Errorf("interval %f out of range", next.IntervalDays)
		}
		if next.StudyCount != studied+1 {
			t.Errorf("study count should be %d, got %d", studied+1, next.StudyCount)
		}
		if next.CorrectCount > next.StudyCount {
			t.Errorf("correct count %d exceeds study count %d", next.CorrectCount, next.StudyCount)
		}
	})
}
