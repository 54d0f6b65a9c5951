package study_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/domain/srs"
	"github.com/phrazzld/lexis/internal/platform/migrate"
	"github.com/phrazzld/lexis/internal/platform/sqlite"
	"github.com/phrazzld/lexis/internal/service/study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteService wires the service to real SQLite stores in a temp directory.
func newSQLiteService(t *testing.T, clock func() time.Time) study.Service {
	t.Helper()

	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "study.db"), 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrate.Run(ctx, db.DB, sqlite.MigrationSource(), "up", nil))

	srsService, err := srs.NewDefaultService()
	require.NoError(t, err)

	return study.NewService(
		db,
		sqlite.NewSQLiteReviewRecordStore(db, nil),
		sqlite.NewSQLiteWordStore(db, nil),
		srsService,
		study.Config{DefaultBatchLimit: 10, MaxBatchLimit: 50},
		nil,
		study.WithClock(clock),
	)
}

func TestStudyFlow_SQLite(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}

	svc := newSQLiteService(t, clock)
	ctx := context.Background()
	learner := uuid.New()

	var words []*domain.Word
	for i, term := range []string{"abate", "benign", "candid"} {
		w, err := domain.NewWord(term, "", "meaning of "+term, "", "")
		require.NoError(t, err)
		w.CreatedAt = now.Add(-time.Duration(10-i) * time.Minute)
		words = append(words, w)
	}
	require.NoError(t, svc.AddWords(ctx, words))

	// Nothing graded yet: the whole batch is new words in creation order
	batch, err := svc.GetStudyBatch(ctx, learner, 0)
	require.NoError(t, err)
	require.Len(t, batch, 3)
	for i, item := range batch {
		assert.True(t, item.IsNew)
		assert.Equal(t, words[i].ID, item.Word.ID)
	}

	_, err = svc.SubmitRating(ctx, learner, words[0].ID, domain.RatingAgain)
	require.NoError(t, err)
	_, err = svc.SubmitRating(ctx, learner, words[1].ID, domain.RatingEasy)
	require.NoError(t, err)

	stats, err := svc.GetStats(ctx, learner)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalWords)
	assert.Equal(t, 1, stats.NewWords)
	assert.Equal(t, 2, stats.LearningWords)
	assert.Zero(t, stats.DueNow)

	// One day later only the AGAIN word is due; EASY scheduled four days out
	advance(24 * time.Hour)
	batch, err = svc.GetStudyBatch(ctx, learner, 5)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.False(t, batch[0].IsNew)
	assert.Equal(t, words[0].ID, batch[0].Word.ID)
	require.NotNil(t, batch[0].Record)
	assert.Equal(t, domain.StatusLearning, batch[0].Record.Status)
	assert.True(t, batch[1].IsNew)
	assert.Equal(t, words[2].ID, batch[1].Word.ID)

	record, err := svc.SubmitRating(ctx, learner, words[0].ID, domain.RatingGood)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReview, record.Status)
	assert.Equal(t, 2, record.StudyCount)
	assert.Equal(t, 1, record.CorrectCount)

	n, err := svc.ResetLearner(ctx, learner)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	stats, err = svc.GetStats(ctx, learner)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.NewWords)
}

// TestSubmitRating_ConcurrentSameWord grades one word from many goroutines;
// every grading must be reflected in the final counters.
func TestSubmitRating_ConcurrentSameWord(t *testing.T) {
	t.Parallel()

	svc := newSQLiteService(t, func() time.Time { return time.Now().UTC() })
	ctx := context.Background()
	learner := uuid.New()

	w, err := domain.NewWord("concurrent", "", "at the same time", "", "")
	require.NoError(t, err)
	require.NoError(t, svc.AddWords(ctx, []*domain.Word{w}))

	const gradings = 10
	var wg sync.WaitGroup
	for i := 0; i < gradings; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rating := domain.RatingGood
			if i%3 == 0 {
				rating = domain.RatingAgain
			}
			_, err := svc.SubmitRating(ctx, learner, w.ID, rating)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// A follow-up grading sees every earlier one
	record, err := svc.SubmitRating(ctx, learner, w.ID, domain.RatingHard)
	require.NoError(t, err)
	assert.Equal(t, gradings+1, record.StudyCount)
	assert.Equal(t, gradings+1-4, record.CorrectCount)
}
