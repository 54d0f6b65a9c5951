package study

import (
	"time"

	"github.com/phrazzld/lexis/internal/domain"
)

// Summarize counts a learner's records by status.
// Words without a record count as new; totalWords is the size of the vocabulary.
func Summarize(records []*domain.ReviewRecord, totalWords int, now time.Time) domain.StudyStats {
	stats := domain.StudyStats{TotalWords: totalWords}

	tracked := 0
	for _, r := range records {
		if r == nil {
			continue
		}
		tracked++

		switch r.Status {
		case domain.StatusNew:
			stats.NewWords++
		case domain.StatusLearning:
			stats.LearningWords++
		case domain.StatusReview:
			stats.ReviewWords++
		case domain.StatusMastered:
			stats.MasteredWords++
		}

		if r.IsDue(now) {
			stats.DueNow++
		}
	}

	if untracked := totalWords - tracked; untracked > 0 {
		stats.NewWords += untracked
	}

	return stats
}
