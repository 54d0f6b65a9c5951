package study

import (
	"sort"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
)

// SelectDue returns the records due at now, ordered by next review time
// with ties broken by word ID. The input slice is not reordered.
func SelectDue(records []*domain.ReviewRecord, now time.Time) []*domain.ReviewRecord {
	due := make([]*domain.ReviewRecord, 0, len(records))
	for _, r := range records {
		if r != nil && r.IsDue(now) {
			due = append(due, r)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return lessDue(due[i], due[j])
	})

	return due
}

// ComposeBatch mixes due reviews and unseen words into one study batch.
//
// Due candidates that are not actually due at now are dropped; the rest are
// ordered like SelectDue. Fresh words follow in creation order and only fill
// the room the due items leave. A non-positive limit yields an empty batch.
func ComposeBatch(due []*domain.WordProgress, fresh []*domain.Word, limit int, now time.Time) []domain.StudyItem {
	if limit <= 0 {
		return []domain.StudyItem{}
	}

	reviews := make([]*domain.WordProgress, 0, len(due))
	for _, p := range due {
		if p == nil || p.Word == nil || p.Record == nil || !p.Record.IsDue(now) {
			continue
		}
		reviews = append(reviews, p)
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return lessDue(reviews[i].Record, reviews[j].Record)
	})
	if len(reviews) > limit {
		reviews = reviews[:limit]
	}

	words := make([]*domain.Word, 0, len(fresh))
	for _, w := range fresh {
		if w != nil {
			words = append(words, w)
		}
	}
	sort.SliceStable(words, func(i, j int) bool {
		if !words[i].CreatedAt.Equal(words[j].CreatedAt) {
			return words[i].CreatedAt.Before(words[j].CreatedAt)
		}
		return words[i].ID < words[j].ID
	})
	if room := limit - len(reviews); len(words) > room {
		words = words[:room]
	}

	items := make([]domain.StudyItem, 0, len(reviews)+len(words))
	for _, p := range reviews {
		items = append(items, domain.StudyItem{Word: p.Word, Record: p.Record})
	}
	for _, w := range words {
		items = append(items, domain.StudyItem{Word: w, IsNew: true})
	}

	return items
}

// lessDue orders due records. Both records must have a next review time.
func lessDue(a, b *domain.ReviewRecord) bool {
	if !a.NextReview.Equal(*b.NextReview) {
		return a.NextReview.Before(*b.NextReview)
	}
	return a.WordID < b.WordID
}
