package srs

import (
	"math"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
)

// day is the duration of one interval unit.
const day = 24 * time.Hour

// calculateNewEaseFactor determines the new ease factor based on the rating.
//
// The ease factor controls how quickly intervals grow: higher values mean the
// word is easier for the learner. AGAIN and HARD lower it, GOOD keeps it and
// EASY raises it. The result is clamped to [MinEaseFactor, MaxEaseFactor] and
// rounded to two decimal places.
func calculateNewEaseFactor(currentEF float64, rating domain.Rating, params *Params) float64 {
	newEF := currentEF

	switch rating {
	case domain.RatingAgain:
		newEF = math.Max(currentEF+params.AgainEaseAdjustment, params.MinEaseFactor)
	case domain.RatingHard:
		newEF = math.Max(currentEF+params.HardEaseAdjustment, params.MinEaseFactor)
	case domain.RatingEasy:
		newEF = math.Min(currentEF+params.EasyEaseAdjustment, params.MaxEaseFactor)
	}

	// Records loaded from older data may sit outside the configured range
	newEF = clamp(newEF, params.MinEaseFactor, params.MaxEaseFactor)

	return roundTo(newEF, 2)
}

// calculateNewInterval determines the new interval and status for a rating.
//
// Parameters:
//   - currentInterval: The current interval in days
//   - easeFactor: The ease factor already adjusted for this rating
//   - status: The status of the record before this grading event
//   - rating: The learner's rating
//   - params: Configuration parameters for the SRS algorithm
//
// Algorithm behavior:
//   - AGAIN: interval restarts at InitialInterval and the record goes back to learning
//   - First grading of a new word: fixed lookup (HARD half the graduating interval,
//     GOOD the graduating interval, EASY the easy interval), status learning
//   - Any later grading: status review and the interval grows from the current one
//     (HARD x1.2, GOOD x ease, EASY x ease x1.3), rounded to one decimal place
//
// The returned interval is not clamped yet.
func calculateNewInterval(
	currentInterval float64,
	easeFactor float64,
	status domain.Status,
	rating domain.Rating,
	params *Params,
) (float64, domain.Status) {
	if rating == domain.RatingAgain {
		return params.InitialInterval, domain.StatusLearning
	}

	if status == domain.StatusNew {
		switch rating {
		case domain.RatingHard:
			return params.GraduatingInterval * params.HardFirstIntervalFactor, domain.StatusLearning
		case domain.RatingEasy:
			return params.EasyInterval, domain.StatusLearning
		default:
			return params.GraduatingInterval, domain.StatusLearning
		}
	}

	newInterval := currentInterval
	switch rating {
	case domain.RatingHard:
		newInterval = currentInterval * params.HardIntervalModifier
	case domain.RatingGood:
		newInterval = currentInterval * easeFactor
	case domain.RatingEasy:
		newInterval = currentInterval * easeFactor * params.EasyBonus
	}

	return roundTo(newInterval, 1), domain.StatusReview
}

// calculateNextReviewDate converts an interval in days into the next review instant.
func calculateNextReviewDate(intervalDays float64, now time.Time) time.Time {
	return now.Add(time.Duration(intervalDays * float64(day)))
}

// isMastered reports whether the updated state reaches the mastery thresholds.
func isMastered(intervalDays float64, correctCount int, rating domain.Rating, params *Params) bool {
	return intervalDays >= params.MasteryIntervalDays &&
		correctCount >= params.MasteryCorrectCount &&
		rating >= domain.RatingGood
}

// calculateNextRecord creates a new ReviewRecord with updated values based on the rating.
//
// The steps run in a fixed order: ease adjustment, interval and status branch,
// clamp, scheduling, counters, mastery override and finally the timestamps.
// The mastery override must come after the branch so it can replace the status
// the branch picked. The input record is never modified.
func calculateNextRecord(
	record *domain.ReviewRecord,
	rating domain.Rating,
	now time.Time,
	params *Params,
) *domain.ReviewRecord {
	next := record.Clone()

	next.EaseFactor = calculateNewEaseFactor(record.EaseFactor, rating, params)

	interval, status := calculateNewInterval(
		record.IntervalDays,
		next.EaseFactor,
		record.Status,
		rating,
		params,
	)
	next.IntervalDays = clamp(interval, params.InitialInterval, params.MaxInterval)
	next.Status = status

	nextReview := calculateNextReviewDate(next.IntervalDays, now)
	next.NextReview = &nextReview

	next.StudyCount++
	if rating.IsCorrect() {
		next.CorrectCount++
	}

	if isMastered(next.IntervalDays, next.CorrectCount, rating, params) {
		next.Status = domain.StatusMastered
	}

	lastStudied := now
	next.LastStudied = &lastStudied
	next.UpdatedAt = now

	return next
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
