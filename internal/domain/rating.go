package domain

import (
	"fmt"
	"strings"
)

// Rating is the learner's self-reported recall quality for one grading event.
// Ratings are ordered: AGAIN < HARD < GOOD < EASY.
type Rating int

// Possible rating values
const (
	RatingAgain Rating = 1 // forgot the word
	RatingHard  Rating = 2 // recalled with difficulty
	RatingGood  Rating = 3 // recalled normally
	RatingEasy  Rating = 4 // recalled immediately
)

// Ratings lists every valid rating in ascending order.
var Ratings = []Rating{RatingAgain, RatingHard, RatingGood, RatingEasy}

// Valid reports whether r is one of the four known ratings.
func (r Rating) Valid() bool {
	return r >= RatingAgain && r <= RatingEasy
}

// IsCorrect reports whether the rating counts as a correct answer (HARD or better).
func (r Rating) IsCorrect() bool {
	return r >= RatingHard
}

// String returns the lowercase name of the rating.
func (r Rating) String() string {
	switch r {
	case RatingAgain:
		return "again"
	case RatingHard:
		return "hard"
	case RatingGood:
		return "good"
	case RatingEasy:
		return "easy"
	default:
		return fmt.Sprintf("rating(%d)", int(r))
	}
}

// ParseRating converts a rating name ("again", "hard", "good", "easy") to a Rating.
func ParseRating(s string) (Rating, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "again":
		return RatingAgain, nil
	case "hard":
		return RatingHard, nil
	case "good":
		return RatingGood, nil
	case "easy":
		return RatingEasy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
}
