package domain

import (
	"errors"
	"testing"
)

func TestRating(t *testing.T) {
	testCases := []struct {
		rating  Rating
		valid   bool
		correct bool
		name    string
	}{
		{0, false, false, "rating(0)"},
		{RatingAgain, true, false, "again"},
		{RatingHard, true, true, "hard"},
		{RatingGood, true, true, "good"},
		{RatingEasy, true, true, "easy"},
		{5, false, true, "rating(5)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rating.Valid(); got != tc.valid {
				t.Errorf("Valid() = %v, want %v", got, tc.valid)
			}
			if tc.valid {
				if got := tc.rating.IsCorrect(); got != tc.correct {
					t.Errorf("IsCorrect() = %v, want %v", got, tc.correct)
				}
			}
			if got := tc.rating.String(); got != tc.name {
				t.Errorf("String() = %q, want %q", got, tc.name)
			}
		})
	}
}

func TestParseRating(t *testing.T) {
	for _, r := range Ratings {
		parsed, err := ParseRating(r.String())
		if err != nil {
			t.Fatalf("ParseRating(%q) returned error: %v", r.String(), err)
		}
		if parsed != r {
			t.Errorf("ParseRating(%q) = %v, want %v", r.String(), parsed, r)
		}
	}

	if r, err := ParseRating(" Good "); err != nil || r != RatingGood {
		t.Errorf("Expected case-insensitive parse of \" Good \", got %v, %v", r, err)
	}

	if _, err := ParseRating("perfect"); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("Expected ErrInvalidRating, got %v", err)
	}
}
