package domain

import (
	"errors"
	"strings"
	"time"
)

// DefaultCategory is assigned to words created without a category.
const DefaultCategory = "general"

// Word-specific validation errors
var (
	// ErrWordTermEmpty is returned when a word's term is empty.
	ErrWordTermEmpty = errors.New("word term cannot be empty")

	// ErrWordMeaningEmpty is returned when a word's meaning is empty.
	ErrWordMeaningEmpty = errors.New("word meaning cannot be empty")
)

// Word is a vocabulary entry that learners study.
// Words are shared by all learners; their creation order decides in which
// order unseen words are introduced.
type Word struct {
	ID        int64     `json:"id"`
	Term      string    `json:"term"`
	Phonetic  string    `json:"phonetic,omitempty"`
	Meaning   string    `json:"meaning"`
	Example   string    `json:"example,omitempty"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWord creates a validated Word that has not been persisted yet (ID 0).
func NewWord(term, phonetic, meaning, example, category string) (*Word, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}

	word := &Word{
		Term:      strings.TrimSpace(term),
		Phonetic:  strings.TrimSpace(phonetic),
		Meaning:   strings.TrimSpace(meaning),
		Example:   strings.TrimSpace(example),
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	return word, nil
}

// Validate checks if the Word has valid data.
func (w *Word) Validate() error {
	if strings.TrimSpace(w.Term) == "" {
		return ErrWordTermEmpty
	}

	if strings.TrimSpace(w.Meaning) == "" {
		return ErrWordMeaningEmpty
	}

	return nil
}
