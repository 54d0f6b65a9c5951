package domain

import "testing"

func TestNewWord(t *testing.T) {
	word, err := NewWord("  serendipity ", "/ˌserənˈdɪpəti/", "happy accident", "", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if word.Term != "serendipity" {
		t.Errorf("Expected trimmed term, got %q", word.Term)
	}

	if word.Category != DefaultCategory {
		t.Errorf("Expected default category %q, got %q", DefaultCategory, word.Category)
	}

	if word.ID != 0 {
		t.Errorf("Expected unsaved word to have ID 0, got %d", word.ID)
	}

	if word.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if _, err := NewWord(" ", "", "meaning", "", ""); err != ErrWordTermEmpty {
		t.Errorf("Expected error %v, got %v", ErrWordTermEmpty, err)
	}

	if _, err := NewWord("term", "", "", "", ""); err != ErrWordMeaningEmpty {
		t.Errorf("Expected error %v, got %v", ErrWordMeaningEmpty, err)
	}
}
