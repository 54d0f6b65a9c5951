package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/lexis/internal/api/shared"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/service/study"
	"github.com/phrazzld/lexis/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel() // Enable parallel execution

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"word not found", store.ErrWordNotFound, http.StatusNotFound},
		{"wrapped record not found", fmt.Errorf("get: %w", store.ErrReviewRecordNotFound), http.StatusNotFound},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"invalid rating", fmt.Errorf("%w: 9", study.ErrInvalidRating), http.StatusBadRequest},
		{"invalid id", domain.NewValidationError("learnerID", "is required", domain.ErrInvalidID), http.StatusBadRequest},
		{"no words", study.ErrNoWords, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"service error", study.NewServiceError("op", "failed", errors.New("boom")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel() // Enable parallel execution
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel() // Enable parallel execution

	assert.Equal(t, "Word not found", GetSafeErrorMessage(store.ErrWordNotFound))
	assert.Equal(t, "Invalid ID", GetSafeErrorMessage(fmt.Errorf("%w: x", domain.ErrInvalidID)))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "An unexpected error occurred",
		GetSafeErrorMessage(errors.New("pq: connection to 10.0.0.1 refused")))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel() // Enable parallel execution

	type payload struct {
		Rating int    `validate:"required"`
		Term   string `validate:"max=3"`
	}

	err := shared.Validate.Struct(payload{})
	assert.Equal(t, "Invalid rating: required field", SanitizeValidationError(err))

	err = shared.Validate.Struct(payload{Rating: 1, Term: "toolong"})
	assert.Equal(t, "Invalid term: too large", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
