package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantNotFound  bool
		wantDuplicate bool
	}{
		{name: "nil error"},
		{name: "generic error", err: errors.New("some error")},
		{name: "ErrNotFound", err: ErrNotFound, wantNotFound: true},
		{name: "ErrWordNotFound", err: ErrWordNotFound, wantNotFound: true},
		{
			name:         "wrapped ErrReviewRecordNotFound",
			err:          fmt.Errorf("loading record: %w", ErrReviewRecordNotFound),
			wantNotFound: true,
		},
		{
			name:         "store error around not found",
			err:          NewStoreError("word", "get", "no rows", ErrWordNotFound),
			wantNotFound: true,
		},
		{name: "ErrDuplicate", err: ErrDuplicate, wantDuplicate: true},
		{
			name:          "wrapped ErrDuplicate",
			err:           fmt.Errorf("failed to create: %w", ErrDuplicate),
			wantDuplicate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.wantNotFound {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.wantNotFound)
			}
			if got := IsDuplicateError(tt.err); got != tt.wantDuplicate {
				t.Errorf("IsDuplicateError() = %v, want %v", got, tt.wantDuplicate)
			}
		})
	}

	if errors.Is(ErrWordNotFound, ErrReviewRecordNotFound) {
		t.Error("word and review record not found errors must stay distinct")
	}
}

func TestStoreError(t *testing.T) {
	originalErr := errors.New("database connection failed")
	storeErr := NewStoreError("review_record", "upsert", "database error", originalErr)

	expected := "upsert operation on review_record failed: database error: database connection failed"
	if got := storeErr.Error(); got != expected {
		t.Errorf("StoreError.Error() = %v, want %v", got, expected)
	}

	if !errors.Is(storeErr, originalErr) {
		t.Errorf("errors.Is() not recognizing the wrapped error")
	}

	bare := NewStoreError("word", "count", "unexpected result", nil)
	if got := bare.Error(); got != "count operation on word failed: unexpected result" {
		t.Errorf("StoreError.Error() without cause = %v", got)
	}
}
