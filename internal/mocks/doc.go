// Package mocks provides centralized mock implementations for testing.
//
// Each mock has function fields for every interface method; unset fields fall
// back to a simple default (the store mocks keep data in memory). Calls are
// recorded for verification.
//
//	records := mocks.NewMockReviewRecordStore()
//	records.UpsertFn = func(ctx context.Context, r *domain.ReviewRecord) error {
//	    return store.ErrWordNotFound
//	}
package mocks
