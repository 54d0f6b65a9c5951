// Package study implements the learner-facing use cases: grading a word,
// building a study batch, reporting progress and resetting a learner.
//
// The service composes the pure scheduler in internal/domain/srs with the
// record and word stores. Every grading runs as one transaction that locks
// the (learner, word) key, so concurrent gradings of the same word are
// applied one after the other and none is lost.
package study
