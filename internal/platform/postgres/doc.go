// Package postgres provides the PostgreSQL implementations of the store
// interfaces, together with the embedded goose migrations for its schema.
//
// Per-key serialization of gradings relies on transaction-scoped advisory
// locks, so the first grading of a word is serialized even though no row
// exists to lock yet.
package postgres
