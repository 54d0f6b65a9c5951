// Package sqlite provides the SQLite implementations of the store interfaces
// for single-node deployments, built on sqlx and go-sqlite3.
//
// Connections opened with Open begin every transaction IMMEDIATE, so writers
// are serialized by the database lock. Timestamps are stored as fixed-width
// UTC text, which keeps lexical and chronological order identical.
package sqlite
