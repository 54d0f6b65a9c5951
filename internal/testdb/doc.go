//go:build integration

// Package testdb provides helpers for PostgreSQL integration tests.
//
// Tests obtain a migrated connection with GetTestDBWithT, which skips the
// test when DATABASE_URL is not set, and run their work inside WithTx so
// every change is rolled back afterwards:
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	    words := postgres.NewPostgresWordStore(tx, nil)
//	    ...
//	})
package testdb
