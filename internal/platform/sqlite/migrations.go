package sqlite

import (
	"embed"

	"github.com/phrazzld/lexis/internal/platform/migrate"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationSource returns the goose migrations for the SQLite schema.
func MigrationSource() migrate.Source {
	return migrate.Source{
		Dialect: "sqlite3",
		FS:      migrationFiles,
		Dir:     "migrations",
	}
}
