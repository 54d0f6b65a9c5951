package postgres

import (
	"embed"

	"github.com/phrazzld/lexis/internal/platform/migrate"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationSource returns the goose migrations for the PostgreSQL schema.
func MigrationSource() migrate.Source {
	return migrate.Source{
		Dialect: "postgres",
		FS:      migrationFiles,
		Dir:     "migrations",
	}
}
