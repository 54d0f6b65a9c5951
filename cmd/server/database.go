package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/lexis/internal/config"
	"github.com/phrazzld/lexis/internal/platform/migrate"
	"github.com/phrazzld/lexis/internal/platform/postgres"
	"github.com/phrazzld/lexis/internal/platform/sqlite"
	"github.com/phrazzld/lexis/internal/store"
)

// database bundles one storage engine: the pool, its stores and its migrations.
type database struct {
	driver     string
	sqlDB      *sql.DB
	tx         store.TxBeginner
	records    store.ReviewRecordStore
	words      store.WordStore
	migrations migrate.Source
}

// openDatabase connects to the engine named by cfg.Driver and builds its stores.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*database, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := sql.Open("pgx", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection: %w", err)
		}

		maxOpen := cfg.MaxOpenConns
		if maxOpen <= 0 {
			maxOpen = 10
		}
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(maxOpen / 2)
		db.SetConnMaxLifetime(5 * time.Minute)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		logger.Info("database connection established", slog.String("driver", cfg.Driver))
		return &database{
			driver:     cfg.Driver,
			sqlDB:      db,
			tx:         db,
			records:    postgres.NewPostgresReviewRecordStore(db, logger),
			words:      postgres.NewPostgresWordStore(db, logger),
			migrations: postgres.MigrationSource(),
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.URL, cfg.MaxOpenConns)
		if err != nil {
			return nil, err
		}

		logger.Info("database connection established", slog.String("driver", cfg.Driver))
		return &database{
			driver:     cfg.Driver,
			sqlDB:      db.DB,
			tx:         db,
			records:    sqlite.NewSQLiteReviewRecordStore(db, logger),
			words:      sqlite.NewSQLiteWordStore(db, logger),
			migrations: sqlite.MigrationSource(),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Close releases the connection pool.
func (d *database) Close() error {
	return d.sqlDB.Close()
}
