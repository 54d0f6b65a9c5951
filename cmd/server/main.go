// Package main runs the lexis HTTP server, a spaced-repetition scheduler
// for vocabulary study.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/phrazzld/lexis/internal/config"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/platform/migrate"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("lexis server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run loads configuration, opens the database and either executes a
// migration command or serves HTTP until ctx is canceled.
func run(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("lexis", flag.ContinueOnError)
	migrateCmd := flags.String("migrate", "",
		"run a migration command and exit ("+strings.Join(migrate.Commands, "|")+")")
	envFile := flags.String("env-file", ".env", "optional dotenv file loaded before configuration")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", *envFile, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))

	db, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	if *migrateCmd != "" {
		return migrate.Run(ctx, db.sqlDB, db.migrations, *migrateCmd, log)
	}

	// The schema is brought up to date before serving
	if err := migrate.Run(ctx, db.sqlDB, db.migrations, "up", log); err != nil {
		return err
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
