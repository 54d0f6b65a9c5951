package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/lexis/internal/api"
	"github.com/phrazzld/lexis/internal/config"
	"github.com/phrazzld/lexis/internal/domain/srs"
	"github.com/phrazzld/lexis/internal/events"
	"github.com/phrazzld/lexis/internal/service/study"
)

// application holds the shared dependencies of the running server.
type application struct {
	config       *config.Config
	logger       *slog.Logger
	db           *database
	emitter      *events.InMemoryEventEmitter
	studyService study.Service
}

// newApplication wires the scheduler, the event emitter and the study
// service on top of an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *database) (*application, error) {
	params, err := cfg.SRS.Params()
	if err != nil {
		return nil, err
	}
	srsService, err := srs.NewServiceWithParams(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create SRS service: %w", err)
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLogHandler(logger))

	studyService := study.NewService(
		db.tx,
		db.records,
		db.words,
		srsService,
		study.Config{
			DefaultBatchLimit: cfg.Study.DefaultBatchLimit,
			MaxBatchLimit:     cfg.Study.MaxBatchLimit,
		},
		logger,
		study.WithEmitter(emitter),
	)

	logger.Info("application initialized",
		slog.String("database_driver", db.driver),
		slog.Float64("max_interval_days", params.MaxInterval))

	return &application{
		config:       cfg,
		logger:       logger,
		db:           db,
		emitter:      emitter,
		studyService: studyService,
	}, nil
}

func (app *application) router() http.Handler {
	return api.NewRouter(app.studyService, app.logger)
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.router()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
