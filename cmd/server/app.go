package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/lms-api/internal/config"
	"github.com/phrazzld/lms-api/internal/events"
	"github.com/phrazzld/lms-api/internal/generation"
	"github.com/phrazzld/lms-api/internal/generation/fallback"
	"github.com/phrazzld/lms-api/internal/platform/gemini"
	"github.com/phrazzld/lms-api/internal/platform/postgres"
	"github.com/phrazzld/lms-api/internal/ratelimit"
	"github.com/phrazzld/lms-api/internal/service"
)

// application holds the shared dependencies and owns their cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger

	db    *sql.DB
	redis *goredis.Client

	backend           generation.Backend
	generationService *service.GenerationService

	// examService is nil when no database is configured.
	examService *service.ExamService
}

// newApplication wires every component from configuration. On error, any
// resources already opened are released.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}
	initialized := false
	defer func() {
		if !initialized {
			app.cleanup()
		}
	}()

	var err error
	app.backend, err = newBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	limiter, err := app.newLimiter(ctx)
	if err != nil {
		return nil, err
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLoggingHandler(logger))

	app.generationService, err = service.NewGenerationService(
		app.backend,
		limiter,
		fallback.New(),
		emitter,
		logger,
		service.WithTimeout(cfg.LLM.Timeout()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	if cfg.Database.URL == "" {
		logger.Warn("Database URL not configured; exam persistence disabled")
	} else if err := app.setupExams(ctx); err != nil {
		return nil, err
	}

	logger.Info("Application initialized successfully",
		slog.String("backend", app.backend.Name()),
		slog.Bool("exams_enabled", app.examService != nil))
	initialized = true
	return app, nil
}

// newBackend is a variable so tests can substitute a fake backend.
var newBackend = func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (generation.Backend, error) {
	b, err := gemini.New(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation backend: %w", err)
	}
	return b, nil
}

func (app *application) newLimiter(ctx context.Context) (*ratelimit.Limiter, error) {
	var store ratelimit.Store
	switch app.config.RateLimit.Backend {
	case config.RateLimitBackendRedis:
		rdb, err := ratelimit.OpenRedis(ctx, app.config.RateLimit.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.redis = rdb
		store = ratelimit.NewRedisStore(rdb)
	default:
		store = ratelimit.NewMemoryStore()
	}

	limiter, err := ratelimit.NewLimiter(store, app.config.RateLimit.MaxPerWindow, app.config.RateLimit.Window())
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}
	app.logger.Info("Rate limiter initialized",
		slog.String("backend", app.config.RateLimit.Backend),
		slog.Int("max_per_window", limiter.MaxPerWindow()),
		slog.Duration("window", limiter.Window()))
	return limiter, nil
}

func (app *application) setupExams(ctx context.Context) error {
	db, err := postgres.Open(ctx, app.config.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	app.db = db

	if err := postgres.Migrate(ctx, db, app.logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	examStore := postgres.NewPostgresExamStore(db, app.logger)
	app.examService, err = service.NewExamService(service.NewExamRepositoryAdapter(examStore, db), app.logger)
	if err != nil {
		return fmt.Errorf("failed to create exam service: %w", err)
	}
	return nil
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases external connections. It is safe to call more than once.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
		app.redis = nil
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
		app.db = nil
	}
	app.logger.Info("Application shutdown completed")
}
