package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskmate-api/internal/config"
	"github.com/phrazzld/taskmate-api/internal/events"
	"github.com/phrazzld/taskmate-api/internal/platform/postgres"
	"github.com/phrazzld/taskmate-api/internal/platform/redis"
	"github.com/phrazzld/taskmate-api/internal/realtime"
	"github.com/phrazzld/taskmate-api/internal/service"
	"github.com/phrazzld/taskmate-api/internal/service/auth"
	"github.com/phrazzld/taskmate-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// shutdownTimeout bounds the graceful shutdown of each component.
const shutdownTimeout = 10 * time.Second

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *goredis.Client

	// Stores
	taskStore store.TaskStore
	userStore store.UserStore

	// Services
	jwtService  auth.JWTService
	taskService service.TaskService
	userService service.UserService

	// Change notification
	hub        *realtime.Hub
	dispatcher *events.Dispatcher
	relay      *redis.Relay
}

// newApplication creates the application on top of an open database.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app, err := assembleApplication(ctx, cfg, logger,
		postgres.NewPostgresTaskStore(db, logger),
		postgres.NewPostgresUserStore(db, logger),
	)
	if err != nil {
		return nil, err
	}
	app.db = db
	return app, nil
}

// assembleApplication wires services and change notification around the
// given stores. Background workers are started before it returns; call
// cleanup to stop them.
func assembleApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	taskStore store.TaskStore,
	userStore store.UserStore,
) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	app := &application{
		config:    cfg,
		logger:    logger,
		taskStore: taskStore,
		userStore: userStore,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_days", cfg.Auth.TokenLifetimeDays))

	app.hub = realtime.NewHub(logger)

	// With Redis, the local hub only hears changes through the relay so that
	// each session sees one frame per change across all instances.
	sink := events.Sink(app.hub)
	if cfg.Redis.Enabled() {
		app.redis, err = redis.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		app.relay = redis.NewRelay(app.redis, cfg.Redis.Channel, app.hub, logger)
		if err := app.relay.Start(ctx); err != nil {
			_ = app.redis.Close()
			return nil, fmt.Errorf("failed to start redis relay: %w", err)
		}
		sink = redis.NewPublisher(app.redis, cfg.Redis.Channel, logger)
		logger.Info("Redis change fan-out enabled", slog.String("channel", cfg.Redis.Channel))
	}

	app.dispatcher = events.NewDispatcher(cfg.Notify.QueueSize, logger, sink)
	app.dispatcher.Start()

	app.taskService, err = service.NewTaskService(taskStore, app.dispatcher, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.userService, err = service.NewUserService(userStore, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources. Pending change
// signals are drained before the realtime sessions are closed.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if app.dispatcher != nil {
		if err := app.dispatcher.Stop(ctx); err != nil {
			app.logger.Error("Error stopping change dispatcher", slog.String("error", err.Error()))
		}
	}

	if app.relay != nil {
		if err := app.relay.Stop(ctx); err != nil {
			app.logger.Error("Error stopping redis relay", slog.String("error", err.Error()))
		}
	}

	if app.hub != nil {
		app.hub.Close()
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("Application shutdown completed")
}
