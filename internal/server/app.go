// Package server initializes and runs the microblog application server.
// It opens the database, runs migrations, seeds the initial roles and admin
// account, and starts the HTTP server with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/avolkov/microblog/internal/logging"
	"github.com/avolkov/microblog/internal/server/auth"
	"github.com/avolkov/microblog/internal/server/config"
	"github.com/avolkov/microblog/internal/server/httpapi"
	"github.com/avolkov/microblog/internal/server/repositories/repomanager"
	"github.com/avolkov/microblog/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repos       repomanager.RepositoryManager
	userService *services.UserService
	postService *services.PostService
	httpServer  *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	us := services.NewUserService(db, rm, cfg)
	ps := services.NewPostService(db, rm)
	ts := auth.NewTokenService(cfg)

	srv := httpapi.NewServer(cfg, logger, us, ps, ts)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repos:       rm,
		userService: us,
		postService: ps,
		httpServer:  srv,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run migrates the schema, seeds roles and the optional admin account, and
// serves HTTP until ctx is cancelled or a signal arrives.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	if err := app.userService.Seed(ctx); err != nil {
		return fmt.Errorf("seed error: %w", err)
	}

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "Error closing db", "error", err)
		}
	}()

	return app.httpServer.Run(ctx)
}
