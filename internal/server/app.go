// Package server initializes and runs the documents server: it wires the
// Postgres-backed repositories, the user and document services, and the
// HTTP endpoint, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/absingh09/mydocuments/internal/logging"
	"github.com/absingh09/mydocuments/internal/server/config"
	"github.com/absingh09/mydocuments/internal/server/documents"
	"github.com/absingh09/mydocuments/internal/server/httpapi"
	"github.com/absingh09/mydocuments/internal/server/shared/db"
	"github.com/absingh09/mydocuments/internal/server/users"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	repos           db.RepositoryManager
	userService     *users.Service
	documentService *documents.Service
}

func NewApp(cfg *config.Config) (*App, error) {

	s := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(s)

	m, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := users.NewService(m.Users(), cfg)
	ds := documents.NewService(m.Documents())

	return &App{
		config:          cfg,
		logger:          logger,
		repos:           m,
		userService:     us,
		documentService: ds,
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewServer(app.config.EndpointAddr, app.logger,
		app.userService, app.documentService, app.config.SecretKey, app.config.AllowedOrigins)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err.Error())
	}
}
