package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quillhq/newsdesk/internal/articles/application"
	"github.com/quillhq/newsdesk/internal/platform/logger"
)

type App struct {
	server  *http.Server
	sweeper *application.Sweeper
	config  Config
	logger  logger.Logger
}

func NewApp(server *http.Server, sweeper *application.Sweeper, config Config, logger logger.Logger) *App {
	return &App{
		server:  server,
		sweeper: sweeper,
		config:  config,
		logger:  logger,
	}
}

// MigrateDatabase applies pending schema migrations before serving traffic.
func (a *App) MigrateDatabase(ctx context.Context) error {
	return RunMigrations(ctx, a.config, a.logger)
}

// Run starts the application and handles graceful shutdown. The orphan blob
// sweeper runs alongside the HTTP server and stops with it.
func (a *App) Run() error {
	ctx := context.Background()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	go a.sweeper.Run(sweepCtx)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "starting server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigChan:
		a.logger.Info(ctx, "shutting down", "signal", sig.String())

		stopSweeper()

		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to gracefully shutdown server: %w", err)
		}
	}

	a.logger.Info(ctx, "server stopped")
	return nil
}
