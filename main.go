package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"noteful/config"
	"noteful/config/database"
	"noteful/pkg/logger"
	"noteful/router"
	"noteful/socket"

	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	// 1. Load configuration from .env / the OS environment and set up logging.
	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Sugar.Errorw("startup", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if _, err := maxprocs.Set(maxprocs.Logger(logger.Sugar.Infof)); err != nil {
		return fmt.Errorf("maxprocs: %w", err)
	}
	logger.Sugar.Infow("startup", "GOMAXPROCS", runtime.GOMAXPROCS(0))

	// 2. Connect to Postgres, retrying while the database comes up.
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. The change feed hub runs in its own goroutine until shutdown.
	var hub *socket.Hub
	if cfg.ChangeFeedEnabled {
		hub = socket.NewHub()
		go hub.Run(ctx)
	}

	// 4. REST routes.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.Setup(db, hub, cfg),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Sugar.Infof("Server listening on http://localhost:%s", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Sugar.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer logger.Sugar.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Hijacked websocket connections are not tracked by Shutdown.
		cancel()

		sctx, scancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer scancel()
		if err := srv.Shutdown(sctx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}
