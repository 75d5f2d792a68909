// Package server boots the HTTP API: config, stores, logging sinks,
// middleware chain, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/escobarvape/backend/app/routes"
	"github.com/escobarvape/backend/config"
	"github.com/escobarvape/backend/pkg/cache"
	"github.com/escobarvape/backend/pkg/database"
	"github.com/escobarvape/backend/pkg/logger"
	"github.com/escobarvape/backend/pkg/metrics"
	"github.com/escobarvape/backend/pkg/middleware"
	"github.com/escobarvape/backend/pkg/reqid"
	"github.com/escobarvape/backend/pkg/router"
	"github.com/escobarvape/backend/pkg/storage"
)

const shutdownGrace = 10 * time.Second

// Run boots every subsystem and serves until SIGINT/SIGTERM.
func Run() error {
	if err := config.Load(); err != nil {
		logger.Warn("config load", "error", err)
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = database.Disconnect(ctx)
	}()

	// Fan the process log out to the capped Mongo collection when one is
	// configured, keeping stdout as the primary sink.
	var mongoSink *logger.MongoHandler
	if col := config.MongoLogCollection(); col != "" {
		mongoSink = logger.NewMongoHandler(database.C(col))
		logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), mongoSink))
		defer mongoSink.Close()
	}

	// Cache is an optimization, not a dependency: a dead Redis only costs
	// the product list and announcement caches.
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, serving without it", "error", err)
	}

	storage.Connect()

	r := router.New()
	r.Use(
		reqid.Middleware(),
		metrics.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.CORSFromConfig()),
	)
	routes.Register(r)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
