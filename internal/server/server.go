// Package server boots the HTTP API: config, database, cache, storage,
// the catalog API client, and the middleware stack.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/webproformation/LaboutiqueOK-sub001/app/routes"
	"github.com/webproformation/LaboutiqueOK-sub001/config"
	"github.com/webproformation/LaboutiqueOK-sub001/internal/woo"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/cache"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/database"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/logger"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/metrics"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/middleware"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/reqid"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/router"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

// Start boots every subsystem and blocks until the process is signalled.
// Redis being down is survivable (cache reads just miss); the database is
// not.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, running without cache", "error", err)
	}
	storage.Connect()

	r := NewRouter()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// NewRouter builds the full route table with the standard middleware
// stack. Split out so route:list can build it without a listening socket.
func NewRouter() *router.Router {
	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	routes.Register(r, database.DB, woo.NewFromConfig(), storage.Default())
	return r
}
