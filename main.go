package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Ronei-rcm/rare-toy-admin/internal/auth"
	"github.com/Ronei-rcm/rare-toy-admin/internal/backend"
	intconfig "github.com/Ronei-rcm/rare-toy-admin/internal/config"
	router "github.com/Ronei-rcm/rare-toy-admin/internal/http"
	"github.com/Ronei-rcm/rare-toy-admin/internal/metrics"
	"github.com/Ronei-rcm/rare-toy-admin/internal/orders"
	"github.com/Ronei-rcm/rare-toy-admin/internal/repositories"
	"github.com/Ronei-rcm/rare-toy-admin/internal/services"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	consoleMetrics := metrics.New()

	client := backend.NewClient(backend.Config{
		BaseURL: env.BackendBaseURL,
		Token:   env.BackendToken,
		Timeout: env.BackendTimeout,
	})
	store := orders.NewStore(client, consoleMetrics)

	var filterRepo repositories.SavedFilterRepository
	if env.FilterStoreDSN != "" {
		db, err := intconfig.ConnectDB(env.FilterStoreDSN)
		if err != nil {
			logrus.WithError(err).Fatal("failed to connect filter store database")
		}
		defer db.Close()
		filterRepo = repositories.NewMySQLSavedFilterRepository(db)
	} else {
		filterRepo = repositories.NewFileSavedFilterRepository(env.FilterStorePath)
	}

	authService := auth.NewService(env.JWTSecret, env.AdminUsername, env.AdminPasswordHash, env.SessionTTL)

	r := router.NewRouter(router.Deps{
		Env:          env,
		Store:        store,
		Coordinators: orders.NewCoordinatorRegistry(store),
		Filters:      filterRepo,
		Export:       services.ExportService{Metrics: consoleMetrics},
		Auth:         authService,
	})

	rootCtx, stopRefresh := context.WithCancel(context.Background())
	defer stopRefresh()

	// Warm the snapshot; a dead backend at boot is not fatal, the console
	// shows the load error and the user can retry.
	warmCtx, cancelWarm := context.WithTimeout(rootCtx, env.BackendTimeout)
	if err := store.Refresh(warmCtx); err != nil {
		logrus.WithError(err).Warn("initial snapshot load failed")
	}
	cancelWarm()

	store.StartAutoRefresh(rootCtx, env.AutoRefreshInterval)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.WithField("addr", env.AppAddr).Info("admin console gateway listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")
	stopRefresh()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("shutdown failed")
	}

	logrus.Info("server stopped cleanly")
}
