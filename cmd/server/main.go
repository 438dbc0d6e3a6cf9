// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/bantconfirm/backend/internal/backend"
	"github.com/bantconfirm/backend/internal/config"
	"github.com/bantconfirm/backend/internal/router"
	"github.com/bantconfirm/backend/internal/sitemap"
	"github.com/bantconfirm/backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	// Backend client. Without credentials the service still serves, with
	// empty data and trivially succeeding writes.
	var client backend.Client
	if cfg.Database.Configured() {
		client, err = backend.NewPostgres(cfg.Database)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to backend")
		}
	} else {
		logrus.Warn("Backend not configured, running with no-op persistence")
		client = backend.NewNoOp()
	}
	defer client.Close()

	// Shared application store.
	appStore := store.New(client)
	appStore.FetchAll(context.Background())
	appStore.StartRealtime()

	// Scheduled jobs: periodic snapshot resync and sitemap regeneration.
	sitemapGen := sitemap.NewGenerator(client, cfg.Site.BaseURL)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Jobs.ResyncSpec, func() {
		appStore.FetchAll(context.Background())
	}); err != nil {
		logrus.WithError(err).Fatal("Failed to schedule resync job")
	}
	if _, err := scheduler.AddFunc(cfg.Jobs.SitemapSpec, func() {
		if err := sitemapGen.WriteFile(context.Background(), cfg.Jobs.SitemapPath); err != nil {
			logrus.WithError(err).Error("Failed to regenerate sitemap")
		}
	}); err != nil {
		logrus.WithError(err).Fatal("Failed to schedule sitemap job")
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := router.Initialize(client, appStore, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}
