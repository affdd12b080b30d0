package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/medflow-hq/medflow/internal/config"
	"github.com/medflow-hq/medflow/internal/repository/memory"
	"github.com/medflow-hq/medflow/internal/repository/mongodb"
	"github.com/medflow-hq/medflow/internal/repository/sheets"
	"github.com/medflow-hq/medflow/internal/repository/slots"
	"github.com/medflow-hq/medflow/internal/scheduler"
	"github.com/medflow-hq/medflow/internal/server/handlers"
	"github.com/medflow-hq/medflow/internal/server/router"
	activitysvc "github.com/medflow-hq/medflow/internal/service/activity"
	assistantsvc "github.com/medflow-hq/medflow/internal/service/assistant"
	authsvc "github.com/medflow-hq/medflow/internal/service/auth"
	backupsvc "github.com/medflow-hq/medflow/internal/service/backup"
	insightsvc "github.com/medflow-hq/medflow/internal/service/insights"
	inventorysvc "github.com/medflow-hq/medflow/internal/service/inventory"
	"github.com/medflow-hq/medflow/pkg/clients/alert"
	"github.com/medflow-hq/medflow/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var store slots.Store
	switch cfg.Storage.Driver {
	case config.DriverMongoDB:
		mongoStore, err := mongodb.NewStore(context.Background(), cfg.Storage.MongoURI, cfg.Storage.MongoDBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb slot store", zap.Error(err))
		}
		defer func() {
			if err := mongoStore.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		store = mongoStore
	case config.DriverMemory:
		baseLogger.Warn("memory storage selected, data will not survive restarts")
		store = memory.NewStore()
	}

	activityLog := activitysvc.NewService(store, baseLogger.Named("svc.activity"))
	inventorySvc := inventorysvc.NewService(store, activityLog, baseLogger.Named("svc.inventory"))
	authService := authsvc.NewService(store, activityLog, baseLogger.Named("svc.auth"))
	insightsSvc := insightsvc.NewService(baseLogger.Named("svc.insights"))
	assistantSvc := assistantsvc.NewService(baseLogger.Named("svc.assistant"))

	if err := authService.EnsureDefaultAdmin(context.Background()); err != nil {
		baseLogger.Fatal("failed to seed default admin", zap.Error(err))
	}

	var mirror backupsvc.Mirror
	if cfg.Sheets.Enabled() {
		sheetsMirror, err := sheets.NewMirror(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets mirror", zap.Error(err))
		}
		mirror = sheetsMirror
		baseLogger.Info("google sheets backup mirror enabled")
	}
	backupSvc := backupsvc.NewService(store, activityLog, mirror, baseLogger.Named("svc.backup"))

	var alertClient alert.Client
	if cfg.Alerts.WebhookURL != "" {
		alertClient = alert.NewWebhookClient(cfg.Alerts.WebhookURL)
		baseLogger.Info("stock alert webhook enabled")
	} else {
		baseLogger.Warn("alert webhook url missing, stock alerts disabled")
	}

	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		Inventory: handlers.NewInventoryHandler(inventorySvc, baseLogger.Named("handlers.inventory")),
		Dashboard: handlers.NewDashboardHandler(inventorySvc, insightsSvc, activityLog, baseLogger.Named("handlers.dashboard")),
		Assistant: handlers.NewAssistantHandler(assistantSvc, inventorySvc, baseLogger.Named("handlers.assistant")),
		Backup:    handlers.NewBackupHandler(backupSvc, baseLogger.Named("handlers.backup")),
	}, authService, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, inventorySvc, backupSvc, alertClient, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
