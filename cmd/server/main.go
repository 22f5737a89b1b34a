package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/salonhq/ledger/internal/config"
	"github.com/salonhq/ledger/internal/repository/mongodb"
	"github.com/salonhq/ledger/internal/repository/sheets"
	"github.com/salonhq/ledger/internal/scheduler"
	"github.com/salonhq/ledger/internal/server/handlers"
	"github.com/salonhq/ledger/internal/server/router"
	authsvc "github.com/salonhq/ledger/internal/service/auth"
	ledgersvc "github.com/salonhq/ledger/internal/service/ledger"
	reportingsvc "github.com/salonhq/ledger/internal/service/reporting"
	"github.com/salonhq/ledger/pkg/clients/webhook"
	"github.com/salonhq/ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := cfg.Location()
	if err != nil {
		baseLogger.Fatal("failed to load business timezone", zap.Error(err))
	}

	repo, err := mongodb.NewRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, cfg.Reporting.Timezone, baseLogger.Named("repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	reportingSvc := reportingsvc.NewService(repo, loc, baseLogger.Named("svc.reporting"))
	ledgerSvc := ledgersvc.NewService(repo, loc, baseLogger.Named("svc.ledger"))
	authSvc := authsvc.NewService(repo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, baseLogger.Named("svc.auth"))

	var exporter sheets.Exporter
	if cfg.SheetsEnabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("monthly report sheet export enabled")
	}

	var notifier webhook.Client
	if cfg.Notify.WebhookURL != "" {
		notifier = webhook.NewClient(cfg.Notify.WebhookURL)
		baseLogger.Info("monthly report webhook enabled")
	}

	authHandler := handlers.NewAuthHandler(authSvc, baseLogger.Named("handlers.auth"))
	ledgerHandler := handlers.NewLedgerHandler(ledgerSvc, baseLogger.Named("handlers.ledger"))
	reportHandler := handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.report"))
	engine := router.New(authHandler, ledgerHandler, reportHandler, authSvc, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, reportingSvc, repo, exporter, notifier, loc, baseLogger.Named("scheduler"))
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
