package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httphandler "github.com/ogurasousui/shift-scheduler/internal/adapters/http/handler"
	"github.com/ogurasousui/shift-scheduler/internal/adapters/repository/postgres"
	"github.com/ogurasousui/shift-scheduler/internal/adapters/spreadsheet"
	"github.com/ogurasousui/shift-scheduler/internal/core/export"
	"github.com/ogurasousui/shift-scheduler/internal/core/schedule"
	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
	"github.com/ogurasousui/shift-scheduler/internal/core/staff"
	"github.com/ogurasousui/shift-scheduler/internal/platform/config"
	"github.com/ogurasousui/shift-scheduler/internal/platform/db/migration"
	pg "github.com/ogurasousui/shift-scheduler/internal/platform/db/postgres"
	"github.com/ogurasousui/shift-scheduler/internal/platform/logging"
	"github.com/ogurasousui/shift-scheduler/internal/platform/metrics"
	"github.com/ogurasousui/shift-scheduler/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Migrations.AutoMigrate {
		status, err := migration.Run(migration.ActionUp, cfg.Migrations.Dir, cfg.Database.DSN())
		if err != nil {
			logger.Fatal("failed to apply migrations", zap.String("dir", cfg.Migrations.Dir), zap.Error(err))
		}
		logger.Info("migrations applied", zap.Uint("version", status.Version), zap.Bool("dirty", status.Dirty))
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize database pool", zap.Error(err))
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool, pg.WithIsolationLevel(cfg.Database.IsolationLevel))

	staffRepo := postgres.NewStaffRepository(dbPool)
	shiftRepo := postgres.NewShiftRepository(dbPool)

	staffSvc := staff.NewService(staffRepo, nil, txManager)
	shiftSvc := shift.NewService(shiftRepo, staffRepo, nil, txManager)
	scheduleSvc := schedule.NewService(staffRepo, shiftRepo, nil, txManager)
	exportSvc := export.NewService(shiftRepo, staffRepo, spreadsheet.NewXLSXWriter(), nil, txManager)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := httphandler.NewRouter(httphandler.Dependencies{
		Staff:       staffSvc,
		Shifts:      shiftSvc,
		Scheduler:   scheduleSvc,
		Exporter:    exportSvc,
		DB:          dbPool,
		Logger:      logger,
		Metrics:     metrics.New(registry),
		Gatherer:    registry,
		CORSOrigins: cfg.Server.CORSAllowedOrigins,
	})

	srv := server.New(cfg.Server, router, dbPool, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
	logger.Info("server stopped")
}
