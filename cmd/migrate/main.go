package main

import (
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/ogurasousui/shift-scheduler/internal/platform/config"
	"github.com/ogurasousui/shift-scheduler/internal/platform/db/migration"
	"github.com/ogurasousui/shift-scheduler/internal/platform/logging"
)

func main() {
	var (
		configPath    = flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
		migrationsDir = flag.String("dir", "", "directory containing migration files (defaults to migrations.dir in config)")
	)
	flag.Parse()

	raw := string(migration.ActionUp)
	if flag.NArg() > 0 {
		raw = flag.Arg(0)
	}

	cfg, err := config.Load(effectiveConfigPath(*configPath))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	action, err := migration.ParseAction(raw)
	if err != nil {
		logger.Fatal("invalid migration action", zap.Error(err))
	}

	dir := cfg.Migrations.Dir
	if *migrationsDir != "" {
		dir = *migrationsDir
	}

	status, err := migration.Run(action, dir, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("migration failed", zap.String("action", string(action)), zap.String("dir", dir), zap.Error(err))
	}

	if !status.Applied {
		logger.Info("migration completed; no migration applied", zap.String("action", string(action)))
		return
	}
	logger.Info("migration completed",
		zap.String("action", string(action)),
		zap.Uint("version", status.Version),
		zap.Bool("dirty", status.Dirty),
	)
}

func effectiveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "assets/local.yaml"
}
