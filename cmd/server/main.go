package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	infracache "github.com/amirasaad/proppilot/infra/cache"
	infrabus "github.com/amirasaad/proppilot/infra/eventbus"
	"github.com/amirasaad/proppilot/infra/provider/gemini"
	"github.com/amirasaad/proppilot/infra/repository/remote"
	"github.com/amirasaad/proppilot/pkg/config"
	"github.com/amirasaad/proppilot/pkg/metrics"
	accountsvc "github.com/amirasaad/proppilot/pkg/service/account"
	dashboardsvc "github.com/amirasaad/proppilot/pkg/service/dashboard"
	schedulesvc "github.com/amirasaad/proppilot/pkg/service/schedule"
	statssvc "github.com/amirasaad/proppilot/pkg/service/stats"
	"github.com/amirasaad/proppilot/webapi"
	"github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	ctx := context.Background()
	collector := metrics.NewCollector(logger)
	bus := infrabus.NewWithMemory(logger)

	deps := config.Deps{
		Repo:      remote.New(cfg.Persistence, logger),
		Bus:       bus,
		Metrics:   collector,
		Logger:    logger,
		Scheduler: cfg.Scheduler,
	}

	if cfg.Redis.URL != "" {
		mirror, err := infracache.NewRedisSnapshotCache(cfg.Redis.URL, cfg.Redis.KeyPrefix, logger)
		if err != nil {
			logger.Warn("local mirror disabled", "error", err)
		} else {
			deps.Mirror = mirror
		}
	}

	if cfg.Gemini.APIKey != "" {
		ai, err := gemini.New(ctx, cfg.Gemini, logger)
		if err != nil {
			logger.Warn("AI features disabled", "error", err)
		} else {
			deps.Optimizer = ai
			deps.Analyzer = ai
		}
	}

	store := accountsvc.NewService(deps)
	scheduleSvc := schedulesvc.NewService(deps, store)
	scheduleSvc.Subscribe(bus)
	dashboardSvc := dashboardsvc.NewService(store, logger)
	statsSvc := statssvc.NewService(deps.Analyzer, logger)

	if err := store.Load(ctx); err != nil {
		logger.Warn("starting with a possibly stale account collection", "error", err)
	}

	app := webapi.NewApp(cfg, webapi.Services{
		Account:   store,
		Schedule:  scheduleSvc,
		Dashboard: dashboardSvc,
		Stats:     statsSvc,
		Collector: collector,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}
