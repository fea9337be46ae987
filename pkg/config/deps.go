package config

import (
	"log/slog"

	"github.com/amirasaad/proppilot/pkg/cache"
	"github.com/amirasaad/proppilot/pkg/eventbus"
	"github.com/amirasaad/proppilot/pkg/metrics"
	"github.com/amirasaad/proppilot/pkg/provider"
	"github.com/amirasaad/proppilot/pkg/repository"
)

// Deps bundles the shared dependencies handed to the services.
type Deps struct {
	Repo      repository.AccountRepository
	Mirror    cache.SnapshotCache // optional
	Bus       eventbus.Bus
	Optimizer provider.ScheduleOptimizer // optional
	Analyzer  provider.StatsAnalyzer     // optional
	Metrics   *metrics.Collector
	Logger    *slog.Logger
	Scheduler Scheduler
}
