// Package schedule implements the trigger policy that decides when the
// weekly schedule is regenerated, pruned, or reset, plus the explicit manual
// and AI-assisted regeneration paths.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/amirasaad/proppilot/pkg/config"
	"github.com/amirasaad/proppilot/pkg/domain"
	"github.com/amirasaad/proppilot/pkg/eventbus"
	"github.com/amirasaad/proppilot/pkg/metrics"
	"github.com/amirasaad/proppilot/pkg/provider"
	engine "github.com/amirasaad/proppilot/pkg/schedule"
	"github.com/google/uuid"
)

var (
	// ErrNoActiveAccounts is returned when an explicit regeneration is
	// requested with zero active accounts.
	ErrNoActiveAccounts = errors.New("at least one active account is required to generate a schedule")

	// ErrOptimizerUnavailable is returned when no optimizer is configured.
	ErrOptimizerUnavailable = errors.New("schedule optimizer is not configured")
)

// AccountLister exposes the committed account collection.
type AccountLister interface {
	List() []domain.Account
}

// Service holds the current weekly schedule and reacts to account changes.
//
// The policy tracks the active-account count across changes: growth triggers
// a wholesale regeneration, dropping to zero resets the schedule, and
// anything else only prunes ids of accounts that left the store entirely.
// Accounts that merely became pending or suspended stay in the schedule.
type Service struct {
	mu         sync.RWMutex
	schedule   domain.Schedule
	prevActive int

	lister     AccountLister
	optimizer  provider.ScheduleOptimizer
	engineOpts []engine.Option
	collector  *metrics.Collector
	logger     *slog.Logger
}

// NewService creates the schedule service. The schedule starts empty.
func NewService(deps config.Deps, lister AccountLister) *Service {
	var opts []engine.Option
	if deps.Scheduler.FridayNewYork {
		opts = append(opts, engine.WithFridayNewYork(true))
	}
	return &Service{
		schedule:   domain.EmptySchedule(),
		lister:     lister,
		optimizer:  deps.Optimizer,
		engineOpts: opts,
		collector:  deps.Metrics,
		logger:     deps.Logger.With("service", "schedule"),
	}
}

// Subscribe registers the trigger policy on the event bus.
func (s *Service) Subscribe(bus eventbus.Bus) {
	bus.Subscribe(domain.EventAccountsChanged, s.onAccountsChanged)
}

// Current returns a deep copy of the weekly schedule.
func (s *Service) Current() domain.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule.Clone()
}

// Regenerate bypasses the trigger policy and regenerates the schedule
// unconditionally. Unlike the automatic path, zero active accounts is an
// explicit error rather than a silent no-op.
func (s *Service) Regenerate(ctx context.Context) (domain.Schedule, error) {
	active := activeAccounts(s.lister.List())
	if len(active) == 0 {
		return nil, ErrNoActiveAccounts
	}

	s.mu.Lock()
	s.schedule = engine.Generate(active, s.engineOpts...)
	s.prevActive = len(active)
	result := s.schedule.Clone()
	s.mu.Unlock()

	if s.collector != nil {
		s.collector.RecordScheduleGeneration("manual")
	}
	s.logger.Info("schedule regenerated", "active_accounts", len(active))
	return result, nil
}

// Optimize asks the configured AI optimizer for a replacement schedule. The
// response is structurally validated before it replaces the current
// schedule; on any failure the prior schedule is preserved unchanged.
func (s *Service) Optimize(ctx context.Context) (domain.Schedule, error) {
	if s.optimizer == nil {
		return nil, ErrOptimizerUnavailable
	}
	active := activeAccounts(s.lister.List())
	if len(active) == 0 {
		return nil, ErrNoActiveAccounts
	}

	optimized, err := s.optimizer.OptimizeSchedule(ctx, provider.Summarize(active))
	if err != nil {
		return nil, fmt.Errorf("optimizing schedule: %w", err)
	}
	if err := optimized.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrMalformedResponse, err)
	}

	s.mu.Lock()
	s.schedule = optimized.Clone()
	s.prevActive = len(active)
	result := s.schedule.Clone()
	s.mu.Unlock()

	if s.collector != nil {
		s.collector.RecordScheduleGeneration("optimizer")
	}
	s.logger.Info("schedule replaced by optimizer", "active_accounts", len(active))
	return result, nil
}

// onAccountsChanged is the trigger policy state machine.
func (s *Service) onAccountsChanged(ctx context.Context, event domain.Event) {
	changed, ok := event.(*domain.AccountsChanged)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := len(changed.Active)
	switch {
	case current > s.prevActive:
		s.schedule = engine.Generate(changed.Active, s.engineOpts...)
		if s.collector != nil {
			s.collector.RecordScheduleGeneration("auto")
		}
		s.logger.Info("schedule regenerated on growth",
			"previous_active", s.prevActive, "current_active", current)
	case current == 0 && s.prevActive > 0:
		s.schedule = domain.EmptySchedule()
		s.logger.Info("schedule reset, no active accounts left")
	default:
		// No growth: keep the schedule but drop ids of accounts that left
		// the store entirely. Status demotions are not pruned.
		s.schedule.PruneMissing(func(id uuid.UUID) bool {
			_, present := changed.Remaining[id]
			return present
		})
	}
	s.prevActive = current
}

func activeAccounts(accounts []domain.Account) []domain.Account {
	active := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if a.Active() {
			active = append(active, a)
		}
	}
	return active
}
