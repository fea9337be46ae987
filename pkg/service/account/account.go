// Package account implements the account store: the authoritative in-memory
// account collection, kept consistent with the remote persistence service
// through optimistic mutations that roll back on failure.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/proppilot/pkg/cache"
	"github.com/amirasaad/proppilot/pkg/config"
	"github.com/amirasaad/proppilot/pkg/domain"
	"github.com/amirasaad/proppilot/pkg/eventbus"
	"github.com/amirasaad/proppilot/pkg/metrics"
	"github.com/amirasaad/proppilot/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service owns the authoritative account collection.
//
// Every mutation is optimistic: the local list changes first, then the remote
// persistence request is issued. On failure the list is restored verbatim
// from a snapshot, so after any operation settles the state is either fully
// applied or identical to the pre-operation state. A store-level mutex
// serializes overlapping mutations.
type Service struct {
	mu       sync.RWMutex
	accounts []domain.Account

	repo      repository.AccountRepository
	mirror    cache.SnapshotCache
	bus       eventbus.Bus
	collector *metrics.Collector
	logger    *slog.Logger
}

// AccountDraft carries the user-supplied fields for a new account.
type AccountDraft struct {
	Name           string
	Company        string
	Size           decimal.Decimal
	Cost           decimal.Decimal
	Status         domain.AccountStatus
	SuspensionDate *time.Time
}

// WithdrawalDraft carries the user-supplied fields for a new withdrawal.
type WithdrawalDraft struct {
	Date   time.Time
	Amount decimal.Decimal
}

// NewService creates the account store with the provided dependencies.
func NewService(deps config.Deps) *Service {
	return &Service{
		repo:      deps.Repo,
		mirror:    deps.Mirror,
		bus:       deps.Bus,
		collector: deps.Metrics,
		logger:    deps.Logger.With("service", "account"),
	}
}

// List returns a deep copy of the current account collection.
func (s *Service) List() []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneAccounts(s.accounts)
}

// Load hydrates the store at startup. The remote collection wins; when the
// remote read fails the local durable mirror is consulted instead. Mirror
// failures are logged and non-fatal. The returned error reports the remote
// failure even when the mirror supplied a fallback collection.
func (s *Service) Load(ctx context.Context) error {
	accounts, err := s.repo.List(ctx)
	if err == nil {
		s.replace(accounts)
		s.mu.RLock()
		s.writeMirror(ctx)
		s.mu.RUnlock()
		s.logger.Info("accounts loaded from persistence service", "count", len(accounts))
		return nil
	}

	s.logger.Warn("remote account load failed, trying local mirror", "error", err)
	if s.mirror != nil {
		mirrored, merr := s.mirror.Read(ctx)
		if merr == nil {
			s.replace(mirrored)
			s.logger.Info("accounts loaded from local mirror", "count", len(mirrored))
			return fmt.Errorf("loading accounts: %w", err)
		}
		if !errors.Is(merr, cache.ErrNoSnapshot) {
			s.logger.Warn("reading local mirror failed", "error", merr)
		}
	}
	return fmt.Errorf("loading accounts: %w", err)
}

// Add constructs a new account from the draft, appends it locally, then
// persists it. On persistence failure the appended record is removed again.
func (s *Service) Add(ctx context.Context, draft AccountDraft) (*domain.Account, error) {
	builder := domain.New().
		WithName(draft.Name).
		WithCompany(draft.Company).
		WithSize(draft.Size).
		WithCost(draft.Cost).
		WithStatus(draft.Status)
	if draft.SuspensionDate != nil {
		builder = builder.WithSuspensionDate(*draft.SuspensionDate)
	}
	acct, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("add account: %w", err)
	}

	err = s.mutate(ctx, "add",
		func(accounts []domain.Account) ([]domain.Account, error) {
			return append(accounts, acct.Clone()), nil
		},
		func(ctx context.Context) error {
			return s.repo.Create(ctx, *acct)
		})
	if err != nil {
		return nil, err
	}
	s.publishChanged(ctx)
	return acct, nil
}

// Update replaces the whole record matching the account id, then persists it.
// On persistence failure the previous list is restored verbatim.
func (s *Service) Update(ctx context.Context, account domain.Account) error {
	updated := account.Clone()
	updated.Normalize()

	err := s.mutate(ctx, "update",
		func(accounts []domain.Account) ([]domain.Account, error) {
			for i := range accounts {
				if accounts[i].ID == updated.ID {
					accounts[i] = updated
					return accounts, nil
				}
			}
			return nil, domain.ErrAccountNotFound
		},
		func(ctx context.Context) error {
			return s.repo.Update(ctx, updated)
		})
	if err != nil {
		return err
	}
	s.publishChanged(ctx)
	return nil
}

// Delete removes the record locally, then persists the removal. Schedule
// pruning is a consequence of the confirmed deletion: the change event is
// only published after the remote delete succeeds, so a failed delete leaves
// both the list and the schedule untouched.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.mutate(ctx, "delete",
		func(accounts []domain.Account) ([]domain.Account, error) {
			kept := make([]domain.Account, 0, len(accounts))
			for _, a := range accounts {
				if a.ID != id {
					kept = append(kept, a)
				}
			}
			if len(kept) == len(accounts) {
				return nil, domain.ErrAccountNotFound
			}
			return kept, nil
		},
		func(ctx context.Context) error {
			return s.repo.Delete(ctx, id)
		})
	if err != nil {
		return err
	}
	s.publishChanged(ctx)
	return nil
}

// AddWithdrawal appends a withdrawal with a generated id to the owning
// account and persists the whole record. An unknown account id is a silent
// no-op.
func (s *Service) AddWithdrawal(ctx context.Context, accountID uuid.UUID, draft WithdrawalDraft) error {
	target, ok := s.find(accountID)
	if !ok {
		s.logger.Debug("withdrawal for unknown account ignored", "account_id", accountID)
		return nil
	}

	withdrawal, err := domain.NewWithdrawal(draft.Date, draft.Amount)
	if err != nil {
		return fmt.Errorf("add withdrawal: %w", err)
	}
	target.Withdrawals = append(target.Withdrawals, withdrawal)

	if err := s.Update(ctx, target); err != nil {
		// The account vanished between lookup and update; still a no-op.
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// DeleteWithdrawal removes the withdrawal from the owning account and
// persists the whole record. An unknown account id is a silent no-op.
func (s *Service) DeleteWithdrawal(ctx context.Context, accountID, withdrawalID uuid.UUID) error {
	target, ok := s.find(accountID)
	if !ok {
		s.logger.Debug("withdrawal delete for unknown account ignored", "account_id", accountID)
		return nil
	}

	kept := make([]domain.Withdrawal, 0, len(target.Withdrawals))
	for _, w := range target.Withdrawals {
		if w.ID != withdrawalID {
			kept = append(kept, w)
		}
	}
	target.Withdrawals = kept

	if err := s.Update(ctx, target); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// mutate is the shared optimistic transaction helper: snapshot, apply,
// persist, commit-or-restore. apply receives a deep copy of the current list
// so the snapshot itself is never touched.
func (s *Service) mutate(
	ctx context.Context,
	op string,
	apply func([]domain.Account) ([]domain.Account, error),
	persist func(context.Context) error,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.accounts
	next, err := apply(domain.CloneAccounts(s.accounts))
	if err != nil {
		return fmt.Errorf("%s account: %w", op, err)
	}

	s.accounts = next
	if err := persist(ctx); err != nil {
		s.accounts = snapshot
		if s.collector != nil {
			s.collector.RecordMutation(op, false)
		}
		s.logger.Error("persistence failed, local state reverted", "operation", op, "error", err)
		return fmt.Errorf("%s account: %w", op, err)
	}

	if s.collector != nil {
		s.collector.RecordMutation(op, true)
	}
	s.writeMirror(ctx)
	return nil
}

// find returns a deep copy of the account with the given id.
func (s *Service) find(id uuid.UUID) (domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			return s.accounts[i].Clone(), true
		}
	}
	return domain.Account{}, false
}

func (s *Service) replace(accounts []domain.Account) {
	normalized := domain.CloneAccounts(accounts)
	for i := range normalized {
		normalized[i].Normalize()
	}
	s.mu.Lock()
	s.accounts = normalized
	s.mu.Unlock()
}

// writeMirror rewrites the local durable mirror; callers hold at least a read
// lock. Mirror failures are logged and non-fatal.
func (s *Service) writeMirror(ctx context.Context) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.Write(ctx, domain.CloneAccounts(s.accounts)); err != nil {
		s.logger.Warn("failed to mirror account snapshot", "error", err)
	}
}

// publishChanged emits the committed view of the collection after a
// successful mutation.
func (s *Service) publishChanged(ctx context.Context) {
	if s.bus == nil {
		return
	}

	s.mu.RLock()
	event := &domain.AccountsChanged{
		Remaining: make(map[uuid.UUID]struct{}, len(s.accounts)),
	}
	for _, a := range s.accounts {
		event.Remaining[a.ID] = struct{}{}
		if a.Active() {
			event.Active = append(event.Active, a.Clone())
		}
	}
	s.mu.RUnlock()

	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish accounts change", "error", err)
	}
}
