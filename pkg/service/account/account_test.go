package account

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	infracache "github.com/amirasaad/proppilot/infra/cache"
	infrabus "github.com/amirasaad/proppilot/infra/eventbus"
	"github.com/amirasaad/proppilot/pkg/config"
	"github.com/amirasaad/proppilot/pkg/domain"
	"github.com/amirasaad/proppilot/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	listAccounts []domain.Account
	listErr      error
	createErr    error
	updateErr    error
	deleteErr    error
}

func (f *fakeRepo) List(context.Context) ([]domain.Account, error) {
	return domain.CloneAccounts(f.listAccounts), f.listErr
}
func (f *fakeRepo) Create(context.Context, domain.Account) error { return f.createErr }
func (f *fakeRepo) Update(context.Context, domain.Account) error { return f.updateErr }
func (f *fakeRepo) Delete(context.Context, uuid.UUID) error      { return f.deleteErr }

var _ repository.AccountRepository = (*fakeRepo)(nil)

func newTestService(t *testing.T) (*Service, *fakeRepo, *infrabus.MemoryEventBus) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := &fakeRepo{}
	bus := infrabus.NewWithMemory(logger)
	svc := NewService(config.Deps{Repo: repo, Bus: bus, Logger: logger})
	return svc, repo, bus
}

func draft(name string) AccountDraft {
	return AccountDraft{
		Name:    name,
		Company: "FTMO",
		Size:    decimal.NewFromInt(100000),
		Cost:    decimal.NewFromInt(540),
		Status:  domain.StatusActive,
	}
}

func TestAdd_Success(t *testing.T) {
	svc, _, bus := newTestService(t)

	created, err := svc.Add(context.Background(), draft("Alpha"))
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, domain.StatusActive, created.Status)

	accounts := svc.List()
	require.Len(t, accounts, 1)
	assert.Equal(t, "Alpha", accounts[0].Name)

	events := bus.Published()
	require.Len(t, events, 1)
	changed, ok := events[0].(*domain.AccountsChanged)
	require.True(t, ok)
	assert.Len(t, changed.Active, 1)
	assert.Contains(t, changed.Remaining, created.ID)
}

func TestAdd_ValidationError(t *testing.T) {
	svc, _, bus := newTestService(t)

	_, err := svc.Add(context.Background(), AccountDraft{Company: "FTMO"})
	assert.ErrorIs(t, err, domain.ErrNameRequired)
	assert.Empty(t, svc.List())
	assert.Empty(t, bus.Published())
}

func TestAdd_PersistenceFailureRollsBack(t *testing.T) {
	svc, repo, bus := newTestService(t)
	_, err := svc.Add(context.Background(), draft("Alpha"))
	require.NoError(t, err)
	bus.ClearPublished()

	before := svc.List()
	repo.createErr = repository.ErrPersistence

	_, err = svc.Add(context.Background(), draft("Beta"))
	assert.ErrorIs(t, err, repository.ErrPersistence)
	assert.Equal(t, before, svc.List())
	assert.Empty(t, bus.Published())
}

func TestUpdate_Success(t *testing.T) {
	svc, _, _ := newTestService(t)
	created, err := svc.Add(context.Background(), draft("Alpha"))
	require.NoError(t, err)

	updated := created.Clone()
	updated.Name = "Alpha Prime"
	updated.Status = domain.StatusSuspended
	require.NoError(t, svc.Update(context.Background(), updated))

	accounts := svc.List()
	require.Len(t, accounts, 1)
	assert.Equal(t, "Alpha Prime", accounts[0].Name)
	assert.Equal(t, domain.StatusSuspended, accounts[0].Status)
	assert.NotNil(t, accounts[0].SuspensionDate, "suspension must carry a date")
}

func TestUpdate_ClearsSuspensionDateOnReactivation(t *testing.T) {
	svc, _, _ := newTestService(t)
	d := draft("Alpha")
	d.Status = domain.StatusSuspended
	created, err := svc.Add(context.Background(), d)
	require.NoError(t, err)
	require.NotNil(t, created.SuspensionDate)

	reactivated := created.Clone()
	reactivated.Status = domain.StatusActive
	require.NoError(t, svc.Update(context.Background(), reactivated))

	accounts := svc.List()
	require.Len(t, accounts, 1)
	assert.Nil(t, accounts[0].SuspensionDate)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	ghost := domain.Account{ID: uuid.New(), Name: "Ghost", Company: "FTMO"}
	err := svc.Update(context.Background(), ghost)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestUpdate_PersistenceFailureRollsBack(t *testing.T) {
	svc, repo, bus := newTestService(t)
	created, err := svc.Add(context.Background(), draft("Alpha"))
	require.NoError(t, err)
	bus.ClearPublished()

	before := svc.List()
	repo.updateErr = repository.ErrPersistence

	changed := created.Clone()
	changed.Name = "Changed"
	err = svc.Update(context.Background(), changed)
	assert.ErrorIs(t, err, repository.ErrPersistence)
	assert.Equal(t, before, svc.List())
	assert.Empty(t, bus.Published())
}

func TestDelete_Success(t *testing.T) {
	svc, _, bus := newTestService(t)
	created, err := svc.Add(context.Background(), draft("Alpha"))
	require.NoError(t, err)
	bus.ClearPublished()

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, svc.List())

	events := bus.Published()
	require.Len(t, events, 1)
	changed, ok := events[0].(*domain.AccountsChanged)
	require.True(t, ok)
	assert.NotContains(t, changed.Remaining, created.ID)
}

func TestDelete_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestDelete_PersistenceFailureRollsBack(t *testing.T) {
	svc, repo, bus := newTestService(t)
	created, err := svc.Add(context.Background(), draft("Alpha"))
	require.NoError(t, err)
	bus.ClearPublished()

	before := svc.List()
	repo.deleteErr = repository.ErrPersistence

	err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, repository.ErrPersistence)
	assert.Equal(t, before, svc.List())
	assert.Empty(t, bus.Published(), "a failed delete must not announce a change")
}

func TestAddWithdrawal_Success(t *testing.T) {
	svc, _, _ := newTestService(t)
	created, err := svc.Add(context.Background(), draft("Alpha"))
	require.NoError(t, err)

	err = svc.AddWithdrawal(context.Background(), created.ID, WithdrawalDraft{
		Date:   time.Now(),
		Amount: decimal.NewFromInt(1200),
	})
	require.NoError(t, err)

	accounts := svc.List()
	require.Len(t, accounts, 1)
	require.Len(t, accounts[0].Withdrawals, 1)
	assert.NotEqual(t, uuid.Nil, accounts[0].Withdrawals[0].ID)
	assert.True(t, accounts[0].Withdrawals[0].Amount.Equal(decimal.NewFromInt(1200)))
}

func TestAddWithdrawal_InvalidAmount(t *testing.T) {
	svc, _, _ := newTestService(t)
	created, err := svc.Add(context.Background(), draft("Alpha"))
	require.NoError(t, err)

	err = svc.AddWithdrawal(context.Background(), created.ID, WithdrawalDraft{Date: time.Now()})
	assert.ErrorIs(t, err, domain.ErrWithdrawalAmountMustBePositive)
}

func TestAddWithdrawal_UnknownAccountIsNoOp(t *testing.T) {
	svc, _, bus := newTestService(t)

	err := svc.AddWithdrawal(context.Background(), uuid.New(), WithdrawalDraft{
		Date:   time.Now(),
		Amount: decimal.NewFromInt(10),
	})
	assert.NoError(t, err)
	assert.Empty(t, bus.Published())
}

func TestDeleteWithdrawal_Success(t *testing.T) {
	svc, _, _ := newTestService(t)
	created, err := svc.Add(context.Background(), draft("Alpha"))
	require.NoError(t, err)
	require.NoError(t, svc.AddWithdrawal(context.Background(), created.ID, WithdrawalDraft{
		Date:   time.Now(),
		Amount: decimal.NewFromInt(500),
	}))

	withdrawalID := svc.List()[0].Withdrawals[0].ID
	require.NoError(t, svc.DeleteWithdrawal(context.Background(), created.ID, withdrawalID))
	assert.Empty(t, svc.List()[0].Withdrawals)
}

func TestDeleteWithdrawal_UnknownAccountIsNoOp(t *testing.T) {
	svc, _, _ := newTestService(t)
	err := svc.DeleteWithdrawal(context.Background(), uuid.New(), uuid.New())
	assert.NoError(t, err)
}

func TestLoad_RemoteWins(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	remote := []domain.Account{{ID: uuid.New(), Name: "Remote", Company: "FTMO", Status: domain.StatusActive}}
	repo := &fakeRepo{listAccounts: remote}
	mirror := infracache.NewMemorySnapshotCache()
	require.NoError(t, mirror.Write(context.Background(), []domain.Account{
		{ID: uuid.New(), Name: "Stale", Company: "FTMO"},
	}))
	svc := NewService(config.Deps{Repo: repo, Mirror: mirror, Logger: logger})

	require.NoError(t, svc.Load(context.Background()))

	accounts := svc.List()
	require.Len(t, accounts, 1)
	assert.Equal(t, "Remote", accounts[0].Name)

	mirrored, err := mirror.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, mirrored, 1)
	assert.Equal(t, "Remote", mirrored[0].Name, "successful loads refresh the mirror")
}

func TestLoad_MirrorFallback(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := &fakeRepo{listErr: repository.ErrPersistence}
	mirror := infracache.NewMemorySnapshotCache()
	require.NoError(t, mirror.Write(context.Background(), []domain.Account{
		{ID: uuid.New(), Name: "Mirrored", Company: "FTMO"},
	}))
	svc := NewService(config.Deps{Repo: repo, Mirror: mirror, Logger: logger})

	err := svc.Load(context.Background())
	assert.ErrorIs(t, err, repository.ErrPersistence, "remote failure is reported even after a fallback")

	accounts := svc.List()
	require.Len(t, accounts, 1)
	assert.Equal(t, "Mirrored", accounts[0].Name)
}

func TestLoad_RemoteAndMirrorEmpty(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := &fakeRepo{listErr: repository.ErrPersistence}
	svc := NewService(config.Deps{Repo: repo, Mirror: infracache.NewMemorySnapshotCache(), Logger: logger})

	err := svc.Load(context.Background())
	assert.ErrorIs(t, err, repository.ErrPersistence)
	assert.Empty(t, svc.List())
}

func TestList_ReturnsDeepCopy(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Add(context.Background(), draft("Alpha"))
	require.NoError(t, err)

	leaked := svc.List()
	leaked[0].Name = "Tampered"
	assert.Equal(t, "Alpha", svc.List()[0].Name)
}
