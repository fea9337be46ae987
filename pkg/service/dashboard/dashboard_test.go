package dashboard

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/proppilot/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeLister struct {
	accounts []domain.Account
}

func (f *fakeLister) List() []domain.Account { return f.accounts }

func account(size, cost int64, withdrawals ...int64) domain.Account {
	a := domain.Account{
		ID:      uuid.New(),
		Name:    "a",
		Company: "c",
		Size:    decimal.NewFromInt(size),
		Cost:    decimal.NewFromInt(cost),
		Status:  domain.StatusActive,
	}
	for _, amount := range withdrawals {
		a.Withdrawals = append(a.Withdrawals, domain.Withdrawal{
			ID:     uuid.New(),
			Date:   time.Now(),
			Amount: decimal.NewFromInt(amount),
		})
	}
	return a
}

func TestCompute(t *testing.T) {
	m := Compute([]domain.Account{
		account(100000, 540, 1200),
		account(50000, 165),
	})

	assert.True(t, m.TotalBalance.Equal(decimal.NewFromInt(150000)), "got %s", m.TotalBalance)
	assert.True(t, m.TotalCosts.Equal(decimal.NewFromInt(705)), "got %s", m.TotalCosts)
	assert.True(t, m.TotalWithdrawals.Equal(decimal.NewFromInt(1200)), "got %s", m.TotalWithdrawals)
	assert.True(t, m.NetProfit.Equal(decimal.NewFromInt(495)), "got %s", m.NetProfit)
	assert.InDelta(t, 50.0, m.WithdrawalSuccessRate, 1e-9)
}

func TestCompute_Empty(t *testing.T) {
	m := Compute(nil)
	assert.True(t, m.TotalBalance.IsZero())
	assert.True(t, m.TotalCosts.IsZero())
	assert.True(t, m.TotalWithdrawals.IsZero())
	assert.True(t, m.NetProfit.IsZero())
	assert.Zero(t, m.WithdrawalSuccessRate)
}

func TestCompute_NegativeNetProfit(t *testing.T) {
	m := Compute([]domain.Account{account(10000, 300)})
	assert.True(t, m.NetProfit.Equal(decimal.NewFromInt(-300)), "got %s", m.NetProfit)
	assert.Zero(t, m.WithdrawalSuccessRate)
}

func TestCompute_MultipleWithdrawalsCountOnce(t *testing.T) {
	m := Compute([]domain.Account{
		account(10000, 100, 200, 300),
		account(10000, 100),
	})
	assert.True(t, m.TotalWithdrawals.Equal(decimal.NewFromInt(500)))
	assert.InDelta(t, 50.0, m.WithdrawalSuccessRate, 1e-9)
}

func TestService_Metrics(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(&fakeLister{accounts: []domain.Account{account(100000, 540, 1200)}}, logger)

	m := svc.Metrics()
	assert.True(t, m.TotalBalance.Equal(decimal.NewFromInt(100000)))
	assert.InDelta(t, 100.0, m.WithdrawalSuccessRate, 1e-9)
}
