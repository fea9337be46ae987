// Package dashboard derives the roll-up numbers shown on the dashboard from
// the committed account collection.
package dashboard

import (
	"log/slog"

	"github.com/amirasaad/proppilot/pkg/domain"
	"github.com/shopspring/decimal"
)

// Metrics are the aggregated numbers for the full account collection, active
// or not.
type Metrics struct {
	TotalBalance          decimal.Decimal `json:"totalBalance"`
	TotalCosts            decimal.Decimal `json:"totalCosts"`
	TotalWithdrawals      decimal.Decimal `json:"totalWithdrawals"`
	NetProfit             decimal.Decimal `json:"netProfit"`
	WithdrawalSuccessRate float64         `json:"withdrawalSuccessRate"`
}

// Compute reduces the account collection to its metrics. Stateless,
// recomputed on demand.
func Compute(accounts []domain.Account) Metrics {
	m := Metrics{
		TotalBalance:     decimal.Zero,
		TotalCosts:       decimal.Zero,
		TotalWithdrawals: decimal.Zero,
	}

	withWithdrawals := 0
	for _, a := range accounts {
		m.TotalBalance = m.TotalBalance.Add(a.Size)
		m.TotalCosts = m.TotalCosts.Add(a.Cost)
		for _, w := range a.Withdrawals {
			m.TotalWithdrawals = m.TotalWithdrawals.Add(w.Amount)
		}
		if len(a.Withdrawals) > 0 {
			withWithdrawals++
		}
	}

	m.NetProfit = m.TotalWithdrawals.Sub(m.TotalCosts)
	if len(accounts) > 0 {
		m.WithdrawalSuccessRate = float64(withWithdrawals) / float64(len(accounts)) * 100
	}
	return m
}

// AccountLister exposes the committed account collection.
type AccountLister interface {
	List() []domain.Account
}

// Service serves dashboard metrics for the current store contents.
type Service struct {
	lister AccountLister
	logger *slog.Logger
}

// NewService creates the dashboard service.
func NewService(lister AccountLister, logger *slog.Logger) *Service {
	return &Service{lister: lister, logger: logger.With("service", "dashboard")}
}

// Metrics computes the aggregates over the current collection.
func (s *Service) Metrics() Metrics {
	return Compute(s.lister.List())
}
