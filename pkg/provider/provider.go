// Package provider defines the contracts for the external AI collaborators:
// the schedule optimizer and the trade-history analyzer.
package provider

import (
	"context"
	"errors"

	"github.com/amirasaad/proppilot/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrMalformedResponse marks a provider response that failed shape validation.
var ErrMalformedResponse = errors.New("malformed provider response")

// AccountSummary is the slice of account data shared with the optimizer.
type AccountSummary struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Company string          `json:"company"`
	Size    decimal.Decimal `json:"size"`
}

// Summarize extracts optimizer-facing summaries from full account records.
func Summarize(accounts []domain.Account) []AccountSummary {
	out := make([]AccountSummary, len(accounts))
	for i, a := range accounts {
		out[i] = AccountSummary{ID: a.ID, Name: a.Name, Company: a.Company, Size: a.Size}
	}
	return out
}

// ScheduleOptimizer produces a full weekly schedule for the given accounts.
// Implementations must return a schedule that passes domain validation or an
// error wrapping ErrMalformedResponse.
type ScheduleOptimizer interface {
	OptimizeSchedule(ctx context.Context, accounts []AccountSummary) (domain.Schedule, error)
}

// StatsAnalyzer turns raw uploaded trade-history text into statistics.
type StatsAnalyzer interface {
	AnalyzeTradeHistory(ctx context.Context, content string) (*TradingStats, error)
}

// StatSummary is one aggregated block of trade statistics.
type StatSummary struct {
	Trades       int      `json:"trades"`
	PnL          float64  `json:"pnl"`
	Wins         int      `json:"wins"`
	Losses       int      `json:"losses"`
	WinRate      float64  `json:"winRate"`
	AvgWin       float64  `json:"avgWin"`
	AvgLoss      float64  `json:"avgLoss"`
	ProfitFactor *float64 `json:"profitFactor,omitempty"`
}

// KeyedSummary pairs a grouping key (asset, weekday, hour, ...) with its
// statistics.
type KeyedSummary struct {
	Key     string      `json:"key"`
	Summary StatSummary `json:"summary"`
}

// DirectionStats splits performance by trade direction.
type DirectionStats struct {
	Long  StatSummary `json:"long"`
	Short StatSummary `json:"short"`
}

// TradingStats is the full statistical breakdown of an uploaded trade history.
type TradingStats struct {
	Overall     StatSummary    `json:"overall"`
	ByAsset     []KeyedSummary `json:"byAsset"`
	ByDayOfWeek []KeyedSummary `json:"byDayOfWeek"`
	ByHour      []KeyedSummary `json:"byHour"`
	ByMonth     []KeyedSummary `json:"byMonth"`
	ByWeek      []KeyedSummary `json:"byWeek"`
	ByDirection DirectionStats `json:"byDirection"`
}
