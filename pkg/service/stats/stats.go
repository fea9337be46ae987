// Package stats delegates trade-history analysis to the external
// text-analysis collaborator. No allocation or consistency logic depends on
// the result.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/proppilot/pkg/provider"
)

var (
	// ErrAnalyzerUnavailable is returned when no analyzer is configured.
	ErrAnalyzerUnavailable = errors.New("trade-history analyzer is not configured")

	// ErrEmptyHistory is returned when the uploaded file text is empty.
	ErrEmptyHistory = errors.New("trade history content is empty")
)

// Service wraps the trade-history analyzer collaborator.
type Service struct {
	analyzer provider.StatsAnalyzer
	logger   *slog.Logger
}

// NewService creates the stats service. The analyzer may be nil when the AI
// collaborator is not configured.
func NewService(analyzer provider.StatsAnalyzer, logger *slog.Logger) *Service {
	return &Service{analyzer: analyzer, logger: logger.With("service", "stats")}
}

// Analyze turns raw uploaded trade-history text into statistics.
func (s *Service) Analyze(ctx context.Context, content string) (*provider.TradingStats, error) {
	if s.analyzer == nil {
		return nil, ErrAnalyzerUnavailable
	}
	if content == "" {
		return nil, ErrEmptyHistory
	}

	stats, err := s.analyzer.AnalyzeTradeHistory(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("analyzing trade history: %w", err)
	}
	s.logger.Info("trade history analyzed", "trades", stats.Overall.Trades)
	return stats, nil
}
