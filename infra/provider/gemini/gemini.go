// Package gemini implements the AI schedule optimizer and the trade-history
// analyzer on top of the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/proppilot/pkg/config"
	"github.com/amirasaad/proppilot/pkg/domain"
	"github.com/amirasaad/proppilot/pkg/provider"
	"google.golang.org/genai"
)

// Client calls the Gemini API with structured JSON output enabled.
type Client struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// New creates a Gemini-backed provider client. The API key is required.
func New(ctx context.Context, cfg config.Gemini, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Client{
		client: client,
		model:  cfg.Model,
		logger: logger.With("provider", "gemini"),
	}, nil
}

// OptimizeSchedule asks the model for a full weekly schedule covering the
// given accounts and validates the shape of the answer before returning it.
func (c *Client) OptimizeSchedule(ctx context.Context, accounts []provider.AccountSummary) (domain.Schedule, error) {
	payload, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding accounts: %w", err)
	}

	prompt := fmt.Sprintf(optimizePromptTemplate, string(payload))
	raw, err := c.generateJSON(ctx, prompt, scheduleSchema())
	if err != nil {
		return nil, fmt.Errorf("optimize schedule: %w", err)
	}

	var schedule domain.Schedule
	if err := json.Unmarshal([]byte(raw), &schedule); err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrMalformedResponse, err)
	}
	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrMalformedResponse, err)
	}
	return schedule, nil
}

// AnalyzeTradeHistory turns the text content of an uploaded trade-history
// file into a statistical breakdown.
func (c *Client) AnalyzeTradeHistory(ctx context.Context, content string) (*provider.TradingStats, error) {
	prompt := fmt.Sprintf(analyzePromptTemplate, content)
	raw, err := c.generateJSON(ctx, prompt, tradingStatsSchema())
	if err != nil {
		return nil, fmt.Errorf("analyze trade history: %w", err)
	}

	var stats provider.TradingStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrMalformedResponse, err)
	}
	return &stats, nil
}

func (c *Client) generateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", provider.ErrMalformedResponse
	}
	return text, nil
}

func scheduleSchema() *genai.Schema {
	daySchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"london": {
				Type:        genai.TypeArray,
				Description: "Account IDs for the London session.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"newYork": {
				Type:        genai.TypeArray,
				Description: "Account IDs for the New York session.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"london", "newYork"},
	}

	properties := make(map[string]*genai.Schema, len(domain.Days()))
	required := make([]string, 0, len(domain.Days()))
	for _, day := range domain.Days() {
		properties[string(day)] = daySchema
		required = append(required, string(day))
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
		Required:   required,
	}
}

func statSummarySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"trades":       {Type: genai.TypeInteger, Description: "Total number of trades."},
			"pnl":          {Type: genai.TypeNumber, Description: "Net profit and loss."},
			"wins":         {Type: genai.TypeInteger, Description: "Number of winning trades."},
			"losses":       {Type: genai.TypeInteger, Description: "Number of losing trades."},
			"winRate":      {Type: genai.TypeNumber, Description: "Percentage of winning trades (0 to 100)."},
			"avgWin":       {Type: genai.TypeNumber, Description: "Average PnL of winning trades."},
			"avgLoss":      {Type: genai.TypeNumber, Description: "Average PnL of losing trades, as a negative number."},
			"profitFactor": {Type: genai.TypeNumber, Description: "Gross profit divided by gross loss. Null if no losses."},
		},
		Required: []string{"trades", "pnl", "wins", "losses", "winRate", "avgWin", "avgLoss"},
	}
}

func keyedSummarySchema(keyDescription string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"key":     {Type: genai.TypeString, Description: keyDescription},
				"summary": statSummarySchema(),
			},
			Required: []string{"key", "summary"},
		},
	}
}

func tradingStatsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"overall":     statSummarySchema(),
			"byAsset":     keyedSummarySchema("The trading symbol, e.g. 'EURUSD'."),
			"byDayOfWeek": keyedSummarySchema("The day of the week, e.g. 'Monday'."),
			"byHour":      keyedSummarySchema("The hour of the day in 24-hour format, e.g. '09'."),
			"byMonth":     keyedSummarySchema("The month name, e.g. 'January'."),
			"byWeek":      keyedSummarySchema("The week of the year, e.g. 'Week 30'."),
			"byDirection": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"long":  statSummarySchema(),
					"short": statSummarySchema(),
				},
				Required: []string{"long", "short"},
			},
		},
		Required: []string{"overall", "byAsset", "byDayOfWeek", "byHour", "byMonth", "byWeek", "byDirection"},
	}
}

const optimizePromptTemplate = `You are an expert logistics and scheduling assistant for a professional proprietary firm trader.
Your task is to create an optimal weekly trading schedule for the provided list of accounts, following a strict set of rules.

Trader's rules:
1. The schedule runs from Monday to Friday.
2. Each day has two sessions: London and New York.
3. A maximum of TWO accounts can be scheduled in any single session. This is a hard limit.
4. Distribute the trading workload as evenly as possible throughout the week. Avoid leaving sessions empty if accounts are available.
5. First, ensure every single account from the list is scheduled at least once during the week.
6. After every account has been scheduled once, fill remaining empty slots by scheduling accounts a second or subsequent time.
7. When re-scheduling accounts, keep prioritizing an even distribution across all sessions and days.
8. If there are more accounts than the 20 available slots, some accounts may remain unscheduled.

Here is the list of trading accounts to be scheduled:
%s

Generate the full 5-day schedule. Respond with a single valid JSON object adhering to the schema, with no surrounding text or markdown.`

const analyzePromptTemplate = `You are a trading performance analyst. Analyze the provided trading history and generate a detailed statistical breakdown. The data is the text content of a user-uploaded file, which could be CSV, HTML, or a text representation of an Excel sheet.

Parse the data to identify trades. Look for columns representing: Symbol, Open Time, Close Time, Direction ('long' or 'short'), and PnL (a number). The column order may vary and the data may be comma-separated, tab-separated, or inside HTML table tags. From Open Time extract the hour, day of the week, week of the year, and month.

For each category compute: total trades, net PnL, wins and losses, win rate (percentage), average win and average loss PnL, and profit factor (gross profit / absolute gross loss, null when there are no losses).

Cover: overall performance, by asset, by day of week, by hour (24-hour format), by month, by week of the year, and by direction.

Here is the trading data:
%s

Respond with a single valid JSON object adhering to the schema, with no surrounding text or markdown.`

var (
	_ provider.ScheduleOptimizer = (*Client)(nil)
	_ provider.StatsAnalyzer     = (*Client)(nil)
)
