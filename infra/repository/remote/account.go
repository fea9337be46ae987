// Package remote implements the account repository against the remote
// persistence service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/amirasaad/proppilot/pkg/config"
	"github.com/amirasaad/proppilot/pkg/domain"
	"github.com/amirasaad/proppilot/pkg/repository"
	"github.com/google/uuid"
)

const accountsPath = "/accounts"

// AccountRepository talks to the remote persistence service over HTTP.
// Any transport error, non-success status, or unparseable body is reported as
// an error wrapping repository.ErrPersistence. Requests are never retried.
type AccountRepository struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// writeResponse is the envelope the persistence service returns for writes.
type writeResponse struct {
	Success bool   `json:"success"`
	Details string `json:"details,omitempty"`
	Error   string `json:"error,omitempty"`
}

// New creates an account repository from the persistence config.
func New(cfg config.Persistence, logger *slog.Logger) *AccountRepository {
	return &AccountRepository{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger.With("repository", "remote"),
	}
}

// List fetches the full current account collection.
func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+accountsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", repository.ErrPersistence, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrPersistence, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", repository.ErrPersistence, resp.StatusCode, string(body))
	}

	var accounts []domain.Account
	if err := json.NewDecoder(resp.Body).Decode(&accounts); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", repository.ErrPersistence, err)
	}
	return accounts, nil
}

// Create persists a newly added account.
func (r *AccountRepository) Create(ctx context.Context, account domain.Account) error {
	return r.write(ctx, http.MethodPost, account)
}

// Update replaces the persisted record matching the account id.
func (r *AccountRepository) Update(ctx context.Context, account domain.Account) error {
	return r.write(ctx, http.MethodPut, account)
}

// Delete removes the persisted record with the given id.
func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.write(ctx, http.MethodDelete, map[string]uuid.UUID{"id": id})
}

func (r *AccountRepository) write(ctx context.Context, method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encoding request: %v", repository.ErrPersistence, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+accountsPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: building request: %v", repository.ErrPersistence, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrPersistence, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		r.logger.Warn("persistence write rejected", "method", method, "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d: %s", repository.ErrPersistence, resp.StatusCode, string(raw))
	}

	var envelope writeResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: decoding response: %v", repository.ErrPersistence, err)
	}
	if !envelope.Success {
		detail := envelope.Details
		if detail == "" {
			detail = envelope.Error
		}
		return fmt.Errorf("%w: %s", repository.ErrPersistence, detail)
	}
	return nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
