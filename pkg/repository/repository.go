// Package repository defines the persistence contracts the services depend on.
package repository

import (
	"context"
	"errors"

	"github.com/amirasaad/proppilot/pkg/domain"
	"github.com/google/uuid"
)

// ErrPersistence marks a failed interaction with the persistence service:
// a transport error, a non-success status, or an unparseable body.
var ErrPersistence = errors.New("persistence request failed")

// AccountRepository is the remote persistence contract for the account
// collection. Implementations must report any failure through an error that
// wraps ErrPersistence; they never retry.
type AccountRepository interface {
	// List returns the full current account collection.
	List(ctx context.Context) ([]domain.Account, error)
	// Create persists a newly added account.
	Create(ctx context.Context, account domain.Account) error
	// Update replaces the persisted record matching the account id.
	Update(ctx context.Context, account domain.Account) error
	// Delete removes the persisted record with the given id.
	Delete(ctx context.Context, id uuid.UUID) error
}
