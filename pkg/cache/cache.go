// Package cache defines the local durable mirror of the committed account
// collection. The mirror is strictly best-effort: in-memory state stays
// authoritative for the session and mirror failures are never fatal.
package cache

import (
	"context"
	"errors"

	"github.com/amirasaad/proppilot/pkg/domain"
)

// SnapshotKey is the fixed key under which the committed account collection
// is mirrored.
const SnapshotKey = "prop-trader-accounts"

// ErrNoSnapshot is returned by Read when no mirrored collection exists yet.
var ErrNoSnapshot = errors.New("no account snapshot in cache")

// SnapshotCache mirrors the committed account collection to a durable
// key-value slot. It is read once at startup and rewritten after every
// committed change.
type SnapshotCache interface {
	Read(ctx context.Context) ([]domain.Account, error)
	Write(ctx context.Context, accounts []domain.Account) error
}
