// Package schedule implements the deterministic round-robin allocator that
// turns an ordered list of active accounts into the weekly session plan.
package schedule

import (
	"github.com/amirasaad/proppilot/pkg/domain"
	"github.com/google/uuid"
)

// Session capacity is a fixed policy, derived solely from the size of the
// input list: small rosters get a 2-per-session ceiling, richer ones 3.
const (
	smallRosterCapacity = 2
	largeRosterCapacity = 3
	capacityThreshold   = 3
)

type options struct {
	fridayNewYork bool
}

// Option configures a generation call.
type Option func(*options)

// WithFridayNewYork controls whether Friday's New York session is populated.
// The default (false) matches the product behavior of leaving it empty; the
// cursor is not advanced over the skipped slot.
func WithFridayNewYork(enabled bool) Option {
	return func(o *options) {
		o.fridayNewYork = enabled
	}
}

// Capacity returns the per-session ceiling for a roster of n active accounts.
func Capacity(n int) int {
	if n >= capacityThreshold {
		return largeRosterCapacity
	}
	return smallRosterCapacity
}

// Generate produces a weekly schedule for the ordered active-account list.
//
// A single cyclic cursor advances over the list while the slots are visited
// Monday through Friday, london before newYork. Each slot receives at most
// min(capacity, n) ids, so every account is placed once before any account is
// placed a second time and no slot repeats an account. Generate is pure:
// identical input and options yield identical output.
func Generate(accounts []domain.Account, opts ...Option) domain.Schedule {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	s := domain.EmptySchedule()
	if len(accounts) == 0 {
		return s
	}

	capacity := Capacity(len(accounts))
	ids := make([]uuid.UUID, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID
	}

	cursor := 0
	for _, day := range domain.Days() {
		for _, session := range domain.Sessions() {
			if day == domain.Friday && session == domain.SessionNewYork && !cfg.fridayNewYork {
				continue
			}
			for i := 0; i < capacity; i++ {
				// Never place more entries in one slot than there are
				// distinct accounts.
				if i >= len(ids) {
					break
				}
				s[day][session] = append(s[day][session], ids[cursor])
				cursor = (cursor + 1) % len(ids)
			}
		}
	}
	return s
}
