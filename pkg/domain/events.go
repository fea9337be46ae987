package domain

import "github.com/google/uuid"

// Event is implemented by all domain events published on the event bus.
type Event interface {
	Type() string
}

// EventAccountsChanged is published after every committed account mutation.
const EventAccountsChanged = "accounts.changed"

// AccountsChanged carries the committed view of the account collection:
// the ordered active subset and the set of ids still present in the store.
// Consumers must not mutate either field.
type AccountsChanged struct {
	Active    []Account
	Remaining map[uuid.UUID]struct{}
}

// Type implements Event.
func (AccountsChanged) Type() string { return EventAccountsChanged }
