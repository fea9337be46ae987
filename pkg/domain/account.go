// Package domain holds the core entities of the prop-trading tracker:
// accounts, their withdrawals, and the weekly trading schedule.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// The persistence service stores money fields as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

var (
	// ErrAccountNotFound is returned when an account cannot be found in the store.
	ErrAccountNotFound = errors.New("account not found")

	// ErrNameRequired is returned when an account is built without a display name.
	ErrNameRequired = errors.New("account name is required")

	// ErrCompanyRequired is returned when an account is built without a prop firm name.
	ErrCompanyRequired = errors.New("account company is required")

	// ErrNegativeSize is returned when an account size is negative.
	ErrNegativeSize = errors.New("account size must not be negative")

	// ErrNegativeCost is returned when an account cost is negative.
	ErrNegativeCost = errors.New("account cost must not be negative")

	// ErrInvalidStatus is returned when an account status is not one of
	// pending, active or suspended.
	ErrInvalidStatus = errors.New("invalid account status")

	// ErrWithdrawalAmountMustBePositive is returned when a withdrawal amount is not positive.
	ErrWithdrawalAmountMustBePositive = errors.New("withdrawal amount must be positive")
)

// AccountStatus is the lifecycle state of a trading account.
type AccountStatus string

const (
	StatusPending   AccountStatus = "pending"
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
)

// Valid reports whether s is a known account status.
func (s AccountStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusSuspended:
		return true
	}
	return false
}

// Withdrawal is a single profit withdrawal belonging to exactly one account.
type Withdrawal struct {
	ID     uuid.UUID       `json:"id"`
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// NewWithdrawal builds a withdrawal with a fresh id, validating the amount.
func NewWithdrawal(date time.Time, amount decimal.Decimal) (Withdrawal, error) {
	if !amount.IsPositive() {
		return Withdrawal{}, ErrWithdrawalAmountMustBePositive
	}
	return Withdrawal{ID: uuid.New(), Date: date, Amount: amount}, nil
}

// Account is one proprietary trading account under management.
//
// Invariants:
//   - Size and Cost are never negative.
//   - SuspensionDate is set if and only if Status is suspended; it is cleared
//     whenever the status transitions away from suspended.
//   - Withdrawals are ordered by insertion; the order is meaningful for display.
type Account struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Company        string          `json:"company"`
	Size           decimal.Decimal `json:"size"`
	Cost           decimal.Decimal `json:"cost"`
	Status         AccountStatus   `json:"status"`
	SuspensionDate *time.Time      `json:"suspensionDate,omitempty"`
	Withdrawals    []Withdrawal    `json:"withdrawals"`
}

// Active reports whether the account is eligible for scheduling.
func (a Account) Active() bool { return a.Status == StatusActive }

// Clone returns a deep copy of the account.
func (a Account) Clone() Account {
	clone := a
	if a.SuspensionDate != nil {
		t := *a.SuspensionDate
		clone.SuspensionDate = &t
	}
	if a.Withdrawals != nil {
		clone.Withdrawals = make([]Withdrawal, len(a.Withdrawals))
		copy(clone.Withdrawals, a.Withdrawals)
	}
	return clone
}

// CloneAccounts returns a deep copy of the account list.
func CloneAccounts(accounts []Account) []Account {
	if accounts == nil {
		return nil
	}
	out := make([]Account, len(accounts))
	for i, a := range accounts {
		out[i] = a.Clone()
	}
	return out
}

// Builder provides a fluent API for constructing Account instances, ensuring
// only valid accounts are built.
type Builder struct {
	id             uuid.UUID
	name           string
	company        string
	size           decimal.Decimal
	cost           decimal.Decimal
	status         AccountStatus
	suspensionDate *time.Time
	withdrawals    []Withdrawal
}

// New creates a Builder with a fresh id and pending status.
func New() *Builder {
	return &Builder{id: uuid.New(), status: StatusPending}
}

// WithID sets the id of the account being built. Used when hydrating an
// existing account from the persistence service.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithName sets the display name.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithCompany sets the prop firm name.
func (b *Builder) WithCompany(company string) *Builder {
	b.company = company
	return b
}

// WithSize sets the account notional balance.
func (b *Builder) WithSize(size decimal.Decimal) *Builder {
	b.size = size
	return b
}

// WithCost sets the money paid to acquire the account.
func (b *Builder) WithCost(cost decimal.Decimal) *Builder {
	b.cost = cost
	return b
}

// WithStatus sets the lifecycle status.
func (b *Builder) WithStatus(status AccountStatus) *Builder {
	b.status = status
	return b
}

// WithSuspensionDate sets the suspension date. It is dropped at Build time
// unless the status is suspended.
func (b *Builder) WithSuspensionDate(t time.Time) *Builder {
	b.suspensionDate = &t
	return b
}

// WithWithdrawals sets the withdrawal history. Used for hydration.
func (b *Builder) WithWithdrawals(ws []Withdrawal) *Builder {
	b.withdrawals = ws
	return b
}

// Build validates the invariants and returns the account. New accounts get an
// empty (non-nil) withdrawal list.
func (b *Builder) Build() (*Account, error) {
	if b.name == "" {
		return nil, ErrNameRequired
	}
	if b.company == "" {
		return nil, ErrCompanyRequired
	}
	if b.size.IsNegative() {
		return nil, ErrNegativeSize
	}
	if b.cost.IsNegative() {
		return nil, ErrNegativeCost
	}
	if !b.status.Valid() {
		return nil, ErrInvalidStatus
	}
	a := &Account{
		ID:          b.id,
		Name:        b.name,
		Company:     b.company,
		Size:        b.size,
		Cost:        b.cost,
		Status:      b.status,
		Withdrawals: b.withdrawals,
	}
	if a.Withdrawals == nil {
		a.Withdrawals = []Withdrawal{}
	}
	if b.status == StatusSuspended {
		if b.suspensionDate == nil {
			now := time.Now()
			a.SuspensionDate = &now
		} else {
			a.SuspensionDate = b.suspensionDate
		}
	}
	return a, nil
}

// Normalize enforces the suspension-date invariant on an externally supplied
// account record: the date is cleared unless the status is suspended and
// defaulted to now when a suspension carries no date.
func (a *Account) Normalize() {
	switch {
	case a.Status != StatusSuspended:
		a.SuspensionDate = nil
	case a.SuspensionDate == nil:
		now := time.Now()
		a.SuspensionDate = &now
	}
	if a.Withdrawals == nil {
		a.Withdrawals = []Withdrawal{}
	}
}
