package schedule

import (
	"testing"

	"github.com/amirasaad/proppilot/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeAccounts(n int) []domain.Account {
	accounts := make([]domain.Account, n)
	for i := range accounts {
		accounts[i] = domain.Account{ID: uuid.New(), Status: domain.StatusActive}
	}
	return accounts
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, 2, Capacity(1))
	assert.Equal(t, 2, Capacity(2))
	assert.Equal(t, 3, Capacity(3))
	assert.Equal(t, 3, Capacity(10))
}

func TestGenerate_FiveAccounts(t *testing.T) {
	accounts := makeAccounts(5)
	a, b, c, d, e := accounts[0].ID, accounts[1].ID, accounts[2].ID, accounts[3].ID, accounts[4].ID

	s := Generate(accounts)

	assert.Equal(t, []uuid.UUID{a, b, c}, s[domain.Monday][domain.SessionLondon])
	assert.Equal(t, []uuid.UUID{d, e, a}, s[domain.Monday][domain.SessionNewYork])
	assert.Equal(t, []uuid.UUID{b, c, d}, s[domain.Tuesday][domain.SessionLondon])
	assert.Equal(t, []uuid.UUID{e, a, b}, s[domain.Tuesday][domain.SessionNewYork])
	assert.Equal(t, []uuid.UUID{c, d, e}, s[domain.Wednesday][domain.SessionLondon])
	assert.Equal(t, []uuid.UUID{a, b, c}, s[domain.Wednesday][domain.SessionNewYork])
	assert.Equal(t, []uuid.UUID{d, e, a}, s[domain.Thursday][domain.SessionLondon])
	assert.Equal(t, []uuid.UUID{b, c, d}, s[domain.Thursday][domain.SessionNewYork])
	assert.Equal(t, []uuid.UUID{e, a, b}, s[domain.Friday][domain.SessionLondon])
	assert.Empty(t, s[domain.Friday][domain.SessionNewYork])
}

func TestGenerate_SingleAccount(t *testing.T) {
	accounts := makeAccounts(1)
	s := Generate(accounts)

	for _, day := range domain.Days() {
		for _, session := range domain.Sessions() {
			if day == domain.Friday && session == domain.SessionNewYork {
				assert.Empty(t, s[day][session])
				continue
			}
			assert.Equal(t, []uuid.UUID{accounts[0].ID}, s[day][session],
				"%s %s should hold the single account exactly once", day, session)
		}
	}
}

func TestGenerate_SlotNeverExceedsRoster(t *testing.T) {
	for n := 1; n <= 6; n++ {
		accounts := makeAccounts(n)
		s := Generate(accounts)
		limit := Capacity(n)
		if n < limit {
			limit = n
		}
		for _, day := range domain.Days() {
			for _, session := range domain.Sessions() {
				ids := s[day][session]
				assert.LessOrEqual(t, len(ids), limit)
				seen := make(map[uuid.UUID]bool, len(ids))
				for _, id := range ids {
					assert.False(t, seen[id], "slot repeats an account with roster size %d", n)
					seen[id] = true
				}
			}
		}
	}
}

func TestGenerate_EveryAccountPlacedBeforeAnyRepeats(t *testing.T) {
	accounts := makeAccounts(4)
	s := Generate(accounts)

	var flat []uuid.UUID
	for _, day := range domain.Days() {
		for _, session := range domain.Sessions() {
			flat = append(flat, s[day][session]...)
		}
	}
	require.GreaterOrEqual(t, len(flat), len(accounts))

	seen := make(map[uuid.UUID]bool, len(accounts))
	for i, id := range flat[:len(accounts)] {
		assert.False(t, seen[id], "account repeated at position %d before the roster was exhausted", i)
		seen[id] = true
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	accounts := makeAccounts(5)
	assert.Equal(t, Generate(accounts), Generate(accounts))
}

func TestGenerate_EmptyInput(t *testing.T) {
	s := Generate(nil)
	require.NoError(t, s.Validate())
	for _, day := range domain.Days() {
		for _, session := range domain.Sessions() {
			assert.Empty(t, s[day][session])
		}
	}
}

func TestGenerate_FridayNewYorkEnabled(t *testing.T) {
	accounts := makeAccounts(5)
	c, d, e := accounts[2].ID, accounts[3].ID, accounts[4].ID

	s := Generate(accounts, WithFridayNewYork(true))

	// The cursor continues from Friday london, which ends on account B.
	assert.Equal(t, []uuid.UUID{c, d, e}, s[domain.Friday][domain.SessionNewYork])
}

func TestGenerate_DoesNotMutateInput(t *testing.T) {
	accounts := makeAccounts(3)
	before := domain.CloneAccounts(accounts)
	Generate(accounts)
	assert.Equal(t, before, accounts)
}
