package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ErrMalformedSchedule is returned when a schedule is missing one of the five
// weekdays or one of the two sessions of a day.
var ErrMalformedSchedule = errors.New("malformed schedule: missing weekday or session")

// Day is one of the five trading weekdays.
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
)

// Session is one of the two fixed trading windows per day.
type Session string

const (
	SessionLondon  Session = "london"
	SessionNewYork Session = "newYork"
)

// Days returns the trading weekdays in visitation order.
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday}
}

// Sessions returns the sessions of a day in visitation order.
func Sessions() []Session {
	return []Session{SessionLondon, SessionNewYork}
}

// Schedule is the weekly plan: each weekday maps both sessions to an ordered
// list of account ids. It is a derived artifact, never the source of truth for
// account state.
type Schedule map[Day]map[Session][]uuid.UUID

// EmptySchedule returns a schedule with every slot present and empty.
func EmptySchedule() Schedule {
	s := make(Schedule, len(Days()))
	for _, day := range Days() {
		s[day] = map[Session][]uuid.UUID{
			SessionLondon:  {},
			SessionNewYork: {},
		}
	}
	return s
}

// Clone returns a deep copy of the schedule.
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for day, sessions := range s {
		out[day] = make(map[Session][]uuid.UUID, len(sessions))
		for session, ids := range sessions {
			out[day][session] = append([]uuid.UUID{}, ids...)
		}
	}
	return out
}

// Contains reports whether the id appears in any slot.
func (s Schedule) Contains(id uuid.UUID) bool {
	for _, sessions := range s {
		for _, ids := range sessions {
			for _, got := range ids {
				if got == id {
					return true
				}
			}
		}
	}
	return false
}

// Prune removes the id from every slot, preserving the relative order of the
// remaining entries.
func (s Schedule) Prune(id uuid.UUID) {
	s.PruneMissing(func(got uuid.UUID) bool { return got != id })
}

// PruneMissing removes from every slot any id for which keep returns false,
// preserving the relative order of the remaining entries.
func (s Schedule) PruneMissing(keep func(uuid.UUID) bool) {
	for _, sessions := range s {
		for session, ids := range sessions {
			kept := ids[:0]
			for _, id := range ids {
				if keep(id) {
					kept = append(kept, id)
				}
			}
			sessions[session] = kept
		}
	}
}

// Validate performs the structural shape check required before accepting an
// externally produced schedule: all five weekdays present, each with both
// sessions.
func (s Schedule) Validate() error {
	for _, day := range Days() {
		sessions, ok := s[day]
		if !ok {
			return ErrMalformedSchedule
		}
		for _, session := range Sessions() {
			if _, ok := sessions[session]; !ok {
				return ErrMalformedSchedule
			}
		}
	}
	return nil
}
