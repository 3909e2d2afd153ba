// Package engine implements the reservation and table availability engine:
// the in-memory store of users, restaurants, tables and reservations, the
// availability planner, and the reservation authority that is the only
// writer of reservation state.  All operations take the acting user as an
// explicit parameter; the engine has no notion of a session.
package engine

import "time"

// Clock supplies the current time.  It is injected so that tests can pin
// "now" when exercising past-date validation.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// FixedClock returns a Clock frozen at the given instant.
func FixedClock(at time.Time) Clock { return fixedClock{at} }

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }
