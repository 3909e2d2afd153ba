package engine

import (
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Calendar answers "is this table taken at time T".  It is a read-only
// view over the store; granularity is whole slots, two reservations
// conflict only when their datetimes are exactly equal.
type Calendar struct {
	store *Store
}

// NewCalendar returns a calendar reading from the given store.
func NewCalendar(store *Store) *Calendar {
	return &Calendar{store: store}
}

// IsReserved reports whether the table has at least one non-cancelled
// reservation at exactly the given instant.  A zero instant is never
// reserved.
func (c *Calendar) IsReserved(t *model.Table, at time.Time) bool {
	if t == nil || at.IsZero() {
		return false
	}
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	return c.store.isReservedLocked(t, at)
}
