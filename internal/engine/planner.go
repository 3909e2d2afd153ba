package engine

import (
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// DefaultSlotStep is the slot width used when no explicit step is
// configured.
const DefaultSlotStep = 30 * time.Minute

// Planner produces the bookable time-of-day slots for a party on a date.
type Planner struct {
	store *Store
	clock Clock
	step  time.Duration
}

// NewPlanner returns a planner over the given store.  A non-positive step
// falls back to DefaultSlotStep.
func NewPlanner(store *Store, clock Clock, step time.Duration) *Planner {
	if step <= 0 {
		step = DefaultSlotStep
	}
	return &Planner{store: store, clock: clock, step: step}
}

// Step returns the configured slot width.
func (p *Planner) Step() time.Duration { return p.step }

// AvailableTimes lists, in ascending order, every slot of the restaurant's
// working day on the given date at which at least one table with capacity
// for the party is free.  An empty slice is a valid answer meaning no
// capacity.  The date may be today or later; slots earlier on today are
// still listed, only whole past dates are rejected.
func (p *Planner) AvailableTimes(restaurantID uint64, people int, date time.Time) ([]model.TimeOfDay, error) {
	if people <= 0 {
		return nil, ErrBadPeopleNumber
	}
	if beforeToday(date, p.clock.Now()) {
		return nil, ErrDateTimeInThePast
	}

	p.store.mu.RLock()
	defer p.store.mu.RUnlock()
	r, ok := p.store.restaurants[restaurantID]
	if !ok {
		return nil, ErrRestaurantNotFound
	}

	stepMin := model.TimeOfDay(p.step / time.Minute)
	times := make([]model.TimeOfDay, 0)
	for slot := r.Opens; slot < r.Closes; slot += stepMin {
		at := slot.At(date)
		for _, t := range r.Tables {
			if t.Capacity < people {
				continue
			}
			if !p.store.isReservedLocked(t, at) {
				times = append(times, slot)
				break
			}
		}
	}
	return times, nil
}

// slotAligned reports whether the clock time lands exactly on a slot
// boundary of the restaurant's working day.
func slotAligned(r *model.Restaurant, tod model.TimeOfDay, step time.Duration) bool {
	stepMin := model.TimeOfDay(step / time.Minute)
	if stepMin <= 0 {
		return false
	}
	return tod >= r.Opens && (tod-r.Opens)%stepMin == 0
}

// beforeToday reports whether date falls on a calendar day strictly before
// now's day.
func beforeToday(date, now time.Time) bool {
	y, m, d := date.Date()
	ny, nm, nd := now.Date()
	if y != ny {
		return y < ny
	}
	if m != nm {
		return m < nm
	}
	return d < nd
}
