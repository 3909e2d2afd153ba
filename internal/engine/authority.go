package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Authority creates, cancels and looks up reservations.  It is the only
// writer of reservation state; every operation takes the acting user
// explicitly and consults the access policy before touching anything.
type Authority struct {
	store *Store
	clock Clock
	step  time.Duration
}

// NewAuthority returns an authority over the given store.  A non-positive
// step falls back to DefaultSlotStep; it must match the planner's step so
// that every offered slot is bookable and vice versa.
func NewAuthority(store *Store, clock Clock, step time.Duration) *Authority {
	if step <= 0 {
		step = DefaultSlotStep
	}
	return &Authority{store: store, clock: clock, step: step}
}

// ReserveTable books the smallest free table that fits the party at the
// given instant and returns the confirmed reservation.  Validation order:
// acting user, manager-of-own-restaurant, party size, past datetime,
// working hours, slot alignment, table availability.  The check-then-act
// on each candidate table runs under that table's lock, so two concurrent
// attempts can never both claim the same table and slot.
func (a *Authority) ReserveTable(actor *model.User, restaurantID uint64, people int, at time.Time) (model.Reservation, error) {
	var none model.Reservation
	if actor == nil {
		return none, ErrUserNotFound
	}
	at = at.Truncate(time.Minute)

	a.store.mu.RLock()
	r, ok := a.store.restaurants[restaurantID]
	if !ok {
		a.store.mu.RUnlock()
		return none, ErrRestaurantNotFound
	}
	if IsManagerOf(actor, r) {
		a.store.mu.RUnlock()
		return none, ErrManagerReservationNotAllowed
	}
	if people <= 0 {
		a.store.mu.RUnlock()
		return none, ErrBadPeopleNumber
	}
	if !at.After(a.clock.Now()) {
		a.store.mu.RUnlock()
		return none, ErrDateTimeInThePast
	}
	tod := model.TimeOfDayOf(at)
	if tod < r.Opens || tod >= r.Closes {
		a.store.mu.RUnlock()
		return none, ErrInvalidWorkingTime
	}
	if !slotAligned(r, tod, a.step) {
		a.store.mu.RUnlock()
		return none, ErrReservationNotInOpenTimes
	}
	// Candidate tables in preference order: smallest capacity first,
	// lowest number breaking ties (r.Tables is already number-ordered).
	candidates := make([]*model.Table, 0, len(r.Tables))
	for _, t := range r.Tables {
		if t.Capacity >= people {
			candidates = append(candidates, t)
		}
	}
	a.store.mu.RUnlock()
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Capacity < candidates[j].Capacity
	})

	for _, t := range candidates {
		lk := a.store.tableLock(tableKey{restaurant: r.ID, number: t.Number})
		lk.Lock()
		a.store.mu.RLock()
		free := !a.store.isReservedLocked(t, at)
		a.store.mu.RUnlock()
		if !free {
			lk.Unlock()
			continue
		}
		// Holding the table lock: nothing else can add a reservation to
		// this table between the check above and the attach below.
		res := &model.Reservation{
			Number:       uuid.NewString(),
			UserID:       actor.ID,
			RestaurantID: r.ID,
			TableNumber:  t.Number,
			Datetime:     at,
			CreatedAt:    a.clock.Now(),
		}
		a.store.mu.Lock()
		a.store.attachLocked(res, actor, t)
		a.store.mu.Unlock()
		lk.Unlock()
		return *res, nil
	}
	return none, ErrTableNotFound
}

// CancelReservation marks the reservation cancelled.  Only the owning
// client or the manager of the reservation's restaurant may cancel.
// Cancelling an already-cancelled reservation is not an error and changes
// nothing observable.
func (a *Authority) CancelReservation(actor *model.User, number string) error {
	if actor == nil {
		return ErrUserNotFound
	}
	a.store.mu.RLock()
	res := a.store.reservations[number]
	if res == nil {
		a.store.mu.RUnlock()
		return ErrReservationNotFound
	}
	r := a.store.restaurants[res.RestaurantID]
	allowed := IsOwnerOrManager(actor, res, r)
	var t *model.Table
	if r != nil {
		t = r.Table(res.TableNumber)
	}
	a.store.mu.RUnlock()
	if !allowed {
		return ErrUserNoAccess
	}
	if t == nil || t.RestaurantID != res.RestaurantID {
		// A reservation always points at a table owned by its restaurant;
		// anything else is a corrupted store, not a recoverable input.
		panic(fmt.Sprintf("engine: reservation %s references foreign table %d", number, res.TableNumber))
	}

	lk := a.store.tableLock(tableKey{restaurant: res.RestaurantID, number: res.TableNumber})
	lk.Lock()
	a.store.mu.Lock()
	res.Cancelled = true
	a.store.mu.Unlock()
	lk.Unlock()
	return nil
}

// Reservations lists a table's reservations for the restaurant's manager,
// in insertion order, optionally restricted to one calendar date.
// Cancelled reservations are included; they remain part of the table's
// history.
func (a *Authority) Reservations(actor *model.User, restaurantID uint64, tableNumber int, date *time.Time) ([]model.Reservation, error) {
	if actor == nil {
		return nil, ErrUserNotFound
	}
	if !actor.IsManager() {
		return nil, ErrUserNotManager
	}
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	r, ok := a.store.restaurants[restaurantID]
	if !ok {
		return nil, ErrRestaurantNotFound
	}
	if !IsManagerOf(actor, r) {
		return nil, ErrInvalidManagerRestaurant
	}
	t := r.Table(tableNumber)
	if t == nil {
		return nil, ErrTableNotFound
	}
	out := make([]model.Reservation, 0, len(t.ReservationNumbers))
	for _, num := range t.ReservationNumbers {
		res := a.store.reservations[num]
		if res == nil {
			continue
		}
		if date != nil && !res.SameDate(*date) {
			continue
		}
		out = append(out, *res)
	}
	return out, nil
}

// CustomerReservations lists a user's reservations in insertion order.
// The list is visible to its owner only.
func (a *Authority) CustomerReservations(actor *model.User, customerID uint64) ([]model.Reservation, error) {
	if actor == nil {
		return nil, ErrUserNotFound
	}
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	target, ok := a.store.users[customerID]
	if !ok {
		return nil, ErrUserNotFound
	}
	if !IsSelf(actor, customerID) {
		return nil, ErrUserNoAccess
	}
	out := make([]model.Reservation, 0, len(target.ReservationNumbers))
	for _, num := range target.ReservationNumbers {
		if res := a.store.reservations[num]; res != nil {
			out = append(out, *res)
		}
	}
	return out, nil
}
