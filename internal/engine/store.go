package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ErrInvalidWorkingHours is returned when a restaurant is created with an
// opening time that is not strictly before its closing time.  Handlers
// translate it into HTTP 400.
var ErrInvalidWorkingHours = errors.New("opening time must be before closing time")

// ErrBadCapacity is returned when a table is added with a non-positive
// seat capacity.  Handlers translate it into HTTP 400.
var ErrBadCapacity = errors.New("table capacity must be positive")

type tableKey struct {
	restaurant uint64
	number     int
}

// Store holds the whole reservation state in memory: the user registry,
// the restaurant directory and the reservation arena.
//
// Locking model:
//   - mu guards every map and slice in the store, including the
//     per-restaurant table lists and the reservation-number back-reference
//     slices on users and tables, and the Cancelled flag of reservations.
//     Reads take the shared lock so queries always observe a consistent
//     snapshot; mutations take the exclusive lock.
//   - One mutex per table serializes the check-then-act sequence of
//     reserving that table.  A table's set of active reservations can only
//     grow while its lock is held, so a freedom check followed by an
//     attach under the same table lock cannot double-book, while claims
//     against different tables of the same restaurant proceed
//     independently.
type Store struct {
	mu            sync.RWMutex
	users         map[uint64]*model.User
	restaurants   map[uint64]*model.Restaurant
	reservations  map[string]*model.Reservation
	restaurantSeq uint64

	lockMu     sync.Mutex
	tableLocks map[tableKey]*sync.Mutex
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[uint64]*model.User),
		restaurants:  make(map[uint64]*model.Restaurant),
		reservations: make(map[string]*model.Reservation),
		tableLocks:   make(map[tableKey]*sync.Mutex),
	}
}

// RegisterUser adds a user to the registry, replacing any previous entry
// with the same ID.  Called on signup and when reloading accounts from the
// database at startup.
func (s *Store) RegisterUser(u *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// UserByID returns the registered user with the given id, or nil.
func (s *Store) UserByID(id uint64) *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[id]
}

// AddRestaurant creates a restaurant owned by the given manager.  Working
// hours are same-day and opening must be strictly before closing.
func (s *Store) AddRestaurant(name string, managerID uint64, opens, closes model.TimeOfDay) (*model.Restaurant, error) {
	if opens >= closes {
		return nil, ErrInvalidWorkingHours
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restaurantSeq++
	r := &model.Restaurant{
		ID:        s.restaurantSeq,
		Name:      name,
		ManagerID: managerID,
		Opens:     opens,
		Closes:    closes,
	}
	s.restaurants[r.ID] = r
	return r, nil
}

// Restaurant returns the restaurant with the given id, or nil.
func (s *Store) Restaurant(id uint64) *model.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restaurants[id]
}

// Restaurants returns all restaurants in ascending id order.
func (s *Store) Restaurants() []*model.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Restaurant, 0, len(s.restaurants))
	for id := uint64(1); id <= s.restaurantSeq; id++ {
		if r, ok := s.restaurants[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

// AddTable appends a table to the restaurant.  Table numbers come from the
// restaurant's monotonic counter, not from the list length, so numbers can
// never collide even if removal is ever introduced.
func (s *Store) AddTable(restaurantID uint64, capacity int) (*model.Table, error) {
	if capacity <= 0 {
		return nil, ErrBadCapacity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restaurants[restaurantID]
	if !ok {
		return nil, ErrRestaurantNotFound
	}
	r.TableSeq++
	t := &model.Table{
		RestaurantID: r.ID,
		Number:       r.TableSeq,
		Capacity:     capacity,
	}
	r.Tables = append(r.Tables, t)
	return t, nil
}

// TablesOf returns value copies of the restaurant's tables, safe to
// serialize without holding store locks.
func (s *Store) TablesOf(restaurantID uint64) ([]model.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.restaurants[restaurantID]
	if !ok {
		return nil, ErrRestaurantNotFound
	}
	out := make([]model.Table, 0, len(r.Tables))
	for _, t := range r.Tables {
		out = append(out, model.Table{
			RestaurantID: t.RestaurantID,
			Number:       t.Number,
			Capacity:     t.Capacity,
		})
	}
	return out, nil
}

// tableLock returns the mutex dedicated to one table, creating it on first
// use.
func (s *Store) tableLock(k tableKey) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lk, ok := s.tableLocks[k]
	if !ok {
		lk = &sync.Mutex{}
		s.tableLocks[k] = lk
	}
	return lk
}

// isReservedLocked reports whether the table holds a non-cancelled
// reservation at exactly the given instant.  Caller must hold s.mu (shared
// is enough).
func (s *Store) isReservedLocked(t *model.Table, at time.Time) bool {
	if at.IsZero() {
		return false
	}
	for _, num := range t.ReservationNumbers {
		res := s.reservations[num]
		if res != nil && !res.Cancelled && res.Datetime.Equal(at) {
			return true
		}
	}
	return false
}

// attachLocked inserts a reservation into the arena and records its number
// on both the owning user and the booked table.  Caller must hold s.mu
// exclusively; the table and user must already be validated.
func (s *Store) attachLocked(res *model.Reservation, u *model.User, t *model.Table) {
	if t.RestaurantID != res.RestaurantID {
		// Integration bug, not a user error: a table may only ever be
		// booked through the restaurant that owns it.
		panic(fmt.Sprintf("engine: table %d does not belong to restaurant %d", t.Number, res.RestaurantID))
	}
	s.reservations[res.Number] = res
	t.ReservationNumbers = append(t.ReservationNumbers, res.Number)
	u.ReservationNumbers = append(u.ReservationNumbers, res.Number)
}
