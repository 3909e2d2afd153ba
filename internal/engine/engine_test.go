package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// testNow pins the clock for every engine test.  All reservation dates
// used below are relative to this instant.
var testNow = time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

// fixture is the standard test world: one manager with a restaurant open
// 08:30-22:00 holding a four-seat and a two-seat table, plus two clients.
type fixture struct {
	store     *Store
	planner   *Planner
	authority *Authority

	manager *model.User
	alice   *model.User
	bob     *model.User

	restaurant *model.Restaurant
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:   NewStore(),
		manager: &model.User{ID: 1, Email: "manager@example.com", Role: model.RoleManager},
		alice:   &model.User{ID: 2, Email: "alice@example.com", Role: model.RoleClient},
		bob:     &model.User{ID: 3, Email: "bob@example.com", Role: model.RoleClient},
	}
	f.store.RegisterUser(f.manager)
	f.store.RegisterUser(f.alice)
	f.store.RegisterUser(f.bob)

	opens, err := model.ParseTimeOfDay("08:30")
	require.NoError(t, err)
	closes, err := model.ParseTimeOfDay("22:00")
	require.NoError(t, err)
	f.restaurant, err = f.store.AddRestaurant("Trattoria", f.manager.ID, opens, closes)
	require.NoError(t, err)

	_, err = f.store.AddTable(f.restaurant.ID, 4)
	require.NoError(t, err)
	_, err = f.store.AddTable(f.restaurant.ID, 2)
	require.NoError(t, err)

	clock := FixedClock(testNow)
	f.planner = NewPlanner(f.store, clock, DefaultSlotStep)
	f.authority = NewAuthority(f.store, clock, DefaultSlotStep)
	return f
}

// tomorrowAt builds a datetime on the day after testNow.
func tomorrowAt(hhmm string) time.Time {
	tod, err := model.ParseTimeOfDay(hhmm)
	if err != nil {
		panic(err)
	}
	return tod.At(testNow.AddDate(0, 0, 1))
}
