package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

func TestAvailableTimesFullDay(t *testing.T) {
	f := newFixture(t)
	date := testNow.AddDate(0, 0, 1)

	times, err := f.planner.AvailableTimes(f.restaurant.ID, 2, date)
	require.NoError(t, err)

	// 08:30 through 21:30 in 30-minute steps.
	require.Len(t, times, 27)
	assert.Equal(t, "08:30", times[0].String())
	assert.Equal(t, "21:30", times[len(times)-1].String())
	for i := 1; i < len(times); i++ {
		assert.Equal(t, model.TimeOfDay(30), times[i]-times[i-1])
	}
}

func TestAvailableTimesExcludesFullyBookedSlot(t *testing.T) {
	f := newFixture(t)
	date := testNow.AddDate(0, 0, 1)

	// Take both tables at 12:00; the slot must disappear for any party.
	_, err := f.authority.ReserveTable(f.alice, f.restaurant.ID, 4, tomorrowAt("12:00"))
	require.NoError(t, err)
	_, err = f.authority.ReserveTable(f.bob, f.restaurant.ID, 2, tomorrowAt("12:00"))
	require.NoError(t, err)

	times, err := f.planner.AvailableTimes(f.restaurant.ID, 1, date)
	require.NoError(t, err)
	assert.Len(t, times, 26)
	noon, _ := model.ParseTimeOfDay("12:00")
	assert.NotContains(t, times, noon)

	// A party of three only fits the four-seat table, which is taken at
	// 12:00, so the answer is the same with one table booked less.
	_, err = f.authority.ReserveTable(f.bob, f.restaurant.ID, 2, tomorrowAt("13:00"))
	require.NoError(t, err)
	times, err = f.planner.AvailableTimes(f.restaurant.ID, 3, date)
	require.NoError(t, err)
	assert.NotContains(t, times, noon)
	one, _ := model.ParseTimeOfDay("13:00")
	assert.Contains(t, times, one)
}

func TestAvailableTimesPartyTooLarge(t *testing.T) {
	f := newFixture(t)

	times, err := f.planner.AvailableTimes(f.restaurant.ID, 6, testNow.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.NotNil(t, times)
	assert.Empty(t, times)
}

func TestAvailableTimesValidation(t *testing.T) {
	f := newFixture(t)
	date := testNow.AddDate(0, 0, 1)

	_, err := f.planner.AvailableTimes(f.restaurant.ID, 0, date)
	assert.ErrorIs(t, err, ErrBadPeopleNumber)

	_, err = f.planner.AvailableTimes(f.restaurant.ID, -3, date)
	assert.ErrorIs(t, err, ErrBadPeopleNumber)

	_, err = f.planner.AvailableTimes(f.restaurant.ID, 2, testNow.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrDateTimeInThePast)

	_, err = f.planner.AvailableTimes(99, 2, date)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestAvailableTimesTodayListsMorningSlots(t *testing.T) {
	f := newFixture(t)

	// The date check is calendar-day based: today is allowed and earlier
	// slots of today are still listed.
	times, err := f.planner.AvailableTimes(f.restaurant.ID, 2, testNow)
	require.NoError(t, err)
	assert.Equal(t, "08:30", times[0].String())
}

func TestPlannerStepFallback(t *testing.T) {
	p := NewPlanner(NewStore(), FixedClock(testNow), 0)
	assert.Equal(t, DefaultSlotStep, p.Step())

	p = NewPlanner(NewStore(), FixedClock(testNow), 15*time.Minute)
	assert.Equal(t, 15*time.Minute, p.Step())
}

func TestAvailableTimesCustomStep(t *testing.T) {
	f := newFixture(t)
	p := NewPlanner(f.store, FixedClock(testNow), time.Hour)

	times, err := p.AvailableTimes(f.restaurant.ID, 2, testNow.AddDate(0, 0, 1))
	require.NoError(t, err)
	// 08:30 through 21:30 on the hour from opening.
	require.Len(t, times, 14)
	assert.Equal(t, "08:30", times[0].String())
	assert.Equal(t, "09:30", times[1].String())
	assert.Equal(t, "21:30", times[len(times)-1].String())
}
