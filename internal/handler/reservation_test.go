package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/engine"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Handlers are tested against a real engine with a frozen clock and
// publishing disabled; only the HTTP translation layer is under test.

var handlerNow = time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

type handlerFixture struct {
	store *engine.Store
	rh    *RestaurantHandler
	resh  *ReservationHandler
	mrh   *ManagerReservationHandler

	managerID uint64
	aliceID   uint64
	bobID     uint64

	restaurantID uint64
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	store := engine.NewStore()
	f := &handlerFixture{store: store, managerID: 1, aliceID: 2, bobID: 3}
	store.RegisterUser(&model.User{ID: f.managerID, Email: "manager@example.com", Role: model.RoleManager})
	store.RegisterUser(&model.User{ID: f.aliceID, Email: "alice@example.com", Role: model.RoleClient})
	store.RegisterUser(&model.User{ID: f.bobID, Email: "bob@example.com", Role: model.RoleClient})

	opens, _ := model.ParseTimeOfDay("08:30")
	closes, _ := model.ParseTimeOfDay("22:00")
	r, err := store.AddRestaurant("Trattoria", f.managerID, opens, closes)
	require.NoError(t, err)
	f.restaurantID = r.ID
	_, err = store.AddTable(r.ID, 4)
	require.NoError(t, err)
	_, err = store.AddTable(r.ID, 2)
	require.NoError(t, err)

	clock := engine.FixedClock(handlerNow)
	planner := engine.NewPlanner(store, clock, engine.DefaultSlotStep)
	authority := engine.NewAuthority(store, clock, engine.DefaultSlotStep)
	f.rh = NewRestaurantHandler(store)
	f.resh = NewReservationHandler(store, planner, authority, false)
	f.mrh = NewManagerReservationHandler(store, authority)
	return f
}

// doJSON runs one handler invocation the way echo would after routing and
// JWT middleware: path params bound, user_id in the context.
func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, userID uint64, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	if userID != 0 {
		c.Set("user_id", userID)
	}
	require.NoError(t, h(c))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestAvailableTimesEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	rec := doJSON(t, f.resh.AvailableTimes, http.MethodGet,
		"/v1/restaurants/1/available-times?people=2&date=2026-03-11", "", 0,
		map[string]string{"id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	items := body["items"].([]any)
	require.Len(t, items, 27)
	assert.Equal(t, "08:30", items[0])
	assert.Equal(t, "21:30", items[len(items)-1])
}

func TestAvailableTimesEndpointValidation(t *testing.T) {
	f := newHandlerFixture(t)

	rec := doJSON(t, f.resh.AvailableTimes, http.MethodGet,
		"/v1/restaurants/1/available-times?people=two&date=2026-03-11", "", 0,
		map[string]string{"id": "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, f.resh.AvailableTimes, http.MethodGet,
		"/v1/restaurants/1/available-times?people=2&date=11-03-2026", "", 0,
		map[string]string{"id": "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, f.resh.AvailableTimes, http.MethodGet,
		"/v1/restaurants/99/available-times?people=2&date=2026-03-11", "", 0,
		map[string]string{"id": "99"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, f.resh.AvailableTimes, http.MethodGet,
		"/v1/restaurants/1/available-times?people=2&date=2026-03-09", "", 0,
		map[string]string{"id": "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReserveEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	rec := doJSON(t, f.resh.Reserve, http.MethodPost, "/v1/restaurants/1/reservations",
		`{"people":2,"datetime":"2026-03-11 19:00"}`, f.aliceID,
		map[string]string{"id": "1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	res := body["reservation"].(map[string]any)
	assert.NotEmpty(t, res["reservation_number"])
	assert.Equal(t, float64(2), res["table_number"])
	assert.Equal(t, "2026-03-11 19:00", res["datetime"])
	assert.Equal(t, false, res["cancelled"])
}

func TestReserveEndpointErrors(t *testing.T) {
	f := newHandlerFixture(t)
	params := map[string]string{"id": "1"}

	// No authenticated identity.
	rec := doJSON(t, f.resh.Reserve, http.MethodPost, "/v1/restaurants/1/reservations",
		`{"people":2,"datetime":"2026-03-11 19:00"}`, 0, params)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Managers cannot book their own restaurant.
	rec = doJSON(t, f.resh.Reserve, http.MethodPost, "/v1/restaurants/1/reservations",
		`{"people":2,"datetime":"2026-03-11 19:00"}`, f.managerID, params)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, f.resh.Reserve, http.MethodPost, "/v1/restaurants/1/reservations",
		`{"people":2,"datetime":"2026-03-09 19:00"}`, f.aliceID, params)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, f.resh.Reserve, http.MethodPost, "/v1/restaurants/1/reservations",
		`{"people":2,"datetime":"tomorrow"}`, f.aliceID, params)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// No table big enough for the party.
	rec = doJSON(t, f.resh.Reserve, http.MethodPost, "/v1/restaurants/1/reservations",
		`{"people":6,"datetime":"2026-03-11 19:00"}`, f.aliceID, params)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	params := map[string]string{"id": "1"}

	rec := doJSON(t, f.resh.Reserve, http.MethodPost, "/v1/restaurants/1/reservations",
		`{"people":2,"datetime":"2026-03-11 19:00"}`, f.aliceID, params)
	require.Equal(t, http.StatusCreated, rec.Code)
	number := decodeBody(t, rec)["reservation"].(map[string]any)["reservation_number"].(string)

	// A stranger may not cancel.
	rec = doJSON(t, f.resh.Cancel, http.MethodPost, "/v1/reservations/"+number+"/cancel",
		"", f.bobID, map[string]string{"number": number})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, f.resh.Cancel, http.MethodPost, "/v1/reservations/"+number+"/cancel",
		"", f.aliceID, map[string]string{"number": number})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Cancelling twice stays a success.
	rec = doJSON(t, f.resh.Cancel, http.MethodPost, "/v1/reservations/"+number+"/cancel",
		"", f.aliceID, map[string]string{"number": number})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, f.resh.Cancel, http.MethodPost, "/v1/reservations/nope/cancel",
		"", f.aliceID, map[string]string{"number": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMyReservationsEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	rec := doJSON(t, f.resh.Reserve, http.MethodPost, "/v1/restaurants/1/reservations",
		`{"people":2,"datetime":"2026-03-11 19:00"}`, f.aliceID,
		map[string]string{"id": "1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, f.resh.MyReservations, http.MethodGet, "/v1/customers/2/reservations",
		"", f.aliceID, map[string]string{"id": "2"})
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeBody(t, rec)["items"].([]any)
	assert.Len(t, items, 1)

	// Reservation lists are private to their owner.
	rec = doJSON(t, f.resh.MyReservations, http.MethodGet, "/v1/customers/2/reservations",
		"", f.bobID, map[string]string{"id": "2"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTableReservationsEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	params := map[string]string{"id": "1"}

	rec := doJSON(t, f.resh.Reserve, http.MethodPost, "/v1/restaurants/1/reservations",
		`{"people":2,"datetime":"2026-03-11 19:00"}`, f.aliceID, params)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, f.resh.Reserve, http.MethodPost, "/v1/restaurants/1/reservations",
		`{"people":2,"datetime":"2026-03-12 19:00"}`, f.bobID, params)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, f.mrh.TableReservations, http.MethodGet,
		"/v1/restaurants/1/reservations?table=2", "", f.managerID, params)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["items"], 2)

	rec = doJSON(t, f.mrh.TableReservations, http.MethodGet,
		"/v1/restaurants/1/reservations?table=2&date=2026-03-11", "", f.managerID, params)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["items"], 1)

	rec = doJSON(t, f.mrh.TableReservations, http.MethodGet,
		"/v1/restaurants/1/reservations?table=2", "", f.aliceID, params)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, f.mrh.TableReservations, http.MethodGet,
		"/v1/restaurants/1/reservations", "", f.managerID, params)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRestaurantEndpoints(t *testing.T) {
	f := newHandlerFixture(t)

	rec := doJSON(t, f.rh.Create, http.MethodPost, "/v1/restaurants",
		`{"name":"Bistro","opens":"10:00","closes":"23:00"}`, f.managerID, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody(t, rec)["restaurant"].(map[string]any)
	assert.Equal(t, "Bistro", created["name"])
	assert.Equal(t, "10:00", created["opens"])

	rec = doJSON(t, f.rh.Create, http.MethodPost, "/v1/restaurants",
		`{"name":"Backwards","opens":"23:00","closes":"10:00"}`, f.managerID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, f.rh.List, http.MethodGet, "/v1/restaurants", "", 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["items"], 2)

	rec = doJSON(t, f.rh.Get, http.MethodGet, "/v1/restaurants/1", "", 0,
		map[string]string{"id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["tables"], 2)

	rec = doJSON(t, f.rh.Get, http.MethodGet, "/v1/restaurants/99", "", 0,
		map[string]string{"id": "99"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddTableEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	params := map[string]string{"id": "1"}

	rec := doJSON(t, f.rh.AddTable, http.MethodPost, "/v1/restaurants/1/tables",
		`{"capacity":6}`, f.managerID, params)
	require.Equal(t, http.StatusCreated, rec.Code)
	table := decodeBody(t, rec)["table"].(map[string]any)
	assert.Equal(t, float64(3), table["number"])

	// Only the owning manager may add tables.
	rec = doJSON(t, f.rh.AddTable, http.MethodPost, "/v1/restaurants/1/tables",
		`{"capacity":6}`, f.aliceID, params)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, f.rh.AddTable, http.MethodPost, "/v1/restaurants/1/tables",
		`{"capacity":0}`, f.managerID, params)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
