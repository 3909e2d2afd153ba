// Package handler implements the HTTP handlers: auth, restaurant
// management, public browsing and the reservation endpoints that front the
// engine.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/engine"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Wire formats for calendar dates and reservation datetimes.
const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04"
)

// getUserID extracts the user id JWTAuth stored in the context.  JWT
// numeric claims decode as float64, so several representations are
// accepted.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// actingUser resolves the authenticated engine user, or nil when the
// request carries no usable identity.  The engine treats a nil actor as
// ErrUserNotFound, so handlers can pass the result straight through.
func actingUser(c echo.Context, store *engine.Store) *model.User {
	id, err := getUserID(c)
	if err != nil {
		return nil
	}
	return store.UserByID(id)
}

// engineStatus maps each engine error sentinel to its HTTP status:
// missing identity is 401, policy refusals are 403, missing resources are
// 404 and everything else is a 400 validation failure.
func engineStatus(err error) int {
	switch {
	case errors.Is(err, engine.ErrUserNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, engine.ErrUserNotManager),
		errors.Is(err, engine.ErrInvalidManagerRestaurant),
		errors.Is(err, engine.ErrUserNoAccess),
		errors.Is(err, engine.ErrManagerReservationNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, engine.ErrRestaurantNotFound),
		errors.Is(err, engine.ErrTableNotFound),
		errors.Is(err, engine.ErrReservationNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// engineError writes the engine failure as a JSON error response.
func engineError(c echo.Context, err error) error {
	return c.JSON(engineStatus(err), echo.Map{"error": err.Error()})
}

// pathID parses a numeric path parameter, rejecting zero.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id != 0
}
