package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// RegisterPublic registers the unauthenticated browse endpoints: the
// restaurant directory and availability.  The cache middleware, when
// enabled, sits only in front of these since their answers do not depend
// on who is asking.
func RegisterPublic(e *echo.Echo, rh *handler.RestaurantHandler, resh *handler.ReservationHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/restaurants", rh.List)
	g.GET("/restaurants/:id", rh.Get)
	g.GET("/restaurants/:id/available-times", resh.AvailableTimes)
}

// RegisterReservations registers the authenticated reservation endpoints.
// Booking and cancelling are open to both roles; the engine itself forbids
// managers from booking their own restaurant.  The table ledger and
// restaurant management require the manager role.
func RegisterReservations(e *echo.Echo, jwtSecret string, rh *handler.RestaurantHandler, resh *handler.ReservationHandler, mrh *handler.ManagerReservationHandler) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(string(model.RoleClient), string(model.RoleManager)))
	auth.POST("/restaurants/:id/reservations", resh.Reserve)
	auth.POST("/reservations/:number/cancel", resh.Cancel)
	auth.GET("/customers/:id/reservations", resh.MyReservations)

	mgr := e.Group("/v1")
	mgr.Use(middleware.JWTAuth(jwtSecret))
	mgr.Use(middleware.RequireRole(string(model.RoleManager)))
	mgr.GET("/restaurants/:id/reservations", mrh.TableReservations)
	mgr.POST("/restaurants", rh.Create)
	mgr.POST("/restaurants/:id/tables", rh.AddTable)
}
