package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/engine"
)

// ManagerReservationHandler exposes the reservation ledger of a table to
// the restaurant's manager.
type ManagerReservationHandler struct {
	Store     *engine.Store
	Authority *engine.Authority
}

func NewManagerReservationHandler(store *engine.Store, authority *engine.Authority) *ManagerReservationHandler {
	if store == nil || authority == nil {
		panic("nil dependency passed to NewManagerReservationHandler")
	}
	return &ManagerReservationHandler{Store: store, Authority: authority}
}

// TableReservations handles GET /v1/restaurants/:id/reservations with a
// required table query parameter and an optional date filter.  Results
// come back in insertion order, cancelled reservations included.
func (h *ManagerReservationHandler) TableReservations(c echo.Context) error {
	actor := actingUser(c, h.Store)
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	tableNumber, err := strconv.Atoi(c.QueryParam("table"))
	if err != nil || tableNumber <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "table must be a positive integer"})
	}
	var date *time.Time
	if raw := c.QueryParam("date"); raw != "" {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be " + dateLayout})
		}
		date = &d
	}

	list, err := h.Authority.Reservations(actor, id, tableNumber, date)
	if err != nil {
		return engineError(c, err)
	}
	items := make([]reservationResp, 0, len(list))
	for _, r := range list {
		items = append(items, toReservationResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
