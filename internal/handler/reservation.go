package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/engine"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	queue_publisher "github.com/iliyamo/restaurant-table-reservation/internal/service"
)

// ReservationHandler fronts the engine's planner and authority.  Every
// operation resolves the acting user explicitly and passes it down; the
// engine decides, the handler only translates errors and publishes
// events.
type ReservationHandler struct {
	Store     *engine.Store
	Planner   *engine.Planner
	Authority *engine.Authority
	// Publish toggles reservation event publishing; tests leave it off.
	Publish bool
}

func NewReservationHandler(store *engine.Store, planner *engine.Planner, authority *engine.Authority, publish bool) *ReservationHandler {
	if store == nil || planner == nil || authority == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Store: store, Planner: planner, Authority: authority, Publish: publish}
}

type reserveReq struct {
	People   int    `json:"people"`
	Datetime string `json:"datetime"` // "2006-01-02 15:04"
}

type reservationResp struct {
	Number       string `json:"reservation_number"`
	UserID       uint64 `json:"user_id"`
	RestaurantID uint64 `json:"restaurant_id"`
	TableNumber  int    `json:"table_number"`
	Datetime     string `json:"datetime"`
	Cancelled    bool   `json:"cancelled"`
}

func toReservationResp(r model.Reservation) reservationResp {
	return reservationResp{
		Number:       r.Number,
		UserID:       r.UserID,
		RestaurantID: r.RestaurantID,
		TableNumber:  r.TableNumber,
		Datetime:     r.Datetime.Format(datetimeLayout),
		Cancelled:    r.Cancelled,
	}
}

// AvailableTimes handles GET /v1/restaurants/:id/available-times with
// people and date query parameters.  The answer is an ascending list of
// "HH:MM" slots; an empty list means no capacity that day.
func (h *ReservationHandler) AvailableTimes(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	people, err := strconv.Atoi(c.QueryParam("people"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "people must be an integer"})
	}
	date, err := time.Parse(dateLayout, c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be " + dateLayout})
	}
	times, err := h.Planner.AvailableTimes(id, people, date)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": times})
}

// Reserve handles POST /v1/restaurants/:id/reservations.  On success the
// confirmed reservation comes back with its number and a confirmed event
// is published.
func (h *ReservationHandler) Reserve(c echo.Context) error {
	actor := actingUser(c, h.Store)
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	at, err := time.Parse(datetimeLayout, req.Datetime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "datetime must be " + datetimeLayout})
	}

	res, err := h.Authority.ReserveTable(actor, id, req.People, at)
	if err != nil {
		return engineError(c, err)
	}

	if h.Publish {
		restaurantName := ""
		if r := h.Store.Restaurant(id); r != nil {
			restaurantName = r.Name
		}
		ev := queue.ReservationConfirmedEvent{
			ReservationNumber: res.Number,
			UserID:            res.UserID,
			RestaurantID:      res.RestaurantID,
			RestaurantName:    restaurantName,
			TableNumber:       res.TableNumber,
			People:            req.People,
			Datetime:          res.Datetime.Format(datetimeLayout),
			ConfirmedAt:       time.Now().UTC().Format(time.RFC3339),
		}
		// Broker trouble must not fail the booking.
		go func() { _ = queue_publisher.PublishReservationConfirmed(context.Background(), ev) }()
	}

	return c.JSON(http.StatusCreated, echo.Map{"reservation": toReservationResp(res)})
}

// Cancel handles POST /v1/reservations/:number/cancel.  Allowed for the
// reservation's owner and the restaurant's manager; cancelling twice is
// not an error.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	actor := actingUser(c, h.Store)
	number := c.Param("number")
	if number == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation number required"})
	}
	if err := h.Authority.CancelReservation(actor, number); err != nil {
		return engineError(c, err)
	}

	if h.Publish && actor != nil {
		ev := queue.ReservationCancelledEvent{
			ReservationNumber: number,
			CancelledByUserID: actor.ID,
			CancelledAt:       time.Now().UTC().Format(time.RFC3339),
		}
		go func() { _ = queue_publisher.PublishReservationCancelled(context.Background(), ev) }()
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "cancelled"})
}

// MyReservations handles GET /v1/customers/:id/reservations.  A user may
// only list their own reservations; the engine enforces that.
func (h *ReservationHandler) MyReservations(c echo.Context) error {
	actor := actingUser(c, h.Store)
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}
	list, err := h.Authority.CustomerReservations(actor, id)
	if err != nil {
		return engineError(c, err)
	}
	items := make([]reservationResp, 0, len(list))
	for _, r := range list {
		items = append(items, toReservationResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
