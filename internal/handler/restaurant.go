package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/engine"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// RestaurantHandler serves the restaurant directory: public browsing plus
// the manager-only endpoints that create restaurants and add tables.
type RestaurantHandler struct {
	Store *engine.Store
}

func NewRestaurantHandler(store *engine.Store) *RestaurantHandler {
	if store == nil {
		panic("nil store passed to NewRestaurantHandler")
	}
	return &RestaurantHandler{Store: store}
}

type createRestaurantReq struct {
	Name   string `json:"name"`
	Opens  string `json:"opens"`  // "HH:MM"
	Closes string `json:"closes"` // "HH:MM"
}

type addTableReq struct {
	Capacity int `json:"capacity"`
}

type restaurantResp struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	ManagerID uint64          `json:"manager_id"`
	Opens     model.TimeOfDay `json:"opens"`
	Closes    model.TimeOfDay `json:"closes"`
}

type tableResp struct {
	Number   int `json:"number"`
	Capacity int `json:"capacity"`
}

func toRestaurantResp(r *model.Restaurant) restaurantResp {
	return restaurantResp{
		ID:        r.ID,
		Name:      r.Name,
		ManagerID: r.ManagerID,
		Opens:     r.Opens,
		Closes:    r.Closes,
	}
}

// Create handles POST /v1/restaurants.  The acting manager becomes the
// restaurant's owner; working hours must be same-day with opening before
// closing.
func (h *RestaurantHandler) Create(c echo.Context) error {
	actor := actingUser(c, h.Store)
	if actor == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createRestaurantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	opens, err := model.ParseTimeOfDay(req.Opens)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "opens must be HH:MM"})
	}
	closes, err := model.ParseTimeOfDay(req.Closes)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "closes must be HH:MM"})
	}
	r, err := h.Store.AddRestaurant(req.Name, actor.ID, opens, closes)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, echo.Map{"restaurant": toRestaurantResp(r)})
}

// AddTable handles POST /v1/restaurants/:id/tables.  Only the owning
// manager may add tables; numbers are assigned sequentially and never
// reused.
func (h *RestaurantHandler) AddTable(c echo.Context) error {
	actor := actingUser(c, h.Store)
	if actor == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	r := h.Store.Restaurant(id)
	if r == nil {
		return engineError(c, engine.ErrRestaurantNotFound)
	}
	if !engine.IsManagerOf(actor, r) {
		return engineError(c, engine.ErrInvalidManagerRestaurant)
	}
	var req addTableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	t, err := h.Store.AddTable(id, req.Capacity)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"table": tableResp{Number: t.Number, Capacity: t.Capacity},
	})
}

// List handles GET /v1/restaurants: every restaurant in id order.
func (h *RestaurantHandler) List(c echo.Context) error {
	restaurants := h.Store.Restaurants()
	items := make([]restaurantResp, 0, len(restaurants))
	for _, r := range restaurants {
		items = append(items, toRestaurantResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/restaurants/:id: restaurant details plus its
// tables.
func (h *RestaurantHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	r := h.Store.Restaurant(id)
	if r == nil {
		return engineError(c, engine.ErrRestaurantNotFound)
	}
	tables, err := h.Store.TablesOf(id)
	if err != nil {
		return engineError(c, err)
	}
	items := make([]tableResp, 0, len(tables))
	for _, t := range tables {
		items = append(items, tableResp{Number: t.Number, Capacity: t.Capacity})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"restaurant": toRestaurantResp(r),
		"tables":     items,
	})
}
