// Package queue defines the reservation event payloads exchanged over the
// message broker and the background consumer that records them.
package queue

// ReservationConfirmedEvent is published right after a reservation is
// confirmed.  It carries enough context for notification or analytics
// consumers without another lookup.
type ReservationConfirmedEvent struct {
	ReservationNumber string `json:"reservation_number"`
	UserID            uint64 `json:"user_id"`
	RestaurantID      uint64 `json:"restaurant_id"`
	RestaurantName    string `json:"restaurant_name"`
	TableNumber       int    `json:"table_number"`
	People            int    `json:"people"`
	Datetime          string `json:"datetime"`
	ConfirmedAt       string `json:"confirmed_at"`
}

// ReservationCancelledEvent is published when a reservation is cancelled,
// whether by its owner or by the restaurant's manager.
type ReservationCancelledEvent struct {
	ReservationNumber string `json:"reservation_number"`
	CancelledByUserID uint64 `json:"cancelled_by_user_id"`
	RestaurantID      uint64 `json:"restaurant_id"`
	TableNumber       int    `json:"table_number"`
	Datetime          string `json:"datetime"`
	CancelledAt       string `json:"cancelled_at"`
}
