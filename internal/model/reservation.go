package model

import "time"

// Reservation is a confirmed booking of one table at one exact datetime.
// The engine keeps every reservation in a single arena keyed by Number;
// the owning user and the booked table reference it by that key only, so
// the Reservation value is the sole source of truth for its state.
//
// Fields:
//  Number       – opaque unique handle generated at confirmation time.
//                 It is the reservation's identity and the key clients use
//                 to cancel.
//  UserID       – client who made the booking.
//  RestaurantID – restaurant the booked table belongs to.
//  TableNumber  – number of the booked table within that restaurant.
//  Datetime     – the reserved slot instant, minute precision.  Immutable
//                 once confirmed.
//  Cancelled    – one-way flag, false at creation.  A cancelled
//                 reservation never blocks the table/slot again and is
//                 never physically deleted.
//  CreatedAt    – confirmation timestamp.
type Reservation struct {
	Number       string
	UserID       uint64
	RestaurantID uint64
	TableNumber  int
	Datetime     time.Time
	Cancelled    bool
	CreatedAt    time.Time
}

// SameDate reports whether the reservation falls on the given calendar day.
func (r *Reservation) SameDate(date time.Time) bool {
	ry, rm, rd := r.Datetime.Date()
	y, m, d := date.Date()
	return ry == y && rm == m && rd == d
}
