// Error sentinels returned by engine operations.  Every failure here is an
// expected, deterministic outcome, never a crash; handlers compare with
// errors.Is and translate each into an HTTP status.
package engine

import "errors"

// ErrBadPeopleNumber is returned when the requested party size is zero or
// negative.  Handlers translate it into HTTP 400.
var ErrBadPeopleNumber = errors.New("number of people must be positive")

// ErrDateTimeInThePast is returned when a reservation datetime is at or
// before the clock's now, or an availability date is before today.
// Handlers translate it into HTTP 400.
var ErrDateTimeInThePast = errors.New("date time is in the past")

// ErrInvalidWorkingTime is returned when a reservation time falls outside
// the restaurant's working hours.  Handlers translate it into HTTP 400.
var ErrInvalidWorkingTime = errors.New("time is outside restaurant working hours")

// ErrReservationNotInOpenTimes is returned when a reservation time is
// inside working hours but does not start on a slot boundary.  Handlers
// translate it into HTTP 400.
var ErrReservationNotInOpenTimes = errors.New("time does not fall on a reservable slot")

// ErrRestaurantNotFound is returned when no restaurant has the given id.
// Handlers translate it into HTTP 404.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ErrTableNotFound is returned when no table satisfies a request: either
// the table number does not exist, or no table of sufficient capacity is
// free at the requested time.  Handlers translate it into HTTP 404.
var ErrTableNotFound = errors.New("no suitable table found")

// ErrReservationNotFound is returned when no reservation carries the given
// reservation number.  Handlers translate it into HTTP 404.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrUserNotFound is returned when an operation has no acting user or the
// referenced user does not exist.  Handlers translate it into HTTP 401.
var ErrUserNotFound = errors.New("user not found")

// ErrUserNotManager is returned when a manager-only operation is invoked
// by a non-manager.  Handlers translate it into HTTP 403.
var ErrUserNotManager = errors.New("user is not a manager")

// ErrInvalidManagerRestaurant is returned when a manager inspects a
// restaurant they do not manage.  Handlers translate it into HTTP 403.
var ErrInvalidManagerRestaurant = errors.New("restaurant is not managed by this user")

// ErrUserNoAccess is returned when the acting user is neither the owner of
// the targeted resource nor an authorized manager.  Handlers translate it
// into HTTP 403.
var ErrUserNoAccess = errors.New("user has no access to this resource")

// ErrManagerReservationNotAllowed is returned when a manager tries to book
// a table at their own restaurant.  Handlers translate it into HTTP 403.
var ErrManagerReservationNotAllowed = errors.New("managers cannot reserve tables at their own restaurant")
