package engine

import "github.com/iliyamo/restaurant-table-reservation/internal/model"

// Access policy predicates.  All of them are pure: they never mutate state
// and never fail.  Callers turn a false answer into the matching sentinel
// error from errors.go.

// IsManagerOf reports whether u is the manager owning restaurant r.
func IsManagerOf(u *model.User, r *model.Restaurant) bool {
	return u != nil && r != nil && u.Role == model.RoleManager && r.ManagerID == u.ID
}

// IsOwnerOrManager reports whether u made reservation res or manages the
// restaurant it was placed at.  These are the only two identities allowed
// to read or cancel a reservation.
func IsOwnerOrManager(u *model.User, res *model.Reservation, r *model.Restaurant) bool {
	if u == nil || res == nil {
		return false
	}
	if u.ID == res.UserID {
		return true
	}
	return IsManagerOf(u, r)
}

// IsSelf reports whether u is the user identified by id.  Customer
// reservation lists are visible to their owner only; even managers may not
// read another user's list.
func IsSelf(u *model.User, id uint64) bool {
	return u != nil && u.ID == id
}
