package model

// Role names the two kinds of application users.  Clients book tables at
// restaurants; managers own restaurants and may inspect and cancel the
// reservations placed at them.  The role is carried in the JWT "role"
// claim and checked both by middleware and by the engine's access policy.
type Role string

const (
	// RoleClient is a regular customer who browses and books.
	RoleClient Role = "CLIENT"
	// RoleManager owns one or more restaurants.
	RoleManager Role = "MANAGER"
)

// User is the engine's view of an account.  Credentials and session state
// live in the database layer; the engine only needs identity, role and the
// list of reservations the user has made.
//
// Fields:
//  ID                 – identifier shared with the users table.
//  Email              – unique email address.
//  Role               – CLIENT or MANAGER.
//  ReservationNumbers – numbers of the reservations this user made, in
//                       insertion order.  The slice holds keys into the
//                       engine's reservation arena, never copies of the
//                       reservations themselves.  Managed exclusively by
//                       the engine store under its locks.
type User struct {
	ID                 uint64
	Email              string
	Role               Role
	ReservationNumbers []string
}

// IsManager reports whether the user carries the manager role.
func (u *User) IsManager() bool {
	return u != nil && u.Role == RoleManager
}
