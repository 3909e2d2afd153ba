package model

// Restaurant describes a bookable venue.  Working hours are same-day: a
// restaurant opens and closes within one calendar day and Opens is always
// strictly before Closes.
//
// Fields:
//  ID        – unique restaurant identifier.
//  Name      – display name.
//  ManagerID – user ID of the owning manager.
//  Opens     – first minute of the working day.
//  Closes    – first minute the restaurant is no longer open.  The last
//              bookable slot starts strictly before this time.
//  Tables    – tables in creation order, which is also ascending table
//              number order.  Managed by the engine store.
//  TableSeq  – monotonically increasing counter used to assign table
//              numbers.  It never decreases, so numbers are never reused
//              even if table removal is ever added.
type Restaurant struct {
	ID        uint64
	Name      string
	ManagerID uint64
	Opens     TimeOfDay
	Closes    TimeOfDay
	Tables    []*Table
	TableSeq  int
}

// Table returns the table with the given number, or nil when the
// restaurant has no such table.
func (r *Restaurant) Table(number int) *Table {
	for _, t := range r.Tables {
		if t.Number == number {
			return t
		}
	}
	return nil
}

// Table is one bookable unit of a restaurant.
//
// Fields:
//  RestaurantID       – owning restaurant; a table belongs to exactly one
//                       restaurant for its whole life.
//  Number             – table number, unique within the restaurant,
//                       assigned sequentially starting at 1.
//  Capacity           – number of seats; always positive.
//  ReservationNumbers – numbers of every reservation ever placed at this
//                       table (cancelled ones included), in insertion
//                       order.  Keys into the engine's reservation arena,
//                       managed by the engine store under its locks.
type Table struct {
	RestaurantID       uint64
	Number             int
	Capacity           int
	ReservationNumbers []string
}
