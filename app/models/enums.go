package models

// Role is the access level of a user.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// AttendanceStatus is the arrival classification stored on a day's record.
type AttendanceStatus string

const (
	Present AttendanceStatus = "PRESENT"
	Late    AttendanceStatus = "LATE"
)

// PointsCategory groups ledger entries by the activity that earned them.
type PointsCategory string

const (
	CategoryAttendance PointsCategory = "ATTENDANCE"
	CategoryReport     PointsCategory = "REPORT"
	CategoryRecce      PointsCategory = "RECCE"
)

// Direction tells the two halves of a day's attendance apart.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)
