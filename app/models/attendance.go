package models

import "time"

// Attendance is one user's record for one calendar day. Check-out fields stay
// nil until the user checks out.
type Attendance struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	Date           string           `json:"date"`
	CheckInAt      *time.Time       `json:"check_in_at"`
	CheckInLat     *float64         `json:"check_in_lat"`
	CheckInLng     *float64         `json:"check_in_lng"`
	CheckInPhoto   string           `json:"check_in_photo"`
	CheckInRemark  string           `json:"check_in_remark,omitempty"`
	CheckOutAt     *time.Time       `json:"check_out_at"`
	CheckOutLat    *float64         `json:"check_out_lat"`
	CheckOutLng    *float64         `json:"check_out_lng"`
	CheckOutPhoto  string           `json:"check_out_photo"`
	CheckOutRemark string           `json:"check_out_remark,omitempty"`
	Status         AttendanceStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// CheckedOut reports whether the check-out half has been recorded.
func (a *Attendance) CheckedOut() bool {
	return a != nil && a.CheckOutAt != nil
}

// RosterRow is an attendance record joined with the owning user's identity.
type RosterRow struct {
	UserName   string     `json:"user_name"`
	UserEmail  string     `json:"user_email"`
	Attendance Attendance `json:"attendance"`
}
