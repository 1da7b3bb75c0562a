package models

import "time"

// Report is a user's free-text daily report.
type Report struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ReportDate string    `json:"report_date"`
	Summary    string    `json:"summary"`
	CreatedAt  time.Time `json:"created_at"`
}
