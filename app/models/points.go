package models

import "time"

// PointsEntry is an immutable ledger line.
type PointsEntry struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Category    PointsCategory `json:"category"`
	Description string         `json:"description"`
	Delta       int            `json:"delta"`
	CreatedAt   time.Time      `json:"created_at"`
}

type LeaderboardEntry struct {
	User  User `json:"user"`
	Total int  `json:"total"`
}
