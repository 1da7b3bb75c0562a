package database

import (
	"context"
	"fmt"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/google/uuid"
)

// InsertPoints appends one ledger entry. Entries are never updated or deleted.
func InsertPoints(ctx context.Context, q Querier, entry *models.PointsEntry) error {
	if entry.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := q.ExecContext(ctx,
		`INSERT INTO points (id, user_id, category, description, delta, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, string(entry.Category), entry.Description, entry.Delta, toMillis(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert points: %w", err)
	}
	return nil
}

// SumPoints returns the user's running total, zero when there are no entries.
func SumPoints(ctx context.Context, q Querier, userID string) (int, error) {
	var total int64
	err := q.QueryRowContext(ctx, `SELECT COALESCE(SUM(delta), 0) FROM points WHERE user_id = ?`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum points: %w", err)
	}
	return int(total), nil
}

// ListPoints returns the user's most recent entries, newest first.
func ListPoints(ctx context.Context, q Querier, userID string, limit int) ([]*models.PointsEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := q.QueryContext(ctx,
		`SELECT id, user_id, category, description, delta, created_at
		 FROM points WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.PointsEntry, 0)
	for rows.Next() {
		entry := &models.PointsEntry{}
		var category string
		var createdAt int64
		if err := rows.Scan(&entry.ID, &entry.UserID, &category, &entry.Description, &entry.Delta, &createdAt); err != nil {
			return nil, fmt.Errorf("scan points: %w", err)
		}
		entry.Category = models.PointsCategory(category)
		entry.CreatedAt = fromMillis(createdAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}
	return entries, nil
}

// PointTotals returns every user with their total, ordered by name then id.
func PointTotals(ctx context.Context, q Querier) ([]models.LeaderboardEntry, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT u.id, u.name, u.email, u.role, u.created_at, COALESCE(SUM(p.delta), 0)
		 FROM users u
		 LEFT JOIN points p ON p.user_id = u.id
		 GROUP BY u.id, u.name, u.email, u.role, u.created_at
		 ORDER BY u.name, u.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("point totals: %w", err)
	}
	defer rows.Close()

	totals := make([]models.LeaderboardEntry, 0)
	for rows.Next() {
		var entry models.LeaderboardEntry
		var role string
		var createdAt, total int64
		if err := rows.Scan(&entry.User.ID, &entry.User.Name, &entry.User.Email, &role, &createdAt, &total); err != nil {
			return nil, fmt.Errorf("scan point totals: %w", err)
		}
		entry.User.Role = models.Role(role)
		entry.User.CreatedAt = fromMillis(createdAt)
		entry.Total = int(total)
		totals = append(totals, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("point totals: %w", err)
	}
	return totals, nil
}
