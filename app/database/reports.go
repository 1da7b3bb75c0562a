package database

import (
	"context"
	"fmt"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/google/uuid"
)

func CreateReport(ctx context.Context, q Querier, report *models.Report) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	_, err := q.ExecContext(ctx,
		`INSERT INTO reports (id, user_id, report_date, summary, created_at) VALUES (?, ?, ?, ?, ?)`,
		report.ID, report.UserID, report.ReportDate, report.Summary, toMillis(report.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

// ListReports returns the user's reports, latest report date first.
func ListReports(ctx context.Context, q Querier, userID string) ([]*models.Report, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, user_id, report_date, summary, created_at
		 FROM reports WHERE user_id = ?
		 ORDER BY report_date DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*models.Report, 0)
	for rows.Next() {
		report := &models.Report{}
		var createdAt int64
		if err := rows.Scan(&report.ID, &report.UserID, &report.ReportDate, &report.Summary, &createdAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		report.CreatedAt = fromMillis(createdAt)
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}
