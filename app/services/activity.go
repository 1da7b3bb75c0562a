package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/database"
	"github.com/RehanWaris/voiceworx-vapp/app/models"
)

// Activity records daily reports and recce uploads, each with its award.
type Activity struct {
	db     *database.DB
	ledger *Ledger
}

func NewActivity(db *database.DB, ledger *Ledger) *Activity {
	return &Activity{db: db, ledger: ledger}
}

// SubmitReport stores a report for reportDate and awards PointsReport.
func (a *Activity) SubmitReport(ctx context.Context, userID, reportDate, summary string, now time.Time) (*models.Report, error) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, fmt.Errorf("summary is required")
	}
	report := &models.Report{
		UserID:     userID,
		ReportDate: reportDate,
		Summary:    summary,
		CreatedAt:  now,
	}
	err := a.db.InTx(ctx, func(q database.Querier) error {
		if err := database.CreateReport(ctx, q, report); err != nil {
			return err
		}
		return a.ledger.Award(ctx, q, userID, models.CategoryReport, "Daily report", PointsReport, now)
	})
	if err != nil {
		return nil, fmt.Errorf("submit report: %w", err)
	}
	return report, nil
}

func (a *Activity) Reports(ctx context.Context, userID string) ([]*models.Report, error) {
	return database.ListReports(ctx, a.db, userID)
}

// RecordRecce stores an already-written recce file and awards PointsRecce.
func (a *Activity) RecordRecce(ctx context.Context, upload *models.RecceUpload) error {
	upload.Project = strings.TrimSpace(upload.Project)
	upload.Notes = strings.TrimSpace(upload.Notes)
	err := a.db.InTx(ctx, func(q database.Querier) error {
		if err := database.CreateRecce(ctx, q, upload); err != nil {
			return err
		}
		return a.ledger.Award(ctx, q, upload.UserID, models.CategoryRecce, "Recce upload", PointsRecce, upload.UploadedAt)
	})
	if err != nil {
		return fmt.Errorf("record recce: %w", err)
	}
	return nil
}

func (a *Activity) RecceUploads(ctx context.Context, userID string) ([]*models.RecceUpload, error) {
	return database.ListRecce(ctx, a.db, userID)
}
