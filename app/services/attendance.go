package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/database"
	"github.com/RehanWaris/voiceworx-vapp/app/models"
)

// Mark is what the caller supplies for either half of the day.
type Mark struct {
	Lat    *float64
	Lng    *float64
	Photo  string
	Remark string
}

// CheckResult is the outcome of a check-in or check-out.
type CheckResult struct {
	Record *models.Attendance      `json:"record"`
	Status models.AttendanceStatus `json:"status"`
	Points int                     `json:"points"`
	Total  int                     `json:"total"`
}

// AttendanceSummary is the caller's view of today.
type AttendanceSummary struct {
	Date         string             `json:"date"`
	Record       *models.Attendance `json:"record"`
	LateCount    int                `json:"late_count"`
	Paycut       int                `json:"paycut"`
	Points       int                `json:"points"`
	WorkingHours *float64           `json:"working_hours"`
}

// Attendance applies the arrival rules and keeps the day's record and the
// points ledger in step.
type Attendance struct {
	db     *database.DB
	ledger *Ledger
}

func NewAttendance(db *database.DB, ledger *Ledger) *Attendance {
	return &Attendance{db: db, ledger: ledger}
}

// CheckIn classifies now, upserts the day's check-in and awards points in
// one transaction.
func (a *Attendance) CheckIn(ctx context.Context, userID string, now time.Time, mark Mark) (*CheckResult, error) {
	date := DateKey(now)
	status := ClassifyArrival(now)
	delta := CheckInPoints(status)

	err := a.db.InTx(ctx, func(q database.Querier) error {
		if err := database.UpsertCheckIn(ctx, q, userID, date, database.CheckInMark{
			At:     now,
			Lat:    mark.Lat,
			Lng:    mark.Lng,
			Photo:  mark.Photo,
			Remark: mark.Remark,
			Status: status,
		}); err != nil {
			return err
		}
		return a.ledger.Award(ctx, q, userID, models.CategoryAttendance, "Check-in", delta, now)
	})
	if err != nil {
		return nil, fmt.Errorf("check in: %w", err)
	}
	return a.result(ctx, userID, date, status, delta)
}

// CheckOut records the day's check-out and awards points. Returns
// database.ErrNoCheckIn when there is no check-in for the day.
func (a *Attendance) CheckOut(ctx context.Context, userID string, now time.Time, mark Mark) (*CheckResult, error) {
	date := DateKey(now)

	err := a.db.InTx(ctx, func(q database.Querier) error {
		if err := database.UpdateCheckOut(ctx, q, userID, date, database.CheckOutMark{
			At:     now,
			Lat:    mark.Lat,
			Lng:    mark.Lng,
			Photo:  mark.Photo,
			Remark: mark.Remark,
		}); err != nil {
			return err
		}
		return a.ledger.Award(ctx, q, userID, models.CategoryAttendance, "Check-out", PointsCheckOut, now)
	})
	if err != nil {
		if errors.Is(err, database.ErrNoCheckIn) {
			return nil, err
		}
		return nil, fmt.Errorf("check out: %w", err)
	}
	res, err := a.result(ctx, userID, date, "", PointsCheckOut)
	if err != nil {
		return nil, err
	}
	if res.Record != nil {
		res.Status = res.Record.Status
	}
	return res, nil
}

// HasCheckedIn reports whether the day of now already has a record.
func (a *Attendance) HasCheckedIn(ctx context.Context, userID string, now time.Time) (bool, error) {
	record, err := a.find(ctx, userID, DateKey(now))
	if err != nil {
		return false, err
	}
	return record != nil, nil
}

// Today summarises the day of now plus the month-to-date late count.
func (a *Attendance) Today(ctx context.Context, userID string, now time.Time) (*AttendanceSummary, error) {
	date := DateKey(now)
	record, err := a.find(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	late, err := a.MonthlyLateCount(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	total, err := a.ledger.Total(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := &AttendanceSummary{
		Date:      date,
		Record:    record,
		LateCount: late,
		Paycut:    PaycutUnits(late),
		Points:    total,
	}
	if record != nil {
		summary.WorkingHours = WorkingHours(record.CheckInAt, record.CheckOutAt)
	}
	return summary, nil
}

// MonthlyLateCount counts LATE records in the calendar month of now.
func (a *Attendance) MonthlyLateCount(ctx context.Context, userID string, now time.Time) (int, error) {
	from, to := MonthRange(now)
	return database.CountLateBetween(ctx, a.db, userID, from, to)
}

// Roster returns every record for date joined with its user.
func (a *Attendance) Roster(ctx context.Context, date string) ([]*models.RosterRow, error) {
	return database.ListAttendanceByDate(ctx, a.db, date)
}

func (a *Attendance) find(ctx context.Context, userID, date string) (*models.Attendance, error) {
	record, err := database.FindAttendance(ctx, a.db, userID, date)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	return record, err
}

func (a *Attendance) result(ctx context.Context, userID, date string, status models.AttendanceStatus, delta int) (*CheckResult, error) {
	record, err := a.find(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	total, err := a.ledger.Total(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &CheckResult{Record: record, Status: status, Points: delta, Total: total}, nil
}
