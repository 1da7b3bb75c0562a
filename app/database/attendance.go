package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/google/uuid"
)

const attendanceColumns = `a.id, a.user_id, a.date,
	a.cin_ts, a.cin_lat, a.cin_lng, a.cin_photo, a.cin_remark,
	a.cout_ts, a.cout_lat, a.cout_lng, a.cout_photo, a.cout_remark,
	a.status, a.created_at, a.updated_at`

// CheckInMark is the check-in half of a day's record.
type CheckInMark struct {
	At     time.Time
	Lat    *float64
	Lng    *float64
	Photo  string
	Remark string
	Status models.AttendanceStatus
}

// CheckOutMark is the check-out half of a day's record.
type CheckOutMark struct {
	At     time.Time
	Lat    *float64
	Lng    *float64
	Photo  string
	Remark string
}

// UpsertCheckIn writes the check-in half for (userID, date) in one statement.
// An existing row keeps its id and check-out fields; its check-in fields and
// status are replaced.
func UpsertCheckIn(ctx context.Context, q Querier, userID, date string, mark CheckInMark) error {
	now := toMillis(mark.At)
	_, err := q.ExecContext(ctx,
		`INSERT INTO attendance (id, user_id, date, cin_ts, cin_lat, cin_lng, cin_photo, cin_remark, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, date) DO UPDATE SET
		   cin_ts = excluded.cin_ts,
		   cin_lat = excluded.cin_lat,
		   cin_lng = excluded.cin_lng,
		   cin_photo = excluded.cin_photo,
		   cin_remark = excluded.cin_remark,
		   status = excluded.status,
		   updated_at = excluded.updated_at`,
		uuid.NewString(), userID, date,
		now, nullFloat(mark.Lat), nullFloat(mark.Lng), nullString(mark.Photo), nullString(mark.Remark),
		string(mark.Status), now, now,
	)
	if err != nil {
		return fmt.Errorf("upsert check-in: %w", err)
	}
	return nil
}

// UpdateCheckOut records the check-out half. Returns ErrNoCheckIn when the
// day has no record.
func UpdateCheckOut(ctx context.Context, q Querier, userID, date string, mark CheckOutMark) error {
	res, err := q.ExecContext(ctx,
		`UPDATE attendance
		 SET cout_ts = ?, cout_lat = ?, cout_lng = ?, cout_photo = ?, cout_remark = ?, updated_at = ?
		 WHERE user_id = ? AND date = ?`,
		toMillis(mark.At), nullFloat(mark.Lat), nullFloat(mark.Lng), nullString(mark.Photo), nullString(mark.Remark), toMillis(mark.At),
		userID, date,
	)
	if err != nil {
		return fmt.Errorf("update check-out: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update check-out: %w", err)
	}
	if n == 0 {
		return ErrNoCheckIn
	}
	return nil
}

// FindAttendance returns the record for (userID, date) or ErrNotFound.
func FindAttendance(ctx context.Context, q Querier, userID, date string) (*models.Attendance, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+attendanceColumns+` FROM attendance a WHERE a.user_id = ? AND a.date = ?`,
		userID, date,
	)
	record, err := scanAttendance(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	return record, nil
}

// ListAttendanceByDate returns every record for date joined with its user,
// ordered by user name.
func ListAttendanceByDate(ctx context.Context, q Querier, date string) ([]*models.RosterRow, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT u.name, u.email, `+attendanceColumns+`
		 FROM attendance a
		 JOIN users u ON a.user_id = u.id
		 WHERE a.date = ?
		 ORDER BY u.name, u.id`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("list attendance by date: %w", err)
	}
	defer rows.Close()

	roster := make([]*models.RosterRow, 0)
	for rows.Next() {
		row := &models.RosterRow{}
		if err := scanAttendanceInto(rows, &row.Attendance, &row.UserName, &row.UserEmail); err != nil {
			return nil, fmt.Errorf("scan roster row: %w", err)
		}
		roster = append(roster, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attendance by date: %w", err)
	}
	return roster, nil
}

// CountLateBetween counts the user's LATE records with from <= date < to.
func CountLateBetween(ctx context.Context, q Querier, userID, from, to string) (int, error) {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendance WHERE user_id = ? AND status = ? AND date >= ? AND date < ?`,
		userID, string(models.Late), from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count late attendance: %w", err)
	}
	return count, nil
}

func scanAttendance(row rowScanner) (*models.Attendance, error) {
	record := &models.Attendance{}
	if err := scanAttendanceInto(row, record); err != nil {
		return nil, err
	}
	return record, nil
}

// scanAttendanceInto scans prefix columns (if any) followed by attendanceColumns.
func scanAttendanceInto(row rowScanner, record *models.Attendance, prefix ...any) error {
	var (
		cinTS, coutTS                    sql.NullInt64
		cinLat, cinLng, coutLat, coutLng sql.NullFloat64
		cinPhoto, cinRemark              sql.NullString
		coutPhoto, coutRemark            sql.NullString
		status                           string
		createdAt, updatedAt             int64
	)
	dest := append(prefix,
		&record.ID, &record.UserID, &record.Date,
		&cinTS, &cinLat, &cinLng, &cinPhoto, &cinRemark,
		&coutTS, &coutLat, &coutLng, &coutPhoto, &coutRemark,
		&status, &createdAt, &updatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	record.CheckInAt = timePtr(cinTS)
	record.CheckInLat = floatPtr(cinLat)
	record.CheckInLng = floatPtr(cinLng)
	record.CheckInPhoto = cinPhoto.String
	record.CheckInRemark = cinRemark.String
	record.CheckOutAt = timePtr(coutTS)
	record.CheckOutLat = floatPtr(coutLat)
	record.CheckOutLng = floatPtr(coutLng)
	record.CheckOutPhoto = coutPhoto.String
	record.CheckOutRemark = coutRemark.String
	record.Status = models.AttendanceStatus(status)
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return nil
}
