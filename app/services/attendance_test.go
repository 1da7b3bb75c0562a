package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/database"
	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/RehanWaris/voiceworx-vapp/app/services"
	"github.com/RehanWaris/voiceworx-vapp/app/testutil"
)

func floatRef(v float64) *float64 { return &v }

func TestCheckInTwiceSameDay(t *testing.T) {
	deps := testutil.NewDeps(t, nil)
	ctx := context.Background()
	user := testutil.CreateUser(t, deps, "Asha", "asha@example.com", "pw", models.RoleEmployee)

	first, err := deps.Attendance.CheckIn(ctx, user.ID, at(2024, time.June, 3, 10, 0, 0), services.Mark{
		Lat:   floatRef(12.97),
		Lng:   floatRef(77.59),
		Photo: "/uploads/attendance/a_in.jpg",
	})
	if err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	if first.Status != models.Present || first.Points != 10 || first.Total != 10 {
		t.Fatalf("first check-in = %s %+d total %d, want PRESENT +10 total 10", first.Status, first.Points, first.Total)
	}

	second, err := deps.Attendance.CheckIn(ctx, user.ID, at(2024, time.June, 3, 10, 35, 0), services.Mark{
		Lat:    floatRef(13.01),
		Photo:  "/uploads/attendance/b_in.jpg",
		Remark: "traffic",
	})
	if err != nil {
		t.Fatalf("second check-in: %v", err)
	}
	if second.Status != models.Late || second.Points != -5 || second.Total != 5 {
		t.Fatalf("second check-in = %s %+d total %d, want LATE -5 total 5", second.Status, second.Points, second.Total)
	}

	record := second.Record
	if record == nil {
		t.Fatal("expected stored record")
	}
	if record.ID != first.Record.ID {
		t.Fatalf("record id changed from %s to %s", first.Record.ID, record.ID)
	}
	if !record.CheckInAt.Equal(at(2024, time.June, 3, 10, 35, 0)) {
		t.Fatalf("check-in at = %v, want 10:35", record.CheckInAt)
	}
	if record.CheckInLat == nil || *record.CheckInLat != 13.01 || record.CheckInLng != nil {
		t.Fatalf("check-in coordinates = %v,%v, want second call's values", record.CheckInLat, record.CheckInLng)
	}
	if record.CheckInPhoto != "/uploads/attendance/b_in.jpg" || record.CheckInRemark != "traffic" {
		t.Fatalf("check-in photo/remark = %q/%q", record.CheckInPhoto, record.CheckInRemark)
	}

	entries, err := deps.Ledger.Recent(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ledger entries = %d, want 2", len(entries))
	}
	for _, entry := range entries {
		if entry.Category != models.CategoryAttendance {
			t.Fatalf("entry category = %s, want ATTENDANCE", entry.Category)
		}
	}
}

func TestCheckOutRequiresCheckIn(t *testing.T) {
	deps := testutil.NewDeps(t, nil)
	ctx := context.Background()
	user := testutil.CreateUser(t, deps, "Asha", "asha@example.com", "pw", models.RoleEmployee)

	_, err := deps.Attendance.CheckOut(ctx, user.ID, at(2024, time.June, 3, 18, 0, 0), services.Mark{Photo: "x"})
	if !errors.Is(err, database.ErrNoCheckIn) {
		t.Fatalf("check-out error = %v, want ErrNoCheckIn", err)
	}
	total, err := deps.Ledger.Total(ctx, user.ID)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 0 {
		t.Fatalf("total after rejected check-out = %d, want 0", total)
	}
}

func TestCheckOutThenCheckInKeepsCheckOut(t *testing.T) {
	deps := testutil.NewDeps(t, nil)
	ctx := context.Background()
	user := testutil.CreateUser(t, deps, "Asha", "asha@example.com", "pw", models.RoleEmployee)

	if _, err := deps.Attendance.CheckIn(ctx, user.ID, at(2024, time.June, 3, 9, 0, 0), services.Mark{Photo: "in"}); err != nil {
		t.Fatalf("check-in: %v", err)
	}
	out, err := deps.Attendance.CheckOut(ctx, user.ID, at(2024, time.June, 3, 17, 30, 0), services.Mark{
		Lat:   floatRef(1.5),
		Lng:   floatRef(2.5),
		Photo: "out",
	})
	if err != nil {
		t.Fatalf("check-out: %v", err)
	}
	if out.Status != models.Present || out.Points != 10 || out.Total != 20 {
		t.Fatalf("check-out = %s %+d total %d, want PRESENT +10 total 20", out.Status, out.Points, out.Total)
	}

	again, err := deps.Attendance.CheckIn(ctx, user.ID, at(2024, time.June, 3, 18, 0, 0), services.Mark{Photo: "in2"})
	if err != nil {
		t.Fatalf("re-check-in: %v", err)
	}
	if !again.Record.CheckedOut() || again.Record.CheckOutPhoto != "out" {
		t.Fatalf("check-out fields lost after re-check-in: %+v", again.Record)
	}
	if again.Record.CheckOutLat == nil || *again.Record.CheckOutLat != 1.5 {
		t.Fatalf("check-out lat = %v, want 1.5", again.Record.CheckOutLat)
	}
}

func TestTodaySummary(t *testing.T) {
	deps := testutil.NewDeps(t, nil)
	ctx := context.Background()
	user := testutil.CreateUser(t, deps, "Asha", "asha@example.com", "pw", models.RoleEmployee)

	// Five late weekdays in June plus one in May that must not count.
	lateDays := []time.Time{
		at(2024, time.May, 31, 11, 0, 0),
		at(2024, time.June, 3, 11, 0, 0),
		at(2024, time.June, 4, 11, 0, 0),
		at(2024, time.June, 5, 11, 0, 0),
		at(2024, time.June, 6, 11, 0, 0),
		at(2024, time.June, 7, 11, 0, 0),
	}
	for _, day := range lateDays {
		if _, err := deps.Attendance.CheckIn(ctx, user.ID, day, services.Mark{Photo: "p"}); err != nil {
			t.Fatalf("check-in %v: %v", day, err)
		}
	}

	now := at(2024, time.June, 10, 9, 0, 0)
	summary, err := deps.Attendance.Today(ctx, user.ID, now)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if summary.Record != nil || summary.WorkingHours != nil {
		t.Fatalf("expected no record today, got %+v", summary.Record)
	}
	if summary.LateCount != 5 || summary.Paycut != 1 {
		t.Fatalf("late/paycut = %d/%d, want 5/1", summary.LateCount, summary.Paycut)
	}
	if summary.Points != -30 {
		t.Fatalf("points = %d, want -30", summary.Points)
	}

	if _, err := deps.Attendance.CheckIn(ctx, user.ID, now, services.Mark{Photo: "p"}); err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if _, err := deps.Attendance.CheckOut(ctx, user.ID, now.Add(8*time.Hour+30*time.Minute), services.Mark{Photo: "p"}); err != nil {
		t.Fatalf("check-out: %v", err)
	}
	summary, err = deps.Attendance.Today(ctx, user.ID, now)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if summary.WorkingHours == nil || *summary.WorkingHours != 8.5 {
		t.Fatalf("working hours = %v, want 8.5", summary.WorkingHours)
	}
}

func TestConcurrentCheckInsKeepOneRow(t *testing.T) {
	deps := testutil.NewDeps(t, nil)
	ctx := context.Background()
	user := testutil.CreateUser(t, deps, "Asha", "asha@example.com", "pw", models.RoleEmployee)

	const workers = 20
	start := at(2024, time.June, 3, 9, 0, 0)
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := deps.Attendance.CheckIn(ctx, user.ID, start.Add(time.Duration(i)*time.Second), services.Mark{Photo: "p"})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent check-in: %v", err)
		}
	}

	var rows int
	if err := deps.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendance WHERE user_id = ? AND date = ?`, user.ID, "2024-06-03",
	).Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("attendance rows = %d, want 1", rows)
	}

	entries, err := deps.Ledger.Recent(ctx, user.ID, workers*2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != workers {
		t.Fatalf("ledger entries = %d, want %d", len(entries), workers)
	}
	total, err := deps.Ledger.Total(ctx, user.ID)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != workers*services.PointsCheckInOnTime {
		t.Fatalf("total = %d, want %d", total, workers*services.PointsCheckInOnTime)
	}
}
