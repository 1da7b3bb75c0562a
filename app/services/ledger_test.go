package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/RehanWaris/voiceworx-vapp/app/services"
	"github.com/RehanWaris/voiceworx-vapp/app/testutil"
)

func TestLedgerTotal(t *testing.T) {
	deps := testutil.NewDeps(t, nil)
	ctx := context.Background()
	user := testutil.CreateUser(t, deps, "Asha", "asha@example.com", "pw", models.RoleEmployee)

	total, err := deps.Ledger.Total(ctx, user.ID)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 0 {
		t.Fatalf("empty total = %d, want 0", total)
	}

	base := at(2024, time.June, 3, 9, 0, 0)
	for i, delta := range []int{10, -5, 10} {
		if err := deps.Ledger.Award(ctx, nil, user.ID, models.CategoryAttendance, "test", delta, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("award %d: %v", delta, err)
		}
	}

	total, err = deps.Ledger.Total(ctx, user.ID)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 15 {
		t.Fatalf("total = %d, want 15", total)
	}

	recent, err := deps.Ledger.Recent(ctx, user.ID, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].Delta != 10 || recent[1].Delta != -5 {
		t.Fatalf("recent = %+v, want newest two entries", recent)
	}
}

func TestLeaderboardOrder(t *testing.T) {
	deps := testutil.NewDeps(t, nil)
	ctx := context.Background()
	asha := testutil.CreateUser(t, deps, "Asha", "asha@example.com", "pw", models.RoleEmployee)
	bala := testutil.CreateUser(t, deps, "Bala", "bala@example.com", "pw", models.RoleEmployee)
	testutil.CreateUser(t, deps, "Chitra", "chitra@example.com", "pw", models.RoleAdmin)

	now := at(2024, time.June, 3, 9, 0, 0)
	award := func(userID string, delta int) {
		t.Helper()
		if err := deps.Ledger.Award(ctx, nil, userID, models.CategoryReport, "test", delta, now); err != nil {
			t.Fatalf("award: %v", err)
		}
	}
	award(asha.ID, 15)
	award(bala.ID, 20)

	board, err := deps.Ledger.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	got := make([]string, len(board))
	for i, entry := range board {
		got[i] = entry.User.Name
	}
	want := []string{"Bala", "Asha", "Chitra"}
	if len(got) != len(want) {
		t.Fatalf("leaderboard = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("leaderboard = %v, want %v", got, want)
		}
	}
	if board[0].Total != 20 || board[1].Total != 15 || board[2].Total != 0 {
		t.Fatalf("totals = %d,%d,%d, want 20,15,0", board[0].Total, board[1].Total, board[2].Total)
	}
}

func TestRankLeaderboardKeepsTieOrder(t *testing.T) {
	entries := []models.LeaderboardEntry{
		{User: models.User{Name: "Asha"}, Total: 10},
		{User: models.User{Name: "Bala"}, Total: 30},
		{User: models.User{Name: "Chitra"}, Total: 10},
		{User: models.User{Name: "Dev"}, Total: 30},
	}
	services.RankLeaderboard(entries)

	want := []string{"Bala", "Dev", "Asha", "Chitra"}
	for i, name := range want {
		if entries[i].User.Name != name {
			t.Fatalf("position %d = %s, want %s", i, entries[i].User.Name, name)
		}
	}
}

func TestCheckInPoints(t *testing.T) {
	if got := services.CheckInPoints(models.Present); got != 10 {
		t.Fatalf("present points = %d, want 10", got)
	}
	if got := services.CheckInPoints(models.Late); got != -5 {
		t.Fatalf("late points = %d, want -5", got)
	}
}
