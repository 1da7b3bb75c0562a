package services

import (
	"context"
	"sort"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/database"
	"github.com/RehanWaris/voiceworx-vapp/app/models"
)

// Point values per activity.
const (
	PointsCheckInOnTime = 10
	PointsCheckInLate   = -5
	PointsCheckOut      = 10
	PointsReport        = 10
	PointsRecce         = 15
)

// Ledger is the append-only points account.
type Ledger struct {
	db *database.DB
}

func NewLedger(db *database.DB) *Ledger {
	return &Ledger{db: db}
}

// Award appends one entry. q lets the caller include the append in its own
// transaction; nil uses the ledger's database.
func (l *Ledger) Award(ctx context.Context, q database.Querier, userID string, category models.PointsCategory, description string, delta int, at time.Time) error {
	if q == nil {
		q = l.db
	}
	return database.InsertPoints(ctx, q, &models.PointsEntry{
		UserID:      userID,
		Category:    category,
		Description: description,
		Delta:       delta,
		CreatedAt:   at,
	})
}

func (l *Ledger) Total(ctx context.Context, userID string) (int, error) {
	return database.SumPoints(ctx, l.db, userID)
}

func (l *Ledger) Recent(ctx context.Context, userID string, limit int) ([]*models.PointsEntry, error) {
	return database.ListPoints(ctx, l.db, userID, limit)
}

// Leaderboard ranks every user by total, highest first. Equal totals keep
// name order.
func (l *Ledger) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	totals, err := database.PointTotals(ctx, l.db)
	if err != nil {
		return nil, err
	}
	RankLeaderboard(totals)
	return totals, nil
}

// RankLeaderboard sorts entries by total descending, stable on input order.
func RankLeaderboard(entries []models.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})
}

// CheckInPoints is the delta a check-in with status earns.
func CheckInPoints(status models.AttendanceStatus) int {
	if status == models.Late {
		return PointsCheckInLate
	}
	return PointsCheckInOnTime
}
