package services

import (
	"math"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/models"
)

// Arrivals at or after 10:31 local time are late, Monday through Saturday.
const (
	LateCutoffHour   = 10
	LateCutoffMinute = 31
)

// LatePerPaycut is how many late arrivals in a month cost one paycut unit.
const LatePerPaycut = 4

const dateLayout = "2006-01-02"

// ClassifyArrival returns Late when t's clock time is at or past the cutoff
// on Monday..Saturday. Sunday arrivals are always Present.
func ClassifyArrival(t time.Time) models.AttendanceStatus {
	// Monday = 0 ... Sunday = 6
	weekday := (int(t.Weekday()) + 6) % 7
	if weekday > 5 {
		return models.Present
	}
	h, m := t.Hour(), t.Minute()
	if h > LateCutoffHour || (h == LateCutoffHour && m >= LateCutoffMinute) {
		return models.Late
	}
	return models.Present
}

// PaycutUnits is one unit per LatePerPaycut late arrivals, rounded down.
func PaycutUnits(lateCount int) int {
	if lateCount <= 0 {
		return 0
	}
	return lateCount / LatePerPaycut
}

// WorkingHours returns out-in in hours rounded to two decimals, or nil when
// either end is missing.
func WorkingHours(in, out *time.Time) *float64 {
	if in == nil || out == nil {
		return nil
	}
	hours := math.Round(out.Sub(*in).Hours()*100) / 100
	return &hours
}

// DateKey is the calendar day t falls on, in t's location.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDateKey parses a YYYY-MM-DD day in loc.
func ParseDateKey(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, loc)
}

// MonthRange returns the first day of t's month and the first day of the
// next month, as date keys.
func MonthRange(t time.Time) (from, to string) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return DateKey(start), DateKey(start.AddDate(0, 1, 0))
}
