package services_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/RehanWaris/voiceworx-vapp/app/services"
	"github.com/xuri/excelize/v2"
)

func rosterFixture() []*models.RosterRow {
	in := at(2024, time.June, 3, 9, 5, 0)
	out := at(2024, time.June, 3, 17, 45, 30)
	return []*models.RosterRow{
		{
			UserName:  "Asha",
			UserEmail: "asha@example.com",
			Attendance: models.Attendance{
				Date:        "2024-06-03",
				Status:      models.Present,
				CheckInAt:   &in,
				CheckInLat:  floatRef(12.9716),
				CheckInLng:  floatRef(77.5946),
				CheckOutAt:  &out,
				CheckOutLat: floatRef(12.97),
				CheckOutLng: floatRef(77.59),
			},
		},
		{
			UserName:  "Bala, Jr.",
			UserEmail: "bala@example.com",
			Attendance: models.Attendance{
				Date:      "2024-06-03",
				Status:    models.Late,
				CheckInAt: &in,
			},
		},
	}
}

func TestWriteRosterCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := services.WriteRosterCSV(&buf, rosterFixture(), time.UTC); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("csv lines = %d, want 3:\n%s", len(lines), buf.String())
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if strings.Join(records[0], "|") != strings.Join(services.RosterHeader, "|") {
		t.Fatalf("header = %v, want %v", records[0], services.RosterHeader)
	}
	want := []string{"Asha", "asha@example.com", "2024-06-03", "PRESENT", "09:05:00", "17:45:30", "12.9716", "77.5946", "12.97", "77.59"}
	if strings.Join(records[1], "|") != strings.Join(want, "|") {
		t.Fatalf("row = %v, want %v", records[1], want)
	}
	if records[2][0] != "Bala, Jr." || records[2][5] != "" || records[2][8] != "" {
		t.Fatalf("row = %v, want quoted name and blank check-out", records[2])
	}
}

func TestWriteRosterCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := services.WriteRosterCSV(&buf, nil, time.UTC); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Fatalf("csv lines = %d, want header only", got)
	}
}

func TestWriteRosterXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := services.WriteRosterXLSX(&buf, rosterFixture(), time.UTC); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer func() { _ = file.Close() }()

	if name := file.GetSheetName(0); name != "Attendance" {
		t.Fatalf("sheet = %q, want Attendance", name)
	}
	rows, err := file.GetRows("Attendance")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][9] != "Check-out Lng" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][0] != "Asha" || rows[1][4] != "09:05:00" {
		t.Fatalf("first row = %v", rows[1])
	}
}
