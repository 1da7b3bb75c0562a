package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/xuri/excelize/v2"
)

// RosterHeader is the column order of the admin attendance export.
var RosterHeader = []string{
	"Name", "Email", "Date", "Status",
	"Check-in Time", "Check-out Time",
	"Check-in Lat", "Check-in Lng",
	"Check-out Lat", "Check-out Lng",
}

const exportSheet = "Attendance"

// RosterRecords flattens roster rows into export cells, times in loc.
func RosterRecords(rows []*models.RosterRow, loc *time.Location) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		a := row.Attendance
		records = append(records, []string{
			row.UserName,
			row.UserEmail,
			a.Date,
			string(a.Status),
			clockTime(a.CheckInAt, loc),
			clockTime(a.CheckOutAt, loc),
			coordinate(a.CheckInLat),
			coordinate(a.CheckInLng),
			coordinate(a.CheckOutLat),
			coordinate(a.CheckOutLng),
		})
	}
	return records
}

// WriteRosterCSV writes a header line plus one line per row.
func WriteRosterCSV(w io.Writer, rows []*models.RosterRow, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RosterHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(RosterRecords(rows, loc)); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

// WriteRosterXLSX writes the same table as WriteRosterCSV as a workbook.
func WriteRosterXLSX(w io.Writer, rows []*models.RosterRow, loc *time.Location) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	table := append([][]string{RosterHeader}, RosterRecords(rows, loc)...)
	for i, record := range table {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(record))
		for j, v := range record {
			values[j] = v
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func clockTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("15:04:05")
}

func coordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
