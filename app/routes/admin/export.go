package admin

import (
	"bytes"
	"fmt"

	"github.com/RehanWaris/voiceworx-vapp/app/services"
	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportAPI downloads the day's roster as CSV (default) or XLSX.
func (h *handlers) ExportAPI(c *fiber.Ctx) error {
	date, err := h.rosterDate(c)
	if err != nil {
		return err
	}
	format := c.Query("format", "csv")
	if format != "csv" && format != "xlsx" {
		return fiber.NewError(fiber.StatusBadRequest, "format must be csv or xlsx")
	}

	rows, err := h.deps.Attendance.Roster(c.UserContext(), date)
	if err != nil {
		h.deps.Logger.Error("load roster", "date", date, "error", err)
		return err
	}

	var buf bytes.Buffer
	loc := h.deps.Config.Location()
	switch format {
	case "xlsx":
		err = services.WriteRosterXLSX(&buf, rows, loc)
		c.Set(fiber.HeaderContentType, xlsxContentType)
	default:
		err = services.WriteRosterCSV(&buf, rows, loc)
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	}
	if err != nil {
		h.deps.Logger.Error("export roster", "date", date, "format", format, "error", err)
		return err
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="attendance_%s.%s"`, date, format))
	return c.Send(buf.Bytes())
}
