package attendance

import (
	"github.com/RehanWaris/voiceworx-vapp/app/routes/auth"
	"github.com/RehanWaris/voiceworx-vapp/app/services"
	"github.com/gofiber/fiber/v2"
)

type handlers struct {
	deps *services.Deps
}

func SetupAttendanceRoutes(app *fiber.App, deps *services.Deps) {
	h := &handlers{deps: deps}
	attendance := app.Group("/attendance")
	attendance.Use(auth.AuthMiddleware(deps))

	attendance.Get("/", h.AttendancePage)
	attendance.Get("/today", h.TodayAPI)
	attendance.Post("/checkin", h.CheckInAPI)
	attendance.Post("/checkout", h.CheckOutAPI)
}

func (h *handlers) AttendancePage(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	summary, err := h.deps.Attendance.Today(c.UserContext(), user.ID, h.deps.Clock())
	if err != nil {
		h.deps.Logger.Error("load attendance summary", "user_id", user.ID, "error", err)
		return err
	}

	return c.Render("attendance/index", fiber.Map{
		"Title":       "Attendance - V-app",
		"CurrentPage": "attendance",
		"User":        user,
		"Summary":     summary,
		"CheckedIn":   c.Query("in") == "1",
		"CheckedOut":  c.Query("out") == "1",
		"Error":       c.Query("e"),
	})
}

// TodayAPI returns today's record, the month's late count, paycut units,
// points total and working hours.
func (h *handlers) TodayAPI(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	summary, err := h.deps.Attendance.Today(c.UserContext(), user.ID, h.deps.Clock())
	if err != nil {
		h.deps.Logger.Error("load attendance summary", "user_id", user.ID, "error", err)
		return err
	}
	return c.JSON(summary)
}
