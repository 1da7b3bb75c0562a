package admin

import (
	"github.com/RehanWaris/voiceworx-vapp/app/routes/auth"
	"github.com/RehanWaris/voiceworx-vapp/app/services"
	"github.com/gofiber/fiber/v2"
)

type handlers struct {
	deps *services.Deps
}

func SetupAdminRoutes(app *fiber.App, deps *services.Deps) {
	h := &handlers{deps: deps}
	admin := app.Group("/admin")
	admin.Use(auth.AuthMiddleware(deps), auth.AdminMiddleware())

	admin.Get("/", h.LeaderboardPage)
	admin.Get("/attendance", h.RosterPage)
	admin.Get("/attendance/export", h.ExportAPI)
}

func (h *handlers) LeaderboardPage(c *fiber.Ctx) error {
	board, err := h.deps.Ledger.Leaderboard(c.UserContext())
	if err != nil {
		h.deps.Logger.Error("load leaderboard", "error", err)
		return err
	}

	if auth.WantsJSON(c) {
		return c.JSON(fiber.Map{"leaderboard": board})
	}
	return c.Render("admin/index", fiber.Map{
		"Title":       "Leaderboard - V-app",
		"CurrentPage": "admin",
		"User":        auth.CurrentUser(c),
		"Leaderboard": board,
	})
}

func (h *handlers) RosterPage(c *fiber.Ctx) error {
	date, err := h.rosterDate(c)
	if err != nil {
		return err
	}
	rows, err := h.deps.Attendance.Roster(c.UserContext(), date)
	if err != nil {
		h.deps.Logger.Error("load roster", "date", date, "error", err)
		return err
	}

	if auth.WantsJSON(c) {
		return c.JSON(fiber.Map{"date": date, "rows": rows})
	}
	return c.Render("admin/attendance", fiber.Map{
		"Title":       "Attendance Roster - V-app",
		"CurrentPage": "admin",
		"User":        auth.CurrentUser(c),
		"Date":        date,
		"Rows":        services.RosterRecords(rows, h.deps.Config.Location()),
		"Header":      services.RosterHeader,
	})
}

// rosterDate reads ?date=YYYY-MM-DD, defaulting to today.
func (h *handlers) rosterDate(c *fiber.Ctx) (string, error) {
	date := c.Query("date")
	if date == "" {
		return services.DateKey(h.deps.Clock()), nil
	}
	if _, err := services.ParseDateKey(date, h.deps.Config.Location()); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	return date, nil
}
