package dashboard

import (
	"github.com/RehanWaris/voiceworx-vapp/app/routes/auth"
	"github.com/RehanWaris/voiceworx-vapp/app/services"
	"github.com/gofiber/fiber/v2"
)

const recentEntries = 10

type handlers struct {
	deps *services.Deps
}

func SetupDashboardRoutes(app *fiber.App, deps *services.Deps) {
	h := &handlers{deps: deps}
	app.Get("/dashboard", auth.AuthMiddleware(deps), h.DashboardPage)
}

// DashboardPage shows the caller's points total and latest ledger entries.
func (h *handlers) DashboardPage(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	ctx := c.UserContext()

	total, err := h.deps.Ledger.Total(ctx, user.ID)
	if err != nil {
		h.deps.Logger.Error("load points total", "user_id", user.ID, "error", err)
		return err
	}
	recent, err := h.deps.Ledger.Recent(ctx, user.ID, recentEntries)
	if err != nil {
		h.deps.Logger.Error("load recent points", "user_id", user.ID, "error", err)
		return err
	}

	if auth.WantsJSON(c) {
		return c.JSON(fiber.Map{
			"user":   user,
			"points": total,
			"recent": recent,
		})
	}
	return c.Render("dashboard/index", fiber.Map{
		"Title":       "Dashboard - V-app",
		"CurrentPage": "dashboard",
		"User":        user,
		"Points":      total,
		"Recent":      recent,
	})
}
