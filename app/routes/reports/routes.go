package reports

import (
	"strings"

	"github.com/RehanWaris/voiceworx-vapp/app/routes/auth"
	"github.com/RehanWaris/voiceworx-vapp/app/services"
	"github.com/gofiber/fiber/v2"
)

type handlers struct {
	deps *services.Deps
}

func SetupReportsRoutes(app *fiber.App, deps *services.Deps) {
	h := &handlers{deps: deps}
	reports := app.Group("/reports")
	reports.Use(auth.AuthMiddleware(deps))

	reports.Get("/", h.ReportsPage)
	reports.Post("/new", h.CreateReportAPI)
}

func (h *handlers) ReportsPage(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	rows, err := h.deps.Activity.Reports(c.UserContext(), user.ID)
	if err != nil {
		h.deps.Logger.Error("list reports", "user_id", user.ID, "error", err)
		return err
	}

	if auth.WantsJSON(c) {
		return c.JSON(fiber.Map{"reports": rows})
	}
	return c.Render("reports/index", fiber.Map{
		"Title":       "Daily Reports - V-app",
		"CurrentPage": "reports",
		"User":        user,
		"Reports":     rows,
		"Today":       services.DateKey(h.deps.Clock()),
		"Saved":       c.Query("ok") == "1",
	})
}

func (h *handlers) CreateReportAPI(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	reportDate := strings.TrimSpace(c.FormValue("report_date"))
	summary := strings.TrimSpace(c.FormValue("summary"))

	if _, err := services.ParseDateKey(reportDate, h.deps.Config.Location()); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "report_date must be YYYY-MM-DD")
	}
	if summary == "" {
		return fiber.NewError(fiber.StatusBadRequest, "summary is required")
	}

	report, err := h.deps.Activity.SubmitReport(c.UserContext(), user.ID, reportDate, summary, h.deps.Clock())
	if err != nil {
		h.deps.Logger.Error("submit report", "user_id", user.ID, "error", err)
		return err
	}

	if auth.WantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"report":  report,
			"points":  services.PointsReport,
		})
	}
	return c.Redirect("/reports?ok=1")
}
