package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/routes/admin"
	"github.com/RehanWaris/voiceworx-vapp/app/routes/attendance"
	"github.com/RehanWaris/voiceworx-vapp/app/routes/auth"
	"github.com/RehanWaris/voiceworx-vapp/app/routes/dashboard"
	"github.com/RehanWaris/voiceworx-vapp/app/routes/home"
	"github.com/RehanWaris/voiceworx-vapp/app/routes/recce"
	"github.com/RehanWaris/voiceworx-vapp/app/routes/reports"
	"github.com/RehanWaris/voiceworx-vapp/app/services"
	"github.com/RehanWaris/voiceworx-vapp/app/templates"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
)

// bodyLimit covers a phone photo plus form fields.
const bodyLimit = 16 * 1024 * 1024

// New builds the application with every route group mounted.
func New(deps *services.Deps) *fiber.App {
	engine := html.NewFileSystem(http.FS(templates.FS), ".html")
	loc := deps.Config.Location()
	engine.AddFunc("clock", func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.In(loc).Format("15:04")
	})
	engine.AddFunc("stamp", func(t time.Time) string {
		return t.In(loc).Format("2006-01-02 15:04")
	})
	engine.AddFunc("coord", func(v *float64) string {
		if v == nil {
			return "-"
		}
		return strconv.FormatFloat(*v, 'f', 5, 64)
	})
	engine.AddFunc("hours", func(v *float64) string {
		if v == nil {
			return "-"
		}
		return strconv.FormatFloat(*v, 'f', 2, 64)
	})
	engine.AddFunc("add1", func(i int) int {
		return i + 1
	})
	engine.Reload(deps.Config.TemplateReload)

	app := fiber.New(fiber.Config{
		Views:                 engine,
		ViewsLayout:           "layouts/main",
		PassLocalsToViews:     true,
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(deps),
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Static("/static", deps.Config.StaticDir)
	app.Static(services.UploadURLPrefix, deps.Uploads.Root())

	home.SetupHomeRoutes(app, deps)
	auth.SetupAuthRoutes(app, deps)
	dashboard.SetupDashboardRoutes(app, deps)
	attendance.SetupAttendanceRoutes(app, deps)
	reports.SetupReportsRoutes(app, deps)
	recce.SetupRecceRoutes(app, deps)
	admin.SetupAdminRoutes(app, deps)

	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "page not found")
	})

	return app
}

// errorHandler renders JSON for JSON clients and an error page otherwise.
func errorHandler(deps *services.Deps) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			deps.Logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		}

		if auth.WantsJSON(c) {
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   message,
				"code":    code,
			})
		}

		data := fiber.Map{
			"Title":        strconv.Itoa(code) + " - V-app",
			"CurrentPage":  "",
			"User":         auth.CurrentUser(c),
			"ErrorCode":    code,
			"ErrorTitle":   http.StatusText(code),
			"ErrorMessage": message,
		}
		page := "error"
		if code == fiber.StatusNotFound {
			page = "404"
		}
		if renderErr := c.Status(code).Render(page, data); renderErr != nil {
			return c.Status(code).SendString(message)
		}
		return nil
	}
}
