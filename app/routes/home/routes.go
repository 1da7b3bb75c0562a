package home

import (
	"github.com/RehanWaris/voiceworx-vapp/app/routes/auth"
	"github.com/RehanWaris/voiceworx-vapp/app/services"
	"github.com/gofiber/fiber/v2"
)

func SetupHomeRoutes(app *fiber.App, deps *services.Deps) {
	app.Get("/", auth.OptionalAuth(deps), HomePage)
}

func HomePage(c *fiber.Ctx) error {
	return c.Render("home", fiber.Map{
		"Title":       "V-app",
		"CurrentPage": "home",
		"User":        auth.CurrentUser(c),
	})
}
