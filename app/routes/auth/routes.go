package auth

import (
	"errors"

	"github.com/RehanWaris/voiceworx-vapp/app/database"
	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/RehanWaris/voiceworx-vapp/app/services"
	"github.com/gofiber/fiber/v2"
)

type handlers struct {
	deps *services.Deps
}

func SetupAuthRoutes(app *fiber.App, deps *services.Deps) {
	h := &handlers{deps: deps}
	auth := app.Group("/auth")

	auth.Get("/register", h.ShowRegisterPage)
	auth.Post("/register", h.RegisterAPI)
	auth.Get("/login", h.ShowLoginPage)
	auth.Post("/login", h.LoginAPI)
	auth.Post("/logout", h.LogoutAPI)
}

func (h *handlers) ShowRegisterPage(c *fiber.Ctx) error {
	return c.Render("auth/register", fiber.Map{
		"Title":       "Register - V-app",
		"CurrentPage": "register",
		"Error":       c.Query("e"),
	})
}

func (h *handlers) ShowLoginPage(c *fiber.Ctx) error {
	// Already logged in
	if user, err := Identify(h.deps, c); err == nil && user != nil {
		return c.Redirect("/dashboard")
	}

	return c.Render("auth/login", fiber.Map{
		"Title":       "Login - V-app",
		"CurrentPage": "login",
		"Error":       c.Query("e"),
		"Registered":  c.Query("ok") == "1",
	})
}

// AuthMiddleware resolves the session cookie to a stored user. Anonymous
// callers get 401 JSON or a redirect to the login page.
func AuthMiddleware(deps *services.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := Identify(deps, c)
		if err != nil {
			return err
		}
		if user == nil {
			if WantsJSON(c) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"error":   "authentication required",
					"code":    fiber.StatusUnauthorized,
				})
			}
			return c.Redirect("/auth/login")
		}
		c.Locals(userLocal, user)
		return c.Next()
	}
}

// OptionalAuth sets the user when the session is valid and never rejects.
func OptionalAuth(deps *services.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := Identify(deps, c)
		if err != nil {
			return err
		}
		if user != nil {
			c.Locals(userLocal, user)
		}
		return c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentUser(c).IsAdmin() {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

// Identify returns the user behind the session cookie, or nil for an
// anonymous caller. Bad or expired tokens and deleted users are anonymous.
func Identify(deps *services.Deps, c *fiber.Ctx) (*models.User, error) {
	claims, ok := deps.Credentials.ResolveToken(c.Cookies(deps.Config.SessionCookie))
	if !ok {
		return nil, nil
	}
	user, err := database.GetUserByID(c.UserContext(), deps.DB, claims.Subject)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		deps.Logger.Error("load session user", "user_id", claims.Subject, "error", err)
		return nil, err
	}
	return user, nil
}
