package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/database"
	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/gofiber/fiber/v2"
)

func (h *handlers) RegisterAPI(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	email := database.NormalizeEmail(c.FormValue("email"))
	password := c.FormValue("password")
	if name == "" || email == "" || password == "" {
		return c.Redirect("/auth/register?e=missing")
	}
	if !database.ValidName(name) {
		return c.Redirect("/auth/register?e=invalid")
	}

	hash, err := h.deps.Credentials.HashPassword(password)
	if err != nil {
		return err
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleEmployee,
		CreatedAt:    h.deps.Clock().UTC(),
	}
	if err := database.CreateUser(c.UserContext(), h.deps.DB, user); err != nil {
		if errors.Is(err, database.ErrEmailTaken) {
			return c.Redirect("/auth/login?e=exists")
		}
		h.deps.Logger.Error("register user", "email", email, "error", err)
		return err
	}

	h.deps.Logger.Info("user registered", "user_id", user.ID)
	return c.Redirect("/auth/login?ok=1")
}

func (h *handlers) LoginAPI(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := database.GetUserByEmail(c.UserContext(), h.deps.DB, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Redirect("/auth/login?e=1")
		}
		return err
	}
	if !h.deps.Credentials.CheckPasswordHash(password, user.PasswordHash) {
		return c.Redirect("/auth/login?e=1")
	}

	token, err := h.deps.Credentials.IssueToken(user)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.deps.Config.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  h.deps.Clock().Add(h.deps.Config.TokenTTL),
		HTTPOnly: true,
		Secure:   h.deps.Config.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect("/dashboard")
}

func (h *handlers) LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.deps.Config.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  h.deps.Clock().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.deps.Config.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect("/auth/login")
}
