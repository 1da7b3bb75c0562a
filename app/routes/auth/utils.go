package auth

import (
	"strings"

	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// CurrentUser returns the user set by AuthMiddleware or OptionalAuth.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocal).(*models.User)
	return user
}

// WantsJSON reports whether the caller asked for a JSON response.
func WantsJSON(c *fiber.Ctx) bool {
	if strings.Contains(strings.ToLower(c.Get(fiber.HeaderAccept)), fiber.MIMEApplicationJSON) {
		return true
	}
	return strings.EqualFold(c.Get(fiber.HeaderXRequestedWith), "XMLHttpRequest")
}
