package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shelfwise/internal/domain"
	"shelfwise/internal/services"
)

// RequireUser enforces that a user is logged in; otherwise redirect to login.
// Being signed out is a navigation concern, not an error the pages handle.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// currentUser reads the user RequireUser placed in locals.
func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
