package handlers

import (
	"tienda/internal/domain"
	applog "tienda/internal/log"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Session attaches the administrator bound to the sid cookie, if any.
func Session(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if a, err := auth.CurrentAdmin(c.UserContext(), sid); err == nil && a != nil {
				c.Locals("admin", a)
				c.Locals("admin_id", a.ID)
			}
		}
		return c.Next()
	}
}

// RequireAdmin sends anonymous visitors to the login page. It expects
// Session to have run.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentAdmin(c) == nil {
			applog.Security(c, "access.denied", nil)
			return c.Redirect("/login")
		}
		return c.Next()
	}
}

func currentAdmin(c *fiber.Ctx) *domain.Administrator {
	a, _ := c.Locals("admin").(*domain.Administrator)
	return a
}

// actingID is the signed-in administrator's id, 0 when anonymous.
func actingID(c *fiber.Ctx) int64 {
	if a := currentAdmin(c); a != nil {
		return a.ID
	}
	return 0
}

// RequireAdminAPI is RequireAdmin for JSON endpoints: 401 instead of a redirect.
func RequireAdminAPI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentAdmin(c) == nil {
			applog.Security(c, "access.denied", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"ok": false, "error": "Sign in required."})
		}
		return c.Next()
	}
}
