package handlers

import (
	"errors"
	"time"

	"tienda/internal/forms"
	applog "tienda/internal/log"
	"tienda/internal/services"
	"tienda/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth         *services.AuthService
	CookieSecure bool
}

func (h *AuthHandler) setSID(c *fiber.Ctx, sid string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.CookieSecure,
		Expires:  expires,
	})
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if currentAdmin(c) != nil {
		return c.Redirect("/")
	}
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in forms.LoginInput
	if err := bind(c, &in); err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return renderStatus(c, fiber.StatusUnauthorized, "login", fiber.Map{"Err": "Invalid username or password"})
	}
	res := validate.Check(c.UserContext(), nil, validate.LoginSchema, in.Fields(), 0)
	if !res.OK() {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return renderStatus(c, fiber.StatusUnauthorized, "login", fiber.Map{"Err": "Invalid username or password", "Login": in.Login})
	}

	// a fresh session id on every sign-in
	sid := uuid.NewString()
	a, err := h.Auth.Login(c.UserContext(), sid, res.String("login"), res.String("password"))
	if errors.Is(err, services.ErrBadCreds) {
		applog.Security(c, "auth.login.fail", map[string]any{"login": res.String("login")})
		return renderStatus(c, fiber.StatusUnauthorized, "login", fiber.Map{"Err": "Invalid username or password", "Login": in.Login})
	}
	if err != nil {
		return pageFailed(c, "auth.login", err)
	}
	h.setSID(c, sid, time.Time{})
	c.Locals("admin_id", a.ID)
	applog.Audit(c, "auth.login.success", map[string]any{"username": a.Username})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
			applog.Error(c, "auth.logout.fail", err, nil)
		}
	}
	h.setSID(c, "", time.Now().Add(-1*time.Hour))
	applog.Audit(c, "auth.logout", nil)
	return c.Redirect("/login")
}
