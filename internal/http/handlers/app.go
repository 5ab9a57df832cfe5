package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"tienda/internal/config"
	"tienda/internal/format"
	applog "tienda/internal/log"
)

const (
	genericFailure  = "Something went wrong. Please try again."
	securityFailure = "Security check failed. Please refresh and try again."

	// LoginAttempts is how many POST /login a client gets per LoginWindow.
	LoginAttempts = 5
	LoginWindow   = 10 * time.Minute
)

var errNoCSRFToken = errors.New("missing csrf token")

// csrfToken reads the token from the X-Csrf-Token header (JSON calls) or
// the csrf form field (pages).
func csrfToken(c *fiber.Ctx) (string, error) {
	if tok := c.Get("X-Csrf-Token"); tok != "" {
		return tok, nil
	}
	if tok := c.FormValue("csrf"); tok != "" {
		return tok, nil
	}
	return "", errNoCSRFToken
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON) ||
		strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
}

// errorHandler never shows err to the visitor; it goes to the log only.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code == fiber.StatusNotFound {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	}
	applog.Error(c, "server.error", err, nil)
	if wantsJSON(c) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": genericFailure})
	}
	if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": genericFailure}); rerr != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(genericFailure)
	}
	return nil
}

// NewApp builds the server: views, middleware chain, static files, routes
// and the 404 fallback, in that order.
func NewApp(cfg config.Config, d *Deps) *fiber.App {
	engine := html.New(cfg.TemplatesDir, ".html")
	engine.AddFuncMap(format.Funcs)
	engine.Reload(!cfg.IsProduction())

	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: errorHandler})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: applog.Writer()}))
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		Extractor:      csrfToken,
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"err": err.Error()})
			if wantsJSON(c) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"ok": false, "error": securityFailure})
			}
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": securityFailure})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})
	app.Use(Session(d.Auth))

	app.Static("/static", cfg.StaticDir)

	Routes(app, d, limiter.New(limiter.Config{
		Max:        LoginAttempts,
		Expiration: LoginWindow,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}))

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})
	return app
}
