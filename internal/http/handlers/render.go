package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"tienda/internal/domain"
	"tienda/internal/forms"
	applog "tienda/internal/log"

	"github.com/gofiber/fiber/v2"
)

const flashCookie = "flash"

// render injects the signed-in administrator, the CSRF token and any pending
// flash message, then renders tmpl.
func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if a := currentAdmin(c); a != nil {
		data["Admin"] = a
	}
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok
	if kind, msg := takeFlash(c); msg != "" {
		data["Flash"] = fiber.Map{"Kind": kind, "Message": msg}
	}
	return c.Render(tmpl, data)
}

func renderStatus(c *fiber.Ctx, status int, tmpl string, data fiber.Map) error {
	c.Status(status)
	return render(c, tmpl, data)
}

func notFoundPage(c *fiber.Ctx, msg string) error {
	return renderStatus(c, fiber.StatusNotFound, "notfound", fiber.Map{"Message": msg})
}

// flash stores a one-shot message shown by the next rendered page.
func flash(c *fiber.Ctx, kind, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + msg),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func takeFlash(c *fiber.Ctx) (string, string) {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return "", ""
	}
	c.ClearCookie(flashCookie)
	v, err := url.QueryUnescape(raw)
	if err != nil {
		return "", ""
	}
	kind, msg, ok := strings.Cut(v, "|")
	if !ok || (kind != "success" && kind != "error") {
		return "", ""
	}
	return kind, msg
}

func redirectWith(c *fiber.Ctx, to, kind, msg string) error {
	flash(c, kind, msg)
	return c.Redirect(to)
}

func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

func blockedMessage(e *domain.DependencyBlockedError) string {
	return fmt.Sprintf("This %s cannot be deleted: %d %s record(s) still use it.",
		label(e.Entity), e.Count, label(e.Dependent))
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func label(e domain.Entity) string { return strings.ReplaceAll(string(e), "_", " ") }

// formFailed answers a rejected form submission: validation failures
// re-render tmpl with the field errors, anything else becomes an error page.
func formFailed(c *fiber.Ctx, action string, err error, tmpl string, data fiber.Map) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		applog.Info(c, action+".invalid", map[string]any{"fields": fieldNames(ve.Fields)})
		data["Errors"] = ve.Fields
		if data["Form"] == nil {
			data["Form"] = map[string]string{}
		}
		return renderStatus(c, fiber.StatusUnprocessableEntity, tmpl, data)
	}
	return pageFailed(c, action, err)
}

func pageFailed(c *fiber.Ctx, action string, err error) error {
	if domain.IsNotFound(err) {
		return notFoundPage(c, "The record you are looking for does not exist.")
	}
	applog.Error(c, action+".fail", err, nil)
	return renderStatus(c, fiber.StatusInternalServerError, "notfound", fiber.Map{
		"Message": "Something went wrong. Please try again.",
	})
}

// deleted finishes a page delete: success and a blocked delete both go back
// to the list with a flash message.
func deleted(c *fiber.Ctx, action string, err error, list string, fields map[string]any) error {
	var blocked *domain.DependencyBlockedError
	switch {
	case err == nil:
		applog.Audit(c, action, fields)
		return redirectWith(c, list, "success", "Record deleted.")
	case errors.As(err, &blocked):
		applog.Info(c, action+".blocked", map[string]any{"count": blocked.Count, "dependent": blocked.Dependent})
		return redirectWith(c, list, "error", blockedMessage(blocked))
	default:
		return pageFailed(c, action, err)
	}
}

// jsonFailed is formFailed for the JSON endpoints.
func jsonFailed(c *fiber.Ctx, action string, err error) error {
	var ve *domain.ValidationError
	var blocked *domain.DependencyBlockedError
	switch {
	case errors.As(err, &ve):
		applog.Info(c, action+".invalid", map[string]any{"fields": fieldNames(ve.Fields)})
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"ok": false, "error": "Please correct the highlighted fields.", "errors": ve.Fields,
		})
	case domain.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"ok": false, "error": "Not found."})
	case errors.As(err, &blocked):
		applog.Info(c, action+".blocked", map[string]any{"count": blocked.Count, "dependent": blocked.Dependent})
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"ok": false, "error": blockedMessage(blocked)})
	default:
		applog.Error(c, action+".fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok": false, "error": "Something went wrong. Please try again.",
		})
	}
}

func fieldNames(fe domain.FieldErrors) []string {
	out := make([]string, 0, len(fe))
	for k := range fe {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// bind parses the body into in and runs its shape checks.
func bind(c *fiber.Ctx, in any) error {
	if err := c.BodyParser(in); err != nil {
		return domain.FieldError("form", "The submitted data is not valid.")
	}
	if fe := forms.Shape(in); fe != nil {
		return &domain.ValidationError{Fields: fe}
	}
	return nil
}
