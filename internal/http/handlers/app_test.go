package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "tienda/internal/log"
)

func TestErrorHandlerHidesDetails(t *testing.T) {
	var logs bytes.Buffer
	applog.SetOutput(&logs)
	t.Cleanup(func() { applog.SetOutput(&bytes.Buffer{}) })

	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("pq: relation \"sales\" does not exist")
	})

	read := func(resp *http.Response) string {
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(b)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	// no view engine here, so the plain text fallback answers
	assert.Equal(t, genericFailure, read(resp))

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("Accept", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	out := read(resp)
	assert.JSONEq(t, `{"ok":false,"error":"Something went wrong. Please try again."}`, out)
	assert.NotContains(t, out, "relation")

	assert.Contains(t, logs.String(), `"action":"server.error"`)
	assert.Contains(t, logs.String(), "does not exist")
}

func TestCSRFTokenPrefersHeader(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		tok, err := csrfToken(c)
		if err != nil {
			return c.SendString("none")
		}
		return c.SendString(tok)
	})

	send := func(header, form string) string {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("csrf="+form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if header != "" {
			req.Header.Set("X-Csrf-Token", header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(b)
	}

	assert.Equal(t, "from-header", send("from-header", "from-form"))
	assert.Equal(t, "from-form", send("", "from-form"))
	assert.Equal(t, "none", send("", ""))
}
