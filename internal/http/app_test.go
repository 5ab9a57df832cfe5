package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tienda/internal/config"
	"tienda/internal/http/handlers"
	"tienda/internal/repos"
)

const testPassword = "Secreta#2024"

// harness drives the server main runs, over an in-memory store. Requests
// sent through it carry the CSRF cookie and X-Csrf-Token header.
type harness struct {
	t    *testing.T
	app  *fiber.App
	deps *handlers.Deps
	db   *sqlx.DB
	csrf string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := repos.OpenDB("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{
		ShopName:     "Tienda Prueba",
		TemplatesDir: "../../web/templates",
		StaticDir:    "../../web/static",
	}
	deps := handlers.NewDeps(db, cfg)
	deps.AdminHandler.Admins.Cost = bcrypt.MinCost

	h := &harness{t: t, app: handlers.NewApp(cfg, deps), deps: deps, db: db}
	form := h.raw(httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusOK, form.StatusCode)
	h.csrf = cookie(form, "csrf_")
	require.NotEmpty(t, h.csrf)
	return h
}

func cookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// raw sends req untouched.
func (h *harness) raw(req *http.Request) *http.Response {
	h.t.Helper()
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	return resp
}

func (h *harness) send(req *http.Request, sid string) *http.Response {
	h.t.Helper()
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	if h.csrf != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: h.csrf})
		if req.Method != http.MethodGet && req.Header.Get("X-Csrf-Token") == "" {
			req.Header.Set("X-Csrf-Token", h.csrf)
		}
	}
	return h.raw(req)
}

func (h *harness) get(path, sid string) *http.Response {
	return h.send(httptest.NewRequest(http.MethodGet, path, nil), sid)
}

func (h *harness) postForm(path string, vals url.Values, sid string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.send(req, sid)
}

func (h *harness) postJSON(path string, v any, sid string) *http.Response {
	h.t.Helper()
	b, err := json.Marshal(v)
	require.NoError(h.t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return h.send(req, sid)
}

// register stores an administrator directly through the service.
func (h *harness) register(username string) {
	h.t.Helper()
	_, err := h.deps.AdminHandler.Admins.Register(context.Background(), map[string]string{
		"name": "Laura Gómez", "username": username, "email": username + "@tienda.co",
		"password": testPassword, "password_confirm": testPassword,
	})
	require.NoError(h.t, err)
}

// signIn registers laura and returns the session id issued by POST /login.
func (h *harness) signIn() string {
	h.t.Helper()
	h.register("laura")
	resp := h.postForm("/login", url.Values{"login": {"laura"}, "password": {testPassword}}, "")
	require.Equal(h.t, http.StatusFound, resp.StatusCode)
	sid := cookie(resp, "sid")
	require.NotEmpty(h.t, sid)
	return sid
}
