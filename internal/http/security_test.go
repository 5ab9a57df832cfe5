package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "tienda/internal/log"
)

func TestCSRFGuardsStateChanges(t *testing.T) {
	h := newHarness(t)
	h.register("laura")

	form := h.raw(httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusOK, form.StatusCode)
	tok := cookie(form, "csrf_")
	require.NotEmpty(t, tok)
	assert.Contains(t, body(t, form), tok)

	creds := url.Values{"login": {"laura"}, "password": {testPassword}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(creds.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	missing := h.raw(req)
	assert.Equal(t, http.StatusForbidden, missing.StatusCode)
	assert.Contains(t, body(t, missing), "Security check failed")

	creds.Set("csrf", tok)
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(creds.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	ok := h.raw(req)
	assert.Equal(t, http.StatusFound, ok.StatusCode)
	assert.NotEmpty(t, cookie(ok, "sid"))
}

func TestCSRFHeaderAuthorisesJSONCalls(t *testing.T) {
	h := newHarness(t)
	sid := h.signIn()

	sale := func() *http.Request {
		b, err := json.Marshal(map[string]any{
			"client": "Ana Gómez",
			"items":  []map[string]any{{"name": "Pan", "quantity": 1, "price": 1200}},
		})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: h.csrf})
		return req
	}

	withHeader := sale()
	withHeader.Header.Set("X-Csrf-Token", h.csrf)
	created := h.raw(withHeader)
	require.Equal(t, http.StatusCreated, created.StatusCode)
	assert.Equal(t, true, decode(t, created)["ok"])

	refused := h.raw(sale())
	assert.Equal(t, http.StatusForbidden, refused.StatusCode)
	assert.Contains(t, refused.Header.Get("Content-Type"), "application/json")
	out := decode(t, refused)
	assert.Equal(t, false, out["ok"])
	assert.Equal(t, "Security check failed. Please refresh and try again.", out["error"])

	forged := sale()
	forged.Header.Set("X-Csrf-Token", "not-the-cookie")
	assert.Equal(t, http.StatusForbidden, h.raw(forged).StatusCode)

	var n int
	require.NoError(t, h.db.Get(&n, `SELECT COUNT(*) FROM sales`))
	assert.Equal(t, 1, n)
}

func TestStorageFailuresShowGenericMessage(t *testing.T) {
	h := newHarness(t)
	sid := h.signIn()
	buf := captureLogs(t)

	_, err := h.db.Exec(`DROP TABLE clients`)
	require.NoError(t, err)
	_, err = h.db.Exec(`DROP TABLE sale_items`)
	require.NoError(t, err)
	_, err = h.db.Exec(`DROP TABLE sales`)
	require.NoError(t, err)

	page := h.get("/clients", sid)
	assert.Equal(t, http.StatusInternalServerError, page.StatusCode)
	text := body(t, page)
	assert.Contains(t, text, "Something went wrong. Please try again.")
	assert.NotContains(t, text, "no such table")

	req := httptest.NewRequest(http.MethodGet, "/sales/stats", nil)
	req.Header.Set("Accept", "application/json")
	stats := h.send(req, sid)
	assert.Equal(t, http.StatusInternalServerError, stats.StatusCode)
	raw := body(t, stats)
	assert.NotContains(t, raw, "no such table")
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	assert.Equal(t, false, out["ok"])
	assert.Equal(t, "Something went wrong. Please try again.", out["error"])

	fail, ok := find(entries(t, buf), "client.list.fail")
	require.True(t, ok)
	assert.Equal(t, "error", fail.Level)
}

func TestOversizedBodyRejected(t *testing.T) {
	h := newHarness(t)

	oversize := bytes.Repeat([]byte("A"), (1<<20)+10)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(oversize))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := h.app.Test(req, -1)
	// fasthttp may drop the connection instead of answering
	if err != nil {
		assert.Contains(t, err.Error(), "body size exceeds")
		return
	}
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

type logEntry struct {
	Level   string         `json:"level"`
	Action  string         `json:"action"`
	AdminID int64          `json:"admin_id"`
	Fields  map[string]any `json:"fields"`
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	applog.SetOutput(&buf)
	t.Cleanup(func() { applog.SetOutput(&bytes.Buffer{}) })
	return &buf
}

func entries(t *testing.T, buf *bytes.Buffer) []logEntry {
	t.Helper()
	var out []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e logEntry
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		out = append(out, e)
	}
	return out
}

func find(list []logEntry, action string) (logEntry, bool) {
	for _, e := range list {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}

func TestAuthAndWritesAreLogged(t *testing.T) {
	h := newHarness(t)
	buf := captureLogs(t)

	h.register("laura")
	h.postForm("/login", url.Values{"login": {"laura"}, "password": {"incorrecta"}}, "")
	sid := cookie(h.postForm("/login", url.Values{"login": {"laura"}, "password": {testPassword}}, ""), "sid")
	require.NotEmpty(t, sid)
	h.postForm("/clients", clientForm("1234567"), sid)
	h.get("/clients", "")

	list := entries(t, buf)

	fail, ok := find(list, "auth.login.fail")
	require.True(t, ok)
	assert.Equal(t, "warn", fail.Level)

	login, ok := find(list, "auth.login.success")
	require.True(t, ok)
	assert.Equal(t, "audit", login.Level)
	assert.Equal(t, "laura", login.Fields["username"])
	assert.NotZero(t, login.AdminID)

	created, ok := find(list, "client.create")
	require.True(t, ok)
	assert.Equal(t, "audit", created.Level)
	assert.Equal(t, login.AdminID, created.AdminID)

	_, ok = find(list, "access.denied")
	assert.True(t, ok)

	for _, e := range list {
		assert.NotContains(t, e.Fields, "password")
	}
}
