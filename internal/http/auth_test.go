package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda/internal/http/handlers"
)

func TestLoginSuccessFailAndThrottle(t *testing.T) {
	h := newHarness(t)
	h.register("laura")

	bad := h.postForm("/login", url.Values{"login": {"laura"}, "password": {"incorrecta"}}, "")
	assert.Equal(t, http.StatusUnauthorized, bad.StatusCode)
	assert.Contains(t, body(t, bad), "Invalid username or password")
	assert.Empty(t, cookie(bad, "sid"))

	// email works as the login too, in any case
	good := h.postForm("/login", url.Values{"login": {"LAURA@tienda.co"}, "password": {testPassword}}, "")
	assert.Equal(t, http.StatusFound, good.StatusCode)
	assert.Equal(t, "/", good.Header.Get("Location"))
	sid := cookie(good, "sid")
	require.NotEmpty(t, sid)

	for i := 2; i < handlers.LoginAttempts; i++ {
		again := h.postForm("/login", url.Values{"login": {"laura"}, "password": {"incorrecta"}}, "")
		assert.Equal(t, http.StatusUnauthorized, again.StatusCode)
	}

	throttled := h.postForm("/login", url.Values{"login": {"laura"}, "password": {testPassword}}, "")
	assert.Equal(t, http.StatusTooManyRequests, throttled.StatusCode)

	home := h.get("/", sid)
	assert.Equal(t, http.StatusOK, home.StatusCode)
	assert.Contains(t, body(t, home), "Laura Gómez")
}

func TestEachSignInIssuesFreshSession(t *testing.T) {
	h := newHarness(t)
	h.register("laura")
	creds := url.Values{"login": {"laura"}, "password": {testPassword}}

	first := cookie(h.postForm("/login", creds, ""), "sid")
	second := cookie(h.postForm("/login", creds, first), "sid")
	require.NotEmpty(t, first)
	require.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}

func TestAnonymousVisitorsAreSentToLogin(t *testing.T) {
	h := newHarness(t)

	for _, path := range []string{"/", "/clients", "/sales", "/reports"} {
		resp := h.get(path, "")
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}

	api := h.get("/api/brands", "")
	assert.Equal(t, http.StatusUnauthorized, api.StatusCode)
	assert.Equal(t, false, decode(t, api)["ok"])

	forged := h.get("/clients", "not-a-session")
	assert.Equal(t, http.StatusFound, forged.StatusCode)
}

func TestLogoutEndsSession(t *testing.T) {
	h := newHarness(t)
	sid := h.signIn()

	out := h.postForm("/logout", url.Values{}, sid)
	assert.Equal(t, http.StatusFound, out.StatusCode)
	assert.Equal(t, "/login", out.Header.Get("Location"))

	after := h.get("/clients", sid)
	assert.Equal(t, http.StatusFound, after.StatusCode)
	assert.Equal(t, "/login", after.Header.Get("Location"))
}

func TestRegistrationClosesAfterFirstAdministrator(t *testing.T) {
	h := newHarness(t)

	form := h.get("/admins/register", "")
	assert.Equal(t, http.StatusOK, form.StatusCode)

	mismatch := h.postForm("/admins/register", url.Values{
		"name": {"Laura Gómez"}, "username": {"laura"}, "email": {"laura@tienda.co"},
		"password": {testPassword}, "password_confirm": {"otra"},
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, mismatch.StatusCode)
	page := body(t, mismatch)
	assert.Contains(t, page, "Passwords do not match.")
	assert.NotContains(t, page, testPassword)

	ok := h.postForm("/admins/register", url.Values{
		"name": {"Laura Gómez"}, "username": {"laura"}, "email": {"laura@tienda.co"},
		"password": {testPassword}, "password_confirm": {testPassword},
	}, "")
	assert.Equal(t, http.StatusFound, ok.StatusCode)
	assert.Equal(t, "/login", ok.Header.Get("Location"))

	closed := h.get("/admins/register", "")
	assert.Equal(t, http.StatusFound, closed.StatusCode)
	assert.Equal(t, "/login", closed.Header.Get("Location"))
}
