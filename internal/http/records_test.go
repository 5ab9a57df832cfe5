package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientForm(doc string) url.Values {
	return url.Values{
		"name": {"Ana Gómez"}, "document": {doc}, "phone": {"3001234567"},
		"email": {"ana@correo.com"}, "address": {"Cra 1 # 2-3"},
	}
}

func TestClientFormRejectsThenAccepts(t *testing.T) {
	h := newHarness(t)
	sid := h.signIn()

	bad := clientForm("12ab")
	bad.Set("phone", "123")
	resp := h.postForm("/clients", bad, sid)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	page := body(t, resp)
	assert.Contains(t, page, "Please correct the highlighted fields.")
	assert.Contains(t, page, "Must have exactly 10 digits.")
	assert.Contains(t, page, `value="Ana Gómez"`)

	var n int
	require.NoError(t, h.db.Get(&n, `SELECT COUNT(*) FROM clients`))
	assert.Zero(t, n)

	ok := h.postForm("/clients", clientForm("1234567"), sid)
	assert.Equal(t, http.StatusFound, ok.StatusCode)
	assert.Equal(t, "/clients", ok.Header.Get("Location"))
	flash := cookie(ok, "flash")
	assert.Contains(t, flash, "success")

	dup := h.postForm("/clients", clientForm("1234567"), sid)
	assert.Equal(t, http.StatusUnprocessableEntity, dup.StatusCode)
	assert.Contains(t, body(t, dup), "already registered")

	list := h.get("/clients", sid)
	assert.Equal(t, http.StatusOK, list.StatusCode)
	assert.Contains(t, body(t, list), "1234567")
}

func TestCatalogQuickCreateAndGuardedDelete(t *testing.T) {
	h := newHarness(t)
	sid := h.signIn()

	resp := h.postJSON("/api/brands", map[string]string{"name": "Alpina"}, sid)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decode(t, resp)
	assert.Equal(t, true, created["success"])
	assert.Equal(t, "Alpina", created["name"])
	brandID := int64(created["id"].(float64))

	dup := h.postJSON("/api/brands", map[string]string{"name": "  alpina "}, sid)
	assert.Equal(t, http.StatusUnprocessableEntity, dup.StatusCode)
	out := decode(t, dup)
	assert.Equal(t, false, out["success"])
	assert.NotEmpty(t, out["errors"])

	unit := decode(t, h.postJSON("/api/units", map[string]string{"name": "Caja"}, sid))
	assert.Equal(t, true, unit["success"])

	ctx := context.Background()
	typ, err := h.deps.CatalogHandler.Catalog.CreateType(ctx, map[string]string{"name": "Lácteos"})
	require.NoError(t, err)
	_, err = h.deps.ProductHandler.Products.Create(ctx, map[string]string{
		"name": "Leche entera", "price": "3500", "stock": "3",
		"brand_id": fmt.Sprint(brandID), "type_id": fmt.Sprint(typ.ID), "unit_id": fmt.Sprint(int64(unit["id"].(float64))),
	})
	require.NoError(t, err)

	blocked := h.postJSON(fmt.Sprintf("/api/brands/%d/delete", brandID), map[string]string{}, sid)
	assert.Equal(t, http.StatusConflict, blocked.StatusCode)
	msg := decode(t, blocked)
	assert.Equal(t, false, msg["ok"])
	assert.Contains(t, msg["error"], "cannot be deleted")

	missing := h.postJSON("/api/brands/9999/delete", map[string]string{}, sid)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	page := h.postForm(fmt.Sprintf("/brands/%d/delete", brandID), url.Values{}, sid)
	assert.Equal(t, http.StatusFound, page.StatusCode)
	assert.Contains(t, cookie(page, "flash"), "error")
}

func TestProductListAndAvailability(t *testing.T) {
	h := newHarness(t)
	sid := h.signIn()
	ctx := context.Background()
	cat := h.deps.CatalogHandler.Catalog

	b, err := cat.CreateBrand(ctx, map[string]string{"name": "Alpina"})
	require.NoError(t, err)
	pt, err := cat.CreateType(ctx, map[string]string{"name": "Lácteos"})
	require.NoError(t, err)
	u, err := cat.CreateUnit(ctx, map[string]string{"name": "Bolsa"})
	require.NoError(t, err)

	form := url.Values{
		"name": {"Leche entera"}, "price": {"3500"}, "stock": {"2"},
		"brand_id": {fmt.Sprint(b.ID)}, "type_id": {fmt.Sprint(pt.ID)}, "unit_id": {fmt.Sprint(u.ID)},
	}
	created := h.postForm("/products", form, sid)
	require.Equal(t, http.StatusFound, created.StatusCode)

	form.Set("brand_id", "9999")
	form.Set("name", "Kumis")
	badRef := h.postForm("/products", form, sid)
	assert.Equal(t, http.StatusUnprocessableEntity, badRef.StatusCode)
	assert.Contains(t, body(t, badRef), "does not exist")

	list := h.get("/products?q=leche", sid)
	assert.Equal(t, http.StatusOK, list.StatusCode)
	assert.Contains(t, body(t, list), "Leche entera")

	products := h.get("/api/products", sid)
	require.Equal(t, http.StatusOK, products.StatusCode)

	var id int64
	require.NoError(t, h.db.Get(&id, `SELECT id FROM products WHERE name='Leche entera'`))
	av := decode(t, h.get(fmt.Sprintf("/api/products/%d/availability", id), sid))
	assert.Equal(t, "LOW_STOCK", av["status"])
	assert.Equal(t, float64(2), av["qty"])

	missing := h.get("/api/products/9999/availability", sid)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestOrderStatusUpdate(t *testing.T) {
	h := newHarness(t)
	sid := h.signIn()

	require.Equal(t, http.StatusFound, h.postForm("/clients", clientForm("1234567"), sid).StatusCode)
	var clientID int64
	require.NoError(t, h.db.Get(&clientID, `SELECT id FROM clients`))

	resp := h.postForm("/orders", url.Values{
		"client_id": {fmt.Sprint(clientID)}, "total": {"45000"}, "ordered_at": {"2026-10-01"},
	}, sid)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var orderID int64
	var adminID int64
	require.NoError(t, h.db.QueryRow(`SELECT id, admin_id FROM orders`).Scan(&orderID, &adminID))
	assert.NotZero(t, adminID)

	bad := h.postForm(fmt.Sprintf("/orders/%d/status", orderID), url.Values{"status": {"lost"}}, sid)
	assert.Equal(t, http.StatusFound, bad.StatusCode)
	assert.Contains(t, cookie(bad, "flash"), "error")

	ok := h.postForm(fmt.Sprintf("/orders/%d/status", orderID), url.Values{"status": {"shipped"}}, sid)
	assert.Equal(t, http.StatusFound, ok.StatusCode)
	var status string
	require.NoError(t, h.db.Get(&status, `SELECT status FROM orders WHERE id=?`, orderID))
	assert.Equal(t, "shipped", status)

	list := h.get("/orders", sid)
	assert.Equal(t, http.StatusOK, list.StatusCode)
	assert.Contains(t, body(t, list), "Ana Gómez")
}
