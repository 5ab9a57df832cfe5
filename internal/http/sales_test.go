package handlers_test

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleJSONFlow(t *testing.T) {
	h := newHarness(t)
	sid := h.signIn()

	empty := h.postJSON("/sales", map[string]any{"client": "Ana", "items": []any{}}, sid)
	assert.Equal(t, http.StatusUnprocessableEntity, empty.StatusCode)
	failed := decode(t, empty)
	assert.Equal(t, false, failed["ok"])
	assert.Contains(t, failed["errors"], "items")

	resp := h.postJSON("/sales", map[string]any{
		"client": "Ana Gómez",
		"items": []map[string]any{
			{"name": "Leche entera", "quantity": 2, "price": 3500},
			{"name": "Pan", "quantity": "1", "price": "1200"},
		},
	}, sid)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode(t, resp)
	assert.Equal(t, true, created["ok"])
	saleID := int64(created["sale_id"].(float64))

	detail := decode(t, h.get(fmt.Sprintf("/sales/%d", saleID), sid))
	assert.Equal(t, "Ana Gómez", detail["client"])
	assert.Equal(t, "pending", detail["status"])
	assert.Equal(t, float64(8200), detail["total"])
	items := detail["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, float64(7000), items[0].(map[string]any)["subtotal"])

	stats := decode(t, h.get("/sales/stats", sid))
	assert.Equal(t, float64(8200), stats["today_total"])
	assert.Equal(t, float64(1), stats["sales_count"])

	done := h.postJSON(fmt.Sprintf("/sales/%d/complete", saleID), map[string]any{}, sid)
	assert.Equal(t, http.StatusOK, done.StatusCode)
	assert.Equal(t, "completed", decode(t, h.get(fmt.Sprintf("/sales/%d", saleID), sid))["status"])

	pdf := h.get(fmt.Sprintf("/sales/%d/receipt.pdf", saleID), sid)
	require.Equal(t, http.StatusOK, pdf.StatusCode)
	assert.Equal(t, "application/pdf", pdf.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix([]byte(body(t, pdf)), []byte("%PDF")))

	gone := h.postJSON(fmt.Sprintf("/sales/%d/delete", saleID), map[string]any{}, sid)
	assert.Equal(t, http.StatusOK, gone.StatusCode)
	assert.Equal(t, http.StatusNotFound, h.get(fmt.Sprintf("/sales/%d", saleID), sid).StatusCode)

	var lines int
	require.NoError(t, h.db.Get(&lines, `SELECT COUNT(*) FROM sale_items`))
	assert.Zero(t, lines)
}

func TestSaleLineErrorsAreKeyedByPosition(t *testing.T) {
	h := newHarness(t)
	sid := h.signIn()

	resp := h.postJSON("/sales", map[string]any{
		"client": "Ana",
		"items": []map[string]any{
			{"name": "Leche", "quantity": 1, "price": 3500},
			{"name": "Pan", "quantity": 0, "price": 1200},
		},
	}, sid)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	errs := decode(t, resp)["errors"].(map[string]any)
	assert.Contains(t, errs, "items.1.quantity")
	assert.NotContains(t, errs, "items.0.quantity")

	var n int
	require.NoError(t, h.db.Get(&n, `SELECT COUNT(*) FROM sales`))
	assert.Zero(t, n)
}
