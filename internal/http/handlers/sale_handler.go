package handlers

import (
	"fmt"

	"tienda/internal/domain"
	"tienda/internal/format"
	"tienda/internal/forms"
	applog "tienda/internal/log"
	"tienda/internal/receipt"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type SaleHandler struct {
	Sales *services.SaleService
	Shop  string
}

type saleLineView struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type saleView struct {
	ID     int64           `json:"id"`
	Date   string          `json:"date"`
	Client string          `json:"client"`
	Status string          `json:"status"`
	Total  decimal.Decimal `json:"total"`
	Items  []saleLineView  `json:"items"`
}

func newSaleView(s domain.Sale, items []domain.SaleItem) saleView {
	v := saleView{
		ID: s.ID, Date: format.DateTime(s.CreatedAt), Client: s.ClientName,
		Status: s.Status, Total: s.Total, Items: make([]saleLineView, len(items)),
	}
	for i, it := range items {
		v.Items[i] = saleLineView{Name: it.ProductName, Quantity: it.Quantity, Price: it.Price, Subtotal: it.Subtotal()}
	}
	return v
}

// auditTotal records sales whose stored total differs from their lines.
func auditTotal(c *fiber.Ctx, s domain.Sale, items []domain.SaleItem) {
	if sum := domain.ItemsTotal(items); !sum.Equal(s.Total) {
		applog.Audit(c, "sale.total.mismatch", map[string]any{
			"sale_id": s.ID, "total": s.Total.String(), "items_total": sum.String(),
		})
	}
}

// GET /sales
func (h *SaleHandler) Page(c *fiber.Ctx) error {
	sales, err := h.Sales.List(c.UserContext())
	if err != nil {
		return pageFailed(c, "sale.list", err)
	}
	return render(c, "sales", fiber.Map{"Sales": sales})
}

// POST /sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in forms.SaleInput
	if err := bind(c, &in); err != nil {
		return jsonFailed(c, "sale.create", err)
	}
	sale, items, err := h.Sales.Create(c.UserContext(), in.Fields(), in.Lines())
	if err != nil {
		return jsonFailed(c, "sale.create", err)
	}
	applog.Audit(c, "sale.create", map[string]any{"sale_id": sale.ID, "items": len(items), "total": sale.Total.String()})
	auditTotal(c, sale, items)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "sale_id": sale.ID})
}

// GET /sales/:id
func (h *SaleHandler) Detail(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"ok": false, "error": "Not found."})
	}
	sale, items, err := h.Sales.Detail(c.UserContext(), id)
	if err != nil {
		return jsonFailed(c, "sale.detail", err)
	}
	return c.JSON(newSaleView(sale, items))
}

// POST /sales/:id
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"ok": false, "error": "Not found."})
	}
	var in forms.SaleInput
	if err := bind(c, &in); err != nil {
		return jsonFailed(c, "sale.update", err)
	}
	sale, items, err := h.Sales.Update(c.UserContext(), id, in.Fields(), in.Lines())
	if err != nil {
		return jsonFailed(c, "sale.update", err)
	}
	applog.Audit(c, "sale.update", map[string]any{"sale_id": id, "items": len(items)})
	auditTotal(c, sale, items)
	return c.JSON(fiber.Map{"ok": true, "sale_id": id})
}

// POST /sales/:id/complete
func (h *SaleHandler) Complete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"ok": false, "error": "Not found."})
	}
	if err := h.Sales.Complete(c.UserContext(), id); err != nil {
		return jsonFailed(c, "sale.complete", err)
	}
	applog.Audit(c, "sale.complete", map[string]any{"sale_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// POST /sales/:id/delete
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"ok": false, "error": "Not found."})
	}
	if err := h.Sales.Delete(c.UserContext(), id); err != nil {
		return jsonFailed(c, "sale.delete", err)
	}
	applog.Audit(c, "sale.delete", map[string]any{"sale_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// GET /sales/stats
func (h *SaleHandler) Stats(c *fiber.Ctx) error {
	st, err := h.Sales.Stats(c.UserContext())
	if err != nil {
		return jsonFailed(c, "sale.stats", err)
	}
	return c.JSON(st)
}

// GET /sales/:id/receipt.pdf
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFoundPage(c, "Sale not found")
	}
	sale, items, err := h.Sales.Detail(c.UserContext(), id)
	if err != nil {
		return pageFailed(c, "sale.receipt", err)
	}
	pdf, err := receipt.Render(h.Shop, sale, items)
	if err != nil {
		return pageFailed(c, "sale.receipt", err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="sale-%d.pdf"`, id))
	return c.Send(pdf)
}
