package handlers

import (
	"fmt"
	"strconv"

	"tienda/internal/domain"
	"tienda/internal/forms"
	applog "tienda/internal/log"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	Purchases *services.PurchaseService
	Admins    *services.AdminService
	Suppliers *services.SupplierService
	Products  *services.ProductService
}

func purchaseForm(p domain.Purchase) map[string]string {
	active := ""
	if p.Active {
		active = "on"
	}
	return map[string]string{
		"admin_id":     strconv.FormatInt(p.AdminID, 10),
		"supplier_id":  strconv.FormatInt(p.SupplierID, 10),
		"product_id":   strconv.FormatInt(p.ProductID, 10),
		"purchased_at": p.PurchasedAt.Format("2006-01-02"),
		"total":        p.Total.String(),
		"active":       active,
	}
}

func (h *PurchaseHandler) formData(c *fiber.Ctx, data fiber.Map) (fiber.Map, error) {
	ctx := c.UserContext()
	admins, err := h.Admins.List(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := h.Suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := h.Products.List(ctx, "")
	if err != nil {
		return nil, err
	}
	data["Admins"], data["Suppliers"], data["Products"] = admins, suppliers, products
	if data["Form"] == nil {
		data["Form"] = map[string]string{}
	}
	return data, nil
}

func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	rows, err := h.Purchases.List(c.UserContext())
	if err != nil {
		return pageFailed(c, "purchase.list", err)
	}
	return render(c, "purchases", fiber.Map{"Purchases": rows})
}

func (h *PurchaseHandler) New(c *fiber.Ctx) error {
	data, err := h.formData(c, fiber.Map{
		"Title": "New purchase", "Action": "/purchases", "Form": map[string]string{"active": "on"},
	})
	if err != nil {
		return pageFailed(c, "purchase.new", err)
	}
	return render(c, "purchase_form", data)
}

func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in forms.PurchaseInput
	err := bind(c, &in)
	if err == nil {
		var p domain.Purchase
		if p, err = h.Purchases.Create(c.UserContext(), in.Fields(), actingID(c)); err == nil {
			applog.Audit(c, "purchase.create", map[string]any{"purchase_id": p.ID, "by": p.AdminID, "total": p.Total.String()})
			return redirectWith(c, "/purchases", "success", "Purchase recorded.")
		}
	}
	data, lerr := h.formData(c, fiber.Map{"Title": "New purchase", "Action": "/purchases", "Form": in.Fields()})
	if lerr != nil {
		return pageFailed(c, "purchase.create", lerr)
	}
	return formFailed(c, "purchase.create", err, "purchase_form", data)
}

func (h *PurchaseHandler) Edit(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFoundPage(c, "Purchase not found")
	}
	p, err := h.Purchases.Get(c.UserContext(), id)
	if err != nil {
		return pageFailed(c, "purchase.edit", err)
	}
	data, err := h.formData(c, fiber.Map{
		"Title": "Edit purchase", "Action": fmt.Sprintf("/purchases/%d", id), "Form": purchaseForm(p.Purchase),
	})
	if err != nil {
		return pageFailed(c, "purchase.edit", err)
	}
	return render(c, "purchase_form", data)
}

func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFoundPage(c, "Purchase not found")
	}
	var in forms.PurchaseInput
	err := bind(c, &in)
	if err == nil {
		if _, err = h.Purchases.Update(c.UserContext(), id, in.Fields(), actingID(c)); err == nil {
			applog.Audit(c, "purchase.update", map[string]any{"purchase_id": id})
			return redirectWith(c, "/purchases", "success", "Purchase updated.")
		}
	}
	data, lerr := h.formData(c, fiber.Map{"Title": "Edit purchase", "Action": fmt.Sprintf("/purchases/%d", id), "Form": in.Fields()})
	if lerr != nil {
		return pageFailed(c, "purchase.update", lerr)
	}
	return formFailed(c, "purchase.update", err, "purchase_form", data)
}

func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFoundPage(c, "Purchase not found")
	}
	err := h.Purchases.Delete(c.UserContext(), id)
	return deleted(c, "purchase.delete", err, "/purchases", map[string]any{"purchase_id": id})
}
