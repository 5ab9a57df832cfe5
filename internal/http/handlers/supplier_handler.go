package handlers

import (
	"fmt"

	"tienda/internal/domain"
	"tienda/internal/forms"
	applog "tienda/internal/log"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
)

type SupplierHandler struct {
	Suppliers *services.SupplierService
}

func supplierForm(s domain.Supplier) map[string]string {
	ships := ""
	if s.Ships {
		ships = "on"
	}
	return map[string]string{"name": s.Name, "phone": s.Phone, "email": s.Email, "ships": ships}
}

func (h *SupplierHandler) List(c *fiber.Ctx) error {
	rows, err := h.Suppliers.List(c.UserContext())
	if err != nil {
		return pageFailed(c, "supplier.list", err)
	}
	return render(c, "suppliers", fiber.Map{"Suppliers": rows})
}

func (h *SupplierHandler) New(c *fiber.Ctx) error {
	return render(c, "supplier_form", fiber.Map{"Title": "New supplier", "Action": "/suppliers", "Form": map[string]string{}})
}

func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in forms.SupplierInput
	data := fiber.Map{"Title": "New supplier", "Action": "/suppliers"}
	err := bind(c, &in)
	data["Form"] = in.Fields()
	if err == nil {
		var s domain.Supplier
		if s, err = h.Suppliers.Create(c.UserContext(), in.Fields()); err == nil {
			applog.Audit(c, "supplier.create", map[string]any{"supplier_id": s.ID})
			return redirectWith(c, "/suppliers", "success", "Supplier registered.")
		}
	}
	return formFailed(c, "supplier.create", err, "supplier_form", data)
}

func (h *SupplierHandler) Edit(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFoundPage(c, "Supplier not found")
	}
	s, err := h.Suppliers.Get(c.UserContext(), id)
	if err != nil {
		return pageFailed(c, "supplier.edit", err)
	}
	return render(c, "supplier_form", fiber.Map{
		"Title": "Edit supplier", "Action": fmt.Sprintf("/suppliers/%d", id), "Form": supplierForm(s),
	})
}

func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFoundPage(c, "Supplier not found")
	}
	var in forms.SupplierInput
	data := fiber.Map{"Title": "Edit supplier", "Action": fmt.Sprintf("/suppliers/%d", id)}
	err := bind(c, &in)
	data["Form"] = in.Fields()
	if err == nil {
		if _, err = h.Suppliers.Update(c.UserContext(), id, in.Fields()); err == nil {
			applog.Audit(c, "supplier.update", map[string]any{"supplier_id": id})
			return redirectWith(c, "/suppliers", "success", "Supplier updated.")
		}
	}
	return formFailed(c, "supplier.update", err, "supplier_form", data)
}

func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFoundPage(c, "Supplier not found")
	}
	err := h.Suppliers.Delete(c.UserContext(), id)
	return deleted(c, "supplier.delete", err, "/suppliers", map[string]any{"supplier_id": id})
}
