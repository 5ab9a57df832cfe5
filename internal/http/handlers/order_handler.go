package handlers

import (
	"errors"

	"tienda/internal/domain"
	"tienda/internal/forms"
	applog "tienda/internal/log"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders  *services.OrderService
	Admins  *services.AdminService
	Clients *services.ClientService
}

func (h *OrderHandler) formData(c *fiber.Ctx, data fiber.Map) (fiber.Map, error) {
	admins, err := h.Admins.List(c.UserContext())
	if err != nil {
		return nil, err
	}
	clients, err := h.Clients.List(c.UserContext())
	if err != nil {
		return nil, err
	}
	data["Admins"], data["Clients"], data["Statuses"] = admins, clients, domain.OrderStatuses
	if data["Form"] == nil {
		data["Form"] = map[string]string{"status": domain.OrderPending}
	}
	return data, nil
}

// GET /orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	ords, err := h.Orders.List(c.UserContext())
	if err != nil {
		return pageFailed(c, "order.list", err)
	}
	return render(c, "orders", fiber.Map{"Orders": ords, "Statuses": domain.OrderStatuses})
}

func (h *OrderHandler) New(c *fiber.Ctx) error {
	data, err := h.formData(c, fiber.Map{})
	if err != nil {
		return pageFailed(c, "order.new", err)
	}
	return render(c, "order_form", data)
}

// POST /orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in forms.OrderInput
	err := bind(c, &in)
	if err == nil {
		var o domain.Order
		if o, err = h.Orders.Create(c.UserContext(), in.Fields(), actingID(c)); err == nil {
			applog.Audit(c, "order.create", map[string]any{"order_id": o.ID, "client_id": o.ClientID, "total": o.Total.String()})
			return redirectWith(c, "/orders", "success", "Order recorded.")
		}
	}
	data, lerr := h.formData(c, fiber.Map{"Form": in.Fields()})
	if lerr != nil {
		return pageFailed(c, "order.create", lerr)
	}
	return formFailed(c, "order.create", err, "order_form", data)
}

// POST /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFoundPage(c, "Order not found")
	}
	status := c.FormValue("status")
	err := h.Orders.UpdateStatus(c.UserContext(), id, map[string]string{"status": status})
	var ve *domain.ValidationError
	switch {
	case err == nil:
		applog.Audit(c, "order.status", map[string]any{"order_id": id, "status": status})
		return redirectWith(c, "/orders", "success", "Order status updated.")
	case errors.As(err, &ve):
		applog.Security(c, "validation.fail", map[string]any{"field": "status"})
		return redirectWith(c, "/orders", "error", ve.Fields.First("status"))
	default:
		return pageFailed(c, "order.status", err)
	}
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFoundPage(c, "Order not found")
	}
	err := h.Orders.Delete(c.UserContext(), id)
	return deleted(c, "order.delete", err, "/orders", map[string]any{"order_id": id})
}
