package handlers

import (
	"tienda/internal/forms"
	applog "tienda/internal/log"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Admins   *services.AdminService
	Clients  *services.ClientService
	Products *services.ProductService
	Sales    *services.SaleService
	Orders   *services.OrderService
}

// GET /
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()
	stats, err := h.Sales.Stats(ctx)
	if err != nil {
		return pageFailed(c, "dashboard.stats", err)
	}
	clients, err := h.Clients.List(ctx)
	if err != nil {
		return pageFailed(c, "dashboard.clients", err)
	}
	products, err := h.Products.List(ctx, "")
	if err != nil {
		return pageFailed(c, "dashboard.products", err)
	}
	orders, err := h.Orders.List(ctx)
	if err != nil {
		return pageFailed(c, "dashboard.orders", err)
	}
	if len(orders) > 10 {
		orders = orders[:10]
	}
	return render(c, "home", fiber.Map{
		"Stats": stats, "ClientCount": len(clients), "ProductCount": len(products), "Orders": orders,
	})
}

// GET /admins
func (h *AdminHandler) List(c *fiber.Ctx) error {
	admins, err := h.Admins.List(c.UserContext())
	if err != nil {
		return pageFailed(c, "admin.list", err)
	}
	return render(c, "admins", fiber.Map{"Admins": admins})
}

// registrationOpen lets anyone register the first administrator; after
// that only a signed-in administrator can add more.
func (h *AdminHandler) registrationOpen(c *fiber.Ctx) (bool, error) {
	if currentAdmin(c) != nil {
		return true, nil
	}
	n, err := h.Admins.Admins.Count(c.UserContext())
	return n == 0, err
}

// GET /admins/register
func (h *AdminHandler) RegisterForm(c *fiber.Ctx) error {
	open, err := h.registrationOpen(c)
	if err != nil {
		return pageFailed(c, "admin.register", err)
	}
	if !open {
		return c.Redirect("/login")
	}
	return render(c, "admin_register", fiber.Map{"Form": map[string]string{}})
}

// POST /admins/register
func (h *AdminHandler) Register(c *fiber.Ctx) error {
	open, err := h.registrationOpen(c)
	if err != nil {
		return pageFailed(c, "admin.register", err)
	}
	if !open {
		applog.Security(c, "admin.register.denied", nil)
		return c.Redirect("/login")
	}

	var in forms.AdminInput
	form := fiber.Map{}
	if err := bind(c, &in); err != nil {
		return formFailed(c, "admin.register", err, "admin_register", form)
	}
	fields := in.Fields()
	delete(fields, "password")
	delete(fields, "password_confirm")
	form["Form"] = fields

	a, err := h.Admins.Register(c.UserContext(), in.Fields())
	if err != nil {
		applog.Security(c, "admin.register.fail", map[string]any{"username": in.Username})
		return formFailed(c, "admin.register", err, "admin_register", form)
	}
	applog.Audit(c, "admin.register", map[string]any{"admin_id": a.ID, "username": a.Username})
	if currentAdmin(c) == nil {
		return redirectWith(c, "/login", "success", "Administrator registered. You can sign in now.")
	}
	return redirectWith(c, "/admins", "success", "Administrator registered.")
}
