package handlers

import (
	"tienda/internal/domain"
	applog "tienda/internal/log"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// APIHandler serves the flattened lists the page scripts fill their
// dropdowns and tables from.
type APIHandler struct {
	Catalog     *services.CatalogService
	ProductSvc  *services.ProductService
	ClientSvc   *services.ClientService
	SupplierSvc *services.SupplierService
}

func (h *APIHandler) failed(c *fiber.Ctx, action string, err error) error {
	applog.Error(c, action+".fail", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load data"})
}

func (h *APIHandler) Brands(c *fiber.Ctx) error {
	rows, err := h.Catalog.ListBrands(c.UserContext())
	if err != nil {
		return h.failed(c, "api.brands", err)
	}
	out := make([]fiber.Map, len(rows))
	for i, b := range rows {
		out[i] = fiber.Map{"id": b.ID, "name": b.Name}
	}
	return c.JSON(out)
}

func (h *APIHandler) Types(c *fiber.Ctx) error {
	rows, err := h.Catalog.ListTypes(c.UserContext())
	if err != nil {
		return h.failed(c, "api.types", err)
	}
	out := make([]fiber.Map, len(rows))
	for i, t := range rows {
		out[i] = fiber.Map{"id": t.ID, "name": t.Name, "description": t.Description}
	}
	return c.JSON(out)
}

func (h *APIHandler) Units(c *fiber.Ctx) error {
	rows, err := h.Catalog.ListUnits(c.UserContext())
	if err != nil {
		return h.failed(c, "api.units", err)
	}
	out := make([]fiber.Map, len(rows))
	for i, u := range rows {
		out[i] = fiber.Map{"id": u.ID, "name": u.Name, "abbreviation": u.Abbreviation}
	}
	return c.JSON(out)
}

type productJSON struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock"`
	Brand  string          `json:"brand"`
	Type   string          `json:"type"`
	Unit   string          `json:"unit"`
	Status string          `json:"status"`
}

// Products honours the same ?q= filter as the products page.
func (h *APIHandler) Products(c *fiber.Ctx) error {
	rows, err := h.ProductSvc.List(c.UserContext(), c.Query("q"))
	if err != nil {
		return h.failed(c, "api.products", err)
	}
	out := make([]productJSON, len(rows))
	for i, p := range rows {
		out[i] = productJSON{
			ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock,
			Brand: p.Brand, Type: p.Type, Unit: p.Unit,
			Status: domain.AvailabilityFor(p.Stock).Status,
		}
	}
	return c.JSON(out)
}

func (h *APIHandler) Clients(c *fiber.Ctx) error {
	rows, err := h.ClientSvc.List(c.UserContext())
	if err != nil {
		return h.failed(c, "api.clients", err)
	}
	out := make([]fiber.Map, len(rows))
	for i, cl := range rows {
		out[i] = fiber.Map{
			"id": cl.ID, "name": cl.Name, "document": cl.Document, "phone": cl.Phone,
			"email": cl.Email, "address": cl.Address, "status": cl.Status,
		}
	}
	return c.JSON(out)
}

func (h *APIHandler) Suppliers(c *fiber.Ctx) error {
	rows, err := h.SupplierSvc.List(c.UserContext())
	if err != nil {
		return h.failed(c, "api.suppliers", err)
	}
	out := make([]fiber.Map, len(rows))
	for i, s := range rows {
		out[i] = fiber.Map{"id": s.ID, "name": s.Name, "phone": s.Phone, "email": s.Email, "ships": s.Ships}
	}
	return c.JSON(out)
}
