package handlers

import "github.com/gofiber/fiber/v2"

// Routes mounts every page and endpoint. loginLimit, when not nil, guards
// POST /login.
func Routes(app fiber.Router, d *Deps, loginLimit fiber.Handler) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	login := []fiber.Handler{d.AuthHandler.Login}
	if loginLimit != nil {
		login = append([]fiber.Handler{loginLimit}, login...)
	}
	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", login...)
	app.Post("/logout", d.AuthHandler.Logout)

	// open until the first administrator exists
	app.Get("/admins/register", d.AdminHandler.RegisterForm)
	app.Post("/admins/register", d.AdminHandler.Register)

	api := app.Group("/api", RequireAdminAPI())
	api.Get("/brands", d.APIHandler.Brands)
	api.Get("/types", d.APIHandler.Types)
	api.Get("/units", d.APIHandler.Units)
	api.Get("/products", d.APIHandler.Products)
	api.Get("/products/:id/availability", d.ProductHandler.Availability)
	api.Get("/clients", d.APIHandler.Clients)
	api.Get("/suppliers", d.APIHandler.Suppliers)
	for _, k := range []struct {
		path string
		kind CatalogKind
	}{{"/brands", Brands}, {"/types", Types}, {"/units", Units}} {
		api.Post(k.path, d.CatalogHandler.QuickCreate(k.kind))
		api.Post(k.path+"/:id/delete", d.CatalogHandler.QuickDelete(k.kind))
	}

	m := app.Group("", RequireAdmin())
	m.Get("/", d.AdminHandler.Dashboard)
	m.Get("/admins", d.AdminHandler.List)

	m.Get("/clients", d.ClientHandler.List)
	m.Get("/clients/new", d.ClientHandler.New)
	m.Post("/clients", d.ClientHandler.Create)
	m.Get("/clients/:id/edit", d.ClientHandler.Edit)
	m.Post("/clients/:id", d.ClientHandler.Update)
	m.Post("/clients/:id/delete", d.ClientHandler.Delete)

	for _, k := range []CatalogKind{Brands, Types, Units} {
		m.Get(k.Path, d.CatalogHandler.List(k))
		m.Post(k.Path, d.CatalogHandler.Create(k))
		m.Get(k.Path+"/:id/edit", d.CatalogHandler.Edit(k))
		m.Post(k.Path+"/:id", d.CatalogHandler.Update(k))
		m.Post(k.Path+"/:id/delete", d.CatalogHandler.Delete(k))
	}

	m.Get("/products", d.ProductHandler.List)
	m.Get("/products/new", d.ProductHandler.New)
	m.Post("/products", d.ProductHandler.Create)
	m.Get("/products/:id/edit", d.ProductHandler.Edit)
	m.Post("/products/:id", d.ProductHandler.Update)
	m.Post("/products/:id/delete", d.ProductHandler.Delete)

	m.Get("/suppliers", d.SupplierHandler.List)
	m.Get("/suppliers/new", d.SupplierHandler.New)
	m.Post("/suppliers", d.SupplierHandler.Create)
	m.Get("/suppliers/:id/edit", d.SupplierHandler.Edit)
	m.Post("/suppliers/:id", d.SupplierHandler.Update)
	m.Post("/suppliers/:id/delete", d.SupplierHandler.Delete)

	m.Get("/sales", d.SaleHandler.Page)
	m.Post("/sales", d.SaleHandler.Create)
	m.Get("/sales/stats", d.SaleHandler.Stats)
	m.Get("/sales/:id/receipt.pdf", d.SaleHandler.Receipt)
	m.Get("/sales/:id", d.SaleHandler.Detail)
	m.Post("/sales/:id", d.SaleHandler.Update)
	m.Post("/sales/:id/complete", d.SaleHandler.Complete)
	m.Post("/sales/:id/delete", d.SaleHandler.Delete)

	m.Get("/purchases", d.PurchaseHandler.List)
	m.Get("/purchases/new", d.PurchaseHandler.New)
	m.Post("/purchases", d.PurchaseHandler.Create)
	m.Get("/purchases/:id/edit", d.PurchaseHandler.Edit)
	m.Post("/purchases/:id", d.PurchaseHandler.Update)
	m.Post("/purchases/:id/delete", d.PurchaseHandler.Delete)

	m.Get("/orders", d.OrderHandler.List)
	m.Get("/orders/new", d.OrderHandler.New)
	m.Post("/orders", d.OrderHandler.Create)
	m.Post("/orders/:id/status", d.OrderHandler.UpdateStatus)
	m.Post("/orders/:id/delete", d.OrderHandler.Delete)

	m.Get("/reports", d.ReportHandler.List)
	m.Post("/reports", d.ReportHandler.Create)
	m.Post("/reports/:id/delete", d.ReportHandler.Delete)
}
