package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"tienda/internal/domain"
	"tienda/internal/forms"
	applog "tienda/internal/log"
	"tienda/internal/services"
	"tienda/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Products *services.ProductService
	Catalog  *services.CatalogService
}

func productForm(p domain.Product) map[string]string {
	return map[string]string{
		"name":     p.Name,
		"price":    p.Price.String(),
		"stock":    strconv.Itoa(p.Stock),
		"brand_id": strconv.FormatInt(p.BrandID, 10),
		"type_id":  strconv.FormatInt(p.TypeID, 10),
		"unit_id":  strconv.FormatInt(p.UnitID, 10),
	}
}

// formData loads the dropdown options the product form needs.
func (h *ProductHandler) formData(c *fiber.Ctx, data fiber.Map) (fiber.Map, error) {
	ctx := c.UserContext()
	brands, err := h.Catalog.ListBrands(ctx)
	if err != nil {
		return nil, err
	}
	types, err := h.Catalog.ListTypes(ctx)
	if err != nil {
		return nil, err
	}
	units, err := h.Catalog.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	data["Brands"], data["Types"], data["Units"] = brands, types, units
	if data["Form"] == nil {
		data["Form"] = map[string]string{}
	}
	return data, nil
}

// GET /products?q=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	raw := c.Query("q")
	q := ""
	if strings.TrimSpace(raw) != "" {
		var ok bool
		if q, ok = validate.Q(raw); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q"})
			c.Status(fiber.StatusBadRequest)
			return render(c, "products", fiber.Map{"Q": "", "Products": []domain.ProductRow{}, "Err": "Enter a valid keyword (letters and numbers only)."})
		}
	}
	products, err := h.Products.List(c.UserContext(), q)
	if err != nil {
		return pageFailed(c, "product.list", err)
	}
	return render(c, "products", fiber.Map{"Q": q, "Products": products, "Count": len(products)})
}

func (h *ProductHandler) New(c *fiber.Ctx) error {
	data, err := h.formData(c, fiber.Map{"Title": "New product", "Action": "/products"})
	if err != nil {
		return pageFailed(c, "product.new", err)
	}
	return render(c, "product_form", data)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in forms.ProductInput
	err := bind(c, &in)
	if err == nil {
		var p domain.Product
		if p, err = h.Products.Create(c.UserContext(), in.Fields()); err == nil {
			applog.Audit(c, "product.create", map[string]any{"product_id": p.ID, "name": p.Name})
			return redirectWith(c, "/products", "success", fmt.Sprintf("%q saved.", p.Name))
		}
	}
	data, lerr := h.formData(c, fiber.Map{"Title": "New product", "Action": "/products", "Form": in.Fields()})
	if lerr != nil {
		return pageFailed(c, "product.create", lerr)
	}
	return formFailed(c, "product.create", err, "product_form", data)
}

func (h *ProductHandler) Edit(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFoundPage(c, "This product is no longer available")
	}
	p, err := h.Products.Get(c.UserContext(), id)
	if err != nil {
		return pageFailed(c, "product.edit", err)
	}
	data, err := h.formData(c, fiber.Map{
		"Title": "Edit product", "Action": fmt.Sprintf("/products/%d", id), "Form": productForm(p.Product),
	})
	if err != nil {
		return pageFailed(c, "product.edit", err)
	}
	return render(c, "product_form", data)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFoundPage(c, "This product is no longer available")
	}
	var in forms.ProductInput
	err := bind(c, &in)
	if err == nil {
		if _, err = h.Products.Update(c.UserContext(), id, in.Fields()); err == nil {
			applog.Audit(c, "product.update", map[string]any{"product_id": id})
			return redirectWith(c, "/products", "success", "Product updated.")
		}
	}
	data, lerr := h.formData(c, fiber.Map{"Title": "Edit product", "Action": fmt.Sprintf("/products/%d", id), "Form": in.Fields()})
	if lerr != nil {
		return pageFailed(c, "product.update", lerr)
	}
	return formFailed(c, "product.update", err, "product_form", data)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFoundPage(c, "This product is no longer available")
	}
	err := h.Products.Delete(c.UserContext(), id)
	return deleted(c, "product.delete", err, "/products", map[string]any{"product_id": id})
}

// GET /api/products/:id/availability
func (h *ProductHandler) Availability(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	a, err := h.Products.Availability(c.UserContext(), id)
	if domain.IsNotFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err != nil {
		applog.Error(c, "product.availability.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not check availability"})
	}
	return c.JSON(a)
}
