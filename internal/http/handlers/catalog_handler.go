package handlers

import (
	"context"
	"errors"
	"fmt"

	"tienda/internal/domain"
	"tienda/internal/forms"
	applog "tienda/internal/log"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogKind describes one of the three lookup tables products point at.
type CatalogKind struct {
	Entity     domain.Entity
	Path       string
	Title      string
	Extra      string // second column, if any
	ExtraLabel string
}

var (
	Brands = CatalogKind{Entity: domain.EntityBrand, Path: "/brands", Title: "Brands"}
	Types  = CatalogKind{Entity: domain.EntityProductType, Path: "/types", Title: "Product types", Extra: "description", ExtraLabel: "Description"}
	Units  = CatalogKind{Entity: domain.EntityUnit, Path: "/units", Title: "Units of measure", Extra: "abbreviation", ExtraLabel: "Abbreviation"}
)

type catalogItem struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Extra string `json:"-"`
}

type CatalogHandler struct {
	Catalog *services.CatalogService
}

func (h *CatalogHandler) items(ctx context.Context, k CatalogKind) ([]catalogItem, error) {
	var out []catalogItem
	switch k.Entity {
	case domain.EntityBrand:
		rows, err := h.Catalog.ListBrands(ctx)
		if err != nil {
			return nil, err
		}
		for _, b := range rows {
			out = append(out, catalogItem{ID: b.ID, Name: b.Name})
		}
	case domain.EntityProductType:
		rows, err := h.Catalog.ListTypes(ctx)
		if err != nil {
			return nil, err
		}
		for _, t := range rows {
			out = append(out, catalogItem{ID: t.ID, Name: t.Name, Extra: t.Description})
		}
	case domain.EntityUnit:
		rows, err := h.Catalog.ListUnits(ctx)
		if err != nil {
			return nil, err
		}
		for _, u := range rows {
			out = append(out, catalogItem{ID: u.ID, Name: u.Name, Extra: u.Abbreviation})
		}
	}
	return out, nil
}

func (h *CatalogHandler) get(ctx context.Context, k CatalogKind, id int64) (catalogItem, error) {
	switch k.Entity {
	case domain.EntityBrand:
		b, err := h.Catalog.GetBrand(ctx, id)
		return catalogItem{ID: b.ID, Name: b.Name}, err
	case domain.EntityProductType:
		t, err := h.Catalog.GetType(ctx, id)
		return catalogItem{ID: t.ID, Name: t.Name, Extra: t.Description}, err
	default:
		u, err := h.Catalog.GetUnit(ctx, id)
		return catalogItem{ID: u.ID, Name: u.Name, Extra: u.Abbreviation}, err
	}
}

// fields binds the body into the input type of k.
func fields(c *fiber.Ctx, k CatalogKind) (map[string]string, error) {
	switch k.Entity {
	case domain.EntityBrand:
		var in forms.BrandInput
		err := bind(c, &in)
		return in.Fields(), err
	case domain.EntityProductType:
		var in forms.ProductTypeInput
		err := bind(c, &in)
		return in.Fields(), err
	default:
		var in forms.UnitInput
		err := bind(c, &in)
		return in.Fields(), err
	}
}

// save creates (id 0) or updates a row of k.
func (h *CatalogHandler) save(ctx context.Context, k CatalogKind, id int64, in map[string]string) (catalogItem, error) {
	switch k.Entity {
	case domain.EntityBrand:
		var b domain.Brand
		var err error
		if id == 0 {
			b, err = h.Catalog.CreateBrand(ctx, in)
		} else {
			b, err = h.Catalog.UpdateBrand(ctx, id, in)
		}
		return catalogItem{ID: b.ID, Name: b.Name}, err
	case domain.EntityProductType:
		var t domain.ProductType
		var err error
		if id == 0 {
			t, err = h.Catalog.CreateType(ctx, in)
		} else {
			t, err = h.Catalog.UpdateType(ctx, id, in)
		}
		return catalogItem{ID: t.ID, Name: t.Name, Extra: t.Description}, err
	default:
		var u domain.Unit
		var err error
		if id == 0 {
			u, err = h.Catalog.CreateUnit(ctx, in)
		} else {
			u, err = h.Catalog.UpdateUnit(ctx, id, in)
		}
		return catalogItem{ID: u.ID, Name: u.Name, Extra: u.Abbreviation}, err
	}
}

func (h *CatalogHandler) listPage(c *fiber.Ctx, k CatalogKind, data fiber.Map) (fiber.Map, error) {
	items, err := h.items(c.UserContext(), k)
	if err != nil {
		return nil, err
	}
	data["Kind"] = k
	data["Items"] = items
	if data["Form"] == nil {
		data["Form"] = map[string]string{}
	}
	return data, nil
}

// List renders the table of k with its create form.
func (h *CatalogHandler) List(k CatalogKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := h.listPage(c, k, fiber.Map{})
		if err != nil {
			return pageFailed(c, string(k.Entity)+".list", err)
		}
		return render(c, "catalog", data)
	}
}

func (h *CatalogHandler) Create(k CatalogKind) fiber.Handler {
	action := string(k.Entity) + ".create"
	return func(c *fiber.Ctx) error {
		in, err := fields(c, k)
		if err == nil {
			var item catalogItem
			item, err = h.save(c.UserContext(), k, 0, in)
			if err == nil {
				applog.Audit(c, action, map[string]any{"id": item.ID, "name": item.Name})
				return redirectWith(c, k.Path, "success", fmt.Sprintf("%q saved.", item.Name))
			}
		}
		data, lerr := h.listPage(c, k, fiber.Map{"Form": in})
		if lerr != nil {
			return pageFailed(c, action, lerr)
		}
		return formFailed(c, action, err, "catalog", data)
	}
}

func (h *CatalogHandler) Edit(k CatalogKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return notFoundPage(c, "Record not found")
		}
		it, err := h.get(c.UserContext(), k, id)
		if err != nil {
			return pageFailed(c, string(k.Entity)+".edit", err)
		}
		form := map[string]string{"name": it.Name}
		if k.Extra != "" {
			form[k.Extra] = it.Extra
		}
		return render(c, "catalog_form", fiber.Map{"Kind": k, "ID": id, "Form": form})
	}
}

func (h *CatalogHandler) Update(k CatalogKind) fiber.Handler {
	action := string(k.Entity) + ".update"
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return notFoundPage(c, "Record not found")
		}
		in, err := fields(c, k)
		if err == nil {
			_, err = h.save(c.UserContext(), k, id, in)
		}
		if err != nil {
			return formFailed(c, action, err, "catalog_form", fiber.Map{"Kind": k, "ID": id, "Form": in})
		}
		applog.Audit(c, action, map[string]any{"id": id})
		return redirectWith(c, k.Path, "success", "Changes saved.")
	}
}

func (h *CatalogHandler) Delete(k CatalogKind) fiber.Handler {
	action := string(k.Entity) + ".delete"
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return notFoundPage(c, "Record not found")
		}
		err := h.Catalog.Delete(c.UserContext(), k.Entity, id)
		return deleted(c, action, err, k.Path, map[string]any{"id": id})
	}
}

// QuickCreate is the JSON create used by the product form's dropdowns.
func (h *CatalogHandler) QuickCreate(k CatalogKind) fiber.Handler {
	action := string(k.Entity) + ".create"
	return func(c *fiber.Ctx) error {
		in, err := fields(c, k)
		var item catalogItem
		if err == nil {
			item, err = h.save(c.UserContext(), k, 0, in)
		}
		var ve *domain.ValidationError
		switch {
		case err == nil:
			applog.Audit(c, action, map[string]any{"id": item.ID, "name": item.Name})
			return c.JSON(fiber.Map{"success": true, "id": item.ID, "name": item.Name})
		case errors.As(err, &ve):
			applog.Info(c, action+".invalid", map[string]any{"fields": fieldNames(ve.Fields)})
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"success": false, "errors": ve.Fields.Flatten()})
		default:
			applog.Error(c, action+".fail", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false, "errors": []string{"Something went wrong. Please try again."},
			})
		}
	}
}

// QuickDelete answers {ok:true} or {ok:false,error} with 404/409.
func (h *CatalogHandler) QuickDelete(k CatalogKind) fiber.Handler {
	action := string(k.Entity) + ".delete"
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"ok": false, "error": "Not found."})
		}
		if err := h.Catalog.Delete(c.UserContext(), k.Entity, id); err != nil {
			return jsonFailed(c, action, err)
		}
		applog.Audit(c, action, map[string]any{"id": id})
		return c.JSON(fiber.Map{"ok": true})
	}
}
