package handlers

import (
	"tienda/internal/domain"
	"tienda/internal/forms"
	applog "tienda/internal/log"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	Reports *services.ReportService
	Admins  *services.AdminService
}

func (h *ReportHandler) page(c *fiber.Ctx, data fiber.Map) (fiber.Map, error) {
	reports, err := h.Reports.List(c.UserContext())
	if err != nil {
		return nil, err
	}
	admins, err := h.Admins.List(c.UserContext())
	if err != nil {
		return nil, err
	}
	data["Reports"], data["Admins"] = reports, admins
	if data["Form"] == nil {
		data["Form"] = map[string]string{}
	}
	return data, nil
}

// GET /reports lists reports above the filing form.
func (h *ReportHandler) List(c *fiber.Ctx) error {
	form := map[string]string{}
	if a := currentAdmin(c); a != nil {
		form["admin_id"] = itoa(a.ID)
	}
	data, err := h.page(c, fiber.Map{"Form": form})
	if err != nil {
		return pageFailed(c, "report.list", err)
	}
	return render(c, "reports", data)
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var in forms.ReportInput
	err := bind(c, &in)
	if err == nil {
		var r domain.Report
		if r, err = h.Reports.Create(c.UserContext(), in.Fields()); err == nil {
			applog.Audit(c, "report.create", map[string]any{"report_id": r.ID})
			return redirectWith(c, "/reports", "success", "Report filed.")
		}
	}
	data, lerr := h.page(c, fiber.Map{"Form": in.Fields()})
	if lerr != nil {
		return pageFailed(c, "report.create", lerr)
	}
	return formFailed(c, "report.create", err, "reports", data)
}

func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFoundPage(c, "Report not found")
	}
	err := h.Reports.Delete(c.UserContext(), id)
	return deleted(c, "report.delete", err, "/reports", map[string]any{"report_id": id})
}
