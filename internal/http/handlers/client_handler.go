package handlers

import (
	"fmt"

	"tienda/internal/domain"
	"tienda/internal/forms"
	applog "tienda/internal/log"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	Clients *services.ClientService
}

func clientForm(cl domain.Client) map[string]string {
	return map[string]string{
		"name": cl.Name, "document": cl.Document, "phone": cl.Phone,
		"email": cl.Email, "address": cl.Address, "status": cl.Status,
	}
}

func (h *ClientHandler) List(c *fiber.Ctx) error {
	clients, err := h.Clients.List(c.UserContext())
	if err != nil {
		return pageFailed(c, "client.list", err)
	}
	return render(c, "clients", fiber.Map{"Clients": clients})
}

func (h *ClientHandler) New(c *fiber.Ctx) error {
	return render(c, "client_form", fiber.Map{
		"Title": "New client", "Action": "/clients",
		"Form": map[string]string{"status": domain.ClientActive},
	})
}

func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in forms.ClientInput
	data := fiber.Map{"Title": "New client", "Action": "/clients"}
	if err := bind(c, &in); err != nil {
		return formFailed(c, "client.create", err, "client_form", data)
	}
	data["Form"] = in.Fields()
	cl, err := h.Clients.Create(c.UserContext(), in.Fields())
	if err != nil {
		return formFailed(c, "client.create", err, "client_form", data)
	}
	applog.Audit(c, "client.create", map[string]any{"client_id": cl.ID})
	return redirectWith(c, "/clients", "success", "Client registered.")
}

func (h *ClientHandler) Edit(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFoundPage(c, "Client not found")
	}
	cl, err := h.Clients.Get(c.UserContext(), id)
	if err != nil {
		return pageFailed(c, "client.edit", err)
	}
	return render(c, "client_form", fiber.Map{
		"Title": "Edit client", "Action": fmt.Sprintf("/clients/%d", id), "Form": clientForm(cl),
	})
}

func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFoundPage(c, "Client not found")
	}
	var in forms.ClientInput
	data := fiber.Map{"Title": "Edit client", "Action": fmt.Sprintf("/clients/%d", id)}
	if err := bind(c, &in); err != nil {
		return formFailed(c, "client.update", err, "client_form", data)
	}
	data["Form"] = in.Fields()
	if _, err := h.Clients.Update(c.UserContext(), id, in.Fields()); err != nil {
		return formFailed(c, "client.update", err, "client_form", data)
	}
	applog.Audit(c, "client.update", map[string]any{"client_id": id})
	return redirectWith(c, "/clients", "success", "Client updated.")
}

func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFoundPage(c, "Client not found")
	}
	err := h.Clients.Delete(c.UserContext(), id)
	return deleted(c, "client.delete", err, "/clients", map[string]any{"client_id": id})
}
