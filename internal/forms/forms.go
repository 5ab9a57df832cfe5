// Package forms declares the request body of every write endpoint. Bodies are
// bound by fiber, shape-checked with validator tags, then flattened into the
// field map the rule tables consume.
package forms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"tienda/internal/domain"

	"github.com/go-playground/validator/v10"
)

var shape = validator.New()

func init() {
	shape.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// Raw keeps a JSON scalar as text so 2, "2" and 2.0 reach the rule table alike.
type Raw string

func (r *Raw) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Raw(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a string or number: %w", err)
	}
	*r = Raw(n.String())
	return nil
}

// Shape runs the struct tags of in. It returns nil when the body is usable.
func Shape(in any) domain.FieldErrors {
	err := shape.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.FieldErrors{"form": {"The submitted data is not valid."}}
	}
	fe := domain.FieldErrors{}
	for _, e := range verrs {
		fe.Add(fieldPath(e), message(e))
	}
	return fe
}

// fieldPath turns "SaleInput.items[1].price" into "items.1.price".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.NewReplacer("[", ".", "]", "").Replace(ns)
	return ns
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "max":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("At most %s items are allowed.", e.Param())
		}
		return fmt.Sprintf("Must be at most %s characters long.", e.Param())
	case "min":
		if e.Kind() == reflect.Slice {
			return "Add at least one product."
		}
		return fmt.Sprintf("Must be at least %s characters long.", e.Param())
	default:
		return "This value is not valid."
	}
}

type AdminInput struct {
	Name            string `form:"name" validate:"max=255"`
	Username        string `form:"username" validate:"max=100"`
	Email           string `form:"email" validate:"max=254"`
	Password        string `form:"password" validate:"max=72"`
	PasswordConfirm string `form:"password_confirm" validate:"max=72"`
}

func (in AdminInput) Fields() map[string]string {
	return map[string]string{
		"name": in.Name, "username": in.Username, "email": in.Email,
		"password": in.Password, "password_confirm": in.PasswordConfirm,
	}
}

type LoginInput struct {
	Login    string `form:"login" validate:"max=254"`
	Password string `form:"password" validate:"max=72"`
}

func (in LoginInput) Fields() map[string]string {
	return map[string]string{"login": in.Login, "password": in.Password}
}

type ClientInput struct {
	Name     string `form:"name" validate:"max=255"`
	Document string `form:"document" validate:"max=32"`
	Phone    string `form:"phone" validate:"max=32"`
	Email    string `form:"email" validate:"max=254"`
	Address  string `form:"address" validate:"max=500"`
	Status   string `form:"status" validate:"max=16"`
}

func (in ClientInput) Fields() map[string]string {
	return map[string]string{
		"name": in.Name, "document": in.Document, "phone": in.Phone,
		"email": in.Email, "address": in.Address, "status": in.Status,
	}
}

// BrandInput is shared by the page form and the JSON quick-create.
type BrandInput struct {
	Name string `form:"name" json:"name" validate:"max=255"`
}

func (in BrandInput) Fields() map[string]string { return map[string]string{"name": in.Name} }

type ProductTypeInput struct {
	Name        string `form:"name" json:"name" validate:"max=255"`
	Description string `form:"description" json:"description" validate:"max=2000"`
}

func (in ProductTypeInput) Fields() map[string]string {
	return map[string]string{"name": in.Name, "description": in.Description}
}

type UnitInput struct {
	Name         string `form:"name" json:"name" validate:"max=255"`
	Abbreviation string `form:"abbreviation" json:"abbreviation" validate:"max=32"`
}

func (in UnitInput) Fields() map[string]string {
	return map[string]string{"name": in.Name, "abbreviation": in.Abbreviation}
}

type ProductInput struct {
	Name    string `form:"name" validate:"max=400"`
	Price   string `form:"price" validate:"max=32"`
	Stock   string `form:"stock" validate:"max=32"`
	BrandID string `form:"brand_id" validate:"max=20"`
	TypeID  string `form:"type_id" validate:"max=20"`
	UnitID  string `form:"unit_id" validate:"max=20"`
}

func (in ProductInput) Fields() map[string]string {
	return map[string]string{
		"name": in.Name, "price": in.Price, "stock": in.Stock,
		"brand_id": in.BrandID, "type_id": in.TypeID, "unit_id": in.UnitID,
	}
}

type SupplierInput struct {
	Name  string `form:"name" validate:"max=255"`
	Phone string `form:"phone" validate:"max=32"`
	Email string `form:"email" validate:"max=254"`
	Ships string `form:"ships" validate:"max=8"`
}

func (in SupplierInput) Fields() map[string]string {
	return map[string]string{"name": in.Name, "phone": in.Phone, "email": in.Email, "ships": in.Ships}
}

type SaleLine struct {
	Name     string `json:"name" validate:"max=255"`
	Quantity Raw    `json:"quantity" validate:"max=32"`
	Price    Raw    `json:"price" validate:"max=32"`
}

// SaleInput is the JSON body of the sale create and edit endpoints.
type SaleInput struct {
	Client string     `json:"client" validate:"max=255"`
	Status string     `json:"status" validate:"max=16"`
	Total  Raw        `json:"total" validate:"max=32"`
	Items  []SaleLine `json:"items" validate:"max=200,dive"`
}

func (in SaleInput) Fields() map[string]string {
	return map[string]string{"client": in.Client, "status": in.Status, "total": string(in.Total)}
}

func (in SaleInput) Lines() []map[string]string {
	out := make([]map[string]string, len(in.Items))
	for i, it := range in.Items {
		out[i] = map[string]string{"name": it.Name, "quantity": string(it.Quantity), "price": string(it.Price)}
	}
	return out
}

type PurchaseInput struct {
	AdminID     string `form:"admin_id" validate:"max=20"`
	SupplierID  string `form:"supplier_id" validate:"max=20"`
	ProductID   string `form:"product_id" validate:"max=20"`
	PurchasedAt string `form:"purchased_at" validate:"max=32"`
	Total       string `form:"total" validate:"max=32"`
	Active      string `form:"active" validate:"max=8"`
}

func (in PurchaseInput) Fields() map[string]string {
	return map[string]string{
		"admin_id": in.AdminID, "supplier_id": in.SupplierID, "product_id": in.ProductID,
		"purchased_at": in.PurchasedAt, "total": in.Total, "active": in.Active,
	}
}

type OrderInput struct {
	AdminID   string `form:"admin_id" validate:"max=20"`
	ClientID  string `form:"client_id" validate:"max=20"`
	OrderedAt string `form:"ordered_at" validate:"max=32"`
	Status    string `form:"status" validate:"max=16"`
	Total     string `form:"total" validate:"max=32"`
}

func (in OrderInput) Fields() map[string]string {
	return map[string]string{
		"admin_id": in.AdminID, "client_id": in.ClientID, "ordered_at": in.OrderedAt,
		"status": in.Status, "total": in.Total,
	}
}

type ReportInput struct {
	AdminID     string `form:"admin_id" validate:"max=20"`
	PurchaseID  string `form:"purchase_id" validate:"max=20"`
	OrderID     string `form:"order_id" validate:"max=20"`
	SaleID      string `form:"sale_id" validate:"max=20"`
	Description string `form:"description" validate:"max=4000"`
}

func (in ReportInput) Fields() map[string]string {
	return map[string]string{
		"admin_id": in.AdminID, "purchase_id": in.PurchaseID, "order_id": in.OrderID,
		"sale_id": in.SaleID, "description": in.Description,
	}
}
