package validate

import (
	"regexp"

	"tienda/internal/domain"
)

var (
	reName     = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ\s]+$`)
	reUsername = regexp.MustCompile(`^[A-Za-z0-9_.\-]{3,50}$`)
	reDate     = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
)

const (
	MaxPrice  = 999_999
	MaxStock  = 1_000_000
	MaxAmount = 99_999_999
)

// One schema per entity; create and edit share it.

var AdministratorSchema = Schema{Entity: domain.EntityAdministrator, Fields: []Field{
	{Name: "name", Label: "Full name", Rules: []Rule{Required(), Clean(), Length(3, 150), Match(reName, MsgLetters)}},
	{Name: "username", Label: "Username", Rules: []Rule{
		Required(), Clean(),
		Match(reUsername, "Use 3 to 50 letters, digits, dots, dashes or underscores."),
		Unique(domain.EntityAdministrator, "username", domain.NameKey).Msg("This username is already registered."),
	}},
	{Name: "email", Label: "Email", Rules: []Rule{
		Required(), Lower(), Email(), Length(3, 100),
		Unique(domain.EntityAdministrator, "email", domain.EmailKey).Msg("This email is already registered."),
	}},
	{Name: "password", Label: "Password", Rules: []Rule{Required(), Secret()}},
	{Name: "password_confirm", Label: "Confirm password", Rules: []Rule{Required(), SameAs("password", "Passwords do not match.")}},
}}

var ClientSchema = Schema{Entity: domain.EntityClient, Fields: []Field{
	{Name: "name", Label: "Name", Rules: []Rule{Required(), Clean(), Length(3, 150), Match(reName, MsgLetters)}},
	{Name: "document", Label: "Document", Rules: []Rule{
		Required(), Digits(),
		Length(6, 12).Msg("Must have between 6 and 12 digits."),
		Unique(domain.EntityClient, "document", nil),
	}},
	{Name: "phone", Label: "Phone", Rules: []Rule{Required(), Digits(), Length(10, 10).Msg("Must have exactly 10 digits.")}},
	{Name: "email", Label: "Email", Rules: []Rule{
		Required(), Lower(), Email(), Length(3, 100),
		Unique(domain.EntityClient, "email", domain.EmailKey),
	}},
	{Name: "address", Label: "Address", Rules: []Rule{Required(), Clean(), Length(1, 255)}},
	{Name: "status", Label: "Status", Rules: []Rule{Optional(domain.ClientActive), OneOf(domain.ClientActive, domain.ClientInactive)}},
}}

var BrandSchema = Schema{Entity: domain.EntityBrand, Fields: []Field{
	{Name: "name", Label: "Brand", Rules: []Rule{Required(), Clean(), Length(1, 100), Unique(domain.EntityBrand, "name", domain.NameKey)}},
}}

var ProductTypeSchema = Schema{Entity: domain.EntityProductType, Fields: []Field{
	{Name: "name", Label: "Type", Rules: []Rule{Required(), Clean(), Length(1, 100), Unique(domain.EntityProductType, "name", domain.NameKey)}},
	{Name: "description", Label: "Description", Rules: []Rule{Optional(""), Length(0, 1000)}},
}}

var UnitSchema = Schema{Entity: domain.EntityUnit, Fields: []Field{
	{Name: "name", Label: "Unit", Rules: []Rule{Required(), Clean(), Length(1, 100), Unique(domain.EntityUnit, "name", domain.NameKey)}},
	{Name: "abbreviation", Label: "Abbreviation", Rules: []Rule{Optional(domain.DefaultUnitAbbreviation), Clean(), Length(1, 10)}},
}}

var ProductSchema = Schema{Entity: domain.EntityProduct, Fields: []Field{
	{Name: "name", Label: "Name", Rules: []Rule{Required(), Clean(), Length(3, 200), Unique(domain.EntityProduct, "name", domain.NameKey)}},
	{Name: "price", Label: "Price", Rules: []Rule{Required(), Digits(), Range(1, MaxPrice)}},
	{Name: "stock", Label: "Stock", Rules: []Rule{Required(), Digits(), Range(0, MaxStock)}},
	{Name: "brand_id", Label: "Brand", Rules: []Rule{Required(), Ref(domain.EntityBrand)}},
	{Name: "type_id", Label: "Type", Rules: []Rule{Required(), Ref(domain.EntityProductType)}},
	{Name: "unit_id", Label: "Unit", Rules: []Rule{Required(), Ref(domain.EntityUnit)}},
}}

var SupplierSchema = Schema{Entity: domain.EntitySupplier, Fields: []Field{
	{Name: "name", Label: "Name", Rules: []Rule{Required(), Clean(), Length(3, 150), Match(reName, MsgLetters)}},
	{Name: "phone", Label: "Phone", Rules: []Rule{Required(), Digits(), Length(10, 10).Msg("Must have exactly 10 digits.")}},
	{Name: "email", Label: "Email", Rules: []Rule{
		Required(), Lower(), Email(), Length(3, 100),
		Unique(domain.EntitySupplier, "email", domain.EmailKey),
	}},
	{Name: "ships", Label: "Ships", Rules: []Rule{Optional("")}},
}}

// SaleSchema covers the header; line items go through SaleItemSchema.
var SaleSchema = Schema{Entity: domain.EntitySale, Fields: []Field{
	{Name: "client", Label: "Client", Rules: []Rule{Required(), Clean(), Length(1, 100)}},
	{Name: "status", Label: "Status", Rules: []Rule{Optional(domain.SalePending), OneOf(domain.SalePending, domain.SaleCompleted, domain.SaleCancelled)}},
	{Name: "total", Label: "Total", Rules: []Rule{Optional(""), Amount(0, MaxAmount)}},
}}

var SaleItemSchema = Schema{Entity: domain.EntitySale, Fields: []Field{
	{Name: "name", Label: "Product", Rules: []Rule{Required(), Clean(), Length(1, 100)}},
	{Name: "quantity", Label: "Quantity", Rules: []Rule{Required(), Digits(), Range(1, MaxStock)}},
	{Name: "price", Label: "Price", Rules: []Rule{Required(), Amount(0, MaxAmount)}},
}}

// PurchaseSchema leaves admin_id optional; the acting administrator is
// resolved by the caller when it is blank.
var PurchaseSchema = Schema{Entity: domain.EntityPurchase, Fields: []Field{
	{Name: "admin_id", Label: "Administrator", Rules: []Rule{Optional(""), Ref(domain.EntityAdministrator)}},
	{Name: "supplier_id", Label: "Supplier", Rules: []Rule{Required(), Ref(domain.EntitySupplier)}},
	{Name: "product_id", Label: "Product", Rules: []Rule{Required(), Ref(domain.EntityProduct)}},
	{Name: "purchased_at", Label: "Date", Rules: []Rule{Optional(""), Match(reDate, "Use the YYYY-MM-DD format.")}},
	{Name: "total", Label: "Total", Rules: []Rule{Required(), Amount(1, MaxAmount)}},
	{Name: "active", Label: "Active", Rules: []Rule{Optional("")}},
}}

var OrderSchema = Schema{Entity: domain.EntityOrder, Fields: []Field{
	{Name: "admin_id", Label: "Administrator", Rules: []Rule{Optional(""), Ref(domain.EntityAdministrator)}},
	{Name: "client_id", Label: "Client", Rules: []Rule{Required(), Ref(domain.EntityClient)}},
	{Name: "ordered_at", Label: "Date", Rules: []Rule{Optional(""), Match(reDate, "Use the YYYY-MM-DD format.")}},
	{Name: "status", Label: "Status", Rules: []Rule{Optional(domain.OrderPending), OneOf(domain.OrderStatuses...)}},
	{Name: "total", Label: "Total", Rules: []Rule{Required(), Amount(0, MaxAmount)}},
}}

var OrderStatusSchema = Schema{Entity: domain.EntityOrder, Fields: []Field{
	{Name: "status", Label: "Status", Rules: []Rule{Required(), OneOf(domain.OrderStatuses...)}},
}}

var ReportSchema = Schema{Entity: domain.EntityReport, Fields: []Field{
	{Name: "admin_id", Label: "Administrator", Rules: []Rule{Required(), Ref(domain.EntityAdministrator)}},
	{Name: "purchase_id", Label: "Purchase", Rules: []Rule{Optional(""), Ref(domain.EntityPurchase)}},
	{Name: "order_id", Label: "Order", Rules: []Rule{Optional(""), Ref(domain.EntityOrder)}},
	{Name: "sale_id", Label: "Sale", Rules: []Rule{Optional(""), Ref(domain.EntitySale)}},
	{Name: "description", Label: "Description", Rules: []Rule{Required(), Length(1, 2000)}},
}}

// LoginSchema only shapes the credentials; it never consults the store.
var LoginSchema = Schema{Fields: []Field{
	{Name: "login", Label: "Username or email", Rules: []Rule{Required(), Clean(), Length(3, 100)}},
	{Name: "password", Label: "Password", Rules: []Rule{Required(), Length(1, 72)}},
}}
