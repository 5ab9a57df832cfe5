package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money goes out as JSON numbers.
func init() { decimal.MarshalJSONWithoutQuotes = true }

const (
	SalePending   = "pending"
	SaleCompleted = "completed"
	SaleCancelled = "cancelled"
)

type Sale struct {
	ID         int64           `db:"id"`
	ClientName string          `db:"client_name"`
	CreatedAt  time.Time       `db:"created_at"`
	Total      decimal.Decimal `db:"total"`
	Status     string          `db:"status"`
}

// SaleItem snapshots the product name and price at the time of the sale; it
// belongs to exactly one Sale and goes away with it.
type SaleItem struct {
	ID          int64           `db:"id"`
	SaleID      int64           `db:"sale_id"`
	ProductName string          `db:"product_name"`
	Price       decimal.Decimal `db:"price"`
	Quantity    int             `db:"quantity"`
}

func (it SaleItem) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// ItemsTotal sums price*quantity over items.
func ItemsTotal(items []SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

type SaleStats struct {
	TodayTotal decimal.Decimal `json:"today_total"`
	MonthTotal decimal.Decimal `json:"month_total"`
	Count      int             `json:"sales_count"`
}

type Purchase struct {
	ID          int64           `db:"id"`
	AdminID     int64           `db:"admin_id"`
	SupplierID  int64           `db:"supplier_id"`
	ProductID   int64           `db:"product_id"`
	PurchasedAt time.Time       `db:"purchased_at"`
	Total       decimal.Decimal `db:"total"`
	Active      bool            `db:"active"`
}

type PurchaseRow struct {
	Purchase
	Admin    string `db:"admin"`
	Supplier string `db:"supplier"`
	Product  string `db:"product"`
}

const (
	OrderPending   = "pending"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

var OrderStatuses = []string{OrderPending, OrderShipped, OrderDelivered, OrderCancelled}

type Order struct {
	ID        int64           `db:"id"`
	AdminID   int64           `db:"admin_id"`
	ClientID  int64           `db:"client_id"`
	OrderedAt time.Time       `db:"ordered_at"`
	Status    string          `db:"status"`
	Total     decimal.Decimal `db:"total"`
}

type OrderRow struct {
	Order
	Admin  string `db:"admin"`
	Client string `db:"client"`
}

// Report always names its administrator; the purchase/order/sale it
// describes are each optional.
type Report struct {
	ID          int64     `db:"id"`
	PurchaseID  *int64    `db:"purchase_id"`
	OrderID     *int64    `db:"order_id"`
	SaleID      *int64    `db:"sale_id"`
	AdminID     int64     `db:"admin_id"`
	CreatedAt   time.Time `db:"created_at"`
	Description string    `db:"description"`
}

type ReportRow struct {
	Report
	Admin string `db:"admin"`
}
