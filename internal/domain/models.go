package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Entity string

const (
	EntityAdministrator Entity = "administrator"
	EntityClient        Entity = "client"
	EntityBrand         Entity = "brand"
	EntityProductType   Entity = "product_type"
	EntityUnit          Entity = "unit"
	EntityProduct       Entity = "product"
	EntitySupplier      Entity = "supplier"
	EntitySale          Entity = "sale"
	EntityPurchase      Entity = "purchase"
	EntityOrder         Entity = "order"
	EntityReport        Entity = "report"
)

type Administrator struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Email        string    `db:"email"`
	RegisteredAt time.Time `db:"registered_at"`
}

const (
	ClientActive   = "active"
	ClientInactive = "inactive"
)

type Client struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Document     string    `db:"document"`
	Phone        string    `db:"phone"`
	Email        string    `db:"email"`
	Address      string    `db:"address"`
	Status       string    `db:"status"` // active | inactive
	RegisteredAt time.Time `db:"registered_at"`
}

type Brand struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type ProductType struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

// DefaultUnitAbbreviation is stored when a unit is submitted without one.
const DefaultUnitAbbreviation = "und"

type Unit struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Abbreviation string `db:"abbreviation"`
}

type Product struct {
	ID        int64           `db:"id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Stock     int             `db:"stock"`
	BrandID   int64           `db:"brand_id"`
	TypeID    int64           `db:"type_id"`
	UnitID    int64           `db:"unit_id"`
	CreatedAt time.Time       `db:"created_at"`
}

// ProductRow is the list/detail read model with references resolved to names.
type ProductRow struct {
	Product
	Brand string `db:"brand"`
	Type  string `db:"type"`
	Unit  string `db:"unit"`
}

type Supplier struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Phone        string    `db:"phone"`
	Email        string    `db:"email"`
	Ships        bool      `db:"ships"`
	RegisteredAt time.Time `db:"registered_at"`
}

// Availability is the stock band shown next to a product.
type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty"`
}

const LowStockThreshold = 5

func AvailabilityFor(stock int) Availability {
	status := "OUT_OF_STOCK"
	switch {
	case stock >= LowStockThreshold:
		status = "IN_STOCK"
	case stock > 0:
		status = "LOW_STOCK"
	}
	return Availability{Status: status, Qty: stock}
}
