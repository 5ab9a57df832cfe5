package repos

import (
	"context"
	"fmt"

	"tienda/internal/domain"

	"github.com/jmoiron/sqlx"
)

type column struct{ table, key string }

// Only these (entity, field) pairs can be asked about; nothing user supplied
// ever reaches the SQL text.
var uniqueColumns = map[domain.Entity]map[string]column{
	domain.EntityAdministrator: {
		"username": {"administrators", "username_key"},
		"email":    {"administrators", "email_key"},
	},
	domain.EntityClient: {
		"document": {"clients", "document"},
		"email":    {"clients", "email_key"},
	},
	domain.EntityBrand:       {"name": {"brands", "name_key"}},
	domain.EntityProductType: {"name": {"product_types", "name_key"}},
	domain.EntityUnit:        {"name": {"units", "name_key"}},
	domain.EntityProduct:     {"name": {"products", "name_key"}},
	domain.EntitySupplier:    {"email": {"suppliers", "email_key"}},
}

var entityTables = map[domain.Entity]string{
	domain.EntityAdministrator: "administrators",
	domain.EntityClient:        "clients",
	domain.EntityBrand:         "brands",
	domain.EntityProductType:   "product_types",
	domain.EntityUnit:          "units",
	domain.EntityProduct:       "products",
	domain.EntitySupplier:      "suppliers",
	domain.EntitySale:          "sales",
	domain.EntityPurchase:      "purchases",
	domain.EntityOrder:         "orders",
	domain.EntityReport:        "reports",
}

// Lookup is the read-only store handle given to the validators.
type Lookup struct{ DB *sqlx.DB }

func NewLookup(db *sqlx.DB) *Lookup { return &Lookup{DB: db} }

func (l *Lookup) Exists(ctx context.Context, entity domain.Entity, field, key string, exceptID int64) (bool, error) {
	col, ok := uniqueColumns[entity][field]
	if !ok {
		return false, fmt.Errorf("lookup: no unique column %s.%s", entity, field)
	}
	q := l.DB.Rebind(fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = ? AND id <> ?`, col.table, col.key))
	var n int
	if err := l.DB.GetContext(ctx, &n, q, key, exceptID); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (l *Lookup) Resolves(ctx context.Context, entity domain.Entity, id int64) (bool, error) {
	table, ok := entityTables[entity]
	if !ok {
		return false, fmt.Errorf("lookup: unknown entity %s", entity)
	}
	var n int
	if err := l.DB.GetContext(ctx, &n, l.DB.Rebind(`SELECT COUNT(*) FROM `+table+` WHERE id = ?`), id); err != nil {
		return false, err
	}
	return n > 0, nil
}
