package repos

import (
	"context"
	"fmt"
	"strings"

	"tienda/internal/domain"
	applog "tienda/internal/log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB connects to the store, creates missing tables and seeds the default
// units. driver is "sqlite" (default) or "pgx".
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	if driver == "" {
		driver = "sqlite"
	}
	if driver == "sqlite" {
		dsn = sqliteDSN(dsn)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// one connection: ":memory:" stays a single database and writes serialize
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	schema := sqliteSchema
	if driver == "pgx" {
		schema = postgresSchema
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := seedUnits(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// sqliteDSN turns on foreign keys for every connection and stores times in
// a lexically ordered format.
func sqliteDSN(dsn string) string {
	var params []string
	if !strings.Contains(dsn, "foreign_keys") {
		params = append(params, "_pragma=foreign_keys(1)")
	}
	if !strings.Contains(dsn, "_time_format") {
		params = append(params, "_time_format=sqlite")
	}
	if len(params) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

var defaultUnits = []domain.Unit{
	{Name: "Unidad", Abbreviation: domain.DefaultUnitAbbreviation},
	{Name: "Kilogramo", Abbreviation: "kg"},
	{Name: "Gramo", Abbreviation: "g"},
	{Name: "Litro", Abbreviation: "l"},
	{Name: "Mililitro", Abbreviation: "ml"},
}

// seedUnits is idempotent; safe to run on every start.
func seedUnits(db *sqlx.DB) error {
	q := db.Rebind(`INSERT INTO units(name,name_key,abbreviation) VALUES(?,?,?) ON CONFLICT(name_key) DO NOTHING`)
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var added int64
	for _, u := range defaultUnits {
		res, err := tx.Exec(q, u.Name, domain.NameKey(u.Name), u.Abbreviation)
		if err != nil {
			return fmt.Errorf("seed unit %s: %w", u.Name, err)
		}
		n, _ := res.RowsAffected()
		added += n
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	if added > 0 {
		applog.Plain("seed.units", map[string]any{"added": added})
	}
	return nil
}

// Ping is used by the health endpoint.
func Ping(ctx context.Context, db *sqlx.DB) error {
	return db.PingContext(ctx)
}

const sqliteSchema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS administrators(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  username TEXT NOT NULL,
  username_key TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  email TEXT NOT NULL,
  email_key TEXT NOT NULL,
  registered_at DATETIME NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_administrators_username_key ON administrators(username_key);
CREATE UNIQUE INDEX IF NOT EXISTS ux_administrators_email_key ON administrators(email_key);

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- value of the 'sid' cookie
  admin_id INTEGER NULL REFERENCES administrators(id) ON DELETE CASCADE,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  last_seen DATETIME
);
CREATE INDEX IF NOT EXISTS idx_sessions_admin ON sessions(admin_id);

CREATE TABLE IF NOT EXISTS clients(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  document TEXT NOT NULL,
  phone TEXT NOT NULL,
  email TEXT NOT NULL,
  email_key TEXT NOT NULL,
  address TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active','inactive')),
  registered_at DATETIME NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_clients_document ON clients(document);
CREATE UNIQUE INDEX IF NOT EXISTS ux_clients_email_key ON clients(email_key);

CREATE TABLE IF NOT EXISTS brands(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  name_key TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_brands_name_key ON brands(name_key);

CREATE TABLE IF NOT EXISTS product_types(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  name_key TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_product_types_name_key ON product_types(name_key);

CREATE TABLE IF NOT EXISTS units(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  name_key TEXT NOT NULL,
  abbreviation TEXT NOT NULL DEFAULT 'und'
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_units_name_key ON units(name_key);

-- catalog rows cannot go while products reference them
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  name_key TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price > 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  brand_id INTEGER NOT NULL REFERENCES brands(id) ON DELETE RESTRICT,
  type_id INTEGER NOT NULL REFERENCES product_types(id) ON DELETE RESTRICT,
  unit_id INTEGER NOT NULL REFERENCES units(id) ON DELETE RESTRICT,
  created_at DATETIME NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_products_name_key ON products(name_key);
CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand_id);
CREATE INDEX IF NOT EXISTS idx_products_type ON products(type_id);
CREATE INDEX IF NOT EXISTS idx_products_unit ON products(unit_id);

CREATE TABLE IF NOT EXISTS suppliers(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  phone TEXT NOT NULL,
  email TEXT NOT NULL,
  email_key TEXT NOT NULL,
  ships INTEGER NOT NULL DEFAULT 1,
  registered_at DATETIME NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_suppliers_email_key ON suppliers(email_key);

CREATE TABLE IF NOT EXISTS sales(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  client_name TEXT NOT NULL,
  created_at DATETIME NOT NULL,
  total NUMERIC NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','completed','cancelled'))
);
CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales(created_at);

CREATE TABLE IF NOT EXISTS sale_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  sale_id INTEGER NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
  product_name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  quantity INTEGER NOT NULL CHECK (quantity >= 1)
);
CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id);

CREATE TABLE IF NOT EXISTS purchases(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  admin_id INTEGER NOT NULL REFERENCES administrators(id) ON DELETE CASCADE,
  supplier_id INTEGER NOT NULL REFERENCES suppliers(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  purchased_at DATETIME NOT NULL,
  total NUMERIC NOT NULL,
  active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  admin_id INTEGER NOT NULL REFERENCES administrators(id) ON DELETE CASCADE,
  client_id INTEGER NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
  ordered_at DATETIME NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  total NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_ordered_at ON orders(ordered_at);

CREATE TABLE IF NOT EXISTS reports(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  purchase_id INTEGER NULL REFERENCES purchases(id) ON DELETE CASCADE,
  order_id INTEGER NULL REFERENCES orders(id) ON DELETE CASCADE,
  sale_id INTEGER NULL REFERENCES sales(id) ON DELETE CASCADE,
  admin_id INTEGER NOT NULL REFERENCES administrators(id) ON DELETE CASCADE,
  created_at DATETIME NOT NULL,
  description TEXT NOT NULL
);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS administrators(
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  username TEXT NOT NULL,
  username_key TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  email TEXT NOT NULL,
  email_key TEXT NOT NULL,
  registered_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_administrators_username_key ON administrators(username_key);
CREATE UNIQUE INDEX IF NOT EXISTS ux_administrators_email_key ON administrators(email_key);

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  admin_id BIGINT NULL REFERENCES administrators(id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ DEFAULT now(),
  last_seen TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_sessions_admin ON sessions(admin_id);

CREATE TABLE IF NOT EXISTS clients(
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  document TEXT NOT NULL,
  phone TEXT NOT NULL,
  email TEXT NOT NULL,
  email_key TEXT NOT NULL,
  address TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active','inactive')),
  registered_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_clients_document ON clients(document);
CREATE UNIQUE INDEX IF NOT EXISTS ux_clients_email_key ON clients(email_key);

CREATE TABLE IF NOT EXISTS brands(
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  name_key TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_brands_name_key ON brands(name_key);

CREATE TABLE IF NOT EXISTS product_types(
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  name_key TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_product_types_name_key ON product_types(name_key);

CREATE TABLE IF NOT EXISTS units(
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  name_key TEXT NOT NULL,
  abbreviation TEXT NOT NULL DEFAULT 'und'
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_units_name_key ON units(name_key);

CREATE TABLE IF NOT EXISTS products(
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  name_key TEXT NOT NULL,
  price NUMERIC(12,2) NOT NULL CHECK (price > 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  brand_id BIGINT NOT NULL REFERENCES brands(id) ON DELETE RESTRICT,
  type_id BIGINT NOT NULL REFERENCES product_types(id) ON DELETE RESTRICT,
  unit_id BIGINT NOT NULL REFERENCES units(id) ON DELETE RESTRICT,
  created_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_products_name_key ON products(name_key);
CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand_id);
CREATE INDEX IF NOT EXISTS idx_products_type ON products(type_id);
CREATE INDEX IF NOT EXISTS idx_products_unit ON products(unit_id);

CREATE TABLE IF NOT EXISTS suppliers(
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  phone TEXT NOT NULL,
  email TEXT NOT NULL,
  email_key TEXT NOT NULL,
  ships BOOLEAN NOT NULL DEFAULT TRUE,
  registered_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_suppliers_email_key ON suppliers(email_key);

CREATE TABLE IF NOT EXISTS sales(
  id BIGSERIAL PRIMARY KEY,
  client_name TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL,
  total NUMERIC(14,2) NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','completed','cancelled'))
);
CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales(created_at);

CREATE TABLE IF NOT EXISTS sale_items(
  id BIGSERIAL PRIMARY KEY,
  sale_id BIGINT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
  product_name TEXT NOT NULL,
  price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
  quantity INTEGER NOT NULL CHECK (quantity >= 1)
);
CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id);

CREATE TABLE IF NOT EXISTS purchases(
  id BIGSERIAL PRIMARY KEY,
  admin_id BIGINT NOT NULL REFERENCES administrators(id) ON DELETE CASCADE,
  supplier_id BIGINT NOT NULL REFERENCES suppliers(id) ON DELETE CASCADE,
  product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  purchased_at TIMESTAMPTZ NOT NULL,
  total NUMERIC(14,2) NOT NULL,
  active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS orders(
  id BIGSERIAL PRIMARY KEY,
  admin_id BIGINT NOT NULL REFERENCES administrators(id) ON DELETE CASCADE,
  client_id BIGINT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
  ordered_at TIMESTAMPTZ NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  total NUMERIC(14,2) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_ordered_at ON orders(ordered_at);

CREATE TABLE IF NOT EXISTS reports(
  id BIGSERIAL PRIMARY KEY,
  purchase_id BIGINT NULL REFERENCES purchases(id) ON DELETE CASCADE,
  order_id BIGINT NULL REFERENCES orders(id) ON DELETE CASCADE,
  sale_id BIGINT NULL REFERENCES sales(id) ON DELETE CASCADE,
  admin_id BIGINT NOT NULL REFERENCES administrators(id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ NOT NULL,
  description TEXT NOT NULL
);
`
