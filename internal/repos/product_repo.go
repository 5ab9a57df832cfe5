package repos

import (
	"context"
	"strings"

	"tienda/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productRowSelect = `
  SELECT
    p.id, p.name, p.price, p.stock, p.brand_id, p.type_id, p.unit_id, p.created_at,
    b.name AS brand, t.name AS type, u.name AS unit
  FROM products p
  JOIN brands b ON b.id = p.brand_id
  JOIN product_types t ON t.id = p.type_id
  JOIN units u ON u.id = p.unit_id`

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	q := r.db.Rebind(`INSERT INTO products(name,name_key,price,stock,brand_id,type_id,unit_id,created_at)
		VALUES(?,?,?,?,?,?,?,?) RETURNING id`)
	err := r.db.QueryRowxContext(ctx, q,
		p.Name, domain.NameKey(p.Name), p.Price, p.Stock, p.BrandID, p.TypeID, p.UnitID, p.CreatedAt,
	).Scan(&p.ID)
	return conflictOr(err, domain.EntityProduct, unique{"products.name_key", "name", p.Name})
}

func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE products
		SET name=?,name_key=?,price=?,stock=?,brand_id=?,type_id=?,unit_id=?
		WHERE id=?`),
		p.Name, domain.NameKey(p.Name), p.Price, p.Stock, p.BrandID, p.TypeID, p.UnitID, p.ID)
	return conflictOr(affected(res, err, domain.EntityProduct, p.ID), domain.EntityProduct, unique{"products.name_key", "name", p.Name})
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM products WHERE id=?`), id)
	return affected(res, err, domain.EntityProduct, id)
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.ProductRow, error) {
	var p domain.ProductRow
	err := r.db.GetContext(ctx, &p, r.db.Rebind(productRowSelect+` WHERE p.id = ?`), id)
	return p, notFound(err, domain.EntityProduct, id)
}

// List returns products with their brand/type/unit names; q filters by
// product or brand name.
func (r *ProductRepo) List(ctx context.Context, q string) ([]domain.ProductRow, error) {
	query := productRowSelect
	var args []any
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query += ` WHERE LOWER(p.name) LIKE ? OR LOWER(b.name) LIKE ?`
		args = append(args, like, like)
	}
	query += ` ORDER BY p.name`

	var out []domain.ProductRow
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...)
	return out, err
}
