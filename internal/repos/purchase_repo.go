package repos

import (
	"context"

	"tienda/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PurchaseRepo struct{ db *sqlx.DB }

func NewPurchaseRepo(db *sqlx.DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

const purchaseRowSelect = `
  SELECT
    c.id, c.admin_id, c.supplier_id, c.product_id, c.purchased_at, c.total, c.active,
    a.name AS admin, s.name AS supplier, p.name AS product
  FROM purchases c
  JOIN administrators a ON a.id = c.admin_id
  JOIN suppliers s ON s.id = c.supplier_id
  JOIN products p ON p.id = c.product_id`

func (r *PurchaseRepo) Create(ctx context.Context, p *domain.Purchase) error {
	return r.db.QueryRowxContext(ctx, r.db.Rebind(`INSERT INTO purchases(admin_id,supplier_id,product_id,purchased_at,total,active)
		VALUES(?,?,?,?,?,?) RETURNING id`),
		p.AdminID, p.SupplierID, p.ProductID, p.PurchasedAt, p.Total, p.Active).Scan(&p.ID)
}

func (r *PurchaseRepo) Update(ctx context.Context, p *domain.Purchase) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE purchases
		SET admin_id=?,supplier_id=?,product_id=?,purchased_at=?,total=?,active=?
		WHERE id=?`),
		p.AdminID, p.SupplierID, p.ProductID, p.PurchasedAt, p.Total, p.Active, p.ID)
	return affected(res, err, domain.EntityPurchase, p.ID)
}

func (r *PurchaseRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM purchases WHERE id=?`), id)
	return affected(res, err, domain.EntityPurchase, id)
}

func (r *PurchaseRepo) Get(ctx context.Context, id int64) (domain.PurchaseRow, error) {
	var p domain.PurchaseRow
	err := r.db.GetContext(ctx, &p, r.db.Rebind(purchaseRowSelect+` WHERE c.id = ?`), id)
	return p, notFound(err, domain.EntityPurchase, id)
}

func (r *PurchaseRepo) List(ctx context.Context) ([]domain.PurchaseRow, error) {
	var out []domain.PurchaseRow
	err := r.db.SelectContext(ctx, &out, purchaseRowSelect+` ORDER BY c.purchased_at DESC, c.id DESC`)
	return out, err
}
