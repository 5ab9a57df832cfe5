package repos

import (
	"context"

	"tienda/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderRowSelect = `
  SELECT
    o.id, o.admin_id, o.client_id, o.ordered_at, o.status, o.total,
    a.name AS admin, c.name AS client
  FROM orders o
  JOIN administrators a ON a.id = o.admin_id
  JOIN clients c ON c.id = o.client_id`

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	return r.db.QueryRowxContext(ctx, r.db.Rebind(`INSERT INTO orders(admin_id,client_id,ordered_at,status,total)
		VALUES(?,?,?,?,?) RETURNING id`),
		o.AdminID, o.ClientID, o.OrderedAt, o.Status, o.Total).Scan(&o.ID)
}

func (r *OrderRepo) Update(ctx context.Context, o *domain.Order) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE orders SET admin_id=?,client_id=?,ordered_at=?,status=?,total=? WHERE id=?`),
		o.AdminID, o.ClientID, o.OrderedAt, o.Status, o.Total, o.ID)
	return affected(res, err, domain.EntityOrder, o.ID)
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE orders SET status = ? WHERE id = ?`), status, id)
	return affected(res, err, domain.EntityOrder, id)
}

func (r *OrderRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM orders WHERE id=?`), id)
	return affected(res, err, domain.EntityOrder, id)
}

func (r *OrderRepo) Get(ctx context.Context, id int64) (domain.OrderRow, error) {
	var o domain.OrderRow
	err := r.db.GetContext(ctx, &o, r.db.Rebind(orderRowSelect+` WHERE o.id = ?`), id)
	return o, notFound(err, domain.EntityOrder, id)
}

// ListLatest returns the newest orders first.
func (r *OrderRepo) ListLatest(ctx context.Context, limit int) ([]domain.OrderRow, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.OrderRow
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(orderRowSelect+` ORDER BY o.ordered_at DESC, o.id DESC LIMIT ?`), limit)
	return out, err
}
