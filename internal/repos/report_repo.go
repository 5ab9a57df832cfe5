package repos

import (
	"context"

	"tienda/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReportRepo struct{ db *sqlx.DB }

func NewReportRepo(db *sqlx.DB) *ReportRepo { return &ReportRepo{db: db} }

const reportRowSelect = `
  SELECT
    r.id, r.purchase_id, r.order_id, r.sale_id, r.admin_id, r.created_at, r.description,
    a.name AS admin
  FROM reports r
  JOIN administrators a ON a.id = r.admin_id`

func (r *ReportRepo) Create(ctx context.Context, rep *domain.Report) error {
	return r.db.QueryRowxContext(ctx, r.db.Rebind(`INSERT INTO reports(purchase_id,order_id,sale_id,admin_id,created_at,description)
		VALUES(?,?,?,?,?,?) RETURNING id`),
		rep.PurchaseID, rep.OrderID, rep.SaleID, rep.AdminID, rep.CreatedAt, rep.Description).Scan(&rep.ID)
}

func (r *ReportRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM reports WHERE id=?`), id)
	return affected(res, err, domain.EntityReport, id)
}

func (r *ReportRepo) Get(ctx context.Context, id int64) (domain.ReportRow, error) {
	var rep domain.ReportRow
	err := r.db.GetContext(ctx, &rep, r.db.Rebind(reportRowSelect+` WHERE r.id = ?`), id)
	return rep, notFound(err, domain.EntityReport, id)
}

func (r *ReportRepo) List(ctx context.Context) ([]domain.ReportRow, error) {
	var out []domain.ReportRow
	err := r.db.SelectContext(ctx, &out, reportRowSelect+` ORDER BY r.created_at DESC, r.id DESC`)
	return out, err
}
