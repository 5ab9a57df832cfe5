package repos

import (
	"context"

	"tienda/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SupplierRepo struct{ db *sqlx.DB }

func NewSupplierRepo(db *sqlx.DB) *SupplierRepo { return &SupplierRepo{db: db} }

func (r *SupplierRepo) Create(ctx context.Context, s *domain.Supplier) error {
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`INSERT INTO suppliers(name,phone,email,email_key,ships,registered_at)
		VALUES(?,?,?,?,?,?) RETURNING id`),
		s.Name, s.Phone, s.Email, domain.EmailKey(s.Email), s.Ships, s.RegisteredAt).Scan(&s.ID)
	return conflictOr(err, domain.EntitySupplier, unique{"suppliers.email_key", "email", s.Email})
}

func (r *SupplierRepo) Update(ctx context.Context, s *domain.Supplier) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE suppliers SET name=?,phone=?,email=?,email_key=?,ships=? WHERE id=?`),
		s.Name, s.Phone, s.Email, domain.EmailKey(s.Email), s.Ships, s.ID)
	return conflictOr(affected(res, err, domain.EntitySupplier, s.ID), domain.EntitySupplier, unique{"suppliers.email_key", "email", s.Email})
}

func (r *SupplierRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM suppliers WHERE id=?`), id)
	return affected(res, err, domain.EntitySupplier, id)
}

func (r *SupplierRepo) Get(ctx context.Context, id int64) (domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.GetContext(ctx, &s, r.db.Rebind(`SELECT id,name,phone,email,ships,registered_at FROM suppliers WHERE id=?`), id)
	return s, notFound(err, domain.EntitySupplier, id)
}

func (r *SupplierRepo) List(ctx context.Context) ([]domain.Supplier, error) {
	var out []domain.Supplier
	err := r.db.SelectContext(ctx, &out, `SELECT id,name,phone,email,ships,registered_at FROM suppliers ORDER BY name`)
	return out, err
}
