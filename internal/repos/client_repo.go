package repos

import (
	"context"

	"tienda/internal/domain"

	"github.com/jmoiron/sqlx"
)

const clientCols = `id,name,document,phone,email,address,status,registered_at`

type ClientRepo struct{ DB *sqlx.DB }

func NewClientRepo(db *sqlx.DB) *ClientRepo { return &ClientRepo{DB: db} }

func clientUniques(c *domain.Client) []unique {
	return []unique{
		{"clients.document", "document", c.Document},
		{"clients.email_key", "email", c.Email},
	}
}

func (r *ClientRepo) Create(ctx context.Context, c *domain.Client) error {
	q := r.DB.Rebind(`INSERT INTO clients(name,document,phone,email,email_key,address,status,registered_at)
		VALUES(?,?,?,?,?,?,?,?) RETURNING id`)
	err := r.DB.QueryRowxContext(ctx, q,
		c.Name, c.Document, c.Phone, c.Email, domain.EmailKey(c.Email), c.Address, c.Status, c.RegisteredAt,
	).Scan(&c.ID)
	return conflictOr(err, domain.EntityClient, clientUniques(c)...)
}

func (r *ClientRepo) Update(ctx context.Context, c *domain.Client) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`UPDATE clients
		SET name=?,document=?,phone=?,email=?,email_key=?,address=?,status=?
		WHERE id=?`),
		c.Name, c.Document, c.Phone, c.Email, domain.EmailKey(c.Email), c.Address, c.Status, c.ID)
	return conflictOr(affected(res, err, domain.EntityClient, c.ID), domain.EntityClient, clientUniques(c)...)
}

func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM clients WHERE id=?`), id)
	return affected(res, err, domain.EntityClient, id)
}

func (r *ClientRepo) Get(ctx context.Context, id int64) (domain.Client, error) {
	var c domain.Client
	err := r.DB.GetContext(ctx, &c, r.DB.Rebind(`SELECT `+clientCols+` FROM clients WHERE id=?`), id)
	return c, notFound(err, domain.EntityClient, id)
}

func (r *ClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	var out []domain.Client
	err := r.DB.SelectContext(ctx, &out, `SELECT `+clientCols+` FROM clients ORDER BY name`)
	return out, err
}

func (r *ClientRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM clients`)
	return n, err
}
