package repos

import (
	"context"
	"database/sql"
	"errors"

	"tienda/internal/domain"

	"github.com/jmoiron/sqlx"
)

const adminCols = `id,name,username,password_hash,email,registered_at`

type AdminRepo struct{ DB *sqlx.DB }

func NewAdminRepo(db *sqlx.DB) *AdminRepo { return &AdminRepo{DB: db} }

func (r *AdminRepo) Create(ctx context.Context, a *domain.Administrator) error {
	q := r.DB.Rebind(`INSERT INTO administrators(name,username,username_key,password_hash,email,email_key,registered_at)
		VALUES(?,?,?,?,?,?,?) RETURNING id`)
	err := r.DB.QueryRowxContext(ctx, q,
		a.Name, a.Username, domain.NameKey(a.Username), a.PasswordHash, a.Email, domain.EmailKey(a.Email), a.RegisteredAt,
	).Scan(&a.ID)
	return conflictOr(err, domain.EntityAdministrator,
		unique{"administrators.username_key", "username", a.Username},
		unique{"administrators.email_key", "email", a.Email},
	)
}

func (r *AdminRepo) List(ctx context.Context) ([]domain.Administrator, error) {
	var out []domain.Administrator
	err := r.DB.SelectContext(ctx, &out, `SELECT `+adminCols+` FROM administrators ORDER BY name`)
	return out, err
}

func (r *AdminRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM administrators`)
	return n, err
}

// First returns the earliest registered administrator, nil when there is none.
func (r *AdminRepo) First(ctx context.Context) (*domain.Administrator, error) {
	var a domain.Administrator
	err := r.DB.GetContext(ctx, &a, `SELECT `+adminCols+` FROM administrators ORDER BY id LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepo) ByID(ctx context.Context, id int64) (*domain.Administrator, error) {
	var a domain.Administrator
	err := r.DB.GetContext(ctx, &a, r.DB.Rebind(`SELECT `+adminCols+` FROM administrators WHERE id=?`), id)
	if err != nil {
		return nil, notFound(err, domain.EntityAdministrator, id)
	}
	return &a, nil
}

// ByLogin matches the username or the email, both case-insensitively.
func (r *AdminRepo) ByLogin(ctx context.Context, login string) (*domain.Administrator, error) {
	var a domain.Administrator
	q := r.DB.Rebind(`SELECT ` + adminCols + ` FROM administrators WHERE username_key=? OR email_key=? ORDER BY id LIMIT 1`)
	if err := r.DB.GetContext(ctx, &a, q, domain.NameKey(login), domain.EmailKey(login)); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepo) BindSession(ctx context.Context, sid string, adminID int64) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`INSERT INTO sessions(id,admin_id,last_seen)
		VALUES(?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET admin_id=excluded.admin_id,last_seen=CURRENT_TIMESTAMP`), sid, adminID)
	return err
}

func (r *AdminRepo) SessionAdmin(ctx context.Context, sid string) (*domain.Administrator, error) {
	var a domain.Administrator
	err := r.DB.GetContext(ctx, &a, r.DB.Rebind(`
		SELECT a.id,a.name,a.username,a.password_hash,a.email,a.registered_at
		FROM sessions s
		JOIN administrators a ON a.id=s.admin_id
		WHERE s.id=?`), sid)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepo) UnbindSession(ctx context.Context, sid string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM sessions WHERE id=?`), sid)
	return err
}
