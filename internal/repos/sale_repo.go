package repos

import (
	"context"
	"fmt"
	"time"

	"tienda/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

// Create inserts the sale and its items in one transaction; a failing item
// leaves no sale behind.
func (r *SaleRepo) Create(ctx context.Context, s *domain.Sale, items []domain.SaleItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowxContext(ctx, tx.Rebind(`INSERT INTO sales(client_name,created_at,total,status) VALUES(?,?,?,?) RETURNING id`),
		s.ClientName, s.CreatedAt, s.Total, s.Status).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	if err := insertItems(ctx, tx, s.ID, items); err != nil {
		return err
	}
	return tx.Commit()
}

// Replace overwrites the header and swaps the whole item set.
func (r *SaleRepo) Replace(ctx context.Context, s *domain.Sale, items []domain.SaleItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE sales SET client_name=?,total=?,status=? WHERE id=?`),
		s.ClientName, s.Total, s.Status, s.ID)
	if err := affected(res, err, domain.EntitySale, s.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM sale_items WHERE sale_id=?`), s.ID); err != nil {
		return fmt.Errorf("clear sale items: %w", err)
	}
	if err := insertItems(ctx, tx, s.ID, items); err != nil {
		return err
	}
	return tx.Commit()
}

func insertItems(ctx context.Context, tx *sqlx.Tx, saleID int64, items []domain.SaleItem) error {
	q := tx.Rebind(`INSERT INTO sale_items(sale_id,product_name,price,quantity) VALUES(?,?,?,?) RETURNING id`)
	for i := range items {
		items[i].SaleID = saleID
		if err := tx.QueryRowxContext(ctx, q, saleID, items[i].ProductName, items[i].Price, items[i].Quantity).Scan(&items[i].ID); err != nil {
			return fmt.Errorf("insert sale item %d: %w", i, err)
		}
	}
	return nil
}

func (r *SaleRepo) SetStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE sales SET status=? WHERE id=?`), status, id)
	return affected(res, err, domain.EntitySale, id)
}

// Delete removes the sale; its items go with it.
func (r *SaleRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM sales WHERE id=?`), id)
	return affected(res, err, domain.EntitySale, id)
}

func (r *SaleRepo) Get(ctx context.Context, id int64) (domain.Sale, []domain.SaleItem, error) {
	var s domain.Sale
	if err := r.db.GetContext(ctx, &s, r.db.Rebind(`
		SELECT id, client_name, created_at, total, status
		FROM sales
		WHERE id = ?`), id); err != nil {
		return domain.Sale{}, nil, notFound(err, domain.EntitySale, id)
	}

	var items []domain.SaleItem
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(`
		SELECT id, sale_id, product_name, price, quantity
		FROM sale_items
		WHERE sale_id = ?
		ORDER BY id`), id); err != nil {
		return domain.Sale{}, nil, err
	}
	return s, items, nil
}

// List returns sales oldest first.
func (r *SaleRepo) List(ctx context.Context) ([]domain.Sale, error) {
	var out []domain.Sale
	err := r.db.SelectContext(ctx, &out, `SELECT id, client_name, created_at, total, status FROM sales ORDER BY created_at, id`)
	return out, err
}

// SumBetween totals sales created in [from, to).
func (r *SaleRepo) SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var totals []decimal.Decimal
	err := r.db.SelectContext(ctx, &totals, r.db.Rebind(`SELECT total FROM sales WHERE created_at >= ? AND created_at < ?`), from.UTC(), to.UTC())
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, totals...), nil
}

func (r *SaleRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM sales`)
	return n, err
}
