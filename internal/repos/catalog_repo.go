package repos

import (
	"context"

	"tienda/internal/domain"

	"github.com/jmoiron/sqlx"
)

// CatalogRepo stores the three lookup tables products point at.
type CatalogRepo struct{ db *sqlx.DB }

func NewCatalogRepo(db *sqlx.DB) *CatalogRepo { return &CatalogRepo{db: db} }

func (r *CatalogRepo) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	var out []domain.Brand
	err := r.db.SelectContext(ctx, &out, `SELECT id,name FROM brands ORDER BY name`)
	return out, err
}

func (r *CatalogRepo) GetBrand(ctx context.Context, id int64) (domain.Brand, error) {
	var b domain.Brand
	err := r.db.GetContext(ctx, &b, r.db.Rebind(`SELECT id,name FROM brands WHERE id=?`), id)
	return b, notFound(err, domain.EntityBrand, id)
}

func (r *CatalogRepo) CreateBrand(ctx context.Context, b *domain.Brand) error {
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`INSERT INTO brands(name,name_key) VALUES(?,?) RETURNING id`),
		b.Name, domain.NameKey(b.Name)).Scan(&b.ID)
	return conflictOr(err, domain.EntityBrand, unique{"brands.name_key", "name", b.Name})
}

func (r *CatalogRepo) UpdateBrand(ctx context.Context, b *domain.Brand) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE brands SET name=?,name_key=? WHERE id=?`),
		b.Name, domain.NameKey(b.Name), b.ID)
	return conflictOr(affected(res, err, domain.EntityBrand, b.ID), domain.EntityBrand, unique{"brands.name_key", "name", b.Name})
}

func (r *CatalogRepo) ListTypes(ctx context.Context) ([]domain.ProductType, error) {
	var out []domain.ProductType
	err := r.db.SelectContext(ctx, &out, `SELECT id,name,description FROM product_types ORDER BY name`)
	return out, err
}

func (r *CatalogRepo) GetType(ctx context.Context, id int64) (domain.ProductType, error) {
	var t domain.ProductType
	err := r.db.GetContext(ctx, &t, r.db.Rebind(`SELECT id,name,description FROM product_types WHERE id=?`), id)
	return t, notFound(err, domain.EntityProductType, id)
}

func (r *CatalogRepo) CreateType(ctx context.Context, t *domain.ProductType) error {
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`INSERT INTO product_types(name,name_key,description) VALUES(?,?,?) RETURNING id`),
		t.Name, domain.NameKey(t.Name), t.Description).Scan(&t.ID)
	return conflictOr(err, domain.EntityProductType, unique{"product_types.name_key", "name", t.Name})
}

func (r *CatalogRepo) UpdateType(ctx context.Context, t *domain.ProductType) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE product_types SET name=?,name_key=?,description=? WHERE id=?`),
		t.Name, domain.NameKey(t.Name), t.Description, t.ID)
	return conflictOr(affected(res, err, domain.EntityProductType, t.ID), domain.EntityProductType, unique{"product_types.name_key", "name", t.Name})
}

func (r *CatalogRepo) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	var out []domain.Unit
	err := r.db.SelectContext(ctx, &out, `SELECT id,name,abbreviation FROM units ORDER BY name`)
	return out, err
}

func (r *CatalogRepo) GetUnit(ctx context.Context, id int64) (domain.Unit, error) {
	var u domain.Unit
	err := r.db.GetContext(ctx, &u, r.db.Rebind(`SELECT id,name,abbreviation FROM units WHERE id=?`), id)
	return u, notFound(err, domain.EntityUnit, id)
}

func (r *CatalogRepo) CreateUnit(ctx context.Context, u *domain.Unit) error {
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`INSERT INTO units(name,name_key,abbreviation) VALUES(?,?,?) RETURNING id`),
		u.Name, domain.NameKey(u.Name), u.Abbreviation).Scan(&u.ID)
	return conflictOr(err, domain.EntityUnit, unique{"units.name_key", "name", u.Name})
}

func (r *CatalogRepo) UpdateUnit(ctx context.Context, u *domain.Unit) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE units SET name=?,name_key=?,abbreviation=? WHERE id=?`),
		u.Name, domain.NameKey(u.Name), u.Abbreviation, u.ID)
	return conflictOr(affected(res, err, domain.EntityUnit, u.ID), domain.EntityUnit, unique{"units.name_key", "name", u.Name})
}

var productRefColumn = map[domain.Entity]string{
	domain.EntityBrand:       "brand_id",
	domain.EntityProductType: "type_id",
	domain.EntityUnit:        "unit_id",
}

// CountProducts counts the products referencing a brand, type or unit.
func (r *CatalogRepo) CountProducts(ctx context.Context, entity domain.Entity, id int64) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM products WHERE `+productRefColumn[entity]+`=?`), id)
	return n, err
}

// Delete removes a brand, type or unit. The RESTRICT foreign keys still guard
// a product inserted after the caller's check.
func (r *CatalogRepo) Delete(ctx context.Context, entity domain.Entity, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM `+entityTables[entity]+` WHERE id=?`), id)
	if isForeignKeyViolation(err) {
		n, _ := r.CountProducts(ctx, entity, id)
		return &domain.DependencyBlockedError{Entity: entity, ID: id, Dependent: domain.EntityProduct, Count: n}
	}
	return affected(res, err, entity, id)
}
