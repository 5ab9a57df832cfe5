package services

import (
	"context"

	"tienda/internal/domain"
	"tienda/internal/repos"
	"tienda/internal/validate"

	"github.com/shopspring/decimal"
)

type ProductService struct {
	Products *repos.ProductRepo
	Store    validate.Store
	Clock    Clock
}

func NewProductService(products *repos.ProductRepo, store validate.Store) *ProductService {
	return &ProductService{Products: products, Store: store}
}

func productFrom(res validate.Result) domain.Product {
	return domain.Product{
		Name:    res.String("name"),
		Price:   decimal.NewFromInt(int64(res.Int("price"))),
		Stock:   res.Int("stock"),
		BrandID: res.ID("brand_id"),
		TypeID:  res.ID("type_id"),
		UnitID:  res.ID("unit_id"),
	}
}

func (s *ProductService) Create(ctx context.Context, in map[string]string) (domain.Product, error) {
	res := validate.Check(ctx, s.Store, validate.ProductSchema, in, 0)
	if err := res.Err(); err != nil {
		return domain.Product{}, err
	}
	p := productFrom(res)
	p.CreatedAt = s.Clock.now()
	if err := s.Products.Create(ctx, &p); err != nil {
		return domain.Product{}, storeErr(err)
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, in map[string]string) (domain.Product, error) {
	cur, err := s.Products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	res := validate.Check(ctx, s.Store, validate.ProductSchema, in, id)
	if err := res.Err(); err != nil {
		return domain.Product{}, err
	}
	p := productFrom(res)
	p.ID, p.CreatedAt = id, cur.CreatedAt
	if err := s.Products.Update(ctx, &p); err != nil {
		return domain.Product{}, storeErr(err)
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.Products.Delete(ctx, id)
}

func (s *ProductService) Get(ctx context.Context, id int64) (domain.ProductRow, error) {
	return s.Products.Get(ctx, id)
}

// List returns every product, or those matching q when it is a usable query.
func (s *ProductService) List(ctx context.Context, q string) ([]domain.ProductRow, error) {
	q, ok := validate.Q(q)
	if !ok {
		q = ""
	}
	return s.Products.List(ctx, q)
}

// Availability converts stock into IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *ProductService) Availability(ctx context.Context, id int64) (domain.Availability, error) {
	p, err := s.Products.Get(ctx, id)
	if err != nil {
		return domain.Availability{}, err
	}
	return domain.AvailabilityFor(p.Stock), nil
}
