package services

import (
	"context"

	"tienda/internal/domain"
	"tienda/internal/repos"
	"tienda/internal/validate"
)

type SupplierService struct {
	Suppliers *repos.SupplierRepo
	Store     validate.Store
	Clock     Clock
}

func NewSupplierService(suppliers *repos.SupplierRepo, store validate.Store) *SupplierService {
	return &SupplierService{Suppliers: suppliers, Store: store}
}

func supplierFrom(res validate.Result) domain.Supplier {
	return domain.Supplier{
		Name:  res.String("name"),
		Phone: res.String("phone"),
		Email: res.String("email"),
		Ships: res.Bool("ships"),
	}
}

func (s *SupplierService) Create(ctx context.Context, in map[string]string) (domain.Supplier, error) {
	res := validate.Check(ctx, s.Store, validate.SupplierSchema, in, 0)
	if err := res.Err(); err != nil {
		return domain.Supplier{}, err
	}
	sup := supplierFrom(res)
	sup.RegisteredAt = s.Clock.now()
	if err := s.Suppliers.Create(ctx, &sup); err != nil {
		return domain.Supplier{}, storeErr(err)
	}
	return sup, nil
}

func (s *SupplierService) Update(ctx context.Context, id int64, in map[string]string) (domain.Supplier, error) {
	cur, err := s.Suppliers.Get(ctx, id)
	if err != nil {
		return domain.Supplier{}, err
	}
	res := validate.Check(ctx, s.Store, validate.SupplierSchema, in, id)
	if err := res.Err(); err != nil {
		return domain.Supplier{}, err
	}
	sup := supplierFrom(res)
	sup.ID, sup.RegisteredAt = id, cur.RegisteredAt
	if err := s.Suppliers.Update(ctx, &sup); err != nil {
		return domain.Supplier{}, storeErr(err)
	}
	return sup, nil
}

func (s *SupplierService) Delete(ctx context.Context, id int64) error {
	return s.Suppliers.Delete(ctx, id)
}

func (s *SupplierService) Get(ctx context.Context, id int64) (domain.Supplier, error) {
	return s.Suppliers.Get(ctx, id)
}

func (s *SupplierService) List(ctx context.Context) ([]domain.Supplier, error) {
	return s.Suppliers.List(ctx)
}
