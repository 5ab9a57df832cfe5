package services

import (
	"context"

	"tienda/internal/domain"
	"tienda/internal/repos"
	"tienda/internal/validate"
)

// CatalogService manages brands, product types and units of measure.
type CatalogService struct {
	Catalog *repos.CatalogRepo
	Store   validate.Store
}

func NewCatalogService(catalog *repos.CatalogRepo, store validate.Store) *CatalogService {
	return &CatalogService{Catalog: catalog, Store: store}
}

func (s *CatalogService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	return s.Catalog.ListBrands(ctx)
}

func (s *CatalogService) GetBrand(ctx context.Context, id int64) (domain.Brand, error) {
	return s.Catalog.GetBrand(ctx, id)
}

func (s *CatalogService) CreateBrand(ctx context.Context, in map[string]string) (domain.Brand, error) {
	return s.saveBrand(ctx, 0, in)
}

func (s *CatalogService) UpdateBrand(ctx context.Context, id int64, in map[string]string) (domain.Brand, error) {
	if _, err := s.Catalog.GetBrand(ctx, id); err != nil {
		return domain.Brand{}, err
	}
	return s.saveBrand(ctx, id, in)
}

func (s *CatalogService) saveBrand(ctx context.Context, id int64, in map[string]string) (domain.Brand, error) {
	res := validate.Check(ctx, s.Store, validate.BrandSchema, in, id)
	if err := res.Err(); err != nil {
		return domain.Brand{}, err
	}
	b := domain.Brand{ID: id, Name: res.String("name")}
	var err error
	if id == 0 {
		err = s.Catalog.CreateBrand(ctx, &b)
	} else {
		err = s.Catalog.UpdateBrand(ctx, &b)
	}
	return b, storeErr(err)
}

func (s *CatalogService) ListTypes(ctx context.Context) ([]domain.ProductType, error) {
	return s.Catalog.ListTypes(ctx)
}

func (s *CatalogService) GetType(ctx context.Context, id int64) (domain.ProductType, error) {
	return s.Catalog.GetType(ctx, id)
}

func (s *CatalogService) CreateType(ctx context.Context, in map[string]string) (domain.ProductType, error) {
	return s.saveType(ctx, 0, in)
}

func (s *CatalogService) UpdateType(ctx context.Context, id int64, in map[string]string) (domain.ProductType, error) {
	if _, err := s.Catalog.GetType(ctx, id); err != nil {
		return domain.ProductType{}, err
	}
	return s.saveType(ctx, id, in)
}

func (s *CatalogService) saveType(ctx context.Context, id int64, in map[string]string) (domain.ProductType, error) {
	res := validate.Check(ctx, s.Store, validate.ProductTypeSchema, in, id)
	if err := res.Err(); err != nil {
		return domain.ProductType{}, err
	}
	t := domain.ProductType{ID: id, Name: res.String("name"), Description: res.String("description")}
	var err error
	if id == 0 {
		err = s.Catalog.CreateType(ctx, &t)
	} else {
		err = s.Catalog.UpdateType(ctx, &t)
	}
	return t, storeErr(err)
}

func (s *CatalogService) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	return s.Catalog.ListUnits(ctx)
}

func (s *CatalogService) GetUnit(ctx context.Context, id int64) (domain.Unit, error) {
	return s.Catalog.GetUnit(ctx, id)
}

func (s *CatalogService) CreateUnit(ctx context.Context, in map[string]string) (domain.Unit, error) {
	return s.saveUnit(ctx, 0, in)
}

func (s *CatalogService) UpdateUnit(ctx context.Context, id int64, in map[string]string) (domain.Unit, error) {
	if _, err := s.Catalog.GetUnit(ctx, id); err != nil {
		return domain.Unit{}, err
	}
	return s.saveUnit(ctx, id, in)
}

func (s *CatalogService) saveUnit(ctx context.Context, id int64, in map[string]string) (domain.Unit, error) {
	res := validate.Check(ctx, s.Store, validate.UnitSchema, in, id)
	if err := res.Err(); err != nil {
		return domain.Unit{}, err
	}
	u := domain.Unit{ID: id, Name: res.String("name"), Abbreviation: res.String("abbreviation")}
	var err error
	if id == 0 {
		err = s.Catalog.CreateUnit(ctx, &u)
	} else {
		err = s.Catalog.UpdateUnit(ctx, &u)
	}
	return u, storeErr(err)
}

// Delete removes a brand, type or unit unless products still use it.
func (s *CatalogService) Delete(ctx context.Context, entity domain.Entity, id int64) error {
	n, err := s.Catalog.CountProducts(ctx, entity, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &domain.DependencyBlockedError{Entity: entity, ID: id, Dependent: domain.EntityProduct, Count: n}
	}
	return s.Catalog.Delete(ctx, entity, id)
}
