package services

import (
	"context"
	"errors"

	"tienda/internal/domain"
	"tienda/internal/repos"
	"tienda/internal/validate"
)

type PurchaseService struct {
	Purchases *repos.PurchaseRepo
	Admins    *AdminService
	Store     validate.Store
	Clock     Clock
}

func NewPurchaseService(purchases *repos.PurchaseRepo, admins *AdminService, store validate.Store) *PurchaseService {
	return &PurchaseService{Purchases: purchases, Admins: admins, Store: store}
}

// actor resolves the purchase's administrator; an empty store surfaces as a
// field error rather than a new record.
func actor(ctx context.Context, admins *AdminService, res validate.Result, acting int64) (int64, error) {
	id, err := admins.resolveActor(ctx, res.ID("admin_id"), acting)
	if errors.Is(err, domain.ErrNoAdministrators) {
		return 0, domain.FieldError("admin_id", "No administrators available. Register one first.")
	}
	return id, err
}

func (s *PurchaseService) build(ctx context.Context, id int64, in map[string]string, acting int64) (domain.Purchase, error) {
	res := validate.Check(ctx, s.Store, validate.PurchaseSchema, in, id)
	if err := res.Err(); err != nil {
		return domain.Purchase{}, err
	}
	adminID, err := actor(ctx, s.Admins, res, acting)
	if err != nil {
		return domain.Purchase{}, err
	}
	return domain.Purchase{
		ID:          id,
		AdminID:     adminID,
		SupplierID:  res.ID("supplier_id"),
		ProductID:   res.ID("product_id"),
		PurchasedAt: parseDay(res.String("purchased_at"), s.Clock.now()),
		Total:       res.Decimal("total"),
		Active:      res.Bool("active"),
	}, nil
}

// Create records a purchase. acting is the signed-in administrator, 0 if none.
func (s *PurchaseService) Create(ctx context.Context, in map[string]string, acting int64) (domain.Purchase, error) {
	p, err := s.build(ctx, 0, in, acting)
	if err != nil {
		return domain.Purchase{}, err
	}
	if err := s.Purchases.Create(ctx, &p); err != nil {
		return domain.Purchase{}, err
	}
	return p, nil
}

func (s *PurchaseService) Update(ctx context.Context, id int64, in map[string]string, acting int64) (domain.Purchase, error) {
	if _, err := s.Purchases.Get(ctx, id); err != nil {
		return domain.Purchase{}, err
	}
	p, err := s.build(ctx, id, in, acting)
	if err != nil {
		return domain.Purchase{}, err
	}
	if err := s.Purchases.Update(ctx, &p); err != nil {
		return domain.Purchase{}, err
	}
	return p, nil
}

func (s *PurchaseService) Delete(ctx context.Context, id int64) error {
	return s.Purchases.Delete(ctx, id)
}

func (s *PurchaseService) Get(ctx context.Context, id int64) (domain.PurchaseRow, error) {
	return s.Purchases.Get(ctx, id)
}

func (s *PurchaseService) List(ctx context.Context) ([]domain.PurchaseRow, error) {
	return s.Purchases.List(ctx)
}
