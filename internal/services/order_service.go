package services

import (
	"context"

	"tienda/internal/domain"
	"tienda/internal/repos"
	"tienda/internal/validate"
)

type OrderService struct {
	Orders *repos.OrderRepo
	Admins *AdminService
	Store  validate.Store
	Clock  Clock
}

func NewOrderService(orders *repos.OrderRepo, admins *AdminService, store validate.Store) *OrderService {
	return &OrderService{Orders: orders, Admins: admins, Store: store}
}

// Create records an order for a client. The administrator falls back the
// same way purchases do.
func (s *OrderService) Create(ctx context.Context, in map[string]string, acting int64) (domain.Order, error) {
	res := validate.Check(ctx, s.Store, validate.OrderSchema, in, 0)
	if err := res.Err(); err != nil {
		return domain.Order{}, err
	}
	adminID, err := actor(ctx, s.Admins, res, acting)
	if err != nil {
		return domain.Order{}, err
	}
	o := domain.Order{
		AdminID:   adminID,
		ClientID:  res.ID("client_id"),
		OrderedAt: parseDay(res.String("ordered_at"), s.Clock.now()),
		Status:    res.String("status"),
		Total:     res.Decimal("total"),
	}
	if err := s.Orders.Create(ctx, &o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int64, in map[string]string) error {
	res := validate.Check(ctx, s.Store, validate.OrderStatusSchema, in, id)
	if err := res.Err(); err != nil {
		return err
	}
	return s.Orders.UpdateStatus(ctx, id, res.String("status"))
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	return s.Orders.Delete(ctx, id)
}

func (s *OrderService) Get(ctx context.Context, id int64) (domain.OrderRow, error) {
	return s.Orders.Get(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]domain.OrderRow, error) {
	return s.Orders.ListLatest(ctx, 100)
}
