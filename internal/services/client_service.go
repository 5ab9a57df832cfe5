package services

import (
	"context"

	"tienda/internal/domain"
	"tienda/internal/repos"
	"tienda/internal/validate"
)

type ClientService struct {
	Clients *repos.ClientRepo
	Store   validate.Store
	Clock   Clock
}

func NewClientService(clients *repos.ClientRepo, store validate.Store) *ClientService {
	return &ClientService{Clients: clients, Store: store}
}

func clientFrom(res validate.Result) domain.Client {
	return domain.Client{
		Name:     res.String("name"),
		Document: res.String("document"),
		Phone:    res.String("phone"),
		Email:    res.String("email"),
		Address:  res.String("address"),
		Status:   res.String("status"),
	}
}

func (s *ClientService) Create(ctx context.Context, in map[string]string) (domain.Client, error) {
	res := validate.Check(ctx, s.Store, validate.ClientSchema, in, 0)
	if err := res.Err(); err != nil {
		return domain.Client{}, err
	}
	c := clientFrom(res)
	c.RegisteredAt = s.Clock.now()
	if err := s.Clients.Create(ctx, &c); err != nil {
		return domain.Client{}, storeErr(err)
	}
	return c, nil
}

// Update re-runs the create rules; the client's own document and email do not
// count as duplicates.
func (s *ClientService) Update(ctx context.Context, id int64, in map[string]string) (domain.Client, error) {
	cur, err := s.Clients.Get(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}
	res := validate.Check(ctx, s.Store, validate.ClientSchema, in, id)
	if err := res.Err(); err != nil {
		return domain.Client{}, err
	}
	c := clientFrom(res)
	c.ID, c.RegisteredAt = id, cur.RegisteredAt
	if err := s.Clients.Update(ctx, &c); err != nil {
		return domain.Client{}, storeErr(err)
	}
	return c, nil
}

func (s *ClientService) Delete(ctx context.Context, id int64) error {
	return s.Clients.Delete(ctx, id)
}

func (s *ClientService) Get(ctx context.Context, id int64) (domain.Client, error) {
	return s.Clients.Get(ctx, id)
}

func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.Clients.List(ctx)
}
