package services

import (
	"context"

	"tienda/internal/config"
	"tienda/internal/domain"
	"tienda/internal/repos"
	"tienda/internal/validate"

	"golang.org/x/crypto/bcrypt"
)

type AdminService struct {
	Admins *repos.AdminRepo
	Store  validate.Store
	Clock  Clock
	Cost   int // bcrypt cost; 0 means bcrypt.DefaultCost
}

func NewAdminService(admins *repos.AdminRepo, store validate.Store) *AdminService {
	return &AdminService{Admins: admins, Store: store}
}

// Register validates a registration form and stores the administrator with a
// hashed password.
func (s *AdminService) Register(ctx context.Context, in map[string]string) (domain.Administrator, error) {
	res := validate.Check(ctx, s.Store, validate.AdministratorSchema, in, 0)
	if err := res.Err(); err != nil {
		return domain.Administrator{}, err
	}
	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(res.String("password")), cost)
	if err != nil {
		return domain.Administrator{}, err
	}
	a := domain.Administrator{
		Name:         res.String("name"),
		Username:     res.String("username"),
		PasswordHash: string(hash),
		Email:        res.String("email"),
		RegisteredAt: s.Clock.now(),
	}
	if err := s.Admins.Create(ctx, &a); err != nil {
		return domain.Administrator{}, storeErr(err)
	}
	return a, nil
}

func (s *AdminService) List(ctx context.Context) ([]domain.Administrator, error) {
	return s.Admins.List(ctx)
}

// EnsureDefaultAdmin provisions the configured administrator when the store
// has none. It reports whether a record was created.
func (s *AdminService) EnsureDefaultAdmin(ctx context.Context, b config.AdminBootstrap) (bool, error) {
	if !b.Enabled() {
		return false, nil
	}
	n, err := s.Admins.Count(ctx)
	if err != nil || n > 0 {
		return false, err
	}
	_, err = s.Register(ctx, map[string]string{
		"name":             b.Name,
		"username":         b.Username,
		"email":            b.Email,
		"password":         b.Password,
		"password_confirm": b.Password,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// DefaultActor stands in when an operation needs an administrator and none
// was chosen. It never creates one.
func (s *AdminService) DefaultActor(ctx context.Context) (*domain.Administrator, error) {
	a, err := s.Admins.First(ctx)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNoAdministrators
	}
	return a, nil
}

// resolveActor picks the administrator for a write: the explicit choice, then
// the signed-in administrator, then DefaultActor.
func (s *AdminService) resolveActor(ctx context.Context, chosen, acting int64) (int64, error) {
	if chosen > 0 {
		return chosen, nil
	}
	if acting > 0 {
		return acting, nil
	}
	a, err := s.DefaultActor(ctx)
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}
