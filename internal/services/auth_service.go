package services

import (
	"context"
	"errors"

	"tienda/internal/domain"
	"tienda/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid username or password")

type AuthService struct {
	Admins *repos.AdminRepo
}

// Login checks the credentials and binds the browser session to the
// administrator. login is the username or the email.
func (s *AuthService) Login(ctx context.Context, sid, login, password string) (*domain.Administrator, error) {
	a, err := s.Admins.ByLogin(ctx, login)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Admins.BindSession(ctx, sid, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Admins.UnbindSession(ctx, sid)
}

func (s *AuthService) CurrentAdmin(ctx context.Context, sid string) (*domain.Administrator, error) {
	return s.Admins.SessionAdmin(ctx, sid)
}
