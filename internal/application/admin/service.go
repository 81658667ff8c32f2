package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/onboarding-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Login(ctx context.Context, req domain.AdminLoginRequest) (string, error)
}

type adminStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

type tokenSigner interface {
	Sign(email, role string) (string, error)
}

type service struct {
	repo   adminStore
	signer tokenSigner
}

func NewService(repo adminStore, signer tokenSigner) Service {
	return &service{repo: repo, signer: signer}
}

// Login checks the operator's password against the ADMIN realm record and
// issues a signed session token. A missing record and a wrong password are
// indistinguishable to the caller.
func (s *service) Login(ctx context.Context, req domain.AdminLoginRequest) (string, error) {
	email := domain.NormalizeEmail(req.Email)
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	role := a.Role
	if role == "" {
		role = domain.RoleAdmin
	}
	return s.signer.Sign(a.Email, role)
}
