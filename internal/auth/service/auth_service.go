package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/krib-platform/super-admin-backend/internal/auth"
	"github.com/krib-platform/super-admin-backend/internal/auth/repository"
	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

// ErrInvalidCredentials hides whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService authenticates admins against stored bcrypt hashes and issues
// access tokens.
type AuthService struct {
	admins *repository.AdminRepository
	tokens *auth.TokenManager
}

func NewAuthService(admins *repository.AdminRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{admins: admins, tokens: tokens}
}

// Login verifies the password and returns the admin plus a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AdminUser, string, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(admin)
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

// GetAdmin loads an admin account by id.
func (s *AuthService) GetAdmin(ctx context.Context, id string) (*domain.AdminUser, error) {
	return s.admins.GetByID(ctx, id)
}
