package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/service-order-api/internal/auth"
	"github.com/spec-kit/service-order-api/internal/config"
	"github.com/spec-kit/service-order-api/internal/domain"
	"github.com/spec-kit/service-order-api/internal/persistence"
	"github.com/spec-kit/service-order-api/internal/repository"
	apperrors "github.com/spec-kit/service-order-api/pkg/util"
)

// The same message covers unknown usernames and wrong passwords so responses
// cannot be used to enumerate accounts.
const invalidCredentialsMessage = "invalid username or password"

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	limiter    *persistence.LoginLimiter
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, limiter *persistence.LoginLimiter) *AuthService {
	return &AuthService{
		users:      users,
		limiter:    limiter,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new user account. Uniqueness of username and email is
// checked in a single query before any hashing or insert happens.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	taken, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflict("username or email already exists", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and issues a bearer token carrying
// {id, username, email}.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if !s.limiter.Allow(ctx, username) {
		return "", nil, apperrors.NewTooManyRequests("too many login attempts, try again later")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, apperrors.NewUnauthorized(invalidCredentialsMessage)
		}
		return "", nil, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", nil, apperrors.NewUnauthorized(invalidCredentialsMessage)
		}
		// A stored hash that cannot be compared is a data-integrity fault,
		// not a credential failure.
		return "", nil, apperrors.NewInternalError(err)
	}

	token, _, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.limiter.Reset(ctx, username)
	return token, user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
