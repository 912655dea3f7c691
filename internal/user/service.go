package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"hangwa-be/internal/logger"

	"go.uber.org/zap"
)

const minPasswordLength = 8

type Service interface {
	Register(ctx context.Context, username, password string, role Role) (User, error)
	Login(ctx context.Context, username, password string) (string, User, error)
}

type service struct {
	repo   Repository
	tokens *TokenManager
}

func NewService(repo Repository, tokens *TokenManager) Service {
	return &service{repo: repo, tokens: tokens}
}

// Register creates an operator account. Storefront customers never have accounts.
func (s *service) Register(ctx context.Context, username, password string, role Role) (User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, ErrInvalidCredentials
	}
	if !role.Valid() {
		return User{}, ErrInvalidRole
	}
	if len(password) < minPasswordLength {
		return User{}, ErrWeakPassword
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return User{}, err
	}

	u, err := s.repo.Create(ctx, username, hashed, role)
	if err != nil {
		return User{}, err
	}

	log.Info("operator registered",
		zap.Uint("new_user_id", u.ID),
		zap.String("username", u.Username),
		zap.String("new_role", string(u.Role)),
	)
	return u, nil
}

func (s *service) Login(ctx context.Context, username, password string) (string, User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("username", username),
	)

	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn("login for unknown username")
		return "", User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Error("failed to load user", zap.Error(err))
		return "", User{}, err
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		log.Warn("password mismatch")
		return "", User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u)
	if err != nil {
		log.Error("failed to generate jwt", zap.Error(err))
		return "", User{}, err
	}

	log.Info("login succeeded", zap.Uint("user_id", u.ID))
	return token, u, nil
}
