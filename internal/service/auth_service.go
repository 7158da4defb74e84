package service

import (
	"context"
	"log/slog"

	"github.com/shoplist-app/shoplist/internal/auth"
	"github.com/shoplist-app/shoplist/internal/metrics"
	"github.com/shoplist-app/shoplist/internal/models"
	"github.com/shoplist-app/shoplist/internal/names"
	"github.com/shoplist-app/shoplist/internal/storage"
)

// AuthService handles registration and login. It is the only service that
// touches credentials; everything downstream works with resolved user IDs.
type AuthService struct {
	store storage.Store
	jwt   *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(store storage.Store, jwt *auth.JWTManager) *AuthService {
	return &AuthService{store: store, jwt: jwt}
}

// Register creates a new account and returns the user with a session token.
// The display name must fit the user alphabet and fold to a normalized name
// no other user holds.
func (s *AuthService) Register(ctx context.Context, name, password string) (user *models.User, token string, err error) {
	defer func() { metrics.Observe("register", err) }()

	if !names.ValidUserName(name) {
		return nil, "", models.ErrInvalidName
	}
	if err = auth.ValidatePassword(password); err != nil {
		return nil, "", err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user = &models.User{
		DisplayName:    name,
		NormalizedName: names.Normalize(name),
		PasswordHash:   hash,
	}
	if err = s.store.CreateUser(ctx, user); err != nil {
		slog.Warn("registration failed", "error", err)
		return nil, "", err
	}

	token, err = s.jwt.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login verifies the credentials and returns the user with a session token.
// A missing user and a wrong password are reported identically.
func (s *AuthService) Login(ctx context.Context, name, password string) (user *models.User, token string, err error) {
	defer func() { metrics.Observe("login", err) }()

	user, err = s.store.GetUserByNormalizedName(ctx, names.Normalize(name))
	if err != nil {
		return nil, "", auth.ErrInvalidCredentials
	}
	if err = auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, "", err
	}

	token, err = s.jwt.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}
