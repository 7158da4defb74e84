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

// UserService manages user accounts: lookups, the user directory used when
// inviting, profile updates and account deletion.
type UserService struct {
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

// ResolveName finds the user whose display name folds to the same normalized
// form as name. This is how invitations address users.
func (s *UserService) ResolveName(ctx context.Context, name string) (*models.User, error) {
	return s.store.GetUserByNormalizedName(ctx, names.Normalize(name))
}

// List returns all registered users, the directory shown when inviting.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

// Update changes the user's display name and password, guarded by the
// version token the caller last read.
func (s *UserService) Update(ctx context.Context, userID, userVersion, name, password string) (user *models.User, err error) {
	defer func() { metrics.Observe("user_update", err) }()

	if !names.ValidUserName(name) {
		return nil, models.ErrInvalidName
	}
	if err = auth.ValidatePassword(password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err = s.store.UpdateUser(ctx, &models.User{
		ID:             userID,
		Version:        userVersion,
		DisplayName:    name,
		NormalizedName: names.Normalize(name),
		PasswordHash:   hash,
	})
	if err != nil {
		if err == models.ErrConflict {
			metrics.Conflicts.WithLabelValues("user_update").Inc()
		}
		slog.Warn("user update failed", "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("user updated", "user_id", userID)
	return user, nil
}

// Delete removes the account with everything it owns: owned lists cascade
// over their items and membership rows, and the user's memberships on other
// lists disappear. Lists the user was merely invited to or a member of are
// otherwise untouched.
func (s *UserService) Delete(ctx context.Context, userID string) (err error) {
	defer func() { metrics.Observe("user_delete", err) }()

	if err = s.store.DeleteUser(ctx, userID); err != nil {
		slog.Warn("user delete failed", "user_id", userID, "error", err)
		return err
	}

	slog.Info("user deleted", "user_id", userID)
	return nil
}
