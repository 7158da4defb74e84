package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shoplist-app/shoplist/internal/models"
	"github.com/shoplist-app/shoplist/internal/version"
)

const userColumns = `id, version, display_name, normalized_name, password_hash, created_at`

func scanUser(row interface{ Scan(...any) error }, u *models.User) error {
	return row.Scan(&u.ID, &u.Version, &u.DisplayName, &u.NormalizedName, &u.PasswordHash, &u.CreatedAt)
}

// CreateUser inserts a new user, assigning ID, version and creation time.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Version = version.NewToken()
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Version, user.DisplayName, user.NormalizedName, user.PasswordHash, user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return models.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id,
	), user)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByNormalizedName resolves a user by the folded form of their name.
func (s *SQLiteStore) GetUserByNormalizedName(ctx context.Context, normalized string) (*models.User, error) {
	user := &models.User{}
	err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE normalized_name = ?`, normalized,
	), user)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by name: %w", err)
	}
	return user, nil
}

// ListUsers returns all registered users ordered by display name.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY display_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// NameTaken reports whether any user holds the given normalized name.
func (s *SQLiteStore) NameTaken(ctx context.Context, normalized string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE normalized_name = ?)`, normalized,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check name: %w", err)
	}
	return exists, nil
}

// UpdateUser replaces the mutable user fields, guarded by the version token
// the caller last read.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	newVersion := version.NewToken()
	res, err := s.db.ExecContext(ctx,
		`UPDATE users
		 SET version = ?, display_name = ?, normalized_name = ?, password_hash = ?
		 WHERE id = ? AND version = ?`,
		newVersion, user.DisplayName, user.NormalizedName, user.PasswordHash,
		user.ID, user.Version,
	)
	if isUniqueViolation(err) {
		return nil, models.ErrAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if err := guarded(res); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, user.ID)
}

// DeleteUser removes the account and cascades over everything referencing it:
// each owned list with its items and membership rows, then the user's own
// memberships on other lists, then the user row. One transaction.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			`SELECT id FROM shopping_lists WHERE owner_id = ?`, id,
		)
		if err != nil {
			return fmt.Errorf("failed to list owned lists: %w", err)
		}
		var owned []string
		for rows.Next() {
			var listID string
			if err := rows.Scan(&listID); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan list id: %w", err)
			}
			owned = append(owned, listID)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate owned lists: %w", err)
		}

		for _, listID := range owned {
			if err := deleteListRows(ctx, tx, listID); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM memberships WHERE user_id = ?`, id,
		); err != nil {
			return fmt.Errorf("failed to delete memberships: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if n == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}
