// Package sqlite provides a SQLite-backed implementation of the storage.Store
// interface. Every public operation runs inside a single transaction; guarded
// writes detect lost races as zero rows affected rather than via pre-checks.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/shoplist-app/shoplist/internal/models"
	"github.com/shoplist-app/shoplist/internal/storage"
	"github.com/shoplist-app/shoplist/internal/version"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Reset drops all tables and re-runs the migrations.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	for _, stmt := range dropAll {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to reset database: %w", err)
		}
	}
	return runMigrations(s.db)
}

// inTx runs fn inside a transaction, rolling back on error.
func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// guarded maps a zero-rows-affected result to models.ErrConflict. This is the
// check-and-swap primitive: the WHERE clause of the statement carried the
// expected version token or pre-state, so touching no rows means the entity
// changed between the caller's read and this write.
func guarded(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return models.ErrConflict
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// listOwner returns the owner of a list, or models.ErrNotFound.
func listOwner(ctx context.Context, tx *sql.Tx, listID string) (string, error) {
	var owner string
	err := tx.QueryRowContext(ctx,
		`SELECT owner_id FROM shopping_lists WHERE id = ?`, listID,
	).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get list owner: %w", err)
	}
	return owner, nil
}

// requireOwner resolves the list and checks that userID owns it.
func requireOwner(ctx context.Context, tx *sql.Tx, userID, listID string) error {
	owner, err := listOwner(ctx, tx, listID)
	if err != nil {
		return err
	}
	if owner != userID {
		return models.ErrNotOwner
	}
	return nil
}

// isMember reports whether userID holds an accepted membership on listID.
func isMember(ctx context.Context, tx *sql.Tx, userID, listID string) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM memberships
			WHERE list_id = ? AND user_id = ? AND state = ?
		)`, listID, userID, models.StateMember,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// requireMember fails with models.ErrNotFound when userID is not an accepted
// member of listID. Not ErrForbidden: a non-member must not learn whether the
// list exists.
func requireMember(ctx context.Context, tx *sql.Tx, userID, listID string) error {
	ok, err := isMember(ctx, tx, userID, listID)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrNotFound
	}
	return nil
}

// userExists reports whether a user row exists for id.
func userExists(ctx context.Context, tx *sql.Tx, id string) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return exists, nil
}

// bumpList swaps the list's version token so that readers can tell something
// on the list changed. Runs inside the mutation's transaction.
func bumpList(ctx context.Context, tx *sql.Tx, listID string) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE shopping_lists SET version = ? WHERE id = ?`,
		version.NewToken(), listID,
	)
	if err != nil {
		return fmt.Errorf("failed to bump list version: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
