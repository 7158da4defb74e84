package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shoplist-app/shoplist/internal/models"
	"github.com/shoplist-app/shoplist/internal/version"
)

const listColumns = `id, version, name, owner_id`

func scanList(row interface{ Scan(...any) error }, l *models.ShoppingList) error {
	return row.Scan(&l.ID, &l.Version, &l.Name, &l.OwnerID)
}

// CreateList inserts the list row and the owner's accepted membership in one
// transaction, so a list without its owner-membership is never observable.
func (s *SQLiteStore) CreateList(ctx context.Context, list *models.ShoppingList) error {
	if list.ID == "" {
		list.ID = uuid.NewString()
	}
	list.Version = version.NewToken()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO shopping_lists (`+listColumns+`) VALUES (?, ?, ?, ?)`,
			list.ID, list.Version, list.Name, list.OwnerID,
		); err != nil {
			return fmt.Errorf("failed to insert list: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO memberships (list_id, user_id, state) VALUES (?, ?, ?)`,
			list.ID, list.OwnerID, models.StateMember,
		); err != nil {
			return fmt.Errorf("failed to insert owner membership: %w", err)
		}
		return nil
	})
}

// GetList retrieves a list visible to userID. The membership join makes a
// missing list and an unauthorized one indistinguishable.
func (s *SQLiteStore) GetList(ctx context.Context, userID, listID string) (*models.ShoppingList, error) {
	list := &models.ShoppingList{}
	err := scanList(s.db.QueryRowContext(ctx,
		`SELECT l.id, l.version, l.name, l.owner_id
		 FROM shopping_lists l
		 JOIN memberships m ON m.list_id = l.id
		 WHERE l.id = ? AND m.user_id = ? AND m.state = ?`,
		listID, userID, models.StateMember,
	), list)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	return list, nil
}

// GetEnrichedList assembles the read-model: the list plus members, pending
// invitees and ordered items, all read in one transaction.
func (s *SQLiteStore) GetEnrichedList(ctx context.Context, userID, listID string) (*models.EnrichedShoppingList, error) {
	enriched := &models.EnrichedShoppingList{}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		err := scanList(tx.QueryRowContext(ctx,
			`SELECT l.id, l.version, l.name, l.owner_id
			 FROM shopping_lists l
			 JOIN memberships m ON m.list_id = l.id
			 WHERE l.id = ? AND m.user_id = ? AND m.state = ?`,
			listID, userID, models.StateMember,
		), &enriched.ShoppingList)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get list: %w", err)
		}

		if enriched.Members, err = usersInState(ctx, tx, listID, models.StateMember); err != nil {
			return err
		}
		if enriched.InvitedUsers, err = usersInState(ctx, tx, listID, models.StateInvited); err != nil {
			return err
		}
		if enriched.Items, err = itemsOf(ctx, tx, listID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return enriched, nil
}

// ListsOwnedBy returns the lists owned by userID.
func (s *SQLiteStore) ListsOwnedBy(ctx context.Context, userID string) ([]models.ShoppingList, error) {
	return s.queryLists(ctx,
		`SELECT `+listColumns+` FROM shopping_lists WHERE owner_id = ? ORDER BY name`,
		userID,
	)
}

// ListsMemberOf returns the lists userID holds an accepted membership on.
func (s *SQLiteStore) ListsMemberOf(ctx context.Context, userID string) ([]models.ShoppingList, error) {
	return s.queryLists(ctx,
		`SELECT l.id, l.version, l.name, l.owner_id
		 FROM shopping_lists l
		 JOIN memberships m ON m.list_id = l.id
		 WHERE m.user_id = ? AND m.state = ?
		 ORDER BY l.name`,
		userID, models.StateMember,
	)
}

// InvitationsFor returns the lists userID is invited to but has not accepted.
func (s *SQLiteStore) InvitationsFor(ctx context.Context, userID string) ([]models.ShoppingList, error) {
	return s.queryLists(ctx,
		`SELECT l.id, l.version, l.name, l.owner_id
		 FROM shopping_lists l
		 JOIN memberships m ON m.list_id = l.id
		 WHERE m.user_id = ? AND m.state = ?
		 ORDER BY l.name`,
		userID, models.StateInvited,
	)
}

func (s *SQLiteStore) queryLists(ctx context.Context, query string, args ...any) ([]models.ShoppingList, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	var lists []models.ShoppingList
	for rows.Next() {
		var l models.ShoppingList
		if err := scanList(rows, &l); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lists: %w", err)
	}
	return lists, nil
}

// RenameList sets a new name and swaps the version token. Owner-only; the
// guarded UPDATE keys on (id, owner_id) and the follow-up lookup tells a
// missing list apart from one the caller doesn't own.
func (s *SQLiteStore) RenameList(ctx context.Context, ownerID, listID, name string) (*models.ShoppingList, error) {
	list := &models.ShoppingList{}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE shopping_lists SET version = ?, name = ? WHERE id = ? AND owner_id = ?`,
			version.NewToken(), name, listID, ownerID,
		)
		if err != nil {
			return fmt.Errorf("failed to rename list: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if n == 0 {
			if _, err := listOwner(ctx, tx, listID); err != nil {
				return err
			}
			return models.ErrNotOwner
		}

		err = scanList(tx.QueryRowContext(ctx,
			`SELECT `+listColumns+` FROM shopping_lists WHERE id = ?`, listID,
		), list)
		if err != nil {
			return fmt.Errorf("failed to reload list: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteList removes the list with all its items and membership rows in one
// transaction and returns the pre-deletion snapshot. Owner-only.
func (s *SQLiteStore) DeleteList(ctx context.Context, ownerID, listID string) (*models.ShoppingList, error) {
	snapshot := &models.ShoppingList{}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		err := scanList(tx.QueryRowContext(ctx,
			`SELECT `+listColumns+` FROM shopping_lists WHERE id = ?`, listID,
		), snapshot)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get list: %w", err)
		}
		if snapshot.OwnerID != ownerID {
			return models.ErrNotOwner
		}
		return deleteListRows(ctx, tx, listID)
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// deleteListRows cascades over a single list inside an open transaction.
// Order matters for referential integrity: items, then memberships, then the
// list row.
func deleteListRows(ctx context.Context, tx *sql.Tx, listID string) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM shopping_list_items WHERE list_id = ?`, listID,
	); err != nil {
		return fmt.Errorf("failed to delete list items: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM memberships WHERE list_id = ?`, listID,
	); err != nil {
		return fmt.Errorf("failed to delete list memberships: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM shopping_lists WHERE id = ?`, listID,
	); err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return nil
}
