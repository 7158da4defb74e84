package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/shoplist-app/shoplist/internal/models"
	"github.com/shoplist-app/shoplist/internal/version"
)

const itemColumns = `id, version, name, list_id, created_by, modified_by, bought_by, state_changed_by, sort_order`

func scanItem(row interface{ Scan(...any) error }, i *models.ShoppingListItem) error {
	return row.Scan(&i.ID, &i.Version, &i.Name, &i.ListID,
		&i.CreatedBy, &i.ModifiedBy, &i.BoughtBy, &i.StateChangedBy, &i.SortOrder)
}

// AddItem appends an item on behalf of a member. Sort order is the item count
// at insertion time, read inside the same transaction as the insert, and is
// never renumbered afterwards.
func (s *SQLiteStore) AddItem(ctx context.Context, userID, listID string, item *models.ShoppingListItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.Version = version.NewToken()
	item.ListID = listID
	item.CreatedBy = userID
	item.ModifiedBy = userID
	item.StateChangedBy = userID
	item.BoughtBy = nil

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := requireMember(ctx, tx, userID, listID); err != nil {
			return err
		}

		var count int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM shopping_list_items WHERE list_id = ?`, listID,
		).Scan(&count); err != nil {
			return fmt.Errorf("failed to count items: %w", err)
		}
		item.SortOrder = count

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO shopping_list_items (`+itemColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.Version, item.Name, item.ListID,
			item.CreatedBy, item.ModifiedBy, item.BoughtBy, item.StateChangedBy, item.SortOrder,
		); err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
		return bumpList(ctx, tx, listID)
	})
}

// Items returns the list's items sorted by sort order, for members only.
func (s *SQLiteStore) Items(ctx context.Context, userID, listID string) ([]models.ShoppingListItem, error) {
	var items []models.ShoppingListItem
	err := s.inTx(ctx, func(tx *sql.Tx) (err error) {
		if err := requireMember(ctx, tx, userID, listID); err != nil {
			return err
		}
		items, err = itemsOf(ctx, tx, listID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveItem deletes an item by the (list, item, version) triple. A stale
// token and a missing item both leave zero rows affected and are reported
// identically as models.ErrConflict.
func (s *SQLiteStore) RemoveItem(ctx context.Context, userID, listID, itemID, itemVersion string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := requireMember(ctx, tx, userID, listID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`DELETE FROM shopping_list_items WHERE id = ? AND list_id = ? AND version = ?`,
			itemID, listID, itemVersion,
		)
		if err != nil {
			return fmt.Errorf("failed to remove item: %w", err)
		}
		if err := guarded(res); err != nil {
			return err
		}
		return bumpList(ctx, tx, listID)
	})
}

// SetBought marks an unbought item as bought by userID. The guarded UPDATE
// keys on bought_by IS NULL, so buying an already-bought item fails instead
// of silently succeeding.
func (s *SQLiteStore) SetBought(ctx context.Context, userID, listID, itemID string) (*models.ShoppingListItem, error) {
	return s.toggleBought(ctx, userID, listID, itemID,
		`UPDATE shopping_list_items
		 SET version = ?1, bought_by = ?2, modified_by = ?2, state_changed_by = ?2
		 WHERE id = ?3 AND list_id = ?4 AND bought_by IS NULL`,
	)
}

// SetUnbought clears the bought mark, guarded on bought_by being set.
func (s *SQLiteStore) SetUnbought(ctx context.Context, userID, listID, itemID string) (*models.ShoppingListItem, error) {
	return s.toggleBought(ctx, userID, listID, itemID,
		`UPDATE shopping_list_items
		 SET version = ?1, bought_by = NULL, modified_by = ?2, state_changed_by = ?2
		 WHERE id = ?3 AND list_id = ?4 AND bought_by IS NOT NULL`,
	)
}

func (s *SQLiteStore) toggleBought(ctx context.Context, userID, listID, itemID, query string) (*models.ShoppingListItem, error) {
	item := &models.ShoppingListItem{}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := requireMember(ctx, tx, userID, listID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, query,
			version.NewToken(), userID, itemID, listID,
		)
		if err != nil {
			return fmt.Errorf("failed to toggle item: %w", err)
		}
		if err := guarded(res); err != nil {
			return err
		}
		if err := bumpList(ctx, tx, listID); err != nil {
			return err
		}

		err = scanItem(tx.QueryRowContext(ctx,
			`SELECT `+itemColumns+` FROM shopping_list_items WHERE id = ?`, itemID,
		), item)
		if err != nil {
			return fmt.Errorf("failed to reload item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// itemsOf reads a list's items ordered by sort order inside an open
// transaction.
func itemsOf(ctx context.Context, tx *sql.Tx, listID string) ([]models.ShoppingListItem, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT `+itemColumns+`
		 FROM shopping_list_items
		 WHERE list_id = ?
		 ORDER BY sort_order ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []models.ShoppingListItem
	for rows.Next() {
		var i models.ShoppingListItem
		if err := scanItem(rows, &i); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}
