// Package service implements the operation surface of the collaboration
// engine: thin orchestration over storage.Store with input validation,
// structured logging and metrics. All authorization and concurrency
// invariants live in the store's transactions.
package service

import (
	"context"
	"log/slog"

	"github.com/shoplist-app/shoplist/internal/metrics"
	"github.com/shoplist-app/shoplist/internal/models"
	"github.com/shoplist-app/shoplist/internal/names"
	"github.com/shoplist-app/shoplist/internal/storage"
)

// ListService manages shopping lists and their items.
type ListService struct {
	store storage.Store
}

// NewListService creates a new ListService with the given storage backend.
func NewListService(store storage.Store) *ListService {
	return &ListService{store: store}
}

// Create makes a new list owned by ownerID, with the owner as its sole,
// pre-accepted member.
func (s *ListService) Create(ctx context.Context, ownerID, name string) (list *models.ShoppingList, err error) {
	defer func() { metrics.Observe("list_create", err) }()

	if !names.ValidListName(name) {
		return nil, models.ErrInvalidName
	}

	list = &models.ShoppingList{Name: name, OwnerID: ownerID}
	if err = s.store.CreateList(ctx, list); err != nil {
		slog.Error("list create failed", "owner_id", ownerID, "error", err)
		return nil, err
	}

	slog.Info("list created", "list_id", list.ID, "owner_id", ownerID)
	return list, nil
}

// Rename sets a new name on the list. Owner-only.
func (s *ListService) Rename(ctx context.Context, ownerID, listID, name string) (list *models.ShoppingList, err error) {
	defer func() { metrics.Observe("list_rename", err) }()

	if !names.ValidListName(name) {
		return nil, models.ErrInvalidName
	}

	list, err = s.store.RenameList(ctx, ownerID, listID, name)
	if err != nil {
		slog.Warn("list rename failed", "list_id", listID, "user_id", ownerID, "error", err)
		return nil, err
	}

	slog.Info("list renamed", "list_id", listID, "user_id", ownerID)
	return list, nil
}

// Delete removes the list with everything on it and returns the pre-deletion
// snapshot. Owner-only.
func (s *ListService) Delete(ctx context.Context, ownerID, listID string) (list *models.ShoppingList, err error) {
	defer func() { metrics.Observe("list_delete", err) }()

	list, err = s.store.DeleteList(ctx, ownerID, listID)
	if err != nil {
		slog.Warn("list delete failed", "list_id", listID, "user_id", ownerID, "error", err)
		return nil, err
	}

	slog.Info("list deleted", "list_id", listID, "user_id", ownerID)
	return list, nil
}

// Get retrieves a list for an accepted member.
func (s *ListService) Get(ctx context.Context, userID, listID string) (*models.ShoppingList, error) {
	return s.store.GetList(ctx, userID, listID)
}

// GetEnriched retrieves a list with members, invitees and ordered items.
func (s *ListService) GetEnriched(ctx context.Context, userID, listID string) (*models.EnrichedShoppingList, error) {
	return s.store.GetEnrichedList(ctx, userID, listID)
}

// OwnLists returns the lists the user owns.
func (s *ListService) OwnLists(ctx context.Context, userID string) ([]models.ShoppingList, error) {
	return s.store.ListsOwnedBy(ctx, userID)
}

// MemberLists returns the lists the user is an accepted member of.
func (s *ListService) MemberLists(ctx context.Context, userID string) ([]models.ShoppingList, error) {
	return s.store.ListsMemberOf(ctx, userID)
}

// AddItem appends a new item to the list on behalf of a member.
func (s *ListService) AddItem(ctx context.Context, userID, listID, name string) (item *models.ShoppingListItem, err error) {
	defer func() { metrics.Observe("item_add", err) }()

	if !names.ValidListName(name) {
		return nil, models.ErrInvalidName
	}

	item = &models.ShoppingListItem{Name: name}
	if err = s.store.AddItem(ctx, userID, listID, item); err != nil {
		slog.Warn("item add failed", "list_id", listID, "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("item added", "item_id", item.ID, "list_id", listID, "user_id", userID)
	return item, nil
}

// Items returns the list's items, sort order ascending.
func (s *ListService) Items(ctx context.Context, userID, listID string) ([]models.ShoppingListItem, error) {
	return s.store.Items(ctx, userID, listID)
}

// RemoveItem deletes an item, guarded by the version token the caller last
// read.
func (s *ListService) RemoveItem(ctx context.Context, userID, listID, itemID, itemVersion string) (err error) {
	defer func() { metrics.Observe("item_remove", err) }()

	if err = s.store.RemoveItem(ctx, userID, listID, itemID, itemVersion); err != nil {
		if err == models.ErrConflict {
			metrics.Conflicts.WithLabelValues("item_remove").Inc()
		}
		slog.Warn("item remove failed", "item_id", itemID, "list_id", listID, "user_id", userID, "error", err)
		return err
	}

	slog.Info("item removed", "item_id", itemID, "list_id", listID, "user_id", userID)
	return nil
}

// SetBought marks an unbought item as bought by the acting member.
func (s *ListService) SetBought(ctx context.Context, userID, listID, itemID string) (item *models.ShoppingListItem, err error) {
	defer func() { metrics.Observe("item_set_bought", err) }()

	item, err = s.store.SetBought(ctx, userID, listID, itemID)
	if err != nil {
		if err == models.ErrConflict {
			metrics.Conflicts.WithLabelValues("item_set_bought").Inc()
		}
		slog.Warn("set bought failed", "item_id", itemID, "list_id", listID, "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("item bought", "item_id", itemID, "list_id", listID, "user_id", userID)
	return item, nil
}

// SetUnbought clears the bought mark on a bought item.
func (s *ListService) SetUnbought(ctx context.Context, userID, listID, itemID string) (item *models.ShoppingListItem, err error) {
	defer func() { metrics.Observe("item_set_unbought", err) }()

	item, err = s.store.SetUnbought(ctx, userID, listID, itemID)
	if err != nil {
		if err == models.ErrConflict {
			metrics.Conflicts.WithLabelValues("item_set_unbought").Inc()
		}
		slog.Warn("set unbought failed", "item_id", itemID, "list_id", listID, "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("item unbought", "item_id", itemID, "list_id", listID, "user_id", userID)
	return item, nil
}
