package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/shoplist-app/shoplist/internal/models"
)

func TestItems(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// join makes target an accepted member of list.
	join := func(t *testing.T, ownerID, targetID, listID string) {
		t.Helper()
		if err := store.Invite(ctx, ownerID, targetID, listID); err != nil {
			t.Fatalf("Invite failed: %v", err)
		}
		if err := store.AcceptInvitation(ctx, targetID, listID); err != nil {
			t.Fatalf("AcceptInvitation failed: %v", err)
		}
	}

	t.Run("AddItem stamps audit fields and sort order", func(t *testing.T) {
		owner := seedUser(t, store, "Ada")
		list := seedList(t, store, owner.ID, "Pantry")

		for i, name := range []string{"Milk", "Eggs", "Flour"} {
			item := &models.ShoppingListItem{Name: name}
			if err := store.AddItem(ctx, owner.ID, list.ID, item); err != nil {
				t.Fatalf("AddItem(%q) failed: %v", name, err)
			}
			if item.SortOrder != i {
				t.Errorf("SortOrder mismatch for %q: got %d, want %d", name, item.SortOrder, i)
			}
			if item.CreatedBy != owner.ID || item.ModifiedBy != owner.ID {
				t.Errorf("Audit fields not stamped: %+v", item)
			}
			if item.Bought() {
				t.Errorf("New item %q unexpectedly bought", name)
			}
		}

		items, err := store.Items(ctx, owner.ID, list.ID)
		if err != nil {
			t.Fatalf("Items failed: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("Expected 3 items, got %d", len(items))
		}
		for i, want := range []string{"Milk", "Eggs", "Flour"} {
			if items[i].Name != want {
				t.Errorf("Item %d: got %s, want %s", i, items[i].Name, want)
			}
		}
	})

	t.Run("AddItem bumps the list version", func(t *testing.T) {
		owner := seedUser(t, store, "Bela")
		list := seedList(t, store, owner.ID, "Bumped")

		if err := store.AddItem(ctx, owner.ID, list.ID, &models.ShoppingListItem{Name: "Tea"}); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
		current, err := store.GetList(ctx, owner.ID, list.ID)
		if err != nil {
			t.Fatalf("GetList failed: %v", err)
		}
		if current.Version == list.Version {
			t.Error("Expected list version to change after AddItem")
		}
	})

	t.Run("Item operations are hidden from non-members", func(t *testing.T) {
		owner := seedUser(t, store, "Carl")
		stranger := seedUser(t, store, "Dana")
		list := seedList(t, store, owner.ID, "Walled")

		err := store.AddItem(ctx, stranger.ID, list.ID, &models.ShoppingListItem{Name: "Spy"})
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for non-member AddItem, got %v", err)
		}
		if _, err := store.Items(ctx, stranger.ID, list.ID); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for non-member Items, got %v", err)
		}
	})

	t.Run("RemoveItem leaves sort order gaps", func(t *testing.T) {
		owner := seedUser(t, store, "Elif")
		list := seedList(t, store, owner.ID, "Gappy")

		var middle *models.ShoppingListItem
		for _, name := range []string{"One", "Two", "Three"} {
			item := &models.ShoppingListItem{Name: name}
			if err := store.AddItem(ctx, owner.ID, list.ID, item); err != nil {
				t.Fatalf("AddItem failed: %v", err)
			}
			if name == "Two" {
				middle = item
			}
		}

		if err := store.RemoveItem(ctx, owner.ID, list.ID, middle.ID, middle.Version); err != nil {
			t.Fatalf("RemoveItem failed: %v", err)
		}

		items, err := store.Items(ctx, owner.ID, list.ID)
		if err != nil {
			t.Fatalf("Items failed: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(items))
		}
		if items[0].SortOrder != 0 || items[1].SortOrder != 2 {
			t.Errorf("Expected sort orders 0 and 2, got %d and %d", items[0].SortOrder, items[1].SortOrder)
		}
	})

	t.Run("RemoveItem with a stale version loses the race", func(t *testing.T) {
		owner := seedUser(t, store, "Fritz")
		member := seedUser(t, store, "Gida")
		list := seedList(t, store, owner.ID, "Raced")
		join(t, owner.ID, member.ID, list.ID)

		item := &models.ShoppingListItem{Name: "Contested"}
		if err := store.AddItem(ctx, owner.ID, list.ID, item); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
		stale := item.Version

		// The member buys the item first, swapping its version.
		if _, err := store.SetBought(ctx, member.ID, list.ID, item.ID); err != nil {
			t.Fatalf("SetBought failed: %v", err)
		}

		if err := store.RemoveItem(ctx, owner.ID, list.ID, item.ID, stale); !errors.Is(err, models.ErrConflict) {
			t.Errorf("Expected ErrConflict for stale removal, got %v", err)
		}

		// With the fresh token the removal goes through.
		items, err := store.Items(ctx, owner.ID, list.ID)
		if err != nil {
			t.Fatalf("Items failed: %v", err)
		}
		if err := store.RemoveItem(ctx, owner.ID, list.ID, item.ID, items[0].Version); err != nil {
			t.Errorf("Expected fresh removal to succeed, got %v", err)
		}
	})

	t.Run("SetBought and SetUnbought flip the mark once", func(t *testing.T) {
		owner := seedUser(t, store, "Hilda")
		list := seedList(t, store, owner.ID, "Checked")

		item := &models.ShoppingListItem{Name: "Butter"}
		if err := store.AddItem(ctx, owner.ID, list.ID, item); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}

		bought, err := store.SetBought(ctx, owner.ID, list.ID, item.ID)
		if err != nil {
			t.Fatalf("SetBought failed: %v", err)
		}
		if !bought.Bought() || *bought.BoughtBy != owner.ID {
			t.Errorf("Expected item bought by owner, got %+v", bought)
		}
		if bought.Version == item.Version {
			t.Error("Expected item version to change on SetBought")
		}

		if _, err := store.SetBought(ctx, owner.ID, list.ID, item.ID); !errors.Is(err, models.ErrConflict) {
			t.Errorf("Expected ErrConflict for double SetBought, got %v", err)
		}

		unbought, err := store.SetUnbought(ctx, owner.ID, list.ID, item.ID)
		if err != nil {
			t.Fatalf("SetUnbought failed: %v", err)
		}
		if unbought.Bought() {
			t.Errorf("Expected item unbought, got %+v", unbought)
		}

		if _, err := store.SetUnbought(ctx, owner.ID, list.ID, item.ID); !errors.Is(err, models.ErrConflict) {
			t.Errorf("Expected ErrConflict for double SetUnbought, got %v", err)
		}
	})

	t.Run("SetBought on a missing item loses the race", func(t *testing.T) {
		owner := seedUser(t, store, "Ingo")
		list := seedList(t, store, owner.ID, "Empty")

		if _, err := store.SetBought(ctx, owner.ID, list.ID, "nonexistent-id"); !errors.Is(err, models.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})
}
