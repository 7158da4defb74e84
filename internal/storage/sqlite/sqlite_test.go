package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shoplist-app/shoplist/internal/models"
	"github.com/shoplist-app/shoplist/internal/names"
)

// newTestStore creates a store backed by a throwaway database file.
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "shoplist-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// seedUser registers a user with a derived normalized name.
func seedUser(t *testing.T, store *SQLiteStore, name string) *models.User {
	t.Helper()

	user := &models.User{
		DisplayName:    name,
		NormalizedName: names.Normalize(name),
		PasswordHash:   "x",
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%q) failed: %v", name, err)
	}
	return user
}

// seedList creates a list owned by ownerID.
func seedList(t *testing.T, store *SQLiteStore, ownerID, name string) *models.ShoppingList {
	t.Helper()

	list := &models.ShoppingList{Name: name, OwnerID: ownerID}
	if err := store.CreateList(context.Background(), list); err != nil {
		t.Fatalf("CreateList(%q) failed: %v", name, err)
	}
	return list
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser assigns ID, version and creation time", func(t *testing.T) {
		user := seedUser(t, store, "Alice")

		if user.ID == "" {
			t.Error("Expected user ID to be generated")
		}
		if user.Version == "" {
			t.Error("Expected version token to be assigned")
		}
		if user.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("CreateUser rejects a taken normalized name", func(t *testing.T) {
		seedUser(t, store, "Bob")

		// Folds to the same normalized form as "Bob".
		dup := &models.User{
			DisplayName:    "BÖB",
			NormalizedName: names.Normalize("BÖB"),
			PasswordHash:   "x",
		}
		err := store.CreateUser(ctx, dup)
		if !errors.Is(err, models.ErrAlreadyExists) {
			t.Errorf("Expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("GetUser returns ErrNotFound for unknown ID", func(t *testing.T) {
		_, err := store.GetUser(ctx, "nonexistent-id")
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetUserByNormalizedName resolves folded names", func(t *testing.T) {
		created := seedUser(t, store, "Müller")

		found, err := store.GetUserByNormalizedName(ctx, names.Normalize("MULLER"))
		if err != nil {
			t.Fatalf("GetUserByNormalizedName failed: %v", err)
		}
		if found.ID != created.ID {
			t.Errorf("Resolved wrong user: got %s, want %s", found.ID, created.ID)
		}
	})

	t.Run("NameTaken reflects the registry", func(t *testing.T) {
		seedUser(t, store, "Carol")

		taken, err := store.NameTaken(ctx, names.Normalize("carol"))
		if err != nil {
			t.Fatalf("NameTaken failed: %v", err)
		}
		if !taken {
			t.Error("Expected carol to be taken")
		}

		taken, err = store.NameTaken(ctx, names.Normalize("nobody"))
		if err != nil {
			t.Fatalf("NameTaken failed: %v", err)
		}
		if taken {
			t.Error("Expected nobody to be free")
		}
	})

	t.Run("UpdateUser swaps the version token", func(t *testing.T) {
		user := seedUser(t, store, "Dave")
		oldVersion := user.Version

		updated, err := store.UpdateUser(ctx, &models.User{
			ID:             user.ID,
			Version:        user.Version,
			DisplayName:    "David",
			NormalizedName: names.Normalize("David"),
			PasswordHash:   "y",
		})
		if err != nil {
			t.Fatalf("UpdateUser failed: %v", err)
		}
		if updated.DisplayName != "David" {
			t.Errorf("DisplayName not updated: got %s", updated.DisplayName)
		}
		if updated.Version == oldVersion {
			t.Error("Expected version token to change")
		}
	})

	t.Run("UpdateUser with stale version returns ErrConflict", func(t *testing.T) {
		user := seedUser(t, store, "Erin")

		_, err := store.UpdateUser(ctx, &models.User{
			ID:             user.ID,
			Version:        "stale-token",
			DisplayName:    "Erin2",
			NormalizedName: names.Normalize("Erin2"),
			PasswordHash:   "y",
		})
		if !errors.Is(err, models.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("DeleteUser cascades over owned lists only", func(t *testing.T) {
		owner := seedUser(t, store, "Frank")
		member := seedUser(t, store, "Grace")

		// Frank owns a list Grace belongs to; Grace owns her own list that
		// Frank belongs to.
		franks := seedList(t, store, owner.ID, "Franks list")
		graces := seedList(t, store, member.ID, "Graces list")

		for _, step := range []struct {
			ownerID, targetID, listID string
		}{
			{owner.ID, member.ID, franks.ID},
			{member.ID, owner.ID, graces.ID},
		} {
			if err := store.Invite(ctx, step.ownerID, step.targetID, step.listID); err != nil {
				t.Fatalf("Invite failed: %v", err)
			}
			if err := store.AcceptInvitation(ctx, step.targetID, step.listID); err != nil {
				t.Fatalf("AcceptInvitation failed: %v", err)
			}
		}
		if err := store.AddItem(ctx, owner.ID, franks.ID, &models.ShoppingListItem{Name: "Milk"}); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}

		if err := store.DeleteUser(ctx, owner.ID); err != nil {
			t.Fatalf("DeleteUser failed: %v", err)
		}

		// Frank, his list and his membership on Grace's list are gone.
		if _, err := store.GetUser(ctx, owner.ID); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Expected deleted user lookup to fail with ErrNotFound, got %v", err)
		}
		if _, err := store.GetList(ctx, member.ID, franks.ID); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Expected Franks list to be gone, got %v", err)
		}
		members, err := store.Members(ctx, graces.ID)
		if err != nil {
			t.Fatalf("Members failed: %v", err)
		}
		if len(members) != 1 || members[0].ID != member.ID {
			t.Errorf("Expected Grace to be the sole member of her list, got %d members", len(members))
		}

		// Grace's list itself survives.
		if _, err := store.GetList(ctx, member.ID, graces.ID); err != nil {
			t.Errorf("Expected Graces list to survive, got %v", err)
		}
	})

	t.Run("DeleteUser returns ErrNotFound for unknown ID", func(t *testing.T) {
		err := store.DeleteUser(ctx, "nonexistent-id")
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}
