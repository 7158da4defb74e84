package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/shoplist-app/shoplist/internal/models"
)

func TestLists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateList makes the owner a member", func(t *testing.T) {
		owner := seedUser(t, store, "Anna")
		list := seedList(t, store, owner.ID, "Groceries")

		if list.ID == "" {
			t.Error("Expected list ID to be generated")
		}
		if list.Version == "" {
			t.Error("Expected version token to be assigned")
		}

		got, err := store.GetList(ctx, owner.ID, list.ID)
		if err != nil {
			t.Fatalf("GetList failed: %v", err)
		}
		if got.Name != "Groceries" || got.OwnerID != owner.ID {
			t.Errorf("Unexpected list: %+v", got)
		}
	})

	t.Run("GetList hides existing lists from non-members", func(t *testing.T) {
		owner := seedUser(t, store, "Ben")
		stranger := seedUser(t, store, "Cleo")
		list := seedList(t, store, owner.ID, "Hidden")

		// Same error for a real list the caller cannot see and for a list
		// that does not exist at all.
		_, err := store.GetList(ctx, stranger.ID, list.ID)
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for non-member, got %v", err)
		}
		_, err = store.GetList(ctx, stranger.ID, "nonexistent-id")
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for missing list, got %v", err)
		}
	})

	t.Run("GetList hides lists from invitees until they accept", func(t *testing.T) {
		owner := seedUser(t, store, "Dora")
		invitee := seedUser(t, store, "Egon")
		list := seedList(t, store, owner.ID, "Pending")

		if err := store.Invite(ctx, owner.ID, invitee.ID, list.ID); err != nil {
			t.Fatalf("Invite failed: %v", err)
		}

		_, err := store.GetList(ctx, invitee.ID, list.ID)
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for invitee, got %v", err)
		}

		if err := store.AcceptInvitation(ctx, invitee.ID, list.ID); err != nil {
			t.Fatalf("AcceptInvitation failed: %v", err)
		}
		if _, err := store.GetList(ctx, invitee.ID, list.ID); err != nil {
			t.Errorf("Expected member to see the list, got %v", err)
		}
	})

	t.Run("GetEnrichedList carries members, invitees and items", func(t *testing.T) {
		owner := seedUser(t, store, "Fred")
		member := seedUser(t, store, "Gina")
		invitee := seedUser(t, store, "Hugo")
		list := seedList(t, store, owner.ID, "Weekend")

		if err := store.Invite(ctx, owner.ID, member.ID, list.ID); err != nil {
			t.Fatalf("Invite failed: %v", err)
		}
		if err := store.AcceptInvitation(ctx, member.ID, list.ID); err != nil {
			t.Fatalf("AcceptInvitation failed: %v", err)
		}
		if err := store.Invite(ctx, owner.ID, invitee.ID, list.ID); err != nil {
			t.Fatalf("Invite failed: %v", err)
		}
		if err := store.AddItem(ctx, member.ID, list.ID, &models.ShoppingListItem{Name: "Eggs"}); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}

		enriched, err := store.GetEnrichedList(ctx, member.ID, list.ID)
		if err != nil {
			t.Fatalf("GetEnrichedList failed: %v", err)
		}
		if len(enriched.Members) != 2 {
			t.Errorf("Expected 2 members, got %d", len(enriched.Members))
		}
		if len(enriched.InvitedUsers) != 1 || enriched.InvitedUsers[0].ID != invitee.ID {
			t.Errorf("Expected Hugo as sole invitee, got %+v", enriched.InvitedUsers)
		}
		if len(enriched.Items) != 1 || enriched.Items[0].Name != "Eggs" {
			t.Errorf("Expected one item Eggs, got %+v", enriched.Items)
		}
	})

	t.Run("RenameList swaps the version token", func(t *testing.T) {
		owner := seedUser(t, store, "Ivan")
		list := seedList(t, store, owner.ID, "Old name")

		renamed, err := store.RenameList(ctx, owner.ID, list.ID, "New name")
		if err != nil {
			t.Fatalf("RenameList failed: %v", err)
		}
		if renamed.Name != "New name" {
			t.Errorf("Name not updated: got %s", renamed.Name)
		}
		if renamed.Version == list.Version {
			t.Error("Expected version token to change")
		}
	})

	t.Run("RenameList distinguishes missing from foreign lists", func(t *testing.T) {
		owner := seedUser(t, store, "Judy")
		other := seedUser(t, store, "Karl")
		list := seedList(t, store, owner.ID, "Judys")

		_, err := store.RenameList(ctx, other.ID, list.ID, "Taken over")
		if !errors.Is(err, models.ErrNotOwner) {
			t.Errorf("Expected ErrNotOwner, got %v", err)
		}
		_, err = store.RenameList(ctx, owner.ID, "nonexistent-id", "Whatever")
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteList returns the snapshot and cascades", func(t *testing.T) {
		owner := seedUser(t, store, "Lena")
		member := seedUser(t, store, "Milo")
		list := seedList(t, store, owner.ID, "Doomed")

		if err := store.Invite(ctx, owner.ID, member.ID, list.ID); err != nil {
			t.Fatalf("Invite failed: %v", err)
		}
		if err := store.AcceptInvitation(ctx, member.ID, list.ID); err != nil {
			t.Fatalf("AcceptInvitation failed: %v", err)
		}
		if err := store.AddItem(ctx, owner.ID, list.ID, &models.ShoppingListItem{Name: "Bread"}); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}

		snapshot, err := store.DeleteList(ctx, owner.ID, list.ID)
		if err != nil {
			t.Fatalf("DeleteList failed: %v", err)
		}
		if snapshot.ID != list.ID || snapshot.Name != "Doomed" {
			t.Errorf("Unexpected snapshot: %+v", snapshot)
		}

		if _, err := store.GetList(ctx, owner.ID, list.ID); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Expected list to be gone, got %v", err)
		}
		memberLists, err := store.ListsMemberOf(ctx, member.ID)
		if err != nil {
			t.Fatalf("ListsMemberOf failed: %v", err)
		}
		for _, l := range memberLists {
			if l.ID == list.ID {
				t.Error("Expected membership rows to be cascaded away")
			}
		}
	})

	t.Run("DeleteList is owner-only", func(t *testing.T) {
		owner := seedUser(t, store, "Nina")
		member := seedUser(t, store, "Otto")
		list := seedList(t, store, owner.ID, "Protected")

		if err := store.Invite(ctx, owner.ID, member.ID, list.ID); err != nil {
			t.Fatalf("Invite failed: %v", err)
		}
		if err := store.AcceptInvitation(ctx, member.ID, list.ID); err != nil {
			t.Fatalf("AcceptInvitation failed: %v", err)
		}

		_, err := store.DeleteList(ctx, member.ID, list.ID)
		if !errors.Is(err, models.ErrNotOwner) {
			t.Errorf("Expected ErrNotOwner, got %v", err)
		}
	})

	t.Run("Ownership and membership queries", func(t *testing.T) {
		owner := seedUser(t, store, "Pia")
		friend := seedUser(t, store, "Quin")
		mine := seedList(t, store, owner.ID, "A mine")
		theirs := seedList(t, store, friend.ID, "B theirs")

		if err := store.Invite(ctx, friend.ID, owner.ID, theirs.ID); err != nil {
			t.Fatalf("Invite failed: %v", err)
		}
		if err := store.AcceptInvitation(ctx, owner.ID, theirs.ID); err != nil {
			t.Fatalf("AcceptInvitation failed: %v", err)
		}

		owned, err := store.ListsOwnedBy(ctx, owner.ID)
		if err != nil {
			t.Fatalf("ListsOwnedBy failed: %v", err)
		}
		if len(owned) != 1 || owned[0].ID != mine.ID {
			t.Errorf("Expected exactly the owned list, got %+v", owned)
		}

		member, err := store.ListsMemberOf(ctx, owner.ID)
		if err != nil {
			t.Fatalf("ListsMemberOf failed: %v", err)
		}
		if len(member) != 2 {
			t.Errorf("Expected 2 member lists, got %d", len(member))
		}
	})
}
