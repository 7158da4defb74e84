// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/shoplist-app/shoplist/internal/models"
)

// Store defines the persistence operations of the collaboration engine.
// Every method runs as one atomic unit of work: multi-step mutations (cascade
// deletes, list creation with the owner's membership) either apply fully or
// not at all, and each member-visible mutation bumps the parent list's
// version token inside the same unit.
//
// Guarded writes signal a lost race with models.ErrConflict, detected as zero
// rows affected by the mutation itself rather than by a pre-check, so there is
// no window between check and act. Authorization is resolved inside the same
// unit of work before any mutating statement executes.
type Store interface {
	// CreateUser persists a new user. The caller provides the display name,
	// normalized name and password hash; ID, version and creation time are
	// assigned by the store. Fails with models.ErrAlreadyExists when another
	// user holds the same normalized name.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID, or models.ErrNotFound.
	GetUser(ctx context.Context, id string) (*models.User, error)

	// GetUserByNormalizedName resolves a user by the folded form of their
	// display name, or models.ErrNotFound.
	GetUserByNormalizedName(ctx context.Context, normalized string) (*models.User, error)

	// ListUsers returns all registered users, ordered by display name.
	ListUsers(ctx context.Context) ([]models.User, error)

	// NameTaken reports whether any user holds the given normalized name.
	NameTaken(ctx context.Context, normalized string) (bool, error)

	// UpdateUser replaces the user's display name, normalized name and
	// password hash, guarded by the version token carried on user. Returns
	// the refreshed record, models.ErrConflict on a stale token, or
	// models.ErrAlreadyExists when the new normalized name is taken.
	UpdateUser(ctx context.Context, user *models.User) (*models.User, error)

	// DeleteUser removes an account and everything hanging off it: each owned
	// list with its items and membership rows, then the user's memberships on
	// other lists, then the user row. One transaction, all or nothing.
	DeleteUser(ctx context.Context, id string) error

	// CreateList persists a new list together with the owner's accepted
	// membership. A list without its owner-membership is never observable.
	// ID and version are assigned by the store.
	CreateList(ctx context.Context, list *models.ShoppingList) error

	// GetList retrieves a list on behalf of a user. Callers without an
	// accepted membership get models.ErrNotFound, whether or not the list
	// exists, so non-members cannot probe for list IDs.
	GetList(ctx context.Context, userID, listID string) (*models.ShoppingList, error)

	// GetEnrichedList retrieves a list with its members, pending invitees and
	// ordered items, under the same visibility rule as GetList.
	GetEnrichedList(ctx context.Context, userID, listID string) (*models.EnrichedShoppingList, error)

	// ListsOwnedBy returns the lists owned by a user.
	ListsOwnedBy(ctx context.Context, userID string) ([]models.ShoppingList, error)

	// ListsMemberOf returns the lists the user holds an accepted membership
	// on, their own included.
	ListsMemberOf(ctx context.Context, userID string) ([]models.ShoppingList, error)

	// RenameList sets a new name on the list and swaps its version token.
	// Owner-only: models.ErrNotFound when the list is absent,
	// models.ErrNotOwner when the caller doesn't own it.
	RenameList(ctx context.Context, ownerID, listID, name string) (*models.ShoppingList, error)

	// DeleteList removes the list, cascading over items and membership rows
	// in one transaction, and returns the pre-deletion snapshot. Owner-only.
	DeleteList(ctx context.Context, ownerID, listID string) (*models.ShoppingList, error)

	// Invite creates a pending invitation from the list owner to a user and
	// bumps the list version. Fails with models.ErrNotOwner when the actor
	// doesn't own the list, models.ErrAlreadyExists when the target already
	// has any membership row for it (the owner inviting themself included).
	Invite(ctx context.Context, actorID, targetID, listID string) error

	// WithdrawInvitation deletes a pending invitation on behalf of the owner
	// and bumps the list version. models.ErrNotFound when no such pending
	// invitation exists.
	WithdrawInvitation(ctx context.Context, actorID, targetID, listID string) error

	// AcceptInvitation flips the caller's own pending invitation to an
	// accepted membership and bumps the list version. models.ErrConflict when
	// the invitation is no longer pending.
	AcceptInvitation(ctx context.Context, userID, listID string) error

	// RejectInvitation deletes the caller's own pending invitation and bumps
	// the list version. models.ErrForbidden for the owner (owners never hold
	// one), models.ErrConflict when the invitation is no longer pending.
	RejectInvitation(ctx context.Context, userID, listID string) error

	// Leave removes an accepted membership and bumps the list version. Two
	// modes: a member leaving on their own behalf (actor == target), or the
	// owner removing a member. The owner can neither leave nor be removed.
	Leave(ctx context.Context, actorID, targetID, listID string) error

	// Members returns the users holding an accepted membership on the list.
	Members(ctx context.Context, listID string) ([]models.User, error)

	// Invitations returns the users holding a pending invitation to the
	// list. Owner-only.
	Invitations(ctx context.Context, ownerID, listID string) ([]models.User, error)

	// InvitationsFor returns the lists the user is invited to but has not
	// accepted.
	InvitationsFor(ctx context.Context, userID string) ([]models.ShoppingList, error)

	// IsMember reports whether the user holds an accepted membership on the
	// list. This is the single authorization gate for item operations.
	IsMember(ctx context.Context, userID, listID string) (bool, error)

	// AddItem appends an item to the list on behalf of a member: sort order
	// is the current item count, audit fields are stamped with the acting
	// user, and the list version is bumped. Non-members get
	// models.ErrNotFound.
	AddItem(ctx context.Context, userID, listID string, item *models.ShoppingListItem) error

	// Items returns the list's items sorted by sort order ascending, under
	// the same visibility rule as GetList.
	Items(ctx context.Context, userID, listID string) ([]models.ShoppingListItem, error)

	// RemoveItem deletes an item by (list, item, version) triple and bumps
	// the list version. A stale version is indistinguishable from a missing
	// item: both are models.ErrConflict.
	RemoveItem(ctx context.Context, userID, listID, itemID, itemVersion string) error

	// SetBought marks an unbought item as bought by the acting member,
	// swapping the item version and bumping the list version.
	// models.ErrConflict when the item is already bought or missing.
	SetBought(ctx context.Context, userID, listID, itemID string) (*models.ShoppingListItem, error)

	// SetUnbought clears the bought mark, symmetric to SetBought.
	// models.ErrConflict when the item is not currently bought.
	SetUnbought(ctx context.Context, userID, listID, itemID string) (*models.ShoppingListItem, error)

	// Reset drops all data and re-runs the schema migrations. Test support;
	// never reachable unless explicitly enabled.
	Reset(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
