package models

// ShoppingList represents a named list owned by exactly one user.
// The owner is immutable after creation.
type ShoppingList struct {
	// ID is the unique identifier for the list (UUID format).
	ID string `json:"id"`

	// Version is the opaque optimistic-concurrency token. It changes on every
	// mutation visible to members, including item and membership changes, so
	// a reader can detect that something on the list moved.
	Version string `json:"version"`

	// Name is the display name of the list (1-32 characters).
	Name string `json:"name"`

	// OwnerID is the ID of the user who created the list.
	OwnerID string `json:"owner_id"`
}

// EnrichedShoppingList composes a list with its accepted members, its pending
// invitees and its items ordered by sort order. It is assembled on read and
// never persisted.
type EnrichedShoppingList struct {
	ShoppingList

	// Members are the users with an accepted membership, the owner included.
	Members []User `json:"members"`

	// InvitedUsers are the users holding a pending invitation.
	InvitedUsers []User `json:"invited_users"`

	// Items are the list's items, sorted by SortOrder ascending.
	Items []ShoppingListItem `json:"items"`
}
