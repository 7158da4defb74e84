package models

// ShoppingListItem represents a purchasable entry on a shopping list.
type ShoppingListItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Version is the opaque optimistic-concurrency token for this item.
	Version string `json:"version"`

	// Name is the display name of the item (1-32 characters).
	Name string `json:"name"`

	// ListID is the ID of the parent shopping list.
	ListID string `json:"list_id"`

	// CreatedBy is the ID of the member who added the item.
	CreatedBy string `json:"created_by"`

	// ModifiedBy is the ID of the member who last modified the item.
	ModifiedBy string `json:"modified_by"`

	// BoughtBy is the ID of the member who bought the item, or nil while
	// the item is unbought.
	BoughtBy *string `json:"bought_by"`

	// StateChangedBy is the ID of the member who last flipped the
	// bought/unbought state.
	StateChangedBy string `json:"state_changed_by"`

	// SortOrder is the item's stable display rank. It is assigned once at
	// creation and never renumbered, so removals leave gaps.
	SortOrder int `json:"sort_order"`
}

// Bought reports whether the item is currently marked as bought.
func (i *ShoppingListItem) Bought() bool {
	return i.BoughtBy != nil
}
