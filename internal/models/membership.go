package models

// MembershipState is the state of a (list, user) relation. A row either
// represents a pending invitation or an accepted membership; the absence of a
// row means the user has no relation to the list.
type MembershipState string

const (
	// StateInvited marks a pending invitation from the owner to a user.
	StateInvited MembershipState = "invited"

	// StateMember marks an accepted membership. Members can see the list and
	// act on its items; the owner always holds one for their own list.
	StateMember MembershipState = "member"
)

// Membership relates a user to a shopping list. At most one membership exists
// per (ListID, UserID) pair.
type Membership struct {
	// ListID is the ID of the shopping list.
	ListID string `json:"list_id"`

	// UserID is the ID of the related user.
	UserID string `json:"user_id"`

	// State is the relation state: invited or member.
	State MembershipState `json:"state"`
}
