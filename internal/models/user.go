package models

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Version is the opaque optimistic-concurrency token. It changes on
	// every successful mutation of the account.
	Version string `json:"version"`

	// DisplayName is the name the user registered with (1-16 characters).
	DisplayName string `json:"name"`

	// NormalizedName is the case- and diacritic-folded form of DisplayName.
	// It is unique across all users and never exposed over the wire.
	NormalizedName string `json:"-"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`
}
