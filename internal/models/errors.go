package models

import "errors"

var (
	// ErrInvalidName is returned when a user, list or item name fails validation.
	// Raised before any storage access; the caller can resubmit.
	ErrInvalidName = errors.New("shoplist: invalid name")

	// ErrNotFound is returned when an entity doesn't exist, or when the caller
	// is not allowed to see it. The two cases are deliberately conflated for
	// lists so that non-members cannot probe which list IDs exist.
	ErrNotFound = errors.New("shoplist: not found")

	// ErrNotOwner is returned when an operation requires list ownership and the
	// caller is a mere member (or not related to the list at all).
	ErrNotOwner = errors.New("shoplist: not the list owner")

	// ErrForbidden is returned when the caller lacks a privilege other than
	// ownership, e.g. the owner trying to leave their own list.
	ErrForbidden = errors.New("shoplist: operation not allowed")

	// ErrConflict is returned when a guarded write finds the entity changed
	// between read and write: a stale version token, an invitation that is no
	// longer pending, or a bought toggle against the wrong pre-state. The
	// caller must re-read and may retry.
	ErrConflict = errors.New("shoplist: conflicting update")

	// ErrAlreadyExists is returned on a duplicate invitation or a duplicate
	// normalized user name.
	ErrAlreadyExists = errors.New("shoplist: already exists")
)
