// Package models defines the core domain types for the shopping-list service.
//
// # Entities
//
//   - User: a registered account, unique by normalized name
//   - ShoppingList: a named list owned by exactly one user
//   - Membership: the (list, user) relation, either a pending invitation
//     or an accepted membership
//   - ShoppingListItem: a purchasable entry on a list with a bought/unbought state
//   - EnrichedShoppingList: a read-model composing a list with its members,
//     invitees and items; assembled on read, never persisted
//
// Every mutable entity carries an opaque version token. Mutations present the
// token they last read and only succeed if it still matches storage, so two
// concurrent writers cannot silently overwrite each other (see internal/version).
//
// # Design principles
//
//  1. Relationships use ID strings, not pointers, to avoid circular references
//  2. Membership state is an explicit enum rather than an accepted flag
//  3. Errors callers are expected to branch on are sentinel values in this package
package models
