// Package version mints the opaque tokens behind the service's optimistic
// concurrency. Every mutable entity stores one token; a mutation presents the
// token it last read and atomically swaps it for a fresh one. Tokens are not
// ordered, only distinct with overwhelming probability.
//
// The swap itself is expressed at the storage layer as a guarded UPDATE or
// DELETE whose WHERE clause includes the presented token; zero rows affected
// means the entity changed underneath the caller.
package version

import "github.com/google/uuid"

// NewToken returns a fresh opaque version token.
func NewToken() string {
	return uuid.NewString()
}
