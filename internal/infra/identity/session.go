// Package identity mints and recognises the opaque session identifiers that
// key anonymous shopper state.
package identity

import (
	"github.com/google/uuid"
)

// Mint returns a fresh session identifier. The id is UUIDv4-shaped (version
// nibble 4, variant 8-b) so the upstream services treat it like any other
// document id. Generation cannot fail.
func Mint() string {
	return uuid.NewString()
}

// Looks reports whether s has the shape of a minted session id. Used to
// reject garbage cookies rather than forwarding them upstream.
func Looks(s string) bool {
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}

	return id.Version() == 4
}
