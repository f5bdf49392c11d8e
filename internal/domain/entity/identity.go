// Package entity contains the core business objects of the storefront,
// each representing a unique, identifiable concept within the domain.
package entity

// Identity names the owner of cart, checkout and order state. Exactly one of
// UserID or SessionID is set: authenticated shoppers are keyed by the user id
// issued by the auth service, anonymous shoppers by a client-held session id.
type Identity struct {
	UserID     string // Set when the shopper is authenticated.
	SessionID  string // Set when the shopper is anonymous.
	GuestEmail string // Optional contact address for guest checkout.
}

// IsAuthenticated reports whether the identity belongs to a logged-in user.
func (id Identity) IsAuthenticated() bool {
	return id.UserID != ""
}

// Key returns the stable string the storefront uses to key per-identity
// state (checkout sessions, mutation locks).
func (id Identity) Key() string {
	if id.UserID != "" {
		return "user:" + id.UserID
	}

	return "session:" + id.SessionID
}

// Valid reports whether exactly one owning id is present.
func (id Identity) Valid() bool {
	return (id.UserID != "") != (id.SessionID != "")
}
