// Package session models who is calling: an anonymous shopper or one holding
// a bearer token issued by the storefront backend.
package session

// Session is either Anonymous or Authenticated.
type Session interface {
	isSession()
}

// Anonymous is a caller without a token. Wishlist, cart, order and profile
// endpoints of the backend are never called for it.
type Anonymous struct{}

// Authenticated is a caller holding a backend-issued bearer token. UserID keys
// the membership store and the event streams.
type Authenticated struct {
	Token  string
	UserID string
}

func (Anonymous) isSession()     {}
func (Authenticated) isSession() {}

// Auth returns the authenticated variant of s.
func Auth(s Session) (Authenticated, bool) {
	a, ok := s.(Authenticated)
	if !ok || a.Token == "" {
		return Authenticated{}, false
	}
	return a, true
}

// IsAuthenticated reports whether s carries a token.
func IsAuthenticated(s Session) bool {
	_, ok := Auth(s)
	return ok
}
