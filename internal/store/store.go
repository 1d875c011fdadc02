// Package store holds the per-user wishlist and cart membership that decorates
// catalog views, and tells subscribers when it changes.
package store

import (
	"sort"
	"sync"
	"time"
)

// EventKind names a membership change.
type EventKind string

const (
	EventWishlistChanged EventKind = "wishlist.changed"
	EventCartChanged     EventKind = "cart.changed"
)

// Event describes the membership of one user right after a change.
type Event struct {
	Kind        EventKind      `json:"event"`
	UserID      string         `json:"-"`
	WishlistIDs []string       `json:"wishlistIds"`
	Cart        map[string]int `json:"cart"`
	CartCount   int            `json:"cartCount"`
	Timestamp   time.Time      `json:"timestamp"`
}

// Subscriber receives membership events. Publish must not block.
type Subscriber interface {
	Publish(ev Event)
}

// Membership is an immutable snapshot of a user's wishlist ids and cart
// quantities. The zero value is empty.
type Membership struct {
	wishlist map[string]struct{}
	cart     map[string]int
}

// NewMembership builds a snapshot. Empty ids and non-positive quantities are
// ignored.
func NewMembership(wishlist []string, cart map[string]int) Membership {
	return Membership{wishlist: toSet(wishlist), cart: cleanCart(cart)}
}

// InWishlist reports whether the product id is wishlisted.
func (m Membership) InWishlist(id string) bool {
	_, ok := m.wishlist[id]
	return ok
}

// CartQuantity returns the quantity of the product id in the cart.
func (m Membership) CartQuantity(id string) int {
	return m.cart[id]
}

// WishlistIDs returns the wishlisted ids in sorted order.
func (m Membership) WishlistIDs() []string {
	ids := make([]string, 0, len(m.wishlist))
	for id := range m.wishlist {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Cart returns a copy of the cart quantities.
func (m Membership) Cart() map[string]int {
	out := make(map[string]int, len(m.cart))
	for id, q := range m.cart {
		out[id] = q
	}
	return out
}

// CartCount is the total number of units in the cart.
func (m Membership) CartCount() int {
	n := 0
	for _, q := range m.cart {
		n += q
	}
	return n
}

type entry struct {
	wishlist map[string]struct{}
	cart     map[string]int
	seenAt   time.Time
}

// Store is the shared membership container. Writers replace whole snapshots
// with what the backend returned after a confirmed mutation; last write wins.
type Store struct {
	mu          sync.RWMutex
	users       map[string]*entry
	subscribers []Subscriber
	now         func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users: make(map[string]*entry),
		now:   time.Now,
	}
}

// Subscribe registers a subscriber for every later change.
func (s *Store) Subscribe(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, sub)
}

// Get returns the membership of a user and whether any is known.
func (s *Store) Get(userID string) (Membership, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.users[userID]
	if !ok {
		return Membership{}, false
	}
	return Membership{wishlist: e.wishlist, cart: e.cart}, true
}

// ReplaceWishlist stores the user's wishlist and notifies subscribers when it
// differs from the previous one.
func (s *Store) ReplaceWishlist(userID string, ids []string) Membership {
	next := toSet(ids)
	return s.update(userID, EventWishlistChanged, func(e *entry) bool {
		changed := !sameSet(e.wishlist, next)
		e.wishlist = next
		return changed
	})
}

// ReplaceCart stores the user's cart and notifies subscribers when it differs
// from the previous one.
func (s *Store) ReplaceCart(userID string, cart map[string]int) Membership {
	next := cleanCart(cart)
	return s.update(userID, EventCartChanged, func(e *entry) bool {
		changed := !sameCart(e.cart, next)
		e.cart = next
		return changed
	})
}

func (s *Store) update(userID string, kind EventKind, apply func(*entry) bool) Membership {
	s.mu.Lock()
	e, ok := s.users[userID]
	if !ok {
		e = &entry{wishlist: map[string]struct{}{}, cart: map[string]int{}}
		s.users[userID] = e
	}
	changed := apply(e)
	e.seenAt = s.now()
	m := Membership{wishlist: e.wishlist, cart: e.cart}
	subs := s.subscribers
	s.mu.Unlock()

	if !changed {
		return m
	}
	ev := Event{
		Kind:        kind,
		UserID:      userID,
		WishlistIDs: m.WishlistIDs(),
		Cart:        m.Cart(),
		CartCount:   m.CartCount(),
		Timestamp:   s.now(),
	}
	for _, sub := range subs {
		sub.Publish(ev)
	}
	return m
}

// Forget drops a user's membership.
func (s *Store) Forget(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
}

// Prune drops users not written for longer than maxIdle and returns how many
// were removed.
func (s *Store) Prune(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for id, e := range s.users {
		if e.seenAt.Before(cutoff) {
			delete(s.users, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of users held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

func cleanCart(cart map[string]int) map[string]int {
	out := make(map[string]int, len(cart))
	for id, q := range cart {
		if id != "" && q > 0 {
			out[id] = q
		}
	}
	return out
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func sameCart(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
