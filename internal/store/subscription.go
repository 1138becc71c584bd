package store

import (
	"sync/atomic"

	"projectboard/internal/domain/models/board"
)

// Subscription is the handle returned when a listener is registered.
type Subscription struct {
	store    *Store
	fn       Listener
	canceled atomic.Bool
}

// Unsubscribe stops further notifications. Safe to call more than once,
// including from inside the listener.
func (sub *Subscription) Unsubscribe() {
	if sub.canceled.Swap(true) {
		return
	}

	s := sub.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.subscriptions {
		if existing == sub {
			s.subscriptions = append(s.subscriptions[:i:i], s.subscriptions[i+1:]...)
			break
		}
	}
}

func (sub *Subscription) active() bool {
	return !sub.canceled.Load()
}

// Subscribe registers fn for future snapshots. The same function may be
// registered more than once; each registration is notified separately.
func (s *Store) Subscribe(fn Listener) *Subscription {
	sub := &Subscription{store: s, fn: fn}

	s.mu.Lock()
	s.subscriptions = append(s.subscriptions, sub)
	s.mu.Unlock()

	return sub
}

// AddListener is an alias for Subscribe.
func (s *Store) AddListener(fn Listener) *Subscription {
	return s.Subscribe(fn)
}

// SubscribeCurrent registers fn and returns the snapshot it starts from.
// No notification can fall between the returned snapshot and the first one
// delivered to fn.
func (s *Store) SubscribeCurrent(fn Listener) (*Subscription, []board.Project) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	sub := &Subscription{store: s, fn: fn}

	s.mu.Lock()
	s.subscriptions = append(s.subscriptions, sub)
	current := s.copyProjects()
	s.mu.Unlock()

	return sub, current
}

// Subscribers returns the number of registered listeners
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscriptions)
}

// activeSubscriptions copies the subscription list. Caller holds mu.
func (s *Store) activeSubscriptions() []*Subscription {
	subs := make([]*Subscription, len(s.subscriptions))
	copy(subs, s.subscriptions)
	return subs
}
