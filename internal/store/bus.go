package store

// The change notification bus is a payload-free observer list: subscribers
// re-query the store on every signal instead of trusting event data, so
// coalesced mutations cannot leave a subscriber rendering stale state.

type subscriber struct {
	id uint64
	fn func()
}

// Subscribe registers fn for synchronous invocation after every mutation and
// returns its unsubscribe function. Subscribers run in registration order.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.subMu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()
	for _, sub := range subs {
		sub.fn()
	}
}
