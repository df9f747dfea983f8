package project

// messageWatcherBuffer bounds each subscriber channel. A watcher that
// falls this far behind starts dropping messages rather than blocking
// writers.
const messageWatcherBuffer = 16

// SubscribeMessages registers a live watcher for newly posted messages.
// It returns the channel messages arrive on and a cancel function that
// unregisters the watcher and closes the channel. Messages posted while
// the watcher's buffer is full are dropped for that watcher.
func (s *Store) SubscribeMessages() (<-chan Message, func()) {
	ch := make(chan Message, messageWatcherBuffer)

	s.mu.Lock()
	if s.watchers == nil {
		s.watchers = make(map[chan Message]struct{})
	}
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.watchers[ch]; ok {
			delete(s.watchers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// notifyMessage fans a new message out to live watchers.
// Callers must hold the lock.
func (s *Store) notifyMessage(message Message) {
	for ch := range s.watchers {
		select {
		case ch <- message:
		default:
		}
	}
}
