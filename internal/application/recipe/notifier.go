package recipe

import (
	"sync"

	"github.com/google/uuid"
)

// notifier fans out collection-change signals to per-user subscribers. A
// subscriber that is slow to drain its channel simply coalesces signals;
// the stream handler re-reads the full list on every signal anyway.
type notifier struct {
	mu   sync.Mutex
	subs map[uuid.UUID]map[*subscriber]struct{}
}

type subscriber struct {
	ch chan struct{}
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[uuid.UUID]map[*subscriber]struct{})}
}

// subscribe registers a new subscriber for userID's collection.
func (n *notifier) subscribe(userID uuid.UUID) (<-chan struct{}, func()) {
	sub := &subscriber{ch: make(chan struct{}, 1)}

	n.mu.Lock()
	if n.subs[userID] == nil {
		n.subs[userID] = make(map[*subscriber]struct{})
	}
	n.subs[userID][sub] = struct{}{}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if set, ok := n.subs[userID]; ok {
			delete(set, sub)
			if len(set) == 0 {
				delete(n.subs, userID)
			}
		}
	}

	return sub.ch, cancel
}

// notify signals every subscriber of userID's collection. Non-blocking:
// a pending signal already covers the change.
func (n *notifier) notify(userID uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for sub := range n.subs[userID] {
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}
