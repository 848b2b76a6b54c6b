// Package registry maps user ids to their live streaming connections and
// fans published events out to every connection a user has open.
package registry

import (
	"sync"

	"github.com/alfredjeanlab/chatwire/internal/events"
)

// receiverBuffer is the per-connection event buffer. A connection that falls
// this far behind starts losing its oldest buffered events.
const receiverBuffer = 64

// Registry is the process-wide subscriber map. Construct one per server with
// New and inject it; tests build isolated instances.
type Registry struct {
	mu    sync.RWMutex
	users map[int64]*multicast
}

// multicast is a single user's delivery point: one logical publisher, any
// number of concurrently connected receivers (one per open connection).
type multicast struct {
	mu        sync.Mutex
	receivers map[*Receiver]struct{}
}

// Receiver is one connection's subscription to its user's multicast point.
type Receiver struct {
	userID int64
	ch     chan *events.AppEvent
}

// Events returns the channel the connection handler reads from.
func (r *Receiver) Events() <-chan *events.AppEvent { return r.ch }

// UserID returns the user this receiver belongs to.
func (r *Receiver) UserID() int64 { return r.userID }

// New returns an empty registry.
func New() *Registry {
	return &Registry{users: make(map[int64]*multicast)}
}

// Subscribe registers a new receiver for userID, creating the user's
// multicast point if absent. Safe for concurrent use.
func (g *Registry) Subscribe(userID int64) *Receiver {
	r := &Receiver{
		userID: userID,
		ch:     make(chan *events.AppEvent, receiverBuffer),
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	m := g.users[userID]
	if m == nil {
		m = &multicast{receivers: make(map[*Receiver]struct{})}
		g.users[userID] = m
	}
	m.mu.Lock()
	m.receivers[r] = struct{}{}
	m.mu.Unlock()
	return r
}

// Unsubscribe releases one receiver. When the user's last receiver is
// released the entry is deleted, so the map stays bounded by the number of
// concurrently connected distinct users. Idempotent.
func (g *Registry) Unsubscribe(r *Receiver) {
	g.mu.Lock()
	defer g.mu.Unlock()

	m := g.users[r.userID]
	if m == nil {
		return
	}
	m.mu.Lock()
	delete(m.receivers, r)
	empty := len(m.receivers) == 0
	m.mu.Unlock()
	if empty {
		delete(g.users, r.userID)
	}
}

// Publish delivers ev to every current receiver for userID. A user with no
// receivers is a silent no-op. Never blocks: when a receiver's buffer is
// full, its oldest buffered event is dropped to make room (the connection
// stays up and sees a gap).
func (g *Registry) Publish(userID int64, ev *events.AppEvent) {
	g.mu.RLock()
	m := g.users[userID]
	g.mu.RUnlock()
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for r := range m.receivers {
		select {
		case r.ch <- ev:
		default:
			// Slow receiver: shed the oldest buffered event, keep the rest.
			select {
			case <-r.ch:
			default:
			}
			select {
			case r.ch <- ev:
			default:
			}
		}
	}
}

// Users returns the number of distinct users with at least one live connection.
func (g *Registry) Users() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.users)
}

// Receivers returns the total number of live connections across all users.
func (g *Registry) Receivers() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, m := range g.users {
		m.mu.Lock()
		n += len(m.receivers)
		m.mu.Unlock()
	}
	return n
}
