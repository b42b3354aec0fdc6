package core

import "sync"

// Registry tracks live connections and which room each one occupies.
// A connection belongs to at most one room at any instant; the room
// attribute is owned here and mutated only by the hub goroutine.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Client
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Client)}
}

// Add starts tracking a connection with no room.
// Returns false if the ID is already tracked.
func (r *Registry) Add(c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.conns[c.ID]; exists {
		return false
	}
	c.room = ""
	r.conns[c.ID] = c
	return true
}

// Remove forgets a connection and returns it. Removing an unknown ID
// is a no-op and returns nil, so unregister stays idempotent.
func (r *Registry) Remove(id string) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conns[id]
	if !ok {
		return nil
	}
	delete(r.conns, id)
	return c
}

// Get returns the tracked client for id, or nil if unknown.
func (r *Registry) Get(id string) *Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conns[id]
}

// CurrentRoom returns the room the connection occupies, or "" if it is
// in no room or unknown.
func (r *Registry) CurrentRoom(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.conns[id]; ok {
		return c.room
	}
	return ""
}

// SetRoom records the room a connection occupies ("" for none).
// Unknown IDs are ignored.
func (r *Registry) SetRoom(id, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.conns[id]; ok {
		c.room = room
	}
}

// Len returns the number of tracked connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
