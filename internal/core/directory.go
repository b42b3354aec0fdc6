package core

import "sync"

// Directory maps room names to live member sets. Rooms are implicit:
// an entry appears on first join and is deleted as soon as the last
// member leaves, so empty rooms never linger.
type Directory struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewDirectory constructs an empty directory.
func NewDirectory() *Directory {
	return &Directory{rooms: make(map[string]*Room)}
}

// Add inserts the client into the named room, creating the room entry
// if absent. Returns true if the client was newly added.
func (d *Directory) Add(name string, c *Client) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	room, ok := d.rooms[name]
	if !ok {
		room = NewRoom(name)
		d.rooms[name] = room
	}
	return room.AddClient(c)
}

// Remove deletes the client from the named room and drops the room
// entry once it is empty. Unknown rooms and non-members are no-ops.
func (d *Directory) Remove(name string, c *Client) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	room, ok := d.rooms[name]
	if !ok {
		return false
	}
	removed := room.RemoveClient(c)
	if room.Empty() {
		delete(d.rooms, name)
	}
	return removed
}

// Broadcast delivers the event to every member of the named room at
// call time. An unknown room is an empty set, not an error.
func (d *Directory) Broadcast(name string, event *Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if room, ok := d.rooms[name]; ok {
		room.Broadcast(event)
	}
}

// MembersOf returns the connection IDs in the named room. Unknown
// rooms read as an empty set.
func (d *Directory) MembersOf(name string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	room, ok := d.rooms[name]
	if !ok {
		return nil
	}
	return room.Members()
}

// Rooms enumerates the names of rooms that currently have members.
func (d *Directory) Rooms() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.rooms))
	for name := range d.rooms {
		names = append(names, name)
	}
	return names
}

// Len returns the number of rooms with at least one member.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rooms)
}
