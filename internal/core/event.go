package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventUserJoined notifies room members that a user joined.
	EventUserJoined EventKind = iota
	// EventUserLeft notifies room members that a user left.
	EventUserLeft
	// EventRoomMessage notifies room members about a chat message.
	EventRoomMessage
)

// Event is sent to clients to describe what happened in a room.
// Events are transient; nothing is persisted.
type Event struct {
	Kind EventKind
	Room string
	User string
	Text string
}
