package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the client to a room.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom unsubscribes the client from a room.
	CommandLeaveRoom
	// CommandSendMessage delivers a chat message to room participants.
	CommandSendMessage
)

// Command represents an action requested by a client. User carries the
// display name supplied with the event; the core trusts it as-is.
type Command struct {
	Kind CommandKind
	Room string
	User string
	Text string
}
