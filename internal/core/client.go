package core

// clientBuffer sizes the per-client command and event channels. Events
// beyond the buffer are dropped rather than blocking the hub.
const clientBuffer = 8

// Client is a chat participant as seen by the core layer. ID identifies
// the live connection; Name is the display name resolved by the
// authentication collaborator before the connection reaches the core.
type Client struct {
	ID       string
	Name     string
	Commands chan *Command
	Events   chan *Event

	// done is closed by the hub when the client is unregistered.
	done chan struct{}

	// room is the single room this connection occupies ("" if none).
	// Owned by the Registry; never touched outside its lock.
	room string
}

// NewClient constructs a client with initialized channels.
func NewClient(id, name string) *Client {
	if name == "" {
		name = id
	}
	return &Client{
		ID:       id,
		Name:     name,
		Commands: make(chan *Command, clientBuffer),
		Events:   make(chan *Event, clientBuffer),
		done:     make(chan struct{}),
	}
}
