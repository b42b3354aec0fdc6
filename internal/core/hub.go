package core

import (
	"context"

	"github.com/rs/zerolog"
)

// Hub owns room membership and event fan-out. A single goroutine
// started by Run consumes registrations, disconnects and client
// commands, so for any room the membership mutation and the matching
// broadcast happen atomically and in arrival order.
type Hub struct {
	registry  *Registry
	directory *Directory

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand

	log *zerolog.Logger
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

// NewHub creates a hub. A nil logger disables logging.
func NewHub(logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		registry:   NewRegistry(),
		directory:  NewDirectory(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand, 64),
		log:        logger,
	}
}

// RegisterClient hands a freshly connected client to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient removes a client on disconnect. Safe to call more
// than once; repeats are no-ops.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// CurrentRoom reports the room the connection occupies ("" if none).
func (h *Hub) CurrentRoom(id string) string {
	return h.registry.CurrentRoom(id)
}

// MembersOf reports the connection IDs in a room; empty for unknown rooms.
func (h *Hub) MembersOf(name string) []string {
	return h.directory.MembersOf(name)
}

// Rooms enumerates rooms that currently have members.
func (h *Hub) Rooms() []string {
	return h.directory.Rooms()
}

// Run processes hub traffic until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.handleRegister(ctx, c)
		case c := <-h.unregister:
			h.handleUnregister(c)
		case cc := <-h.commands:
			h.handleCommand(cc.client, cc.cmd)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handleRegister(ctx context.Context, c *Client) {
	if !h.registry.Add(c) {
		h.log.Warn().Str("client_id", c.ID).Msg("duplicate client id ignored")
		return
	}
	h.log.Debug().Str("client_id", c.ID).Str("user", c.Name).Msg("client registered")
	go h.pump(ctx, c)
}

// pump forwards one client's commands into the hub loop so the hub
// never reads client channels directly.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-c.done:
				return
			case <-ctx.Done():
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handleUnregister(c *Client) {
	room := h.registry.CurrentRoom(c.ID)
	if h.registry.Remove(c.ID) == nil {
		return
	}
	if room != "" {
		h.directory.Remove(room, c)
		h.directory.Broadcast(room, &Event{Kind: EventUserLeft, Room: room, User: c.Name})
	}
	close(c.done)
	close(c.Events)
	h.log.Debug().Str("client_id", c.ID).Str("room", room).Msg("client unregistered")
}

func (h *Hub) handleCommand(c *Client, cmd *Command) {
	// Commands from connections that already disconnected are stale.
	if h.registry.Get(c.ID) == nil {
		return
	}
	user := cmd.User
	if user == "" {
		user = c.Name
	}
	switch cmd.Kind {
	case CommandJoinRoom:
		h.handleJoin(c, user, cmd.Room)
	case CommandLeaveRoom:
		h.handleLeave(c, user, cmd.Room)
	case CommandSendMessage:
		h.handleMessage(user, cmd.Room, cmd.Text)
	}
}

// handleJoin adds the connection to a room. A connection occupies at
// most one room, so joining a new room leaves the previous one first,
// announcing Left before Joined. Re-joining the current room keeps
// membership untouched but re-announces the join. The empty room name
// doubles as the "no room" sentinel and is ignored.
func (h *Hub) handleJoin(c *Client, user, room string) {
	if room == "" {
		return
	}
	current := h.registry.CurrentRoom(c.ID)
	if current == room {
		h.directory.Broadcast(room, &Event{Kind: EventUserJoined, Room: room, User: user})
		return
	}
	if current != "" {
		h.directory.Remove(current, c)
		h.registry.SetRoom(c.ID, "")
		h.directory.Broadcast(current, &Event{Kind: EventUserLeft, Room: current, User: user})
	}
	h.directory.Add(room, c)
	h.registry.SetRoom(c.ID, room)
	h.directory.Broadcast(room, &Event{Kind: EventUserJoined, Room: room, User: user})
	h.log.Debug().Str("client_id", c.ID).Str("room", room).Msg("client joined room")
}

// handleLeave removes the connection from the room. The member is
// removed before the announcement, so the leaver does not receive its
// own departure notice. Leaving a room the connection is not in is a
// no-op.
func (h *Hub) handleLeave(c *Client, user, room string) {
	if room == "" || h.registry.CurrentRoom(c.ID) != room {
		return
	}
	h.directory.Remove(room, c)
	h.registry.SetRoom(c.ID, "")
	h.directory.Broadcast(room, &Event{Kind: EventUserLeft, Room: room, User: user})
	h.log.Debug().Str("client_id", c.ID).Str("room", room).Msg("client left room")
}

// handleMessage fans a message out to the room's current members. No
// membership check is performed on the sender and the sender's own
// echo is not suppressed; both are deliberate, permissive policy.
func (h *Hub) handleMessage(user, room, text string) {
	h.directory.Broadcast(room, &Event{Kind: EventRoomMessage, Room: room, User: user, Text: text})
}
