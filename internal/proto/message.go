package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeJoin  = "join"
	InboundTypeLeave = "leave"
	InboundTypeMsg   = "message"

	OutboundTypeStatus  = "status"
	OutboundTypeMessage = "message"
	OutboundTypeError   = "error"
)

// RoomData requests to join or leave a room. The username rides along
// with every event and is trusted as-is by the server.
type RoomData struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// MsgData is a chat message from the client.
type MsgData struct {
	Username string `json:"username"`
	Room     string `json:"room"`
	Msg      string `json:"msg"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// StatusData announces a join or leave to room members.
type StatusData struct {
	Room string `json:"room,omitempty"`
	Msg  string `json:"msg"`
}

// MessageData carries a chat message to room members.
type MessageData struct {
	Room     string `json:"room,omitempty"`
	Username string `json:"username"`
	Msg      string `json:"msg"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
