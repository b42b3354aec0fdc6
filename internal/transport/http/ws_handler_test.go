package http

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/hoangtv/livechat-server/internal/proto"
)

type testOutbound struct {
	Type  string         `json:"type"`
	Data  map[string]any `json:"data"`
	Error *proto.Error   `json:"error"`
}

func dialWS(t *testing.T, ctx context.Context, env *testEnv, token string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(env.srv.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("ws dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "test done") })
	return conn
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, typ string, data any) {
	t.Helper()

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s data: %v", typ, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: raw}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func recv(t *testing.T, ctx context.Context, conn *websocket.Conn) testOutbound {
	t.Helper()

	var out testOutbound
	if err := wsjson.Read(ctx, conn, &out); err != nil {
		t.Fatalf("read outbound: %v", err)
	}
	return out
}

func TestWSRejectsMissingToken(t *testing.T) {
	env := newTestEnv(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(env.srv.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err == nil {
		conn.Close(websocket.StatusNormalClosure, "")
		t.Fatalf("expected handshake to fail without token")
	}
}

func TestWSJoinMessageLeaveRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	aliceToken := registerUser(t, env, "alice", "alice@example.com")
	bobToken := registerUser(t, env, "bob", "bob@example.com")

	alice := dialWS(t, ctx, env, aliceToken)
	send(t, ctx, alice, proto.InboundTypeJoin, proto.RoomData{Username: "alice", Room: "lobby"})

	out := recv(t, ctx, alice)
	if out.Type != proto.OutboundTypeStatus {
		t.Fatalf("expected status, got %+v", out)
	}
	if msg := out.Data["msg"]; msg != "alice đã tham gia phòng chat." {
		t.Fatalf("unexpected join announcement: %v", msg)
	}

	// Sender sees its own message echo.
	send(t, ctx, alice, proto.InboundTypeMsg, proto.MsgData{Username: "alice", Room: "lobby", Msg: "hi"})
	out = recv(t, ctx, alice)
	if out.Type != proto.OutboundTypeMessage {
		t.Fatalf("expected message, got %+v", out)
	}
	if out.Data["username"] != "alice" || out.Data["msg"] != "hi" {
		t.Fatalf("unexpected message payload: %v", out.Data)
	}

	bob := dialWS(t, ctx, env, bobToken)
	send(t, ctx, bob, proto.InboundTypeJoin, proto.RoomData{Username: "bob", Room: "lobby"})

	// Both members see bob's join.
	out = recv(t, ctx, alice)
	if out.Type != proto.OutboundTypeStatus || out.Data["msg"] != "bob đã tham gia phòng chat." {
		t.Fatalf("alice expected bob's join, got %+v", out)
	}
	out = recv(t, ctx, bob)
	if out.Type != proto.OutboundTypeStatus || out.Data["msg"] != "bob đã tham gia phòng chat." {
		t.Fatalf("bob expected own join, got %+v", out)
	}

	// Alice leaves: only bob is notified.
	send(t, ctx, alice, proto.InboundTypeLeave, proto.RoomData{Username: "alice", Room: "lobby"})
	out = recv(t, ctx, bob)
	if out.Type != proto.OutboundTypeStatus || out.Data["msg"] != "alice đã rời khỏi phòng chat." {
		t.Fatalf("bob expected alice's leave, got %+v", out)
	}

	// Bob disconnects without an explicit leave; the room empties.
	bob.Close(websocket.StatusNormalClosure, "bye")
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(env.hub.MembersOf("lobby")) == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("lobby should be empty after bob disconnected, members: %v", env.hub.MembersOf("lobby"))
}

func TestWSMalformedFrameYieldsError(t *testing.T) {
	env := newTestEnv(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	token := registerUser(t, env, "carol", "carol@example.com")
	conn := dialWS(t, ctx, env, token)

	// Unknown type.
	send(t, ctx, conn, "dance", proto.RoomData{Room: "lobby"})
	out := recv(t, ctx, conn)
	if out.Type != proto.OutboundTypeError || out.Error == nil || out.Error.Code != "invalid_message" {
		t.Fatalf("expected invalid_message error, got %+v", out)
	}

	// Missing room.
	send(t, ctx, conn, proto.InboundTypeJoin, proto.RoomData{Username: "carol"})
	out = recv(t, ctx, conn)
	if out.Type != proto.OutboundTypeError || out.Error == nil || out.Error.Code != "bad_request" {
		t.Fatalf("expected bad_request error, got %+v", out)
	}

	// The connection survives protocol errors.
	send(t, ctx, conn, proto.InboundTypeJoin, proto.RoomData{Username: "carol", Room: "lobby"})
	out = recv(t, ctx, conn)
	if out.Type != proto.OutboundTypeStatus {
		t.Fatalf("expected join to still work, got %+v", out)
	}
}
