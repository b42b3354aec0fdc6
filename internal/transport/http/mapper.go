package http

import (
	"encoding/json"

	"github.com/hoangtv/livechat-server/internal/core"
	"github.com/hoangtv/livechat-server/internal/proto"
)

// Announcement texts shown to room members.
const (
	statusJoinedSuffix = " đã tham gia phòng chat."
	statusLeftSuffix   = " đã rời khỏi phòng chat."
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin, proto.InboundTypeLeave:
		var data proto.RoomData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, nil, err
		}
		if data.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		kind := core.CommandJoinRoom
		if inbound.Type == proto.InboundTypeLeave {
			kind = core.CommandLeaveRoom
		}
		return &core.Command{
			Kind: kind,
			Room: data.Room,
			User: data.Username,
		}, nil, nil
	case proto.InboundTypeMsg:
		var data proto.MsgData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, nil, err
		}
		if data.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandSendMessage,
			Room: data.Room,
			User: data.Username,
			Text: data.Msg,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventUserJoined:
		return proto.Outbound{
			Type: proto.OutboundTypeStatus,
			Data: proto.StatusData{
				Room: event.Room,
				Msg:  event.User + statusJoinedSuffix,
			},
		}
	case core.EventUserLeft:
		return proto.Outbound{
			Type: proto.OutboundTypeStatus,
			Data: proto.StatusData{
				Room: event.Room,
				Msg:  event.User + statusLeftSuffix,
			},
		}
	case core.EventRoomMessage:
		return proto.Outbound{
			Type: proto.OutboundTypeMessage,
			Data: proto.MessageData{
				Room:     event.Room,
				Username: event.User,
				Msg:      event.Text,
			},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{
			Code: core.ErrCodeInvalidMessage,
			Msg:  "unknown event",
		}}
	}
}
