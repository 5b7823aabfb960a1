package http

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/wirechat-registry/internal/command"
	"github.com/vovakirdan/wirechat-registry/internal/core"
	"github.com/vovakirdan/wirechat-registry/internal/proto"
)

func badRequest(msg string) *proto.Error {
	return &proto.Error{Code: core.ErrCodeBadRequest, Msg: msg}
}

func inboundToCommand(inbound proto.Inbound) (*command.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeNick:
		var nick proto.NickData
		if err := json.Unmarshal(inbound.Data, &nick); err != nil {
			return nil, nil, err
		}
		if nick.Nick == "" {
			return nil, badRequest("nick is required"), nil
		}
		return &command.Command{Kind: command.Nickname, Target: nick.Nick}, nil, nil
	case proto.InboundTypeCreate:
		var create proto.CreateData
		if err := json.Unmarshal(inbound.Data, &create); err != nil {
			return nil, nil, err
		}
		if create.Channel == "" {
			return nil, badRequest("channel is required"), nil
		}
		return &command.Command{
			Kind:       command.CreateChannel,
			Channel:    create.Channel,
			InviteOnly: create.InviteOnly,
		}, nil, nil
	case proto.InboundTypeJoin, proto.InboundTypeLeave:
		var ch proto.ChannelData
		if err := json.Unmarshal(inbound.Data, &ch); err != nil {
			return nil, nil, err
		}
		if ch.Channel == "" {
			return nil, badRequest("channel is required"), nil
		}
		kind := command.Join
		if inbound.Type == proto.InboundTypeLeave {
			kind = command.Leave
		}
		return &command.Command{Kind: kind, Channel: ch.Channel}, nil, nil
	case proto.InboundTypeInvite, proto.InboundTypeKick:
		var target proto.TargetData
		if err := json.Unmarshal(inbound.Data, &target); err != nil {
			return nil, nil, err
		}
		if target.Channel == "" || target.User == "" {
			return nil, badRequest("channel and user are required"), nil
		}
		kind := command.Invite
		if inbound.Type == proto.InboundTypeKick {
			kind = command.Kick
		}
		return &command.Command{Kind: kind, Channel: target.Channel, Target: target.User}, nil, nil
	case proto.InboundTypeMsg:
		var msg proto.MsgData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		if msg.Channel == "" {
			return nil, badRequest("channel is required"), nil
		}
		return &command.Command{Kind: command.Message, Channel: msg.Channel, Text: msg.Text}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func event(name string, data any) proto.Outbound {
	return proto.Outbound{Type: proto.OutboundTypeEvent, Event: name, Data: data}
}

func outboundFromBroadcast(b core.Broadcast) proto.Outbound {
	switch b.Kind {
	case core.EventConnected:
		return event("connected", proto.EventConnected{User: b.Actor, Protocol: proto.ProtocolVersion})
	case core.EventDisconnected:
		return event("disconnected", proto.EventDisconnected{User: b.Actor, Closed: b.ClosedChannels()})
	case core.EventChannelCreated, core.EventJoined:
		name := "channel_created"
		if b.Kind == core.EventJoined {
			name = "user_joined"
		}
		return event(name, proto.EventChannel{
			Channel:    b.Channel,
			User:       b.Actor,
			Owner:      b.Owner,
			InvitedBy:  b.Target,
			InviteOnly: b.InviteOnly,
			Members:    b.Members(),
		})
	case core.EventLeft:
		return event("user_left", proto.EventUserLeft{
			Channel: b.Channel,
			User:    b.Actor,
			Closed:  b.Closed,
		})
	case core.EventKicked:
		return event("user_kicked", proto.EventUserLeft{
			Channel: b.Channel,
			User:    b.Target,
			By:      b.Actor,
			Closed:  b.Closed,
		})
	case core.EventNicknameChanged:
		return event("nick", proto.EventNick{From: b.Actor, To: b.Target})
	case core.EventMessage:
		return event("message", proto.EventMessage{
			ID:      uuid.NewString(),
			Channel: b.Channel,
			User:    b.Actor,
			Text:    b.Text,
			TS:      time.Now().Unix(),
		})
	case core.EventError:
		if b.Err == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: b.Err.Code, Msg: b.Err.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent, Event: b.Kind.String()}
	}
}
