package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/wirechat-registry/internal/command"
	"github.com/vovakirdan/wirechat-registry/internal/core"
	"github.com/vovakirdan/wirechat-registry/internal/proto"
)

func inbound(t *testing.T, typ string, data any) proto.Inbound {
	t.Helper()
	payload, err := json.Marshal(data)
	require.NoError(t, err)
	return proto.Inbound{Type: typ, Data: payload}
}

func TestInboundToCommand(t *testing.T) {
	cases := []struct {
		in   proto.Inbound
		want command.Command
	}{
		{inbound(t, proto.InboundTypeNick, proto.NickData{Nick: "bob"}), command.Command{Kind: command.Nickname, Target: "bob"}},
		{inbound(t, proto.InboundTypeCreate, proto.CreateData{Channel: "c", InviteOnly: true}), command.Command{Kind: command.CreateChannel, Channel: "c", InviteOnly: true}},
		{inbound(t, proto.InboundTypeJoin, proto.ChannelData{Channel: "c"}), command.Command{Kind: command.Join, Channel: "c"}},
		{inbound(t, proto.InboundTypeLeave, proto.ChannelData{Channel: "c"}), command.Command{Kind: command.Leave, Channel: "c"}},
		{inbound(t, proto.InboundTypeInvite, proto.TargetData{Channel: "c", User: "u"}), command.Command{Kind: command.Invite, Channel: "c", Target: "u"}},
		{inbound(t, proto.InboundTypeKick, proto.TargetData{Channel: "c", User: "u"}), command.Command{Kind: command.Kick, Channel: "c", Target: "u"}},
		{inbound(t, proto.InboundTypeMsg, proto.MsgData{Channel: "c", Text: "t"}), command.Command{Kind: command.Message, Channel: "c", Text: "t"}},
	}
	for _, tc := range cases {
		cmd, protoErr, err := inboundToCommand(tc.in)
		require.NoError(t, err, tc.in.Type)
		require.Nil(t, protoErr, tc.in.Type)
		require.Equal(t, tc.want, *cmd, tc.in.Type)
	}
}

func TestInboundToCommandRejects(t *testing.T) {
	_, protoErr, err := inboundToCommand(inbound(t, proto.InboundTypeKick, proto.TargetData{Channel: "c"}))
	require.NoError(t, err)
	require.Equal(t, core.ErrCodeBadRequest, protoErr.Code)

	_, _, err = inboundToCommand(proto.Inbound{Type: proto.InboundTypeJoin, Data: json.RawMessage(`[1]`)})
	require.Error(t, err)
}

func TestOutboundFromBroadcastError(t *testing.T) {
	out := outboundFromBroadcast(core.Failure(0, "User0", core.ErrNotOwner))
	require.Equal(t, proto.OutboundTypeError, out.Type)
	require.Equal(t, core.ErrCodeNotOwner, out.Error.Code)
}

func TestOutboundFromBroadcastDisconnectListsClosedChannels(t *testing.T) {
	req := require.New(t)
	reg := core.NewRegistry(nil)
	reg.Register(0)
	reg.Register(1)
	_, err := reg.AddChannel(0, "general", false)
	req.NoError(err)
	_, err = reg.Join(1, "general")
	req.NoError(err)

	out := outboundFromBroadcast(reg.Deregister(0))

	req.Equal("disconnected", out.Event)
	req.Equal(proto.EventDisconnected{User: "User0", Closed: []string{"general"}}, out.Data)
}

func TestRateLimiter(t *testing.T) {
	limiter := newRateLimiter(2, time.Hour)
	require.True(t, limiter.allow())
	require.True(t, limiter.allow())
	require.False(t, limiter.allow())

	unlimited := newRateLimiter(0, time.Hour)
	for range 10 {
		require.True(t, unlimited.allow())
	}
}
