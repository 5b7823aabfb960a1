package http

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/wirechat-registry/internal/core"
	"github.com/vovakirdan/wirechat-registry/internal/proto"
)

func drain(sess *Session) []proto.Outbound {
	var out []proto.Outbound
	for {
		select {
		case o := <-sess.send:
			out = append(out, o)
		default:
			return out
		}
	}
}

func TestSessionsOpenCloseReusesIDs(t *testing.T) {
	req := require.New(t)
	reg := core.NewRegistry(nil)
	sessions := NewSessions(reg, 4, nil)

	a := sessions.Open()
	b := sessions.Open()
	req.Equal(core.UserID(0), a.id)
	req.Equal(core.UserID(1), b.id)
	req.Len(drain(a), 1)

	sessions.Close(a)
	req.Equal(1, sessions.Len())
	req.Equal([]string{"User1"}, reg.RegisteredUsers())

	c := sessions.Open()
	req.Equal(core.UserID(0), c.id)
	nick, _ := reg.Nickname(c.id)
	req.Equal("User0", nick)
}

func TestSessionsDeliverOnlyToRecipients(t *testing.T) {
	req := require.New(t)
	reg := core.NewRegistry(nil)
	sessions := NewSessions(reg, 1, nil)

	a := sessions.Open()
	b := sessions.Open()
	drain(a)
	drain(b)

	created, err := reg.AddChannel(a.id, "general", false)
	req.NoError(err)
	sessions.Deliver(created)

	req.Len(drain(a), 1)
	req.Empty(drain(b))

	// A full queue drops instead of blocking.
	msg, err := reg.Message(a.id, "general", "one")
	req.NoError(err)
	sessions.Deliver(msg)
	sessions.Deliver(msg)
	req.Len(drain(a), 1)
}

func TestSessionsDeliverFollowsIDsNotNicknames(t *testing.T) {
	req := require.New(t)
	reg := core.NewRegistry(nil)
	sessions := NewSessions(reg, 4, nil)

	// Given User0 and User1 in a channel and a message built for both
	a := sessions.Open()
	b := sessions.Open()
	_, err := reg.AddChannel(a.id, "general", false)
	req.NoError(err)
	_, err = reg.Join(b.id, "general")
	req.NoError(err)
	msg, err := reg.Message(a.id, "general", "hi")
	req.NoError(err)

	// When User1 renames and a newcomer takes over the name before delivery
	_, err = reg.ChangeNickname(b.id, "bob")
	req.NoError(err)
	c := sessions.Open()
	_, err = reg.ChangeNickname(c.id, "User1")
	req.NoError(err)
	drain(a)
	drain(b)
	drain(c)
	sessions.Deliver(msg)

	// Then the message reaches the original member, not the newcomer
	req.Len(drain(a), 1)
	req.Len(drain(b), 1)
	req.Empty(drain(c))
}

func TestSessionsDispatchQueuesResult(t *testing.T) {
	req := require.New(t)
	reg := core.NewRegistry(nil)
	sessions := NewSessions(reg, 4, nil)

	a := sessions.Open()
	b := sessions.Open()
	drain(a)
	drain(b)

	sessions.Dispatch(func() core.Broadcast {
		created, err := reg.AddChannel(a.id, "general", false)
		req.NoError(err)
		return created
	})

	out := drain(a)
	req.Len(out, 1)
	req.Equal("channel_created", out[0].Event)
	req.Empty(drain(b))
}

func TestSessionsCloseReportsClosedChannels(t *testing.T) {
	req := require.New(t)
	reg := core.NewRegistry(nil)
	sessions := NewSessions(reg, 4, nil)

	owner := sessions.Open()
	member := sessions.Open()
	_, err := reg.AddChannel(owner.id, "general", true)
	req.NoError(err)
	_, err = reg.Invite(owner.id, "User1", "general")
	req.NoError(err)
	drain(member)

	sessions.Close(owner)

	out := drain(member)
	req.Len(out, 1)
	req.Equal(proto.EventDisconnected{User: "User0", Closed: []string{"general"}}, out[0].Data)
	req.Empty(reg.Channels())
}
