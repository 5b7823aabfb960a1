package command

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/wirechat-registry/internal/core"
)

func newHandler(t *testing.T, users int) (*Handler, *core.Registry) {
	t.Helper()

	reg := core.NewRegistry(nil)
	for i := range users {
		reg.Register(core.UserID(i))
	}
	return NewHandler(reg, nil), reg
}

func TestHandlerCreateJoinMessage(t *testing.T) {
	req := require.New(t)
	h, reg := newHandler(t, 2)

	b := h.Handle(0, Command{Kind: CreateChannel, Channel: "general"})
	req.Equal(core.EventChannelCreated, b.Kind)
	req.Equal([]string{"User0"}, b.Recipients())

	b = h.Handle(1, Command{Kind: Join, Channel: "general"})
	req.Equal(core.EventJoined, b.Kind)
	req.Equal([]string{"User0", "User1"}, b.Members())

	b = h.Handle(1, Command{Kind: Message, Channel: "general", Text: "hello"})
	req.Equal(core.EventMessage, b.Kind)
	req.Equal("hello", b.Text)
	req.Equal([]string{"User0", "User1"}, b.Recipients())

	req.Equal([]string{"User0", "User1"}, reg.Users("general"))
}

func TestHandlerRejectionsGoToSenderOnly(t *testing.T) {
	req := require.New(t)
	h, reg := newHandler(t, 2)
	h.Handle(0, Command{Kind: CreateChannel, Channel: "secret", InviteOnly: true})

	b := h.Handle(1, Command{Kind: Join, Channel: "secret"})
	req.Equal(core.EventError, b.Kind)
	req.Equal([]string{"User1"}, b.Recipients())
	req.NotNil(b.Err)
	req.Equal(core.ErrCodeInviteOnly, b.Err.Code)
	req.False(reg.UserContained(1, "secret"))

	b = h.Handle(1, Command{Kind: Kick, Channel: "secret", Target: "User0"})
	req.Equal(core.ErrCodeNotOwner, b.Err.Code)

	b = h.Handle(1, Command{Kind: CreateChannel, Channel: "secret"})
	req.Equal(core.ErrCodeChannelExists, b.Err.Code)

	b = h.Handle(1, Command{Kind: Nickname, Target: "User0"})
	req.Equal(core.ErrCodeNameInUse, b.Err.Code)

	b = h.Handle(1, Command{Kind: Nickname, Target: "not valid"})
	req.Equal(core.ErrCodeInvalidName, b.Err.Code)

	b = h.Handle(1, Command{Kind: Message, Channel: "nowhere", Text: "x"})
	req.Equal(core.ErrCodeChannelNotFound, b.Err.Code)

	b = h.Handle(1, Command{Kind: Kind(99)})
	req.Equal(core.ErrCodeBadRequest, b.Err.Code)
}

func TestHandlerInviteThenKick(t *testing.T) {
	req := require.New(t)
	h, reg := newHandler(t, 3)
	h.Handle(0, Command{Kind: CreateChannel, Channel: "secret", InviteOnly: true})

	b := h.Handle(0, Command{Kind: Invite, Channel: "secret", Target: "User2"})
	req.Equal(core.EventJoined, b.Kind)
	req.Equal("User2", b.Actor)
	req.True(reg.UserContained(2, "secret"))

	b = h.Handle(0, Command{Kind: Kick, Channel: "secret", Target: "User2"})
	req.Equal(core.EventKicked, b.Kind)
	req.Equal([]string{"User0", "User2"}, b.Recipients())
	req.False(reg.UserContained(2, "secret"))
}

func TestHandlerNicknameAndOwnerLeave(t *testing.T) {
	req := require.New(t)
	h, reg := newHandler(t, 2)
	h.Handle(0, Command{Kind: CreateChannel, Channel: "general"})
	h.Handle(1, Command{Kind: Join, Channel: "general"})

	b := h.Handle(1, Command{Kind: Nickname, Target: "bob"})
	req.Equal(core.EventNicknameChanged, b.Kind)
	req.Equal([]string{"User0", "bob"}, b.Recipients())

	b = h.Handle(0, Command{Kind: Leave, Channel: "general"})
	req.Equal(core.EventLeft, b.Kind)
	req.True(b.Closed)
	req.Equal([]string{"User0", "bob"}, b.Recipients())
	req.False(reg.ChannelExists("general"))
}
