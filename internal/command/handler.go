package command

import (
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-registry/internal/core"
)

// Handler executes commands on behalf of a connected user.
type Handler struct {
	reg *core.Registry
	log zerolog.Logger
}

// NewHandler builds a handler over reg. A nil logger disables logging.
func NewHandler(reg *core.Registry, logger *zerolog.Logger) *Handler {
	l := zerolog.Nop()
	if logger != nil {
		l = logger.With().Str("component", "command").Logger()
	}
	return &Handler{reg: reg, log: l}
}

// Handle runs cmd for sender and returns what to deliver. Rejected commands
// come back as an error broadcast addressed to the sender only.
func (h *Handler) Handle(sender core.UserID, cmd Command) core.Broadcast {
	b, err := h.dispatch(sender, cmd)
	if err == nil {
		return b
	}

	nick, _ := h.reg.Nickname(sender)
	h.log.Debug().
		Err(err).
		Int("user_id", int(sender)).
		Str("nickname", nick).
		Int("kind", int(cmd.Kind)).
		Str("channel", cmd.Channel).
		Msg("command rejected")
	return core.Failure(sender, nick, err)
}

func (h *Handler) dispatch(sender core.UserID, cmd Command) (core.Broadcast, error) {
	switch cmd.Kind {
	case Nickname:
		return h.reg.ChangeNickname(sender, cmd.Target)
	case CreateChannel:
		return h.reg.AddChannel(sender, cmd.Channel, cmd.InviteOnly)
	case Join:
		return h.reg.Join(sender, cmd.Channel)
	case Leave:
		return h.reg.Leave(sender, cmd.Channel)
	case Invite:
		return h.reg.Invite(sender, cmd.Target, cmd.Channel)
	case Kick:
		return h.reg.Kick(sender, cmd.Target, cmd.Channel)
	case Message:
		return h.reg.Message(sender, cmd.Channel, cmd.Text)
	default:
		return core.Broadcast{}, core.ErrBadRequest
	}
}
