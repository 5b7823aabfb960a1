package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeNick   = "nick"
	InboundTypeCreate = "create"
	InboundTypeJoin   = "join"
	InboundTypeLeave  = "leave"
	InboundTypeInvite = "invite"
	InboundTypeKick   = "kick"
	InboundTypeMsg    = "msg"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"
)

// NickData asks to rename the sender.
type NickData struct {
	Nick string `json:"nick"`
}

// CreateData asks to create a channel owned by the sender.
type CreateData struct {
	Channel    string `json:"channel"`
	InviteOnly bool   `json:"invite_only,omitempty"`
}

// ChannelData names a channel for join and leave.
type ChannelData struct {
	Channel string `json:"channel"`
}

// TargetData names a user within a channel for invite and kick.
type TargetData struct {
	Channel string `json:"channel"`
	User    string `json:"user"`
}

// MsgData is a chat message from the client.
type MsgData struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// EventConnected greets a new connection with its assigned nickname.
type EventConnected struct {
	User     string `json:"user"`
	Protocol int    `json:"protocol"`
}

// EventDisconnected notifies that a user left the server. Closed lists the
// channels that went away with their owner.
type EventDisconnected struct {
	User   string   `json:"user"`
	Closed []string `json:"closed,omitempty"`
}

// EventChannel describes channel creation and joins.
type EventChannel struct {
	Channel    string   `json:"channel"`
	User       string   `json:"user"`
	Owner      string   `json:"owner,omitempty"`
	InvitedBy  string   `json:"invited_by,omitempty"`
	InviteOnly bool     `json:"invite_only"`
	Members    []string `json:"members,omitempty"`
}

// EventUserLeft notifies that a user left or was kicked from a channel.
type EventUserLeft struct {
	Channel string `json:"channel"`
	User    string `json:"user"`
	By      string `json:"by,omitempty"`
	Closed  bool   `json:"closed,omitempty"`
}

// EventNick notifies about a rename.
type EventNick struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// EventMessage is a chat message delivered to channel members.
type EventMessage struct {
	ID      string `json:"id"`
	Channel string `json:"channel"`
	User    string `json:"user"`
	Text    string `json:"text"`
	TS      int64  `json:"ts"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
