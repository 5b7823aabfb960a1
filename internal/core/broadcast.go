package core

import "slices"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventConnected tells a new connection its assigned nickname.
	EventConnected EventKind = iota
	// EventDisconnected notifies channel peers that a user went away.
	EventDisconnected
	// EventChannelCreated confirms channel creation to its owner.
	EventChannelCreated
	// EventJoined notifies channel members about a new member.
	EventJoined
	// EventLeft notifies channel members about a member leaving.
	EventLeft
	// EventKicked notifies channel members that the owner removed someone.
	EventKicked
	// EventNicknameChanged notifies users sharing a channel with the renamed user.
	EventNicknameChanged
	// EventMessage delivers a chat message to channel members.
	EventMessage
	// EventError notifies a single client about a rejected request.
	EventError
)

var eventKindNames = [...]string{
	EventConnected:       "connected",
	EventDisconnected:    "disconnected",
	EventChannelCreated:  "channel_created",
	EventJoined:          "joined",
	EventLeft:            "left",
	EventKicked:          "kicked",
	EventNicknameChanged: "nickname_changed",
	EventMessage:         "message",
	EventError:           "error",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "unknown"
	}
	return eventKindNames[k]
}

// Broadcast is an immutable notification together with the users it is
// addressed to. The registry returns broadcasts; delivering them is the
// transport's job.
type Broadcast struct {
	Kind EventKind
	// Actor is the user the event is about (sender, joiner, leaver, old nickname).
	Actor string
	// Target is the secondary user (new nickname, kicked user, inviter).
	Target     string
	Channel    string
	Text       string
	Owner      string
	InviteOnly bool
	// Closed is set when the event destroyed the channel.
	Closed bool
	Err    *CoreError

	members    []string
	closed     []string
	recipients []string
	ids        []UserID
}

// Recipients returns the sorted, de-duplicated nicknames to deliver to.
func (b Broadcast) Recipients() []string {
	return slices.Clone(b.recipients)
}

// RecipientIDs returns the ids behind Recipients, in the same order. They
// were resolved when the broadcast was built, so a later rename or a reused
// nickname cannot redirect delivery.
func (b Broadcast) RecipientIDs() []UserID {
	return slices.Clone(b.ids)
}

// Members returns the channel member list carried by join events.
func (b Broadcast) Members() []string {
	return slices.Clone(b.members)
}

// ClosedChannels lists the channels a disconnect destroyed, sorted.
func (b Broadcast) ClosedChannels() []string {
	return slices.Clone(b.closed)
}

// Addressed reports whether nick is among the recipients.
func (b Broadcast) Addressed(nick string) bool {
	_, found := slices.BinarySearch(b.recipients, nick)
	return found
}

func (b Broadcast) to(a audience) Broadcast {
	b.recipients, b.ids = a.sorted()
	return b
}

// Connected builds the greeting for a freshly registered user.
func Connected(id UserID, nick string) Broadcast {
	return Broadcast{Kind: EventConnected, Actor: nick, recipients: []string{nick}, ids: []UserID{id}}
}

func disconnected(nick string, peers audience, closed []string) Broadcast {
	slices.Sort(closed)
	return Broadcast{Kind: EventDisconnected, Actor: nick, closed: closed}.to(peers)
}

// Failure builds an error broadcast addressed only to id. An empty nick
// means id is not registered and the broadcast goes nowhere.
func Failure(id UserID, nick string, err error) Broadcast {
	b := Broadcast{Kind: EventError, Err: AsCoreError(err)}
	if nick != "" {
		b.recipients = []string{nick}
		b.ids = []UserID{id}
	}
	return b
}
