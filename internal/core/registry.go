package core

import (
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Registry is the authoritative state of the chat server: registered users,
// their nicknames and the channels they are in.
//
// All methods are safe for concurrent use. A single lock guards the user
// directory and every channel, so each call observes and produces one
// consistent snapshot. Mutations validate first and mutate last; a rejected
// call leaves the state untouched.
type Registry struct {
	mu       sync.RWMutex
	users    *directory
	channels map[string]*Channel
	log      zerolog.Logger
}

// ChannelInfo is a read-only snapshot of one channel.
type ChannelInfo struct {
	Title      string
	Owner      string
	InviteOnly bool
	Members    []string
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(logger *zerolog.Logger) *Registry {
	l := zerolog.Nop()
	if logger != nil {
		l = logger.With().Str("component", "registry").Logger()
	}
	return &Registry{
		users:    newDirectory(),
		channels: make(map[string]*Channel),
		log:      l,
	}
}

// Register records a new connection and assigns it the smallest free
// User<N> nickname. Registering a live id returns its current nickname.
func (r *Registry) Register(id UserID) Broadcast {
	r.mu.Lock()
	defer r.mu.Unlock()

	if nick, ok := r.users.nickname(id); ok {
		return Connected(id, nick)
	}
	nick := nextDefaultNickname(r.users.taken)
	r.users.set(id, nick)

	r.log.Debug().Int("user_id", int(id)).Str("nickname", nick).Msg("user registered")
	return Connected(id, nick)
}

// Deregister forgets a connection and removes it from every channel.
// Channels it owned are destroyed, as if it had left them. The returned
// broadcast is addressed to every remaining member of the channels the user
// was in and lists the destroyed channels.
func (r *Registry) Deregister(id UserID) Broadcast {
	r.mu.Lock()
	defer r.mu.Unlock()

	nick, ok := r.users.remove(id)
	if !ok {
		return Broadcast{Kind: EventDisconnected}
	}

	peers := make(audience)
	var closed []string
	for _, ch := range r.channels {
		if !ch.Contains(id) && !ch.OwnedBy(id) {
			continue
		}
		r.users.resolve(ch.members, peers)
		if r.dropLocked(ch, id) {
			closed = append(closed, ch.Title)
		}
	}

	r.log.Debug().
		Int("user_id", int(id)).
		Str("nickname", nick).
		Int("peers", len(peers)).
		Strs("closed", closed).
		Msg("user deregistered")
	return disconnected(nick, peers, closed)
}

// ChangeNickname renames a registered user. The broadcast goes to everyone
// sharing a channel with the user and to the user itself.
func (r *Registry) ChangeNickname(id UserID, nick string) (Broadcast, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.users.nickname(id)
	if !ok {
		return Broadcast{}, ErrUserNotFound
	}
	if !IsValidName(nick) {
		return Broadcast{}, ErrInvalidName
	}
	if nick != old && r.users.taken(nick) {
		return Broadcast{}, ErrNameInUse
	}

	r.users.set(id, nick)
	recipients := r.relevantLocked(id)
	recipients[id] = nick

	r.log.Debug().Int("user_id", int(id)).Str("from", old).Str("to", nick).Msg("nickname changed")
	return Broadcast{
		Kind:   EventNicknameChanged,
		Actor:  old,
		Target: nick,
	}.to(recipients), nil
}

// UserID returns the id holding nick.
func (r *Registry) UserID(nick string) (UserID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users.id(nick)
}

// Nickname returns the nickname of id.
func (r *Registry) Nickname(id UserID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users.nickname(id)
}

// RegisteredUsers returns the sorted nicknames of all registered users.
func (r *Registry) RegisteredUsers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users.nicknames()
}

// UserPresent reports whether nick belongs to a registered user.
func (r *Registry) UserPresent(nick string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users.taken(nick)
}

// Relevant returns the nicknames of everyone sharing at least one channel
// with id, id's own nickname included when it is in any channel.
func (r *Registry) Relevant(id UserID) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	nicks, _ := r.relevantLocked(id).sorted()
	return nicks
}

func (r *Registry) relevantLocked(id UserID) audience {
	out := make(audience)
	for _, ch := range r.channels {
		if ch.Contains(id) {
			r.users.resolve(ch.members, out)
		}
	}
	return out
}

// AddChannel creates a channel owned by owner, who becomes its first member.
func (r *Registry) AddChannel(owner UserID, title string, inviteOnly bool) (Broadcast, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	nick, ok := r.users.nickname(owner)
	if !ok {
		return Broadcast{}, ErrUserNotFound
	}
	if !IsValidName(title) {
		return Broadcast{}, ErrInvalidName
	}
	if _, exists := r.channels[title]; exists {
		return Broadcast{}, ErrChannelExists
	}

	r.channels[title] = NewChannel(owner, title, inviteOnly)

	r.log.Debug().Str("channel", title).Str("owner", nick).Bool("invite_only", inviteOnly).Msg("channel created")
	return Broadcast{
		Kind:       EventChannelCreated,
		Actor:      nick,
		Channel:    title,
		Owner:      nick,
		InviteOnly: inviteOnly,
		members:    []string{nick},
		recipients: []string{nick},
		ids:        []UserID{owner},
	}, nil
}

// RemoveChannel deletes the channel. Returns false if it did not exist.
func (r *Registry) RemoveChannel(title string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.channels[title]; !ok {
		return false
	}
	delete(r.channels, title)
	r.log.Debug().Str("channel", title).Msg("channel removed")
	return true
}

// RemoveEveryone empties the channel but keeps it. Returns false if it did
// not exist.
func (r *Registry) RemoveEveryone(title string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.channels[title]
	if !ok {
		return false
	}
	ch.Clear()
	r.log.Debug().Str("channel", title).Msg("channel emptied")
	return true
}

// AddUser puts id into the channel regardless of its invite-only flag.
func (r *Registry) AddUser(id UserID, title string) (Broadcast, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addLocked(id, title, false)
}

// Join puts id into a public channel. Invite-only channels are rejected.
func (r *Registry) Join(id UserID, title string) (Broadcast, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addLocked(id, title, true)
}

func (r *Registry) addLocked(id UserID, title string, public bool) (Broadcast, error) {
	ch, ok := r.channels[title]
	if !ok {
		return Broadcast{}, ErrChannelNotFound
	}
	nick, ok := r.users.nickname(id)
	if !ok {
		return Broadcast{}, ErrUserNotFound
	}
	if public && ch.InviteOnly {
		return Broadcast{}, ErrInviteOnly
	}
	if !ch.Add(id) {
		return Broadcast{}, ErrAlreadyJoined
	}

	r.log.Debug().Str("channel", title).Str("nickname", nick).Msg("user joined")
	return r.joinedLocked(ch, nick, ""), nil
}

// Invite lets the owner of an invite-only channel add another user to it.
func (r *Registry) Invite(actor UserID, target, title string) (Broadcast, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.channels[title]
	if !ok {
		return Broadcast{}, ErrChannelNotFound
	}
	owner, ok := r.users.nickname(actor)
	if !ok {
		return Broadcast{}, ErrUserNotFound
	}
	targetID, ok := r.users.id(target)
	if !ok {
		return Broadcast{}, ErrUserNotFound
	}
	if !ch.OwnedBy(actor) {
		return Broadcast{}, ErrNotOwner
	}
	if !ch.InviteOnly {
		return Broadcast{}, ErrNotInviteOnly
	}
	if !ch.Add(targetID) {
		return Broadcast{}, ErrAlreadyJoined
	}

	r.log.Debug().Str("channel", title).Str("owner", owner).Str("nickname", target).Msg("user invited")
	return r.joinedLocked(ch, target, owner), nil
}

func (r *Registry) joinedLocked(ch *Channel, joiner, inviter string) Broadcast {
	b := Broadcast{
		Kind:       EventJoined,
		Actor:      joiner,
		Target:     inviter,
		Channel:    ch.Title,
		Owner:      r.ownerLocked(ch),
		InviteOnly: ch.InviteOnly,
	}.to(r.memberSetLocked(ch))
	b.members = b.recipients
	return b
}

// RemoveUser takes id out of the channel. The channel survives even when the
// owner is removed; use Leave for the owner-closes-channel rule.
func (r *Registry) RemoveUser(id UserID, title string) (Broadcast, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.channels[title]
	if !ok {
		return Broadcast{}, ErrChannelNotFound
	}
	if !ch.Contains(id) {
		return Broadcast{}, ErrNotInChannel
	}

	nick, _ := r.users.nickname(id)
	recipients := r.memberSetLocked(ch)
	ch.Remove(id)

	r.log.Debug().Str("channel", title).Int("user_id", int(id)).Str("nickname", nick).Msg("user removed")
	return Broadcast{
		Kind:    EventLeft,
		Actor:   nick,
		Channel: title,
	}.to(recipients), nil
}

// Leave takes id out of the channel. When the owner leaves, the channel is
// destroyed and every former member is told so.
func (r *Registry) Leave(id UserID, title string) (Broadcast, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.channels[title]
	if !ok {
		return Broadcast{}, ErrChannelNotFound
	}
	nick, ok := r.users.nickname(id)
	if !ok {
		return Broadcast{}, ErrUserNotFound
	}
	if !ch.Contains(id) {
		return Broadcast{}, ErrNotInChannel
	}

	recipients := r.memberSetLocked(ch)
	closed := r.dropLocked(ch, id)

	r.log.Debug().Str("channel", title).Str("nickname", nick).Bool("closed", closed).Msg("user left")
	return Broadcast{
		Kind:    EventLeft,
		Actor:   nick,
		Channel: title,
		Closed:  closed,
	}.to(recipients), nil
}

// Kick lets the channel owner remove a member. Kicking oneself closes the
// channel, as leaving does.
func (r *Registry) Kick(actor UserID, target, title string) (Broadcast, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.channels[title]
	if !ok {
		return Broadcast{}, ErrChannelNotFound
	}
	owner, ok := r.users.nickname(actor)
	if !ok {
		return Broadcast{}, ErrUserNotFound
	}
	if !ch.OwnedBy(actor) {
		return Broadcast{}, ErrNotOwner
	}
	targetID, ok := r.users.id(target)
	if !ok {
		return Broadcast{}, ErrUserNotFound
	}
	if !ch.Contains(targetID) {
		return Broadcast{}, ErrNotInChannel
	}

	recipients := r.memberSetLocked(ch)
	closed := r.dropLocked(ch, targetID)

	r.log.Debug().Str("channel", title).Str("owner", owner).Str("nickname", target).Bool("closed", closed).Msg("user kicked")
	return Broadcast{
		Kind:    EventKicked,
		Actor:   owner,
		Target:  target,
		Channel: title,
		Closed:  closed,
	}.to(recipients), nil
}

// dropLocked removes id from ch, deleting ch entirely when id owns it.
func (r *Registry) dropLocked(ch *Channel, id UserID) bool {
	if ch.OwnedBy(id) {
		ch.Clear()
		delete(r.channels, ch.Title)
		return true
	}
	ch.Remove(id)
	return false
}

// Message addresses text from id to every member of the channel, sender included.
func (r *Registry) Message(id UserID, title, text string) (Broadcast, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ch, ok := r.channels[title]
	if !ok {
		return Broadcast{}, ErrChannelNotFound
	}
	nick, ok := r.users.nickname(id)
	if !ok {
		return Broadcast{}, ErrUserNotFound
	}
	if !ch.Contains(id) {
		return Broadcast{}, ErrNotInChannel
	}

	return Broadcast{
		Kind:    EventMessage,
		Actor:   nick,
		Channel: title,
		Text:    text,
	}.to(r.memberSetLocked(ch)), nil
}

// Channels returns all channel titles in sorted order.
func (r *Registry) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	titles := lo.Keys(r.channels)
	slices.Sort(titles)
	return titles
}

// ChannelExists reports whether a channel with this title exists.
func (r *Registry) ChannelExists(title string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.channels[title]
	return ok
}

// IsInviteOnly reports the channel's flag; false for unknown channels.
func (r *Registry) IsInviteOnly(title string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.channels[title]
	return ok && ch.InviteOnly
}

// UserContained reports membership; false for unknown channels.
func (r *Registry) UserContained(id UserID, title string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.channels[title]
	return ok && ch.Contains(id)
}

// Users returns the sorted member nicknames; empty for unknown channels.
func (r *Registry) Users(title string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.channels[title]
	if !ok {
		return []string{}
	}
	nicks, _ := r.memberSetLocked(ch).sorted()
	return nicks
}

// Owner returns the owner's nickname. ok is false for unknown channels.
func (r *Registry) Owner(title string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.channels[title]
	if !ok {
		return "", false
	}
	owner := r.ownerLocked(ch)
	return owner, owner != ""
}

// Describe returns a snapshot of one channel.
func (r *Registry) Describe(title string) (ChannelInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.channels[title]
	if !ok {
		return ChannelInfo{}, false
	}
	members, _ := r.memberSetLocked(ch).sorted()
	return ChannelInfo{
		Title:      ch.Title,
		Owner:      r.ownerLocked(ch),
		InviteOnly: ch.InviteOnly,
		Members:    members,
	}, true
}

func (r *Registry) memberSetLocked(ch *Channel) audience {
	out := make(audience, ch.Len())
	r.users.resolve(ch.members, out)
	return out
}

func (r *Registry) ownerLocked(ch *Channel) string {
	nick, _ := r.users.nickname(ch.Owner())
	return nick
}
