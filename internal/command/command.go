// Package command maps parsed client requests onto registry operations.
package command

// Kind describes what the client wants to do.
type Kind int

const (
	// Nickname renames the sender.
	Nickname Kind = iota
	// CreateChannel creates a channel owned by the sender.
	CreateChannel
	// Join subscribes the sender to a public channel.
	Join
	// Leave unsubscribes the sender from a channel.
	Leave
	// Invite adds Target to an invite-only channel the sender owns.
	Invite
	// Kick removes Target from a channel the sender owns.
	Kick
	// Message delivers Text to channel members.
	Message
)

// Command represents an action requested by a client.
type Command struct {
	Kind       Kind
	Channel    string
	Target     string
	Text       string
	InviteOnly bool
}
