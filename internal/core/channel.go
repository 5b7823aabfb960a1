package core

// Channel is a named set of members with an owner and an invite-only flag.
// Membership is stored by UserID and resolved to nicknames at query time.
type Channel struct {
	Title      string
	InviteOnly bool

	owner   UserID
	members map[UserID]struct{}
}

// NewChannel constructs a channel with the owner already a member.
func NewChannel(owner UserID, title string, inviteOnly bool) *Channel {
	ch := &Channel{
		Title:      title,
		InviteOnly: inviteOnly,
		owner:      owner,
		members:    make(map[UserID]struct{}),
	}
	ch.members[owner] = struct{}{}
	return ch
}

// Owner returns the creator's id. A channel never outlives its owner.
func (c *Channel) Owner() UserID {
	return c.owner
}

// OwnedBy reports whether id owns the channel.
func (c *Channel) OwnedBy(id UserID) bool {
	return c.owner == id
}

// Add inserts a member. Returns true if newly added.
func (c *Channel) Add(id UserID) bool {
	if _, exists := c.members[id]; exists {
		return false
	}
	c.members[id] = struct{}{}
	return true
}

// Remove deletes a member. Returns true if removed.
func (c *Channel) Remove(id UserID) bool {
	if _, exists := c.members[id]; !exists {
		return false
	}
	delete(c.members, id)
	return true
}

// Contains reports membership.
func (c *Channel) Contains(id UserID) bool {
	_, ok := c.members[id]
	return ok
}

// Clear removes every member; title, owner and flag are kept.
func (c *Channel) Clear() {
	clear(c.members)
}

// Len returns the member count.
func (c *Channel) Len() int {
	return len(c.members)
}
