package core

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// UserID identifies a live connection. It is assigned by the connection layer
// and may be reused once the previous holder is deregistered.
type UserID int

// directory is the bidirectional id <-> nickname index. Not safe for concurrent
// use; Registry serialises access.
type directory struct {
	byID   map[UserID]string
	byNick map[string]UserID
}

func newDirectory() *directory {
	return &directory{
		byID:   make(map[UserID]string),
		byNick: make(map[string]UserID),
	}
}

func (d *directory) set(id UserID, nick string) {
	if old, ok := d.byID[id]; ok {
		delete(d.byNick, old)
	}
	d.byID[id] = nick
	d.byNick[nick] = id
}

func (d *directory) remove(id UserID) (string, bool) {
	nick, ok := d.byID[id]
	if !ok {
		return "", false
	}
	delete(d.byID, id)
	delete(d.byNick, nick)
	return nick, true
}

func (d *directory) nickname(id UserID) (string, bool) {
	nick, ok := d.byID[id]
	return nick, ok
}

func (d *directory) id(nick string) (UserID, bool) {
	id, ok := d.byNick[nick]
	return id, ok
}

func (d *directory) taken(nick string) bool {
	_, ok := d.byNick[nick]
	return ok
}

func (d *directory) nicknames() []string {
	nicks := lo.Keys(d.byNick)
	slices.Sort(nicks)
	return nicks
}

// resolve adds the nicknames of member ids to into, skipping ids no longer registered.
func (d *directory) resolve(ids map[UserID]struct{}, into audience) {
	for id := range ids {
		if nick, ok := d.byID[id]; ok {
			into[id] = nick
		}
	}
}

// audience accumulates the recipients of a broadcast, keyed by id.
type audience map[UserID]string

// sorted returns nicknames in order together with the matching ids.
func (a audience) sorted() ([]string, []UserID) {
	ids := lo.Keys(a)
	slices.SortFunc(ids, func(x, y UserID) int { return strings.Compare(a[x], a[y]) })
	nicks := lo.Map(ids, func(id UserID, _ int) string { return a[id] })
	return nicks, ids
}
