package http

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-registry/internal/core"
	"github.com/vovakirdan/wirechat-registry/internal/proto"
)

// Session is one live WebSocket connection as seen by the delivery side.
type Session struct {
	id   core.UserID
	sid  string
	send chan proto.Outbound
}

// Sessions assigns connection ids, keeps the registry informed about
// connects and disconnects, and fans broadcasts out to connections.
type Sessions struct {
	mu     sync.RWMutex
	byID   map[core.UserID]*Session
	reg    *core.Registry
	buffer int
	log    *zerolog.Logger
}

// NewSessions creates an empty session table backed by reg.
func NewSessions(reg *core.Registry, buffer int, logger *zerolog.Logger) *Sessions {
	if buffer <= 0 {
		buffer = 1
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Sessions{
		byID:   make(map[core.UserID]*Session),
		reg:    reg,
		buffer: buffer,
		log:    logger,
	}
}

// Open allocates the smallest free connection id, registers it and greets
// the new user.
func (s *Sessions) Open() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := core.UserID(0)
	for {
		if _, taken := s.byID[id]; !taken {
			break
		}
		id++
	}
	sess := &Session{
		id:   id,
		sid:  uuid.NewString(),
		send: make(chan proto.Outbound, s.buffer),
	}
	s.byID[id] = sess

	b := s.reg.Register(id)
	s.log.Info().Str("session", sess.sid).Int("user_id", int(id)).Str("nickname", b.Actor).Msg("client connected")
	s.deliverLocked(b)
	return sess
}

// Close deregisters the session's user, notifies its peers and releases the id.
func (s *Sessions) Close(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The id must not be handed out again before the registry forgot it.
	b := s.reg.Deregister(sess.id)
	delete(s.byID, sess.id)
	s.deliverLocked(b)

	s.log.Info().
		Str("session", sess.sid).
		Int("user_id", int(sess.id)).
		Str("nickname", b.Actor).
		Strs("closed", b.ClosedChannels()).
		Msg("client disconnected")
}

// Dispatch runs op and queues the broadcast it returns. No session opens or
// closes in between, so the recipient ids in the broadcast still name the
// connections they were resolved for.
func (s *Sessions) Dispatch(op func() core.Broadcast) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.deliverLocked(op())
}

// Deliver queues an already built broadcast on every recipient's connection.
func (s *Sessions) Deliver(b core.Broadcast) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.deliverLocked(b)
}

// deliverLocked sends to recipients by id. Slow consumers whose queue is
// full miss the event.
func (s *Sessions) deliverLocked(b core.Broadcast) {
	ids := b.RecipientIDs()
	if len(ids) == 0 {
		return
	}
	out := outboundFromBroadcast(b)

	for _, id := range ids {
		sess, ok := s.byID[id]
		if !ok {
			continue
		}
		select {
		case sess.send <- out:
		default:
			s.log.Warn().Str("session", sess.sid).Int("user_id", int(id)).Str("event", b.Kind.String()).Msg("dropping event for slow consumer")
		}
	}
}

// Len returns the number of open sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
