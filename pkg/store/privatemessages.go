package store

import (
	"time"

	"github.com/forumkit/forumcore/pkg/entity"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/index"
	"github.com/forumkit/forumcore/pkg/pool"
	"github.com/forumkit/forumcore/pkg/status"
)

type privateMessageCollection struct {
	s    *Store
	pool *pool.Pool[*entity.PrivateMessage]

	byID      *index.Unique[id.ID]
	byCreated *index.Ordered[time.Time]
}

func (c *privateMessageCollection) init(s *Store) {
	c.s = s
	c.pool = pool.New[*entity.PrivateMessage](pool.KindPrivateMessage)
	c.byID = index.NewUnique[id.ID]()
	c.byCreated = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
}

func (c *privateMessageCollection) rebuildOrderings() {
	c.byCreated = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.pool.Each(func(h pool.Handle, p *entity.PrivateMessage) {
		c.byCreated.Insert(p.Created(), h)
	})
}

// CreatePrivateMessage allocates a PrivateMessage without wiring it into any
// index.
func (s *Store) CreatePrivateMessage(entityID id.ID, source, destination pool.Handle, content string, created time.Time) *entity.PrivateMessage {
	if entityID.IsZero() {
		entityID = id.New()
	}
	return entity.NewPrivateMessage(entityID, source, destination, content, created)
}

// InsertPrivateMessage wires a constructed PrivateMessage into every index
// and both users' sent/received sets.
func (s *Store) InsertPrivateMessage(p *entity.PrivateMessage) status.Code {
	c := &s.privMsgs
	if c.byID.Contains(p.ID()) {
		return status.AlreadyExists
	}

	h := c.pool.Add(p)
	p.Bind(h)

	c.byID.Insert(p.ID(), h)
	c.byCreated.Insert(p.Created(), h)

	if source, ok := s.GetUser(p.Source()); ok {
		source.AddSentPrivateMessage(h)
	}
	if dest, ok := s.GetUser(p.Destination()); ok {
		dest.AddReceivedPrivateMessage(h)
	}
	return status.OK
}

// GetPrivateMessage looks up a live private message by handle.
func (s *Store) GetPrivateMessage(h pool.Handle) (*entity.PrivateMessage, bool) {
	return s.privMsgs.pool.Get(h)
}

// GetPrivateMessageByID looks up a live private message by id.
func (s *Store) GetPrivateMessageByID(pid id.ID) (*entity.PrivateMessage, bool) {
	h, ok := s.privMsgs.byID.Get(pid)
	if !ok {
		return nil, false
	}
	return s.privMsgs.pool.Get(h)
}

// PrivateMessageCount returns the number of live private messages.
func (s *Store) PrivateMessageCount() int { return s.privMsgs.pool.Len() }

// ListPrivateMessagesByCreated pages the by-created ordering.
func (s *Store) ListPrivateMessagesByCreated(offset, limit int) []*entity.PrivateMessage {
	handles := s.privMsgs.byCreated.Page(offset, limit)
	out := make([]*entity.PrivateMessage, 0, len(handles))
	for _, h := range handles {
		if p, ok := s.privMsgs.pool.Get(h); ok {
			out = append(out, p)
		}
	}
	return out
}

// DeletePrivateMessage removes p (no cascade: a private message is a leaf
// entity).
func (s *Store) DeletePrivateMessage(h pool.Handle) status.Code {
	p, ok := s.privMsgs.pool.Get(h)
	if !ok {
		return status.NotFound
	}

	if source, ok := s.GetUser(p.Source()); ok {
		source.RemoveSentPrivateMessage(h)
	}
	if dest, ok := s.GetUser(p.Destination()); ok {
		dest.RemoveReceivedPrivateMessage(h)
	}

	c := &s.privMsgs
	c.byID.Remove(p.ID())
	c.byCreated.Remove(h)
	c.pool.Remove(h)
	return status.OK
}
