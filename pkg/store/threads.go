package store

import (
	"time"

	"github.com/forumkit/forumcore/pkg/collation"
	"github.com/forumkit/forumcore/pkg/entity"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/index"
	"github.com/forumkit/forumcore/pkg/pool"
	"github.com/forumkit/forumcore/pkg/status"
)

type threadCollection struct {
	s    *Store
	pool *pool.Pool[*entity.Thread]

	byID                 *index.Unique[id.ID]
	byNameKey            *index.Unique[string]
	byNameOrder          *index.Ordered[collation.Key]
	byCreated            *index.Ordered[time.Time]
	byLastUpdated        *index.Ordered[time.Time]
	byLatestMessage      *index.Ordered[time.Time]
	byMessageCount       *index.Ordered[int]
	byPinDisplayOrder    *index.Ordered[uint16] // pinned subset only (order > 0)
}

func (c *threadCollection) init(s *Store) {
	c.s = s
	c.pool = pool.New[*entity.Thread](pool.KindThread)
	c.byID = index.NewUnique[id.ID]()
	c.byNameKey = index.NewUnique[string]()
	c.byNameOrder = index.NewOrdered(func(a, b collation.Key) bool { return collation.Compare(a, b) < 0 })
	c.byCreated = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.byLastUpdated = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.byLatestMessage = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.byMessageCount = index.NewOrdered(func(a, b int) bool { return a > b })
	c.byPinDisplayOrder = index.NewOrdered(func(a, b uint16) bool { return a < b })
}

func (c *threadCollection) hooks() *entity.ThreadHooks {
	return &entity.ThreadHooks{
		PrepareUpdateName: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			t := c.pool.MustGet(h)
			c.byNameKey.Remove(string(t.NameKey()))
			c.byNameOrder.Remove(h)
		},
		UpdateName: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			t := c.pool.MustGet(h)
			c.byNameKey.Insert(string(t.NameKey()), h)
			c.byNameOrder.Insert(t.NameKey(), h)
		},
		PrepareUpdateLastUpdated: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			c.byLastUpdated.Remove(h)
		},
		UpdateLastUpdated: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			t := c.pool.MustGet(h)
			c.byLastUpdated.Insert(t.LastUpdated(), h)
		},
		PrepareUpdateLatestMessage: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			c.byLatestMessage.Remove(h)
		},
		UpdateLatestMessage: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			t := c.pool.MustGet(h)
			c.byLatestMessage.Insert(t.LatestMessageCreated(), h)
		},
		PrepareUpdateMessageCount: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			c.byMessageCount.Remove(h)
		},
		UpdateMessageCount: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			t := c.pool.MustGet(h)
			c.byMessageCount.Insert(t.MessageCount(), h)
		},
		PrepareUpdatePinDisplayOrder: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			c.byPinDisplayOrder.Remove(h)
		},
		UpdatePinDisplayOrder: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			t := c.pool.MustGet(h)
			if t.PinDisplayOrder() > 0 {
				c.byPinDisplayOrder.Insert(t.PinDisplayOrder(), h)
			}
		},
	}
}

func (c *threadCollection) rebuildOrderings() {
	c.byNameKey = index.NewUnique[string]()
	c.byNameOrder = index.NewOrdered(func(a, b collation.Key) bool { return collation.Compare(a, b) < 0 })
	c.byCreated = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.byLastUpdated = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.byLatestMessage = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.byMessageCount = index.NewOrdered(func(a, b int) bool { return a > b })
	c.byPinDisplayOrder = index.NewOrdered(func(a, b uint16) bool { return a < b })
	c.pool.Each(func(h pool.Handle, t *entity.Thread) {
		c.byNameKey.Insert(string(t.NameKey()), h)
		c.byNameOrder.Insert(t.NameKey(), h)
		c.byCreated.Insert(t.Created(), h)
		c.byLastUpdated.Insert(t.LastUpdated(), h)
		c.byLatestMessage.Insert(t.LatestMessageCreated(), h)
		c.byMessageCount.Insert(t.MessageCount(), h)
		if t.PinDisplayOrder() > 0 {
			c.byPinDisplayOrder.Insert(t.PinDisplayOrder(), h)
		}
	})
}

// CreateThread allocates the in-memory entity without wiring it into any index.
func (s *Store) CreateThread(entityID id.ID, name string, creator pool.Handle, created time.Time) *entity.Thread {
	if entityID.IsZero() {
		entityID = id.New()
	}
	key := collation.DeriveKey(name)
	return entity.NewThread(entityID, name, key, creator, created)
}

// InsertThread wires a constructed Thread into every index and the
// creator's owned-thread set.
func (s *Store) InsertThread(t *entity.Thread) status.Code {
	c := &s.threads
	if c.byID.Contains(t.ID()) {
		return status.AlreadyExists
	}
	if c.byNameKey.Contains(string(t.NameKey())) {
		return status.AlreadyExists
	}

	h := c.pool.Add(t)
	t.Bind(h, c.hooks())

	c.byID.Insert(t.ID(), h)
	c.byNameKey.Insert(string(t.NameKey()), h)
	c.byNameOrder.Insert(t.NameKey(), h)
	c.byCreated.Insert(t.Created(), h)
	c.byLastUpdated.Insert(t.LastUpdated(), h)
	c.byLatestMessage.Insert(t.LatestMessageCreated(), h)
	c.byMessageCount.Insert(t.MessageCount(), h)

	if creator, ok := s.GetUser(t.Creator()); ok {
		creator.AddOwnedThread(h)
	}
	return status.OK
}

// GetThread looks up a live thread by handle.
func (s *Store) GetThread(h pool.Handle) (*entity.Thread, bool) {
	return s.threads.pool.Get(h)
}

// GetThreadByID looks up a live thread by id.
func (s *Store) GetThreadByID(tid id.ID) (*entity.Thread, bool) {
	h, ok := s.threads.byID.Get(tid)
	if !ok {
		return nil, false
	}
	return s.threads.pool.Get(h)
}

// ThreadCount returns the number of live threads.
func (s *Store) ThreadCount() int { return s.threads.pool.Len() }

func (s *Store) resolveThreads(handles []pool.Handle) []*entity.Thread {
	out := make([]*entity.Thread, 0, len(handles))
	for _, h := range handles {
		if t, ok := s.threads.pool.Get(h); ok {
			out = append(out, t)
		}
	}
	return out
}

// ListThreadsByCreated pages the by-created ordering.
func (s *Store) ListThreadsByCreated(offset, limit int) []*entity.Thread {
	return s.resolveThreads(s.threads.byCreated.Page(offset, limit))
}

// ListThreadsByLastUpdated pages the by-last-updated ordering (the default
// forum thread listing).
func (s *Store) ListThreadsByLastUpdated(offset, limit int) []*entity.Thread {
	return s.resolveThreads(s.threads.byLastUpdated.Page(offset, limit))
}

// ListThreadsByLatestMessage pages the by-latest-message-created ordering.
func (s *Store) ListThreadsByLatestMessage(offset, limit int) []*entity.Thread {
	return s.resolveThreads(s.threads.byLatestMessage.Page(offset, limit))
}

// ListThreadsByMessageCount pages the by-message-count ordering.
func (s *Store) ListThreadsByMessageCount(offset, limit int) []*entity.Thread {
	return s.resolveThreads(s.threads.byMessageCount.Page(offset, limit))
}

// ListThreadsByName pages the collation-ordered by-name ordering.
func (s *Store) ListThreadsByName(offset, limit int) []*entity.Thread {
	return s.resolveThreads(s.threads.byNameOrder.Page(offset, limit))
}

// ListPinnedThreads pages the pin-display-order subset.
func (s *Store) ListPinnedThreads(offset, limit int) []*entity.Thread {
	return s.resolveThreads(s.threads.byPinDisplayOrder.Page(offset, limit))
}

// ThreadNameRank returns the zero-based lower-bound rank of nameKey in the
// by-name ordering.
func (s *Store) ThreadNameRank(nameKey collation.Key) int {
	return s.threads.byNameOrder.LowerBoundRank(nameKey)
}

// DeleteThread removes t and cascades to its messages (spec.md invariant 7).
func (s *Store) DeleteThread(h pool.Handle) status.Code {
	t, ok := s.threads.pool.Get(h)
	if !ok {
		return status.NotFound
	}

	for _, mh := range t.Messages().Slice() {
		s.DeleteMessage(mh)
	}

	for _, tagH := range t.Tags().Slice() {
		if tag, ok := s.GetTag(tagH); ok {
			tag.RemoveThread(h)
		}
	}
	if creator, ok := s.GetUser(t.Creator()); ok {
		creator.RemoveOwnedThread(h)
	}
	s.Privileges.RemoveTarget(entity.PrivilegeTargetThread, t.ID())

	c := &s.threads
	c.byID.Remove(t.ID())
	c.byNameKey.Remove(string(t.NameKey()))
	c.byNameOrder.Remove(h)
	c.byCreated.Remove(h)
	c.byLastUpdated.Remove(h)
	c.byLatestMessage.Remove(h)
	c.byMessageCount.Remove(h)
	c.byPinDisplayOrder.Remove(h)
	c.pool.Remove(h)
	return status.OK
}

// MergeThreads moves every message from "from" into "into" (rewriting each
// message's parent-thread handle), unions subscriber sets, then deletes
// "from" without re-deleting its (now-moved) messages (spec.md invariant 8).
// Each moved message's tag/category message counts are decremented on
// "from"'s tag set and incremented on "into"'s, since the two threads may
// carry different tags (spec.md invariant 4).
func (s *Store) MergeThreads(from, into pool.Handle) status.Code {
	fromThread, ok := s.threads.pool.Get(from)
	if !ok {
		return status.NotFound
	}
	intoThread, ok := s.threads.pool.Get(into)
	if !ok {
		return status.NotFound
	}
	if from == into {
		return status.InvalidParameters
	}

	for _, mh := range fromThread.Messages().Slice() {
		m, ok := s.GetMessage(mh)
		if !ok {
			continue
		}
		m.SetParentThread(into)
		intoThread.AddMessage(mh)
		if m.Created().After(intoThread.LatestMessageCreated()) {
			intoThread.RecordNewMessage(m.Created())
		}
		s.adjustThreadTaggingMessageCounts(fromThread, -1)
		s.adjustThreadTaggingMessageCounts(intoThread, 1)
	}
	for _, uh := range fromThread.Subscribers().Slice() {
		intoThread.AddSubscriber(uh)
		if u, ok := s.GetUser(uh); ok {
			u.Unsubscribe(from)
			u.Subscribe(into)
		}
	}

	// Detach from's message set before delete so DeleteThread's cascade
	// doesn't re-delete messages that now belong to "into".
	for _, mh := range fromThread.Messages().Slice() {
		fromThread.RemoveMessage(mh)
	}

	return s.DeleteThread(from)
}
