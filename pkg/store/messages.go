package store

import (
	"time"

	"github.com/forumkit/forumcore/pkg/entity"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/index"
	"github.com/forumkit/forumcore/pkg/pool"
	"github.com/forumkit/forumcore/pkg/status"
)

type messageCollection struct {
	s    *Store
	pool *pool.Pool[*entity.Message]

	byID           *index.Unique[id.ID]
	byCreated      *index.Ordered[time.Time]
	byLastUpdated  *index.Ordered[time.Time]
	byUpVoteCount  *index.Ordered[int]
}

func (c *messageCollection) init(s *Store) {
	c.s = s
	c.pool = pool.New[*entity.Message](pool.KindMessage)
	c.byID = index.NewUnique[id.ID]()
	c.byCreated = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.byLastUpdated = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.byUpVoteCount = index.NewOrdered(func(a, b int) bool { return a > b })
}

func (c *messageCollection) hooks() *entity.MessageHooks {
	return &entity.MessageHooks{
		PrepareUpdateApproved: func(h pool.Handle) {},
		UpdateApproved:        func(h pool.Handle) {},
		PrepareUpdateVoteCount: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			c.byUpVoteCount.Remove(h)
		},
		UpdateVoteCount: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			m := c.pool.MustGet(h)
			c.byUpVoteCount.Insert(m.UpVoteCount(), h)
		},
	}
}

func (c *messageCollection) rebuildOrderings() {
	c.byCreated = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.byLastUpdated = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.byUpVoteCount = index.NewOrdered(func(a, b int) bool { return a > b })
	c.pool.Each(func(h pool.Handle, m *entity.Message) {
		c.byCreated.Insert(m.Created(), h)
		c.byLastUpdated.Insert(m.LastUpdated(), h)
		c.byUpVoteCount.Insert(m.UpVoteCount(), h)
	})
}

// CreateMessage allocates a Message without wiring it into any index.
func (s *Store) CreateMessage(entityID id.ID, parentThread, creator pool.Handle, content string, created time.Time) *entity.Message {
	if entityID.IsZero() {
		entityID = id.New()
	}
	return entity.NewMessage(entityID, parentThread, creator, content, created)
}

// InsertMessage wires a constructed Message into every index, the parent
// thread's message set, and the creator's owned-message set.
func (s *Store) InsertMessage(m *entity.Message) status.Code {
	c := &s.messages
	if c.byID.Contains(m.ID()) {
		return status.AlreadyExists
	}

	h := c.pool.Add(m)
	m.Bind(h, c.hooks())

	c.byID.Insert(m.ID(), h)
	c.byCreated.Insert(m.Created(), h)
	c.byLastUpdated.Insert(m.LastUpdated(), h)
	c.byUpVoteCount.Insert(m.UpVoteCount(), h)

	if t, ok := s.GetThread(m.ParentThread()); ok {
		t.AddMessage(h)
		t.RecordNewMessage(m.Created())
		s.adjustThreadTaggingMessageCounts(t, 1)
	}
	if creator, ok := s.GetUser(m.Creator()); ok {
		creator.AddOwnedMessage(h)
	}
	return status.OK
}

// adjustThreadTaggingMessageCounts applies delta to the message count of
// every tag and category currently associated with thread (spec.md
// invariant 4: tag.messageCount and the category message-count ordering
// must track the live message set at all times outside a batch-insert).
func (s *Store) adjustThreadTaggingMessageCounts(thread *entity.Thread, delta int) {
	for _, tagH := range thread.Tags().Slice() {
		if tag, ok := s.GetTag(tagH); ok {
			tag.AdjustMessageCount(delta)
		}
	}
	for _, catH := range thread.Categories().Slice() {
		if cat, ok := s.GetCategory(catH); ok {
			cat.AdjustMessageCount(delta)
		}
	}
}

// GetMessage looks up a live message by handle.
func (s *Store) GetMessage(h pool.Handle) (*entity.Message, bool) {
	return s.messages.pool.Get(h)
}

// GetMessageByID looks up a live message by id.
func (s *Store) GetMessageByID(mid id.ID) (*entity.Message, bool) {
	h, ok := s.messages.byID.Get(mid)
	if !ok {
		return nil, false
	}
	return s.messages.pool.Get(h)
}

// MessageCount returns the number of live messages.
func (s *Store) MessageCount() int { return s.messages.pool.Len() }

func (s *Store) resolveMessages(handles []pool.Handle) []*entity.Message {
	out := make([]*entity.Message, 0, len(handles))
	for _, h := range handles {
		if m, ok := s.messages.pool.Get(h); ok {
			out = append(out, m)
		}
	}
	return out
}

// ListMessagesByCreated pages the by-created ordering.
func (s *Store) ListMessagesByCreated(offset, limit int) []*entity.Message {
	return s.resolveMessages(s.messages.byCreated.Page(offset, limit))
}

// ListMessagesByUpVoteCount pages the by-up-vote-count (desc) ordering.
func (s *Store) ListMessagesByUpVoteCount(offset, limit int) []*entity.Message {
	return s.resolveMessages(s.messages.byUpVoteCount.Page(offset, limit))
}

// MoveMessage rewrites a message's parent thread, keeping both threads'
// message sets and last-updated/latest-message-created timestamps coherent.
func (s *Store) MoveMessage(mh, destThread pool.Handle) status.Code {
	m, ok := s.messages.pool.Get(mh)
	if !ok {
		return status.NotFound
	}
	dest, ok := s.GetThread(destThread)
	if !ok {
		return status.NotFound
	}
	if m.ParentThread() == destThread {
		return status.NoEffect
	}

	if src, ok := s.GetThread(m.ParentThread()); ok {
		src.RemoveMessage(mh)
		s.adjustThreadTaggingMessageCounts(src, -1)
	}
	m.SetParentThread(destThread)
	dest.AddMessage(mh)
	if m.Created().After(dest.LatestMessageCreated()) {
		dest.RecordNewMessage(m.Created())
	}
	s.adjustThreadTaggingMessageCounts(dest, 1)
	return status.OK
}

// CastUpVote records an up-vote by voter on a message, tracking it on both
// sides of the relationship (message.upVotes and user.castVotes) and
// appending it to the message creator's received-vote history.
func (s *Store) CastUpVote(mh, voterH pool.Handle, at time.Time) status.Code {
	m, ok := s.messages.pool.Get(mh)
	if !ok {
		return status.NotFound
	}
	voter, ok := s.GetUser(voterH)
	if !ok {
		return status.NotFound
	}
	m.UpVote(voterH, at)
	voter.AddCastVote(mh)
	if author, ok := s.GetUser(m.Creator()); ok {
		author.RecordVote(entity.VoteRecord{Message: mh, At: at, Up: true})
	}
	return status.OK
}

// CastDownVote records a down-vote by voter on a message, with the same
// bookkeeping as CastUpVote.
func (s *Store) CastDownVote(mh, voterH pool.Handle, at time.Time) status.Code {
	m, ok := s.messages.pool.Get(mh)
	if !ok {
		return status.NotFound
	}
	voter, ok := s.GetUser(voterH)
	if !ok {
		return status.NotFound
	}
	m.DownVote(voterH, at)
	voter.AddCastVote(mh)
	if author, ok := s.GetUser(m.Creator()); ok {
		author.RecordVote(entity.VoteRecord{Message: mh, At: at, Up: false})
	}
	return status.OK
}

// ResetMessageVote clears any vote voter cast on a message. Returns
// status.NoEffect if voter had not voted.
func (s *Store) ResetMessageVote(mh, voterH pool.Handle) status.Code {
	m, ok := s.messages.pool.Get(mh)
	if !ok {
		return status.NotFound
	}
	if !m.ResetVote(voterH) {
		return status.NoEffect
	}
	if voter, ok := s.GetUser(voterH); ok {
		voter.RemoveCastVote(mh)
	}
	return status.OK
}

// SetMessageApproved updates a message's moderation-approved flag.
func (s *Store) SetMessageApproved(h pool.Handle, approved bool) status.Code {
	m, ok := s.messages.pool.Get(h)
	if !ok {
		return status.NotFound
	}
	m.SetApproved(approved)
	return status.OK
}

// DeleteMessage removes m, deletes its comments and detaches its
// attachments, which are kept (spec.md invariant 7 — deleting a message
// cascades to its comments).
func (s *Store) DeleteMessage(h pool.Handle) status.Code {
	m, ok := s.messages.pool.Get(h)
	if !ok {
		return status.NotFound
	}

	for _, ch := range m.Comments().Slice() {
		s.DeleteComment(ch)
	}
	for _, ah := range m.Attachments().Slice() {
		if a, ok := s.GetAttachment(ah); ok {
			a.RemoveMessage(h)
		}
	}

	if t, ok := s.GetThread(m.ParentThread()); ok {
		t.RemoveMessage(h)
		s.adjustThreadTaggingMessageCounts(t, -1)
	}
	if creator, ok := s.GetUser(m.Creator()); ok {
		creator.RemoveOwnedMessage(h)
	}
	s.Privileges.RemoveTarget(entity.PrivilegeTargetMessage, m.ID())

	c := &s.messages
	c.byID.Remove(m.ID())
	c.byCreated.Remove(h)
	c.byLastUpdated.Remove(h)
	c.byUpVoteCount.Remove(h)
	c.pool.Remove(h)
	return status.OK
}
