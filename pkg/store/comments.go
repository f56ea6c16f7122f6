package store

import (
	"time"

	"github.com/forumkit/forumcore/pkg/entity"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/index"
	"github.com/forumkit/forumcore/pkg/pool"
	"github.com/forumkit/forumcore/pkg/status"
)

type commentCollection struct {
	s    *Store
	pool *pool.Pool[*entity.Comment]

	byID      *index.Unique[id.ID]
	byCreated *index.Ordered[time.Time]
}

func (c *commentCollection) init(s *Store) {
	c.s = s
	c.pool = pool.New[*entity.Comment](pool.KindComment)
	c.byID = index.NewUnique[id.ID]()
	c.byCreated = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
}

func (c *commentCollection) rebuildOrderings() {
	c.byCreated = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.pool.Each(func(h pool.Handle, cm *entity.Comment) {
		c.byCreated.Insert(cm.Created(), h)
	})
}

// CreateComment allocates a Comment without wiring it into any index.
func (s *Store) CreateComment(entityID id.ID, parentMessage, creator pool.Handle, content string, created time.Time) *entity.Comment {
	if entityID.IsZero() {
		entityID = id.New()
	}
	return entity.NewComment(entityID, parentMessage, creator, content, created)
}

// InsertComment wires a constructed Comment into every index, the parent
// message's comment set, and the creator's owned-comment set.
func (s *Store) InsertComment(cm *entity.Comment) status.Code {
	c := &s.comments
	if c.byID.Contains(cm.ID()) {
		return status.AlreadyExists
	}

	h := c.pool.Add(cm)
	cm.Bind(h)

	c.byID.Insert(cm.ID(), h)
	c.byCreated.Insert(cm.Created(), h)

	if m, ok := s.GetMessage(cm.ParentMessage()); ok {
		m.AddComment(h)
	}
	if creator, ok := s.GetUser(cm.Creator()); ok {
		creator.AddOwnedComment(h)
	}
	return status.OK
}

// GetComment looks up a live comment by handle.
func (s *Store) GetComment(h pool.Handle) (*entity.Comment, bool) {
	return s.comments.pool.Get(h)
}

// GetCommentByID looks up a live comment by id.
func (s *Store) GetCommentByID(cid id.ID) (*entity.Comment, bool) {
	h, ok := s.comments.byID.Get(cid)
	if !ok {
		return nil, false
	}
	return s.comments.pool.Get(h)
}

// CommentCount returns the number of live comments.
func (s *Store) CommentCount() int { return s.comments.pool.Len() }

// ListCommentsByCreated pages the by-created ordering.
func (s *Store) ListCommentsByCreated(offset, limit int) []*entity.Comment {
	handles := s.comments.byCreated.Page(offset, limit)
	out := make([]*entity.Comment, 0, len(handles))
	for _, h := range handles {
		if cm, ok := s.comments.pool.Get(h); ok {
			out = append(out, cm)
		}
	}
	return out
}

// SolveComment transitions a comment solved false -> true and increments its
// parent message's solved-comment-count (spec.md §4.11). Returns
// status.NoEffect if the comment was already solved.
func (s *Store) SolveComment(h pool.Handle) status.Code {
	cm, ok := s.comments.pool.Get(h)
	if !ok {
		return status.NotFound
	}
	if !cm.Solve() {
		return status.NoEffect
	}
	if m, ok := s.GetMessage(cm.ParentMessage()); ok {
		m.IncrementSolvedCommentCount()
	}
	return status.OK
}

// DeleteComment removes cm (spec.md invariant 7: deleting a comment has no
// further cascade).
func (s *Store) DeleteComment(h pool.Handle) status.Code {
	cm, ok := s.comments.pool.Get(h)
	if !ok {
		return status.NotFound
	}

	if m, ok := s.GetMessage(cm.ParentMessage()); ok {
		m.RemoveComment(h)
	}
	if creator, ok := s.GetUser(cm.Creator()); ok {
		creator.RemoveOwnedComment(h)
	}

	c := &s.comments
	c.byID.Remove(cm.ID())
	c.byCreated.Remove(h)
	c.pool.Remove(h)
	return status.OK
}
