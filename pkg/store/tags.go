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

type tagCollection struct {
	s    *Store
	pool *pool.Pool[*entity.Tag]

	byID           *index.Unique[id.ID]
	byNameKey      *index.Unique[string]
	byNameOrder    *index.Ordered[collation.Key]
	byThreadCount  *index.Ordered[int]
	byMessageCount *index.Ordered[int]
}

func (c *tagCollection) init(s *Store) {
	c.s = s
	c.pool = pool.New[*entity.Tag](pool.KindTag)
	c.byID = index.NewUnique[id.ID]()
	c.byNameKey = index.NewUnique[string]()
	c.byNameOrder = index.NewOrdered(func(a, b collation.Key) bool { return collation.Compare(a, b) < 0 })
	c.byThreadCount = index.NewOrdered(func(a, b int) bool { return a > b })
	c.byMessageCount = index.NewOrdered(func(a, b int) bool { return a > b })
}

func (c *tagCollection) hooks() *entity.TagHooks {
	return &entity.TagHooks{
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
		PrepareUpdateThreadCount: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			c.byThreadCount.Remove(h)
		},
		UpdateThreadCount: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			t := c.pool.MustGet(h)
			c.byThreadCount.Insert(t.ThreadCount(), h)
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
	}
}

func (c *tagCollection) rebuildOrderings() {
	c.byNameKey = index.NewUnique[string]()
	c.byNameOrder = index.NewOrdered(func(a, b collation.Key) bool { return collation.Compare(a, b) < 0 })
	c.byThreadCount = index.NewOrdered(func(a, b int) bool { return a > b })
	c.byMessageCount = index.NewOrdered(func(a, b int) bool { return a > b })
	c.pool.Each(func(h pool.Handle, t *entity.Tag) {
		c.byNameKey.Insert(string(t.NameKey()), h)
		c.byNameOrder.Insert(t.NameKey(), h)
		c.byThreadCount.Insert(t.ThreadCount(), h)
		c.byMessageCount.Insert(t.MessageCount(), h)
	})
}

// CreateTag allocates a Tag without wiring it into any index.
func (s *Store) CreateTag(entityID id.ID, name string, created time.Time) *entity.Tag {
	if entityID.IsZero() {
		entityID = id.New()
	}
	key := collation.DeriveKey(name)
	return entity.NewTag(entityID, name, key, created)
}

// InsertTag wires a constructed Tag into every index.
func (s *Store) InsertTag(t *entity.Tag) status.Code {
	c := &s.tags
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
	c.byThreadCount.Insert(t.ThreadCount(), h)
	c.byMessageCount.Insert(t.MessageCount(), h)
	return status.OK
}

// GetTag looks up a live tag by handle.
func (s *Store) GetTag(h pool.Handle) (*entity.Tag, bool) {
	return s.tags.pool.Get(h)
}

// GetTagByID looks up a live tag by id.
func (s *Store) GetTagByID(tid id.ID) (*entity.Tag, bool) {
	h, ok := s.tags.byID.Get(tid)
	if !ok {
		return nil, false
	}
	return s.tags.pool.Get(h)
}

// TagCount returns the number of live tags.
func (s *Store) TagCount() int { return s.tags.pool.Len() }

func (s *Store) resolveTags(handles []pool.Handle) []*entity.Tag {
	out := make([]*entity.Tag, 0, len(handles))
	for _, h := range handles {
		if t, ok := s.tags.pool.Get(h); ok {
			out = append(out, t)
		}
	}
	return out
}

// ListTagsByName pages the collation-ordered by-name ordering.
func (s *Store) ListTagsByName(offset, limit int) []*entity.Tag {
	return s.resolveTags(s.tags.byNameOrder.Page(offset, limit))
}

// ListTagsByThreadCount pages the by-thread-count (desc) ordering.
func (s *Store) ListTagsByThreadCount(offset, limit int) []*entity.Tag {
	return s.resolveTags(s.tags.byThreadCount.Page(offset, limit))
}

// ListTagsByMessageCount pages the by-message-count (desc) ordering.
func (s *Store) ListTagsByMessageCount(offset, limit int) []*entity.Tag {
	return s.resolveTags(s.tags.byMessageCount.Page(offset, limit))
}

// TagThread associates tag with thread, updating both sides and the tag's
// message-count (every message already in the thread counts toward it).
func (s *Store) TagThread(tagH, threadH pool.Handle) status.Code {
	tag, ok := s.GetTag(tagH)
	if !ok {
		return status.NotFound
	}
	thread, ok := s.GetThread(threadH)
	if !ok {
		return status.NotFound
	}
	if !thread.AddTag(tagH) {
		return status.NoEffect
	}
	tag.AddThread(threadH)
	tag.AdjustMessageCount(thread.MessageCount())

	for _, catH := range tag.Categories().Slice() {
		if thread.Categories().Contains(catH) {
			continue
		}
		thread.AddCategory(catH)
		if cat, ok := s.GetCategory(catH); ok {
			cat.AdjustMessageCount(thread.MessageCount())
		}
	}
	return status.OK
}

// UntagThread removes the tag/thread association.
func (s *Store) UntagThread(tagH, threadH pool.Handle) status.Code {
	tag, ok := s.GetTag(tagH)
	if !ok {
		return status.NotFound
	}
	thread, ok := s.GetThread(threadH)
	if !ok {
		return status.NotFound
	}
	if !thread.RemoveTag(tagH) {
		return status.NoEffect
	}
	tag.RemoveThread(threadH)
	tag.AdjustMessageCount(-thread.MessageCount())

	for _, catH := range tag.Categories().Slice() {
		if !thread.Categories().Contains(catH) {
			continue
		}
		if s.categoryStillCoversThread(threadH, catH) {
			continue
		}
		thread.RemoveCategory(catH)
		if cat, ok := s.GetCategory(catH); ok {
			cat.AdjustMessageCount(-thread.MessageCount())
		}
	}
	return status.OK
}

// DeleteTag removes t, clearing the tag from every thread that carries it
// (spec.md invariant 7: deleting a tag untags its threads but does not
// delete them).
func (s *Store) DeleteTag(h pool.Handle) status.Code {
	t, ok := s.tags.pool.Get(h)
	if !ok {
		return status.NotFound
	}

	for _, catH := range t.Categories().Slice() {
		if cat, ok := s.GetCategory(catH); ok {
			cat.RemoveTag(h)
		}
	}
	for _, th := range t.Threads().Slice() {
		thread, ok := s.GetThread(th)
		if !ok {
			continue
		}
		thread.RemoveTag(h)
		for _, catH := range t.Categories().Slice() {
			if thread.Categories().Contains(catH) && !s.categoryStillCoversThread(th, catH) {
				thread.RemoveCategory(catH)
				if cat, ok := s.GetCategory(catH); ok {
					cat.AdjustMessageCount(-thread.MessageCount())
				}
			}
		}
	}
	s.Privileges.RemoveTarget(entity.PrivilegeTargetTag, t.ID())

	c := &s.tags
	c.byID.Remove(t.ID())
	c.byNameKey.Remove(string(t.NameKey()))
	c.byNameOrder.Remove(h)
	c.byThreadCount.Remove(h)
	c.byMessageCount.Remove(h)
	c.pool.Remove(h)
	return status.OK
}
