package store

import (
	"github.com/forumkit/forumcore/pkg/entity"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/index"
	"github.com/forumkit/forumcore/pkg/pool"
	"github.com/forumkit/forumcore/pkg/status"
)

// categorySiblingKey identifies a category by name within one parent's
// children (spec.md's data model: category name is "unique among
// siblings", not globally unique).
type categorySiblingKey struct {
	parent pool.Handle
	name   string
}

type categoryCollection struct {
	s    *Store
	pool *pool.Pool[*entity.Category]

	byID           *index.Unique[id.ID]
	byParentName   *index.Unique[categorySiblingKey]
	byDisplayOrder *index.Ordered[int]
	byMessageCount *index.Ordered[int]
}

func (c *categoryCollection) init(s *Store) {
	c.s = s
	c.pool = pool.New[*entity.Category](pool.KindCategory)
	c.byID = index.NewUnique[id.ID]()
	c.byParentName = index.NewUnique[categorySiblingKey]()
	c.byDisplayOrder = index.NewOrdered(func(a, b int) bool { return a < b })
	c.byMessageCount = index.NewOrdered(func(a, b int) bool { return a > b })
}

func (c *categoryCollection) hooks() *entity.CategoryHooks {
	return &entity.CategoryHooks{
		PrepareUpdateName: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			cat := c.pool.MustGet(h)
			c.byParentName.Remove(categorySiblingKey{cat.Parent(), cat.Name()})
		},
		UpdateName: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			cat := c.pool.MustGet(h)
			c.byParentName.Insert(categorySiblingKey{cat.Parent(), cat.Name()}, h)
		},
		PrepareUpdateDisplayOrder: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			c.byDisplayOrder.Remove(h)
		},
		UpdateDisplayOrder: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			cat := c.pool.MustGet(h)
			c.byDisplayOrder.Insert(cat.DisplayOrder(), h)
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
			cat := c.pool.MustGet(h)
			c.byMessageCount.Insert(cat.MessageCount(), h)
		},
		PrepareUpdateParent: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			cat := c.pool.MustGet(h)
			c.byParentName.Remove(categorySiblingKey{cat.Parent(), cat.Name()})
		},
		UpdateParent: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			cat := c.pool.MustGet(h)
			c.byParentName.Insert(categorySiblingKey{cat.Parent(), cat.Name()}, h)
		},
	}
}

func (c *categoryCollection) rebuildOrderings() {
	c.byParentName = index.NewUnique[categorySiblingKey]()
	c.byDisplayOrder = index.NewOrdered(func(a, b int) bool { return a < b })
	c.byMessageCount = index.NewOrdered(func(a, b int) bool { return a > b })
	c.pool.Each(func(h pool.Handle, cat *entity.Category) {
		c.byParentName.Insert(categorySiblingKey{cat.Parent(), cat.Name()}, h)
		c.byDisplayOrder.Insert(cat.DisplayOrder(), h)
		c.byMessageCount.Insert(cat.MessageCount(), h)
	})
}

// CreateCategory allocates a root-level Category without wiring it into any
// index; set a parent afterward with SetCategoryParent.
func (s *Store) CreateCategory(entityID id.ID, name, description string) *entity.Category {
	if entityID.IsZero() {
		entityID = id.New()
	}
	return entity.NewCategory(entityID, name, description)
}

// InsertCategory wires a constructed Category into every index and, if it
// already carries a parent handle, the parent's child set. Rejects a name
// already used by another category under the same parent (spec.md's data
// model: category name is unique among siblings).
func (s *Store) InsertCategory(cat *entity.Category) status.Code {
	c := &s.categories
	if c.byID.Contains(cat.ID()) {
		return status.AlreadyExists
	}
	if c.byParentName.Contains(categorySiblingKey{cat.Parent(), cat.Name()}) {
		return status.AlreadyExists
	}

	h := c.pool.Add(cat)
	cat.Bind(h, c.hooks())

	c.byID.Insert(cat.ID(), h)
	c.byParentName.Insert(categorySiblingKey{cat.Parent(), cat.Name()}, h)
	c.byDisplayOrder.Insert(cat.DisplayOrder(), h)
	c.byMessageCount.Insert(cat.MessageCount(), h)

	if !cat.Parent().IsZero() {
		if parent, ok := s.GetCategory(cat.Parent()); ok {
			parent.AddChild(h)
		}
	}
	return status.OK
}

// GetCategory looks up a live category by handle.
func (s *Store) GetCategory(h pool.Handle) (*entity.Category, bool) {
	return s.categories.pool.Get(h)
}

// GetCategoryByID looks up a live category by id.
func (s *Store) GetCategoryByID(cid id.ID) (*entity.Category, bool) {
	h, ok := s.categories.byID.Get(cid)
	if !ok {
		return nil, false
	}
	return s.categories.pool.Get(h)
}

// CategoryCount returns the number of live categories.
func (s *Store) CategoryCount() int { return s.categories.pool.Len() }

func (s *Store) resolveCategories(handles []pool.Handle) []*entity.Category {
	out := make([]*entity.Category, 0, len(handles))
	for _, h := range handles {
		if cat, ok := s.categories.pool.Get(h); ok {
			out = append(out, cat)
		}
	}
	return out
}

// ListCategoriesByDisplayOrder pages the by-display-order ordering (the
// default category tree listing).
func (s *Store) ListCategoriesByDisplayOrder(offset, limit int) []*entity.Category {
	return s.resolveCategories(s.categories.byDisplayOrder.Page(offset, limit))
}

// ListCategoriesByMessageCount pages the by-message-count (desc) ordering.
func (s *Store) ListCategoriesByMessageCount(offset, limit int) []*entity.Category {
	return s.resolveCategories(s.categories.byMessageCount.Page(offset, limit))
}

// isAncestor reports whether candidate is target or one of target's
// ancestors, walking the parent chain from target up to the root.
func (s *Store) isAncestor(candidate, target pool.Handle) bool {
	for h := target; !h.IsZero(); {
		if h == candidate {
			return true
		}
		cat, ok := s.categories.pool.Get(h)
		if !ok {
			return false
		}
		h = cat.Parent()
	}
	return false
}

// SetCategoryParent reassigns a category's parent, rejecting any move that
// would create a cycle (spec.md invariant 9: a category may not become its
// own descendant).
func (s *Store) SetCategoryParent(h, newParent pool.Handle) status.Code {
	cat, ok := s.categories.pool.Get(h)
	if !ok {
		return status.NotFound
	}
	if !newParent.IsZero() {
		if _, ok := s.categories.pool.Get(newParent); !ok {
			return status.NotFound
		}
		if h == newParent {
			return status.InvalidParameters
		}
		if s.isAncestor(h, newParent) {
			return status.CircularReferenceNotAllowed
		}
	}
	if newParent != cat.Parent() && s.categories.byParentName.Contains(categorySiblingKey{newParent, cat.Name()}) {
		return status.AlreadyExists
	}

	if old := cat.Parent(); !old.IsZero() {
		if oldParent, ok := s.GetCategory(old); ok {
			oldParent.RemoveChild(h)
		}
	}
	cat.SetParent(newParent)
	if !newParent.IsZero() {
		if parent, ok := s.GetCategory(newParent); ok {
			parent.AddChild(h)
		}
	}
	return status.OK
}

// DeleteCategory removes cat, detaching it from its parent's child set and
// untagging every tag that belonged to it (spec.md invariant 7: deleting a
// category does not delete its tags or child categories, which become
// root-level).
func (s *Store) DeleteCategory(h pool.Handle) status.Code {
	cat, ok := s.categories.pool.Get(h)
	if !ok {
		return status.NotFound
	}

	for _, childH := range cat.Children().Slice() {
		if child, ok := s.GetCategory(childH); ok {
			child.SetParent(pool.Zero)
		}
		cat.RemoveChild(childH)
	}
	if parentH := cat.Parent(); !parentH.IsZero() {
		if parent, ok := s.GetCategory(parentH); ok {
			parent.RemoveChild(h)
		}
	}
	for _, tagH := range cat.Tags().Slice() {
		if tag, ok := s.GetTag(tagH); ok {
			tag.RemoveCategory(h)
			for _, threadH := range tag.Threads().Slice() {
				if thread, ok := s.GetThread(threadH); ok && thread.Categories().Contains(h) {
					thread.RemoveCategory(h)
				}
			}
		}
		cat.RemoveTag(tagH)
	}
	s.Privileges.RemoveTarget(entity.PrivilegeTargetCategory, cat.ID())

	c := &s.categories
	c.byID.Remove(cat.ID())
	c.byParentName.Remove(categorySiblingKey{cat.Parent(), cat.Name()})
	c.byDisplayOrder.Remove(h)
	c.byMessageCount.Remove(h)
	c.pool.Remove(h)
	return status.OK
}

// categoryStillCoversThread reports whether thread remains associated with
// category through some tag other than the one a caller is in the middle of
// detaching (spec.md: a thread belongs to a category through the union of
// its tags' categories).
func (s *Store) categoryStillCoversThread(threadH, categoryH pool.Handle) bool {
	thread, ok := s.GetThread(threadH)
	if !ok {
		return false
	}
	for _, tagH := range thread.Tags().Slice() {
		if tag, ok := s.GetTag(tagH); ok && tag.Categories().Contains(categoryH) {
			return true
		}
	}
	return false
}

// TagCategory associates tag with category. Every thread already carrying
// tag that doesn't already belong to category through some other tag joins
// the category, and the category's message count picks up that thread's
// messages (mirrors TagThread's one-shot catch-up for a tag's message
// count).
func (s *Store) TagCategory(tagH, categoryH pool.Handle) status.Code {
	tag, ok := s.GetTag(tagH)
	if !ok {
		return status.NotFound
	}
	cat, ok := s.GetCategory(categoryH)
	if !ok {
		return status.NotFound
	}
	if !tag.AddCategory(categoryH) {
		return status.NoEffect
	}
	cat.AddTag(tagH)

	for _, threadH := range tag.Threads().Slice() {
		thread, ok := s.GetThread(threadH)
		if !ok || thread.Categories().Contains(categoryH) {
			continue
		}
		thread.AddCategory(categoryH)
		cat.AdjustMessageCount(thread.MessageCount())
	}
	return status.OK
}

// UntagCategory removes the tag/category association, dropping every
// thread from the category whose membership depended only on this tag.
func (s *Store) UntagCategory(tagH, categoryH pool.Handle) status.Code {
	tag, ok := s.GetTag(tagH)
	if !ok {
		return status.NotFound
	}
	cat, ok := s.GetCategory(categoryH)
	if !ok {
		return status.NotFound
	}
	if !tag.RemoveCategory(categoryH) {
		return status.NoEffect
	}
	cat.RemoveTag(tagH)

	for _, threadH := range tag.Threads().Slice() {
		thread, ok := s.GetThread(threadH)
		if !ok || !thread.Categories().Contains(categoryH) {
			continue
		}
		if s.categoryStillCoversThread(threadH, categoryH) {
			continue
		}
		thread.RemoveCategory(categoryH)
		cat.AdjustMessageCount(-thread.MessageCount())
	}
	return status.OK
}
