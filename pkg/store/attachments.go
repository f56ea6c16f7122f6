package store

import (
	"time"

	"github.com/forumkit/forumcore/pkg/entity"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/index"
	"github.com/forumkit/forumcore/pkg/pool"
	"github.com/forumkit/forumcore/pkg/status"
)

type attachmentCollection struct {
	s    *Store
	pool *pool.Pool[*entity.Attachment]

	byID      *index.Unique[id.ID]
	byCreated *index.Ordered[time.Time]
}

func (c *attachmentCollection) init(s *Store) {
	c.s = s
	c.pool = pool.New[*entity.Attachment](pool.KindAttachment)
	c.byID = index.NewUnique[id.ID]()
	c.byCreated = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
}

func (c *attachmentCollection) hooks() *entity.AttachmentHooks {
	return &entity.AttachmentHooks{
		PrepareUpdateApproved: func(h pool.Handle) {},
		UpdateApproved:        func(h pool.Handle) {},
	}
}

func (c *attachmentCollection) rebuildOrderings() {
	c.byCreated = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.pool.Each(func(h pool.Handle, a *entity.Attachment) {
		c.byCreated.Insert(a.Created(), h)
	})
}

// CreateAttachment allocates an Attachment without wiring it into any index.
func (s *Store) CreateAttachment(entityID id.ID, name string, size int64, owner pool.Handle, created time.Time) *entity.Attachment {
	if entityID.IsZero() {
		entityID = id.New()
	}
	return entity.NewAttachment(entityID, name, size, owner, created)
}

// InsertAttachment wires a constructed Attachment into every index and the
// owner's owned-attachment set.
func (s *Store) InsertAttachment(a *entity.Attachment) status.Code {
	c := &s.attachments
	if c.byID.Contains(a.ID()) {
		return status.AlreadyExists
	}

	h := c.pool.Add(a)
	a.Bind(h, c.hooks())

	c.byID.Insert(a.ID(), h)
	c.byCreated.Insert(a.Created(), h)

	if owner, ok := s.GetUser(a.Owner()); ok {
		owner.AddOwnedAttachment(h)
	}
	return status.OK
}

// GetAttachment looks up a live attachment by handle.
func (s *Store) GetAttachment(h pool.Handle) (*entity.Attachment, bool) {
	return s.attachments.pool.Get(h)
}

// GetAttachmentByID looks up a live attachment by id.
func (s *Store) GetAttachmentByID(aid id.ID) (*entity.Attachment, bool) {
	h, ok := s.attachments.byID.Get(aid)
	if !ok {
		return nil, false
	}
	return s.attachments.pool.Get(h)
}

// AttachmentCount returns the number of live attachments.
func (s *Store) AttachmentCount() int { return s.attachments.pool.Len() }

// ListAttachmentsByCreated pages the by-created ordering.
func (s *Store) ListAttachmentsByCreated(offset, limit int) []*entity.Attachment {
	handles := s.attachments.byCreated.Page(offset, limit)
	out := make([]*entity.Attachment, 0, len(handles))
	for _, h := range handles {
		if a, ok := s.attachments.pool.Get(h); ok {
			out = append(out, a)
		}
	}
	return out
}

// AttachToMessage links an existing attachment to an additional message.
func (s *Store) AttachToMessage(attachmentH, messageH pool.Handle) status.Code {
	a, ok := s.attachments.pool.Get(attachmentH)
	if !ok {
		return status.NotFound
	}
	m, ok := s.GetMessage(messageH)
	if !ok {
		return status.NotFound
	}
	a.AddMessage(messageH)
	m.AddAttachment(attachmentH)
	return status.OK
}

// SetAttachmentApproved updates an attachment's moderation-approved flag.
func (s *Store) SetAttachmentApproved(h pool.Handle, approved bool) status.Code {
	a, ok := s.attachments.pool.Get(h)
	if !ok {
		return status.NotFound
	}
	a.SetApproved(approved)
	return status.OK
}

// DeleteAttachment removes a, detaching it from every message it was
// attached to and its owner's owned-attachment set.
func (s *Store) DeleteAttachment(h pool.Handle) status.Code {
	a, ok := s.attachments.pool.Get(h)
	if !ok {
		return status.NotFound
	}

	for _, mh := range a.Messages().Slice() {
		if m, ok := s.GetMessage(mh); ok {
			m.RemoveAttachment(h)
		}
	}
	if owner, ok := s.GetUser(a.Owner()); ok {
		owner.RemoveOwnedAttachment(h)
	}

	c := &s.attachments
	c.byID.Remove(a.ID())
	c.byCreated.Remove(h)
	c.pool.Remove(h)
	return status.OK
}
