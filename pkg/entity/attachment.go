package entity

import (
	"time"

	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/index"
	"github.com/forumkit/forumcore/pkg/pool"
)

// Attachment is a file attached to one or more messages.
type Attachment struct {
	handle pool.Handle
	hooks  *AttachmentHooks

	id       id.ID
	name     string
	size     int64
	created  time.Time
	approved bool
	owner    pool.Handle

	messages *index.HandleSet
}

// NewAttachment constructs an Attachment owned by owner.
func NewAttachment(entityID id.ID, name string, size int64, owner pool.Handle, created time.Time) *Attachment {
	return &Attachment{
		id:       entityID,
		name:     name,
		size:     size,
		created:  created,
		owner:    owner,
		messages: index.NewHandleSet(),
	}
}

// Bind attaches the live handle and hook set.
func (a *Attachment) Bind(h pool.Handle, hooks *AttachmentHooks) {
	a.handle = h
	a.hooks = hooks
}

func (a *Attachment) Handle() pool.Handle  { return a.handle }
func (a *Attachment) ID() id.ID            { return a.id }
func (a *Attachment) Name() string         { return a.name }
func (a *Attachment) Size() int64          { return a.size }
func (a *Attachment) Created() time.Time   { return a.created }
func (a *Attachment) Approved() bool       { return a.approved }
func (a *Attachment) Owner() pool.Handle   { return a.owner }
func (a *Attachment) Messages() *index.HandleSet { return a.messages }

func (a *Attachment) SetApproved(approved bool) {
	if a.hooks != nil && a.hooks.PrepareUpdateApproved != nil {
		a.hooks.PrepareUpdateApproved(a.handle)
	}
	a.approved = approved
	if a.hooks != nil && a.hooks.UpdateApproved != nil {
		a.hooks.UpdateApproved(a.handle)
	}
}

func (a *Attachment) SetName(name string) { a.name = name }

func (a *Attachment) AddMessage(h pool.Handle)    { a.messages.Add(h) }
func (a *Attachment) RemoveMessage(h pool.Handle) { a.messages.Remove(h) }
