package entity

import (
	"time"

	"github.com/forumkit/forumcore/pkg/collation"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/index"
	"github.com/forumkit/forumcore/pkg/pool"
)

// Thread is a discussion thread entity. See spec.md §3 for the attribute
// table and §4.11 for the approved-flag state machine.
type Thread struct {
	handle pool.Handle
	hooks  *ThreadHooks

	id      id.ID
	name    string
	nameKey collation.Key

	creator pool.Handle

	created              time.Time
	lastUpdated          time.Time
	latestMessageCreated time.Time

	approved        bool
	pinDisplayOrder uint16
	visitCount      uint64

	visitorsSinceLastEdit *index.HandleSet
	subscribers           *index.HandleSet
	messages              *index.HandleSet
	tags                  *index.HandleSet
	categories            *index.HandleSet
}

// NewThread constructs a Thread owned by creator.
func NewThread(entityID id.ID, name string, nameKey collation.Key, creator pool.Handle, created time.Time) *Thread {
	return &Thread{
		id:                    entityID,
		name:                  name,
		nameKey:               nameKey,
		creator:               creator,
		created:               created,
		lastUpdated:           created,
		visitorsSinceLastEdit: index.NewHandleSet(),
		subscribers:           index.NewHandleSet(),
		messages:              index.NewHandleSet(),
		tags:                  index.NewHandleSet(),
		categories:            index.NewHandleSet(),
	}
}

// Bind attaches the live handle and hook set.
func (t *Thread) Bind(h pool.Handle, hooks *ThreadHooks) {
	t.handle = h
	t.hooks = hooks
}

func (t *Thread) Handle() pool.Handle    { return t.handle }
func (t *Thread) ID() id.ID              { return t.id }
func (t *Thread) Name() string           { return t.name }
func (t *Thread) NameKey() collation.Key { return t.nameKey }
func (t *Thread) Creator() pool.Handle   { return t.creator }
func (t *Thread) Created() time.Time     { return t.created }
func (t *Thread) LastUpdated() time.Time { return t.lastUpdated }
func (t *Thread) LatestMessageCreated() time.Time { return t.latestMessageCreated }
func (t *Thread) Approved() bool           { return t.approved }
func (t *Thread) PinDisplayOrder() uint16  { return t.pinDisplayOrder }
func (t *Thread) VisitCount() uint64       { return t.visitCount }
func (t *Thread) MessageCount() int        { return t.messages.Len() }
func (t *Thread) VisitorsSinceLastEdit() *index.HandleSet { return t.visitorsSinceLastEdit }
func (t *Thread) Subscribers() *index.HandleSet { return t.subscribers }
func (t *Thread) Messages() *index.HandleSet    { return t.messages }
func (t *Thread) Tags() *index.HandleSet        { return t.tags }
func (t *Thread) Categories() *index.HandleSet  { return t.categories }

func (t *Thread) SetName(name string, key collation.Key) {
	if t.hooks != nil && t.hooks.PrepareUpdateName != nil {
		t.hooks.PrepareUpdateName(t.handle)
	}
	t.name, t.nameKey = name, key
	if t.hooks != nil && t.hooks.UpdateName != nil {
		t.hooks.UpdateName(t.handle)
	}
	t.touchLastUpdated()
}

// touchLastUpdated updates last-updated without emitting the event record
// (name/message changes imply a last-updated bump; the content-change event
// itself carries the user-visible timestamp).
func (t *Thread) touchLastUpdated() {
	now := time.Now()
	if t.hooks != nil && t.hooks.PrepareUpdateLastUpdated != nil {
		t.hooks.PrepareUpdateLastUpdated(t.handle)
	}
	t.lastUpdated = now
	if t.hooks != nil && t.hooks.UpdateLastUpdated != nil {
		t.hooks.UpdateLastUpdated(t.handle)
	}
}

func (t *Thread) SetApproved(approved bool) { t.approved = approved }

func (t *Thread) SetPinDisplayOrder(order uint16) {
	if t.hooks != nil && t.hooks.PrepareUpdatePinDisplayOrder != nil {
		t.hooks.PrepareUpdatePinDisplayOrder(t.handle)
	}
	t.pinDisplayOrder = order
	if t.hooks != nil && t.hooks.UpdatePinDisplayOrder != nil {
		t.hooks.UpdatePinDisplayOrder(t.handle)
	}
}

// RecordNewMessage bumps last-updated and latest-message-created together,
// the way adding a message to a thread always does.
func (t *Thread) RecordNewMessage(at time.Time) {
	if t.hooks != nil && t.hooks.PrepareUpdateLastUpdated != nil {
		t.hooks.PrepareUpdateLastUpdated(t.handle)
	}
	if t.hooks != nil && t.hooks.PrepareUpdateLatestMessage != nil {
		t.hooks.PrepareUpdateLatestMessage(t.handle)
	}
	t.lastUpdated = at
	t.latestMessageCreated = at
	if t.hooks != nil && t.hooks.UpdateLastUpdated != nil {
		t.hooks.UpdateLastUpdated(t.handle)
	}
	if t.hooks != nil && t.hooks.UpdateLatestMessage != nil {
		t.hooks.UpdateLatestMessage(t.handle)
	}
}

func (t *Thread) AddMessage(h pool.Handle) {
	if !t.messages.Add(h) {
		return
	}
	t.syncMessageCount()
}

func (t *Thread) RemoveMessage(h pool.Handle) {
	if !t.messages.Remove(h) {
		return
	}
	t.syncMessageCount()
}

func (t *Thread) syncMessageCount() {
	if t.hooks != nil && t.hooks.PrepareUpdateMessageCount != nil {
		t.hooks.PrepareUpdateMessageCount(t.handle)
	}
	if t.hooks != nil && t.hooks.UpdateMessageCount != nil {
		t.hooks.UpdateMessageCount(t.handle)
	}
}

func (t *Thread) IncrementVisitCount(by uint64) { t.visitCount += by }

func (t *Thread) AddVisitorSinceLastEdit(h pool.Handle) { t.visitorsSinceLastEdit.Add(h) }
func (t *Thread) ClearVisitorsSinceLastEdit()           { t.visitorsSinceLastEdit = index.NewHandleSet() }

func (t *Thread) AddSubscriber(h pool.Handle) bool    { return t.subscribers.Add(h) }
func (t *Thread) RemoveSubscriber(h pool.Handle) bool { return t.subscribers.Remove(h) }

func (t *Thread) AddTag(h pool.Handle) bool    { return t.tags.Add(h) }
func (t *Thread) RemoveTag(h pool.Handle) bool { return t.tags.Remove(h) }

func (t *Thread) AddCategory(h pool.Handle) bool    { return t.categories.Add(h) }
func (t *Thread) RemoveCategory(h pool.Handle) bool { return t.categories.Remove(h) }
