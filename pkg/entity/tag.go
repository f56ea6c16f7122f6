package entity

import (
	"time"

	"github.com/forumkit/forumcore/pkg/collation"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/index"
	"github.com/forumkit/forumcore/pkg/pool"
)

// Tag is a discussion tag entity.
type Tag struct {
	handle pool.Handle
	hooks  *TagHooks

	id      id.ID
	name    string
	nameKey collation.Key
	created time.Time
	uiBlob  []byte

	threads      *index.HandleSet
	categories   *index.HandleSet
	messageCount int
}

// NewTag constructs a Tag.
func NewTag(entityID id.ID, name string, nameKey collation.Key, created time.Time) *Tag {
	return &Tag{
		id:         entityID,
		name:       name,
		nameKey:    nameKey,
		created:    created,
		threads:    index.NewHandleSet(),
		categories: index.NewHandleSet(),
	}
}

// Bind attaches the live handle and hook set.
func (t *Tag) Bind(h pool.Handle, hooks *TagHooks) {
	t.handle = h
	t.hooks = hooks
}

func (t *Tag) Handle() pool.Handle    { return t.handle }
func (t *Tag) ID() id.ID              { return t.id }
func (t *Tag) Name() string           { return t.name }
func (t *Tag) NameKey() collation.Key { return t.nameKey }
func (t *Tag) Created() time.Time     { return t.created }
func (t *Tag) UiBlob() []byte         { return t.uiBlob }
func (t *Tag) ThreadCount() int       { return t.threads.Len() }
func (t *Tag) MessageCount() int      { return t.messageCount }
func (t *Tag) Threads() *index.HandleSet { return t.threads }
func (t *Tag) Categories() *index.HandleSet { return t.categories }

func (t *Tag) SetName(name string, key collation.Key) {
	if t.hooks != nil && t.hooks.PrepareUpdateName != nil {
		t.hooks.PrepareUpdateName(t.handle)
	}
	t.name, t.nameKey = name, key
	if t.hooks != nil && t.hooks.UpdateName != nil {
		t.hooks.UpdateName(t.handle)
	}
}

func (t *Tag) SetUiBlob(blob []byte) { t.uiBlob = blob }

func (t *Tag) AddThread(h pool.Handle) {
	if !t.threads.Add(h) {
		return
	}
	t.syncThreadCount()
}

func (t *Tag) RemoveThread(h pool.Handle) {
	if !t.threads.Remove(h) {
		return
	}
	t.syncThreadCount()
}

func (t *Tag) AddCategory(h pool.Handle) bool    { return t.categories.Add(h) }
func (t *Tag) RemoveCategory(h pool.Handle) bool { return t.categories.Remove(h) }

func (t *Tag) syncThreadCount() {
	if t.hooks != nil && t.hooks.PrepareUpdateThreadCount != nil {
		t.hooks.PrepareUpdateThreadCount(t.handle)
	}
	if t.hooks != nil && t.hooks.UpdateThreadCount != nil {
		t.hooks.UpdateThreadCount(t.handle)
	}
}

// AdjustMessageCount applies delta to the tag's cross-referenced message
// count (spec.md §8 property 5: "sum over tag in t.tags of tag.messageCount
// correctly reflects cross-tag counts").
func (t *Tag) AdjustMessageCount(delta int) {
	if t.hooks != nil && t.hooks.PrepareUpdateMessageCount != nil {
		t.hooks.PrepareUpdateMessageCount(t.handle)
	}
	t.messageCount += delta
	if t.hooks != nil && t.hooks.UpdateMessageCount != nil {
		t.hooks.UpdateMessageCount(t.handle)
	}
}
