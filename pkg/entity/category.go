package entity

import (
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/index"
	"github.com/forumkit/forumcore/pkg/pool"
)

// Category is a discussion category entity, possibly nested under a parent.
type Category struct {
	handle pool.Handle
	hooks  *CategoryHooks

	id           id.ID
	name         string
	description  string
	displayOrder int
	parent       pool.Handle // pool.Zero means root

	children     *index.HandleSet
	tags         *index.HandleSet
	messageCount int
}

// NewCategory constructs a root-level Category (parent assigned separately).
func NewCategory(entityID id.ID, name, description string) *Category {
	return &Category{
		id:          entityID,
		name:        name,
		description: description,
		children:    index.NewHandleSet(),
		tags:        index.NewHandleSet(),
	}
}

// Bind attaches the live handle and hook set.
func (c *Category) Bind(h pool.Handle, hooks *CategoryHooks) {
	c.handle = h
	c.hooks = hooks
}

func (c *Category) Handle() pool.Handle    { return c.handle }
func (c *Category) ID() id.ID              { return c.id }
func (c *Category) Name() string           { return c.name }
func (c *Category) Description() string    { return c.description }
func (c *Category) DisplayOrder() int      { return c.displayOrder }
func (c *Category) Parent() pool.Handle    { return c.parent }
func (c *Category) Children() *index.HandleSet { return c.children }
func (c *Category) Tags() *index.HandleSet     { return c.tags }
func (c *Category) MessageCount() int          { return c.messageCount }

func (c *Category) SetName(name string) {
	if c.hooks != nil && c.hooks.PrepareUpdateName != nil {
		c.hooks.PrepareUpdateName(c.handle)
	}
	c.name = name
	if c.hooks != nil && c.hooks.UpdateName != nil {
		c.hooks.UpdateName(c.handle)
	}
}

func (c *Category) SetDescription(description string) { c.description = description }

func (c *Category) SetDisplayOrder(order int) {
	if c.hooks != nil && c.hooks.PrepareUpdateDisplayOrder != nil {
		c.hooks.PrepareUpdateDisplayOrder(c.handle)
	}
	c.displayOrder = order
	if c.hooks != nil && c.hooks.UpdateDisplayOrder != nil {
		c.hooks.UpdateDisplayOrder(c.handle)
	}
}

// SetParent rewrites the parent handle. Cycle rejection (spec.md invariant
// 9) is the caller's responsibility (pkg/store walks ancestors before
// calling this).
func (c *Category) SetParent(parent pool.Handle) {
	if c.hooks != nil && c.hooks.PrepareUpdateParent != nil {
		c.hooks.PrepareUpdateParent(c.handle)
	}
	c.parent = parent
	if c.hooks != nil && c.hooks.UpdateParent != nil {
		c.hooks.UpdateParent(c.handle)
	}
}

func (c *Category) AddChild(h pool.Handle) bool    { return c.children.Add(h) }
func (c *Category) RemoveChild(h pool.Handle) bool { return c.children.Remove(h) }

func (c *Category) AddTag(h pool.Handle) bool    { return c.tags.Add(h) }
func (c *Category) RemoveTag(h pool.Handle) bool { return c.tags.Remove(h) }

// AdjustMessageCount applies delta to the category's aggregated message count.
func (c *Category) AdjustMessageCount(delta int) {
	if c.hooks != nil && c.hooks.PrepareUpdateMessageCount != nil {
		c.hooks.PrepareUpdateMessageCount(c.handle)
	}
	c.messageCount += delta
	if c.hooks != nil && c.hooks.UpdateMessageCount != nil {
		c.hooks.UpdateMessageCount(c.handle)
	}
}
