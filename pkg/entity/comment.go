package entity

import (
	"time"

	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/pool"
)

// Comment is a comment on a discussion thread message.
type Comment struct {
	handle pool.Handle

	id            id.ID
	parentMessage pool.Handle
	creator       pool.Handle
	content       string
	created       time.Time
	solved        bool
}

// NewComment constructs a Comment on parentMessage, authored by creator.
func NewComment(entityID id.ID, parentMessage, creator pool.Handle, content string, created time.Time) *Comment {
	return &Comment{
		id:            entityID,
		parentMessage: parentMessage,
		creator:       creator,
		content:       content,
		created:       created,
	}
}

// Bind attaches the live handle. Comment has no ordering-relevant attribute
// besides id/created (both immutable), so it carries no hook set.
func (c *Comment) Bind(h pool.Handle) { c.handle = h }

func (c *Comment) Handle() pool.Handle       { return c.handle }
func (c *Comment) ID() id.ID                 { return c.id }
func (c *Comment) ParentMessage() pool.Handle { return c.parentMessage }
func (c *Comment) Creator() pool.Handle      { return c.creator }
func (c *Comment) Content() string           { return c.content }
func (c *Comment) Created() time.Time        { return c.created }
func (c *Comment) Solved() bool              { return c.solved }

// Solve transitions solved false -> true. Returns false if already solved
// (the transition is one-way, spec.md §4.11); callers use that to short
// circuit the parent message's solved-comment-count increment.
func (c *Comment) Solve() bool {
	if c.solved {
		return false
	}
	c.solved = true
	return true
}
