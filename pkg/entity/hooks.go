// Package entity holds the immutable-id value types of spec.md §3 (User,
// Thread, Message, Comment, Tag, Category, PrivateMessage, Attachment, and
// the granted-privilege store) together with the change-notification fabric
// that lets a multi-index collection remove a handle from every affected
// ordering before an attribute mutates and reinsert it after (spec.md §4.3).
//
// Entities hold no direct pointer to any collection. Instead each carries a
// *Hooks set once by pkg/store at construction time; setters call
// PrepareUpdate<Attr> before mutating and Update<Attr> after, exactly
// mirroring the source's per-kind signal bindings. A nil hook is a valid,
// inert no-op, which keeps entity construction usable in isolation (tests
// can build a User without a backing store).
package entity

import "github.com/forumkit/forumcore/pkg/pool"

// UserHooks are the prepare/update pairs for every ordering-relevant User
// attribute. The source carries a duplicated onPrepareUpdateAuth/
// onUpdateAuth binding (a copy-paste, per spec.md §9 Open Questions); this
// port keeps a single Auth binding since one suffices.
type UserHooks struct {
	PrepareUpdateName         func(pool.Handle)
	UpdateName                func(pool.Handle)
	PrepareUpdateAuth         func(pool.Handle)
	UpdateAuth                func(pool.Handle)
	PrepareUpdateLastSeen     func(pool.Handle)
	UpdateLastSeen            func(pool.Handle)
	PrepareUpdateThreadCount  func(pool.Handle)
	UpdateThreadCount         func(pool.Handle)
	PrepareUpdateMessageCount func(pool.Handle)
	UpdateMessageCount        func(pool.Handle)
}

// ThreadHooks are the prepare/update pairs for ordering-relevant Thread
// attributes. Name changes also affect every collection that indexes
// threads by name outside the primary thread collection (a tag's thread
// set, a category's thread set) — pkg/store wires all of those into the
// same hook, per spec.md §4.2's "every other collection that also indexes
// this entity by A" rule.
type ThreadHooks struct {
	PrepareUpdateName            func(pool.Handle)
	UpdateName                   func(pool.Handle)
	PrepareUpdateLastUpdated     func(pool.Handle)
	UpdateLastUpdated            func(pool.Handle)
	PrepareUpdateLatestMessage   func(pool.Handle)
	UpdateLatestMessage          func(pool.Handle)
	PrepareUpdateMessageCount    func(pool.Handle)
	UpdateMessageCount           func(pool.Handle)
	PrepareUpdatePinDisplayOrder func(pool.Handle)
	UpdatePinDisplayOrder        func(pool.Handle)
}

// MessageHooks are the prepare/update pairs for ordering-relevant Message
// attributes: the approval flag and the vote count (content changes don't
// move a message between orderings).
type MessageHooks struct {
	PrepareUpdateApproved func(pool.Handle)
	UpdateApproved        func(pool.Handle)
	PrepareUpdateVoteCount func(pool.Handle)
	UpdateVoteCount        func(pool.Handle)
}

// TagHooks are the prepare/update pairs for ordering-relevant Tag attributes.
type TagHooks struct {
	PrepareUpdateName         func(pool.Handle)
	UpdateName                func(pool.Handle)
	PrepareUpdateThreadCount  func(pool.Handle)
	UpdateThreadCount         func(pool.Handle)
	PrepareUpdateMessageCount func(pool.Handle)
	UpdateMessageCount        func(pool.Handle)
}

// CategoryHooks are the prepare/update pairs for ordering-relevant Category
// attributes.
type CategoryHooks struct {
	PrepareUpdateName         func(pool.Handle)
	UpdateName                func(pool.Handle)
	PrepareUpdateDisplayOrder func(pool.Handle)
	UpdateDisplayOrder        func(pool.Handle)
	PrepareUpdateMessageCount func(pool.Handle)
	UpdateMessageCount        func(pool.Handle)
	PrepareUpdateParent       func(pool.Handle)
	UpdateParent              func(pool.Handle)
}

// AttachmentHooks are the prepare/update pairs for ordering-relevant
// Attachment attributes.
type AttachmentHooks struct {
	PrepareUpdateApproved func(pool.Handle)
	UpdateApproved        func(pool.Handle)
}
