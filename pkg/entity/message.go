package entity

import (
	"time"

	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/index"
	"github.com/forumkit/forumcore/pkg/pool"
)

// ContentSpan references a byte range in the shared read-only historical
// content mmap (spec.md §4.4) instead of holding the content inline.
type ContentSpan struct {
	Offset int64
	Size   int64
}

// Message is a discussion thread message entity.
type Message struct {
	handle pool.Handle
	hooks  *MessageHooks

	id           id.ID
	parentThread pool.Handle
	creator      pool.Handle

	content     string
	contentSpan *ContentSpan

	created           time.Time
	lastUpdated       time.Time
	lastUpdatedReason string
	approved          bool

	upVotes   map[pool.Handle]time.Time
	downVotes map[pool.Handle]time.Time

	comments           *index.HandleSet
	attachments        *index.HandleSet
	solvedCommentCount int
}

// NewMessage constructs a Message belonging to parentThread, authored by
// creator, holding content inline.
func NewMessage(entityID id.ID, parentThread, creator pool.Handle, content string, created time.Time) *Message {
	return &Message{
		id:           entityID,
		parentThread: parentThread,
		creator:      creator,
		content:      content,
		created:      created,
		lastUpdated:  created,
		approved:     true,
		upVotes:      make(map[pool.Handle]time.Time),
		downVotes:    make(map[pool.Handle]time.Time),
		comments:     index.NewHandleSet(),
		attachments:  index.NewHandleSet(),
	}
}

// Bind attaches the live handle and hook set.
func (m *Message) Bind(h pool.Handle, hooks *MessageHooks) {
	m.handle = h
	m.hooks = hooks
}

func (m *Message) Handle() pool.Handle      { return m.handle }
func (m *Message) ID() id.ID                { return m.id }
func (m *Message) ParentThread() pool.Handle { return m.parentThread }
func (m *Message) Creator() pool.Handle     { return m.creator }
func (m *Message) Content() string          { return m.content }
func (m *Message) ContentSpan() *ContentSpan { return m.contentSpan }
func (m *Message) Created() time.Time       { return m.created }
func (m *Message) LastUpdated() time.Time   { return m.lastUpdated }
func (m *Message) LastUpdatedReason() string { return m.lastUpdatedReason }
func (m *Message) Approved() bool           { return m.approved }
func (m *Message) UpVoteCount() int         { return len(m.upVotes) }
func (m *Message) DownVoteCount() int       { return len(m.downVotes) }
func (m *Message) Comments() *index.HandleSet    { return m.comments }
func (m *Message) Attachments() *index.HandleSet { return m.attachments }
func (m *Message) SolvedCommentCount() int       { return m.solvedCommentCount }

// SetParentThread rewrites the owning thread handle; used only by
// moveMessage/mergeThreads (spec.md invariant 8).
func (m *Message) SetParentThread(h pool.Handle) { m.parentThread = h }

// SetContent replaces the inline content and records the change reason and
// timestamp (spec.md event 16).
func (m *Message) SetContent(content, reason string, at time.Time) {
	m.content = content
	m.contentSpan = nil
	m.lastUpdatedReason = reason
	m.lastUpdated = at
}

// SetContentSpan points content at a span in the shared historical mmap
// (used by the replayer when reconstructing from a persisted span rather
// than inline bytes).
func (m *Message) SetContentSpan(span ContentSpan) {
	m.contentSpan = &span
	m.content = ""
}

func (m *Message) SetApproved(approved bool) {
	if m.hooks != nil && m.hooks.PrepareUpdateApproved != nil {
		m.hooks.PrepareUpdateApproved(m.handle)
	}
	m.approved = approved
	if m.hooks != nil && m.hooks.UpdateApproved != nil {
		m.hooks.UpdateApproved(m.handle)
	}
}

func (m *Message) prepareVoteCount() {
	if m.hooks != nil && m.hooks.PrepareUpdateVoteCount != nil {
		m.hooks.PrepareUpdateVoteCount(m.handle)
	}
}

func (m *Message) updateVoteCount() {
	if m.hooks != nil && m.hooks.UpdateVoteCount != nil {
		m.hooks.UpdateVoteCount(m.handle)
	}
}

// UpVote records an up-vote from voter at t, clearing any prior down-vote.
func (m *Message) UpVote(voter pool.Handle, t time.Time) {
	m.prepareVoteCount()
	delete(m.downVotes, voter)
	m.upVotes[voter] = t
	m.updateVoteCount()
}

// DownVote records a down-vote from voter at t, clearing any prior up-vote.
func (m *Message) DownVote(voter pool.Handle, t time.Time) {
	m.prepareVoteCount()
	delete(m.upVotes, voter)
	m.downVotes[voter] = t
	m.updateVoteCount()
}

// ResetVote removes any vote cast by voter. Returns false if voter had not
// voted (callers use this to return NO_EFFECT).
func (m *Message) ResetVote(voter pool.Handle) bool {
	_, up := m.upVotes[voter]
	_, down := m.downVotes[voter]
	if !up && !down {
		return false
	}
	m.prepareVoteCount()
	delete(m.upVotes, voter)
	delete(m.downVotes, voter)
	m.updateVoteCount()
	return true
}

// VoteAt returns when voter cast their current vote, if any.
func (m *Message) VoteAt(voter pool.Handle) (time.Time, bool) {
	if t, ok := m.upVotes[voter]; ok {
		return t, true
	}
	if t, ok := m.downVotes[voter]; ok {
		return t, true
	}
	return time.Time{}, false
}

// RemoveVotesBy drops every vote cast by voter without checking which
// direction — used by user deletion cascade (spec.md invariant 6).
func (m *Message) RemoveVotesBy(voter pool.Handle) {
	m.prepareVoteCount()
	delete(m.upVotes, voter)
	delete(m.downVotes, voter)
	m.updateVoteCount()
}

func (m *Message) AddComment(h pool.Handle)    { m.comments.Add(h) }
func (m *Message) RemoveComment(h pool.Handle) { m.comments.Remove(h) }

func (m *Message) AddAttachment(h pool.Handle)    { m.attachments.Add(h) }
func (m *Message) RemoveAttachment(h pool.Handle) { m.attachments.Remove(h) }

// IncrementSolvedCommentCount is called the moment a child comment
// transitions solved false -> true (spec.md §4.11).
func (m *Message) IncrementSolvedCommentCount() { m.solvedCommentCount++ }
