package entity

import (
	"time"

	"github.com/forumkit/forumcore/pkg/collation"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/index"
	"github.com/forumkit/forumcore/pkg/pool"
)

// VoteRecord is one entry of a user's received-vote history: a vote cast on
// one of their messages, when, and in which direction.
type VoteRecord struct {
	Message pool.Handle
	At      time.Time
	Up      bool
}

// QuoteRecord remembers a message a user quoted from, for quote history.
type QuoteRecord struct {
	SourceMessage pool.Handle
	At            time.Time
}

// User is the forum account entity. See spec.md §3 for the attribute table.
type User struct {
	handle pool.Handle
	hooks  *UserHooks

	id        id.ID
	name      string
	nameKey   collation.Key
	auth      string
	info      string
	title     string
	signature string
	logo      []byte

	attachmentQuota int64
	created         time.Time
	lastSeen        time.Time

	threadCount  int
	messageCount int

	unreadThreadCount  int
	unreadMessageCount int

	receivedVotes []VoteRecord
	quoteHistory  []QuoteRecord
	maxHistoryLen int

	ownedThreads            *index.HandleSet
	ownedMessages           *index.HandleSet
	ownedComments           *index.HandleSet
	ownedAttachments        *index.HandleSet
	subscribedThreads       *index.HandleSet
	sentPrivateMessages     *index.HandleSet
	receivedPrivateMessages *index.HandleSet
	castVotes               *index.HandleSet
}

// NewUser constructs a User with the given id and name/auth. maxHistoryLen
// bounds the received-vote and quote history slices (user.maxVoteHistoryLength).
func NewUser(entityID id.ID, name string, nameKey collation.Key, auth string, created time.Time, maxHistoryLen int) *User {
	return &User{
		id:                      entityID,
		name:                    name,
		nameKey:                 nameKey,
		auth:                    auth,
		created:                 created,
		lastSeen:                created,
		maxHistoryLen:           maxHistoryLen,
		ownedThreads:            index.NewHandleSet(),
		ownedMessages:           index.NewHandleSet(),
		ownedComments:           index.NewHandleSet(),
		ownedAttachments:        index.NewHandleSet(),
		subscribedThreads:       index.NewHandleSet(),
		sentPrivateMessages:     index.NewHandleSet(),
		receivedPrivateMessages: index.NewHandleSet(),
		castVotes:               index.NewHandleSet(),
	}
}

// Bind attaches the live handle and hook set; called once by pkg/store
// immediately after the entity is inserted into its pool.
func (u *User) Bind(h pool.Handle, hooks *UserHooks) {
	u.handle = h
	u.hooks = hooks
}

func (u *User) Handle() pool.Handle { return u.handle }
func (u *User) ID() id.ID           { return u.id }
func (u *User) Name() string        { return u.name }
func (u *User) NameKey() collation.Key { return u.nameKey }
func (u *User) Auth() string        { return u.auth }
func (u *User) Info() string        { return u.info }
func (u *User) Title() string       { return u.title }
func (u *User) Signature() string   { return u.signature }
func (u *User) Logo() []byte        { return u.logo }
func (u *User) AttachmentQuota() int64 { return u.attachmentQuota }
func (u *User) Created() time.Time  { return u.created }
func (u *User) LastSeen() time.Time { return u.lastSeen }
func (u *User) ThreadCount() int    { return u.threadCount }
func (u *User) MessageCount() int   { return u.messageCount }
func (u *User) UnreadThreadCount() int  { return u.unreadThreadCount }
func (u *User) UnreadMessageCount() int { return u.unreadMessageCount }
func (u *User) ReceivedVotes() []VoteRecord { return u.receivedVotes }
func (u *User) QuoteHistory() []QuoteRecord { return u.quoteHistory }
func (u *User) OwnedThreads() *index.HandleSet     { return u.ownedThreads }
func (u *User) OwnedMessages() *index.HandleSet    { return u.ownedMessages }
func (u *User) OwnedComments() *index.HandleSet    { return u.ownedComments }
func (u *User) OwnedAttachments() *index.HandleSet { return u.ownedAttachments }
func (u *User) SubscribedThreads() *index.HandleSet { return u.subscribedThreads }
func (u *User) SentPrivateMessages() *index.HandleSet     { return u.sentPrivateMessages }
func (u *User) ReceivedPrivateMessages() *index.HandleSet { return u.receivedPrivateMessages }

func (u *User) SetName(name string, key collation.Key) {
	if u.hooks != nil && u.hooks.PrepareUpdateName != nil {
		u.hooks.PrepareUpdateName(u.handle)
	}
	u.name, u.nameKey = name, key
	if u.hooks != nil && u.hooks.UpdateName != nil {
		u.hooks.UpdateName(u.handle)
	}
}

func (u *User) SetAuth(auth string) {
	if u.hooks != nil && u.hooks.PrepareUpdateAuth != nil {
		u.hooks.PrepareUpdateAuth(u.handle)
	}
	u.auth = auth
	if u.hooks != nil && u.hooks.UpdateAuth != nil {
		u.hooks.UpdateAuth(u.handle)
	}
}

func (u *User) SetInfo(info string)           { u.info = info }
func (u *User) SetTitle(title string)         { u.title = title }
func (u *User) SetSignature(signature string) { u.signature = signature }
func (u *User) SetLogo(logo []byte)           { u.logo = logo }
func (u *User) SetAttachmentQuota(q int64)    { u.attachmentQuota = q }

func (u *User) SetLastSeen(t time.Time) {
	if u.hooks != nil && u.hooks.PrepareUpdateLastSeen != nil {
		u.hooks.PrepareUpdateLastSeen(u.handle)
	}
	u.lastSeen = t
	if u.hooks != nil && u.hooks.UpdateLastSeen != nil {
		u.hooks.UpdateLastSeen(u.handle)
	}
}

func (u *User) SetUnreadCounts(threads, messages int) {
	u.unreadThreadCount, u.unreadMessageCount = threads, messages
}

func (u *User) AddOwnedThread(h pool.Handle) {
	if !u.ownedThreads.Add(h) {
		return
	}
	u.syncThreadCount()
}

func (u *User) RemoveOwnedThread(h pool.Handle) {
	if !u.ownedThreads.Remove(h) {
		return
	}
	u.syncThreadCount()
}

func (u *User) syncThreadCount() {
	if u.hooks != nil && u.hooks.PrepareUpdateThreadCount != nil {
		u.hooks.PrepareUpdateThreadCount(u.handle)
	}
	u.threadCount = u.ownedThreads.Len()
	if u.hooks != nil && u.hooks.UpdateThreadCount != nil {
		u.hooks.UpdateThreadCount(u.handle)
	}
}

func (u *User) AddOwnedMessage(h pool.Handle) {
	if !u.ownedMessages.Add(h) {
		return
	}
	u.syncMessageCount()
}

func (u *User) RemoveOwnedMessage(h pool.Handle) {
	if !u.ownedMessages.Remove(h) {
		return
	}
	u.syncMessageCount()
}

func (u *User) syncMessageCount() {
	if u.hooks != nil && u.hooks.PrepareUpdateMessageCount != nil {
		u.hooks.PrepareUpdateMessageCount(u.handle)
	}
	u.messageCount = u.ownedMessages.Len()
	if u.hooks != nil && u.hooks.UpdateMessageCount != nil {
		u.hooks.UpdateMessageCount(u.handle)
	}
}

func (u *User) AddOwnedComment(h pool.Handle)    { u.ownedComments.Add(h) }
func (u *User) RemoveOwnedComment(h pool.Handle) { u.ownedComments.Remove(h) }

func (u *User) AddOwnedAttachment(h pool.Handle)    { u.ownedAttachments.Add(h) }
func (u *User) RemoveOwnedAttachment(h pool.Handle) { u.ownedAttachments.Remove(h) }

func (u *User) Subscribe(thread pool.Handle) bool   { return u.subscribedThreads.Add(thread) }
func (u *User) Unsubscribe(thread pool.Handle) bool { return u.subscribedThreads.Remove(thread) }

func (u *User) CastVotes() *index.HandleSet { return u.castVotes }
func (u *User) AddCastVote(h pool.Handle)    { u.castVotes.Add(h) }
func (u *User) RemoveCastVote(h pool.Handle) { u.castVotes.Remove(h) }

func (u *User) AddSentPrivateMessage(h pool.Handle)     { u.sentPrivateMessages.Add(h) }
func (u *User) RemoveSentPrivateMessage(h pool.Handle)  { u.sentPrivateMessages.Remove(h) }
func (u *User) AddReceivedPrivateMessage(h pool.Handle) { u.receivedPrivateMessages.Add(h) }
func (u *User) RemoveReceivedPrivateMessage(h pool.Handle) {
	u.receivedPrivateMessages.Remove(h)
}

// RecordVote appends a received-vote record, trimming the oldest entry once
// maxHistoryLen is exceeded (mirrors MemoryRepositoryUser.cpp's capped
// in-memory history vectors).
func (u *User) RecordVote(rec VoteRecord) {
	u.receivedVotes = append(u.receivedVotes, rec)
	if u.maxHistoryLen > 0 && len(u.receivedVotes) > u.maxHistoryLen {
		u.receivedVotes = u.receivedVotes[len(u.receivedVotes)-u.maxHistoryLen:]
	}
}

// LastVoteOn returns the most recent received-vote record for message, one
// of this user's own messages.
func (u *User) LastVoteOn(message pool.Handle) (VoteRecord, bool) {
	for i := len(u.receivedVotes) - 1; i >= 0; i-- {
		if u.receivedVotes[i].Message == message {
			return u.receivedVotes[i], true
		}
	}
	return VoteRecord{}, false
}

// RecordQuote appends a quote-history record, trimming the oldest entry once
// maxHistoryLen is exceeded.
func (u *User) RecordQuote(rec QuoteRecord) {
	u.quoteHistory = append(u.quoteHistory, rec)
	if u.maxHistoryLen > 0 && len(u.quoteHistory) > u.maxHistoryLen {
		u.quoteHistory = u.quoteHistory[len(u.quoteHistory)-u.maxHistoryLen:]
	}
}
