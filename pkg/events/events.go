// Package events turns successful repository mutations into the binary log
// records spec.md §6 describes: a fixed frame header, a small context block
// (who did it, when, from where) and a per-event-type payload, CRC-framed
// and handed to the pipeline for durable appending.
//
// The package also keeps a lightweight in-process Broker, adapted from the
// teacher's pub/sub bus, for components (metrics, the search feed) that want
// to observe events live without reading the persisted log.
package events

// Type enumerates the durable event kinds. Ordinal values are part of the
// on-disk format: never renumber an existing one, only append.
type Type uint32

const (
	AddNewUser                            Type = 1
	ChangeUserName                        Type = 2
	ChangeUserInfo                        Type = 3
	ChangeUserTitle                       Type = 4
	ChangeUserSignature                   Type = 5
	ChangeUserLogo                        Type = 6
	DeleteUser                            Type = 7
	AddNewDiscussionThread                Type = 8
	ChangeDiscussionThreadName            Type = 9
	ChangeDiscussionThreadPinDisplayOrder Type = 10
	DeleteDiscussionThread                Type = 11
	MergeDiscussionThreads                Type = 12
	SubscribeToDiscussionThread           Type = 13
	UnsubscribeFromDiscussionThread       Type = 14
	AddNewDiscussionThreadMessage         Type = 15
	ChangeDiscussionThreadMessageContent  Type = 16
	IncrementDiscussionThreadVisits       Type = 17
	MoveDiscussionThreadMessage           Type = 18
	DeleteDiscussionThreadMessage         Type = 19
	DiscussionThreadMessageUpVote         Type = 20
	DiscussionThreadMessageDownVote       Type = 21
	DiscussionThreadMessageResetVote      Type = 22
	AddCommentToDiscussionThreadMessage   Type = 23
	SolveDiscussionThreadMessageComment   Type = 24

	AddNewDiscussionTag           Type = 25
	ChangeDiscussionTagName       Type = 26
	DeleteDiscussionTag           Type = 27
	AddDiscussionTagToThread      Type = 28
	RemoveDiscussionTagFromThread Type = 29
	MergeDiscussionTags           Type = 30
	AddNewDiscussionCategory      Type = 31
	ChangeDiscussionCategoryName  Type = 32

	ChangeDiscussionThreadRequiredPrivilege        Type = 33
	ChangeDiscussionThreadMessageRequiredPrivilege Type = 34
	ChangeDiscussionTagRequiredPrivilege           Type = 35
	ChangeDiscussionCategoryRequiredPrivilege      Type = 36
	ChangeForumWideRequiredPrivilege Type = 37

	ChangeForumWideDefaultPrivilegeLevel Type = 47

	AssignDiscussionThreadPrivilege        Type = 48
	AssignDiscussionThreadMessagePrivilege Type = 49
	AssignDiscussionTagPrivilege           Type = 50
	AssignDiscussionCategoryPrivilege      Type = 51
	AssignForumWidePrivilege               Type = 52

	// DeleteDiscussionCategory has no ordinal in spec.md §6's representative
	// event table (it stops at 52); appended here since adding new ordinals
	// is explicitly permitted and category deletion is a distinct, durable
	// mutation that needs one.
	DeleteDiscussionCategory Type = 53

	// ChangeDiscussionTagUiBlob covers the tag uiBlob setter named in
	// spec.md §3's Tag row but never given an event ordinal.
	ChangeDiscussionTagUiBlob Type = 54

	// ChangeDiscussionCategoryParent covers the category re-parenting
	// operation named in spec.md invariant 9 (cycle rejection) but never
	// given an event ordinal.
	ChangeDiscussionCategoryParent Type = 55

	// RecordDiscussionThreadMessageQuote covers the quote-history entry
	// point named in spec.md §3's User row (quoteHistory) but never given
	// an event ordinal.
	RecordDiscussionThreadMessageQuote Type = 56

	// AddDiscussionTagToCategory and RemoveDiscussionTagFromCategory cover
	// the tag/category association named in spec.md §3's Category row
	// (a category's message count derives from the threads its tags
	// cover) but never given an event ordinal.
	AddDiscussionTagToCategory      Type = 57
	RemoveDiscussionTagFromCategory Type = 58
)

// name mirrors spec.md §6's event table; used for log messages and Broker
// notifications, never written to the wire (the wire carries the ordinal).
var name = map[Type]string{
	AddNewUser:                            "ADD_NEW_USER",
	ChangeUserName:                        "CHANGE_USER_NAME",
	ChangeUserInfo:                        "CHANGE_USER_INFO",
	ChangeUserTitle:                       "CHANGE_USER_TITLE",
	ChangeUserSignature:                   "CHANGE_USER_SIGNATURE",
	ChangeUserLogo:                        "CHANGE_USER_LOGO",
	DeleteUser:                            "DELETE_USER",
	AddNewDiscussionThread:                "ADD_NEW_DISCUSSION_THREAD",
	ChangeDiscussionThreadName:            "CHANGE_DISCUSSION_THREAD_NAME",
	ChangeDiscussionThreadPinDisplayOrder: "CHANGE_DISCUSSION_THREAD_PIN_DISPLAY_ORDER",
	DeleteDiscussionThread:                "DELETE_DISCUSSION_THREAD",
	MergeDiscussionThreads:                "MERGE_DISCUSSION_THREADS",
	SubscribeToDiscussionThread:           "SUBSCRIBE_TO_DISCUSSION_THREAD",
	UnsubscribeFromDiscussionThread:       "UNSUBSCRIBE_FROM_DISCUSSION_THREAD",
	AddNewDiscussionThreadMessage:         "ADD_NEW_DISCUSSION_THREAD_MESSAGE",
	ChangeDiscussionThreadMessageContent:  "CHANGE_DISCUSSION_THREAD_MESSAGE_CONTENT",
	IncrementDiscussionThreadVisits:       "INCREMENT_DISCUSSION_THREAD_NUMBER_OF_VISITS",
	MoveDiscussionThreadMessage:           "MOVE_DISCUSSION_THREAD_MESSAGE",
	DeleteDiscussionThreadMessage:         "DELETE_DISCUSSION_THREAD_MESSAGE",
	DiscussionThreadMessageUpVote:         "DISCUSSION_THREAD_MESSAGE_UP_VOTE",
	DiscussionThreadMessageDownVote:       "DISCUSSION_THREAD_MESSAGE_DOWN_VOTE",
	DiscussionThreadMessageResetVote:      "DISCUSSION_THREAD_MESSAGE_RESET_VOTE",
	AddCommentToDiscussionThreadMessage:   "ADD_COMMENT_TO_DISCUSSION_THREAD_MESSAGE",
	SolveDiscussionThreadMessageComment:   "SOLVE_DISCUSSION_THREAD_MESSAGE_COMMENT",

	AddNewDiscussionTag:           "ADD_NEW_DISCUSSION_TAG",
	ChangeDiscussionTagName:       "CHANGE_DISCUSSION_TAG_NAME",
	DeleteDiscussionTag:           "DELETE_DISCUSSION_TAG",
	AddDiscussionTagToThread:      "ADD_DISCUSSION_TAG_TO_THREAD",
	RemoveDiscussionTagFromThread: "REMOVE_DISCUSSION_TAG_FROM_THREAD",
	MergeDiscussionTags:           "MERGE_DISCUSSION_TAGS",
	AddNewDiscussionCategory:      "ADD_NEW_DISCUSSION_CATEGORY",
	ChangeDiscussionCategoryName:  "CHANGE_DISCUSSION_CATEGORY_NAME",
	DeleteDiscussionCategory:      "DELETE_DISCUSSION_CATEGORY",
	ChangeDiscussionTagUiBlob:     "CHANGE_DISCUSSION_TAG_UI_BLOB",
	ChangeDiscussionCategoryParent:      "CHANGE_DISCUSSION_CATEGORY_PARENT",
	RecordDiscussionThreadMessageQuote: "RECORD_DISCUSSION_THREAD_MESSAGE_QUOTE",
	AddDiscussionTagToCategory:         "ADD_DISCUSSION_TAG_TO_CATEGORY",
	RemoveDiscussionTagFromCategory:    "REMOVE_DISCUSSION_TAG_FROM_CATEGORY",

	ChangeDiscussionThreadRequiredPrivilege:        "CHANGE_DISCUSSION_THREAD_REQUIRED_PRIVILEGE",
	ChangeDiscussionThreadMessageRequiredPrivilege: "CHANGE_DISCUSSION_THREAD_MESSAGE_REQUIRED_PRIVILEGE",
	ChangeDiscussionTagRequiredPrivilege:           "CHANGE_DISCUSSION_TAG_REQUIRED_PRIVILEGE",
	ChangeDiscussionCategoryRequiredPrivilege:      "CHANGE_DISCUSSION_CATEGORY_REQUIRED_PRIVILEGE",
	ChangeForumWideRequiredPrivilege:     "CHANGE_FORUM_WIDE_REQUIRED_PRIVILEGE",
	ChangeForumWideDefaultPrivilegeLevel: "CHANGE_FORUM_WIDE_DEFAULT_PRIVILEGE_LEVEL",

	AssignDiscussionThreadPrivilege:        "ASSIGN_DISCUSSION_THREAD_PRIVILEGE",
	AssignDiscussionThreadMessagePrivilege: "ASSIGN_DISCUSSION_THREAD_MESSAGE_PRIVILEGE",
	AssignDiscussionTagPrivilege:           "ASSIGN_DISCUSSION_TAG_PRIVILEGE",
	AssignDiscussionCategoryPrivilege:      "ASSIGN_DISCUSSION_CATEGORY_PRIVILEGE",
	AssignForumWidePrivilege:               "ASSIGN_FORUM_WIDE_PRIVILEGE",
}

// String renders the event type's log-friendly name, falling back to a
// generic label for an ordinal minted after this table was last updated.
func (t Type) String() string {
	if n, ok := name[t]; ok {
		return n
	}
	return "UNKNOWN_EVENT_TYPE"
}

// CurrentVersion is the EventVersion written for every event type this
// build knows how to produce. A future payload change to one event type
// bumps that event's own version, not this constant.
const CurrentVersion uint16 = 1

// ContextVersion is the wire version of the Context block.
const ContextVersion uint16 = 1
