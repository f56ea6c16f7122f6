package repository

import (
	"github.com/forumkit/forumcore/pkg/entity"
	"github.com/forumkit/forumcore/pkg/events"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/status"
)

// AddNewDiscussionThreadMessage validates and posts a new message into an
// existing thread.
func (r *Repository) AddNewDiscussionThreadMessage(rc RequestContext, entityID id.ID, thread, creator id.ID, content string) (id.ID, status.Code) {
	cfg := r.Config.Load().DiscussionMessage
	if code := checkLength(content, cfg.MinContentLength, cfg.MaxContentLength); !code.OK() {
		return id.Zero, code
	}
	if code := r.checkThrottle(creator); !code.OK() {
		return id.Zero, code
	}

	var result status.Code
	var newID id.ID
	r.Store.Guard.Write(func() {
		t, ok := r.Store.GetThreadByID(thread)
		if !ok {
			result = status.NotFound
			return
		}
		u, ok := r.Store.GetUserByID(creator)
		if !ok {
			result = status.NotFound
			return
		}
		m := r.Store.CreateMessage(entityID, t.Handle(), u.Handle(), content, r.now())
		result = r.Store.InsertMessage(m)
		if result.OK() {
			newID = m.ID()
		}
	})
	if !result.OK() {
		return id.Zero, result
	}

	data := events.NewPayload(32+len(content)).ID(newID).ID(thread).String(content).Build()
	rc.PerformingUser = creator
	r.emit(events.AddNewDiscussionThreadMessage, rc, data, "add new discussion thread message", newID.String())
	return newID, status.OK
}

// ChangeDiscussionThreadMessageContent validates and edits a message's
// content, recording the change reason.
func (r *Repository) ChangeDiscussionThreadMessageContent(rc RequestContext, message id.ID, newContent, reason string) status.Code {
	cfg := r.Config.Load().DiscussionMessage
	if code := checkLength(newContent, cfg.MinContentLength, cfg.MaxContentLength); !code.OK() {
		return code
	}
	if code := checkLength(reason, cfg.MinChangeReasonLength, cfg.MaxChangeReasonLength); !code.OK() {
		return code
	}

	var result status.Code
	r.Store.Guard.Write(func() {
		m, ok := r.Store.GetMessageByID(message)
		if !ok {
			result = status.NotFound
			return
		}
		m.SetContent(newContent, reason, r.now())
		result = status.OK
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(24+len(newContent)+len(reason)).ID(message).String(newContent).String(reason).Build()
	r.emit(events.ChangeDiscussionThreadMessageContent, rc, data, "change discussion thread message content", message.String())
	return status.OK
}

// MoveDiscussionThreadMessage validates and moves a message into a
// different thread.
func (r *Repository) MoveDiscussionThreadMessage(rc RequestContext, message, intoThread id.ID) status.Code {
	var result status.Code
	r.Store.Guard.Write(func() {
		m, ok := r.Store.GetMessageByID(message)
		if !ok {
			result = status.NotFound
			return
		}
		t, ok := r.Store.GetThreadByID(intoThread)
		if !ok {
			result = status.NotFound
			return
		}
		result = r.Store.MoveMessage(m.Handle(), t.Handle())
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(32).ID(message).ID(intoThread).Build()
	r.emit(events.MoveDiscussionThreadMessage, rc, data, "move discussion thread message", message.String())
	return status.OK
}

// DeleteDiscussionThreadMessage validates and deletes a message with its
// comments and attachment links.
func (r *Repository) DeleteDiscussionThreadMessage(rc RequestContext, message id.ID) status.Code {
	var result status.Code
	r.Store.Guard.Write(func() {
		m, ok := r.Store.GetMessageByID(message)
		if !ok {
			result = status.NotFound
			return
		}
		result = r.Store.DeleteMessage(m.Handle())
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(16).ID(message).Build()
	r.emit(events.DeleteDiscussionThreadMessage, rc, data, "delete discussion thread message", message.String())
	return status.OK
}

// DiscussionThreadMessageUpVote validates and casts an up-vote.
func (r *Repository) DiscussionThreadMessageUpVote(rc RequestContext, message, voter id.ID) status.Code {
	var result status.Code
	r.Store.Guard.Write(func() {
		m, ok := r.Store.GetMessageByID(message)
		if !ok {
			result = status.NotFound
			return
		}
		u, ok := r.Store.GetUserByID(voter)
		if !ok {
			result = status.NotFound
			return
		}
		result = r.Store.CastUpVote(m.Handle(), u.Handle(), r.now())
	})
	if !result.OK() {
		return result
	}
	data := events.NewPayload(16).ID(message).Build()
	r.emit(events.DiscussionThreadMessageUpVote, rc, data, "up-vote discussion thread message", message.String())
	return status.OK
}

// DiscussionThreadMessageDownVote validates and casts a down-vote.
func (r *Repository) DiscussionThreadMessageDownVote(rc RequestContext, message, voter id.ID) status.Code {
	var result status.Code
	r.Store.Guard.Write(func() {
		m, ok := r.Store.GetMessageByID(message)
		if !ok {
			result = status.NotFound
			return
		}
		u, ok := r.Store.GetUserByID(voter)
		if !ok {
			result = status.NotFound
			return
		}
		result = r.Store.CastDownVote(m.Handle(), u.Handle(), r.now())
	})
	if !result.OK() {
		return result
	}
	data := events.NewPayload(16).ID(message).Build()
	r.emit(events.DiscussionThreadMessageDownVote, rc, data, "down-vote discussion thread message", message.String())
	return status.OK
}

// DiscussionThreadMessageResetVote validates and clears a voter's vote,
// respecting user.resetVoteExpiresInSeconds (spec.md §6 table): the
// operation is rejected once the vote is older than the configured window.
func (r *Repository) DiscussionThreadMessageResetVote(rc RequestContext, message, voter id.ID) status.Code {
	window := r.Config.Load().User.ResetVoteExpiresIn()

	var result status.Code
	r.Store.Guard.Write(func() {
		m, ok := r.Store.GetMessageByID(message)
		if !ok {
			result = status.NotFound
			return
		}
		u, ok := r.Store.GetUserByID(voter)
		if !ok {
			result = status.NotFound
			return
		}
		if at, had := m.VoteAt(u.Handle()); had && window > 0 && r.now().Sub(at) > window {
			result = status.NotUpdatedSinceLastCheck
			return
		}
		result = r.Store.ResetMessageVote(m.Handle(), u.Handle())
	})
	if !result.OK() {
		return result
	}
	data := events.NewPayload(16).ID(message).Build()
	r.emit(events.DiscussionThreadMessageResetVote, rc, data, "reset discussion thread message vote", message.String())
	return status.OK
}

// RecordDiscussionThreadMessageQuote records that quotingUser quoted
// sourceMessage, appending to the user's quote history (spec.md §3's User
// row, quoteHistory).
func (r *Repository) RecordDiscussionThreadMessageQuote(rc RequestContext, sourceMessage, quotingUser id.ID) status.Code {
	var result status.Code
	r.Store.Guard.Write(func() {
		m, ok := r.Store.GetMessageByID(sourceMessage)
		if !ok {
			result = status.NotFound
			return
		}
		u, ok := r.Store.GetUserByID(quotingUser)
		if !ok {
			result = status.NotFound
			return
		}
		u.RecordQuote(entity.QuoteRecord{SourceMessage: m.Handle(), At: r.now()})
		result = status.OK
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(32).ID(sourceMessage).ID(quotingUser).Build()
	r.emit(events.RecordDiscussionThreadMessageQuote, rc, data, "record discussion thread message quote", quotingUser.String())
	return status.OK
}
