package repository

import (
	"github.com/forumkit/forumcore/pkg/events"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/status"
)

// AddCommentToDiscussionThreadMessage validates and posts a comment on a
// message.
func (r *Repository) AddCommentToDiscussionThreadMessage(rc RequestContext, entityID id.ID, message, creator id.ID, content string) (id.ID, status.Code) {
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
		m, ok := r.Store.GetMessageByID(message)
		if !ok {
			result = status.NotFound
			return
		}
		u, ok := r.Store.GetUserByID(creator)
		if !ok {
			result = status.NotFound
			return
		}
		cm := r.Store.CreateComment(entityID, m.Handle(), u.Handle(), content, r.now())
		result = r.Store.InsertComment(cm)
		if result.OK() {
			newID = cm.ID()
		}
	})
	if !result.OK() {
		return id.Zero, result
	}

	data := events.NewPayload(32+len(content)).ID(newID).ID(message).String(content).Build()
	rc.PerformingUser = creator
	r.emit(events.AddCommentToDiscussionThreadMessage, rc, data, "add comment to discussion thread message", newID.String())
	return newID, status.OK
}

// SolveDiscussionThreadMessageComment validates and marks a comment solved.
func (r *Repository) SolveDiscussionThreadMessageComment(rc RequestContext, comment id.ID) status.Code {
	var result status.Code
	r.Store.Guard.Write(func() {
		cm, ok := r.Store.GetCommentByID(comment)
		if !ok {
			result = status.NotFound
			return
		}
		result = r.Store.SolveComment(cm.Handle())
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(16).ID(comment).Build()
	r.emit(events.SolveDiscussionThreadMessageComment, rc, data, "solve discussion thread message comment", comment.String())
	return status.OK
}
