package repository

import (
	"github.com/forumkit/forumcore/pkg/collation"
	"github.com/forumkit/forumcore/pkg/events"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/status"
)

// AddNewDiscussionThread validates and creates a thread owned by creator.
func (r *Repository) AddNewDiscussionThread(rc RequestContext, entityID id.ID, name string, creator id.ID) (id.ID, status.Code) {
	cfg := r.Config.Load().DiscussionThread
	if code := checkLength(name, cfg.MinNameLength, cfg.MaxNameLength); !code.OK() {
		return id.Zero, code
	}
	if code := r.checkThrottle(creator); !code.OK() {
		return id.Zero, code
	}

	var result status.Code
	var newID id.ID
	r.Store.Guard.Write(func() {
		u, ok := r.Store.GetUserByID(creator)
		if !ok {
			result = status.NotFound
			return
		}
		t := r.Store.CreateThread(entityID, name, u.Handle(), r.now())
		result = r.Store.InsertThread(t)
		if result.OK() {
			newID = t.ID()
			u.AddOwnedThread(t.Handle())
		}
	})
	if !result.OK() {
		return id.Zero, result
	}

	data := events.NewPayload(24 + len(name)).ID(newID).String(name).Build()
	rc.PerformingUser = creator
	r.emit(events.AddNewDiscussionThread, rc, data, "add new discussion thread", newID.String())
	return newID, status.OK
}

// ChangeDiscussionThreadName validates and renames a thread.
func (r *Repository) ChangeDiscussionThreadName(rc RequestContext, thread id.ID, newName string) status.Code {
	cfg := r.Config.Load().DiscussionThread
	if code := checkLength(newName, cfg.MinNameLength, cfg.MaxNameLength); !code.OK() {
		return code
	}

	var result status.Code
	r.Store.Guard.Write(func() {
		t, ok := r.Store.GetThreadByID(thread)
		if !ok {
			result = status.NotFound
			return
		}
		t.SetName(newName, collation.DeriveKey(newName))
		result = status.OK
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(24 + len(newName)).ID(thread).String(newName).Build()
	r.emit(events.ChangeDiscussionThreadName, rc, data, "change discussion thread name", thread.String())
	return status.OK
}

// ChangeDiscussionThreadPinDisplayOrder validates and re-pins a thread.
func (r *Repository) ChangeDiscussionThreadPinDisplayOrder(rc RequestContext, thread id.ID, order uint16) status.Code {
	var result status.Code
	r.Store.Guard.Write(func() {
		t, ok := r.Store.GetThreadByID(thread)
		if !ok {
			result = status.NotFound
			return
		}
		t.SetPinDisplayOrder(order)
		result = status.OK
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(18).ID(thread).U16(order).Build()
	r.emit(events.ChangeDiscussionThreadPinDisplayOrder, rc, data, "change discussion thread pin order", thread.String())
	return status.OK
}

// DeleteDiscussionThread validates and deletes a thread with every message
// and comment beneath it; attachments of those messages are detached, not
// deleted.
func (r *Repository) DeleteDiscussionThread(rc RequestContext, thread id.ID) status.Code {
	var result status.Code
	r.Store.Guard.Write(func() {
		t, ok := r.Store.GetThreadByID(thread)
		if !ok {
			result = status.NotFound
			return
		}
		result = r.Store.DeleteThread(t.Handle())
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(16).ID(thread).Build()
	r.emit(events.DeleteDiscussionThread, rc, data, "delete discussion thread", thread.String())
	return status.OK
}

// MergeDiscussionThreads validates and merges from into into.
func (r *Repository) MergeDiscussionThreads(rc RequestContext, from, into id.ID) status.Code {
	var result status.Code
	r.Store.Guard.Write(func() {
		fromT, ok := r.Store.GetThreadByID(from)
		if !ok {
			result = status.NotFound
			return
		}
		intoT, ok := r.Store.GetThreadByID(into)
		if !ok {
			result = status.NotFound
			return
		}
		result = r.Store.MergeThreads(fromT.Handle(), intoT.Handle())
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(32).ID(from).ID(into).Build()
	r.emit(events.MergeDiscussionThreads, rc, data, "merge discussion threads", into.String())
	return status.OK
}

// SubscribeToDiscussionThread validates and subscribes a user to a thread.
func (r *Repository) SubscribeToDiscussionThread(rc RequestContext, user, thread id.ID) status.Code {
	var result status.Code
	r.Store.Guard.Write(func() {
		u, ok := r.Store.GetUserByID(user)
		if !ok {
			result = status.NotFound
			return
		}
		t, ok := r.Store.GetThreadByID(thread)
		if !ok {
			result = status.NotFound
			return
		}
		if !u.Subscribe(t.Handle()) {
			result = status.NoEffect
			return
		}
		t.AddSubscriber(u.Handle())
		result = status.OK
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(16).ID(thread).Build()
	r.emit(events.SubscribeToDiscussionThread, rc, data, "subscribe to discussion thread", thread.String())
	return status.OK
}

// UnsubscribeFromDiscussionThread validates and removes a subscription.
func (r *Repository) UnsubscribeFromDiscussionThread(rc RequestContext, user, thread id.ID) status.Code {
	var result status.Code
	r.Store.Guard.Write(func() {
		u, ok := r.Store.GetUserByID(user)
		if !ok {
			result = status.NotFound
			return
		}
		t, ok := r.Store.GetThreadByID(thread)
		if !ok {
			result = status.NotFound
			return
		}
		if !u.Unsubscribe(t.Handle()) {
			result = status.NoEffect
			return
		}
		t.RemoveSubscriber(u.Handle())
		result = status.OK
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(16).ID(thread).Build()
	r.emit(events.UnsubscribeFromDiscussionThread, rc, data, "unsubscribe from discussion thread", thread.String())
	return status.OK
}

// IncrementDiscussionThreadVisits applies a coalesced visit-count delta
// (spec.md §4.9: the 30-second visit coalescer accumulates counts in
// memory and calls this once per thread per flush).
func (r *Repository) IncrementDiscussionThreadVisits(rc RequestContext, thread id.ID, count uint32) status.Code {
	var result status.Code
	r.Store.Guard.Write(func() {
		t, ok := r.Store.GetThreadByID(thread)
		if !ok {
			result = status.NotFound
			return
		}
		t.IncrementVisitCount(uint64(count))
		result = status.OK
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(20).ID(thread).U32(count).Build()
	r.emit(events.IncrementDiscussionThreadVisits, rc, data, "increment discussion thread visits", thread.String())
	return status.OK
}
