package repository

import (
	"time"

	"github.com/forumkit/forumcore/pkg/entity"
	"github.com/forumkit/forumcore/pkg/events"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/status"
)

// changeRequiredEvent maps a privilege target kind to its CHANGE_..._REQUIRED_PRIVILEGE
// event ordinal (spec.md §6, events 33-37).
var changeRequiredEvent = map[entity.PrivilegeTargetKind]events.Type{
	entity.PrivilegeTargetThread:    events.ChangeDiscussionThreadRequiredPrivilege,
	entity.PrivilegeTargetMessage:   events.ChangeDiscussionThreadMessageRequiredPrivilege,
	entity.PrivilegeTargetTag:       events.ChangeDiscussionTagRequiredPrivilege,
	entity.PrivilegeTargetCategory:  events.ChangeDiscussionCategoryRequiredPrivilege,
	entity.PrivilegeTargetForumWide: events.ChangeForumWideRequiredPrivilege,
}

// assignEvent maps a privilege target kind to its ASSIGN_..._PRIVILEGE
// event ordinal (spec.md §6, events 48-52).
var assignEvent = map[entity.PrivilegeTargetKind]events.Type{
	entity.PrivilegeTargetThread:    events.AssignDiscussionThreadPrivilege,
	entity.PrivilegeTargetMessage:   events.AssignDiscussionThreadMessagePrivilege,
	entity.PrivilegeTargetTag:       events.AssignDiscussionTagPrivilege,
	entity.PrivilegeTargetCategory:  events.AssignDiscussionCategoryPrivilege,
	entity.PrivilegeTargetForumWide: events.AssignForumWidePrivilege,
}

// ChangeRequiredPrivilege sets the privilege level an action on target
// demands. target is id.Zero for a forum-wide default of that action kind.
func (r *Repository) ChangeRequiredPrivilege(rc RequestContext, kind entity.PrivilegeTargetKind, target id.ID, typ entity.PrivilegeType, value entity.Value) status.Code {
	t, ok := changeRequiredEvent[kind]
	if !ok {
		return status.InvalidParameters
	}

	r.Store.Guard.Write(func() {
		r.Store.Privileges.SetRequiredPrivilege(kind, target, typ, value)
	})

	data := events.NewPayload(20).ID(target).U16(uint16(typ)).I16(int16(value)).Build()
	r.emit(t, rc, data, "change required privilege", target.String())
	return status.OK
}

// ChangeForumWideDefaultPrivilegeLevel sets the forum-wide default
// privilege value and grant duration applied when a user has no explicit
// assignment (spec.md §6 event 47).
func (r *Repository) ChangeForumWideDefaultPrivilegeLevel(rc RequestContext, durationEnum uint16, value entity.Value, duration time.Duration) status.Code {
	r.Store.Guard.Write(func() {
		r.Store.Privileges.SetForumWideDefault(value, duration)
	})

	data := events.NewPayload(12).U16(durationEnum).I16(int16(value)).I64(int64(duration.Seconds())).Build()
	r.emit(events.ChangeForumWideDefaultPrivilegeLevel, rc, data, "change forum-wide default privilege level", "")
	return status.OK
}

// AssignPrivilege grants user a privilege value on target, expiring after
// duration (zero means never).
func (r *Repository) AssignPrivilege(rc RequestContext, kind entity.PrivilegeTargetKind, target, user id.ID, value entity.Value, duration time.Duration) status.Code {
	t, ok := assignEvent[kind]
	if !ok {
		return status.InvalidParameters
	}

	var result status.Code
	r.Store.Guard.Write(func() {
		if _, ok := r.Store.GetUserByID(user); !ok {
			result = status.NotFound
			return
		}
		r.Store.Privileges.AssignPrivilege(kind, target, user, value, duration, r.now())
		result = status.OK
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(36).ID(target).ID(user).I16(int16(value)).I64(int64(duration.Seconds())).Build()
	r.emit(t, rc, data, "assign privilege", user.String())
	return status.OK
}
