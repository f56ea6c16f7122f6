package repository

import (
	"github.com/forumkit/forumcore/pkg/collation"
	"github.com/forumkit/forumcore/pkg/entity"
	"github.com/forumkit/forumcore/pkg/events"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/status"
)

// knownPrivilegeTypes is the closed set of required-privilege actions the
// first-user bootstrap grants (spec.md §9 Open Question 1). Kept here
// rather than in pkg/entity because only the façade's bootstrap needs
// symbolic names for them.
var knownPrivilegeTypes = []entity.PrivilegeType{0, 1, 2, 3, 4, 5}

// AddNewUser validates and creates a user, running the first-user
// privilege bootstrap when this is the forum's very first account.
func (r *Repository) AddNewUser(rc RequestContext, entityID id.ID, name, auth string) (id.ID, status.Code) {
	cfg := r.Config.Load().User
	if code := checkLength(name, cfg.MinNameLength, cfg.MaxNameLength); !code.OK() {
		return id.Zero, code
	}
	if entityID.IsZero() {
		entityID = id.New()
	}

	var result status.Code
	var newID id.ID
	wasEmpty := false

	r.Store.Guard.Write(func() {
		wasEmpty = r.Store.UserCount() == 0

		u := r.Store.CreateUser(entityID, name, auth, r.now())
		result = r.Store.InsertUser(u)
		if result.OK() {
			newID = u.ID()
			if wasEmpty {
				r.Store.Privileges.GrantAllForumWide(newID, knownPrivilegeTypes, r.now())
			}
		}
	})
	if !result.OK() {
		return id.Zero, result
	}

	data := events.NewPayload(32).ID(newID).String(auth).String(name).Build()
	r.emit(events.AddNewUser, rc, data, "add new user", newID.String())
	return newID, status.OK
}

// ChangeUserName validates and applies a user name change.
func (r *Repository) ChangeUserName(rc RequestContext, user id.ID, newName string) status.Code {
	cfg := r.Config.Load().User
	if code := checkLength(newName, cfg.MinNameLength, cfg.MaxNameLength); !code.OK() {
		return code
	}

	var result status.Code
	r.Store.Guard.Write(func() {
		u, ok := r.Store.GetUserByID(user)
		if !ok {
			result = status.NotFound
			return
		}
		u.SetName(newName, collation.DeriveKey(newName))
		result = status.OK
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(24).ID(user).String(newName).Build()
	r.emit(events.ChangeUserName, rc, data, "change user name", user.String())
	return status.OK
}

// ChangeUserInfo validates and applies a user info-field change.
func (r *Repository) ChangeUserInfo(rc RequestContext, user id.ID, newInfo string) status.Code {
	cfg := r.Config.Load().User
	if code := checkLength(newInfo, 0, cfg.MaxInfoLength); !code.OK() {
		return code
	}
	return r.changeUserField(rc, user, events.ChangeUserInfo, newInfo, func(u *entity.User) { u.SetInfo(newInfo) })
}

// ChangeUserTitle validates and applies a user title change.
func (r *Repository) ChangeUserTitle(rc RequestContext, user id.ID, newTitle string) status.Code {
	cfg := r.Config.Load().User
	if code := checkLength(newTitle, 0, cfg.MaxTitleLength); !code.OK() {
		return code
	}
	return r.changeUserField(rc, user, events.ChangeUserTitle, newTitle, func(u *entity.User) { u.SetTitle(newTitle) })
}

// ChangeUserSignature validates and applies a user signature change.
func (r *Repository) ChangeUserSignature(rc RequestContext, user id.ID, newSignature string) status.Code {
	cfg := r.Config.Load().User
	if code := checkLength(newSignature, 0, cfg.MaxSignatureLength); !code.OK() {
		return code
	}
	return r.changeUserField(rc, user, events.ChangeUserSignature, newSignature, func(u *entity.User) { u.SetSignature(newSignature) })
}

// ChangeUserLogo validates and applies a new logo blob.
func (r *Repository) ChangeUserLogo(rc RequestContext, user id.ID, logo []byte) status.Code {
	cfg := r.Config.Load().User
	if code := checkBinarySize(logo, cfg.MaxLogoBinarySize); !code.OK() {
		return code
	}

	var result status.Code
	r.Store.Guard.Write(func() {
		u, ok := r.Store.GetUserByID(user)
		if !ok {
			result = status.NotFound
			return
		}
		u.SetLogo(logo)
		result = status.OK
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(16 + len(logo)).ID(user).Bytes(logo).Build()
	r.emit(events.ChangeUserLogo, rc, data, "change user logo", user.String())
	return status.OK
}

func (r *Repository) changeUserField(rc RequestContext, user id.ID, t events.Type, value string, apply func(*entity.User)) status.Code {
	var result status.Code
	r.Store.Guard.Write(func() {
		u, ok := r.Store.GetUserByID(user)
		if !ok {
			result = status.NotFound
			return
		}
		apply(u)
		result = status.OK
	})
	if !result.OK() {
		return result
	}
	data := events.NewPayload(24 + len(value)).ID(user).String(value).Build()
	r.emit(t, rc, data, "change user field", user.String())
	return status.OK
}

// DeleteUser removes user and everything owned by them (spec.md invariant
// 4/6).
func (r *Repository) DeleteUser(rc RequestContext, user id.ID) status.Code {
	var result status.Code
	r.Store.Guard.Write(func() {
		u, ok := r.Store.GetUserByID(user)
		if !ok {
			result = status.NotFound
			return
		}
		result = r.Store.DeleteUser(u.Handle())
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(16).ID(user).Build()
	r.emit(events.DeleteUser, rc, data, "delete user", user.String())
	return status.OK
}
