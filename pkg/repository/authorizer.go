package repository

import (
	"github.com/forumkit/forumcore/pkg/entity"
	"github.com/forumkit/forumcore/pkg/id"
)

// Authorizer is the interface of the external authorization policy
// evaluator spec.md §1 names as out of scope for this core. A Repository
// holds one in its Authz field, but no façade method calls Allow, so a deny
// has no effect on any operation; the policy itself (role lookup, privilege
// comparison rules beyond the raw GrantedPrivilegeStore values) lives
// outside this module.
type Authorizer interface {
	// Allow reports whether user may perform typ on the given target
	// (id.Zero for an ungated or forum-wide action).
	Allow(user id.ID, kind entity.PrivilegeTargetKind, target id.ID, typ entity.PrivilegeType) bool
}

// AllowAll is the zero-configuration Authorizer: every action is permitted.
// Used when the façade is wired without an external policy evaluator (e.g.
// in the replay path's validated-mode tests, or a single-operator forum).
type AllowAll struct{}

func (AllowAll) Allow(id.ID, entity.PrivilegeTargetKind, id.ID, entity.PrivilegeType) bool {
	return true
}
