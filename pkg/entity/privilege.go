package entity

import (
	"time"

	"github.com/forumkit/forumcore/pkg/id"
)

// PrivilegeTargetKind enumerates the five kinds of thing a privilege can be
// scoped to (spec.md §3 GrantedPrivilegeStore row).
type PrivilegeTargetKind uint8

const (
	PrivilegeTargetMessage PrivilegeTargetKind = iota
	PrivilegeTargetThread
	PrivilegeTargetTag
	PrivilegeTargetCategory
	PrivilegeTargetForumWide
)

// PrivilegeType identifies which action a required-privilege entry gates
// (e.g. "delete thread", "edit message"). The event table (spec.md §6,
// ordinals 33-46) assigns one CHANGE_<scope>_REQUIRED_PRIVILEGE_<target>
// event per type; the concrete enumeration of action names lives in
// pkg/events, which is the only consumer that needs symbolic names.
type PrivilegeType uint16

// Value is a signed privilege level; higher values grant more capability.
// Negative values are valid (explicit revocation below the default).
type Value int16

// MaxValue is the ceiling granted by the first-user bootstrap rule.
const MaxValue Value = 1<<15 - 1

type requiredKey struct {
	kind   PrivilegeTargetKind
	target id.ID
	typ    PrivilegeType
}

type assignedKey struct {
	kind   PrivilegeTargetKind
	target id.ID
	user   id.ID
}

// Assignment is a granted privilege value with an optional expiry.
type Assignment struct {
	Value     Value
	ExpiresAt time.Time // zero means "never expires"
}

func (a Assignment) expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && !now.Before(a.ExpiresAt)
}

// Store holds every (subject, target, value, expires-at) tuple described in
// spec.md §3, split into "required privilege" entries (what level an action
// demands) and "assigned privilege" entries (what level a user was granted).
type Store struct {
	required map[requiredKey]Value
	assigned map[assignedKey]Assignment

	forumWideDefault         Value
	forumWideDefaultDuration time.Duration
}

// NewStore creates an empty privilege store.
func NewStore() *Store {
	return &Store{
		required: make(map[requiredKey]Value),
		assigned: make(map[assignedKey]Assignment),
	}
}

// SetRequiredPrivilege sets the level an action on target demands. A zero
// target id means the forum-wide default for that action kind.
func (s *Store) SetRequiredPrivilege(kind PrivilegeTargetKind, target id.ID, typ PrivilegeType, value Value) {
	s.required[requiredKey{kind, target, typ}] = value
}

// RequiredPrivilege looks up the level an action demands.
func (s *Store) RequiredPrivilege(kind PrivilegeTargetKind, target id.ID, typ PrivilegeType) (Value, bool) {
	v, ok := s.required[requiredKey{kind, target, typ}]
	return v, ok
}

// SetForumWideDefault sets the default privilege level and grant duration
// applied when a user has no explicit assignment (spec.md event 47).
func (s *Store) SetForumWideDefault(value Value, duration time.Duration) {
	s.forumWideDefault = value
	s.forumWideDefaultDuration = duration
}

// ForumWideDefault returns the current default level and duration.
func (s *Store) ForumWideDefault() (Value, time.Duration) {
	return s.forumWideDefault, s.forumWideDefaultDuration
}

// AssignPrivilege grants user a privilege value on target, expiring after
// duration (zero means never). A zero target id means forum-wide.
func (s *Store) AssignPrivilege(kind PrivilegeTargetKind, target, user id.ID, value Value, duration time.Duration, now time.Time) {
	var expires time.Time
	if duration > 0 {
		expires = now.Add(duration)
	}
	s.assigned[assignedKey{kind, target, user}] = Assignment{Value: value, ExpiresAt: expires}
}

// AssignedPrivilege returns the current (non-expired) assignment for user on
// target, if any.
func (s *Store) AssignedPrivilege(kind PrivilegeTargetKind, target, user id.ID, now time.Time) (Value, bool) {
	a, ok := s.assigned[assignedKey{kind, target, user}]
	if !ok || a.expired(now) {
		return 0, false
	}
	return a.Value, true
}

// GrantAllForumWide assigns user the maximum forum-wide privilege for every
// known required-privilege type with no expiry — the "first user becomes
// privileged" bootstrap rule (spec.md §9 Open Questions). Only the
// validated repository façade calls this, and only on a user-count
// transition of 0 -> 1; the direct-write replay path never calls it.
func (s *Store) GrantAllForumWide(user id.ID, knownTypes []PrivilegeType, now time.Time) {
	for _, t := range knownTypes {
		s.assigned[assignedKey{PrivilegeTargetForumWide, id.Zero, user}] = Assignment{Value: MaxValue}
		s.required[requiredKey{PrivilegeTargetForumWide, id.Zero, t}] = MaxValue
	}
}

// RemoveUser drops every assignment where user is the subject (user
// deletion cascade, spec.md invariant 6).
func (s *Store) RemoveUser(user id.ID) {
	for k := range s.assigned {
		if k.user == user {
			delete(s.assigned, k)
		}
	}
}

// RemoveTarget drops every required/assigned entry scoped to target (entity
// deletion cascade).
func (s *Store) RemoveTarget(kind PrivilegeTargetKind, target id.ID) {
	for k := range s.required {
		if k.kind == kind && k.target == target {
			delete(s.required, k)
		}
	}
	for k := range s.assigned {
		if k.kind == kind && k.target == target {
			delete(s.assigned, k)
		}
	}
}
