package repository

import (
	"testing"
	"time"

	"github.com/forumkit/forumcore/pkg/entity"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignPrivilegeRequiresExistingUser(t *testing.T) {
	repo := newTestRepository()
	code := repo.AssignPrivilege(RequestContext{}, entity.PrivilegeTargetThread, id.New(), id.New(), 5, 0)
	assert.Equal(t, status.NotFound, code)
}

func TestAssignPrivilegeGrantsReadableValue(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	userID, code := repo.AddNewUser(rc, id.Zero, "kyle", "auth-kyle")
	require.True(t, code.OK())

	target := id.New()
	require.True(t, repo.AssignPrivilege(rc, entity.PrivilegeTargetThread, target, userID, 7, time.Hour).OK())

	v, ok := repo.Store.Privileges.AssignedPrivilege(entity.PrivilegeTargetThread, target, userID, repo.now())
	require.True(t, ok)
	assert.Equal(t, entity.Value(7), v)
}

func TestChangeRequiredPrivilegeUnknownKindRejected(t *testing.T) {
	repo := newTestRepository()
	code := repo.ChangeRequiredPrivilege(RequestContext{}, entity.PrivilegeTargetKind(99), id.Zero, 0, 1)
	assert.False(t, code.OK())
}

func TestChangeRequiredPrivilegeRoundTrip(t *testing.T) {
	repo := newTestRepository()
	target := id.New()

	require.True(t, repo.ChangeRequiredPrivilege(RequestContext{}, entity.PrivilegeTargetTag, target, 3, 9).OK())

	v, ok := repo.Store.Privileges.RequiredPrivilege(entity.PrivilegeTargetTag, target, 3)
	require.True(t, ok)
	assert.Equal(t, entity.Value(9), v)
}

func TestChangeForumWideDefaultPrivilegeLevel(t *testing.T) {
	repo := newTestRepository()
	require.True(t, repo.ChangeForumWideDefaultPrivilegeLevel(RequestContext{}, 1, 2, 30*time.Minute).OK())

	value, duration := repo.Store.Privileges.ForumWideDefault()
	assert.Equal(t, entity.Value(2), value)
	assert.Equal(t, 30*time.Minute, duration)
}
