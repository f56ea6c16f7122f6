package repository

import (
	"testing"

	"github.com/forumkit/forumcore/pkg/entity"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeUserNameUpdatesStore(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	userID, code := repo.AddNewUser(rc, id.Zero, "ellen", "auth-ellen")
	require.True(t, code.OK())

	require.Equal(t, status.OK, repo.ChangeUserName(rc, userID, "elena"))

	u, ok := repo.Store.GetUserByID(userID)
	require.True(t, ok)
	assert.Equal(t, "elena", u.Name())
}

func TestChangeUserNameUnknownUser(t *testing.T) {
	repo := newTestRepository()
	assert.Equal(t, status.NotFound, repo.ChangeUserName(RequestContext{}, id.New(), "nobody"))
}

func TestChangeUserLogoRejectsOversized(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	userID, code := repo.AddNewUser(rc, id.Zero, "frieda", "auth-frieda")
	require.True(t, code.OK())

	oversized := make([]byte, repo.Config.Load().User.MaxLogoBinarySize+1)
	assert.Equal(t, status.ValueTooLong, repo.ChangeUserLogo(rc, userID, oversized))
}

func TestChangeUserLogoRoundTrip(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	userID, code := repo.AddNewUser(rc, id.Zero, "george", "auth-george")
	require.True(t, code.OK())

	logo := []byte("tiny-logo-bytes")
	require.Equal(t, status.OK, repo.ChangeUserLogo(rc, userID, logo))

	u, ok := repo.Store.GetUserByID(userID)
	require.True(t, ok)
	assert.Equal(t, logo, u.Logo())
}

func TestDeleteUserRemovesEntity(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	userID, code := repo.AddNewUser(rc, id.Zero, "harriet", "auth-harriet")
	require.True(t, code.OK())

	require.Equal(t, status.OK, repo.DeleteUser(rc, userID))

	_, ok := repo.Store.GetUserByID(userID)
	assert.False(t, ok)
}

func TestDeleteUserUnknown(t *testing.T) {
	repo := newTestRepository()
	assert.Equal(t, status.NotFound, repo.DeleteUser(RequestContext{}, id.New()))
}

func TestFirstUserBootstrapGrantsForumWidePrivilege(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	firstID, code := repo.AddNewUser(rc, id.Zero, "ian", "auth-ian")
	require.True(t, code.OK())
	secondID, code := repo.AddNewUser(rc, id.Zero, "jane", "auth-jane")
	require.True(t, code.OK())

	v, ok := repo.Store.Privileges.AssignedPrivilege(entity.PrivilegeTargetForumWide, id.Zero, firstID, repo.now())
	require.True(t, ok)
	assert.Equal(t, entity.MaxValue, v)

	_, ok = repo.Store.Privileges.AssignedPrivilege(entity.PrivilegeTargetForumWide, id.Zero, secondID, repo.now())
	assert.False(t, ok, "only the very first user should be bootstrapped with forum-wide privilege")
}
