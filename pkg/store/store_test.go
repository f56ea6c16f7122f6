package store

import (
	"testing"
	"time"

	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertUserRejectsDuplicateName(t *testing.T) {
	s := New()
	now := time.Now()

	u1 := s.CreateUser(id.Zero, "frank", "auth-1", now)
	require.Equal(t, status.OK, s.InsertUser(u1))

	u2 := s.CreateUser(id.Zero, "frank", "auth-2", now)
	assert.Equal(t, status.AlreadyExists, s.InsertUser(u2))
}

func TestInsertUserRejectsDuplicateAuth(t *testing.T) {
	s := New()
	now := time.Now()

	u1 := s.CreateUser(id.Zero, "grace", "shared-auth", now)
	require.Equal(t, status.OK, s.InsertUser(u1))

	u2 := s.CreateUser(id.Zero, "henry", "shared-auth", now)
	assert.Equal(t, status.UserWithSameAuthAlreadyExists, s.InsertUser(u2))
}

func TestCreateUserAssignsIDWhenZero(t *testing.T) {
	s := New()
	u := s.CreateUser(id.Zero, "iris", "auth-iris", time.Now())
	assert.False(t, u.ID().IsZero())
}

func TestCreateUserPreservesSuppliedID(t *testing.T) {
	s := New()
	explicit := id.New()
	u := s.CreateUser(explicit, "jack", "auth-jack", time.Now())
	assert.Equal(t, explicit, u.ID())
}

func TestCategoryParentCycleRejected(t *testing.T) {
	s := New()

	root := s.CreateCategory(id.Zero, "root", "")
	require.Equal(t, status.OK, s.InsertCategory(root))

	child := s.CreateCategory(id.Zero, "child", "")
	require.Equal(t, status.OK, s.InsertCategory(child))
	require.Equal(t, status.OK, s.SetCategoryParent(child.Handle(), root.Handle()))

	assert.Equal(t, status.CircularReferenceNotAllowed, s.SetCategoryParent(root.Handle(), child.Handle()))
}

func TestDeleteTagUntagsThreads(t *testing.T) {
	s := New()
	now := time.Now()

	u := s.CreateUser(id.Zero, "kelly", "auth-kelly", now)
	require.Equal(t, status.OK, s.InsertUser(u))

	th := s.CreateThread(id.Zero, "a thread", u.Handle(), now)
	require.Equal(t, status.OK, s.InsertThread(th))

	tag := s.CreateTag(id.Zero, "topic", now)
	require.Equal(t, status.OK, s.InsertTag(tag))

	require.Equal(t, status.OK, s.TagThread(tag.Handle(), th.Handle()))
	assert.Equal(t, 1, th.Tags().Len())

	require.Equal(t, status.OK, s.DeleteTag(tag.Handle()))
	assert.Equal(t, 0, th.Tags().Len())
}
