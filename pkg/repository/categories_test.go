package repository

import (
	"testing"

	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeDiscussionCategoryParentRoundTrip(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	rootID, code := repo.AddNewDiscussionCategory(rc, id.Zero, "root", "")
	require.True(t, code.OK())
	childID, code := repo.AddNewDiscussionCategory(rc, id.Zero, "child", "")
	require.True(t, code.OK())

	require.Equal(t, status.OK, repo.ChangeDiscussionCategoryParent(rc, childID, rootID))

	child, ok := repo.Store.GetCategoryByID(childID)
	require.True(t, ok)
	root, ok := repo.Store.GetCategoryByID(rootID)
	require.True(t, ok)
	assert.Equal(t, root.Handle(), child.Parent())
}

func TestChangeDiscussionCategoryParentRejectsCycle(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	rootID, code := repo.AddNewDiscussionCategory(rc, id.Zero, "root", "")
	require.True(t, code.OK())
	childID, code := repo.AddNewDiscussionCategory(rc, id.Zero, "child", "")
	require.True(t, code.OK())

	require.Equal(t, status.OK, repo.ChangeDiscussionCategoryParent(rc, childID, rootID))
	assert.Equal(t, status.CircularReferenceNotAllowed, repo.ChangeDiscussionCategoryParent(rc, rootID, childID))
}

func TestChangeDiscussionCategoryParentRejectsSelfAssignment(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	catID, code := repo.AddNewDiscussionCategory(rc, id.Zero, "solo", "")
	require.True(t, code.OK())

	assert.Equal(t, status.InvalidParameters, repo.ChangeDiscussionCategoryParent(rc, catID, catID))
}

func TestChangeDiscussionCategoryParentUnknownCategory(t *testing.T) {
	repo := newTestRepository()
	assert.Equal(t, status.NotFound, repo.ChangeDiscussionCategoryParent(RequestContext{}, id.New(), id.Zero))
}

func TestChangeDiscussionCategoryParentUnknownNewParent(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	catID, code := repo.AddNewDiscussionCategory(rc, id.Zero, "solo", "")
	require.True(t, code.OK())

	assert.Equal(t, status.NotFound, repo.ChangeDiscussionCategoryParent(rc, catID, id.New()))
}

func TestAddNewDiscussionCategoryRejectsDuplicateSiblingName(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	parentID, code := repo.AddNewDiscussionCategory(rc, id.Zero, "parent", "")
	require.True(t, code.OK())
	childID, code := repo.AddNewDiscussionCategory(rc, id.Zero, "child", "")
	require.True(t, code.OK())
	require.Equal(t, status.OK, repo.ChangeDiscussionCategoryParent(rc, childID, parentID))

	secondChildID, code := repo.AddNewDiscussionCategory(rc, id.Zero, "child", "")
	require.True(t, code.OK())
	assert.Equal(t, status.AlreadyExists, repo.ChangeDiscussionCategoryParent(rc, secondChildID, parentID))

	// Same name under a different parent is fine.
	otherParentID, code := repo.AddNewDiscussionCategory(rc, id.Zero, "other-parent", "")
	require.True(t, code.OK())
	assert.Equal(t, status.OK, repo.ChangeDiscussionCategoryParent(rc, secondChildID, otherParentID))
}

func TestAddDiscussionTagToCategoryFoldsTaggedThreadsIntoCategory(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	authorID, code := repo.AddNewUser(rc, id.Zero, "hank", "auth-hank")
	require.True(t, code.OK())
	threadID, code := repo.AddNewDiscussionThread(rc, id.Zero, "a thread", authorID)
	require.True(t, code.OK())
	tagID, code := repo.AddNewDiscussionTag(rc, id.Zero, "announcements")
	require.True(t, code.OK())
	catID, code := repo.AddNewDiscussionCategory(rc, id.Zero, "news", "")
	require.True(t, code.OK())

	require.Equal(t, status.OK, repo.AddDiscussionTagToThread(rc, tagID, threadID))
	_, code = repo.AddNewDiscussionThreadMessage(rc, id.Zero, threadID, authorID, "hello")
	require.True(t, code.OK())

	assert.Equal(t, status.OK, repo.AddDiscussionTagToCategory(rc, tagID, catID))

	cat, ok := repo.Store.GetCategoryByID(catID)
	require.True(t, ok)
	thread, ok := repo.Store.GetThreadByID(threadID)
	require.True(t, ok)
	assert.True(t, thread.Categories().Contains(cat.Handle()))
	assert.Equal(t, 1, cat.MessageCount())

	assert.Equal(t, status.OK, repo.RemoveDiscussionTagFromCategory(rc, tagID, catID))
	assert.False(t, thread.Categories().Contains(cat.Handle()))
	assert.Equal(t, 0, cat.MessageCount())
}

func TestAddDiscussionTagToCategoryUnknownTag(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	catID, code := repo.AddNewDiscussionCategory(rc, id.Zero, "news", "")
	require.True(t, code.OK())

	assert.Equal(t, status.NotFound, repo.AddDiscussionTagToCategory(rc, id.New(), catID))
}
