package repository

import (
	"testing"

	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeDiscussionThreadNameRoundTrip(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	userID, code := repo.AddNewUser(rc, id.Zero, "liam", "auth-liam")
	require.True(t, code.OK())
	threadID, code := repo.AddNewDiscussionThread(rc, id.Zero, "original name", userID)
	require.True(t, code.OK())

	require.Equal(t, status.OK, repo.ChangeDiscussionThreadName(rc, threadID, "renamed thread"))

	th, ok := repo.Store.GetThreadByID(threadID)
	require.True(t, ok)
	assert.Equal(t, "renamed thread", th.Name())
}

func TestDeleteDiscussionThreadRemovesEntity(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	userID, code := repo.AddNewUser(rc, id.Zero, "mona", "auth-mona")
	require.True(t, code.OK())
	threadID, code := repo.AddNewDiscussionThread(rc, id.Zero, "to be deleted", userID)
	require.True(t, code.OK())

	require.Equal(t, status.OK, repo.DeleteDiscussionThread(rc, threadID))

	_, ok := repo.Store.GetThreadByID(threadID)
	assert.False(t, ok)
}

func TestMergeDiscussionThreadsMovesMessages(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	userID, code := repo.AddNewUser(rc, id.Zero, "noah", "auth-noah")
	require.True(t, code.OK())

	fromID, code := repo.AddNewDiscussionThread(rc, id.Zero, "from thread", userID)
	require.True(t, code.OK())
	intoID, code := repo.AddNewDiscussionThread(rc, id.Zero, "into thread", userID)
	require.True(t, code.OK())

	_, code = repo.AddNewDiscussionThreadMessage(rc, id.Zero, fromID, userID, "a message in from")
	require.True(t, code.OK())

	require.Equal(t, status.OK, repo.MergeDiscussionThreads(rc, fromID, intoID))

	_, ok := repo.Store.GetThreadByID(fromID)
	assert.False(t, ok, "the source thread should no longer exist after a merge")

	into, ok := repo.Store.GetThreadByID(intoID)
	require.True(t, ok)
	assert.Equal(t, 1, into.MessageCount())
}

func TestSubscribeUnsubscribeDiscussionThread(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	userID, code := repo.AddNewUser(rc, id.Zero, "opal", "auth-opal")
	require.True(t, code.OK())
	threadID, code := repo.AddNewDiscussionThread(rc, id.Zero, "a thread", userID)
	require.True(t, code.OK())

	require.Equal(t, status.OK, repo.SubscribeToDiscussionThread(rc, userID, threadID))
	assert.Equal(t, status.NoEffect, repo.SubscribeToDiscussionThread(rc, userID, threadID))

	require.Equal(t, status.OK, repo.UnsubscribeFromDiscussionThread(rc, userID, threadID))
	assert.Equal(t, status.NoEffect, repo.UnsubscribeFromDiscussionThread(rc, userID, threadID))
}

func TestIncrementDiscussionThreadVisits(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	userID, code := repo.AddNewUser(rc, id.Zero, "piotr", "auth-piotr")
	require.True(t, code.OK())
	threadID, code := repo.AddNewDiscussionThread(rc, id.Zero, "a thread", userID)
	require.True(t, code.OK())

	require.Equal(t, status.OK, repo.IncrementDiscussionThreadVisits(rc, threadID, 5))
	require.Equal(t, status.OK, repo.IncrementDiscussionThreadVisits(rc, threadID, 3))

	th, ok := repo.Store.GetThreadByID(threadID)
	require.True(t, ok)
	assert.Equal(t, uint64(8), th.VisitCount())
}
