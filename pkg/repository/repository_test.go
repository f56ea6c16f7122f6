package repository

import (
	"testing"
	"time"

	"github.com/forumkit/forumcore/pkg/config"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/status"
	"github.com/forumkit/forumcore/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository() *Repository {
	s := store.New()
	repo := New(s, config.NewStore(config.Default()), nil, nil)
	return repo
}

func TestAddNewUserAndGet(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	newID, code := repo.AddNewUser(rc, id.Zero, "alice", "auth-alice")
	require.True(t, code.OK())
	assert.False(t, newID.IsZero())

	u, ok := repo.Store.GetUserByID(newID)
	require.True(t, ok)
	assert.Equal(t, "alice", u.Name())
}

func TestAddNewUserRejectsShortName(t *testing.T) {
	repo := newTestRepository()
	_, code := repo.AddNewUser(RequestContext{}, id.Zero, "a", "auth")
	assert.Equal(t, status.ValueTooShort, code)
}

func TestAddNewDiscussionThreadRequiresExistingCreator(t *testing.T) {
	repo := newTestRepository()
	_, code := repo.AddNewDiscussionThread(RequestContext{}, id.Zero, "a new thread", id.Zero)
	assert.Equal(t, status.NotFound, code)
}

func TestThreadAndMessageLifecycle(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	userID, code := repo.AddNewUser(rc, id.Zero, "bob", "auth-bob")
	require.True(t, code.OK())

	threadID, code := repo.AddNewDiscussionThread(rc, id.Zero, "a new thread", userID)
	require.True(t, code.OK())

	msgID, code := repo.AddNewDiscussionThreadMessage(rc, id.Zero, threadID, userID, "hello there")
	require.True(t, code.OK())
	assert.False(t, msgID.IsZero())

	commentID, code := repo.AddCommentToDiscussionThreadMessage(rc, id.Zero, msgID, userID, "a comment")
	require.True(t, code.OK())
	assert.False(t, commentID.IsZero())

	assert.Equal(t, status.OK, repo.SolveDiscussionThreadMessageComment(rc, commentID))
}

func TestChangeTagUiBlobRoundTrip(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	tagID, code := repo.AddNewDiscussionTag(rc, id.Zero, "go")
	require.True(t, code.OK())

	blob := []byte(`{"color":"blue"}`)
	require.Equal(t, status.OK, repo.ChangeTagUiBlob(rc, tagID, blob))

	tag, ok := repo.Store.GetTagByID(tagID)
	require.True(t, ok)
	assert.Equal(t, blob, tag.UiBlob())
}

func TestChangeTagUiBlobRejectsOversizedBlob(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	tagID, code := repo.AddNewDiscussionTag(rc, id.Zero, "go")
	require.True(t, code.OK())

	oversized := make([]byte, repo.Config.Load().DiscussionTag.MaxUIBlobSize+1)
	assert.Equal(t, status.ValueTooLong, repo.ChangeTagUiBlob(rc, tagID, oversized))
}

func TestThrottleBlocksRapidThreadCreation(t *testing.T) {
	repo := newTestRepository()
	snap := *config.Default()
	snap.Service.MinSecondsBetweenPosts = 60
	repo.Config.Swap(&snap)

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.Now = func() time.Time { return clock }

	rc := RequestContext{}
	userID, code := repo.AddNewUser(rc, id.Zero, "carol", "auth-carol")
	require.True(t, code.OK())

	_, code = repo.AddNewDiscussionThread(rc, id.Zero, "first thread", userID)
	require.True(t, code.OK())

	_, code = repo.AddNewDiscussionThread(rc, id.Zero, "second thread", userID)
	assert.Equal(t, status.Throttled, code)

	clock = clock.Add(61 * time.Second)
	_, code = repo.AddNewDiscussionThread(rc, id.Zero, "third thread", userID)
	assert.True(t, code.OK())
}

func TestThrottleDisabledByDefault(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	userID, code := repo.AddNewUser(rc, id.Zero, "dave", "auth-dave")
	require.True(t, code.OK())

	_, code = repo.AddNewDiscussionThread(rc, id.Zero, "first thread", userID)
	require.True(t, code.OK())
	_, code = repo.AddNewDiscussionThread(rc, id.Zero, "second thread", userID)
	assert.True(t, code.OK())
}
