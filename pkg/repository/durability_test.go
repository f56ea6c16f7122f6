package repository

import (
	"testing"

	"github.com/forumkit/forumcore/pkg/config"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/persist"
	"github.com/forumkit/forumcore/pkg/pipeline"
	"github.com/forumkit/forumcore/pkg/replay"
	"github.com/forumkit/forumcore/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReplayReconstructsState exercises the full durability chain: a
// repository backed by a real appender/pipeline durably logs a handful of
// mutations, then a second, empty repository replays the log through
// DirectWriter and must end up with equivalent state.
func TestReplayReconstructsState(t *testing.T) {
	dir := t.TempDir()

	appender, err := persist.NewAppender(dir, 0)
	require.NoError(t, err)
	pipe := pipeline.New(appender, pipeline.DefaultCapacity)

	writerRepo := New(store.New(), config.NewStore(config.Default()), pipe, nil)
	rc := RequestContext{}

	userID, code := writerRepo.AddNewUser(rc, id.Zero, "eve", "auth-eve")
	require.True(t, code.OK())

	threadID, code := writerRepo.AddNewDiscussionThread(rc, id.Zero, "durable thread", userID)
	require.True(t, code.OK())

	_, code = writerRepo.AddNewDiscussionThreadMessage(rc, id.Zero, threadID, userID, "durable message")
	require.True(t, code.OK())

	_, code = writerRepo.AddNewDiscussionTag(rc, id.Zero, "durable")
	require.True(t, code.OK())

	rootCategoryID, code := writerRepo.AddNewDiscussionCategory(rc, id.Zero, "root", "")
	require.True(t, code.OK())
	childCategoryID, code := writerRepo.AddNewDiscussionCategory(rc, id.Zero, "child", "")
	require.True(t, code.OK())
	require.True(t, writerRepo.ChangeDiscussionCategoryParent(rc, childCategoryID, rootCategoryID).OK())

	pipe.Close()

	readerStore := store.New()
	readerRepo := New(readerStore, config.NewStore(config.Default()), nil, nil)
	replay.Run(dir, true, NewDirectWriter(readerRepo))

	assert.Equal(t, 1, readerStore.UserCount())
	assert.Equal(t, 1, readerStore.ThreadCount())
	assert.Equal(t, 1, readerStore.MessageCount())
	assert.Equal(t, 1, readerStore.TagCount())
	assert.Equal(t, 2, readerStore.CategoryCount())

	u, ok := readerStore.GetUserByID(userID)
	require.True(t, ok)
	assert.Equal(t, "eve", u.Name())

	th, ok := readerStore.GetThreadByID(threadID)
	require.True(t, ok)
	assert.Equal(t, "durable thread", th.Name())

	root, ok := readerStore.GetCategoryByID(rootCategoryID)
	require.True(t, ok)
	child, ok := readerStore.GetCategoryByID(childCategoryID)
	require.True(t, ok)
	assert.Equal(t, root.Handle(), child.Parent())
}
