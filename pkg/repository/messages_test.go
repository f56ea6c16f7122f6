package repository

import (
	"testing"

	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordDiscussionThreadMessageQuoteAppendsHistory(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	authorID, code := repo.AddNewUser(rc, id.Zero, "frank", "auth-frank")
	require.True(t, code.OK())
	threadID, code := repo.AddNewDiscussionThread(rc, id.Zero, "a thread", authorID)
	require.True(t, code.OK())
	msgID, code := repo.AddNewDiscussionThreadMessage(rc, id.Zero, threadID, authorID, "source message")
	require.True(t, code.OK())

	quoterID, code := repo.AddNewUser(rc, id.Zero, "grace", "auth-grace")
	require.True(t, code.OK())

	assert.Equal(t, status.OK, repo.RecordDiscussionThreadMessageQuote(rc, msgID, quoterID))

	quoter, ok := repo.Store.GetUserByID(quoterID)
	require.True(t, ok)
	history := quoter.QuoteHistory()
	require.Len(t, history, 1)

	msg, ok := repo.Store.GetMessageByID(msgID)
	require.True(t, ok)
	assert.Equal(t, msg.Handle(), history[0].SourceMessage)
}

func TestRecordDiscussionThreadMessageQuoteUnknownMessage(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	quoterID, code := repo.AddNewUser(rc, id.Zero, "henry", "auth-henry")
	require.True(t, code.OK())

	assert.Equal(t, status.NotFound, repo.RecordDiscussionThreadMessageQuote(rc, id.New(), quoterID))
}

func TestRecordDiscussionThreadMessageQuoteUnknownUser(t *testing.T) {
	repo := newTestRepository()
	rc := RequestContext{}

	authorID, code := repo.AddNewUser(rc, id.Zero, "iris", "auth-iris")
	require.True(t, code.OK())
	threadID, code := repo.AddNewDiscussionThread(rc, id.Zero, "another thread", authorID)
	require.True(t, code.OK())
	msgID, code := repo.AddNewDiscussionThreadMessage(rc, id.Zero, threadID, authorID, "source message")
	require.True(t, code.OK())

	assert.Equal(t, status.NotFound, repo.RecordDiscussionThreadMessageQuote(rc, msgID, id.New()))
}
