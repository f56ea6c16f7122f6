package searchfeed

import (
	"testing"
	"time"

	"github.com/forumkit/forumcore/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedEnqueuesSearchableEvents(t *testing.T) {
	outbox, err := NewOutbox(t.TempDir())
	require.NoError(t, err)
	defer outbox.Close()

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	feed := NewFeed(outbox, broker)
	go feed.Run()
	defer feed.Close()

	broker.Publish(&events.Notification{Type: events.AddNewDiscussionThread, EntityID: "thread-1", Message: "new thread"})
	broker.Publish(&events.Notification{Type: events.DiscussionThreadMessageUpVote, EntityID: "message-1", Message: "upvoted"})

	require.Eventually(t, func() bool {
		n, err := outbox.Len()
		return err == nil && n == 1
	}, time.Second, 10*time.Millisecond)

	docs, err := outbox.ListPending(0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "thread", docs[0].Kind)
	assert.Equal(t, "thread-1", docs[0].EntityID)
	assert.Equal(t, OpUpsert, docs[0].Op)
}
