package searchfeed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxEnqueueAndListPending(t *testing.T) {
	outbox, err := NewOutbox(t.TempDir())
	require.NoError(t, err)
	defer outbox.Close()

	require.NoError(t, outbox.Enqueue("thread", "thread-1", OpUpsert, "new thread"))
	require.NoError(t, outbox.Enqueue("message", "message-1", OpUpsert, "new message"))

	docs, err := outbox.ListPending(0)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "thread", docs[0].Kind)
	assert.Equal(t, "thread-1", docs[0].EntityID)
	assert.Equal(t, OpUpsert, docs[0].Op)
	assert.Less(t, docs[0].Sequence, docs[1].Sequence)
}

func TestOutboxAckRemovesEntry(t *testing.T) {
	outbox, err := NewOutbox(t.TempDir())
	require.NoError(t, err)
	defer outbox.Close()

	require.NoError(t, outbox.Enqueue("tag", "tag-1", OpDelete, "tag removed"))
	docs, err := outbox.ListPending(0)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	require.NoError(t, outbox.Ack(docs[0].Sequence))

	n, err := outbox.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestOutboxListPendingRespectsLimit(t *testing.T) {
	outbox, err := NewOutbox(t.TempDir())
	require.NoError(t, err)
	defer outbox.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, outbox.Enqueue("thread", "thread-n", OpUpsert, "change"))
	}

	docs, err := outbox.ListPending(2)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}
