package events

import (
	"net"
	"testing"
	"time"

	"github.com/forumkit/forumcore/pkg/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	entityID := id.New()
	performingUser := id.New()
	ts := time.Unix(1730000000, 0).UTC()
	ctx := Context{Timestamp: ts, PerformingUser: performingUser, IP: net.ParseIP("203.0.113.7")}

	data := NewPayload(32).ID(entityID).String("a new thread").Build()
	blob := Encode(AddNewDiscussionThread, ctx, data)

	decoded, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, AddNewDiscussionThread, decoded.Type)
	assert.Equal(t, ts, decoded.Context.Timestamp)
	assert.Equal(t, performingUser, decoded.Context.PerformingUser)
	assert.Equal(t, "203.0.113.7", decoded.Context.IP.String())

	gotID := decoded.Data.ID()
	gotName := decoded.Data.String()
	require.NoError(t, decoded.Data.Err())
	assert.Equal(t, entityID, gotID)
	assert.Equal(t, "a new thread", gotName)
}

func TestEncodeDecodeRoundTripNoIP(t *testing.T) {
	ctx := Context{Timestamp: time.Unix(1, 0).UTC(), PerformingUser: id.New()}
	blob := Encode(DeleteDiscussionTag, ctx, NewPayload(16).ID(id.New()).Build())

	decoded, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, DeleteDiscussionTag, decoded.Type)
	assert.True(t, decoded.Context.IP == nil || decoded.Context.IP.IsUnspecified() || len(decoded.Context.IP) == 0)
}

func TestBrokerPublishFansOutToSubscribers(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	sub1 := b.Subscribe()
	sub2 := b.Subscribe()
	defer b.Unsubscribe(sub1)
	defer b.Unsubscribe(sub2)

	b.Publish(&Notification{Type: AddNewUser, EntityID: "u1", Message: "added"})

	for _, sub := range []Subscriber{sub1, sub2} {
		select {
		case n := <-sub:
			assert.Equal(t, AddNewUser, n.Type)
			assert.Equal(t, "u1", n.EntityID)
		case <-time.After(time.Second):
			t.Fatal("did not receive notification")
		}
	}
}

func TestTypeStringMatchesEventTable(t *testing.T) {
	assert.Equal(t, "ADD_NEW_USER", AddNewUser.String())
	assert.Equal(t, "CHANGE_DISCUSSION_TAG_UI_BLOB", ChangeDiscussionTagUiBlob.String())
	assert.Equal(t, "CHANGE_DISCUSSION_CATEGORY_PARENT", ChangeDiscussionCategoryParent.String())
	assert.Equal(t, "RECORD_DISCUSSION_THREAD_MESSAGE_QUOTE", RecordDiscussionThreadMessageQuote.String())
	assert.Equal(t, "ADD_DISCUSSION_TAG_TO_CATEGORY", AddDiscussionTagToCategory.String())
	assert.Equal(t, "REMOVE_DISCUSSION_TAG_FROM_CATEGORY", RemoveDiscussionTagFromCategory.String())
}
