package entity

import (
	"testing"
	"time"

	"github.com/forumkit/forumcore/pkg/collation"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/pool"
)

func newTestTag() *Tag {
	tag := NewTag(id.New(), "topic", collation.DeriveKey("topic"), time.Now())
	tag.Bind(pool.Handle{Kind: pool.KindTag, Index: 0}, nil)
	return tag
}

func TestTagUiBlobRoundTrip(t *testing.T) {
	tag := newTestTag()
	if tag.UiBlob() != nil {
		t.Fatal("a new tag should start with no uiBlob")
	}
	tag.SetUiBlob([]byte("icon-bytes"))
	if string(tag.UiBlob()) != "icon-bytes" {
		t.Fatalf("UiBlob() = %q, want %q", tag.UiBlob(), "icon-bytes")
	}
}

func TestTagAddRemoveThreadTracksCount(t *testing.T) {
	tag := newTestTag()
	th := pool.Handle{Kind: pool.KindThread, Index: 1}

	tag.AddThread(th)
	if tag.ThreadCount() != 1 {
		t.Fatalf("ThreadCount() = %d, want 1", tag.ThreadCount())
	}

	tag.AddThread(th)
	if tag.ThreadCount() != 1 {
		t.Fatal("AddThread() should be idempotent for an already-tagged thread")
	}

	tag.RemoveThread(th)
	if tag.ThreadCount() != 0 {
		t.Fatalf("ThreadCount() = %d, want 0 after RemoveThread()", tag.ThreadCount())
	}
}

func TestTagAdjustMessageCount(t *testing.T) {
	tag := newTestTag()
	tag.AdjustMessageCount(3)
	tag.AdjustMessageCount(-1)
	if tag.MessageCount() != 2 {
		t.Fatalf("MessageCount() = %d, want 2", tag.MessageCount())
	}
}
