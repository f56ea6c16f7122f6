package entity

import (
	"testing"
	"time"

	"github.com/forumkit/forumcore/pkg/collation"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/pool"
)

func newTestUser(maxHistoryLen int) *User {
	u := NewUser(id.New(), "frank", collation.DeriveKey("frank"), "auth-frank", time.Now(), maxHistoryLen)
	u.Bind(pool.Handle{Kind: pool.KindUser, Index: 0}, nil)
	return u
}

func TestUserOwnedThreadCountTracksSet(t *testing.T) {
	u := newTestUser(0)
	h1 := pool.Handle{Kind: pool.KindThread, Index: 1}
	h2 := pool.Handle{Kind: pool.KindThread, Index: 2}

	u.AddOwnedThread(h1)
	u.AddOwnedThread(h2)
	if u.ThreadCount() != 2 {
		t.Fatalf("ThreadCount() = %d, want 2", u.ThreadCount())
	}

	u.RemoveOwnedThread(h1)
	if u.ThreadCount() != 1 {
		t.Fatalf("ThreadCount() = %d, want 1", u.ThreadCount())
	}
}

func TestUserAddOwnedThreadIsIdempotent(t *testing.T) {
	u := newTestUser(0)
	h := pool.Handle{Kind: pool.KindThread, Index: 1}

	u.AddOwnedThread(h)
	u.AddOwnedThread(h)
	if u.ThreadCount() != 1 {
		t.Fatalf("ThreadCount() = %d, want 1 after adding the same handle twice", u.ThreadCount())
	}
}

func TestUserSetNameUpdatesNameAndKey(t *testing.T) {
	u := newTestUser(0)
	u.SetName("francine", collation.DeriveKey("francine"))
	if u.Name() != "francine" {
		t.Fatalf("Name() = %q, want %q", u.Name(), "francine")
	}
}

func TestUserRecordVoteTrimsToMaxHistory(t *testing.T) {
	u := newTestUser(2)
	msg := func(i uint32) pool.Handle { return pool.Handle{Kind: pool.KindMessage, Index: i} }

	u.RecordVote(VoteRecord{Message: msg(1), Up: true})
	u.RecordVote(VoteRecord{Message: msg(2), Up: true})
	u.RecordVote(VoteRecord{Message: msg(3), Up: false})

	votes := u.ReceivedVotes()
	if len(votes) != 2 {
		t.Fatalf("ReceivedVotes() has %d entries, want 2", len(votes))
	}
	if votes[0].Message != msg(2) || votes[1].Message != msg(3) {
		t.Fatalf("RecordVote() should drop the oldest entry, got %+v", votes)
	}
}

func TestUserLastVoteOnFindsMostRecent(t *testing.T) {
	u := newTestUser(0)
	target := pool.Handle{Kind: pool.KindMessage, Index: 5}

	u.RecordVote(VoteRecord{Message: target, Up: true})
	u.RecordVote(VoteRecord{Message: target, Up: false})

	rec, ok := u.LastVoteOn(target)
	if !ok {
		t.Fatal("LastVoteOn() should find a recorded vote")
	}
	if rec.Up {
		t.Fatal("LastVoteOn() should return the most recent (down) vote, not the first")
	}

	if _, ok := u.LastVoteOn(pool.Handle{Kind: pool.KindMessage, Index: 99}); ok {
		t.Fatal("LastVoteOn() on an unvoted message should report not-found")
	}
}

func TestUserSubscribeUnsubscribe(t *testing.T) {
	u := newTestUser(0)
	thread := pool.Handle{Kind: pool.KindThread, Index: 1}

	if !u.Subscribe(thread) {
		t.Fatal("Subscribe() should succeed the first time")
	}
	if u.Subscribe(thread) {
		t.Fatal("Subscribe() should be false when already subscribed")
	}
	if !u.Unsubscribe(thread) {
		t.Fatal("Unsubscribe() should succeed when subscribed")
	}
	if u.SubscribedThreads().Len() != 0 {
		t.Fatalf("SubscribedThreads().Len() = %d, want 0", u.SubscribedThreads().Len())
	}
}
