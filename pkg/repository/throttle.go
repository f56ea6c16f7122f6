package repository

import (
	"sync"
	"time"

	"github.com/forumkit/forumcore/pkg/id"
)

// throttle tracks the last accepted post timestamp per user for the
// service.minSecondsBetweenPosts check, ported from
// ThrottlingCheck.h: this is ephemeral rate-limiting state, not part of
// durable forum data, so it lives beside the façade rather than in
// pkg/store and is never replayed.
type throttle struct {
	mu       sync.Mutex
	lastPost map[id.ID]time.Time
}

func newThrottle() *throttle {
	return &throttle{lastPost: make(map[id.ID]time.Time)}
}

// allow reports whether user may post right now given minSeconds since
// their last accepted post, and if so records now as their new last-post
// time. A zero minSeconds disables throttling entirely.
func (t *throttle) allow(user id.ID, now time.Time, minSeconds int) bool {
	if minSeconds <= 0 || user.IsZero() {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if last, ok := t.lastPost[user]; ok {
		if now.Sub(last) < time.Duration(minSeconds)*time.Second {
			return false
		}
	}
	t.lastPost[user] = now
	return true
}
