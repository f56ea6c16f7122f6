package store

import (
	"time"

	"github.com/forumkit/forumcore/pkg/collation"
	"github.com/forumkit/forumcore/pkg/entity"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/index"
	"github.com/forumkit/forumcore/pkg/pool"
	"github.com/forumkit/forumcore/pkg/status"
)

type userCollection struct {
	s    *Store
	pool *pool.Pool[*entity.User]

	byID           *index.Unique[id.ID]
	byAuth         *index.Unique[string]
	byNameKey      *index.Unique[string]
	byNameOrder    *index.Ordered[collation.Key]
	byCreated      *index.Ordered[time.Time]
	byLastSeen     *index.Ordered[time.Time]
	byThreadCount  *index.Ordered[int]
	byMessageCount *index.Ordered[int]
}

func (c *userCollection) init(s *Store) {
	c.s = s
	c.pool = pool.New[*entity.User](pool.KindUser)
	c.byID = index.NewUnique[id.ID]()
	c.byAuth = index.NewUnique[string]()
	c.byNameKey = index.NewUnique[string]()
	c.byNameOrder = index.NewOrdered(func(a, b collation.Key) bool { return collation.Compare(a, b) < 0 })
	c.byCreated = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.byLastSeen = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.byThreadCount = index.NewOrdered(func(a, b int) bool { return a > b })
	c.byMessageCount = index.NewOrdered(func(a, b int) bool { return a > b })
}

func (c *userCollection) hooks() *entity.UserHooks {
	return &entity.UserHooks{
		PrepareUpdateName: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			u := c.pool.MustGet(h)
			c.byNameKey.Remove(string(u.NameKey()))
			c.byNameOrder.Remove(h)
		},
		UpdateName: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			u := c.pool.MustGet(h)
			c.byNameKey.Insert(string(u.NameKey()), h)
			c.byNameOrder.Insert(u.NameKey(), h)
		},
		PrepareUpdateAuth: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			u := c.pool.MustGet(h)
			c.byAuth.Remove(u.Auth())
		},
		UpdateAuth: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			u := c.pool.MustGet(h)
			c.byAuth.Insert(u.Auth(), h)
		},
		PrepareUpdateLastSeen: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			c.byLastSeen.Remove(h)
		},
		UpdateLastSeen: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			u := c.pool.MustGet(h)
			c.byLastSeen.Insert(u.LastSeen(), h)
		},
		PrepareUpdateThreadCount: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			c.byThreadCount.Remove(h)
		},
		UpdateThreadCount: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			u := c.pool.MustGet(h)
			c.byThreadCount.Insert(u.ThreadCount(), h)
		},
		PrepareUpdateMessageCount: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			c.byMessageCount.Remove(h)
		},
		UpdateMessageCount: func(h pool.Handle) {
			if c.s.batch {
				return
			}
			u := c.pool.MustGet(h)
			c.byMessageCount.Insert(u.MessageCount(), h)
		},
	}
}

func (c *userCollection) rebuildOrderings() {
	c.byNameKey = index.NewUnique[string]()
	c.byNameOrder = index.NewOrdered(func(a, b collation.Key) bool { return collation.Compare(a, b) < 0 })
	c.byAuth = index.NewUnique[string]()
	c.byCreated = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.byLastSeen = index.NewOrdered(func(a, b time.Time) bool { return a.Before(b) })
	c.byThreadCount = index.NewOrdered(func(a, b int) bool { return a > b })
	c.byMessageCount = index.NewOrdered(func(a, b int) bool { return a > b })
	c.pool.Each(func(h pool.Handle, u *entity.User) {
		c.byNameKey.Insert(string(u.NameKey()), h)
		c.byNameOrder.Insert(u.NameKey(), h)
		c.byAuth.Insert(u.Auth(), h)
		c.byCreated.Insert(u.Created(), h)
		c.byLastSeen.Insert(u.LastSeen(), h)
		c.byThreadCount.Insert(u.ThreadCount(), h)
		c.byMessageCount.Insert(u.MessageCount(), h)
	})
}

// CreateUser allocates the in-memory entity (without wiring it into any
// index yet); pass a non-zero entityID to preserve an id during replay.
func (s *Store) CreateUser(entityID id.ID, name, auth string, created time.Time) *entity.User {
	if entityID.IsZero() {
		entityID = id.New()
	}
	key := collation.DeriveKey(name)
	return entity.NewUser(entityID, name, key, auth, created, s.MaxVoteHistoryLength)
}

// InsertUser wires a constructed User into every index. Returns
// ALREADY_EXISTS on id/name collation collision, or
// USER_WITH_SAME_AUTH_ALREADY_EXISTS on auth collision.
func (s *Store) InsertUser(u *entity.User) status.Code {
	c := &s.users
	if c.byID.Contains(u.ID()) {
		return status.AlreadyExists
	}
	if c.byNameKey.Contains(string(u.NameKey())) {
		return status.AlreadyExists
	}
	if c.byAuth.Contains(u.Auth()) {
		return status.UserWithSameAuthAlreadyExists
	}

	h := c.pool.Add(u)
	u.Bind(h, c.hooks())

	c.byID.Insert(u.ID(), h)
	c.byNameKey.Insert(string(u.NameKey()), h)
	c.byNameOrder.Insert(u.NameKey(), h)
	c.byAuth.Insert(u.Auth(), h)
	c.byCreated.Insert(u.Created(), h)
	c.byLastSeen.Insert(u.LastSeen(), h)
	c.byThreadCount.Insert(u.ThreadCount(), h)
	c.byMessageCount.Insert(u.MessageCount(), h)
	return status.OK
}

// GetUser looks up a live user by handle.
func (s *Store) GetUser(h pool.Handle) (*entity.User, bool) {
	return s.users.pool.Get(h)
}

// GetUserByID looks up a live user by id.
func (s *Store) GetUserByID(uid id.ID) (*entity.User, bool) {
	h, ok := s.users.byID.Get(uid)
	if !ok {
		return nil, false
	}
	return s.users.pool.Get(h)
}

// GetUserByAuth looks up a live user by their unique auth string.
func (s *Store) GetUserByAuth(auth string) (*entity.User, bool) {
	h, ok := s.users.byAuth.Get(auth)
	if !ok {
		return nil, false
	}
	return s.users.pool.Get(h)
}

// UserCount returns the number of live users.
func (s *Store) UserCount() int { return s.users.pool.Len() }

// ListUsersByCreated pages the by-created ordering.
func (s *Store) ListUsersByCreated(offset, limit int) []*entity.User {
	return s.resolveUsers(s.users.byCreated.Page(offset, limit))
}

// ListUsersByLastSeen pages the by-last-seen ordering.
func (s *Store) ListUsersByLastSeen(offset, limit int) []*entity.User {
	return s.resolveUsers(s.users.byLastSeen.Page(offset, limit))
}

// ListUsersByThreadCount pages the by-thread-count (desc) ordering.
func (s *Store) ListUsersByThreadCount(offset, limit int) []*entity.User {
	return s.resolveUsers(s.users.byThreadCount.Page(offset, limit))
}

// ListUsersByMessageCount pages the by-message-count (desc) ordering.
func (s *Store) ListUsersByMessageCount(offset, limit int) []*entity.User {
	return s.resolveUsers(s.users.byMessageCount.Page(offset, limit))
}

// ListUsersByName pages the collation-ordered by-name ordering.
func (s *Store) ListUsersByName(offset, limit int) []*entity.User {
	return s.resolveUsers(s.users.byNameOrder.Page(offset, limit))
}

// UserNameRank returns the zero-based lower-bound rank of nameKey in the
// by-name ordering, the paging primitive behind "search users by name".
func (s *Store) UserNameRank(nameKey collation.Key) int {
	return s.users.byNameOrder.LowerBoundRank(nameKey)
}

func (s *Store) resolveUsers(handles []pool.Handle) []*entity.User {
	out := make([]*entity.User, 0, len(handles))
	for _, h := range handles {
		if u, ok := s.users.pool.Get(h); ok {
			out = append(out, u)
		}
	}
	return out
}

// DeleteUser removes u and cascades per spec.md invariant 6: votes on
// others' messages, authored comments, subscriptions, authored messages
// (which themselves cascade thread/tag/category counters), authored
// threads, attachments, and private messages.
func (s *Store) DeleteUser(h pool.Handle) status.Code {
	u, ok := s.users.pool.Get(h)
	if !ok {
		return status.NotFound
	}

	for _, mh := range u.CastVotes().Slice() {
		if m, ok := s.GetMessage(mh); ok {
			m.RemoveVotesBy(h)
		}
	}

	for _, ch := range u.OwnedComments().Slice() {
		s.DeleteComment(ch)
	}

	for _, th := range u.SubscribedThreads().Slice() {
		if t, ok := s.GetThread(th); ok {
			t.RemoveSubscriber(h)
		}
	}

	for _, mh := range u.OwnedMessages().Slice() {
		s.DeleteMessage(mh)
	}

	for _, th := range u.OwnedThreads().Slice() {
		s.DeleteThread(th)
	}

	for _, ah := range u.OwnedAttachments().Slice() {
		s.DeleteAttachment(ah)
	}

	for _, ph := range u.SentPrivateMessages().Slice() {
		s.DeletePrivateMessage(ph)
	}
	for _, ph := range u.ReceivedPrivateMessages().Slice() {
		s.DeletePrivateMessage(ph)
	}

	s.Privileges.RemoveUser(u.ID())

	c := &s.users
	c.byID.Remove(u.ID())
	c.byNameKey.Remove(string(u.NameKey()))
	c.byNameOrder.Remove(h)
	c.byAuth.Remove(u.Auth())
	c.byCreated.Remove(h)
	c.byLastSeen.Remove(h)
	c.byThreadCount.Remove(h)
	c.byMessageCount.Remove(h)
	c.pool.Remove(h)
	return status.OK
}
