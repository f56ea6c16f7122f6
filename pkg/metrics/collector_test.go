package metrics

import (
	"testing"
	"time"

	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorPublishesEntityCounts(t *testing.T) {
	s := store.New()
	u := s.CreateUser(id.Zero, "collector-user", "auth-collector", time.Now())
	s.InsertUser(u)

	c := NewCollector(s, nil)
	c.Start()
	defer c.Stop()

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(EntitiesTotal.WithLabelValues("user")) >= 1
	}, time.Second, 10*time.Millisecond)
}
