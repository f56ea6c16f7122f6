package metrics

import (
	"time"

	"github.com/forumkit/forumcore/pkg/pipeline"
	"github.com/forumkit/forumcore/pkg/store"
)

// Collector periodically samples entity counts and pipeline depth and
// publishes them as gauges, following the teacher's ticker-driven polling
// pattern rather than hooking every mutation site.
type Collector struct {
	store  *store.Store
	pipe   *pipeline.Pipeline
	stopCh chan struct{}
}

// NewCollector creates a new metrics collector over s and pipe. pipe may be
// nil, in which case PipelineDepth is left unset.
func NewCollector(s *store.Store, pipe *pipeline.Pipeline) *Collector {
	return &Collector{
		store:  s,
		pipe:   pipe,
		stopCh: make(chan struct{}),
	}
}

// Start begins collecting metrics on a 15-second tick.
func (c *Collector) Start() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the collector.
func (c *Collector) Stop() {
	close(c.stopCh)
}

func (c *Collector) collect() {
	c.collectEntityMetrics()
	c.collectPipelineMetrics()
}

func (c *Collector) collectEntityMetrics() {
	c.store.Guard.Read(func() {
		EntitiesTotal.WithLabelValues("user").Set(float64(c.store.UserCount()))
		EntitiesTotal.WithLabelValues("thread").Set(float64(c.store.ThreadCount()))
		EntitiesTotal.WithLabelValues("message").Set(float64(c.store.MessageCount()))
		EntitiesTotal.WithLabelValues("tag").Set(float64(c.store.TagCount()))
		EntitiesTotal.WithLabelValues("category").Set(float64(c.store.CategoryCount()))
		EntitiesTotal.WithLabelValues("comment").Set(float64(c.store.CommentCount()))
		EntitiesTotal.WithLabelValues("privateMessage").Set(float64(c.store.PrivateMessageCount()))
		EntitiesTotal.WithLabelValues("attachment").Set(float64(c.store.AttachmentCount()))
	})
	UpdateComponent("store", true, "")
}

func (c *Collector) collectPipelineMetrics() {
	if c.pipe == nil {
		return
	}
	depth := c.pipe.Depth()
	PipelineDepth.Set(float64(depth))

	if depth >= c.pipe.Capacity() {
		UpdateComponent("pipeline", false, "event queue saturated, writer falling behind")
	} else {
		UpdateComponent("pipeline", true, "")
	}
}
