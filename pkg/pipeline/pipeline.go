// Package pipeline decouples event production (the repository façade's
// observer, called under the store's write lock) from event durability
// (pkg/persist's appender, which does disk I/O). A bounded queue absorbs
// bursts; a single writer goroutine drains it in batches so the appender
// never does more than one fsync per drain.
package pipeline

import (
	"sync"
	"time"

	"github.com/forumkit/forumcore/pkg/log"
)

// DefaultCapacity is the queue size spec.md §5 names for the event pipeline.
const DefaultCapacity = 32768

// Writer is the durability sink a Pipeline drains batches into; pkg/persist's
// Appender satisfies it.
type Writer interface {
	Append(blobs [][]byte)
}

// Pipeline is a bounded MPMC queue with one dedicated writer goroutine.
// Enqueue never drops a blob: a full queue makes the producer spin with
// backoff until the writer catches up, logging one warning per contiguous
// full streak rather than once per blocked call.
type Pipeline struct {
	mu       sync.Mutex
	cond     *sync.Cond
	buf      [][]byte
	capacity int
	closed   bool
	// fullWarned is set once a full-queue warning has been logged and
	// cleared when the writer drains the queue, ending the full streak.
	fullWarned bool

	writer Writer
	done   chan struct{}
}

// New starts a Pipeline with the given capacity, draining into writer.
func New(writer Writer, capacity int) *Pipeline {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	p := &Pipeline{
		capacity: capacity,
		writer:   writer,
		done:     make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	go p.run()
	return p
}

// Enqueue adds blob to the queue, blocking with backoff while it is full.
// It never rejects or drops a blob (spec.md §7: "no events are dropped").
func (p *Pipeline) Enqueue(blob []byte) {
	p.mu.Lock()
	for len(p.buf) >= p.capacity && !p.closed {
		if !p.fullWarned {
			log.WithComponent("pipeline").Warn().Msg("event queue full, producer backing off")
			p.fullWarned = true
		}
		p.mu.Unlock()
		time.Sleep(time.Millisecond)
		p.mu.Lock()
	}
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.buf = append(p.buf, blob)
	p.mu.Unlock()
	p.cond.Signal()
}

// run drains the queue in batches until Close is called and the queue is
// empty.
func (p *Pipeline) run() {
	defer close(p.done)
	for {
		p.mu.Lock()
		for len(p.buf) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.buf) == 0 && p.closed {
			p.mu.Unlock()
			return
		}
		batch := p.buf
		p.buf = nil
		p.fullWarned = false
		p.mu.Unlock()

		p.writer.Append(batch)
	}
}

// Close stops accepting new blobs and waits for the writer goroutine to
// drain whatever remains.
func (p *Pipeline) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
	<-p.done
}

// Depth reports the current queue length, for metrics.
func (p *Pipeline) Depth() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buf)
}

// Capacity reports the queue's configured bound, for readiness checks that
// compare Depth against it.
func (p *Pipeline) Capacity() int {
	return p.capacity
}
