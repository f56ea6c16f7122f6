package searchfeed

import (
	"github.com/forumkit/forumcore/pkg/events"
	"github.com/forumkit/forumcore/pkg/log"
)

// Feed consumes live notifications from an events.Broker and enqueues an
// outbox Document for every search-relevant one. It runs independently of
// the durable event log: a slow or offline indexer falls behind on the
// outbox, not on the repository's ability to accept writes.
type Feed struct {
	outbox *Outbox
	sub    events.Subscriber
	broker *events.Broker
	doneCh chan struct{}
}

// NewFeed subscribes to broker and returns a Feed ready to Run.
func NewFeed(outbox *Outbox, broker *events.Broker) *Feed {
	return &Feed{
		outbox: outbox,
		sub:    broker.Subscribe(),
		broker: broker,
		doneCh: make(chan struct{}),
	}
}

// Run drains notifications until the broker's subscriber channel closes
// (on Stop) or Close is called. Intended to run in its own goroutine.
func (f *Feed) Run() {
	for {
		select {
		case n, ok := <-f.sub:
			if !ok {
				return
			}
			f.handle(n)
		case <-f.doneCh:
			return
		}
	}
}

// Close stops Run and unsubscribes from the broker.
func (f *Feed) Close() {
	close(f.doneCh)
	f.broker.Unsubscribe(f.sub)
}

func (f *Feed) handle(n *events.Notification) {
	rule, ok := searchable[n.Type]
	if !ok {
		return
	}
	if err := f.outbox.Enqueue(rule.kind, n.EntityID, rule.op, n.Message); err != nil {
		log.WithComponent("searchfeed").Error().Err(err).
			Str("kind", rule.kind).Str("entity_id", n.EntityID).
			Msg("failed to enqueue search document")
	}
}
