// Package repository is the validated, domain-shaped operation surface
// described in spec.md §4.2: one method per forum action (add a user,
// change a thread's name, delete a tag, ...). Every method validates its
// arguments against the live configuration, mutates the store under its
// write guard, and — only on success — emits a durable event through the
// pipeline and a live notification through the broker. A Repository holds
// an Authorizer in its Authz field, but no method calls it, so no
// operation is refused on authorization grounds.
//
// The parallel DirectWriter type (directwrite.go) skips validation and
// event emission; it is the replay target, applying decoded frames with
// their original ids.
package repository

import (
	"net"
	"time"

	"github.com/forumkit/forumcore/pkg/config"
	"github.com/forumkit/forumcore/pkg/events"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/log"
	"github.com/forumkit/forumcore/pkg/pipeline"
	"github.com/forumkit/forumcore/pkg/status"
	"github.com/forumkit/forumcore/pkg/store"
)

// RequestContext carries the per-call identity the façade needs to
// stamp an emitted event: who is calling, and from
// where. The HTTP/command layer outside this module's scope builds one per
// request.
type RequestContext struct {
	PerformingUser id.ID
	IP             net.IP
}

// Repository is the validated façade over a *store.Store.
type Repository struct {
	Store  *store.Store
	Config *config.Store
	Pipe   *pipeline.Pipeline
	Broker *events.Broker
	Authz  Authorizer

	// Now is the clock used for Created/event timestamps; overridable in
	// tests. Defaults to time.Now.
	Now func() time.Time

	throttle *throttle
}

// New builds a Repository over an already-constructed store, config store,
// pipeline and broker, with Authz set to AllowAll. The field can be
// reassigned; the façade methods do not consult it.
func New(s *store.Store, cfg *config.Store, pipe *pipeline.Pipeline, broker *events.Broker) *Repository {
	return &Repository{Store: s, Config: cfg, Pipe: pipe, Broker: broker, Authz: AllowAll{}, Now: time.Now, throttle: newThrottle()}
}

// checkThrottle enforces service.minSecondsBetweenPosts for high-frequency
// mutating calls (new thread, new message, new comment); see
// ThrottlingCheck.h.
func (r *Repository) checkThrottle(user id.ID) status.Code {
	if !r.throttle.allow(user, r.now(), r.Config.Load().Service.MinSecondsBetweenPosts) {
		return status.Throttled
	}
	return status.OK
}

func (r *Repository) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// emit encodes and durably enqueues one event, and fans it out to any live
// broker subscribers. Called only after a mutation has already succeeded;
// a failed validated operation never reaches here (spec.md §7: "observer
// events are not emitted for failed operations").
func (r *Repository) emit(t events.Type, rc RequestContext, data []byte, message, entityID string) {
	ctx := events.Context{Timestamp: r.now(), PerformingUser: rc.PerformingUser, IP: rc.IP}
	blob := events.Encode(t, ctx, data)

	if r.Pipe != nil {
		r.Pipe.Enqueue(blob)
	}
	if r.Broker != nil {
		r.Broker.Publish(&events.Notification{Type: t, EntityID: entityID, Message: message})
	}
	log.WithUserID(rc.PerformingUser.String()).Debug().
		Str("component", "repository").
		Str("event", t.String()).
		Str("entity_id", entityID).
		Msg(message)
}
