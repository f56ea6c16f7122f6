package entity

import (
	"time"

	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/pool"
)

// PrivateMessage is an immutable message exchanged between two users. It
// carries no hook set: nothing about it is ever mutated after creation,
// only deleted.
type PrivateMessage struct {
	handle pool.Handle

	id          id.ID
	content     string
	created     time.Time
	source      pool.Handle
	destination pool.Handle
}

// NewPrivateMessage constructs a PrivateMessage from source to destination.
func NewPrivateMessage(entityID id.ID, source, destination pool.Handle, content string, created time.Time) *PrivateMessage {
	return &PrivateMessage{
		id:          entityID,
		content:     content,
		created:     created,
		source:      source,
		destination: destination,
	}
}

func (p *PrivateMessage) Bind(h pool.Handle) { p.handle = h }

func (p *PrivateMessage) Handle() pool.Handle      { return p.handle }
func (p *PrivateMessage) ID() id.ID                { return p.id }
func (p *PrivateMessage) Content() string          { return p.content }
func (p *PrivateMessage) Created() time.Time        { return p.created }
func (p *PrivateMessage) Source() pool.Handle      { return p.source }
func (p *PrivateMessage) Destination() pool.Handle { return p.destination }
