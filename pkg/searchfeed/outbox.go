// Package searchfeed persists a durable queue of entity changes that a
// downstream full-text search indexer should pick up, independent of the
// append-only event log used for crash recovery. It subscribes to the
// repository's live event broker and records one outbox entry per
// search-relevant mutation; an external indexer drains the queue at its
// own pace and acknowledges entries as it consumes them.
package searchfeed

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/forumkit/forumcore/pkg/events"
	bolt "go.etcd.io/bbolt"
)

var bucketPending = []byte("pending")

// Op describes what a downstream indexer should do with a Document.
type Op string

const (
	OpUpsert Op = "upsert"
	OpDelete Op = "delete"
)

// Document is one queued change, enough for an indexer to decide what to
// reindex without requiring it to decode the durable event log itself.
type Document struct {
	Sequence   uint64    `json:"sequence"`
	Kind       string    `json:"kind"`
	EntityID   string    `json:"entity_id"`
	Op         Op        `json:"op"`
	Summary    string    `json:"summary"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Outbox is a BoltDB-backed durable queue. Unlike the pipeline's event
// log, entries are removed once acknowledged; it holds only what a
// downstream indexer hasn't processed yet.
type Outbox struct {
	db *bolt.DB
}

// NewOutbox opens (creating if needed) the outbox database under dataDir.
func NewOutbox(dataDir string) (*Outbox, error) {
	dbPath := filepath.Join(dataDir, "searchfeed.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("searchfeed: open %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPending)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("searchfeed: create bucket: %w", err)
	}

	return &Outbox{db: db}, nil
}

// Close closes the underlying database.
func (o *Outbox) Close() error {
	return o.db.Close()
}

// Enqueue durably records a pending change and assigns it the next
// sequence number in bucket order.
func (o *Outbox) Enqueue(kind, entityID string, op Op, summary string) error {
	return o.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPending)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		doc := Document{
			Sequence:   seq,
			Kind:       kind,
			EntityID:   entityID,
			Op:         op,
			Summary:    summary,
			EnqueuedAt: time.Now(),
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		return b.Put(sequenceKey(seq), data)
	})
}

// ListPending returns up to limit queued documents in enqueue order.
func (o *Outbox) ListPending(limit int) ([]Document, error) {
	var docs []Document
	err := o.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketPending).Cursor()
		for k, v := c.First(); k != nil && (limit <= 0 || len(docs) < limit); k, v = c.Next() {
			var doc Document
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("searchfeed: decode entry: %w", err)
			}
			docs = append(docs, doc)
		}
		return nil
	})
	return docs, err
}

// Ack removes a document from the queue once the indexer has consumed it.
func (o *Outbox) Ack(sequence uint64) error {
	return o.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPending).Delete(sequenceKey(sequence))
	})
}

// Len reports the number of documents still pending.
func (o *Outbox) Len() (int, error) {
	var n int
	err := o.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketPending).Stats().KeyN
		return nil
	})
	return n, err
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// searchable maps event types that affect indexable content to the
// entity kind and operation a document for them should carry. Event
// types absent from this map are not search-relevant (votes, privilege
// changes, subscriptions) and are skipped by Feed.
var searchable = map[events.Type]struct {
	kind string
	op   Op
}{
	events.AddNewUser: {"user", OpUpsert},
	events.ChangeUserName: {"user", OpUpsert},
	events.DeleteUser: {"user", OpDelete},
	events.AddNewDiscussionThread: {"thread", OpUpsert},
	events.ChangeDiscussionThreadName: {"thread", OpUpsert},
	events.DeleteDiscussionThread: {"thread", OpDelete},
	events.MergeDiscussionThreads: {"thread", OpUpsert},
	events.AddNewDiscussionThreadMessage: {"message", OpUpsert},
	events.ChangeDiscussionThreadMessageContent: {"message", OpUpsert},
	events.DeleteDiscussionThreadMessage: {"message", OpDelete},
	events.AddCommentToDiscussionThreadMessage: {"comment", OpUpsert},
	events.AddNewDiscussionTag: {"tag", OpUpsert},
	events.ChangeDiscussionTagName: {"tag", OpUpsert},
	events.DeleteDiscussionTag: {"tag", OpDelete},
	events.AddNewDiscussionCategory: {"category", OpUpsert},
	events.ChangeDiscussionCategoryName: {"category", OpUpsert},
	events.ChangeDiscussionCategoryParent: {"category", OpUpsert},
	events.DeleteDiscussionCategory: {"category", OpDelete},
}
