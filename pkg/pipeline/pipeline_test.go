package pipeline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu    sync.Mutex
	batch [][]byte
}

func (w *recordingWriter) Append(blobs [][]byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.batch = append(w.batch, blobs...)
}

func (w *recordingWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.batch)
}

func TestPipelineDeliversEveryBlob(t *testing.T) {
	w := &recordingWriter{}
	p := New(w, 16)

	for i := 0; i < 100; i++ {
		p.Enqueue([]byte{byte(i)})
	}
	p.Close()

	assert.Equal(t, 100, w.count())
}

func TestPipelineDefaultCapacityWhenNonPositive(t *testing.T) {
	w := &recordingWriter{}
	p := New(w, 0)
	defer p.Close()
	require.Equal(t, DefaultCapacity, p.capacity)
}

func TestPipelineDepthReflectsQueuedBlobs(t *testing.T) {
	w := &blockingWriter{started: make(chan struct{}, 1), unblock: make(chan struct{})}
	p := New(w, 8)

	p.Enqueue([]byte("a"))
	<-w.started

	p.Enqueue([]byte("b"))
	p.Enqueue([]byte("c"))

	assert.Equal(t, 2, p.Depth())
	close(w.unblock)
	p.Close()
}

type blockingWriter struct {
	started chan struct{}
	unblock chan struct{}
}

func (w *blockingWriter) Append(blobs [][]byte) {
	select {
	case w.started <- struct{}{}:
	default:
	}
	<-w.unblock
}
