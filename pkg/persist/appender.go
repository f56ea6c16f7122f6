package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/forumkit/forumcore/pkg/fatal"
)

// Appender writes frames to the current output file, rotating to a new
// forum-<unixSeconds>.events file once the configured interval has elapsed
// since the current file was opened. A write or rotation failure is fatal:
// the core has no partial-durability story (spec.md §7).
type Appender struct {
	mu          sync.Mutex
	dir         string
	rotateEvery time.Duration

	f         *os.File
	openedAt  time.Time
}

// NewAppender opens (creating if needed) dir and returns an Appender that
// rotates output files every rotateEvery.
func NewAppender(dir string, rotateEvery time.Duration) (*Appender, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("persist: create output dir: %w", err)
	}
	a := &Appender{dir: dir, rotateEvery: rotateEvery}
	if err := a.rotate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Appender) rotate() error {
	if a.f != nil {
		a.f.Close()
	}
	name := fmt.Sprintf("forum-%d.events", time.Now().Unix())
	path := filepath.Join(a.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("persist: open output file %s: %w", path, err)
	}
	a.f = f
	a.openedAt = time.Now()
	return nil
}

// Append writes one or more already-encoded frame blobs as a single batch,
// rotating the output file first if the rotation interval has elapsed.
// Any failure is fatal (pkg/fatal.Abort): there is no retry path for a
// durability write.
func (a *Appender) Append(blobs [][]byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.rotateEvery > 0 && time.Since(a.openedAt) >= a.rotateEvery {
		if err := a.rotate(); err != nil {
			fatal.Abort("persist", "failed to rotate output file", err, map[string]string{"dir": a.dir})
		}
	}

	for _, blob := range blobs {
		frame := Frame{Payload: blob}.Encode()
		if _, err := a.f.Write(frame); err != nil {
			fatal.Abort("persist", "failed to write event frame", err, map[string]string{"dir": a.dir})
		}
	}
	if err := a.f.Sync(); err != nil {
		fatal.Abort("persist", "failed to fsync output file", err, map[string]string{"dir": a.dir})
	}
}

// Close closes the current output file.
func (a *Appender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.f == nil {
		return nil
	}
	return a.f.Close()
}
