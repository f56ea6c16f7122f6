// Package replay reconstructs store state from the persisted event log by
// mmap'ing each forum-<unixSeconds>.events file in timestamp order and
// dispatching every frame's decoded event to a direct-write repository.
package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/edsrzf/mmap-go"

	"github.com/forumkit/forumcore/pkg/fatal"
	"github.com/forumkit/forumcore/pkg/persist"
)

var fileNamePattern = regexp.MustCompile(`^forum-(\d+)\.events$`)

// Frame is one decoded, CRC-validated record ready for dispatch.
type Frame struct {
	Payload []byte
}

// Dispatcher applies a decoded frame's event to the direct-write
// repository. Implementations live in pkg/repository.
type Dispatcher interface {
	Apply(Frame) error
}

// Files enumerates dir recursively, returning event log file paths sorted
// by the unix-second timestamp captured from their name (spec.md §6).
func Files(dir string) ([]string, error) {
	var paths []string
	var stamps []int64

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		m := fileNamePattern.FindStringSubmatch(info.Name())
		if m == nil {
			return nil
		}
		stamp, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil
		}
		paths = append(paths, path)
		stamps = append(stamps, stamp)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("replay: enumerate %s: %w", dir, err)
	}

	idx := make([]int, len(paths))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return stamps[idx[a]] < stamps[idx[b]] })
	sorted := make([]string, len(paths))
	for i, j := range idx {
		sorted[i] = paths[j]
	}
	return sorted, nil
}

// Run replays every event log file under dir, in order, into d. It aborts
// the process on the first malformed frame or i/o error (spec.md §7:
// replay does not attempt partial recovery).
func Run(dir string, validateChecksum bool, d Dispatcher) {
	paths, err := Files(dir)
	if err != nil {
		fatal.Abort("replay", "failed to enumerate event log files", err, map[string]string{"dir": dir})
	}
	for _, path := range paths {
		replayFile(path, validateChecksum, d)
	}
}

func replayFile(path string, validateChecksum bool, d Dispatcher) {
	f, err := os.Open(path)
	if err != nil {
		fatal.Abort("replay", "failed to open event log file", err, map[string]string{"file": path})
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		fatal.Abort("replay", "failed to stat event log file", err, map[string]string{"file": path})
	}
	if info.Size() == 0 {
		return
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		fatal.Abort("replay", "failed to mmap event log file", err, map[string]string{"file": path})
	}
	defer m.Unmap()

	buf := []byte(m)
	offset := 0
	for offset < len(buf) {
		blobSize, crc, ok := persist.DecodeHeader(buf[offset:])
		if !ok {
			fatal.Abort("replay", "malformed frame header (magic mismatch)", nil, map[string]string{
				"file": path, "offset": strconv.Itoa(offset),
			})
		}
		frameSize := persist.FrameSize(blobSize)
		if offset+frameSize > len(buf) {
			fatal.Abort("replay", "malformed frame (truncated payload)", nil, map[string]string{
				"file": path, "offset": strconv.Itoa(offset),
			})
		}

		payload := buf[offset+persist.HeaderSize : offset+persist.HeaderSize+int(blobSize)]
		if validateChecksum {
			if got := crc32Of(payload); got != crc {
				fatal.Abort("replay", "event frame checksum mismatch", nil, map[string]string{
					"file": path, "offset": strconv.Itoa(offset),
				})
			}
		}

		payloadCopy := make([]byte, len(payload))
		copy(payloadCopy, payload)
		if err := d.Apply(Frame{Payload: payloadCopy}); err != nil {
			fatal.Abort("replay", "failed to apply replayed event", err, map[string]string{
				"file": path, "offset": strconv.Itoa(offset),
			})
		}

		offset += frameSize
	}
}
