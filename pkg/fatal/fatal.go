// Package fatal is the single abort path for durability-losing errors: event
// file open/write failure, a replay crc or magic mismatch, or a configured
// message-content mmap failure (spec.md §7). The core never panics to signal
// these; it logs structured context and exits.
package fatal

import (
	"os"

	"github.com/forumkit/forumcore/pkg/log"
)

// Abort logs msg with err and the supplied fields at fatal level, then exits
// the process with status 1. It never returns.
func Abort(component, msg string, err error, fields map[string]string) {
	ev := log.WithComponent(component).Fatal()
	if err != nil {
		ev = ev.Err(err)
	}
	for k, v := range fields {
		ev = ev.Str(k, v)
	}
	ev.Msg(msg)
	os.Exit(1)
}
