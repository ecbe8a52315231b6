/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"io"
	"os/exec"
)

// resources collects everything Spawn allocates that must be released
// exactly once, regardless of how far launch got; zero-valued fields are
// always safe to skip
type resources struct {
	closers []io.Closer
	session *ptySession

	// execCmd, childPID and interactive let release send the spec's
	// required signals if the child or proxy is still alive when Cleanup
	// runs (spec.md §4.9); execCmd is the proxy's own *exec.Cmd when
	// interactive, the child's own otherwise. In the ordinary path
	// runLifecycle's Wait has already completed by the time release runs,
	// so this only fires on an early-return (eg. a panic unwinding
	// through Spawn before runLifecycle).
	execCmd     *exec.Cmd
	childPID    int
	interactive bool
}

// add registers a closer for release, skipping nil (a Handle's streamPipes
// never contribute a closer in the first place, but callers may still
// pass a possibly-nil value from a partially built streamPipes)
func (r *resources) add(c io.Closer) {
	if c != nil {
		r.closers = append(r.closers, c)
	}
}

// release closes every registered resource in reverse allocation order;
// idempotent, and safe on a zero-valued resources
func (r *resources) release() {
	terminateIfRunning(r)
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i].Close()
	}
	r.closers = nil
	if r.session != nil {
		r.session.close()
		r.session = nil
	}
}
