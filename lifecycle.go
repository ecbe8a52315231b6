/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"os/exec"
	"sync"
)

// lifecycleResult is what runLifecycle hands back to Spawn
type lifecycleResult struct {
	exitCode  int
	waitErr   error
	workerErr error
}

// runLifecycle waits for the child (or proxy) and every stream worker to
// finish, running the marshaller's dispatch loop on the calling goroutine
// for the whole time if m is non-nil — every Callback invocation this
// package makes happens on the goroutine that called Spawn, never on a
// worker goroutine.
//   - grounded on pexec/exec-stream-full.go's execStreamFullEnd: a
//     wait-thread joins the child and the stream workers, the caller's own
//     goroutine is freed only once both are done
func runLifecycle(execCmd *exec.Cmd, wg *sync.WaitGroup, m *marshaller, errs errorCollector) (res lifecycleResult) {
	done := make(chan lifecycleResult, 1)
	go func() {
		waitErr := execCmd.Wait()
		wg.Wait()
		if m != nil {
			m.terminate()
		}
		done <- lifecycleResult{waitErr: waitErr}
	}()

	if m != nil {
		m.loop()
	}
	partial := <-done

	exitCode := 0
	if partial.waitErr != nil {
		info := decodeExitError(partial.waitErr)
		if info.hasExitError {
			if info.exitCode == terminatedBySignal {
				// spec.md §4.8's "128 + signal" convention; matches the
				// PTY proxy launch path's own 128+signal arithmetic in
				// ptyproxy_unix.go, so both launch paths report the
				// identical code for the same signal
				exitCode = 128 + info.signalNum
			} else {
				exitCode = info.exitCode
			}
		} else {
			exitCode = execFailureExitCode
		}
	}

	res = lifecycleResult{
		exitCode:  exitCode,
		waitErr:   partial.waitErr,
		workerErr: errs.GetError(),
	}
	return
}

// errorCollector is the subset of *xsync.ErrSlice runLifecycle needs
type errorCollector interface {
	GetError() error
}
