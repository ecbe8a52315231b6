//go:build unix

/*
© 2021–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"os/exec"
	"syscall"

	"github.com/shellspawn/shellspawn/internal/sigtab"
	"golang.org/x/sys/unix"
)

// signalFromProcessState returns the signal that terminated exitErr's
// process and its human-readable name; num is 0 and name "" if the
// process was not signal-terminated
func signalFromProcessState(exitErr *exec.ExitError) (num int, name string) {
	waitStatus, ok := exitErr.ProcessState.Sys().(syscall.WaitStatus)
	if !ok || !waitStatus.Signaled() {
		return
	}
	num = int(waitStatus.Signal())
	name = sigtab.SignalString(unix.Signal(waitStatus.Signal()))
	return
}
