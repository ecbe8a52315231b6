//go:build !unix

/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"context"
	"syscall"

	"github.com/shellspawn/shellspawn/internal/config"
)

// childSysProcAttr has no process-group equivalent wired up on non-POSIX
// platforms; cleanup_other.go's terminateIfRunning sends no signal there
func childSysProcAttr() *syscall.SysProcAttr { return nil }

// proxySysProcAttr: the PTY proxy subsystem is POSIX-only; this is never
// actually called there
func proxySysProcAttr() *syscall.SysProcAttr { return nil }

// launchViaPTYProxy is unreachable on non-POSIX platforms: newPTYSession
// always fails first, so Spawn never gets here. It exists only so this
// file's build matches launch_unix.go's signature.
func launchViaPTYProxy(ctx context.Context, res CommandResolution, session *ptySession, stdoutP, stderrP streamPipes, tunables config.Tunables, container startCallback) {
	container.onStart(nil, errPTYUnsupported)
}
