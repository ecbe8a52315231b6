//go:build unix

/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/shellspawn/shellspawn/internal/config"
)

// childSysProcAttr puts the direct (non-PTY) child in its own process
// group, so cleanup.go can signal the whole group rather than one pid
func childSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// proxySysProcAttr makes the re-exec'd proxy its own session leader: the
// first open of a terminal device without O_NOCTTY by a session leader
// becomes its controlling terminal, which is exactly how the proxy
// acquires the slave pty as its controlling terminal in ptyproxy_unix.go
func proxySysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}

// launchViaPTYProxy starts the re-exec'd PTY proxy, which in turn starts
// the real child with its controlling terminal set to session's slave
// device. stdoutP/stderrP must already be provisioned pipes (or Handles);
// Handle bindings are passed straight through as the proxy's own
// ExtraFiles, since the proxy never needs to interpret their content.
func launchViaPTYProxy(ctx context.Context, res CommandResolution, session *ptySession, stdoutP, stderrP streamPipes, tunables config.Tunables, container startCallback) {
	proxyCmd := exec.CommandContext(ctx, os.Args[0])
	proxyCmd.SysProcAttr = proxySysProcAttr()

	stdoutChildEnd := extraFileFor(stdoutP)
	stderrChildEnd := extraFileFor(stderrP)

	proxyCmd.ExtraFiles = []*os.File{
		session.master,         // fdPTYMaster
		stdoutChildEnd,         // fdStdoutW
		stderrChildEnd,         // fdStderrW
		session.workerToProxyR, // fdWorkerToProxyR
		session.proxyToWorkerW, // fdProxyToWorkerW
		session.childPIDW,      // fdChildPIDW
	}

	proxyCmd.Env = append(os.Environ(),
		proxyMarkerEnv+"=1",
		proxyProgramEnv+"="+res.ProgramPath,
		proxyArgvEnv+"="+strings.Join(res.Argv, "\x00"),
		proxySlaveEnv+"="+session.slaveName,
		fmt.Sprintf("%s=%d", proxyDrainUsEnv, tunables.ProxyForegroundDrain.Microseconds()),
		fmt.Sprintf("%s=%d", proxyConfirmUsEnv, tunables.ProxyInputConfirmDelay.Microseconds()),
	)

	err := proxyCmd.Start()
	// this process's own copy of the child-PID pipe's write end must close
	// so readChildPID observes EOF once the proxy's copy closes, rather
	// than blocking forever on a second open writer
	session.childPIDW.Close()
	container.onStart(proxyCmd, err)
}
