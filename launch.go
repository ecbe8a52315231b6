/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"context"
	"os"
	"os/exec"
)

// launchDirect builds and starts the real child directly: the common case,
// used whenever stdin is not bound to Callback. container receives the
// started *exec.Cmd (or the start error) as soon as Start returns.
//   - grounded on pexec/exec-stream-full.go's ExecStreamFull, simplified:
//     this module's worker topology is driven from streamPipes rather than
//     exec.Cmd's own StdinPipe/StdoutPipe/StderrPipe convenience methods,
//     since Handle bindings must be able to bypass pipes entirely
func launchDirect(ctx context.Context, res CommandResolution, stdinP, stdoutP, stderrP streamPipes, container startCallback) {
	execCmd := exec.CommandContext(ctx, res.ProgramPath)
	execCmd.Args = res.Argv
	execCmd.SysProcAttr = childSysProcAttr()

	if stdinP.isHandle() {
		execCmd.Stdin = stdinP.handle
	} else {
		execCmd.Stdin = stdinP.childEnd
	}
	if stdoutP.isHandle() {
		execCmd.Stdout = stdoutP.handle
	} else {
		execCmd.Stdout = stdoutP.childEnd
	}
	if stderrP.isHandle() {
		execCmd.Stderr = stderrP.handle
	} else {
		execCmd.Stderr = stderrP.childEnd
	}

	err := execCmd.Start()
	container.onStart(execCmd, err)
}

// extraFileFor returns the *os.File the proxy should inherit for one
// output stream: the caller's Handle, or the child end of a provisioned pipe
func extraFileFor(p streamPipes) *os.File {
	if p.isHandle() {
		return p.handle
	}
	return p.childEnd
}
