/*
© 2021–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const (
	// terminatedBySignal is exec.ExitError's sentinel exit code for a
	// process terminated by signal rather than exiting normally
	terminatedBySignal = -1
	// execFailureExitCode (255, -1 as an unsigned byte) is the exit code the
	// PTY proxy in ptyproxy_unix.go exits with when it cannot read its
	// configuration, open the pty slave, start the real child or wait for
	// it; runLifecycle also reports it when Wait fails without an exit status
	execFailureExitCode = 255
)

// exitInfo is parse-once detail extracted from a *exec.ExitError
type exitInfo struct {
	hasExitError bool
	exitCode     int
	signalNum    int
	signalName   string
	stderr       []byte
}

// decodeExitError extracts status code and signal information from err,
// which is expected to be (possibly wrapping) the error returned by
// exec.Cmd.Wait
func decodeExitError(err error) (info exitInfo) {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return
	}
	info.hasExitError = true
	if len(exitErr.Stderr) > 0 {
		info.stderr = exitErr.Stderr
	}
	info.exitCode = exitErr.ExitCode()
	if info.exitCode != terminatedBySignal {
		return
	}
	info.signalNum, info.signalName = signalFromProcessState(exitErr)
	return
}

// exitErrorString renders a one-line Failure errorText from err
func exitErrorString(err error, stderr []byte) (s string) {
	info := decodeExitError(err)
	var parts []string
	if info.hasExitError {
		if info.exitCode == terminatedBySignal {
			parts = append(parts, fmt.Sprintf("signal: %s", info.signalName))
		} else {
			parts = append(parts, fmt.Sprintf("status code: %d", info.exitCode))
		}
	}
	if err != nil {
		parts = append(parts, fmt.Sprintf("message: '%s'", err.Error()))
	}
	if len(info.stderr) == 0 {
		info.stderr = stderr
	}
	if trimmed := strings.TrimRight(string(info.stderr), "\n"); trimmed != "" {
		parts = append(parts, fmt.Sprintf("stderr: '%s'", trimmed))
	}
	return strings.Join(parts, "\x20")
}
