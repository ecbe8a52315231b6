//go:build unix

/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// runPTYProxy is the re-exec'd process's entire reason for existing: it
// opens the PTY slave as its own controlling terminal (it is already a
// session leader, via proxySysProcAttr's Setsid on the launching exec.Cmd),
// starts the real child against that terminal, and arbitrates job control
// and interactive input for as long as the child runs. It never returns;
// its final act is os.Exit with the real child's own exit code, so that
// the launching process's own Wait on this proxy reports that code.
func runPTYProxy() {
	cfg, err := readProxyConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "shellspawn pty proxy:", err)
		os.Exit(execFailureExitCode)
	}

	slave, err := os.OpenFile(cfg.slaveName, os.O_RDWR, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, "shellspawn pty proxy: open slave:", err)
		os.Exit(execFailureExitCode)
	}
	defer slave.Close()

	if err := quietTermios(int(slave.Fd())); err != nil {
		fmt.Fprintln(os.Stderr, "shellspawn pty proxy: termios:", err)
	}

	master := os.NewFile(fdPTYMaster, "pty-master")
	master.Close() // the proxy has no use for the master end; only the launching process writes through it
	stdoutW := os.NewFile(fdStdoutW, "stdout-pipe")
	stderrW := os.NewFile(fdStderrW, "stderr-pipe")
	workerToProxyR := os.NewFile(fdWorkerToProxyR, "worker-to-proxy")
	proxyToWorkerW := os.NewFile(fdProxyToWorkerW, "proxy-to-worker")
	childPIDW := os.NewFile(fdChildPIDW, "child-pid")

	childCmd := exec.Command(cfg.programPath)
	childCmd.Args = cfg.argv
	childCmd.Stdin = slave
	childCmd.Stdout = stdoutW
	childCmd.Stderr = stderrW
	childCmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := childCmd.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "shellspawn pty proxy: start child:", err)
		os.Exit(execFailureExitCode)
	}
	childPID := childCmd.Process.Pid

	// hand the real child's PID back to the launching process so Cleanup
	// can signal its process group directly (spec.md §4.3)
	fmt.Fprintf(childPIDW, "%d", childPID)
	childPIDW.Close()

	// leave the terminal's foreground process group as this proxy (the
	// session leader that opened it): the child's first read from its
	// controlling terminal then raises SIGTTIN, which is what drives every
	// round of handleStop below. Foregrounding the child here instead would
	// mean that first read never stops it, and the whole request/response
	// protocol this proxy exists to run never starts.
	worker := &proxyJobControl{
		childPID:       childPID,
		proxyPID:       os.Getpid(),
		slaveFD:        int(slave.Fd()),
		workerToProxyR: workerToProxyR,
		proxyToWorkerW: proxyToWorkerW,
		drain:          cfg.drain,
		confirmDelay:   cfg.confirmDelay,
	}
	os.Exit(worker.run())
}

// proxyConfig is the parsed form of the env vars launch.go sets on the
// proxy's exec.Cmd
type proxyConfig struct {
	programPath  string
	argv         []string
	slaveName    string
	drain        time.Duration
	confirmDelay time.Duration
}

func readProxyConfig() (cfg proxyConfig, err error) {
	cfg.programPath = os.Getenv(proxyProgramEnv)
	if cfg.programPath == "" {
		return cfg, fmt.Errorf("missing %s", proxyProgramEnv)
	}
	cfg.argv = strings.Split(os.Getenv(proxyArgvEnv), "\x00")
	cfg.slaveName = os.Getenv(proxySlaveEnv)
	if cfg.slaveName == "" {
		return cfg, fmt.Errorf("missing %s", proxySlaveEnv)
	}
	drainUs, err := strconv.Atoi(os.Getenv(proxyDrainUsEnv))
	if err != nil {
		return cfg, fmt.Errorf("bad %s: %w", proxyDrainUsEnv, err)
	}
	confirmUs, err := strconv.Atoi(os.Getenv(proxyConfirmUsEnv))
	if err != nil {
		return cfg, fmt.Errorf("bad %s: %w", proxyConfirmUsEnv, err)
	}
	cfg.drain = time.Duration(drainUs) * time.Microsecond
	cfg.confirmDelay = time.Duration(confirmUs) * time.Microsecond
	return cfg, nil
}

// quietTermios turns off echo and output newline translation on fd, so
// the terminal does not itself duplicate bytes the caller's own Callback
// already observes via the stdout pipe
func quietTermios(fd int) error {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}
	termios.Lflag &^= unix.ECHO
	termios.Oflag &^= unix.ONLCR
	return unix.IoctlSetTermios(fd, unix.TCSETS, termios)
}

// setForeground makes pgid the terminal's foreground process group; best
// effort only, since a stale fd or a child that already exited both make
// this harmlessly fail
func setForeground(fd, pgid int) {
	_ = unix.IoctlSetPointerInt(fd, unix.TIOCSPGRP, pgid)
}

// proxyJobControl runs the wait4 loop that reacts to the child stopping
// (SIGTTIN because it tried to read from a terminal it does not own the
// foreground of, or a self-inflicted stop while waiting for more input)
// and to the input worker's rendezvous signals
type proxyJobControl struct {
	childPID int
	// proxyPID is this process's own pid; since proxySysProcAttr made it a
	// session leader via Setsid, it is also its own process group leader,
	// so proxyPID doubles as the group id to foreground when backgrounding
	// the child again
	proxyPID       int
	slaveFD        int
	workerToProxyR *os.File
	proxyToWorkerW *os.File
	drain          time.Duration
	confirmDelay   time.Duration
}

// run is the proxy's whole lifetime past child start; it returns the exit
// code to report to the launching process
func (j *proxyJobControl) run() (exitCode int) {
	var status unix.WaitStatus
	for {
		_, err := unix.Wait4(j.childPID, &status, unix.WUNTRACED|unix.WCONTINUED, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return execFailureExitCode
		}

		switch {
		case status.Exited():
			return status.ExitStatus()
		case status.Signaled():
			return 128 + int(status.Signal())
		case status.Stopped():
			j.handleStop(status.StopSignal())
		case status.Continued():
			// nothing to do; next Wait4 call blocks again
		}
	}
}

// handleStop reacts to the child being stopped. SIGTTIN is the job
// control signal a background process receives for attempting to read
// from its controlling terminal; any other stop signal is treated the
// same way here, since this proxy's only terminal reader is the child
// itself and there is no shell to report job status to.
//
// Every branch ends by putting the child back in the background and
// re-stopping it (unless input has been closed for good), so that its
// *next* terminal read raises another SIGTTIN and this method runs again
// — a single round would only ever serve the first line of a multi-turn
// interactive session.
func (j *proxyJobControl) handleStop(sig unix.Signal) {
	if j.hasBufferedInput() {
		// the pty line discipline already has unread bytes queued for the
		// child; let it consume them directly, no need to go ask the
		// worker goroutine for more
		j.foregroundChild()
		time.Sleep(j.drain)
		j.backgroundChild()
		return
	}

	// nothing buffered: ask the worker goroutine in the launching process
	// for the next chunk before letting the child read again
	if _, err := j.proxyToWorkerW.Write([]byte{'X'}); err != nil {
		return
	}
	j.foregroundChild()

	reply := make([]byte, 1)
	if _, err := j.workerToProxyR.Read(reply); err != nil {
		return
	}
	if reply[0] == 'C' {
		return // input closed for good: leave the child foreground to finish on its own
	}
	time.Sleep(j.confirmDelay)
	j.backgroundChild()
}

// foregroundChild makes the child's process group the terminal's
// foreground group and resumes it, so its pending terminal read can
// proceed
func (j *proxyJobControl) foregroundChild() {
	setForeground(j.slaveFD, j.childPID)
	_ = unix.Kill(-j.childPID, unix.SIGCONT)
}

// backgroundChild stops the child's process group and returns the
// terminal's foreground group to this proxy, so the child's next terminal
// read raises SIGTTIN instead of succeeding
func (j *proxyJobControl) backgroundChild() {
	_ = unix.Kill(-j.childPID, unix.SIGSTOP)
	setForeground(j.slaveFD, j.proxyPID)
	_ = unix.Kill(-j.childPID, unix.SIGCONT)
}

// hasBufferedInput reports whether the slave side of the pty this proxy
// itself opened already has unread bytes waiting, via a zero-timeout
// select rather than a blocking read. Selecting on the slave (not the
// master) fd matters: it reflects what the child's own read would see.
func (j *proxyJobControl) hasBufferedInput() bool {
	var readFDs unix.FdSet
	fdSet(&readFDs, j.slaveFD)
	tv := unix.Timeval{}
	n, err := unix.Select(j.slaveFD+1, &readFDs, nil, nil, &tv)
	return err == nil && n > 0
}

// fdSet sets fd's bit in set; unix.FdSet exposes no helper methods of its own
func fdSet(set *unix.FdSet, fd int) {
	set.Bits[fd/64] |= 1 << (uint(fd) % 64)
}
