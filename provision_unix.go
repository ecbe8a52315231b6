//go:build unix

/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ptySession is the PTYSession entity from spec.md §3: a master/slave pty
// pair plus the two one-byte rendezvous pipes between the input worker and
// the proxy
type ptySession struct {
	master *os.File
	slaveName string

	// workerToProxy: worker writes 'X' (input written) or 'C' (closed);
	// the proxy reads it to learn the outcome of an input request
	workerToProxyR *os.File
	workerToProxyW *os.File

	// proxyToWorker: proxy writes 'X' to request one callback's worth of
	// input; the worker reads it to know when to invoke the Input callback
	proxyToWorkerR *os.File
	proxyToWorkerW *os.File

	// childPID: the proxy writes the real child's PID once, as decimal
	// text, right after starting it; Spawn reads it so Cleanup can signal
	// the child's process group directly (spec.md §4.3, §4.9)
	childPIDR *os.File
	childPIDW *os.File
}

// openPTY allocates a PTY master/slave pair via /dev/ptmx, unlocking the
// slave so it can be opened; no third-party pty library appears anywhere
// in the example corpus, so this operates directly on the standard
// TIOCGPTN/TIOCSPTLCK ioctls
func openPTY() (master *os.File, slaveName string, err error) {
	masterFD, err := unix.Open("/dev/ptmx", unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, "", fmt.Errorf("open /dev/ptmx: %w", err)
	}
	master = os.NewFile(uintptr(masterFD), "/dev/ptmx")

	if err = unix.IoctlSetPointerInt(masterFD, unix.TIOCSPTLCK, 0); err != nil {
		master.Close()
		return nil, "", fmt.Errorf("TIOCSPTLCK: %w", err)
	}

	n, err := unix.IoctlGetInt(masterFD, unix.TIOCGPTN)
	if err != nil {
		master.Close()
		return nil, "", fmt.Errorf("TIOCGPTN: %w", err)
	}
	slaveName = fmt.Sprintf("/dev/pts/%d", n)
	return
}

// newPTYSession allocates the master/slave pty pair and the two
// rendezvous pipes for an interactive (Callback stdin) invocation
func newPTYSession() (session *ptySession, err error) {
	master, slaveName, err := openPTY()
	if err != nil {
		return
	}
	w2pR, w2pW, err := os.Pipe()
	if err != nil {
		master.Close()
		return
	}
	p2wR, p2wW, err := os.Pipe()
	if err != nil {
		master.Close()
		w2pR.Close()
		w2pW.Close()
		return
	}
	cpR, cpW, err := os.Pipe()
	if err != nil {
		master.Close()
		w2pR.Close()
		w2pW.Close()
		p2wR.Close()
		p2wW.Close()
		return
	}
	session = &ptySession{
		master:         master,
		slaveName:      slaveName,
		workerToProxyR: w2pR,
		workerToProxyW: w2pW,
		proxyToWorkerR: p2wR,
		proxyToWorkerW: p2wW,
		childPIDR:      cpR,
		childPIDW:      cpW,
	}
	return
}

// close releases every fd this session owns; safe to call on a partially
// populated session
func (s *ptySession) close() {
	if s == nil {
		return
	}
	for _, f := range []*os.File{s.master, s.workerToProxyR, s.workerToProxyW, s.proxyToWorkerR, s.proxyToWorkerW, s.childPIDR, s.childPIDW} {
		if f != nil {
			f.Close()
		}
	}
}
