/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"io"
	"os"
	"strconv"
	"strings"
)

// streamPipes is what the Provisioner hands the Launcher for one stream:
// either a Handle to inherit directly, or a freshly allocated pipe end
type streamPipes struct {
	// handle is set for a Handle binding; the launcher inherits it as-is
	handle *os.File
	// childEnd is the end of a freshly allocated pipe the child inherits;
	// nil for a Handle binding
	childEnd *os.File
	// parentEnd is the end the parent's stream worker owns; nil for a
	// Handle binding, which has no worker
	parentEnd *os.File
}

// isHandle reports whether this stream is a direct Handle passthrough
func (p streamPipes) isHandle() bool { return p.handle != nil }

// provisionOutput allocates an os.Pipe for a non-Handle, non-Discard
// output stream binding; discard also gets a real pipe so its worker can
// read-and-drop without special-casing the launcher
func provisionOutput(b Binding, closers *[]io.Closer) (p streamPipes, err error) {
	if h, ok := b.(*Handle); ok {
		return streamPipes{handle: asOSFile(h.File)}, nil
	}
	r, w, err := os.Pipe()
	if err != nil {
		return
	}
	*closers = append(*closers, r, w)
	return streamPipes{childEnd: w, parentEnd: r}, nil
}

// provisionInput allocates an os.Pipe for a non-Handle, non-interactive
// input stream binding
func provisionInput(b Binding, closers *[]io.Closer) (p streamPipes, err error) {
	if h, ok := b.(*Handle); ok {
		return streamPipes{handle: asOSFile(h.File)}, nil
	}
	r, w, err := os.Pipe()
	if err != nil {
		return
	}
	*closers = append(*closers, r, w)
	return streamPipes{childEnd: r, parentEnd: w}, nil
}

// asOSFile adapts a FileHandle to *os.File; callers only ever pass real
// *os.File values (os.Stdin/os.Stdout/os.Stderr or their own), so this is
// always a plain type assertion in practice
func asOSFile(f FileHandle) *os.File {
	if osFile, ok := f.(*os.File); ok {
		return osFile
	}
	return nil
}

// isInteractiveInput reports whether stdin is bound to Callback, which on
// POSIX requires the PTY proxy (spec.md §4.3)
func isInteractiveInput(b Binding) bool {
	_, ok := b.(*Callback)
	return ok
}

// readChildPID blocks for the real child's PID, written once by the PTY
// proxy as decimal text over session's rendezvous pipe (spec.md §4.3); it
// returns 0 if the proxy exited before ever starting the child.
func readChildPID(session *ptySession) (pid int) {
	buf := make([]byte, 0, 16)
	chunk := make([]byte, 16)
	for {
		n, err := session.childPIDR.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err != nil {
			break
		}
	}
	pid, _ = strconv.Atoi(strings.TrimSpace(string(buf)))
	return
}
