//go:build !unix

/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"errors"
	"os"
)

// ptySession mirrors provision_unix.go's field set so shared code
// compiles on both platforms; newPTYSession never actually populates one
// here, so these fields are always nil
type ptySession struct {
	master         *os.File
	slaveName      string
	workerToProxyR *os.File
	workerToProxyW *os.File
	proxyToWorkerR *os.File
	proxyToWorkerW *os.File
	childPIDR      *os.File
	childPIDW      *os.File
}

// errPTYUnsupported is returned by newPTYSession on platforms without the
// job-control primitives the proxy needs
var errPTYUnsupported = errors.New("shellspawn: interactive (Callback) stdin requires a POSIX platform")

// newPTYSession always fails outside POSIX; shellspawn.go reports this as
// StatusFailure rather than silently falling back to a non-interactive mode
func newPTYSession() (session *ptySession, err error) {
	return nil, errPTYUnsupported
}

// close is a no-op on a nil/zero ptySession
func (s *ptySession) close() {}
