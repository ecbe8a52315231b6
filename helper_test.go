/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"os"
	"testing"
)

// newTestTempFile returns a fresh *os.File removed from the filesystem as
// soon as the test ends, useful for Handle bindings that need a real
// writable file rather than a pipe
func newTestTempFile(t *testing.T) (f *os.File, err error) {
	f, err = os.CreateTemp(t.TempDir(), "shellspawn-test-*")
	return
}
