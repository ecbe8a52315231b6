/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"os/exec"
	"sync"
)

// startCallback receives the result of exec.Cmd.Start as soon as it
// returns, whether or not it succeeded
type startCallback interface {
	onStart(execCmd *exec.Cmd, err error)
}

// cmdContainer is a thread-safe handoff of the launched *exec.Cmd (or its
// start error) from the launcher goroutine to whoever wants to observe it
//   - adapted from pexec/cmd-container.go's atomic.Pointer-based design
type cmdContainer struct {
	once sync.Once
	done chan struct{}
	cmd  *exec.Cmd
	err  error
}

// newCmdContainer returns a ready-to-use cmdContainer implementing startCallback
func newCmdContainer() (c *cmdContainer) {
	return &cmdContainer{done: make(chan struct{})}
}

// onStart implements startCallback
func (c *cmdContainer) onStart(execCmd *exec.Cmd, err error) {
	c.once.Do(func() {
		c.cmd = execCmd
		c.err = err
		close(c.done)
	})
}

// Ch returns a channel closed once Start has returned
func (c *cmdContainer) Ch() <-chan struct{} { return c.done }

// Cmd returns the started *exec.Cmd, valid after Ch is closed
func (c *cmdContainer) Cmd() *exec.Cmd { return c.cmd }

// Err returns any error from exec.Cmd.Start, valid after Ch is closed
func (c *cmdContainer) Err() error { return c.err }
