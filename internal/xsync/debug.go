/*
© 2021–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package xsync

import (
	"fmt"
	"os"
)

// Debug prints a gated debug line to stderr when enabled is true
//   - a no-op call costs one boolean test, no allocation
//   - enabled is typically IsDebug()
func Debug(enabled bool, format string, a ...any) {
	if !enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "shellspawn debug: "+format+"\n", a...)
}

// IsDebug returns true if the ShellSpawnDebug environment variable is set
//   - mirrors the teacher's parl.IsThisDebug gate, scoped to this module
func IsDebug() bool {
	_, ok := os.LookupEnv("ShellSpawnDebug")
	return ok
}
