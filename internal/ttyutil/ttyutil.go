/*
© 2021–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package ttyutil provides the "does this file need console/TTY handling"
// predicate. On Windows this would inspect console attachment; on POSIX it
// is golang.org/x/term's terminal check. The shellspawn package does not
// call it: a Handle binding's file is passed to the child as-is.
package ttyutil

import (
	"os"

	"golang.org/x/term"
)

// IsConsole reports whether f is attached to an interactive terminal
func IsConsole(f *os.File) (isConsole bool) {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Size returns the terminal size of f, if f is a console
func Size(f *os.File) (width, height int, err error) {
	return term.GetSize(int(f.Fd()))
}
