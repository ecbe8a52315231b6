//go:build !unix

/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

// maybeRunPTYProxy: the PTY proxy subsystem is POSIX-only, so the marker
// is never set on this platform
func maybeRunPTYProxy() {}
