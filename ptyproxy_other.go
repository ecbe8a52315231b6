//go:build !unix

/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

// newPTYSession, openPTY and their callers are all POSIX-only; this file
// exists only so the shellspawn package itself still builds on other
// platforms. Any attempt to bind stdin to Callback is rejected earlier,
// in shellspawn.go, with StatusFailure.
