/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package shellspawn launches a child command with redirected standard
// input, standard output, and standard error, coordinating input supply
// and output capture concurrently with the child's lifetime, and
// delivering a final exit status.
//
// Each of stdin, stdout, and stderr is bound independently to one of:
// Discard, Buffer, Lines, Callback, or Handle. A Callback binding on
// standard input, on POSIX, spawns an interactive PTY proxy so that the
// child's ordinary job-control-driven terminal reads are satisfied by a
// caller-supplied Go function rather than an actual human typing.
//
//	inv := &shellspawn.Invocation{
//		Command: "/bin/echo hello",
//		Stdout:  &shellspawn.Buffer{},
//	}
//	err := shellspawn.Spawn(inv)
package shellspawn
