/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

// Environment variables carrying the PTY proxy's launch parameters across
// the re-exec boundary. Go cannot safely fork() without an immediate
// exec() in a multi-threaded runtime, so the proxy is not a raw fork of
// this process: it is a fresh invocation of the same binary
// (os.Args[0]), marked by proxyMarkerEnv, that re-enters via
// MaybeRunPTYProxy instead of the caller's own main.
const (
	// proxyMarkerEnv, when set to "1", tells MaybeRunPTYProxy to run the
	// proxy's own main loop instead of returning
	proxyMarkerEnv = "SHELLSPAWN_PTYPROXY"
	// proxyProgramEnv carries the resolved program path for the real child
	proxyProgramEnv = "SHELLSPAWN_PROGRAM"
	// proxyArgvEnv carries argv, NUL-joined (the grammar in resolve.go
	// already forbids NUL in tokens, since command strings are ordinary
	// text)
	proxyArgvEnv = "SHELLSPAWN_ARGV"
	// proxySlaveEnv carries the PTY slave device path to open
	proxySlaveEnv = "SHELLSPAWN_SLAVE"
	// proxyDrainUsEnv / proxyConfirmUsEnv carry the two tunable sleeps as
	// microsecond integers
	proxyDrainUsEnv   = "SHELLSPAWN_DRAIN_US"
	proxyConfirmUsEnv = "SHELLSPAWN_CONFIRM_US"
)

// extraFile descriptor numbers the proxy receives beyond the standard 0/1/2
// (os/exec always assigns ExtraFiles starting at fd 3, in order)
const (
	fdPTYMaster      = 3
	fdStdoutW        = 4
	fdStderrW        = 5
	fdWorkerToProxyR = 6
	fdProxyToWorkerW = 7
	// fdChildPIDW is the write end of the one-shot pipe the proxy uses to
	// send the real child's PID back to the launching process (spec.md
	// §4.3's "sends the child PID back to the parent via a rendezvous
	// pipe"), so Cleanup can signal the child's process group even though
	// the launching process never itself calls fork/exec for it.
	fdChildPIDW = 8
)

// MaybeRunPTYProxy must be called at the very top of a host program's
// main, before any other shellspawn use. If this process was re-exec'd by
// Spawn to act as a PTY proxy, MaybeRunPTYProxy runs the proxy's main loop
// and never returns (it calls os.Exit with the real child's exit code).
// Otherwise it returns immediately and the host program continues as
// normal.
func MaybeRunPTYProxy() {
	maybeRunPTYProxy()
}
