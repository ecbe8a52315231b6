//go:build unix

/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import "os"

// maybeRunPTYProxy checks the re-exec marker and, if set, runs the proxy
// main loop and never returns
func maybeRunPTYProxy() {
	if os.Getenv(proxyMarkerEnv) != "1" {
		return
	}
	runPTYProxy() // ptyproxy_unix.go; calls os.Exit
}
