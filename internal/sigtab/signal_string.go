//go:build unix

/*
© 2023–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package sigtab renders unix signals and errnos as human-readable text
// for the Failure status's errorText.
package sigtab

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// SignalString returns a descriptive string for signal, eg.
// `signal "segmentation fault" SIGSEGV 11 0xb`
func SignalString(signal os.Signal) (s string) {
	unixSignal, isUnixSignal := signal.(unix.Signal)
	if !isUnixSignal {
		return fmt.Sprintf("signal %v", signal)
	}

	var minus string
	signalPositive := int(unixSignal)
	if signalPositive < 0 {
		minus = "-"
		signalPositive = -signalPositive
	}

	signalName := unix.SignalName(unixSignal)
	if signalName != "" {
		signalName = "\x20" + signalName
	}

	signalDesc := signal.String()
	if signalDesc != "" {
		signalDesc = "\x20\"" + signalDesc + "\""
	}

	s = fmt.Sprintf("signal%s%s %d %s0x%x", signalDesc, signalName, signal, minus, signalPositive)
	return
}
