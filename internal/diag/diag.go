/*
© 2022–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package diag provides a per-invocation correlation id and a host/process
// identity tag. shellspawn.Spawn uses the correlation id for audit rows; it
// does not add the host tag to any Failure errorText.
package diag

import (
	"fmt"
	"sync"

	"github.com/elastic/go-sysinfo"
	"github.com/google/uuid"
)

// NewCorrelationID returns a fresh per-invocation id for log/audit correlation
func NewCorrelationID() (id string) {
	return uuid.New().String()
}

var (
	hostTagOnce sync.Once
	hostTag     string
)

// HostTag returns a short "host=<name> pid=<n>" tag ("host=unknown" if the
// host cannot be queried), computed once per process since host identity
// does not change at runtime
func HostTag() (tag string) {
	hostTagOnce.Do(func() {
		host, err := sysinfo.Host()
		if err != nil {
			hostTag = "host=unknown"
			return
		}
		info := host.Info()
		hostTag = fmt.Sprintf("host=%s pid=%d", info.Hostname, info.PID)
	})
	return hostTag
}
