/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package config holds the timing knobs spec.md §9 flags as "adjustable,
// not a tighter value": the proxy's foreground-drain and input-confirm
// delays, and the resolver's stat-probe timeout. A YAML file, if present,
// overrides the compiled-in defaults and is hot-reloaded via fsnotify.
package config

import (
	"sync/atomic"
	"time"
)

// Tunables holds the adjustable timing knobs
type Tunables struct {
	// ProxyForegroundDrain is how long the proxy waits after SIGCONT for
	// the child to drain already-buffered PTY input before re-stopping it
	//   - spec.md §4.7/§9: "~50 µs"
	ProxyForegroundDrain time.Duration
	// ProxyInputConfirmDelay is how long the proxy waits after the input
	// worker confirms a write before re-stopping the child
	//   - spec.md §4.7/§9: "~100 µs"
	ProxyInputConfirmDelay time.Duration
	// ResolverProbeTimeout bounds the executability stat probe
	//   - spec.md §4.2: "after one second, the probe is interrupted"
	ResolverProbeTimeout time.Duration
	// PathOverride, if non-empty, replaces the PATH environment variable
	// for command resolution; intended for tests
	PathOverride string
}

// Default returns the compiled-in defaults
func Default() Tunables {
	return Tunables{
		ProxyForegroundDrain:   50 * time.Microsecond,
		ProxyInputConfirmDelay: 100 * time.Microsecond,
		ResolverProbeTimeout:   time.Second,
	}
}

// Store is an atomically-swappable Tunables holder, safe to read
// concurrently from stream workers while a config watcher reloads it
type Store struct {
	value atomic.Value // Tunables
}

// NewStore returns a Store initialized to Default, or to initial if provided
func NewStore(initial ...Tunables) (store *Store) {
	store = &Store{}
	if len(initial) > 0 {
		store.value.Store(initial[0])
	} else {
		store.value.Store(Default())
	}
	return
}

// Get returns the current Tunables snapshot
func (s *Store) Get() (t Tunables) {
	return s.value.Load().(Tunables)
}

// Set replaces the current Tunables snapshot
func (s *Store) Set(t Tunables) {
	s.value.Store(t)
}
