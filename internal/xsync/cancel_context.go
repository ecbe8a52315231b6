/*
© 2021–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package xsync provides the small slice of general concurrency glue this
// module needs: a cancelable context carried by value, goroutine panic
// recovery, and a thread-safe error collector.
package xsync

import "context"

// cancelContextKey is the context.WithValue key for the stored CancelFunc
type cancelContextKey struct{}

// NewCancelContext returns a context derived from ctx that carries its own
// CancelFunc recoverable via InvokeCancel
//   - unlike a bare context.WithCancel, the CancelFunc travels with the
//     context itself so a copy-thread that only has the context value can
//     still cancel the whole invocation
func NewCancelContext(ctx context.Context) (cancelCtx context.Context) {
	c, cancel := context.WithCancel(ctx)
	return context.WithValue(c, cancelContextKey{}, cancel)
}

// InvokeCancel cancels a context created by NewCancelContext
//   - does nothing if ctx does not carry a CancelFunc
func InvokeCancel(ctx context.Context) {
	if cancel, ok := ctx.Value(cancelContextKey{}).(context.CancelFunc); ok {
		cancel()
	}
}

// CancelOnError invokes InvokeCancel on ctx if *errp is non-nil
//   - intended for defer: defer CancelOnError(&err, execCtx)
func CancelOnError(errp *error, ctx context.Context) {
	if errp != nil && *errp != nil {
		InvokeCancel(ctx)
	}
}
