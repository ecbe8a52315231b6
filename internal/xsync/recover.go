/*
© 2021–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package xsync

import (
	"fmt"
)

// Recover recovers a panic in the calling goroutine, storing it into *errp
// and handing it to addError
//   - label identifies the recovering goroutine in the panic message
//   - intended for defer: defer Recover("copy stdin", &err, addError)
func Recover(label string, errp *error, addError func(err error)) {
	if v := recover(); v != nil {
		err := panicError(label, v)
		if errp != nil {
			*errp = AppendErrorP(*errp, err)
		}
		if addError != nil {
			addError(err)
		}
	}
}

// RecoverErr recovers a panic in the calling goroutine, storing it into *errp
func RecoverErr(errp *error) {
	if v := recover(); v != nil {
		err := panicError("recover", v)
		if errp != nil {
			*errp = AppendErrorP(*errp, err)
		}
	}
}

// RecoverInvocationPanic invokes fn, recovering any panic into *errp
//   - used to shield the caller from a panicking callback
func RecoverInvocationPanic(fn func(), errp *error) {
	defer RecoverErr(errp)
	fn()
}

func panicError(label string, v any) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("panic in %s: %w", label, err)
	}
	return fmt.Errorf("panic in %s: %v", label, v)
}

// AppendErrorP joins two possibly-nil errors without importing perr,
// avoiding an import cycle between xsync and perr
func AppendErrorP(err0, err1 error) (err error) {
	if err0 == nil {
		return err1
	} else if err1 == nil {
		return err0
	}
	return fmt.Errorf("%w; %w", err0, err1)
}
