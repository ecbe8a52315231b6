/*
© 2021–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package perr provides stack-trace-carrying error constructors in the
// style of the pexec package's use of perrors, scaled down to what this
// module needs.
package perr

import (
	"errors"
	"fmt"
	"runtime"
)

// Errorf wraps err (via the %w verb somewhere in format) with a caller tag
//   - the caller tag is "file:line" of Errorf's immediate caller
//   - if format does not contain %w, Errorf behaves like fmt.Errorf apart
//     from the caller tag
func Errorf(format string, a ...any) (err error) {
	err = fmt.Errorf(format, a...)
	return withCaller(err, 1)
}

// New returns an error with message s and a caller tag
func New(s string) (err error) {
	err = errors.New(s)
	return withCaller(err, 1)
}

// AppendError joins err0 and err1, either of which may be nil
//   - if both are nil, nil is returned
//   - if one is nil, the other is returned unchanged
//   - otherwise a joined error is returned via errors.Join
func AppendError(err0, err1 error) (err error) {
	if err0 == nil {
		return err1
	} else if err1 == nil {
		return err0
	}
	return errors.Join(err0, err1)
}

// Short renders a one-line summary of err, "" for nil
func Short(err error) (s string) {
	if err == nil {
		return
	}
	return err.Error()
}

// taggedError prepends a caller location to the wrapped error's message
type taggedError struct {
	error
	where string
}

func (t *taggedError) Error() string { return t.where + ": " + t.error.Error() }
func (t *taggedError) Unwrap() error { return t.error }

// withCaller tags err with its caller's file:line, skip frames above Errorf/New
func withCaller(err error, skip int) error {
	if err == nil {
		return nil
	}
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return err
	}
	return &taggedError{error: err, where: fmt.Sprintf("%s:%d", shortFile(file), line)}
}

// shortFile trims a source path to its last two components
func shortFile(file string) string {
	slash := -1
	count := 0
	for i := len(file) - 1; i >= 0; i-- {
		if file[i] == '/' {
			count++
			if count == 2 {
				slash = i
				break
			}
		}
	}
	if slash == -1 {
		return file
	}
	return file[slash+1:]
}
