//go:build unix

/*
© 2022–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package sigtab

import (
	"errors"
	"strconv"

	"golang.org/x/sys/unix"
)

// Errno scans err's chain for a unix.Errno, returning 0 if none is found
func Errno(err error) (errnoValue unix.Errno) {
	for ; err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(unix.Errno); ok {
			return e
		}
	}
	return
}

// ErrnoString returns "NAME number 0xhex" for the first unix.Errno in
// err's chain, or "" if none is present
func ErrnoString(err error) (s string) {
	errno := Errno(err)
	if errno == 0 {
		return
	}
	if name := unix.ErrnoName(errno); name != "" {
		s = name + "\x20"
	}
	n := int(errno)
	s += strconv.Itoa(n) + "\x20" + "0x" + strconv.FormatInt(int64(n), 16)
	return
}
