/*
© 2022–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package audit optionally records one row per invocation (command,
// status, exit code, timestamps) to a SQLite database.
package audit

import (
	"errors"
	"time"
)

const nsUTCLength = len("2006-01-02T15:04:05.000000000Z")

// rfc3339nsz is the RFC3339-nanosecond-UTC layout used for SQLite TEXT columns
const rfc3339nsz = "2006-01-02T15:04:05.000000000Z"

// ErrBadLength is returned by ToTime for a value of the wrong length
var ErrBadLength = errors.New("audit: bad timestamp length")

// TimeToDB converts t to SQLite TEXT ISO8601 nanosecond-resolution UTC
func TimeToDB(t time.Time) (dbValue string) {
	return t.UTC().Format(rfc3339nsz)
}

// ToTime parses a SQLite TEXT value produced by TimeToDB, in Local location
func ToTime(timeString string) (t time.Time, err error) {
	if len(timeString) != nsUTCLength {
		return time.Time{}, ErrBadLength
	}
	t, err = time.Parse(rfc3339nsz, timeString)
	if err != nil {
		return
	}
	t = t.Local()
	return
}
