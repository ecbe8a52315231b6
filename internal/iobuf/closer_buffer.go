/*
© 2021–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package iobuf provides the Buffer and Lines output sinks for stream
// workers: a bytes.Buffer made io.Closer, and a newline-accumulating
// line splitter.
package iobuf

import (
	"bytes"
	"io"
	"io/fs"
	"sync/atomic"
)

// CloserBuffer extends bytes.Buffer to be io.Closer
//   - the Buffer output binding's sink
type CloserBuffer struct {
	bytes.Buffer
	isClosed atomic.Bool
}

var _ io.Closer = &CloserBuffer{}
var _ io.Writer = &CloserBuffer{}

// NewCloserBuffer returns an empty CloserBuffer
func NewCloserBuffer() (closer *CloserBuffer) {
	return &CloserBuffer{}
}

// Write writes len(p) bytes from p to the underlying buffer
func (b *CloserBuffer) Write(p []byte) (n int, err error) {
	if b.isClosed.Load() {
		err = fs.ErrClosed
		return
	}
	return b.Buffer.Write(p)
}

// Close marks the buffer closed; idempotent beyond the first call reporting
// fs.ErrClosed, since the buffer's content remains readable after close
func (b *CloserBuffer) Close() (err error) {
	if !b.isClosed.CompareAndSwap(false, true) {
		err = fs.ErrClosed
	}
	return
}
