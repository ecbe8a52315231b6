/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"errors"
	"io"
	"io/fs"
	"syscall"

	"github.com/shellspawn/shellspawn/internal/iobuf"
	"github.com/shellspawn/shellspawn/internal/xsync"
)

// outputReadSize is the chunk size the Lines and Callback output workers
// read at a time; Discard and Buffer workers copy via io.Copy
const outputReadSize = 256

// runOutputWorker copies everything read from r to binding's sink until r
// is exhausted, then closes any closer the sink owns. m is nil unless
// binding is a *Callback, in which case every chunk is marshalled onto the
// caller's own goroutine instead of invoked directly here.
//   - grounded on pexec/copy-thread.go: panic-recovery wrapped, and an
//     already-closed stream (fs.ErrClosed) is not itself a failure
func runOutputWorker(label string, r io.Reader, binding Binding, m *marshaller, errs *xsync.ErrSlice) {
	var err error
	defer xsync.Recover(label, &err, errs.AddError)
	defer func() { errs.AddError(err) }()

	switch b := binding.(type) {
	case nil, Discard:
		err = discardAll(r)
	case *Buffer:
		sink := iobuf.NewCloserBuffer()
		err = copyAll(r, sink)
		b.Data = sink.Bytes()
	case *Lines:
		acc := iobuf.NewLineAccumulator(func(line string) { b.Lines = append(b.Lines, line) })
		err = copyInto(r, acc)
		acc.Flush()
	case *Callback:
		err = copyCallback(r, b, m)
	default:
		err = discardAll(r)
	}
}

// discardAll reads and drops everything from r
func discardAll(r io.Reader) (err error) {
	_, err = io.Copy(io.Discard, r)
	return quietClosed(err)
}

// copyAll copies r into sink, closing sink once r is drained
func copyAll(r io.Reader, sink io.WriteCloser) (err error) {
	_, err = io.Copy(sink, r)
	err = quietClosed(err)
	sink.Close()
	return
}

// copyInto copies r's bytes into w in outputReadSize chunks, without a
// Close call (the *iobuf.LineAccumulator has none)
func copyInto(r io.Reader, w io.Writer) (err error) {
	buf := make([]byte, outputReadSize)
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				return nil
			}
			return quietClosed(readErr)
		}
	}
}

// copyCallback reads r in chunks, marshalling each non-empty chunk to the
// caller's Output function on the caller's own goroutine
func copyCallback(r io.Reader, b *Callback, m *marshaller) (err error) {
	buf := make([]byte, outputReadSize)
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			m.deliverOutput(b.Output, chunk)
		}
		if readErr != nil {
			if readErr == io.EOF {
				return nil
			}
			return quietClosed(readErr)
		}
	}
}

// quietClosed maps a pipe/file having already been closed to nil: a
// quickly-terminated child legitimately races the worker's own read
func quietClosed(err error) error {
	if errors.Is(err, fs.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return nil
	}
	return err
}

// runInputWorker writes binding's content to w, then closes w. For
// Callback, each chunk comes from m.requestInput, invoked on the caller's
// own goroutine; session, if non-nil, additionally drives the PTY
// rendezvous protocol so the proxy knows when to let the child resume
// reading.
func runInputWorker(label string, w io.WriteCloser, binding Binding, m *marshaller, session *ptySession, errs *xsync.ErrSlice) {
	var err error
	defer xsync.Recover(label, &err, errs.AddError)
	defer func() { errs.AddError(err) }()
	defer w.Close()

	switch b := binding.(type) {
	case nil, Discard:
		// nothing to write; the deferred Close signals EOF immediately
	case *Buffer:
		if len(b.Data) > 0 {
			err = writeAll(w, b.Data)
		}
	case *Lines:
		for _, line := range b.Lines {
			if err = writeAll(w, []byte(line+"\n")); err != nil {
				return
			}
		}
	case *Callback:
		err = runCallbackInput(w, b, m, session)
	}
}

// writeAll writes p to w, translating a broken pipe (the child closed its
// end of stdin, eg. a program that reads one byte then exits, which would
// otherwise raise SIGPIPE on the write) into a quiet nil rather than a
// reported Failure — spec.md §4.5's "writes must mask SIGPIPE so a child
// that exits early becomes a writable error return"
func writeAll(w io.Writer, p []byte) (err error) {
	_, err = w.Write(p)
	if errors.Is(err, io.ErrClosedPipe) || errors.Is(err, fs.ErrClosed) || errors.Is(err, syscall.EPIPE) {
		return nil
	}
	return err
}

// runCallbackInput drives the interactive Input callback to completion,
// coordinating with the PTY proxy's job-control loop via session's
// rendezvous pipes when present (stdin bound to Callback always goes
// through the PTY proxy on POSIX; session is nil only on platforms where
// that subsystem does not exist, in which case the loop still runs, just
// without proxy coordination)
func runCallbackInput(w io.Writer, b *Callback, m *marshaller, session *ptySession) (err error) {
	for {
		if session != nil {
			req := make([]byte, 1)
			if _, readErr := session.proxyToWorkerR.Read(req); readErr != nil {
				return nil // proxy gone: child has exited
			}
		}

		chunk, closeInput := m.requestInput(b.Input)

		if closeInput {
			if session != nil {
				_, _ = session.workerToProxyW.Write([]byte{'C'})
			}
			return nil
		}

		if len(chunk) > 0 {
			if werr := writeAll(w, chunk); werr != nil {
				if session != nil {
					_, _ = session.workerToProxyW.Write([]byte{'C'})
				}
				return werr
			}
		}
		if session != nil {
			if _, werr := session.workerToProxyW.Write([]byte{'X'}); werr != nil {
				return nil
			}
		}
	}
}
