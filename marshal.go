/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import "sync"

// marshalKind tags the pending slot in a marshaller
type marshalKind int

const (
	marshalNone marshalKind = iota
	marshalInputRequest
	marshalOutputDelivery
	marshalTerminated
)

// marshalSlot is the single-slot record a worker posts and the caller
// thread consumes, per spec.md §3/§4.6
type marshalSlot struct {
	kind          marshalKind
	outputHandler func(chunk []byte)
	inputHandler  func() (dst []byte, closeInput bool)
	buffer        []byte
	closeInput    bool
}

// marshaller is a single-slot rendezvous between worker goroutines and the
// caller's own goroutine, ensuring every caller-supplied callback runs on
// the caller's goroutine and that no two callbacks from one invocation
// ever run concurrently.
//
// Protocol (spec.md §4.6), worker side (rendezvous):
//  1. acquire the serialization mutex
//  2. fill the slot
//  3. under the requested-mutex, signal requested
//  4. release the requested-mutex, then acquire the handled-mutex and wait
//     on handled until the caller side marks the slot handled
//  5. on wake, release handled-mutex and the serialization mutex
//
// Caller side (loop): wait on requested; dispatch by kind; clear the slot;
// signal handled under the handled-mutex; loop until Terminated.
//
// An equivalent bounded-channel rendezvous is sanctioned by spec.md §9;
// this implementation keeps the dual-condvar shape because the proxy's
// byte-rendezvous pipes (ptyproxy_unix.go) already supply the
// channel-like half of this system, and the five numbered steps above map
// directly onto condvar wait/signal pairs.
type marshaller struct {
	serialize sync.Mutex

	reqMu   sync.Mutex
	reqCond *sync.Cond
	filled  bool // guarded by reqMu

	handledMu   sync.Mutex
	handledCond *sync.Cond
	handled     bool // guarded by handledMu

	slot marshalSlot
}

// newMarshaller returns a ready-to-use marshaller
func newMarshaller() (m *marshaller) {
	m = &marshaller{}
	m.reqCond = sync.NewCond(&m.reqMu)
	m.handledCond = sync.NewCond(&m.handledMu)
	return
}

// deliverOutput is called by an output worker for each non-empty chunk
func (m *marshaller) deliverOutput(handler func([]byte), chunk []byte) {
	m.rendezvous(marshalSlot{kind: marshalOutputDelivery, outputHandler: handler, buffer: chunk})
}

// requestInput is called by the input worker to obtain the next chunk;
// the returned slot's buffer/closeInput are the caller's reply
func (m *marshaller) requestInput(handler func() ([]byte, bool)) (dst []byte, closeInput bool) {
	result := m.rendezvous(marshalSlot{kind: marshalInputRequest, inputHandler: handler})
	return result.buffer, result.closeInput
}

// terminate is called once, by the wait-thread, to release the caller
// thread's loop even if no callback activity ever occurred
func (m *marshaller) terminate() {
	m.rendezvous(marshalSlot{kind: marshalTerminated})
}

// rendezvous implements the worker-side protocol's five numbered steps
func (m *marshaller) rendezvous(post marshalSlot) (result marshalSlot) {
	m.serialize.Lock()
	defer m.serialize.Unlock()

	m.reqMu.Lock()
	m.slot = post
	m.filled = true
	m.reqCond.Signal()
	m.reqMu.Unlock()

	m.handledMu.Lock()
	for !m.handled {
		m.handledCond.Wait()
	}
	result = m.slot
	m.handled = false
	m.handledMu.Unlock()
	return
}

// loop runs on the caller's own goroutine until a Terminated slot is seen
func (m *marshaller) loop() {
	for {
		m.reqMu.Lock()
		for !m.filled {
			m.reqCond.Wait()
		}
		slot := m.slot
		m.filled = false
		m.reqMu.Unlock()

		switch slot.kind {
		case marshalInputRequest:
			dst, closeInput := slot.inputHandler()
			m.slot.buffer = dst
			m.slot.closeInput = closeInput
		case marshalOutputDelivery:
			slot.outputHandler(slot.buffer)
		case marshalTerminated:
			// nothing to dispatch
		}

		m.handledMu.Lock()
		m.handled = true
		m.handledCond.Signal()
		m.handledMu.Unlock()

		if slot.kind == marshalTerminated {
			return
		}
	}
}
