/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

// Status is the stable small-integer status code returned by Spawn
//   - a Failure's details are carried in Invocation.Err
type Status int

const (
	// StatusOK: the command launched and ran to completion; see ExitCode
	// for the child's own exit status
	StatusOK Status = iota
	// StatusTooManyIn: more than one binding was supplied for stdin
	StatusTooManyIn
	// StatusTooManyOut: more than one binding was supplied for stdout
	StatusTooManyOut
	// StatusTooManyErr: more than one binding was supplied for stderr
	StatusTooManyErr
	// StatusNotFound: the command resolver could not produce an
	// executable candidate
	StatusNotFound
	// StatusFailure: any other system call or coordination error;
	// Invocation.Err carries the detail
	StatusFailure
)

// String renders the status's spec-stable name
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusTooManyIn:
		return "TooManyIn"
	case StatusTooManyOut:
		return "TooManyOut"
	case StatusTooManyErr:
		return "TooManyErr"
	case StatusNotFound:
		return "NotFound"
	case StatusFailure:
		return "Failure"
	default:
		return "Status(?)"
	}
}

// Binding is a tagged variant of the stream binding kinds: Discard,
// Buffer, Lines, Callback, Handle. At most one Binding may be set per
// stream of an Invocation.
type Binding interface {
	bindingKind() string
}

// Discard reads and drops output, or supplies no input and closes the
// write end immediately
type Discard struct{}

func (Discard) bindingKind() string { return "Discard" }

// Buffer accumulates output into Data as a single byte sequence, or
// supplies Data once as stdin
type Buffer struct {
	Data []byte
}

func (*Buffer) bindingKind() string { return "Buffer" }

// Lines accumulates output as an ordered sequence of newline-delimited
// lines (newline stripped), or supplies each element of Lines terminated
// by an implicit newline as stdin
type Lines struct {
	Lines []string
}

func (*Lines) bindingKind() string { return "Lines" }

// Callback delivers output chunks, and requests input, via functions
// invoked on the caller's own goroutine — never on a worker goroutine
type Callback struct {
	// Output is invoked once per non-empty chunk read from the child;
	// bytes are valid only for the duration of the call
	Output func(chunk []byte)
	// Input is invoked to request the next chunk of standard input;
	// dst should be set to the bytes to write, and closeInput returned
	// true to close input instead
	Input func() (dst []byte, closeInput bool)
}

func (*Callback) bindingKind() string { return "Callback" }

// Handle is a caller-supplied OS file inherited by the child as that
// stream; the core duplicates/inherits it without interpreting its origin
type Handle struct {
	File FileHandle
}

func (*Handle) bindingKind() string { return "Handle" }

// FileHandle is the minimal os.File surface Handle needs, so callers can
// supply os.Stdin/os.Stdout/os.Stderr or any *os.File
type FileHandle interface {
	Fd() uintptr
	Name() string
}

// Invocation is one call to Spawn: the binding choice for each of stdin,
// stdout, and stderr, the command string, and out-parameters filled in by
// Spawn. An Invocation is owned by the calling goroutine for the duration
// of the Spawn call and must not be reused concurrently.
type Invocation struct {
	// Command is the command line: program name followed by arguments,
	// parsed per the grammar in resolve.go
	Command string
	// Stdin, Stdout, Stderr select each stream's binding; nil means Discard
	Stdin, Stdout, Stderr Binding

	// ExitCode is the child's exit code, valid when Status is StatusOK
	ExitCode int
	// Status is the outcome classification; see the Status* constants
	Status Status
	// Err carries Failure detail; nil for every other status
	Err error
}
