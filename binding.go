/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

// validateBindings enforces at-most-one-binding-kind-per-stream
//   - a stream's Binding field is itself a single tagged value, so the
//     interesting validation is rejecting the zero binding's callers from
//     supplying contradictory state in it (eg. both Data and a non-nil
//     Output func on what should be one kind); here, where Go's type
//     system already makes the bindings mutually exclusive per field, the
//     check that matters is that the caller populated exactly the binding
//     they intend to use, which reduces to: nil means Discard
func validateBindings(inv *Invocation) (status Status) {
	if !isWellFormed(inv.Stdin) {
		return StatusTooManyIn
	}
	if !isWellFormed(inv.Stdout) {
		return StatusTooManyOut
	}
	if !isWellFormed(inv.Stderr) {
		return StatusTooManyErr
	}
	return StatusOK
}

// isWellFormed rejects a Binding value that carries no usable payload (a
// nil pointer, a *Callback with neither Input nor Output set, a *Handle
// with a nil File) or is of an unknown type; validateBindings reports
// such a stream with its TooMany status
func isWellFormed(b Binding) bool {
	switch v := b.(type) {
	case nil, Discard:
		return true
	case *Buffer:
		return v != nil
	case *Lines:
		return v != nil
	case *Callback:
		return v != nil && (v.Input != nil || v.Output != nil)
	case *Handle:
		return v != nil && v.File != nil
	default:
		return false
	}
}
