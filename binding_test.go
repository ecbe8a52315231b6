/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import "testing"

func TestValidateBindingsOK(t *testing.T) {
	inv := &Invocation{
		Command: "echo hi",
		Stdin:   Discard{},
		Stdout:  &Buffer{},
		Stderr:  &Lines{},
	}
	if status := validateBindings(inv); status != StatusOK {
		t.Errorf("validateBindings = %v, want StatusOK", status)
	}
}

func TestValidateBindingsRejectsMalformedCallback(t *testing.T) {
	inv := &Invocation{
		Command: "echo hi",
		Stdout:  &Callback{}, // neither Input nor Output set
	}
	if status := validateBindings(inv); status != StatusTooManyOut {
		t.Errorf("validateBindings on empty Callback = %v, want StatusTooManyOut", status)
	}
}

func TestValidateBindingsRejectsNilHandleFile(t *testing.T) {
	inv := &Invocation{
		Command: "echo hi",
		Stderr:  &Handle{},
	}
	if status := validateBindings(inv); status != StatusTooManyErr {
		t.Errorf("validateBindings on nil-File Handle = %v, want StatusTooManyErr", status)
	}
}
