/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
)

func skipUnlessPOSIX(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("scenario exercises /bin/sh and coreutils, POSIX only")
	}
}

// echo hello, via Buffer
func TestSpawnEchoHelloBuffer(t *testing.T) {
	skipUnlessPOSIX(t)
	inv := &Invocation{Command: "echo hello", Stdout: &Buffer{}}
	if err := Spawn(inv); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if inv.Status != StatusOK || inv.ExitCode != 0 {
		t.Fatalf("status=%v exitCode=%d, want OK/0", inv.Status, inv.ExitCode)
	}
	if got := string(inv.Stdout.(*Buffer).Data); got != "hello\n" {
		t.Errorf("stdout = %q, want %q", got, "hello\n")
	}
}

// false: exits 1, no output expected
func TestSpawnFalseExitsOne(t *testing.T) {
	skipUnlessPOSIX(t)
	inv := &Invocation{Command: "false", Stdout: &Buffer{}}
	if err := Spawn(inv); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if inv.Status != StatusOK {
		t.Fatalf("status=%v, want StatusOK (a nonzero exit is not itself a Failure)", inv.Status)
	}
	if inv.ExitCode != 1 {
		t.Errorf("exitCode = %d, want 1", inv.ExitCode)
	}
}

// cat with Buffer stdin/stdout round-trips the whole payload as one chunk
func TestSpawnCatBuffer(t *testing.T) {
	skipUnlessPOSIX(t)
	inv := &Invocation{
		Command: "cat",
		Stdin:   &Buffer{Data: []byte("line one\nline two\n")},
		Stdout:  &Buffer{},
	}
	if err := Spawn(inv); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if got := string(inv.Stdout.(*Buffer).Data); got != "line one\nline two\n" {
		t.Errorf("stdout = %q", got)
	}
}

// cat with Lines stdin/stdout splits on newlines in both directions
func TestSpawnCatLines(t *testing.T) {
	skipUnlessPOSIX(t)
	inv := &Invocation{
		Command: "cat",
		Stdin:   &Lines{Lines: []string{"line one", "line two"}},
		Stdout:  &Lines{},
	}
	if err := Spawn(inv); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	want := []string{"line one", "line two"}
	got := inv.Stdout.(*Lines).Lines
	if len(got) != len(want) {
		t.Fatalf("lines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// a command that cannot be resolved reports StatusNotFound, not an error
func TestSpawnNotFound(t *testing.T) {
	skipUnlessPOSIX(t)
	inv := &Invocation{Command: "this-program-does-not-exist-anywhere"}
	if err := Spawn(inv); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if inv.Status != StatusNotFound {
		t.Errorf("status = %v, want StatusNotFound", inv.Status)
	}
}

// a quoted argument containing a space is delivered to the child as one argv element
func TestSpawnQuotedArgSplitting(t *testing.T) {
	skipUnlessPOSIX(t)
	inv := &Invocation{Command: `echo "hello world"`, Stdout: &Buffer{}}
	if err := Spawn(inv); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if got := string(inv.Stdout.(*Buffer).Data); got != "hello world\n" {
		t.Errorf("stdout = %q, want %q", got, "hello world\n")
	}
}

// stdout and stderr are kept separate, never interleaved into one binding
func TestSpawnStdoutStderrSeparation(t *testing.T) {
	skipUnlessPOSIX(t)
	inv := &Invocation{
		Command: `/bin/sh -c "echo out-line; echo err-line 1>&2"`,
		Stdout:  &Buffer{},
		Stderr:  &Buffer{},
	}
	if err := Spawn(inv); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if got := string(inv.Stdout.(*Buffer).Data); strings.TrimSpace(got) != "out-line" {
		t.Errorf("stdout = %q, want %q", got, "out-line\n")
	}
	if got := string(inv.Stderr.(*Buffer).Data); strings.TrimSpace(got) != "err-line" {
		t.Errorf("stderr = %q, want %q", got, "err-line\n")
	}
}

// a Handle binding inherits the stream directly: stdout and stderr can
// share one underlying file without either binding owning a worker
func TestSpawnHandleStdoutStderrShareFile(t *testing.T) {
	skipUnlessPOSIX(t)
	tmp, err := newTestTempFile(t)
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	defer tmp.Close()

	inv := &Invocation{
		Command: `/bin/sh -c "echo out-line; echo err-line 1>&2"`,
		Stdout:  &Handle{File: tmp},
		Stderr:  &Handle{File: tmp},
	}
	if err := Spawn(inv); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if inv.Status != StatusOK {
		t.Fatalf("status = %v", inv.Status)
	}
}

// writing 1 MiB of stdin to a child that reads one byte then exits must
// return OK with the child's own exit code, rather than killing this
// process with SIGPIPE (spec.md §8, "SIGPIPE safety")
func TestSpawnSIGPIPESafety(t *testing.T) {
	skipUnlessPOSIX(t)
	payload := bytes.Repeat([]byte{'a'}, 1<<20)
	inv := &Invocation{
		Command: `/bin/sh -c "dd bs=1 count=1 of=/dev/null 2>/dev/null"`,
		Stdin:   &Buffer{Data: payload},
		Stdout:  &Buffer{},
	}
	if err := Spawn(inv); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if inv.Status != StatusOK {
		t.Fatalf("status = %v, err = %v, want StatusOK (a broken pipe on stdin is not a Failure)", inv.Status, inv.Err)
	}
	if inv.ExitCode != 0 {
		t.Errorf("exitCode = %d, want 0", inv.ExitCode)
	}
}

// a child that prints a prompt, reads a line via the PTY proxy's
// interactive protocol, and echoes it back, driven by an Input callback
// returning "ping\n", produces stdout containing both the prompt and the
// echoed input (spec.md §8, "Interactive callback round-trip")
func TestSpawnInteractiveCallbackRoundTrip(t *testing.T) {
	skipUnlessPOSIX(t)
	var out bytes.Buffer
	sentInput := false
	inv := &Invocation{
		Command: `/bin/sh -c "printf 'prompt> '; read line; echo got:$line"`,
		Stdout: &Callback{
			Output: func(chunk []byte) { out.Write(chunk) },
		},
		Stdin: &Callback{
			Input: func() (dst []byte, closeInput bool) {
				if sentInput {
					return nil, true
				}
				sentInput = true
				return []byte("ping\n"), false
			},
		},
	}
	if err := Spawn(inv); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if inv.Status != StatusOK {
		t.Fatalf("status = %v, err = %v", inv.Status, inv.Err)
	}
	got := out.String()
	if !strings.Contains(got, "prompt>") {
		t.Errorf("stdout = %q, want it to contain the prompt", got)
	}
	if !strings.Contains(got, "ping") {
		t.Errorf("stdout = %q, want it to contain the echoed input", got)
	}
}
