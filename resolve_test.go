/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"reflect"
	"testing"
	"time"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"simple", "echo hello", []string{"echo", "hello"}},
		{"extra spaces", "  echo   hello  ", []string{"echo", "hello"}},
		{"double quoted span", `echo "hello world"`, []string{"echo", "hello world"}},
		{"single quoted span", `echo 'hello world'`, []string{"echo", "hello world"}},
		{"quote mid-token", `echo hello" world"`, []string{"echo", "hello world"}},
		{"unterminated trailing quote consumes to end", `echo "hello`, []string{"echo", "hello"}},
		{"no escapes: backslash is literal", `echo a\ b`, []string{"echo", `a\`, "b"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tokenize(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("tokenize(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestResolveCommandNotFound(t *testing.T) {
	_, err := resolveCommand("this-program-does-not-exist-anywhere", "/nonexistent-path", time.Second)
	if err != errNotFound {
		t.Errorf("resolveCommand on a missing program = %v, want errNotFound", err)
	}
}

func TestResolveCommandFindsEcho(t *testing.T) {
	res, err := resolveCommand("echo hello world", "", time.Second)
	if err != nil {
		t.Fatalf("resolveCommand(echo) unexpected error: %v", err)
	}
	if res.ProgramPath == "" {
		t.Fatal("resolveCommand(echo): empty ProgramPath")
	}
	wantArgv := []string{"echo", "hello", "world"}
	if !reflect.DeepEqual(res.Argv, wantArgv) {
		t.Errorf("resolveCommand(echo).Argv = %v, want %v", res.Argv, wantArgv)
	}
}
