/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"os/exec"
	"runtime"
	"testing"
)

func TestDecodeExitErrorNonExitError(t *testing.T) {
	info := decodeExitError(nil)
	if info.hasExitError {
		t.Errorf("decodeExitError(nil).hasExitError = true, want false")
	}
}

func TestDecodeExitErrorFromRealProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exercises /bin/sh")
	}
	cmd := exec.Command("/bin/sh", "-c", "exit 7")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected a non-nil error from exit 7")
	}
	info := decodeExitError(err)
	if !info.hasExitError {
		t.Fatal("hasExitError = false, want true")
	}
	if info.exitCode != 7 {
		t.Errorf("exitCode = %d, want 7", info.exitCode)
	}
}
