/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tunables.yaml")
	content := "shellspawn:\n  proxyForegroundDrainUs: 75\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := LoadFile(path, Default())
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if want := 75 * time.Microsecond; got.ProxyForegroundDrain != want {
		t.Errorf("ProxyForegroundDrain = %v, want %v", got.ProxyForegroundDrain, want)
	}
	if got.ProxyInputConfirmDelay != Default().ProxyInputConfirmDelay {
		t.Errorf("ProxyInputConfirmDelay changed despite absent field: %v", got.ProxyInputConfirmDelay)
	}
}

func TestLoadFileMissingFileIsError(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), Default()); err == nil {
		t.Error("LoadFile on a missing file: want error, got nil")
	}
}
