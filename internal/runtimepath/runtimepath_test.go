package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got == "" {
		t.Fatal("Dir() returned empty path")
	}

	wantRun := fmt.Sprintf("/run/user/%d", os.Getuid())
	wantTmp := fmt.Sprintf("/tmp/tagwm-runtime-%d", os.Getuid())
	if got != wantRun && got != wantTmp {
		t.Fatalf("Dir() = %q, want %q or %q", got, wantRun, wantTmp)
	}
}

func TestSocketPath_PerDisplay(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)
	t.Setenv("TAGWM_SOCKET", "")

	cases := map[string]string{
		"":            "tagwm.sock",
		":0":          "tagwm-0.sock",
		":1.0":        "tagwm-1.0.sock",
		"host:2":      "tagwm-host_2.sock",
		"/tmp/.X11:3": "tagwm-_tmp_.X11_3.sock",
	}
	for display, want := range cases {
		t.Setenv("DISPLAY", display)
		got, err := SocketPath()
		if err != nil {
			t.Fatalf("SocketPath() error: %v", err)
		}
		if got != filepath.Join(td, want) {
			t.Fatalf("DISPLAY=%q: SocketPath() = %q, want %q", display, got, filepath.Join(td, want))
		}
	}
}

func TestSocketPath_ExplicitOverride(t *testing.T) {
	t.Setenv("TAGWM_SOCKET", "/tmp/custom.sock")
	got, err := SocketPath()
	if err != nil {
		t.Fatalf("SocketPath() error: %v", err)
	}
	if got != "/tmp/custom.sock" {
		t.Fatalf("SocketPath() = %q, want /tmp/custom.sock", got)
	}
}
