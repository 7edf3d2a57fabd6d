package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/tagwm/internal/config"
)

func TestSettings_SaveWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagwm", "config.yaml")
	s := newSettings(path, config.DefaultConfig())
	s.fGapSize = "8"
	s.fPaddingTop = "24"
	s.fBorderWidth = "3"
	s.fActiveColor = "#ff0000"
	s.fDefaultLayout = string(config.LayoutModeVertical)
	s.fMasterWidthPct = "60"

	if err := s.save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	res, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	cfg := res.Config
	if cfg.GapSize != 8 || cfg.ScreenPadding.Top != 24 || cfg.Border.Width != 3 {
		t.Fatalf("unexpected spacing: gap=%d top=%d border=%d", cfg.GapSize, cfg.ScreenPadding.Top, cfg.Border.Width)
	}
	if cfg.Border.ActiveColor != "#ff0000" || cfg.Layout.Default != config.LayoutModeVertical || cfg.Layout.MasterWidthPercent != 60 {
		t.Fatalf("unexpected look: %+v %+v", cfg.Border, cfg.Layout)
	}
}

func TestSettings_InvalidValuesAreNotSaved(t *testing.T) {
	tests := []struct {
		name string
		edit func(*settings)
	}{
		{"master width out of range", func(s *settings) { s.fMasterWidthPct = "95" }},
		{"gap not a number", func(s *settings) { s.fGapSize = "wide" }},
		{"bad color", func(s *settings) { s.fInactiveColor = "blue" }},
		{"negative padding", func(s *settings) { s.fPaddingLeft = "-1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			s := newSettings(path, config.DefaultConfig())
			tt.edit(s)

			if err := s.save(); err == nil {
				t.Fatalf("expected save to fail")
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Fatalf("expected no file written, stat err=%v", err)
			}
		})
	}
}

func TestFieldValidators(t *testing.T) {
	if nonNegative("3") != nil || nonNegative("-3") == nil || nonNegative("x") == nil {
		t.Fatalf("nonNegative misjudged input")
	}
	if percent("50") != nil || percent("9") == nil || percent("91") == nil {
		t.Fatalf("percent misjudged input")
	}
	if color("#5e81ac") != nil || color("5e81") == nil {
		t.Fatalf("color misjudged input")
	}
}

func TestUpdate_SettingsOpenAndCancel(t *testing.T) {
	src := &fakeSource{state: testState()}
	m := loaded(t, src)
	m.configPath = filepath.Join(t.TempDir(), "config.yaml")

	m, _ = press(t, m, runes("s"))
	if m.settings == nil {
		t.Fatalf("expected settings form open, message %q", m.message)
	}
	if out := m.View(); !strings.Contains(out, "Editing Settings") {
		t.Fatalf("expected settings view, got:\n%s", out)
	}

	// Keys go to the form, not the viewer.
	m, _ = press(t, m, runes("q"))
	if m.settings == nil {
		t.Fatalf("expected form to stay open while typing")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.settings != nil || m.message != "settings unchanged" {
		t.Fatalf("expected form closed, message %q", m.message)
	}
	if len(src.calls) != 0 {
		t.Fatalf("cancel must not reach the daemon, calls %v", src.calls)
	}
}

func TestSaveSettings_WritesThenReloads(t *testing.T) {
	src := &fakeSource{state: testState()}
	m := loaded(t, src)
	path := filepath.Join(t.TempDir(), "config.yaml")
	s := newSettings(path, config.DefaultConfig())
	s.fGapSize = "12"

	msg := m.saveSettings(s)()
	if am, ok := msg.(actionMsg); !ok || am.err != nil {
		t.Fatalf("expected successful action, got %#v", msg)
	}
	if len(src.calls) != 1 || src.calls[0] != "reload" {
		t.Fatalf("calls = %v, want [reload]", src.calls)
	}
	res, err := config.LoadFromPath(path)
	if err != nil || res.Config.GapSize != 12 {
		t.Fatalf("expected saved gap 12, err=%v", err)
	}
}
