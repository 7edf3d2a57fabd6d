package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/tagwm/internal/keyboard"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if len(cfg.Tags) != 9 || cfg.Tags[0] != "1" {
		t.Fatalf("expected tags 1..9, got %v", cfg.Tags)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Layout.Default != LayoutModeMasterStack {
		t.Fatalf("expected default layout master-stack, got %q", res.Config.Layout.Default)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files loaded, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(writeConfig(t, "# empty\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.ModKey != "Mod4" {
		t.Fatalf("expected mod_key Mod4, got %q", res.Config.ModKey)
	}
}

func TestLoadFromPath_OverridesKeepOtherDefaults(t *testing.T) {
	body := strings.Join([]string{
		"tags: [web, code, chat]",
		"gap_size: 6",
		"border:",
		"  width: 2",
		"layout:",
		"  default: auto",
		"keybindings:",
		"  - keys: Mod4-b",
		"    action: spawn",
		"    args: [firefox]",
		"",
	}, "\n")

	res, err := LoadFromPath(writeConfig(t, body))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if len(cfg.Tags) != 3 || cfg.Tags[2] != "chat" {
		t.Fatalf("unexpected tags %v", cfg.Tags)
	}
	if cfg.GapSize != 6 || cfg.Border.Width != 2 {
		t.Fatalf("unexpected gap/border: %d/%d", cfg.GapSize, cfg.Border.Width)
	}
	if cfg.Border.ActiveColor != "#5e81ac" {
		t.Fatalf("expected default active color kept, got %q", cfg.Border.ActiveColor)
	}
	if cfg.Layout.Default != LayoutModeAuto || cfg.Layout.MasterWidthPercent != 50 {
		t.Fatalf("unexpected layout %+v", cfg.Layout)
	}

	kbs := cfg.EffectiveKeybindings()
	last := kbs[len(kbs)-1]
	if last.Keys != "Mod4-b" || last.Action != ActionSpawn {
		t.Fatalf("expected user binding last, got %+v", last)
	}
}

func TestLoadFromPath_UnknownFieldRejected(t *testing.T) {
	if _, err := LoadFromPath(writeConfig(t, "gaps: 3\n")); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestLoadFromPath_ValidationErrorCarriesSource(t *testing.T) {
	path := writeConfig(t, "gap_size: 0\nlog_level: loud\n")
	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "log_level" || verr.Source.Line != 2 {
		t.Fatalf("expected log_level at line 2, got %s line %d", verr.Path, verr.Source.Line)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := map[string]func(*Config){
		"tags":                        func(c *Config) { c.Tags = nil },
		"tags.1":                      func(c *Config) { c.Tags = []string{"a", "a"} },
		"gap_size":                    func(c *Config) { c.GapSize = -1 },
		"border.active_color":         func(c *Config) { c.Border.ActiveColor = "blue" },
		"layout.default":              func(c *Config) { c.Layout.Default = "spiral" },
		"layout.master_width_percent": func(c *Config) { c.Layout.MasterWidthPercent = 95 },
		"mod_key":                     func(c *Config) { c.ModKey = "Hyper" },
		"keybindings.0": func(c *Config) {
			c.Keybindings = []Keybinding{{Keys: "Mod4-x", Action: ActionViewTag, Args: []string{"12"}}}
		},
	}
	for path, mutate := range cases {
		cfg := DefaultConfig()
		mutate(cfg)
		err := cfg.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Path != path {
			t.Fatalf("%s: expected validation error at %s, got %v", path, path, err)
		}
	}
}

func TestDefaultKeybindings_ParseAndValidate(t *testing.T) {
	for _, kb := range DefaultKeybindings("Mod4", 9) {
		if _, _, err := keyboard.ParseChord(kb.Keys); err != nil {
			t.Fatalf("%s: %v", kb.Keys, err)
		}
		if err := validateKeybinding(kb, 9); err != nil {
			t.Fatalf("%s: %v", kb.Keys, err)
		}
	}
}

func TestParseColor(t *testing.T) {
	v, err := ParseColor("#ff8000")
	if err != nil || v != 0xff8000 {
		t.Fatalf("expected 0xff8000, got %x (%v)", v, err)
	}
	if _, err := ParseColor("#fff"); err == nil {
		t.Fatalf("expected short color to be rejected")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.GapSize = 4
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.GapSize != 4 {
		t.Fatalf("expected gap 4, got %d", res.Config.GapSize)
	}
}

func TestDefaultConfigPath_HonoursXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/tmp/xdg/tagwm/config.yaml" {
		t.Fatalf("unexpected path %q", path)
	}
}
