package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/1broseidon/tagwm/internal/keyboard"
	"gopkg.in/yaml.v3"
)

// Margins represents padding reserved on each screen edge.
type Margins struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// LayoutMode defines how tiled windows are arranged.
type LayoutMode string

const (
	LayoutModeAuto        LayoutMode = "auto"         // Dynamic grid based on count.
	LayoutModeVertical    LayoutMode = "vertical"     // Single column stack.
	LayoutModeHorizontal  LayoutMode = "horizontal"   // Single row side-by-side.
	LayoutModeMasterStack LayoutMode = "master-stack" // Master column left, stack right.
)

// Layout configures the tiling layout applied to every tag.
type Layout struct {
	Default            LayoutMode   `yaml:"default"`
	Cycle              []LayoutMode `yaml:"cycle"`
	MasterWidthPercent int          `yaml:"master_width_percent"` // Width of master column as percentage (10-90)
	MasterCount        int          `yaml:"master_count"`         // Clients in the master column (>= 1)
}

// Border configures window borders. Colors are "#rrggbb".
type Border struct {
	Width         int    `yaml:"width"`
	ActiveColor   string `yaml:"active_color"`
	InactiveColor string `yaml:"inactive_color"`
}

// Focus configures focus policy.
type Focus struct {
	NewWindows   bool `yaml:"new_windows"`   // Focus windows as they map
	FollowsClick bool `yaml:"follows_click"` // Click focuses the window under the pointer
	FollowsMouse bool `yaml:"follows_mouse"` // Entering a window focuses it
}

// Keybinding binds a chord to a built-in action.
type Keybinding struct {
	Keys        string   `yaml:"keys"`
	Action      string   `yaml:"action"`
	Args        []string `yaml:"args,omitempty"`
	Group       string   `yaml:"group,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// Config holds the application configuration.
type Config struct {
	Tags                  []string     `yaml:"tags"`
	GapSize               int          `yaml:"gap_size"`
	ScreenPadding         Margins      `yaml:"screen_padding"`
	Border                Border       `yaml:"border"`
	Layout                Layout       `yaml:"layout"`
	Focus                 Focus        `yaml:"focus"`
	ModKey                string       `yaml:"mod_key"`
	Terminal              string       `yaml:"terminal"`
	Launcher              string       `yaml:"launcher"`
	UseDefaultKeybindings bool         `yaml:"use_default_keybindings"`
	Keybindings           []Keybinding `yaml:"keybindings"`
	SweepInterval         int          `yaml:"sweep_interval"` // Seconds between liveness sweeps, 0 disables
	LogLevel              string       `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Tags:    []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		GapSize: 0,
		Border: Border{
			Width:         1,
			ActiveColor:   "#5e81ac",
			InactiveColor: "#3b4252",
		},
		Layout: Layout{
			Default:            LayoutModeMasterStack,
			Cycle:              []LayoutMode{LayoutModeMasterStack, LayoutModeAuto, LayoutModeVertical, LayoutModeHorizontal},
			MasterWidthPercent: 50,
			MasterCount:        1,
		},
		Focus: Focus{
			NewWindows:   true,
			FollowsClick: true,
		},
		ModKey:                "Mod4",
		Terminal:              "xterm",
		Launcher:              "dmenu_run",
		UseDefaultKeybindings: true,
		SweepInterval:         30,
		LogLevel:              "info",
	}
}

// EffectiveKeybindings returns the built-in bindings (when enabled) followed
// by the user's own.
func (c *Config) EffectiveKeybindings() []Keybinding {
	var out []Keybinding
	if c.UseDefaultKeybindings {
		out = append(out, DefaultKeybindings(c.ModKey, len(c.Tags))...)
	}
	return append(out, c.Keybindings...)
}

// ActiveBorderColor returns the parsed active border color.
func (c *Config) ActiveBorderColor() uint32 {
	v, _ := ParseColor(c.Border.ActiveColor)
	return v
}

// InactiveBorderColor returns the parsed inactive border color.
func (c *Config) InactiveBorderColor() uint32 {
	v, _ := ParseColor(c.Border.InactiveColor)
	return v
}

// ParseColor parses "#rrggbb" into a 24-bit pixel value.
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("color %q must be in #rrggbb form", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return uint32(v), nil
}

// SaveTo writes the configuration as YAML to path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if len(c.Tags) == 0 {
		return &ValidationError{Path: "tags", Err: fmt.Errorf("tags must not be empty")}
	}
	seen := make(map[string]bool, len(c.Tags))
	for i, name := range c.Tags {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: fmt.Sprintf("tags.%d", i), Err: fmt.Errorf("tag name must not be empty")}
		}
		if seen[name] {
			return &ValidationError{Path: fmt.Sprintf("tags.%d", i), Err: fmt.Errorf("duplicate tag name %q", name)}
		}
		seen[name] = true
	}
	if c.GapSize < 0 {
		return &ValidationError{Path: "gap_size", Err: fmt.Errorf("gap_size must be >= 0")}
	}
	if c.ScreenPadding.Top < 0 || c.ScreenPadding.Bottom < 0 || c.ScreenPadding.Left < 0 || c.ScreenPadding.Right < 0 {
		return &ValidationError{Path: "screen_padding", Err: fmt.Errorf("screen_padding values must be >= 0")}
	}
	if c.Border.Width < 0 {
		return &ValidationError{Path: "border.width", Err: fmt.Errorf("border width must be >= 0")}
	}
	if _, err := ParseColor(c.Border.ActiveColor); err != nil {
		return &ValidationError{Path: "border.active_color", Err: err}
	}
	if _, err := ParseColor(c.Border.InactiveColor); err != nil {
		return &ValidationError{Path: "border.inactive_color", Err: err}
	}
	if err := validateLayoutMode(c.Layout.Default); err != nil {
		return &ValidationError{Path: "layout.default", Err: err}
	}
	if len(c.Layout.Cycle) == 0 {
		return &ValidationError{Path: "layout.cycle", Err: fmt.Errorf("layout cycle must not be empty")}
	}
	for i, mode := range c.Layout.Cycle {
		if err := validateLayoutMode(mode); err != nil {
			return &ValidationError{Path: fmt.Sprintf("layout.cycle.%d", i), Err: err}
		}
	}
	if c.Layout.MasterWidthPercent < 10 || c.Layout.MasterWidthPercent > 90 {
		return &ValidationError{Path: "layout.master_width_percent", Err: fmt.Errorf("master_width_percent must be between 10 and 90")}
	}
	if c.Layout.MasterCount < 1 {
		return &ValidationError{Path: "layout.master_count", Err: fmt.Errorf("master_count must be >= 1")}
	}
	if _, err := keyboard.ParseModifier(c.ModKey); err != nil {
		return &ValidationError{Path: "mod_key", Err: err}
	}
	if c.SweepInterval < 0 {
		return &ValidationError{Path: "sweep_interval", Err: fmt.Errorf("sweep_interval must be >= 0")}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	for i, kb := range c.Keybindings {
		if err := validateKeybinding(kb, len(c.Tags)); err != nil {
			return &ValidationError{Path: fmt.Sprintf("keybindings.%d", i), Err: err}
		}
	}

	if warnings := c.validationWarnings(); len(warnings) > 0 {
		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}
	}

	return nil
}

func (c *Config) validationWarnings() []string {
	var warnings []string
	if !c.UseDefaultKeybindings && len(c.Keybindings) == 0 {
		warnings = append(warnings, "no keybindings configured; the window manager can only be driven over IPC")
	}
	if strings.TrimSpace(c.Terminal) == "" {
		warnings = append(warnings, "terminal is empty; the terminal action will fail")
	}
	return warnings
}

func validateLayoutMode(mode LayoutMode) error {
	switch mode {
	case LayoutModeAuto, LayoutModeVertical, LayoutModeHorizontal, LayoutModeMasterStack:
		return nil
	default:
		return fmt.Errorf("invalid mode %q", mode)
	}
}

func validateKeybinding(kb Keybinding, tagCount int) error {
	if _, _, err := keyboard.ParseChord(kb.Keys); err != nil {
		return err
	}
	rule, ok := actionRules[kb.Action]
	if !ok {
		return fmt.Errorf("unknown action %q", kb.Action)
	}
	if len(kb.Args) < rule.minArgs {
		return fmt.Errorf("action %q needs at least %d argument(s)", kb.Action, rule.minArgs)
	}
	if rule.tagArg && len(kb.Args) > 0 {
		idx, err := strconv.Atoi(kb.Args[0])
		if err != nil || idx < 0 || idx >= tagCount {
			return fmt.Errorf("action %q: tag index %q out of range [0,%d)", kb.Action, kb.Args[0], tagCount)
		}
	}
	if rule.intArg && len(kb.Args) > 0 {
		if _, err := strconv.Atoi(kb.Args[0]); err != nil {
			return fmt.Errorf("action %q: argument %q must be an integer", kb.Action, kb.Args[0])
		}
	}
	return nil
}
