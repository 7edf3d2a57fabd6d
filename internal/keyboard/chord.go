package keyboard

import (
	"fmt"
	"strings"
)

// Modifier mask bits, matching the X protocol.
const (
	ModShift   uint16 = 1 << 0
	ModLock    uint16 = 1 << 1
	ModControl uint16 = 1 << 2
	Mod1       uint16 = 1 << 3
	Mod2       uint16 = 1 << 4
	Mod3       uint16 = 1 << 5
	Mod4       uint16 = 1 << 6
	Mod5       uint16 = 1 << 7
)

// ModMask covers every modifier bit; button state bits are outside it.
const ModMask = ModShift | ModLock | ModControl | Mod1 | Mod2 | Mod3 | Mod4 | Mod5

var modifierNames = map[string]uint16{
	"shift":   ModShift,
	"lock":    ModLock,
	"control": ModControl,
	"ctrl":    ModControl,
	"mod1":    Mod1,
	"alt":     Mod1,
	"mod2":    Mod2,
	"mod3":    Mod3,
	"mod4":    Mod4,
	"super":   Mod4,
	"mod5":    Mod5,
}

// ParseModifier returns the mask for a single modifier name.
func ParseModifier(name string) (uint16, error) {
	m, ok := modifierNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown modifier %q", name)
	}
	return m, nil
}

// ParseChord parses strings such as "Mod4-Shift-Return". The last
// component is the key symbol; the rest are modifiers.
func ParseChord(s string) (uint16, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "", fmt.Errorf("empty key chord")
	}
	parts := strings.Split(s, "-")
	key := parts[len(parts)-1]
	if key == "" {
		return 0, "", fmt.Errorf("key chord %q has no key", s)
	}
	var mods uint16
	for _, p := range parts[:len(parts)-1] {
		m, err := ParseModifier(p)
		if err != nil {
			return 0, "", fmt.Errorf("key chord %q: %w", s, err)
		}
		mods |= m
	}
	return mods, key, nil
}

// FormatChord renders a mask and key back into chord form.
func FormatChord(mods uint16, key string) string {
	var parts []string
	for _, m := range []struct {
		bit  uint16
		name string
	}{
		{Mod4, "Mod4"}, {Mod1, "Mod1"}, {ModControl, "Control"}, {ModShift, "Shift"},
		{Mod2, "Mod2"}, {Mod3, "Mod3"}, {Mod5, "Mod5"}, {ModLock, "Lock"},
	} {
		if mods&m.bit != 0 {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(append(parts, key), "-")
}
