package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Chord is a modifier mask plus a key symbol name such as "Return" or "q".
type Chord struct {
	Mods   uint16
	Keysym string
}

// GrabKeys replaces every key grab on the root window with chords. Each
// chord is grabbed once per lock-modifier combination so CapsLock and
// NumLock do not get in the way.
func (c *Connection) GrabKeys(chords []Chord) error {
	xproto.UngrabKey(c.XUtil.Conn(), xproto.GrabAny, c.Root, xproto.ModMaskAny)

	var errs []error
	for _, ch := range chords {
		codes := keybind.StrToKeycodes(c.XUtil, ch.Keysym)
		if len(codes) == 0 {
			errs = append(errs, fmt.Errorf("no keycode for keysym %q", ch.Keysym))
			continue
		}
		for _, code := range codes {
			if err := keybind.GrabChecked(c.XUtil, c.Root, ch.Mods, code); err != nil {
				errs = append(errs, fmt.Errorf("grab %q: %w", ch.Keysym, err))
			}
		}
	}
	return errors.Join(errs...)
}

// KeysymName returns the unshifted key symbol for keycode. Chords name the
// base symbol ("3", not "numbersign") and carry Shift in the modifiers.
func (c *Connection) KeysymName(code xproto.Keycode) string {
	return keybind.LookupString(c.XUtil, 0, code)
}

// CleanMods strips lock modifiers and pointer button bits from an event state.
func (c *Connection) CleanMods(state uint16) uint16 {
	var lock uint16
	for _, m := range xevent.IgnoreMods {
		lock |= m
	}
	return state &^ lock & 0xff
}

// RefreshKeymap reloads the keyboard mapping after a MappingNotify.
func (c *Connection) RefreshKeymap() {
	keybind.Initialize(c.XUtil)
	configureIgnoreMods(c.XUtil)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
