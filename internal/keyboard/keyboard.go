// Package keyboard maps key chords to handlers.
package keyboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/tagwm/internal/event"
	"github.com/1broseidon/tagwm/internal/platform"
)

// Handler reacts to a key press.
type Handler interface {
	Handle(ctx *event.Context) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx *event.Context) error

func (f HandlerFunc) Handle(ctx *event.Context) error { return f(ctx) }

// Keybinding binds a chord to a handler. It is not modified once registered.
type Keybinding struct {
	Mods        uint16
	Key         string
	Group       string
	Description string
	Handler     Handler
}

// Matches reports whether the binding fires for the given cleaned mask and
// key symbol. Modifiers must match exactly; the key compares case-insensitively.
func (k Keybinding) Matches(mods uint16, keysym string) bool {
	return k.Mods == mods&ModMask && strings.EqualFold(k.Key, keysym)
}

func (k Keybinding) String() string {
	return FormatChord(k.Mods, k.Key)
}

// Builder assembles a Keybinding.
type Builder struct {
	kb Keybinding
}

// Bind starts a binding for mods and key.
func Bind(mods uint16, key string) *Builder {
	return &Builder{kb: Keybinding{Mods: mods, Key: key}}
}

func (b *Builder) Group(g string) *Builder {
	b.kb.Group = g
	return b
}

func (b *Builder) Description(d string) *Builder {
	b.kb.Description = d
	return b
}

// Do finishes the binding with handler h.
func (b *Builder) Do(h Handler) Keybinding {
	b.kb.Handler = h
	return b.kb
}

// DoFunc is Do for plain functions.
func (b *Builder) DoFunc(f func(ctx *event.Context) error) Keybinding {
	return b.Do(HandlerFunc(f))
}

// Keyboard holds the registered bindings. Bindings are appended at
// configuration time and only read afterwards.
type Keyboard struct {
	bindings []Keybinding
}

// New returns an empty keyboard registry.
func New() *Keyboard {
	return &Keyboard{}
}

// AppendKeybindings registers bindings in order. Duplicate chords are kept
// and all fire.
func (k *Keyboard) AppendKeybindings(kbs ...Keybinding) {
	k.bindings = append(k.bindings, kbs...)
}

// Bindings returns a copy of the registered bindings.
func (k *Keyboard) Bindings() []Keybinding {
	return append([]Keybinding(nil), k.bindings...)
}

// Chords returns the distinct chords to grab.
func (k *Keyboard) Chords() []platform.KeyChord {
	seen := make(map[string]bool)
	var out []platform.KeyChord
	for _, kb := range k.bindings {
		key := fmt.Sprintf("%d/%s", kb.Mods, strings.ToLower(kb.Key))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, platform.KeyChord{Mods: kb.Mods, Keysym: kb.Key})
	}
	return out
}

// Dispatch runs every binding matching the chord, in registration order.
// A failing or panicking handler does not stop the ones after it; their
// errors are joined. It returns the number of bindings that fired.
func (k *Keyboard) Dispatch(ctx *event.Context, mods uint16, keysym string) (int, error) {
	var (
		fired int
		errs  []error
	)
	for _, kb := range k.bindings {
		if !kb.Matches(mods, keysym) || kb.Handler == nil {
			continue
		}
		fired++
		if err := runHandler(kb.Handler, ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", kb, err))
		}
	}
	return fired, errors.Join(errs...)
}

// runHandler turns a handler panic into an error.
func runHandler(h Handler, ctx *event.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.Handle(ctx)
}
