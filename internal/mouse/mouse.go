// Package mouse maps pointer event kinds to handlers.
package mouse

import (
	"fmt"
	"sync"

	"github.com/1broseidon/tagwm/internal/event"
	"github.com/1broseidon/tagwm/internal/model"
	"github.com/1broseidon/tagwm/internal/platform"
)

// Kind is a pointer event kind.
type Kind int

const (
	Click Kind = iota
	Enter
	Motion
)

func (k Kind) String() string {
	switch k {
	case Click:
		return "click"
	case Enter:
		return "enter"
	case Motion:
		return "motion"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts the names produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{Click, Enter, Motion} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown mouse event kind %q", s)
}

// Info describes the pointer at the time of the event.
type Info struct {
	// Window is the top-level window under the pointer, zero for the root.
	Window platform.WindowID
	Button uint8
	RootX  int
	RootY  int
	Mods   uint16
}

// Handler reacts to a pointer event.
type Handler interface {
	HandleMouse(ctx *event.Context, info Info) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx *event.Context, info Info) error

func (f HandlerFunc) HandleMouse(ctx *event.Context, info Info) error { return f(ctx, info) }

// Mouse keeps at most one handler per kind.
type Mouse struct {
	mu       sync.RWMutex
	handlers map[Kind]Handler
}

// New returns an empty registry.
func New() *Mouse {
	return &Mouse{handlers: make(map[Kind]Handler)}
}

// On registers h for kind, replacing any earlier handler.
func (m *Mouse) On(kind Kind, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h == nil {
		delete(m.handlers, kind)
		return
	}
	m.handlers[kind] = h
}

// Has reports whether a handler is registered for kind.
func (m *Mouse) Has(kind Kind) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.handlers[kind]
	return ok
}

// Selection returns which pointer events need to be delivered.
func (m *Mouse) Selection() platform.PointerSelection {
	return platform.PointerSelection{
		Click:  m.Has(Click),
		Enter:  m.Has(Enter),
		Motion: m.Has(Motion),
	}
}

// Dispatch runs the handler for kind, if any. It reports whether one ran.
// A handler panic is returned as an error.
func (m *Mouse) Dispatch(ctx *event.Context, kind Kind, info Info) (ran bool, err error) {
	m.mu.RLock()
	h, ok := m.handlers[kind]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s handler panicked: %v", kind, r)
		}
	}()
	return true, h.HandleMouse(ctx, info)
}

// FocusOnClick focuses the clicked window when it differs from the focused
// client and is controlled.
func FocusOnClick() Handler {
	return HandlerFunc(focusUnderPointer)
}

// FocusOnEnter focuses windows as the pointer enters them.
func FocusOnEnter() Handler {
	return HandlerFunc(focusUnderPointer)
}

func focusUnderPointer(ctx *event.Context, info Info) error {
	if info.Window == 0 {
		return nil
	}
	tag := ctx.FocusedTag()
	if focused, ok := tag.FocusedClient(); ok && focused.ID == info.Window {
		return nil
	}
	tag.SetFocusedClientIf(info.Window, model.IsControlled)
	return nil
}
