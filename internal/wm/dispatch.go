package wm

import (
	"fmt"

	"github.com/1broseidon/tagwm/internal/event"
	"github.com/1broseidon/tagwm/internal/model"
	"github.com/1broseidon/tagwm/internal/mouse"
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/tiling"
)

// handleKey runs the matching keybindings against the focused screen.
func (w *WindowManager) handleKey(ev platform.Event) {
	s := w.screens[w.FocusedScreen()]
	ctx := event.NewContext(s, len(w.screens), w.logger)
	var fired int
	err := withLock(s, func() error {
		var err error
		fired, err = w.keyboard.Dispatch(ctx, ev.Mods, ev.Keysym)
		return err
	})
	if err != nil {
		w.logger.Warn("keybinding failed", "key", ev.Keysym, "mods", ev.Mods, "error", err)
	}
	if fired > 0 {
		w.applyRequests(ctx.Requests())
	}
}

// handlePointer runs the mouse handler for kind on the screen the event
// belongs to. A click also makes that screen the focused one.
func (w *WindowManager) handlePointer(kind Kind, ev platform.Event) {
	var mk mouse.Kind
	switch kind {
	case KindClick:
		mk = mouse.Click
	case KindEnter:
		mk = mouse.Enter
	default:
		mk = mouse.Motion
	}

	s, _ := w.findClient(ev.Window)
	if s == nil {
		s = w.screenAt(ev.RootX, ev.RootY)
	}
	if kind == KindClick {
		w.focused.Store(int32(s.Index()))
		// The click grab is synchronous; let the click through to the client.
		w.queue(platform.Command{Op: platform.OpReplayPointer})
	}

	info := mouse.Info{
		Window: ev.Window,
		Button: ev.Button,
		RootX:  ev.RootX,
		RootY:  ev.RootY,
		Mods:   ev.Mods,
	}
	ctx := event.NewContext(s, len(w.screens), w.logger)
	var ran bool
	err := withLock(s, func() error {
		var err error
		ran, err = w.mouse.Dispatch(ctx, mk, info)
		return err
	})

	if err != nil {
		w.logger.Warn("mouse handler failed", "kind", mk.String(), "error", err)
	}
	if ran {
		w.applyRequests(ctx.Requests())
	}
}

// withLock runs fn with the screen locked, releasing it even if fn panics.
func withLock(s *model.Screen, fn func() error) error {
	s.Lock()
	defer s.Unlock()
	return fn()
}

// applyRequests carries out what a handler asked for once its screen lock
// is released.
func (w *WindowManager) applyRequests(r *event.Requests) {
	if r.Empty() {
		return
	}
	for _, id := range r.Close {
		w.requestClose(id)
	}
	for _, tr := range r.Transfers {
		if err := w.transfer(tr.Window, tr.Screen); err != nil {
			w.logger.Warn("send to screen failed", "window_id", tr.Window, "screen", tr.Screen, "error", err)
		}
	}
	for _, sp := range r.Spawns {
		if err := w.spawn(sp.Command, sp.Args...); err != nil {
			w.logger.Warn("spawn failed", "command", sp.Command, "error", err)
		}
	}
	if r.Focus != nil && *r.Focus >= 0 && *r.Focus < len(w.screens) {
		w.focused.Store(int32(*r.Focus))
	}
	if r.Quit {
		w.handle(platform.Event{Type: platform.EventShutdown})
	}
}

// requestClose queues a polite close for a managed window.
func (w *WindowManager) requestClose(id platform.WindowID) bool {
	s, c := w.findClient(id)
	if c == nil {
		return false
	}
	s.Lock()
	supportsDelete := c.SupportsDelete
	s.Unlock()
	w.queue(platform.Command{Op: platform.OpClose, Window: id, Flag: supportsDelete})
	return true
}

// transfer moves a client to the viewed tag of another screen. Both screen
// locks are taken in index order.
func (w *WindowManager) transfer(id platform.WindowID, dst int) error {
	if dst < 0 || dst >= len(w.screens) {
		return fmt.Errorf("invalid screen index %d", dst)
	}
	src, c := w.findClient(id)
	if c == nil {
		return model.ErrClientNotFound
	}
	to := w.screens[dst]
	if src == to {
		return nil
	}

	first, second := src, to
	if second.Index() < first.Index() {
		first, second = second, first
	}
	first.Lock()
	second.Lock()
	defer first.Unlock()
	defer second.Unlock()

	moved, err := src.TakeClient(id)
	if err != nil {
		return err
	}
	if moved.Floating {
		moved.Geometry = placeFloating(translate(moved.Geometry, src.Bounds(), to.Bounds()), to.WorkArea())
	}
	to.AdoptClient(moved)
	to.FocusedTag().SetFocusedClientIf(moved.ID, model.IsControlled)
	return nil
}

// translate keeps g at the same offset from the top left corner when it
// moves from one screen to another.
func translate(g, from, to tiling.Rect) tiling.Rect {
	g.X = to.X + (g.X - from.X)
	g.Y = to.Y + (g.Y - from.Y)
	return g
}
