package wm

import (
	"context"
	"fmt"
	"time"

	"github.com/1broseidon/tagwm/internal/model"
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/tiling"
)

// State is a read-only copy of everything the window manager tracks.
type State struct {
	FocusedScreen int                    `json:"focused_screen"`
	Screens       []model.ScreenSnapshot `json:"screens"`
	Uptime        time.Duration          `json:"uptime"`
}

// Snapshot copies the model. It takes each screen lock in turn and is safe
// to call from any goroutine.
func (w *WindowManager) Snapshot() State {
	st := State{
		FocusedScreen: w.FocusedScreen(),
		Screens:       make([]model.ScreenSnapshot, 0, len(w.screens)),
		Uptime:        w.Uptime(),
	}
	for _, s := range w.screens {
		s.Lock()
		st.Screens = append(st.Screens, s.Snapshot())
		s.Unlock()
	}
	return st
}

// ViewTag switches the viewed tag of a screen and makes it the focused one.
func (w *WindowManager) ViewTag(ctx context.Context, screen, tag int) error {
	return w.post(ctx, func() error {
		s, err := w.screen(screen)
		if err != nil {
			return err
		}
		s.Lock()
		defer s.Unlock()
		if err := s.ViewTag(tag); err != nil {
			return err
		}
		w.focused.Store(int32(screen))
		return nil
	})
}

// FocusWindow views the tag holding a window and focuses it.
func (w *WindowManager) FocusWindow(ctx context.Context, id platform.WindowID) error {
	return w.post(ctx, func() error {
		if _, c := w.findClient(id); c == nil {
			return fmt.Errorf("%w: 0x%x", model.ErrClientNotFound, id)
		}
		if !w.activate(id) {
			return fmt.Errorf("%w: 0x%x", model.ErrNotControlled, id)
		}
		return nil
	})
}

// CloseWindow asks a managed window to close.
func (w *WindowManager) CloseWindow(ctx context.Context, id platform.WindowID) error {
	return w.post(ctx, func() error {
		if !w.requestClose(id) {
			return fmt.Errorf("%w: 0x%x", model.ErrClientNotFound, id)
		}
		return nil
	})
}

// SetLayout changes the layout of a screen's viewed tag.
func (w *WindowManager) SetLayout(ctx context.Context, screen int, name string) error {
	layout, err := tiling.Lookup(name)
	if err != nil {
		return err
	}
	return w.post(ctx, func() error {
		s, err := w.screen(screen)
		if err != nil {
			return err
		}
		s.Lock()
		s.FocusedTag().SetLayout(layout)
		s.Unlock()
		return nil
	})
}

// Sweep drops clients whose windows have disappeared without an unmap or
// destroy notification reaching the loop. It returns how many were dropped.
func (w *WindowManager) Sweep(ctx context.Context) (int, error) {
	var n int
	err := w.post(ctx, func() error {
		n = w.sweep()
		return nil
	})
	return n, err
}

func (w *WindowManager) screen(i int) (*model.Screen, error) {
	if i < 0 || i >= len(w.screens) {
		return nil, fmt.Errorf("invalid screen index %d (have %d)", i, len(w.screens))
	}
	return w.screens[i], nil
}
