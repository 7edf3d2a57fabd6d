package wm

import (
	"slices"

	"github.com/1broseidon/tagwm/internal/platform"
)

// windowState is what the transport was last told about one window.
type windowState struct {
	selected   bool
	mapped     bool
	configured bool
	rect       platform.Rect
	border     int
	colored    bool
	color      uint32
	fullscreen bool
	floating   bool
	desktop    int
}

// appliedState mirrors the transport so reconcile only emits differences.
type appliedState struct {
	windows map[platform.WindowID]*windowState

	focusSet bool
	focus    platform.WindowID

	desktops []string
	current  int
	active   platform.WindowID
	clients  []platform.WindowID
}

func newAppliedState() appliedState {
	return appliedState{
		windows: make(map[platform.WindowID]*windowState),
		current: -1,
	}
}

// track starts mirroring a newly managed window.
func (a *appliedState) track(id platform.WindowID, mapped bool) {
	a.windows[id] = &windowState{mapped: mapped, desktop: -1}
}

func (a *appliedState) forget(id platform.WindowID) {
	delete(a.windows, id)
	if a.focus == id {
		a.focusSet = false
	}
}

// desiredWindow is the state the model wants for one client.
type desiredWindow struct {
	id         platform.WindowID
	visible    bool
	floating   bool
	rect       platform.Rect
	border     int
	fullscreen bool
	desktop    int
}

// desired walks every screen under its lock and returns the wanted window
// states, the window that should hold input focus and the EWMH desktop view
// of the focused screen.
func (w *WindowManager) desired() ([]desiredWindow, platform.WindowID, []string, int) {
	var (
		out     []desiredWindow
		focus   platform.WindowID
		names   []string
		current int
	)
	focusedScreen := w.FocusedScreen()
	for _, s := range w.screens {
		s.Lock()
		viewed := s.ViewedIndex()
		if s.Index() == focusedScreen {
			if c, ok := s.FocusedClient(); ok && c.Controlled {
				focus = c.ID
			}
			current = viewed
			for _, t := range s.Tags() {
				names = append(names, t.Name())
			}
		}
		for _, t := range s.Tags() {
			for _, c := range t.Clients() {
				out = append(out, desiredWindow{
					id:         c.ID,
					visible:    t.Index() == viewed && c.Mapped,
					floating:   c.Floating,
					rect:       rectToPlatform(c.Geometry),
					border:     w.borderFor(c),
					fullscreen: c.Fullscreen,
					desktop:    t.Index(),
				})
			}
		}
		s.Unlock()
	}
	return out, focus, names, current
}

// reconcile flushes queued responses, then brings the transport in line
// with the model. Commands go out in one batch: event selection, unmaps,
// geometry, borders, maps, EWMH state, stacking, focus and finally the
// published root properties.
func (w *WindowManager) reconcile() {
	cmds := w.queued
	w.queued = nil

	windows, focus, names, current := w.desired()
	a := &w.applied

	var (
		selects, unmaps, configures, colors, maps, states, raises []platform.Command
		desktops                                                   []platform.Command
	)
	for _, d := range windows {
		st, ok := a.windows[d.id]
		if !ok {
			st = &windowState{mapped: true, desktop: -1}
			a.windows[d.id] = st
		}
		if !st.selected {
			selects = append(selects, platform.Command{Op: platform.OpSelectClientEvents, Window: d.id})
			st.selected = true
		}
		if !d.visible {
			if st.mapped {
				unmaps = append(unmaps, platform.Command{Op: platform.OpUnmap, Window: d.id})
				w.pendingUnmaps[d.id]++
				st.mapped = false
			}
		} else {
			if !st.configured || st.rect != d.rect || st.border != d.border {
				configures = append(configures, platform.Command{Op: platform.OpConfigure, Window: d.id, Rect: d.rect, Border: d.border})
				st.configured, st.rect, st.border = true, d.rect, d.border
			}
			color := w.look.inactive
			if d.id == focus {
				color = w.look.active
			}
			if !st.colored || st.color != color {
				colors = append(colors, platform.Command{Op: platform.OpBorderColor, Window: d.id, Color: color})
				st.colored, st.color = true, color
			}
			switch {
			case !st.mapped:
				maps = append(maps, platform.Command{Op: platform.OpMap, Window: d.id})
				st.mapped = true
				if d.floating {
					raises = append(raises, platform.Command{Op: platform.OpRaise, Window: d.id})
				}
			case d.floating && !st.floating:
				// A client leaving the tiling goes above its tiled siblings.
				raises = append(raises, platform.Command{Op: platform.OpRaise, Window: d.id})
			}
		}
		st.floating = d.floating
		if st.fullscreen != d.fullscreen {
			states = append(states, platform.Command{Op: platform.OpSetFullscreenState, Window: d.id, Flag: d.fullscreen})
			st.fullscreen = d.fullscreen
			if d.fullscreen && d.visible {
				raises = append(raises, platform.Command{Op: platform.OpRaise, Window: d.id})
			}
		}
		if st.desktop != d.desktop {
			desktops = append(desktops, platform.Command{Op: platform.OpPublishWindowDesktop, Window: d.id, Index: d.desktop})
			st.desktop = d.desktop
		}
	}

	focusChanged := !a.focusSet || a.focus != focus
	if focusChanged && focus != 0 {
		for _, d := range windows {
			if d.id == focus && (d.floating || d.fullscreen) {
				raises = append(raises, platform.Command{Op: platform.OpRaise, Window: d.id})
			}
		}
	}

	cmds = append(cmds, selects...)
	cmds = append(cmds, unmaps...)
	cmds = append(cmds, configures...)
	cmds = append(cmds, colors...)
	cmds = append(cmds, maps...)
	cmds = append(cmds, states...)
	cmds = append(cmds, raises...)
	if focusChanged {
		cmds = append(cmds, platform.Command{Op: platform.OpFocus, Window: focus})
		a.focusSet, a.focus = true, focus
	}

	if !slices.Equal(a.desktops, names) {
		cmds = append(cmds, platform.Command{Op: platform.OpPublishDesktops, Names: names})
		a.desktops = names
	}
	if a.current != current {
		cmds = append(cmds, platform.Command{Op: platform.OpPublishCurrentDesktop, Index: current})
		a.current = current
	}
	if a.active != focus {
		cmds = append(cmds, platform.Command{Op: platform.OpPublishActiveWindow, Window: focus})
		a.active = focus
	}
	if !slices.Equal(a.clients, w.order) {
		cmds = append(cmds, platform.Command{Op: platform.OpPublishClientList, Windows: slices.Clone(w.order)})
		a.clients = slices.Clone(w.order)
	}
	cmds = append(cmds, desktops...)

	if len(cmds) == 0 {
		return
	}
	if err := w.transport.Apply(cmds); err != nil {
		w.logger.Debug("transport rejected commands", "count", len(cmds), "error", err)
	}
}
