package wm

import (
	"github.com/1broseidon/tagwm/internal/model"
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/tiling"
)

// adoptExisting manages windows that were already mapped at startup.
func (w *WindowManager) adoptExisting() {
	ids, err := w.transport.ExistingWindows()
	if err != nil {
		w.logger.Warn("could not list existing windows", "error", err)
		return
	}
	for _, id := range ids {
		info, err := w.transport.WindowInfo(id)
		if err != nil {
			continue
		}
		if info.OverrideRedirect || !info.Viewable {
			continue
		}
		if info.Type == platform.WindowTypeDock {
			w.addDock(info)
			continue
		}
		w.manage(info, true)
	}
}

func (w *WindowManager) handleMapRequest(ev platform.Event) {
	if s, c := w.findClient(ev.Window); c != nil {
		// A managed window asking to be mapped again, e.g. leaving iconic state.
		s.Lock()
		if t, _, ok := s.FindClient(c.ID); ok && t.Index() != s.ViewedIndex() {
			_ = s.ViewTag(t.Index())
		}
		s.Unlock()
		return
	}
	if _, ok := w.docks[ev.Window]; ok {
		w.queue(platform.Command{Op: platform.OpMap, Window: ev.Window})
		return
	}

	info, err := w.transport.WindowInfo(ev.Window)
	if err != nil {
		w.logger.Debug("map request for unknown window", "window_id", ev.Window, "error", err)
		return
	}
	switch {
	case info.OverrideRedirect:
		w.queue(platform.Command{Op: platform.OpMap, Window: info.ID})
	case info.Type == platform.WindowTypeDock:
		w.addDock(info)
		w.queue(platform.Command{Op: platform.OpMap, Window: info.ID})
	default:
		w.manage(info, false)
	}
}

// manage creates a client for info and adds it to a tag. Transients join
// their parent's tag; everything else goes to the viewed tag of the screen
// under the pointer.
func (w *WindowManager) manage(info platform.Window, mapped bool) {
	c := model.NewClient(info)
	if c.Fullscreen {
		c.SavedGeometry = c.Geometry
	}

	s, tagIndex := w.placement(info)
	s.Lock()
	t, err := s.Tag(tagIndex)
	if err != nil {
		t = s.FocusedTag()
	}
	if c.Floating {
		c.Geometry = placeFloating(c.Geometry, s.WorkArea())
	}
	t.AddClient(c)
	if w.look.focusNew {
		t.SetFocusedClientIf(c.ID, model.IsControlled)
	}
	s.Unlock()

	w.order = append(w.order, c.ID)
	w.applied.track(c.ID, mapped)
	w.logger.Debug("managing window",
		"window_id", c.ID,
		"class", c.Class,
		"type", c.Type.String(),
		"screen", s.Index(),
		"tag", t.Index(),
		"floating", c.Floating)
}

// placement picks the screen and tag for a new window.
func (w *WindowManager) placement(info platform.Window) (*model.Screen, int) {
	if info.TransientFor != 0 {
		if s, parent := w.findClient(info.TransientFor); parent != nil {
			return s, parent.Tag
		}
	}
	var s *model.Screen
	if x, y, err := w.transport.Pointer(); err == nil {
		s = w.screenAt(x, y)
	} else {
		s = w.screens[w.FocusedScreen()]
	}
	s.Lock()
	viewed := s.ViewedIndex()
	s.Unlock()
	return s, viewed
}

// placeFloating centres a floating window in area when it would otherwise
// start outside it.
func placeFloating(g, area tiling.Rect) tiling.Rect {
	if g.Width <= 0 || g.Height <= 0 {
		g.Width, g.Height = area.Width/2, area.Height/2
	}
	if area.Contains(g.X, g.Y) && area.Contains(g.X+g.Width-1, g.Y+g.Height-1) {
		return g
	}
	if g.Width > area.Width {
		g.Width = area.Width
	}
	if g.Height > area.Height {
		g.Height = area.Height
	}
	g.X = area.X + (area.Width-g.Width)/2
	g.Y = area.Y + (area.Height-g.Height)/2
	return g
}

func (w *WindowManager) handleUnmapNotify(ev platform.Event) {
	if n := w.pendingUnmaps[ev.Window]; n > 0 {
		if n == 1 {
			delete(w.pendingUnmaps, ev.Window)
		} else {
			w.pendingUnmaps[ev.Window] = n - 1
		}
		return
	}
	if w.removeDock(ev.Window) {
		return
	}
	w.unmanage(ev.Window)
}

func (w *WindowManager) handleDestroyNotify(ev platform.Event) {
	delete(w.pendingUnmaps, ev.Window)
	if w.removeDock(ev.Window) {
		return
	}
	w.unmanage(ev.Window)
}

// unmanage forgets a window. It reports whether the window was managed.
func (w *WindowManager) unmanage(id platform.WindowID) bool {
	removed := false
	for _, s := range w.screens {
		s.Lock()
		if t, _, ok := s.FindClient(id); ok {
			t.RemoveClient(id)
			removed = true
		}
		s.Unlock()
		if removed {
			break
		}
	}
	if !removed {
		return false
	}
	for i, o := range w.order {
		if o == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	w.applied.forget(id)
	w.logger.Debug("unmanaged window", "window_id", id)
	return true
}

// handleConfigureRequest honours requests from floating and unmanaged
// windows. Tiled and fullscreen clients are told their current geometry.
func (w *WindowManager) handleConfigureRequest(ev platform.Event) {
	s, c := w.findClient(ev.Window)
	if c == nil {
		w.queue(platform.Command{Op: platform.OpConfigurePassthrough, Window: ev.Window, Configure: ev.Configure})
		return
	}

	s.Lock()
	defer s.Unlock()
	if !c.Floating || c.Fullscreen {
		w.queue(platform.Command{
			Op:     platform.OpConfigureNotify,
			Window: c.ID,
			Rect:   rectToPlatform(c.Geometry),
			Border: w.borderFor(c),
		})
		return
	}

	req := ev.Configure
	border := w.borderFor(c)
	g := c.Geometry
	if req.Mask&platform.ConfigX != 0 {
		g.X = req.X
	}
	if req.Mask&platform.ConfigY != 0 {
		g.Y = req.Y
	}
	if req.Mask&platform.ConfigWidth != 0 {
		g.Width = req.Width + 2*border
	}
	if req.Mask&platform.ConfigHeight != 0 {
		g.Height = req.Height + 2*border
	}
	c.Geometry = g
}

// handleClientMessage implements the EWMH requests pagers and clients send.
func (w *WindowManager) handleClientMessage(ev platform.Event) {
	msg := ev.Message
	switch msg.Name {
	case "_NET_CURRENT_DESKTOP":
		s := w.screens[w.FocusedScreen()]
		s.Lock()
		if err := s.ViewTag(int(msg.Data[0])); err != nil {
			w.logger.Debug("ignoring desktop switch", "desktop", msg.Data[0], "error", err)
		}
		s.Unlock()
	case "_NET_ACTIVE_WINDOW":
		w.activate(ev.Window)
	case "_NET_CLOSE_WINDOW":
		w.requestClose(ev.Window)
	case "_NET_WM_DESKTOP":
		if s, c := w.findClient(ev.Window); c != nil {
			s.Lock()
			if err := s.MoveClient(c.ID, int(msg.Data[0])); err != nil {
				w.logger.Debug("ignoring desktop move", "window_id", c.ID, "error", err)
			}
			s.Unlock()
		}
	case "_NET_WM_STATE":
		if !containsString(msg.Atoms, "_NET_WM_STATE_FULLSCREEN") {
			return
		}
		s, c := w.findClient(ev.Window)
		if c == nil {
			return
		}
		s.Lock()
		t, _, _ := s.FindClient(c.ID)
		on := c.Fullscreen
		switch msg.Data[0] {
		case 0:
			on = false
		case 1:
			on = true
		case 2:
			on = !on
		}
		t.SetFullscreen(c.ID, on)
		s.Unlock()
	}
}

// activate views the tag holding id and focuses it.
func (w *WindowManager) activate(id platform.WindowID) bool {
	s, c := w.findClient(id)
	if c == nil {
		return false
	}
	s.Lock()
	defer s.Unlock()
	t, _, ok := s.FindClient(id)
	if !ok || !c.Controlled {
		return false
	}
	_ = s.ViewTag(t.Index())
	t.SetFocusedClient(id)
	w.focused.Store(int32(s.Index()))
	return true
}

func (w *WindowManager) handlePropertyNotify(ev platform.Event) {
	switch ev.Property {
	case "_NET_WM_STRUT", "_NET_WM_STRUT_PARTIAL":
		if _, ok := w.docks[ev.Window]; !ok {
			return
		}
		info, err := w.transport.WindowInfo(ev.Window)
		if err != nil {
			return
		}
		w.addDock(info)
	case "WM_NAME", "_NET_WM_NAME":
		s, c := w.findClient(ev.Window)
		if c == nil {
			return
		}
		info, err := w.transport.WindowInfo(ev.Window)
		if err != nil {
			return
		}
		s.Lock()
		c.Name = info.Title
		s.Unlock()
	}
}

// addDock records a dock's strut on every screen it overlaps.
func (w *WindowManager) addDock(info platform.Window) {
	if _, known := w.docks[info.ID]; !known {
		w.queue(platform.Command{Op: platform.OpSelectClientEvents, Window: info.ID})
	}
	w.docks[info.ID] = info.Strut
	if info.Strut == nil {
		return
	}
	rootW, rootH := w.rootSize()
	for _, s := range w.screens {
		s.Lock()
		s.SetStrut(info.ID, platform.PaddingFor(rectToPlatform(s.Bounds()), rootW, rootH, *info.Strut))
		s.Unlock()
	}
}

// removeDock drops a dock. It reports whether id was one.
func (w *WindowManager) removeDock(id platform.WindowID) bool {
	if _, ok := w.docks[id]; !ok {
		return false
	}
	delete(w.docks, id)
	for _, s := range w.screens {
		s.Lock()
		s.RemoveStrut(id)
		s.Unlock()
	}
	return true
}

// sweep drops clients whose windows no longer exist. It runs on the loop.
func (w *WindowManager) sweep() int {
	var gone []platform.WindowID
	for _, id := range w.order {
		if _, err := w.transport.WindowInfo(id); err != nil {
			gone = append(gone, id)
		}
	}
	for _, id := range gone {
		w.logger.Info("dropping vanished window", "window_id", id)
		w.unmanage(id)
	}
	return len(gone)
}

// findClient locates a managed client on any screen.
func (w *WindowManager) findClient(id platform.WindowID) (*model.Screen, *model.Client) {
	for _, s := range w.screens {
		s.Lock()
		_, c, ok := s.FindClient(id)
		s.Unlock()
		if ok {
			return s, c
		}
	}
	return nil, nil
}

// screenAt returns the screen containing the point, or the focused screen.
func (w *WindowManager) screenAt(x, y int) *model.Screen {
	for _, s := range w.screens {
		if s.Bounds().Contains(x, y) {
			return s
		}
	}
	return w.screens[w.FocusedScreen()]
}

// rootSize is the bounding box of all screens.
func (w *WindowManager) rootSize() (int, int) {
	var width, height int
	for _, s := range w.screens {
		b := s.Bounds()
		width = max(width, b.X+b.Width)
		height = max(height, b.Y+b.Height)
	}
	return width, height
}

func (w *WindowManager) borderFor(c *model.Client) int {
	if c.Fullscreen {
		return 0
	}
	return w.look.border
}

func (w *WindowManager) queue(cmds ...platform.Command) {
	w.queued = append(w.queued, cmds...)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
