//go:build linux

package platform

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/tagwm/internal/x11"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend drives an X11 server through an x11.Connection.
type LinuxBackend struct {
	conn   *x11.Connection
	logger *slog.Logger
	chords []x11.Chord
}

var _ Transport = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection, logger *slog.Logger) *LinuxBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinuxBackend{conn: conn, logger: logger}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay(logger *slog.Logger) (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewLinuxBackend(conn, logger), nil
}

// BecomeWM takes over window management on the root window and announces
// name through EWMH.
func (b *LinuxBackend) BecomeWM(name string) error {
	if err := b.conn.BecomeWM(); err != nil {
		return err
	}
	return b.conn.Announce(name)
}

// NextEvent blocks until the next event the window manager understands.
// X protocol errors are logged and skipped.
func (b *LinuxBackend) NextEvent() (Event, error) {
	for {
		raw, err := b.conn.WaitForEvent()
		if err != nil {
			if errors.Is(err, x11.ErrConnectionClosed) {
				return Event{}, err
			}
			b.logger.Debug("x11 error", "error", err)
			continue
		}
		ev, ok := b.translate(raw)
		if ok {
			return ev, nil
		}
	}
}

func (b *LinuxBackend) translate(raw xgb.Event) (Event, bool) {
	switch e := raw.(type) {
	case xproto.KeyPressEvent:
		return Event{
			Type:   EventKeyPress,
			Window: WindowID(e.Child),
			Mods:   b.conn.CleanMods(e.State),
			Keysym: b.conn.KeysymName(e.Detail),
			RootX:  int(e.RootX),
			RootY:  int(e.RootY),
		}, true
	case xproto.KeyReleaseEvent:
		return Event{Type: EventKeyRelease, Window: WindowID(e.Child)}, true
	case xproto.ButtonPressEvent:
		return Event{
			Type:   EventButtonPress,
			Window: b.pointerTarget(e.Event, e.Child),
			Mods:   b.conn.CleanMods(e.State),
			Button: byte(e.Detail),
			RootX:  int(e.RootX),
			RootY:  int(e.RootY),
		}, true
	case xproto.ButtonReleaseEvent:
		return Event{Type: EventButtonRelease, Window: b.pointerTarget(e.Event, e.Child), Button: byte(e.Detail)}, true
	case xproto.MotionNotifyEvent:
		return Event{
			Type:   EventMotionNotify,
			Window: b.pointerTarget(e.Event, e.Child),
			Mods:   b.conn.CleanMods(e.State),
			RootX:  int(e.RootX),
			RootY:  int(e.RootY),
		}, true
	case xproto.EnterNotifyEvent:
		if e.Mode != xproto.NotifyModeNormal {
			return Event{}, false
		}
		return Event{
			Type:   EventEnterNotify,
			Window: WindowID(e.Event),
			Mods:   b.conn.CleanMods(e.State),
			RootX:  int(e.RootX),
			RootY:  int(e.RootY),
		}, true
	case xproto.LeaveNotifyEvent:
		return Event{Type: EventLeaveNotify, Window: WindowID(e.Event)}, true
	case xproto.FocusInEvent:
		return Event{Type: EventFocusIn, Window: WindowID(e.Event)}, true
	case xproto.MapRequestEvent:
		return Event{Type: EventMapRequest, Window: WindowID(e.Window), Parent: WindowID(e.Parent)}, true
	case xproto.MapNotifyEvent:
		return Event{Type: EventMapNotify, Window: WindowID(e.Window), Parent: WindowID(e.Event)}, true
	case xproto.UnmapNotifyEvent:
		return Event{Type: EventUnmapNotify, Window: WindowID(e.Window), Parent: WindowID(e.Event)}, true
	case xproto.DestroyNotifyEvent:
		return Event{Type: EventDestroyNotify, Window: WindowID(e.Window), Parent: WindowID(e.Event)}, true
	case xproto.ConfigureRequestEvent:
		return Event{
			Type:   EventConfigureRequest,
			Window: WindowID(e.Window),
			Parent: WindowID(e.Parent),
			Configure: ConfigureRequest{
				Mask:        e.ValueMask,
				X:           int(e.X),
				Y:           int(e.Y),
				Width:       int(e.Width),
				Height:      int(e.Height),
				BorderWidth: int(e.BorderWidth),
				Sibling:     WindowID(e.Sibling),
				StackMode:   e.StackMode,
			},
		}, true
	case xproto.ConfigureNotifyEvent:
		return Event{Type: EventConfigureNotify, Window: WindowID(e.Window), Parent: WindowID(e.Event)}, true
	case xproto.PropertyNotifyEvent:
		return Event{Type: EventPropertyNotify, Window: WindowID(e.Window), Property: b.conn.AtomName(e.Atom)}, true
	case xproto.ClientMessageEvent:
		if e.Format != 32 {
			return Event{}, false
		}
		msg := ClientMessage{Name: b.conn.AtomName(e.Type)}
		copy(msg.Data[:], e.Data.Data32)
		if msg.Name == "_NET_WM_STATE" {
			for _, a := range msg.Data[1:3] {
				if a != 0 {
					msg.Atoms = append(msg.Atoms, b.conn.AtomName(xproto.Atom(a)))
				}
			}
		}
		return Event{Type: EventClientMessage, Window: WindowID(e.Window), Message: msg}, true
	case xproto.MappingNotifyEvent:
		return Event{Type: EventMappingNotify}, true
	}
	return Event{Type: EventOther}, true
}

// pointerTarget returns the top-level window a pointer event is about.
func (b *LinuxBackend) pointerTarget(event, child xproto.Window) WindowID {
	if event == b.conn.Root {
		return WindowID(child)
	}
	return WindowID(event)
}

// Displays returns all active displays.
func (b *LinuxBackend) Displays() ([]Display, error) {
	monitors, err := b.conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, Display{
			ID:   m.ID,
			Name: m.Name,
			Bounds: Rect{
				X:      m.X,
				Y:      m.Y,
				Width:  m.Width,
				Height: m.Height,
			},
		})
	}
	return displays, nil
}

// ExistingWindows lists the root window's children.
func (b *LinuxBackend) ExistingWindows() ([]WindowID, error) {
	wins, err := b.conn.TopLevelWindows()
	if err != nil {
		return nil, err
	}
	out := make([]WindowID, 0, len(wins))
	for _, w := range wins {
		out = append(out, WindowID(w))
	}
	return out, nil
}

// WindowInfo reads window metadata from the server.
func (b *LinuxBackend) WindowInfo(id WindowID) (Window, error) {
	info, err := b.conn.Window(xproto.Window(id))
	if err != nil {
		return Window{}, err
	}

	w := Window{
		ID:               id,
		AppID:            info.Class,
		Title:            info.Title,
		Bounds:           Rect{X: info.X, Y: info.Y, Width: info.Width, Height: info.Height},
		Type:             windowTypeFromEWMH(info.Types),
		TransientFor:     WindowID(info.TransientFor),
		OverrideRedirect: info.OverrideRedirect,
		Viewable:         info.Viewable,
		Fullscreen:       hasString(info.States, "_NET_WM_STATE_FULLSCREEN"),
		SupportsDelete:   hasString(info.Protocols, "WM_DELETE_WINDOW"),
	}

	switch {
	case info.StrutPartial != nil:
		sp := info.StrutPartial
		w.Strut = &StrutPartial{
			Left:         int(sp.Left),
			Right:        int(sp.Right),
			Top:          int(sp.Top),
			Bottom:       int(sp.Bottom),
			LeftStartY:   int(sp.LeftStartY),
			LeftEndY:     int(sp.LeftEndY),
			RightStartY:  int(sp.RightStartY),
			RightEndY:    int(sp.RightEndY),
			TopStartX:    int(sp.TopStartX),
			TopEndX:      int(sp.TopEndX),
			BottomStartX: int(sp.BottomStartX),
			BottomEndX:   int(sp.BottomEndX),
		}
	case info.Strut != nil:
		rootWidth, rootHeight := b.conn.RootSize()
		full := FullStrut(int(info.Strut.Left), int(info.Strut.Right), int(info.Strut.Top), int(info.Strut.Bottom), rootWidth, rootHeight)
		w.Strut = &full
	}
	return w, nil
}

// Pointer returns the pointer position in root coordinates.
func (b *LinuxBackend) Pointer() (int, int, error) {
	return b.conn.Pointer()
}

// GrabKeys replaces the key grabs on the root window.
func (b *LinuxBackend) GrabKeys(chords []KeyChord) error {
	b.chords = b.chords[:0]
	for _, c := range chords {
		b.chords = append(b.chords, x11.Chord{Mods: c.Mods, Keysym: c.Keysym})
	}
	return b.conn.GrabKeys(b.chords)
}

// RefreshKeymap reloads keycodes and lock modifiers, then re-grabs the
// chords from the last GrabKeys call.
func (b *LinuxBackend) RefreshKeymap() error {
	b.conn.RefreshKeymap()
	return b.conn.GrabKeys(b.chords)
}

// SelectPointer installs the click grab and root motion selection. Enter
// events are always selected on managed windows.
func (b *LinuxBackend) SelectPointer(sel PointerSelection) error {
	if err := b.conn.GrabClicks(sel.Click); err != nil {
		return fmt.Errorf("grab buttons: %w", err)
	}
	if err := b.conn.SetRootPointerMotion(sel.Motion); err != nil {
		return fmt.Errorf("select pointer motion: %w", err)
	}
	return nil
}

// Apply issues commands in order. A failing command does not stop the
// rest; errors are joined.
func (b *LinuxBackend) Apply(cmds []Command) error {
	var errs []error
	for _, cmd := range cmds {
		if err := b.apply(cmd); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", cmd, err))
		}
	}
	return errors.Join(errs...)
}

func (b *LinuxBackend) apply(cmd Command) error {
	c := b.conn
	win := xproto.Window(cmd.Window)
	switch cmd.Op {
	case OpMap:
		return c.Map(win)
	case OpUnmap:
		return c.Unmap(win)
	case OpConfigure:
		return c.MoveResize(win, cmd.Rect.X, cmd.Rect.Y, cmd.Rect.Width, cmd.Rect.Height, cmd.Border)
	case OpBorderColor:
		return c.SetBorderColor(win, cmd.Color)
	case OpFocus:
		return c.Focus(win)
	case OpRaise:
		return c.Raise(win)
	case OpConfigureNotify:
		return c.SendConfigureNotify(win, cmd.Rect.X, cmd.Rect.Y, cmd.Rect.Width, cmd.Rect.Height, cmd.Border)
	case OpConfigurePassthrough:
		mask, values := configureValues(cmd.Configure)
		if mask == 0 {
			return nil
		}
		return c.ConfigureAsRequested(win, mask, values)
	case OpClose:
		return c.CloseWindow(win, cmd.Flag)
	case OpReplayPointer:
		return c.AllowReplay()
	case OpSelectClientEvents:
		return c.SelectClientEvents(win)
	case OpSetFullscreenState:
		return c.SetFullscreenState(win, cmd.Flag)
	case OpPublishDesktops:
		return c.SetDesktops(cmd.Names)
	case OpPublishCurrentDesktop:
		return c.SetCurrentDesktop(cmd.Index)
	case OpPublishActiveWindow:
		return c.SetActiveWindow(win)
	case OpPublishClientList:
		wins := make([]xproto.Window, 0, len(cmd.Windows))
		for _, w := range cmd.Windows {
			wins = append(wins, xproto.Window(w))
		}
		return c.SetClientList(wins)
	case OpPublishWindowDesktop:
		return c.SetWindowDesktop(win, cmd.Index)
	}
	return fmt.Errorf("unsupported op %s", cmd.Op)
}

// Close releases the X connection. Managed windows stay mapped.
func (b *LinuxBackend) Close() error {
	b.conn.Close()
	return nil
}

// configureValues rebuilds the X value list for a ConfigureRequest, in mask
// bit order.
func configureValues(r ConfigureRequest) (uint16, []uint32) {
	var (
		mask   uint16
		values []uint32
	)
	add := func(bit uint16, v uint32) {
		if r.Mask&bit != 0 {
			mask |= bit
			values = append(values, v)
		}
	}
	add(ConfigX, uint32(int32(r.X)))
	add(ConfigY, uint32(int32(r.Y)))
	add(ConfigWidth, uint32(r.Width))
	add(ConfigHeight, uint32(r.Height))
	add(ConfigBorderWidth, uint32(r.BorderWidth))
	add(ConfigSibling, uint32(r.Sibling))
	add(ConfigStackMode, uint32(r.StackMode))
	return mask, values
}

func windowTypeFromEWMH(types []string) WindowType {
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_DOCK":
			return WindowTypeDock
		case "_NET_WM_WINDOW_TYPE_DESKTOP":
			return WindowTypeDesktop
		case "_NET_WM_WINDOW_TYPE_DIALOG":
			return WindowTypeDialog
		case "_NET_WM_WINDOW_TYPE_UTILITY", "_NET_WM_WINDOW_TYPE_TOOLBAR":
			return WindowTypeUtility
		case "_NET_WM_WINDOW_TYPE_SPLASH":
			return WindowTypeSplash
		case "_NET_WM_WINDOW_TYPE_NOTIFICATION", "_NET_WM_WINDOW_TYPE_TOOLTIP":
			return WindowTypeNotification
		case "_NET_WM_WINDOW_TYPE_MENU", "_NET_WM_WINDOW_TYPE_DROPDOWN_MENU",
			"_NET_WM_WINDOW_TYPE_POPUP_MENU", "_NET_WM_WINDOW_TYPE_COMBO":
			return WindowTypeMenu
		case "_NET_WM_WINDOW_TYPE_NORMAL":
			return WindowTypeNormal
		}
	}
	return WindowTypeNormal
}

func hasString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
