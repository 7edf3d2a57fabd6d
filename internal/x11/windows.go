package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
)

// clientEventMask is selected on every managed window.
const clientEventMask = xproto.EventMaskEnterWindow |
	xproto.EventMaskPropertyChange |
	xproto.EventMaskFocusChange

// WindowInfo is what the server knows about a top-level window.
type WindowInfo struct {
	ID               xproto.Window
	Class            string
	Title            string
	Types            []string
	States           []string
	Protocols        []string
	TransientFor     xproto.Window
	OverrideRedirect bool
	Viewable         bool
	X, Y             int
	Width, Height    int
	// StrutPartial and Strut are nil unless the window reserves screen
	// edges. Strut is only read when StrutPartial is missing.
	StrutPartial     *ewmh.WmStrutPartial
	Strut            *ewmh.WmStrut
}

// Window returns the metadata of windowID.
func (c *Connection) Window(windowID xproto.Window) (WindowInfo, error) {
	conn := c.XUtil.Conn()
	info := WindowInfo{ID: windowID}

	attrs, err := xproto.GetWindowAttributes(conn, windowID).Reply()
	if err != nil {
		return info, fmt.Errorf("window 0x%x: %w", windowID, err)
	}
	info.OverrideRedirect = attrs.OverrideRedirect
	info.Viewable = attrs.MapState == xproto.MapStateViewable

	geom, err := xproto.GetGeometry(conn, xproto.Drawable(windowID)).Reply()
	if err != nil {
		return info, fmt.Errorf("window 0x%x: %w", windowID, err)
	}
	info.X, info.Y = int(geom.X), int(geom.Y)
	info.Width, info.Height = int(geom.Width)+2*int(geom.BorderWidth), int(geom.Height)+2*int(geom.BorderWidth)

	if wmClass, err := icccm.WmClassGet(c.XUtil, windowID); err == nil {
		info.Class = strings.TrimSpace(wmClass.Class)
	}
	info.Title = c.windowTitle(windowID)
	info.Types, _ = ewmh.WmWindowTypeGet(c.XUtil, windowID)
	info.States, _ = ewmh.WmStateGet(c.XUtil, windowID)
	info.Protocols, _ = icccm.WmProtocolsGet(c.XUtil, windowID)
	if t, err := icccm.WmTransientForGet(c.XUtil, windowID); err == nil {
		info.TransientFor = t
	}
	if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
		info.StrutPartial = sp
	} else if st, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
		// Some docks only set _NET_WM_STRUT (no partial ranges).
		info.Strut = st
	}
	return info, nil
}

func (c *Connection) windowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(c.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(c.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	return ""
}

// TopLevelWindows lists the children of the root window in stacking order.
func (c *Connection) TopLevelWindows() ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, err
	}
	out := make([]xproto.Window, 0, len(tree.Children))
	for _, w := range tree.Children {
		if w == c.support {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

// AtomName resolves an atom to its name.
func (c *Connection) AtomName(atom xproto.Atom) string {
	name, err := xprop.AtomName(c.XUtil, atom)
	if err != nil {
		return ""
	}
	return name
}

// Map maps a window and marks it NormalState.
func (c *Connection) Map(windowID xproto.Window) error {
	_ = icccm.WmStateSet(c.XUtil, windowID, &icccm.WmState{State: icccm.StateNormal})
	return xproto.MapWindowChecked(c.XUtil.Conn(), windowID).Check()
}

// Unmap unmaps a window and marks it IconicState.
func (c *Connection) Unmap(windowID xproto.Window) error {
	_ = icccm.WmStateSet(c.XUtil, windowID, &icccm.WmState{State: icccm.StateIconic})
	return xproto.UnmapWindowChecked(c.XUtil.Conn(), windowID).Check()
}

// MoveResize places a window so that its outer frame, border included,
// covers x, y, width, height.
func (c *Connection) MoveResize(windowID xproto.Window, x, y, width, height, border int) error {
	w, h := innerSize(width, height, border)
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth |
		xproto.ConfigWindowHeight | xproto.ConfigWindowBorderWidth)
	return xproto.ConfigureWindowChecked(c.XUtil.Conn(), windowID, mask,
		[]uint32{uint32(int32(x)), uint32(int32(y)), uint32(w), uint32(h), uint32(border)}).Check()
}

// SendConfigureNotify tells a client its geometry without changing it.
func (c *Connection) SendConfigureNotify(windowID xproto.Window, x, y, width, height, border int) error {
	w, h := innerSize(width, height, border)
	ev := xproto.ConfigureNotifyEvent{
		Event:       windowID,
		Window:      windowID,
		X:           int16(x),
		Y:           int16(y),
		Width:       uint16(w),
		Height:      uint16(h),
		BorderWidth: uint16(border),
	}
	return xproto.SendEventChecked(c.XUtil.Conn(), false, windowID,
		xproto.EventMaskStructureNotify, string(ev.Bytes())).Check()
}

// ConfigureAsRequested honours a ConfigureRequest unchanged. values must be
// in mask bit order.
func (c *Connection) ConfigureAsRequested(windowID xproto.Window, mask uint16, values []uint32) error {
	return xproto.ConfigureWindowChecked(c.XUtil.Conn(), windowID, mask, values).Check()
}

// SetBorderColor sets the border pixel.
func (c *Connection) SetBorderColor(windowID xproto.Window, pixel uint32) error {
	return xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), windowID, xproto.CwBorderPixel,
		[]uint32{pixel}).Check()
}

// Raise puts a window on top of its siblings.
func (c *Connection) Raise(windowID xproto.Window) error {
	return xproto.ConfigureWindowChecked(c.XUtil.Conn(), windowID, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove}).Check()
}

// Focus gives input focus to windowID, or back to the root when it is zero.
func (c *Connection) Focus(windowID xproto.Window) error {
	if windowID == 0 {
		return xproto.SetInputFocusChecked(c.XUtil.Conn(), xproto.InputFocusPointerRoot,
			xproto.InputFocusPointerRoot, xproto.TimeCurrentTime).Check()
	}
	return xproto.SetInputFocusChecked(c.XUtil.Conn(), xproto.InputFocusPointerRoot,
		windowID, xproto.TimeCurrentTime).Check()
}

// SelectClientEvents subscribes to enter, focus and property events on a
// managed window.
func (c *Connection) SelectClientEvents(windowID xproto.Window) error {
	return xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), windowID, xproto.CwEventMask,
		[]uint32{clientEventMask}).Check()
}

// CloseWindow requests graceful close via WM_DELETE_WINDOW when the client
// supports it and kills the connection otherwise.
func (c *Connection) CloseWindow(windowID xproto.Window, supportsDelete bool) error {
	if !supportsDelete {
		return xproto.KillClientChecked(c.XUtil.Conn(), uint32(windowID)).Check()
	}

	deleteAtom, err := xprop.Atm(c.XUtil, "WM_DELETE_WINDOW")
	if err != nil {
		return err
	}
	protocolsAtom, err := xprop.Atm(c.XUtil, "WM_PROTOCOLS")
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   protocolsAtom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(deleteAtom), xproto.TimeCurrentTime, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		windowID,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
}

func innerSize(width, height, border int) (int, int) {
	w := width - 2*border
	h := height - 2*border
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
