package platform

import "fmt"

// Op is a transport command kind.
type Op int

const (
	OpMap Op = iota
	OpUnmap
	// OpConfigure moves and resizes. Rect is the outer frame; the transport
	// subtracts the border.
	OpConfigure
	OpBorderColor
	OpFocus
	OpRaise
	// OpConfigureNotify tells a client its geometry without changing it.
	OpConfigureNotify
	// OpConfigurePassthrough honours a ConfigureRequest as asked.
	OpConfigurePassthrough
	OpClose
	OpReplayPointer
	OpSelectClientEvents
	OpSetFullscreenState
	OpPublishDesktops
	OpPublishCurrentDesktop
	OpPublishActiveWindow
	OpPublishClientList
	OpPublishWindowDesktop
)

var opNames = [...]string{
	OpMap:                   "map",
	OpUnmap:                 "unmap",
	OpConfigure:             "configure",
	OpBorderColor:           "border-color",
	OpFocus:                 "focus",
	OpRaise:                 "raise",
	OpConfigureNotify:       "configure-notify",
	OpConfigurePassthrough:  "configure-passthrough",
	OpClose:                 "close",
	OpReplayPointer:         "replay-pointer",
	OpSelectClientEvents:    "select-client-events",
	OpSetFullscreenState:    "set-fullscreen-state",
	OpPublishDesktops:       "publish-desktops",
	OpPublishCurrentDesktop: "publish-current-desktop",
	OpPublishActiveWindow:   "publish-active-window",
	OpPublishClientList:     "publish-client-list",
	OpPublishWindowDesktop:  "publish-window-desktop",
}

func (o Op) String() string {
	if int(o) >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Command is one transport mutation produced by reconciliation.
type Command struct {
	Op     Op
	Window WindowID
	Rect   Rect
	Border int
	Color  uint32
	// Index is a desktop index for the publish ops.
	Index int
	// Flag is the fullscreen state for OpSetFullscreenState and whether
	// WM_DELETE_WINDOW is supported for OpClose.
	Flag      bool
	Names     []string
	Windows   []WindowID
	Configure ConfigureRequest
}

func (c Command) String() string {
	switch c.Op {
	case OpConfigure, OpConfigureNotify:
		return fmt.Sprintf("%s 0x%x %dx%d+%d+%d b%d", c.Op, c.Window, c.Rect.Width, c.Rect.Height, c.Rect.X, c.Rect.Y, c.Border)
	case OpBorderColor:
		return fmt.Sprintf("%s 0x%x #%06x", c.Op, c.Window, c.Color)
	case OpPublishCurrentDesktop:
		return fmt.Sprintf("%s %d", c.Op, c.Index)
	default:
		return fmt.Sprintf("%s 0x%x", c.Op, c.Window)
	}
}
