package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical output.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
}

// WindowType is the EWMH window type, reduced to what placement cares about.
type WindowType int

const (
	WindowTypeNormal WindowType = iota
	WindowTypeDialog
	WindowTypeUtility
	WindowTypeDock
	WindowTypeDesktop
	WindowTypeSplash
	WindowTypeNotification
	WindowTypeMenu
)

func (t WindowType) String() string {
	switch t {
	case WindowTypeDialog:
		return "dialog"
	case WindowTypeUtility:
		return "utility"
	case WindowTypeDock:
		return "dock"
	case WindowTypeDesktop:
		return "desktop"
	case WindowTypeSplash:
		return "splash"
	case WindowTypeNotification:
		return "notification"
	case WindowTypeMenu:
		return "menu"
	default:
		return "normal"
	}
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID               WindowID
	AppID            string
	Title            string
	Bounds           Rect
	Type             WindowType
	TransientFor     WindowID
	OverrideRedirect bool
	Viewable         bool
	Fullscreen       bool
	SupportsDelete   bool
	// Strut is set for windows reserving screen edges, usually docks.
	Strut *StrutPartial
}

// Transport is the display-server connection the window manager drives.
// NextEvent is only ever called from one goroutine; the remaining methods
// are called from the event loop.
type Transport interface {
	// NextEvent blocks until an event arrives. It returns an error when the
	// connection is lost.
	NextEvent() (Event, error)
	Displays() ([]Display, error)
	// ExistingWindows lists top-level windows present before startup.
	ExistingWindows() ([]WindowID, error)
	WindowInfo(id WindowID) (Window, error)
	Pointer() (x, y int, err error)
	// GrabKeys grabs the given chords on the root window.
	GrabKeys(chords []KeyChord) error
	// RefreshKeymap reloads the keyboard mapping after a MappingNotify and
	// grabs the current chords again.
	RefreshKeymap() error
	// SelectPointer enables the pointer events the caller wants delivered.
	SelectPointer(sel PointerSelection) error
	// Apply issues commands in order.
	Apply(cmds []Command) error
	Close() error
}

// KeyChord is a modifier mask plus a key symbol name.
type KeyChord struct {
	Mods   uint16
	Keysym string
}

// PointerSelection says which pointer events are wanted.
type PointerSelection struct {
	Click  bool
	Enter  bool
	Motion bool
}
