package platform

// EventType identifies a raw transport event.
type EventType int

const (
	EventOther EventType = iota
	EventKeyPress
	EventKeyRelease
	EventButtonPress
	EventButtonRelease
	EventMotionNotify
	EventEnterNotify
	EventLeaveNotify
	EventFocusIn
	EventMapRequest
	EventMapNotify
	EventUnmapNotify
	EventDestroyNotify
	EventConfigureRequest
	EventConfigureNotify
	EventPropertyNotify
	EventClientMessage
	EventMappingNotify
	// EventShutdown is injected by the window manager itself, never by a
	// transport.
	EventShutdown
)

var eventNames = map[EventType]string{
	EventOther:            "Other",
	EventKeyPress:         "KeyPress",
	EventKeyRelease:       "KeyRelease",
	EventButtonPress:      "ButtonPress",
	EventButtonRelease:    "ButtonRelease",
	EventMotionNotify:     "MotionNotify",
	EventEnterNotify:      "EnterNotify",
	EventLeaveNotify:      "LeaveNotify",
	EventFocusIn:          "FocusIn",
	EventMapRequest:       "MapRequest",
	EventMapNotify:        "MapNotify",
	EventUnmapNotify:      "UnmapNotify",
	EventDestroyNotify:    "DestroyNotify",
	EventConfigureRequest: "ConfigureRequest",
	EventConfigureNotify:  "ConfigureNotify",
	EventPropertyNotify:   "PropertyNotify",
	EventClientMessage:    "ClientMessage",
	EventMappingNotify:    "MappingNotify",
	EventShutdown:         "Shutdown",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is a decoded transport event. Only the fields relevant to Type are set.
type Event struct {
	Type EventType
	// Window is the window the event refers to. For pointer events on the
	// root it is the child under the pointer, or zero.
	Window WindowID
	// Parent is the event window for substructure notifications.
	Parent WindowID

	// Key and pointer events. Mods has lock modifiers already removed.
	Mods   uint16
	Keysym string
	Button uint8
	RootX  int
	RootY  int

	// Synthetic is set for events sent by other clients.
	Synthetic bool

	Configure ConfigureRequest
	Message   ClientMessage
	// Property is the changed property name for PropertyNotify.
	Property string
}

// Configure value mask bits, matching the X protocol.
const (
	ConfigX uint16 = 1 << iota
	ConfigY
	ConfigWidth
	ConfigHeight
	ConfigBorderWidth
	ConfigSibling
	ConfigStackMode
)

// ConfigureRequest carries the geometry a client asked for.
type ConfigureRequest struct {
	Mask        uint16
	X           int
	Y           int
	Width       int
	Height      int
	BorderWidth int
	Sibling     WindowID
	StackMode   uint8
}

// ClientMessage carries a 32-bit format client message.
type ClientMessage struct {
	Name string
	Data [5]uint32
	// Atoms holds the names of Data[1] and Data[2] for _NET_WM_STATE.
	Atoms []string
}
