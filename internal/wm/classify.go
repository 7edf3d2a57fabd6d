package wm

import "github.com/1broseidon/tagwm/internal/platform"

// Kind is the window manager's view of a transport event.
type Kind int

const (
	KindOther Kind = iota
	KindKeyPress
	KindClick
	KindEnter
	KindMotion
	KindMapRequest
	KindUnmapNotify
	KindConfigureRequest
	KindDestroyNotify
	KindClientMessage
	KindPropertyNotify
	KindMappingNotify
	KindShutdown
)

var kindNames = map[Kind]string{
	KindOther:            "other",
	KindKeyPress:         "key-press",
	KindClick:            "click",
	KindEnter:            "enter",
	KindMotion:           "motion",
	KindMapRequest:       "map-request",
	KindUnmapNotify:      "unmap-notify",
	KindConfigureRequest: "configure-request",
	KindDestroyNotify:    "destroy-notify",
	KindClientMessage:    "client-message",
	KindPropertyNotify:   "property-notify",
	KindMappingNotify:    "mapping-notify",
	KindShutdown:         "shutdown",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Classify maps a raw event to the kind that decides where it is dispatched.
func Classify(ev platform.Event) Kind {
	switch ev.Type {
	case platform.EventKeyPress:
		return KindKeyPress
	case platform.EventButtonPress:
		return KindClick
	case platform.EventEnterNotify:
		return KindEnter
	case platform.EventMotionNotify:
		return KindMotion
	case platform.EventMapRequest:
		return KindMapRequest
	case platform.EventUnmapNotify:
		return KindUnmapNotify
	case platform.EventConfigureRequest:
		return KindConfigureRequest
	case platform.EventDestroyNotify:
		return KindDestroyNotify
	case platform.EventClientMessage:
		return KindClientMessage
	case platform.EventPropertyNotify:
		return KindPropertyNotify
	case platform.EventMappingNotify:
		return KindMappingNotify
	case platform.EventShutdown:
		return KindShutdown
	}
	return KindOther
}
