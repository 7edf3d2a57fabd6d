package model

import "github.com/1broseidon/tagwm/internal/tiling"

// ClientSnapshot is a read-only copy of a client.
type ClientSnapshot struct {
	Window     uint32      `json:"window"`
	Name       string      `json:"name,omitempty"`
	Class      string      `json:"class,omitempty"`
	Type       string      `json:"type"`
	Geometry   tiling.Rect `json:"geometry"`
	Floating   bool        `json:"floating"`
	Controlled bool        `json:"controlled"`
	Mapped     bool        `json:"mapped"`
	Fullscreen bool        `json:"fullscreen"`
	Focused    bool        `json:"focused"`
}

// TagSnapshot is a read-only copy of a tag.
type TagSnapshot struct {
	Index   int              `json:"index"`
	Name    string           `json:"name"`
	Layout  string           `json:"layout"`
	Viewed  bool             `json:"viewed"`
	Focused uint32           `json:"focused,omitempty"`
	Clients []ClientSnapshot `json:"clients"`
}

// ScreenSnapshot is a read-only copy of a screen.
type ScreenSnapshot struct {
	Index    int           `json:"index"`
	Name     string        `json:"name"`
	Bounds   tiling.Rect   `json:"bounds"`
	WorkArea tiling.Rect   `json:"work_area"`
	Viewed   int           `json:"viewed"`
	Tags     []TagSnapshot `json:"tags"`
}

// Snapshot copies the screen state. The caller holds the lock.
func (s *Screen) Snapshot() ScreenSnapshot {
	out := ScreenSnapshot{
		Index:    s.index,
		Name:     s.name,
		Bounds:   s.bounds,
		WorkArea: s.WorkArea(),
		Viewed:   s.viewed,
		Tags:     make([]TagSnapshot, 0, len(s.tags)),
	}
	for _, t := range s.tags {
		out.Tags = append(out.Tags, t.snapshot(t.index == s.viewed))
	}
	return out
}

func (t *Tag) snapshot(viewed bool) TagSnapshot {
	ts := TagSnapshot{
		Index:   t.index,
		Name:    t.name,
		Layout:  t.layout.Name(),
		Viewed:  viewed,
		Focused: uint32(t.focused),
		Clients: make([]ClientSnapshot, 0, len(t.order)),
	}
	for _, c := range t.Clients() {
		ts.Clients = append(ts.Clients, ClientSnapshot{
			Window:     uint32(c.ID),
			Name:       c.Name,
			Class:      c.Class,
			Type:       c.Type.String(),
			Geometry:   c.Geometry,
			Floating:   c.Floating,
			Controlled: c.Controlled,
			Mapped:     c.Mapped,
			Fullscreen: c.Fullscreen,
			Focused:    c.ID == t.focused,
		})
	}
	return ts
}
