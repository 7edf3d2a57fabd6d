package model

import (
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/tiling"
)

// Tag is a workspace: an ordered set of clients, an optional focused
// client and a layout. The focused id is always zero or a member of the
// sequence.
type Tag struct {
	index  int
	name   string
	screen int

	order   []platform.WindowID
	clients map[platform.WindowID]*Client
	focused platform.WindowID

	layout tiling.Layout
	params tiling.Params

	// area is the screen work area, bounds the full screen rectangle.
	area   tiling.Rect
	bounds tiling.Rect
}

// NewTag creates an empty tag.
func NewTag(index int, name string, layout tiling.Layout, params tiling.Params) *Tag {
	if layout == nil {
		layout = tiling.MasterStack{}
	}
	return &Tag{
		index:   index,
		name:    name,
		clients: make(map[platform.WindowID]*Client),
		layout:  layout,
		params:  params.Normalize(),
	}
}

func (t *Tag) Index() int { return t.index }
func (t *Tag) Name() string { return t.name }
func (t *Tag) Screen() int { return t.screen }
func (t *Tag) Len() int { return len(t.order) }
func (t *Tag) Layout() tiling.Layout { return t.layout }
func (t *Tag) Params() tiling.Params { return t.params }

// Clients returns the clients in sequence order.
func (t *Tag) Clients() []*Client {
	out := make([]*Client, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.clients[id])
	}
	return out
}

// Client looks up a member by id.
func (t *Tag) Client(id platform.WindowID) (*Client, bool) {
	c, ok := t.clients[id]
	return c, ok
}

// Contains reports membership.
func (t *Tag) Contains(id platform.WindowID) bool {
	_, ok := t.clients[id]
	return ok
}

// AddClient appends c. If nothing is focused and c is controlled, c becomes
// focused. The layout is re-applied.
func (t *Tag) AddClient(c *Client) {
	if c == nil || t.Contains(c.ID) {
		return
	}
	c.Tag = t.index
	c.Screen = t.screen
	t.order = append(t.order, c.ID)
	t.clients[c.ID] = c
	if t.focused == 0 && c.Controlled {
		t.focused = c.ID
	}
	t.ApplyLayout()
}

// RemoveClient removes the client with the given id. When it was focused,
// focus moves to the next controlled client in sequence order, or to the
// previous one when it was last, and clears when none is left.
func (t *Tag) RemoveClient(id platform.WindowID) (*Client, bool) {
	c, ok := t.clients[id]
	if !ok {
		return nil, false
	}
	pos := t.position(id)
	t.order = append(t.order[:pos], t.order[pos+1:]...)
	delete(t.clients, id)

	if t.focused == id {
		t.focused = t.successor(pos)
	}
	t.ApplyLayout()
	return c, true
}

// successor picks the client that inherits focus after removal at pos.
func (t *Tag) successor(pos int) platform.WindowID {
	for i := pos; i < len(t.order); i++ {
		if t.clients[t.order[i]].Controlled {
			return t.order[i]
		}
	}
	for i := pos - 1; i >= 0; i-- {
		if t.clients[t.order[i]].Controlled {
			return t.order[i]
		}
	}
	return 0
}

func (t *Tag) position(id platform.WindowID) int {
	for i, cid := range t.order {
		if cid == id {
			return i
		}
	}
	return -1
}

// FocusedClient returns the focused client, if any.
func (t *Tag) FocusedClient() (*Client, bool) {
	if t.focused == 0 {
		return nil, false
	}
	c, ok := t.clients[t.focused]
	return c, ok
}

// SetFocusedClient focuses id. It reports false when id is not a member.
func (t *Tag) SetFocusedClient(id platform.WindowID) bool {
	if !t.Contains(id) {
		return false
	}
	t.focused = id
	return true
}

// SetFocusedClientIf focuses id only when pred holds for that client. A nil
// pred always holds. It reports whether the focus changed.
func (t *Tag) SetFocusedClientIf(id platform.WindowID, pred func(*Client) bool) bool {
	c, ok := t.clients[id]
	if !ok || (pred != nil && !pred(c)) {
		return false
	}
	if t.focused == id {
		return false
	}
	t.focused = id
	return true
}

// ClearFocus drops the focused client.
func (t *Tag) ClearFocus() {
	t.focused = 0
}

// FocusRelative moves focus delta steps through the controlled, mapped
// clients, wrapping around.
func (t *Tag) FocusRelative(delta int) bool {
	var ring []platform.WindowID
	current := -1
	for _, id := range t.order {
		c := t.clients[id]
		if !c.Controlled || !c.Mapped {
			continue
		}
		if id == t.focused {
			current = len(ring)
		}
		ring = append(ring, id)
	}
	if len(ring) == 0 {
		return false
	}
	next := 0
	if current >= 0 {
		next = ((current+delta)%len(ring) + len(ring)) % len(ring)
	}
	if ring[next] == t.focused {
		return false
	}
	t.focused = ring[next]
	return true
}

// Swap exchanges the sequence positions of two members.
func (t *Tag) Swap(a, b platform.WindowID) bool {
	i, j := t.position(a), t.position(b)
	if i < 0 || j < 0 {
		return false
	}
	t.order[i], t.order[j] = t.order[j], t.order[i]
	t.ApplyLayout()
	return true
}

// SwapMaster moves the focused client to the head of the sequence. If it
// already is the head, it is swapped with the second client.
func (t *Tag) SwapMaster() bool {
	if t.focused == 0 || len(t.order) < 2 {
		return false
	}
	pos := t.position(t.focused)
	if pos == 0 {
		return t.Swap(t.order[0], t.order[1])
	}
	t.order = append(t.order[:pos], t.order[pos+1:]...)
	t.order = append([]platform.WindowID{t.focused}, t.order...)
	t.ApplyLayout()
	return true
}

// SetFullscreen changes a client's fullscreen state. Leaving fullscreen
// restores the geometry a floating client had before.
func (t *Tag) SetFullscreen(id platform.WindowID, on bool) bool {
	c, ok := t.clients[id]
	if !ok || c.Fullscreen == on {
		return false
	}
	c.Fullscreen = on
	if on {
		c.SavedGeometry = c.Geometry
	} else if !c.SavedGeometry.Empty() {
		c.Geometry = c.SavedGeometry
	}
	t.ApplyLayout()
	return true
}

// SetLayout replaces the layout and re-applies it.
func (t *Tag) SetLayout(l tiling.Layout) {
	if l == nil {
		return
	}
	t.layout = l
	t.ApplyLayout()
}

// SetParams replaces the layout params and re-applies the layout.
func (t *Tag) SetParams(p tiling.Params) {
	t.params = p.Normalize()
	t.ApplyLayout()
}

// AdjustMasterRatio changes the master width by delta percent, staying
// within 10 to 90.
func (t *Tag) AdjustMasterRatio(delta int) {
	p := t.params
	p.MasterRatio = min(max(p.MasterRatio+delta, 10), 90)
	t.SetParams(p)
}

// AdjustMasterCount changes the number of master clients by delta.
func (t *Tag) AdjustMasterCount(delta int) {
	p := t.params
	p.MasterCount += delta
	t.SetParams(p)
}

// SetArea updates the work area and full bounds, then re-applies the layout.
func (t *Tag) SetArea(area, bounds tiling.Rect) {
	t.area = area
	t.bounds = bounds
	t.ApplyLayout()
}

// Area returns the work area the layout fills.
func (t *Tag) Area() tiling.Rect {
	return t.area
}

// ApplyLayout recomputes geometry for tiled clients from the layout.
// Fullscreen clients cover the screen bounds and floating clients are left
// alone.
func (t *Tag) ApplyLayout() {
	tiled := make([]*Client, 0, len(t.order))
	for _, id := range t.order {
		c := t.clients[id]
		switch {
		case c.Fullscreen:
			if !t.bounds.Empty() {
				c.Geometry = t.bounds
			}
		case c.Tiled():
			tiled = append(tiled, c)
		}
	}
	if len(tiled) == 0 || t.area.Empty() {
		return
	}
	rects := t.layout.Arrange(t.area, len(tiled), t.params)
	for i, c := range tiled {
		if i < len(rects) {
			c.Geometry = rects[i]
		}
	}
}
