package model

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/tiling"
)

// Screen is one physical output with its tags. Exactly one tag is viewed
// at a time. Callers hold the lock while reading or mutating a screen and
// anything it owns.
type Screen struct {
	mu sync.Mutex

	index  int
	name   string
	bounds tiling.Rect

	padding platform.Padding
	struts  map[platform.WindowID]platform.Padding

	tags     []*Tag
	viewed   int
	previous int
}

// TagOptions configures the tags a screen creates.
type TagOptions struct {
	Names  []string
	Layout tiling.Layout
	Params tiling.Params
}

// NewScreen creates a screen with one tag per name. With no names a single
// tag called "1" is created.
func NewScreen(index int, name string, bounds tiling.Rect, opts TagOptions) *Screen {
	names := opts.Names
	if len(names) == 0 {
		names = []string{"1"}
	}
	s := &Screen{
		index:  index,
		name:   name,
		bounds: bounds,
		struts: make(map[platform.WindowID]platform.Padding),
	}
	for i, n := range names {
		if n == "" {
			n = strconv.Itoa(i + 1)
		}
		t := NewTag(i, n, opts.Layout, opts.Params)
		t.screen = index
		s.tags = append(s.tags, t)
	}
	s.refreshArea()
	return s
}

// Lock acquires the screen lock.
func (s *Screen) Lock() { s.mu.Lock() }

// Unlock releases the screen lock.
func (s *Screen) Unlock() { s.mu.Unlock() }

func (s *Screen) Index() int { return s.index }
func (s *Screen) Name() string { return s.name }
func (s *Screen) Bounds() tiling.Rect { return s.bounds }

// Tags returns the screen's tags in index order.
func (s *Screen) Tags() []*Tag {
	return append([]*Tag(nil), s.tags...)
}

// Tag returns the tag at index i.
func (s *Screen) Tag(i int) (*Tag, error) {
	if i < 0 || i >= len(s.tags) {
		return nil, fmt.Errorf("%w: %d (screen %d has %d tags)", ErrInvalidTag, i, s.index, len(s.tags))
	}
	return s.tags[i], nil
}

// ViewedIndex returns the index of the viewed tag.
func (s *Screen) ViewedIndex() int {
	return s.viewed
}

// FocusedTag returns the viewed tag.
func (s *Screen) FocusedTag() *Tag {
	return s.tags[s.viewed]
}

// ViewTag switches the viewed tag. Out-of-range indices leave the screen
// unchanged.
func (s *Screen) ViewTag(i int) error {
	if _, err := s.Tag(i); err != nil {
		return err
	}
	if i == s.viewed {
		return nil
	}
	s.previous = s.viewed
	s.viewed = i
	return nil
}

// ViewPreviousTag switches back to the tag viewed before the current one.
func (s *Screen) ViewPreviousTag() error {
	return s.ViewTag(s.previous)
}

// FindClient locates a managed client on this screen.
func (s *Screen) FindClient(id platform.WindowID) (*Tag, *Client, bool) {
	for _, t := range s.tags {
		if c, ok := t.Client(id); ok {
			return t, c, true
		}
	}
	return nil, nil, false
}

// FocusedClient returns the focused client of the viewed tag.
func (s *Screen) FocusedClient() (*Client, bool) {
	return s.FocusedTag().FocusedClient()
}

// MoveClient moves a client to another tag on the same screen.
func (s *Screen) MoveClient(id platform.WindowID, tag int) error {
	dst, err := s.Tag(tag)
	if err != nil {
		return err
	}
	src, c, ok := s.FindClient(id)
	if !ok {
		return fmt.Errorf("%w: 0x%x", ErrClientNotFound, id)
	}
	if src == dst {
		return nil
	}
	src.RemoveClient(id)
	dst.AddClient(c)
	return nil
}

// TakeClient removes a client from whichever tag owns it, for handing over
// to another screen.
func (s *Screen) TakeClient(id platform.WindowID) (*Client, error) {
	t, _, ok := s.FindClient(id)
	if !ok {
		return nil, fmt.Errorf("%w: 0x%x", ErrClientNotFound, id)
	}
	c, _ := t.RemoveClient(id)
	return c, nil
}

// AdoptClient adds a client to the viewed tag.
func (s *Screen) AdoptClient(c *Client) {
	s.FocusedTag().AddClient(c)
}

// SetPadding sets the configured edge padding.
func (s *Screen) SetPadding(p platform.Padding) {
	s.padding = p
	s.refreshArea()
}

// SetStrut records the space a dock window reserves on this screen.
func (s *Screen) SetStrut(id platform.WindowID, p platform.Padding) {
	if p.IsZero() {
		s.RemoveStrut(id)
		return
	}
	s.struts[id] = p
	s.refreshArea()
}

// RemoveStrut forgets a dock window. It reports whether one was known.
func (s *Screen) RemoveStrut(id platform.WindowID) bool {
	if _, ok := s.struts[id]; !ok {
		return false
	}
	delete(s.struts, id)
	s.refreshArea()
	return true
}

// WorkArea is the bounds minus configured padding and dock struts.
func (s *Screen) WorkArea() tiling.Rect {
	p := s.padding
	var reserved platform.Padding
	for _, sp := range s.struts {
		reserved = reserved.Add(sp)
	}
	return s.bounds.Inset(p.Top+reserved.Top, p.Bottom+reserved.Bottom, p.Left+reserved.Left, p.Right+reserved.Right)
}

// Configure applies a new layout and params to every tag.
func (s *Screen) Configure(layout tiling.Layout, params tiling.Params) {
	for _, t := range s.tags {
		if layout != nil {
			t.layout = layout
		}
		t.SetParams(params)
	}
}

func (s *Screen) refreshArea() {
	area := s.WorkArea()
	for _, t := range s.tags {
		t.SetArea(area, s.bounds)
	}
}
