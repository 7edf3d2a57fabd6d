package tiling

import (
	"fmt"
	"math"
	"sort"
)

// Rect represents a window position and size
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects reports whether r and o share any area.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Inset shrinks r by the given amounts on each side, clamping to a 1x1 minimum.
func (r Rect) Inset(top, bottom, left, right int) Rect {
	out := Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  r.Width - left - right,
		Height: r.Height - top - bottom,
	}
	if out.Width < 1 {
		out.Width = 1
	}
	if out.Height < 1 {
		out.Height = 1
	}
	return out
}

// Params carries the tunables a layout may use.
type Params struct {
	// Gap is applied around the area and between neighbouring cells.
	Gap int
	// MasterCount is the number of clients in the master column.
	MasterCount int
	// MasterRatio is the master column width as a percentage of the area.
	MasterRatio int
}

// DefaultParams returns the params used when nothing is configured.
func DefaultParams() Params {
	return Params{MasterCount: 1, MasterRatio: 50}
}

// Normalize clamps params into their valid ranges. A zero MasterRatio
// means an even split.
func (p Params) Normalize() Params {
	if p.Gap < 0 {
		p.Gap = 0
	}
	if p.MasterCount < 1 {
		p.MasterCount = 1
	}
	switch {
	case p.MasterRatio <= 0:
		p.MasterRatio = 50
	case p.MasterRatio < 10:
		p.MasterRatio = 10
	}
	if p.MasterRatio > 90 {
		p.MasterRatio = 90
	}
	return p
}

// Layout arranges n clients inside area. Implementations are pure: the same
// inputs always produce the same rectangles, one per client in order.
type Layout interface {
	Name() string
	Arrange(area Rect, n int, p Params) []Rect
}

// Layout names.
const (
	LayoutMasterStack = "master-stack"
	LayoutAuto        = "auto"
	LayoutVertical    = "vertical"
	LayoutHorizontal  = "horizontal"
)

var layouts = map[string]Layout{
	LayoutMasterStack: MasterStack{},
	LayoutAuto:        Grid{},
	LayoutVertical:    Rows{},
	LayoutHorizontal:  Columns{},
}

// Lookup returns the layout registered under name.
func Lookup(name string) (Layout, error) {
	l, ok := layouts[name]
	if !ok {
		return nil, fmt.Errorf("unsupported layout mode: %q", name)
	}
	return l, nil
}

// Names returns all registered layout names, sorted.
func Names() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// span is a 1-D cell: offset and length.
type span struct {
	pos  int
	size int
}

// split divides length starting at start into n cells separated by gap.
// Integer remainders are spread so that the cells plus gaps cover the
// whole length exactly.
func split(start, length, n, gap int) []span {
	if n <= 0 {
		return nil
	}
	usable := length - (n-1)*gap
	if usable < n {
		usable = n
	}
	out := make([]span, n)
	for i := 0; i < n; i++ {
		from := i * usable / n
		to := (i + 1) * usable / n
		out[i] = span{pos: start + from + i*gap, size: to - from}
	}
	return out
}

// MasterStack places MasterCount clients in a left column and stacks the
// rest evenly in a right column. With no stack the master fills the area.
type MasterStack struct{}

func (MasterStack) Name() string { return LayoutMasterStack }

func (MasterStack) Arrange(area Rect, n int, p Params) []Rect {
	if n <= 0 {
		return nil
	}
	p = p.Normalize()
	inner := area.Inset(p.Gap, p.Gap, p.Gap, p.Gap)

	masters := p.MasterCount
	if masters > n {
		masters = n
	}
	stack := n - masters

	positions := make([]Rect, 0, n)
	if stack == 0 {
		for _, s := range split(inner.Y, inner.Height, masters, p.Gap) {
			positions = append(positions, Rect{X: inner.X, Y: s.pos, Width: inner.Width, Height: s.size})
		}
		return positions
	}

	usable := inner.Width - p.Gap
	masterWidth := usable * p.MasterRatio / 100
	if masterWidth < 1 {
		masterWidth = 1
	}
	cols := [2]span{
		{pos: inner.X, size: masterWidth},
		{pos: inner.X + masterWidth + p.Gap, size: usable - masterWidth},
	}

	for _, s := range split(inner.Y, inner.Height, masters, p.Gap) {
		positions = append(positions, Rect{X: cols[0].pos, Y: s.pos, Width: cols[0].size, Height: s.size})
	}
	for _, s := range split(inner.Y, inner.Height, stack, p.Gap) {
		positions = append(positions, Rect{X: cols[1].pos, Y: s.pos, Width: cols[1].size, Height: s.size})
	}
	return positions
}

// CalculateGrid determines the optimal grid dimensions for the given number of windows
func CalculateGrid(numWindows int) (rows, cols int) {
	if numWindows == 0 {
		return 0, 0
	}

	// Calculate columns first (ceiling of square root)
	cols = int(math.Ceil(math.Sqrt(float64(numWindows))))

	// Calculate rows needed
	rows = int(math.Ceil(float64(numWindows) / float64(cols)))

	return rows, cols
}

// Grid tiles clients in a near-square grid. A short last row expands to
// fill the width.
type Grid struct{}

func (Grid) Name() string { return LayoutAuto }

func (Grid) Arrange(area Rect, n int, p Params) []Rect {
	if n <= 0 {
		return nil
	}
	p = p.Normalize()
	inner := area.Inset(p.Gap, p.Gap, p.Gap, p.Gap)

	rows, cols := CalculateGrid(n)
	rowSpans := split(inner.Y, inner.Height, rows, p.Gap)

	positions := make([]Rect, 0, n)
	for row := 0; row < rows; row++ {
		inRow := cols
		if row == rows-1 {
			inRow = n - row*cols
		}
		for _, c := range split(inner.X, inner.Width, inRow, p.Gap) {
			positions = append(positions, Rect{X: c.pos, Y: rowSpans[row].pos, Width: c.size, Height: rowSpans[row].size})
		}
	}
	return positions
}

// Rows stacks clients top to bottom, full width.
type Rows struct{}

func (Rows) Name() string { return LayoutVertical }

func (Rows) Arrange(area Rect, n int, p Params) []Rect {
	if n <= 0 {
		return nil
	}
	p = p.Normalize()
	inner := area.Inset(p.Gap, p.Gap, p.Gap, p.Gap)
	positions := make([]Rect, 0, n)
	for _, s := range split(inner.Y, inner.Height, n, p.Gap) {
		positions = append(positions, Rect{X: inner.X, Y: s.pos, Width: inner.Width, Height: s.size})
	}
	return positions
}

// Columns places clients side by side, full height.
type Columns struct{}

func (Columns) Name() string { return LayoutHorizontal }

func (Columns) Arrange(area Rect, n int, p Params) []Rect {
	if n <= 0 {
		return nil
	}
	p = p.Normalize()
	inner := area.Inset(p.Gap, p.Gap, p.Gap, p.Gap)
	positions := make([]Rect, 0, n)
	for _, s := range split(inner.X, inner.Width, n, p.Gap) {
		positions = append(positions, Rect{X: s.pos, Y: inner.Y, Width: s.size, Height: inner.Height})
	}
	return positions
}
