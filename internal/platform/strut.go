package platform

// StrutPartial mirrors _NET_WM_STRUT_PARTIAL in root coordinates.
type StrutPartial struct {
	Left, Right, Top, Bottom int
	LeftStartY, LeftEndY     int
	RightStartY, RightEndY   int
	TopStartX, TopEndX       int
	BottomStartX, BottomEndX int
}

// FullStrut expands a plain _NET_WM_STRUT to span the whole root window.
func FullStrut(left, right, top, bottom, rootWidth, rootHeight int) StrutPartial {
	return StrutPartial{
		Left:       left,
		Right:      right,
		Top:        top,
		Bottom:     bottom,
		LeftEndY:   rootHeight - 1,
		RightEndY:  rootHeight - 1,
		TopEndX:    rootWidth - 1,
		BottomEndX: rootWidth - 1,
	}
}

// Padding is the space reserved on each edge of a display.
type Padding struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// Add returns the edge-wise maximum of p and o.
func (p Padding) Add(o Padding) Padding {
	return Padding{
		Top:    max(p.Top, o.Top),
		Bottom: max(p.Bottom, o.Bottom),
		Left:   max(p.Left, o.Left),
		Right:  max(p.Right, o.Right),
	}
}

// IsZero reports whether nothing is reserved.
func (p Padding) IsZero() bool {
	return p == Padding{}
}

// PaddingFor returns how much of monitor the strut covers on each edge.
func PaddingFor(monitor Rect, rootWidth, rootHeight int, sp StrutPartial) Padding {
	var acc Padding
	monX1 := monitor.X
	monY1 := monitor.Y
	monX2 := monitor.X + monitor.Width
	monY2 := monitor.Y + monitor.Height

	// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
	if sp.Top > 0 {
		isect := intersectionSize(monX1, monY1, monX2, monY2, sp.TopStartX, 0, sp.TopEndX+1, sp.Top)
		acc.Top = isect.h
	}

	// Bottom strut: y=[rootHeight-Bottom,rootHeight), x=[BottomStartX,BottomEndX]
	if sp.Bottom > 0 {
		isect := intersectionSize(monX1, monY1, monX2, monY2, sp.BottomStartX, rootHeight-sp.Bottom, sp.BottomEndX+1, rootHeight)
		acc.Bottom = isect.h
	}

	// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
	if sp.Left > 0 {
		isect := intersectionSize(monX1, monY1, monX2, monY2, 0, sp.LeftStartY, sp.Left, sp.LeftEndY+1)
		acc.Left = isect.w
	}

	// Right strut: x=[rootWidth-Right,rootWidth), y=[RightStartY,RightEndY]
	if sp.Right > 0 {
		isect := intersectionSize(monX1, monY1, monX2, monY2, rootWidth-sp.Right, sp.RightStartY, rootWidth, sp.RightEndY+1)
		acc.Right = isect.w
	}
	return acc
}

type intersection struct {
	w int
	h int
}

func intersectionSize(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 int) intersection {
	x1 := max(ax1, bx1)
	y1 := max(ay1, by1)
	x2 := min(ax2, bx2)
	y2 := min(ay2, by2)

	if x2 <= x1 || y2 <= y1 {
		return intersection{}
	}
	return intersection{w: x2 - x1, h: y2 - y1}
}
