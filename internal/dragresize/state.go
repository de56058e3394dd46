// Package dragresize implements the modifier-gated mouse drag/resize state
// machine: holding the MAIN modifier arms a short timer, and once it fires a
// left-button drag moves the window under the cursor while a right-button
// drag resizes it from whichever corner the cursor was closest to.
package dragresize

import (
	"github.com/kimgoetzke/randolf/internal/geometry"
	"github.com/kimgoetzke/randolf/internal/identity"
)

// Phase is the engine's position in the Idle/Armed/Active state machine.
// Dragging and Resizing are not separate Phase values: they are Active with
// drag or resize respectively non-nil, since both exits return to Active.
type Phase int

const (
	Idle Phase = iota
	Armed
	Active
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// ResizeMode names the corner of the window nearest the cursor at the
// moment the resize began, per spec.md §4.7's quadrant test.
type ResizeMode int

const (
	TopLeft ResizeMode = iota
	TopRight
	BottomLeft
	BottomRight
)

func (m ResizeMode) String() string {
	switch m {
	case TopLeft:
		return "top_left"
	case TopRight:
		return "top_right"
	case BottomLeft:
		return "bottom_left"
	case BottomRight:
		return "bottom_right"
	default:
		return "unknown"
	}
}

// resizeModeFor returns the quadrant of rect nearest cursor, per spec.md
// §4.7: left if cursor.x is closer to rect.Left than rect.Right, top if
// cursor.y is closer to rect.Top than rect.Bottom.
func resizeModeFor(cursor geometry.Point, rect geometry.Rect) ResizeMode {
	left := abs32(cursor.X-rect.Left) < abs32(cursor.X-rect.Right)
	top := abs32(cursor.Y-rect.Top) < abs32(cursor.Y-rect.Bottom)
	switch {
	case left && top:
		return TopLeft
	case !left && top:
		return TopRight
	case left && !top:
		return BottomLeft
	default:
		return BottomRight
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// dragState is captured on a left-button press and cleared on release; it
// spans exactly one press-drag-release.
type dragState struct {
	handle      identity.WindowHandle
	cursorStart geometry.Point
	windowStart geometry.Point
}

// resizeState is captured on a right-button press and cleared on release.
type resizeState struct {
	handle      identity.WindowHandle
	cursorStart geometry.Point
	startRect   geometry.Rect
	mode        ResizeMode
}

// resizedRect computes the new rect for a resize in progress, per the four
// formulas in spec.md §4.7, then clamps width to >=200 and height to >=50.
func (s resizeState) resizedRect(cursor geometry.Point) geometry.Rect {
	dx := cursor.X - s.cursorStart.X
	dy := cursor.Y - s.cursorStart.Y
	l, t, r, b := s.startRect.Left, s.startRect.Top, s.startRect.Right, s.startRect.Bottom

	switch s.mode {
	case TopLeft:
		l, t = l+dx, t+dy
	case TopRight:
		t, r = t+dy, r+dx
	case BottomLeft:
		l, b = l+dx, b+dy
	case BottomRight:
		r, b = r+dx, b+dy
	}

	if r-l < 200 {
		if s.mode == TopLeft || s.mode == BottomLeft {
			l = r - 200
		} else {
			r = l + 200
		}
	}
	if b-t < 50 {
		if s.mode == TopLeft || s.mode == TopRight {
			t = b - 50
		} else {
			b = t + 50
		}
	}
	return geometry.NewRect(l, t, r, b)
}
