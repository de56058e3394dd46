package geometry

// Sizing is the (x, y, width, height) form of a Rect, used when describing
// the five layout presets a window can snap to.
type Sizing struct {
	X, Y, Width, Height int32
}

// NewSizing returns the sizing (x, y, width, height).
func NewSizing(x, y, width, height int32) Sizing {
	return Sizing{X: x, Y: y, Width: width, Height: height}
}

// SizingFromRect converts a Rect to its (x, y, width, height) form.
func SizingFromRect(r Rect) Sizing {
	return Sizing{X: r.Left, Y: r.Top, Width: r.Width(), Height: r.Height()}
}

// Rect converts the sizing back to a Rect.
func (s Sizing) Rect() Rect {
	return NewRect(s.X, s.Y, s.X+s.Width, s.Y+s.Height)
}

// NearMaximised returns the work area inset by margin on every side.
func NearMaximised(workArea Rect, margin int32) Sizing {
	return Sizing{
		X:      workArea.Left + margin,
		Y:      workArea.Top + margin,
		Width:  workArea.Right - workArea.Left - margin*2,
		Height: workArea.Bottom - workArea.Top - margin*2,
	}
}

// LeftHalf returns the left half of the work area.
func LeftHalf(workArea Rect, margin int32) Sizing {
	return Sizing{
		X:      workArea.Left + margin,
		Y:      workArea.Top + margin,
		Width:  (workArea.Right-workArea.Left)/2 - margin - margin/2,
		Height: workArea.Bottom - workArea.Top - margin*2,
	}
}

// RightHalf returns the right half of the work area.
func RightHalf(workArea Rect, margin int32) Sizing {
	return Sizing{
		X:      workArea.Left + (workArea.Right-workArea.Left)/2 + margin/2,
		Y:      workArea.Top + margin,
		Width:  (workArea.Right-workArea.Left)/2 - margin - margin/2,
		Height: workArea.Bottom - workArea.Top - margin*2,
	}
}

// TopHalf returns the top half of the work area.
func TopHalf(workArea Rect, margin int32) Sizing {
	return Sizing{
		X:      workArea.Left + margin,
		Y:      workArea.Top + margin,
		Width:  workArea.Right - workArea.Left - margin*2,
		Height: (workArea.Bottom-workArea.Top)/2 - margin - margin/2,
	}
}

// BottomHalf returns the bottom half of the work area.
func BottomHalf(workArea Rect, margin int32) Sizing {
	return Sizing{
		X:      workArea.Left + margin,
		Y:      workArea.Top + (workArea.Bottom-workArea.Top)/2 + margin/2,
		Width:  workArea.Right - workArea.Left - margin*2,
		Height: (workArea.Bottom-workArea.Top)/2 - margin - margin/2,
	}
}

// Presets returns the five named layout presets for workArea at margin,
// keyed by name. The result is a map, so iterating it yields no fixed order.
func Presets(workArea Rect, margin int32) map[string]Sizing {
	return map[string]Sizing{
		"near_maximised": NearMaximised(workArea, margin),
		"left_half":      LeftHalf(workArea, margin),
		"right_half":     RightHalf(workArea, margin),
		"top_half":       TopHalf(workArea, margin),
		"bottom_half":    BottomHalf(workArea, margin),
	}
}

// MatchPreset returns the name of the preset at workArea/margin that equals
// current, if any.
func MatchPreset(current Sizing, workArea Rect, margin int32) (string, bool) {
	for name, preset := range Presets(workArea, margin) {
		if preset == current {
			return name, true
		}
	}
	return "", false
}

// PresetByName returns the sizing for a preset name as produced by
// MatchPreset/Presets.
func PresetByName(name string, workArea Rect, margin int32) (Sizing, bool) {
	s, ok := Presets(workArea, margin)[name]
	return s, ok
}
