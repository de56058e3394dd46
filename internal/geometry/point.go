// Package geometry implements the pixel-space arithmetic Randolf uses to
// describe monitors, windows and the preset layouts windows snap to.
package geometry

import "math"

// Point is a pixel coordinate. Either axis may be negative on a multi-monitor
// layout where a monitor sits left of or above the primary.
type Point struct {
	X, Y int32
}

// NewPoint returns the point (x, y).
func NewPoint(x, y int32) Point {
	return Point{X: x, Y: y}
}

// DistanceTo returns the Euclidean distance between p and other.
func (p Point) DistanceTo(other Point) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
