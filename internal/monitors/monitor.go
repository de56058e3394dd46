package monitors

import (
	"fmt"

	"github.com/kimgoetzke/randolf/internal/geometry"
	"github.com/kimgoetzke/randolf/internal/identity"
)

// Monitor describes one detected display output: its stable id (the RandR
// output name), its volatile handle, and its geometry. WorkArea must always
// be a subset of MonitorArea.
type Monitor struct {
	ID          string
	Handle      identity.MonitorHandle
	IsPrimary   bool
	MonitorArea geometry.Rect
	WorkArea    geometry.Rect
	Center      geometry.Point
}

// NewMonitor returns a Monitor with Center derived from monitorArea.
func NewMonitor(id string, handle identity.MonitorHandle, isPrimary bool, monitorArea, workArea geometry.Rect) Monitor {
	return Monitor{
		ID:          id,
		Handle:      handle,
		IsPrimary:   isPrimary,
		MonitorArea: monitorArea,
		WorkArea:    workArea,
		Center:      monitorArea.Center(),
	}
}

// IsInDirectionOf reports whether m lies in direction d of other, per the
// edge-adjacency rule (not nearness): the two monitor areas must not overlap
// across the relevant axis.
func (m Monitor) IsInDirectionOf(other Monitor, d Direction) bool {
	switch d {
	case Left:
		return m.MonitorArea.Right <= other.MonitorArea.Left
	case Right:
		return other.MonitorArea.Right <= m.MonitorArea.Left
	case Up:
		return m.MonitorArea.Bottom <= other.MonitorArea.Top
	case Down:
		return other.MonitorArea.Bottom <= m.MonitorArea.Top
	default:
		return false
	}
}

func (m Monitor) String() string {
	kind := "Monitor"
	if m.IsPrimary {
		kind = "Primary monitor"
	}
	return fmt.Sprintf("%s %s at (%d, %d) to (%d, %d)", kind, m.ID,
		m.MonitorArea.Left, m.MonitorArea.Top, m.MonitorArea.Right, m.MonitorArea.Bottom)
}
