package monitors

import (
	"testing"

	"github.com/kimgoetzke/randolf/internal/geometry"
	"github.com/kimgoetzke/randolf/internal/identity"
)

func newTestMonitor(handle identity.MonitorHandle, area geometry.Rect) Monitor {
	return NewMonitor("DISPLAY", handle, false, area, area)
}

func TestNewMonitorsSortsByHandle(t *testing.T) {
	m1 := newTestMonitor(2, geometry.NewRect(0, 0, 1920, 1080))
	m2 := newTestMonitor(1, geometry.NewRect(1920, 0, 3840, 1080))

	set := NewMonitors([]Monitor{m1, m2})

	all := set.All()
	if all[0].Handle != 1 || all[1].Handle != 2 {
		t.Fatalf("expected ascending handle order, got %+v", all)
	}
}

func TestGetInDirectionReturnsClosestByCenter(t *testing.T) {
	a := NewMonitor("A", 1, true, geometry.NewRect(0, 0, 1920, 1080), geometry.NewRect(0, 0, 1920, 1080))
	b := NewMonitor("B", 2, false, geometry.NewRect(1920, 0, 3840, 1080), geometry.NewRect(1920, 0, 3840, 1080))
	c := NewMonitor("C", 3, false, geometry.NewRect(1920, 1080, 3840, 2160), geometry.NewRect(1920, 1080, 3840, 2160))

	set := NewMonitors([]Monitor{a, b, c})

	got, ok := set.GetInDirection(Right, a.Handle)
	if !ok || got.ID != "B" {
		t.Fatalf("expected B, got %+v (ok=%v)", got, ok)
	}
}

func TestGetInDirectionReturnsFalseWhenNoneMatch(t *testing.T) {
	a := newTestMonitor(1, geometry.NewRect(0, 0, 1920, 1080))
	set := NewMonitors([]Monitor{a})

	_, ok := set.GetInDirection(Right, a.Handle)
	if ok {
		t.Fatalf("expected no monitor in direction")
	}
}

func TestGetByHandleReturnsFalseForUnknownHandle(t *testing.T) {
	set := NewMonitors([]Monitor{newTestMonitor(1, geometry.NewRect(0, 0, 1920, 1080))})

	_, ok := set.GetByHandle(99)
	if ok {
		t.Fatalf("expected unknown handle to not be found")
	}
}

func TestIsInDirectionOfFalseForSelf(t *testing.T) {
	a := newTestMonitor(1, geometry.NewRect(0, 0, 1920, 1080))

	if a.IsInDirectionOf(a, Left) || a.IsInDirectionOf(a, Right) || a.IsInDirectionOf(a, Up) || a.IsInDirectionOf(a, Down) {
		t.Fatalf("a monitor should never be in a direction of itself")
	}
}
