package dragresize

import (
	"testing"
	"time"

	"github.com/kimgoetzke/randolf/internal/geometry"
	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/logging"
	"github.com/kimgoetzke/randolf/internal/monitors"
	"github.com/kimgoetzke/randolf/internal/platform"
	"github.com/kimgoetzke/randolf/internal/window"
)

type fakeHook struct {
	installed  bool
	installErr error
}

func (h *fakeHook) Install() error {
	if h.installErr != nil {
		return h.installErr
	}
	h.installed = true
	return nil
}

func (h *fakeHook) Uninstall() {
	h.installed = false
}

type fakeTimer struct{ stopped bool }

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return !t.stopped
}

// newTestEngine returns an Engine whose timer never fires on its own; tests
// fire it manually by invoking the captured callback.
func newTestEngine(t *testing.T) (*Engine, *platform.Mock, *fakeHook, func()) {
	t.Helper()
	mon := monitors.NewMonitor("DP-1", identity.MonitorHandle(1), true,
		geometry.NewRect(0, 0, 1920, 1080), geometry.NewRect(0, 0, 1920, 1040))
	mons := monitors.NewMonitors([]monitors.Monitor{mon})
	api := platform.NewMock(mons)

	hook := &fakeHook{}
	engine := NewEngine(api, hook, 150*time.Millisecond, logging.NopSink{})

	var fire func()
	engine.newTimer = func(d time.Duration, f func()) Timer {
		fire = f
		return &fakeTimer{}
	}
	return engine, api, hook, func() { fire() }
}

func TestHandleModifierPress_ArmsAndStartsTimer(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	engine.HandleModifierPress()
	if engine.Phase() != Armed {
		t.Fatalf("expected Armed, got %s", engine.Phase())
	}
}

func TestHandleModifierRelease_BeforeTimerFiresCancelsWithoutInstallingHook(t *testing.T) {
	engine, _, hook, _ := newTestEngine(t)
	engine.HandleModifierPress()
	engine.HandleModifierRelease()

	if engine.Phase() != Idle {
		t.Fatalf("expected Idle, got %s", engine.Phase())
	}
	if hook.installed {
		t.Fatalf("expected mouse hook not installed")
	}
}

func TestTimerFire_InstallsHookAndActivates(t *testing.T) {
	engine, _, hook, fire := newTestEngine(t)
	engine.HandleModifierPress()
	fire()

	if engine.Phase() != Active {
		t.Fatalf("expected Active, got %s", engine.Phase())
	}
	if !hook.installed {
		t.Fatalf("expected mouse hook installed")
	}
}

func TestHandleModifierRelease_WhileActiveUninstallsHook(t *testing.T) {
	engine, _, hook, fire := newTestEngine(t)
	engine.HandleModifierPress()
	fire()
	engine.HandleModifierRelease()

	if engine.Phase() != Idle {
		t.Fatalf("expected Idle, got %s", engine.Phase())
	}
	if hook.installed {
		t.Fatalf("expected mouse hook uninstalled")
	}
}

func TestDragWindowsSignal_FiresOnActivateAndDeactivate(t *testing.T) {
	engine, _, _, fire := newTestEngine(t)
	var seen []bool
	engine.OnDragWindowsChanged(func(active bool) { seen = append(seen, active) })

	engine.HandleModifierPress()
	fire()
	engine.HandleModifierRelease()

	if len(seen) != 2 || seen[0] != true || seen[1] != false {
		t.Fatalf("expected [true false], got %v", seen)
	}
}

func TestHandleLeftButtonDown_CapturesDragAndMovesOnMotion(t *testing.T) {
	engine, api, _, fire := newTestEngine(t)
	win := window.New(1, "editor", geometry.NewRect(100, 100, 300, 300))
	api.AddWindow(win, "Editor", identity.MonitorHandle(1))

	engine.HandleModifierPress()
	fire()

	start := geometry.NewPoint(150, 150)
	if !engine.HandleLeftButtonDown(start) {
		t.Fatalf("expected left button down to be swallowed")
	}

	engine.HandleMotion(geometry.NewPoint(170, 160))

	placement, _ := api.Placement(win.Handle)
	if placement.NormalPosition.Left != 120 || placement.NormalPosition.Top != 110 {
		t.Fatalf("unexpected rect after drag: %v", placement.NormalPosition)
	}
	if placement.NormalPosition.Width() != 200 || placement.NormalPosition.Height() != 200 {
		t.Fatalf("drag must preserve size, got %v", placement.NormalPosition)
	}
}

func TestHandleLeftButtonDown_SkipsMinimisedWindow(t *testing.T) {
	engine, api, _, fire := newTestEngine(t)
	win := window.New(1, "editor", geometry.NewRect(100, 100, 300, 300))
	api.AddWindow(win, "Editor", identity.MonitorHandle(1))
	api.SetMinimised(win.Handle, true)

	engine.HandleModifierPress()
	fire()

	if engine.HandleLeftButtonDown(geometry.NewPoint(150, 150)) {
		t.Fatalf("expected minimised window press to not be swallowed")
	}
}

func TestHandleRightButtonDown_ResizesFromNearestCorner(t *testing.T) {
	engine, api, _, fire := newTestEngine(t)
	win := window.New(1, "editor", geometry.NewRect(100, 100, 300, 300))
	api.AddWindow(win, "Editor", identity.MonitorHandle(1))

	engine.HandleModifierPress()
	fire()

	// Cursor near the bottom-right corner.
	start := geometry.NewPoint(290, 290)
	if !engine.HandleRightButtonDown(start) {
		t.Fatalf("expected right button down to be swallowed")
	}

	engine.HandleMotion(geometry.NewPoint(310, 320))

	placement, _ := api.Placement(win.Handle)
	expected := geometry.NewRect(100, 100, 320, 330)
	if placement.NormalPosition != expected {
		t.Fatalf("expected %v, got %v", expected, placement.NormalPosition)
	}
}

func TestHandleButtonUp_ClearsDragState(t *testing.T) {
	engine, api, _, fire := newTestEngine(t)
	win := window.New(1, "editor", geometry.NewRect(100, 100, 300, 300))
	api.AddWindow(win, "Editor", identity.MonitorHandle(1))

	engine.HandleModifierPress()
	fire()
	engine.HandleLeftButtonDown(geometry.NewPoint(150, 150))
	engine.HandleButtonUp()

	// Motion after button-up should have no effect.
	engine.HandleMotion(geometry.NewPoint(500, 500))
	placement, _ := api.Placement(win.Handle)
	if placement.NormalPosition.Left != 100 {
		t.Fatalf("expected rect unchanged after button up, got %v", placement.NormalPosition)
	}
}
