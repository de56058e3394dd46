package workspacemgr

import (
	"path/filepath"
	"testing"

	"github.com/kimgoetzke/randolf/internal/config"
	"github.com/kimgoetzke/randolf/internal/geometry"
	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/logging"
	"github.com/kimgoetzke/randolf/internal/monitors"
	"github.com/kimgoetzke/randolf/internal/persistence"
	"github.com/kimgoetzke/randolf/internal/platform"
	"github.com/kimgoetzke/randolf/internal/window"
)

func newTestManager(t *testing.T, containerCount int) (*Manager, *platform.Mock, *monitors.Monitors) {
	t.Helper()
	mon := monitors.NewMonitor(
		"DP-1", identity.MonitorHandle(1), true,
		geometry.NewRect(0, 0, 1920, 1080),
		geometry.NewRect(0, 0, 1920, 1040),
	)
	mons := monitors.NewMonitors([]monitors.Monitor{mon})

	cfg := config.Default()
	cfg.General.DesktopContainerCount = containerCount

	path := filepath.Join(t.TempDir(), "workspaces.toml")
	persist, err := persistence.Load(path, logging.NopSink{})
	if err != nil {
		t.Fatalf("persistence load: %v", err)
	}

	mgr := New(cfg, persist, logging.NopSink{})
	mgr.InitialiseWorkspaces(mons)
	api := platform.NewMock(mons)
	return mgr, api, mons
}

func TestInitialiseWorkspaces_PrimaryGetsConfiguredCount(t *testing.T) {
	mgr, _, _ := newTestManager(t, 3)
	ids := mgr.GetOrderedWorkspaceIDs()
	if len(ids) != 3 {
		t.Fatalf("expected 3 workspaces on primary monitor, got %d", len(ids))
	}
	first, ok := mgr.workspaceByID(ids[0])
	if !ok || !first.IsActive() {
		t.Fatalf("expected workspace 1 to be active")
	}
	for _, id := range ids[1:] {
		ws, _ := mgr.workspaceByID(id)
		if ws.IsActive() {
			t.Fatalf("expected only workspace 1 to be active, found %s active", id)
		}
	}
}

func TestGetOrderedWorkspaceIDs_OrdersByMonitorCenterThenIndex(t *testing.T) {
	left := monitors.NewMonitor("DP-1", identity.MonitorHandle(1), true,
		geometry.NewRect(0, 0, 1000, 1000), geometry.NewRect(0, 0, 1000, 960))
	right := monitors.NewMonitor("DP-2", identity.MonitorHandle(2), false,
		geometry.NewRect(1000, 0, 2000, 1000), geometry.NewRect(1000, 0, 2000, 960))
	mons := monitors.NewMonitors([]monitors.Monitor{left, right})

	cfg := config.Default()
	cfg.General.DesktopContainerCount = 2
	path := filepath.Join(t.TempDir(), "workspaces.toml")
	persist, err := persistence.Load(path, logging.NopSink{})
	if err != nil {
		t.Fatalf("persistence load: %v", err)
	}
	mgr := New(cfg, persist, logging.NopSink{})
	mgr.InitialiseWorkspaces(mons)

	ids := mgr.GetOrderedWorkspaceIDs()
	if len(ids) != 3 {
		t.Fatalf("expected 3 workspaces (2 on primary, 1 on secondary), got %d", len(ids))
	}
	if ids[0].MonitorID != "DP-1" || ids[0].Workspace != 1 {
		t.Fatalf("expected first id to be DP-1 workspace 1, got %+v", ids[0])
	}
	if ids[1].MonitorID != "DP-1" || ids[1].Workspace != 2 {
		t.Fatalf("expected second id to be DP-1 workspace 2, got %+v", ids[1])
	}
	if ids[2].MonitorID != "DP-2" {
		t.Fatalf("expected third id to be on DP-2, got %+v", ids[2])
	}
}

func TestSwitchWorkspace_HidesPreviousAndRestoresTarget(t *testing.T) {
	mgr, api, _ := newTestManager(t, 2)
	ids := mgr.GetOrderedWorkspaceIDs()
	ws1, _ := mgr.workspaceByID(ids[0])
	ws2, _ := mgr.workspaceByID(ids[1])

	win := window.New(1, "editor", geometry.NewRect(10, 10, 500, 500))
	api.AddWindow(win, "Editor", ws1.Monitor.Handle)

	guard := NewGuard(mgr, api)
	if err := guard.SwitchWorkspace(ws2.ID); err != nil {
		t.Fatalf("switch workspace: %v", err)
	}

	if !api.IsHidden(win.Handle) {
		t.Fatalf("expected window to be hidden after switching away from its workspace")
	}
	if !ws1.Stores(win.Handle) {
		t.Fatalf("expected ws1 to store the hidden window")
	}
	if ws1.IsActive() {
		t.Fatalf("expected ws1 to become inactive")
	}
	if !ws2.IsActive() {
		t.Fatalf("expected ws2 to become active")
	}
}

func TestSwitchWorkspace_SameWorkspaceIsNoOp(t *testing.T) {
	mgr, api, _ := newTestManager(t, 1)
	ids := mgr.GetOrderedWorkspaceIDs()
	ws1, _ := mgr.workspaceByID(ids[0])

	guard := NewGuard(mgr, api)
	if err := guard.SwitchWorkspace(ws1.ID); err != nil {
		t.Fatalf("switch workspace: %v", err)
	}
	if !ws1.IsActive() {
		t.Fatalf("expected workspace to remain active")
	}
}

func TestMoveWindowToWorkspace_StoresOnInactiveWorkspace(t *testing.T) {
	mgr, api, _ := newTestManager(t, 2)
	ids := mgr.GetOrderedWorkspaceIDs()
	ws1, _ := mgr.workspaceByID(ids[0])
	ws2, _ := mgr.workspaceByID(ids[1])

	win := window.New(1, "editor", geometry.NewRect(10, 10, 500, 500))
	api.AddWindow(win, "Editor", ws1.Monitor.Handle)
	api.SetForeground(win.Handle)

	guard := NewGuard(mgr, api)
	if err := guard.MoveWindowToWorkspace(ws2.ID); err != nil {
		t.Fatalf("move window to workspace: %v", err)
	}

	if !ws2.Stores(win.Handle) {
		t.Fatalf("expected ws2 to store the moved window")
	}
	if !api.IsHidden(win.Handle) {
		t.Fatalf("expected window to be hidden once stored on an inactive workspace")
	}
}

func TestMoveWindowToWorkspace_NoForegroundWindowIsNoOp(t *testing.T) {
	mgr, api, _ := newTestManager(t, 2)
	ids := mgr.GetOrderedWorkspaceIDs()
	ws2, _ := mgr.workspaceByID(ids[1])

	guard := NewGuard(mgr, api)
	if err := guard.MoveWindowToWorkspace(ws2.ID); err != nil {
		t.Fatalf("move window to workspace: %v", err)
	}
}
