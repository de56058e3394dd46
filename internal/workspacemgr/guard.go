package workspacemgr

import (
	"fmt"

	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/platform"
	"github.com/kimgoetzke/randolf/internal/window"
	"github.com/kimgoetzke/randolf/internal/workspace"
)

// Guard is a short-lived object bound to one command execution. On
// construction it refreshes every workspace's monitor handle from the
// current monitor topology (handles are reissued by the OS on every display
// reconfiguration) and resolves every persistent workspace id to its
// transient form for the duration of the command.
type Guard struct {
	mgr       *Manager
	api       platform.Api
	transient map[string]identity.TransientWorkspaceId
}

// NewGuard refreshes monitor handles across every workspace and returns a
// Guard ready to run exactly one command.
func NewGuard(mgr *Manager, api platform.Api) *Guard {
	mgr.mu.Lock()
	mons := api.AllMonitors()
	transient := make(map[string]identity.TransientWorkspaceId, len(mgr.workspaces))
	for key, ws := range mgr.workspaces {
		if mon, ok := mons.GetByID(ws.ID.MonitorID); ok {
			ws.UpdateMonitorHandle(mon)
		}
		transient[key] = identity.TransientWorkspaceId{
			MonitorID:     ws.ID.MonitorID,
			MonitorHandle: ws.Monitor.Handle,
			Workspace:     ws.ID.Workspace,
		}
	}
	mgr.mu.Unlock()

	return &Guard{mgr: mgr, api: api, transient: transient}
}

// resolve returns the transient form of id, if it was resolved at
// construction time.
func (g *Guard) resolve(id identity.PersistentWorkspaceId) (identity.TransientWorkspaceId, bool) {
	t, ok := g.transient[id.Key()]
	return t, ok
}

// SwitchWorkspace implements the 8-step switch algorithm: hide the windows
// currently occupying the target monitor (if its active workspace differs
// from the target), restore the target's own windows, focus the largest of
// them (or the monitor's centre if none), and flip which workspace is
// active on that monitor.
func (g *Guard) SwitchWorkspace(targetID identity.PersistentWorkspaceId) error {
	if _, ok := g.resolve(targetID); !ok {
		g.mgr.log.Warn("cannot resolve target workspace, ignoring switch", "workspace", targetID)
		return nil
	}
	target, ok := g.mgr.workspaceByID(targetID)
	if !ok {
		g.mgr.log.Error("target workspace not found", "workspace", targetID)
		return nil
	}

	cursor := g.api.CursorPosition()
	cursorMonitor := g.api.MonitorForPoint(cursor)
	currentWS, hasCurrent := g.mgr.activeOnMonitor(cursorMonitor)
	if hasCurrent && currentWS.ID.Key() == targetID.Key() {
		g.mgr.log.Info("cursor is already on target workspace", "workspace", targetID)
		return nil
	}

	targetMonitorActive, hasTargetMonitorActive := g.mgr.activeOnMonitor(target.Monitor.Handle)
	if !hasTargetMonitorActive && target.Monitor.Handle != cursorMonitor {
		g.mgr.log.Error("no active workspace on target monitor", "monitor", target.Monitor.ID)
		return nil
	}

	if hasTargetMonitorActive && targetMonitorActive.ID.Workspace != targetID.Workspace {
		windows := g.api.VisibleWindowsWithin(targetMonitorActive.Monitor.MonitorArea)
		targetMonitorActive.StoreAndHideWindows(windows, targetMonitorActive.Monitor.Handle, g.api)
		if err := g.mgr.persistence.AddAll(targetMonitorActive.ID, targetMonitorActive.Windows()); err != nil {
			g.mgr.log.Error("failed to persist hidden windows, rolling back", "error", err)
			g.rollback(currentWS)
			return fmt.Errorf("switch workspace: %w", err)
		}
	}

	largest, found := g.largestUnoccupiedOrStored(target)

	target.RestoreWindows(g.api)
	if err := g.mgr.persistence.RemoveWorkspace(target.ID); err != nil {
		g.mgr.log.Error("failed to persist restored workspace, rolling back", "error", err)
		g.rollback(currentWS)
		return fmt.Errorf("switch workspace: %w", err)
	}

	if found {
		g.api.SetForegroundWindow(largest.Handle)
		g.api.SetCursorPosition(largest.Center())
	} else {
		g.api.SetCursorPosition(target.Monitor.Center)
	}

	target.SetActive(true)
	if hasTargetMonitorActive && targetMonitorActive.ID.Key() != targetID.Key() {
		targetMonitorActive.SetActive(false)
	}
	return nil
}

// largestUnoccupiedOrStored picks the window to focus after a switch: the
// largest of (a) every window visible in the target's work area that isn't
// stored by any workspace, and (b) the largest window stored by the target
// workspace itself.
func (g *Guard) largestUnoccupiedOrStored(target *workspace.Workspace) (window.Window, bool) {
	var largest window.Window
	found := false
	for _, w := range g.api.VisibleWindowsWithin(target.Monitor.WorkArea) {
		if g.mgr.isStoredAnywhere(w.Handle) {
			continue
		}
		if !found || w.Rect.Area() > largest.Rect.Area() {
			largest = w
			found = true
		}
	}
	if stored, ok := target.LargestWindow(); ok {
		if !found || stored.Rect.Area() > largest.Rect.Area() {
			largest = stored
			found = true
		}
	}
	return largest, found
}

// rollback attempts to restore ws as a best-effort recovery from a failed
// switch. ws may be nil if there was no previously active workspace.
func (g *Guard) rollback(ws *workspace.Workspace) {
	if ws == nil {
		return
	}
	ws.RestoreWindows(g.api)
}

// MoveWindowToWorkspace implements the 6-step move algorithm: take the
// foreground window and move (if the target workspace is active) or store
// (if not) it onto the target workspace, updating the persisted
// "at most one workspace" membership invariant.
func (g *Guard) MoveWindowToWorkspace(targetID identity.PersistentWorkspaceId) error {
	if _, ok := g.resolve(targetID); !ok {
		g.mgr.log.Warn("cannot resolve target workspace, ignoring move", "workspace", targetID)
		return nil
	}
	target, ok := g.mgr.workspaceByID(targetID)
	if !ok {
		g.mgr.log.Error("target workspace not found", "workspace", targetID)
		return nil
	}

	h, ok := g.api.ForegroundWindow()
	if !ok {
		return nil
	}

	if currentActive, ok := g.mgr.activeOnMonitor(target.Monitor.Handle); ok && currentActive.ID.Key() == targetID.Key() {
		return nil
	}

	placement, ok := g.api.Placement(h)
	if !ok {
		return nil
	}

	win := window.New(h, g.api.WindowTitle(h), placement.NormalPosition)
	sourceMonitor := g.api.MonitorForWindow(h)

	action := target.MoveOrStore(win, sourceMonitor, g.api)

	switch action {
	case workspace.Stored:
		if err := g.mgr.persistence.RemoveAllExcluding(target.ID, []window.Window{win}); err != nil {
			return fmt.Errorf("move window to workspace: %w", err)
		}
		if !target.Stores(win.Handle) {
			break
		}
		if err := g.mgr.persistence.Add(target.ID, win.Handle); err != nil {
			return fmt.Errorf("move window to workspace: %w", err)
		}
	case workspace.Moved:
		if err := g.mgr.persistence.RemoveAllExcluding(identity.PersistentWorkspaceId{}, []window.Window{win}); err != nil {
			return fmt.Errorf("move window to workspace: %w", err)
		}
	}
	return nil
}
