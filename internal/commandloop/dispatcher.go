package commandloop

import (
	"github.com/kimgoetzke/randolf/internal/geometry"
	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/logging"
	"github.com/kimgoetzke/randolf/internal/monitors"
	"github.com/kimgoetzke/randolf/internal/platform"
	"github.com/kimgoetzke/randolf/internal/window"
	"github.com/kimgoetzke/randolf/internal/workspacemgr"
)

// presetForDirection maps a MoveWindow chord's direction to the half-screen
// layout preset it snaps the foreground window to.
var presetForDirection = map[monitors.Direction]string{
	monitors.Left:  "left_half",
	monitors.Right: "right_half",
	monitors.Up:    "top_half",
	monitors.Down:  "bottom_half",
}

// Launcher spawns the application configured for an OpenApplication
// command, and the two menu-originated process-lifecycle actions.
type Launcher interface {
	Launch(path string, asAdmin bool) error
	RestartRandolf() error
	OpenRandolfFolder() error
}

// Engine implements Handler: it is the single place that turns a Command
// into PlatformApi calls and WorkspaceManager/Guard operations. A fresh
// WorkspaceGuard is constructed for every command that touches workspace
// state, per spec.md §4.8.
type Engine struct {
	manager  *workspacemgr.Manager
	api      platform.Api
	launcher Launcher
	margin   int32
	log      logging.Sink
	stop     func()
}

// NewEngine returns an Engine. stop is called once, when an Exit command is
// handled, to begin shutdown.
func NewEngine(manager *workspacemgr.Manager, api platform.Api, launcher Launcher, margin int32, log logging.Sink, stop func()) *Engine {
	return &Engine{manager: manager, api: api, launcher: launcher, margin: margin, log: log, stop: stop}
}

// Handle dispatches cmd to the appropriate operation.
func (e *Engine) Handle(cmd Command) {
	switch cmd.Kind {
	case CloseWindow:
		e.closeWindow()
	case NearMaximiseWindow:
		e.nearMaximiseWindow()
	case MinimiseWindow:
		e.minimiseWindow()
	case MoveWindow:
		e.moveWindow(cmd.Direction)
	case MoveCursor:
		e.moveCursor(cmd.Direction)
	case SwitchWorkspace:
		e.switchWorkspace(cmd.Workspace)
	case MoveWindowToWorkspace:
		e.moveWindowToWorkspace(cmd.Workspace)
	case OpenApplication:
		if err := e.launcher.Launch(cmd.Path, cmd.AsAdmin); err != nil {
			e.log.Warn("failed to launch application", "path", cmd.Path, "error", err)
		}
	case OpenRandolfFolder:
		if err := e.launcher.OpenRandolfFolder(); err != nil {
			e.log.Warn("failed to open randolf folder", "error", err)
		}
	case RestartRandolf:
		if err := e.launcher.RestartRandolf(); err != nil {
			e.log.Warn("failed to restart randolf", "error", err)
		}
	case Exit:
		e.log.Info("exit command received")
		if e.stop != nil {
			e.stop()
		}
	default:
		e.log.Warn("unknown command kind, ignoring", "kind", cmd.Kind)
	}
}

// closeWindow posts a close request to the foreground window. The window
// may veto the request; Randolf does not wait to find out.
func (e *Engine) closeWindow() {
	h, ok := e.api.ForegroundWindow()
	if !ok {
		e.log.Debug("close window: no foreground window")
		return
	}
	e.api.Close(h)
}

// nearMaximiseWindow snaps the foreground window to the near-maximised
// preset of its current monitor's work area.
func (e *Engine) nearMaximiseWindow() {
	h, ok := e.api.ForegroundWindow()
	if !ok {
		e.log.Debug("near maximise window: no foreground window")
		return
	}
	mon, ok := e.api.MonitorInfoForWindow(h)
	if !ok {
		e.log.Warn("near maximise window: no monitor info for window", "handle", h)
		return
	}
	rect := geometry.NearMaximised(mon.WorkArea, e.margin).Rect()
	e.api.SetPosition(h, rect)
	e.api.SetCursorPosition(rect.Center())
}

// minimiseWindow minimises the foreground window via its WindowPlacement,
// preserving its normal-position rect so it restores to the same place.
func (e *Engine) minimiseWindow() {
	h, ok := e.api.ForegroundWindow()
	if !ok {
		e.log.Debug("minimise window: no foreground window")
		return
	}
	placement, ok := e.api.Placement(h)
	if !ok {
		e.log.Warn("minimise window: no placement for window", "handle", h)
		return
	}
	placement.ShowCmd = window.ShowMinimised
	e.api.SetPlacementAndRepaint(h, placement)
}

// moveWindow snaps the foreground window to the half-screen preset named by
// dir, on its current monitor.
func (e *Engine) moveWindow(dir monitors.Direction) {
	presetName, ok := presetForDirection[dir]
	if !ok {
		e.log.Warn("move window: unsupported direction", "direction", dir)
		return
	}
	h, ok := e.api.ForegroundWindow()
	if !ok {
		e.log.Debug("move window: no foreground window")
		return
	}
	mon, ok := e.api.MonitorInfoForWindow(h)
	if !ok {
		e.log.Warn("move window: no monitor info for window", "handle", h)
		return
	}
	sizing, ok := geometry.PresetByName(presetName, mon.WorkArea, e.margin)
	if !ok {
		e.log.Error("move window: unknown preset name", "preset", presetName)
		return
	}
	rect := sizing.Rect()
	e.api.SetPosition(h, rect)
	e.api.SetCursorPosition(rect.Center())
}

// moveCursor relocates the cursor to the centre of the monitor in dir of
// the monitor it is currently on, if any.
func (e *Engine) moveCursor(dir monitors.Direction) {
	current := e.api.MonitorForPoint(e.api.CursorPosition())
	target, ok := e.api.AllMonitors().GetInDirection(dir, current)
	if !ok {
		e.log.Debug("move cursor: no monitor in direction", "direction", dir)
		return
	}
	e.api.SetCursorPosition(target.Center)
}

// switchWorkspace constructs a fresh WorkspaceGuard, per spec.md §4.8, and
// runs the 8-step switch algorithm through it.
func (e *Engine) switchWorkspace(id identity.PersistentWorkspaceId) {
	guard := workspacemgr.NewGuard(e.manager, e.api)
	if err := guard.SwitchWorkspace(id); err != nil {
		e.log.Error("switch workspace failed", "workspace", id, "error", err)
	}
}

// moveWindowToWorkspace constructs a fresh WorkspaceGuard and runs the
// 6-step move algorithm through it.
func (e *Engine) moveWindowToWorkspace(id identity.PersistentWorkspaceId) {
	guard := workspacemgr.NewGuard(e.manager, e.api)
	if err := guard.MoveWindowToWorkspace(id); err != nil {
		e.log.Error("move window to workspace failed", "workspace", id, "error", err)
	}
}
