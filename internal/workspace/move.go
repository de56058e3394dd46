package workspace

import (
	"time"

	"github.com/kimgoetzke/randolf/internal/geometry"
	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/platform"
	"github.com/kimgoetzke/randolf/internal/window"
)

// MoveOrStore moves win onto the desktop if the workspace is active, or
// stores and hides it otherwise, returning which of the two happened.
func (w *Workspace) MoveOrStore(win window.Window, sourceMonitor identity.MonitorHandle, api platform.Api) Action {
	if w.IsActive() {
		w.MoveWindow(win, sourceMonitor, api)
		return Moved
	}
	w.StoreAndHide(win, sourceMonitor, api)
	return Stored
}

// MoveWindow places win on the desktop, adjusting its rect first if it is
// arriving from a different monitor. When the monitor changes, SetPosition
// is called once, paused on briefly, then called again unconditionally,
// giving the window time to settle at the right DPI on its new monitor.
func (w *Workspace) MoveWindow(win window.Window, sourceMonitor identity.MonitorHandle, api platform.Api) {
	win = w.adjustRectForMonitorChange(win, sourceMonitor, api)
	if sourceMonitor != w.Monitor.Handle {
		api.SetPosition(win.Handle, win.Rect)
		time.Sleep(crossMonitorSettleDelay * time.Millisecond)
	}
	api.SetPosition(win.Handle, win.Rect)
	api.SetCursorPosition(win.Rect.Center())
	w.log.Debug("moved window to active workspace", "handle", win.Handle, "workspace", w.ID)
}

// adjustRectForMonitorChange implements the cross-monitor placement
// preservation algorithm: if win is arriving from a different monitor than
// w.Monitor, detect whether its current rect matches one of the five layout
// presets on the source monitor's work area and, if so, reapply the
// matching preset on this workspace's monitor's work area; otherwise centre
// the window on this workspace's work area and clamp it in with a 10px
// margin (not the workspace's own, possibly larger, configured margin).
func (w *Workspace) adjustRectForMonitorChange(win window.Window, sourceMonitor identity.MonitorHandle, api platform.Api) window.Window {
	if sourceMonitor == w.Monitor.Handle {
		return win
	}

	sourceInfo, ok := api.MonitorInfoForMonitor(sourceMonitor)
	if !ok {
		w.log.Error("unable to get monitor info for source monitor, cannot detect preset layout", "monitor", sourceMonitor)
		return w.centerAndClamp(win)
	}

	currentSizing := geometry.SizingFromRect(win.Rect)
	presetName, matched := geometry.MatchPreset(currentSizing, sourceInfo.WorkArea, w.margin)
	if !matched {
		return w.centerAndClamp(win)
	}

	newSizing, _ := geometry.PresetByName(presetName, w.Monitor.WorkArea, w.margin)
	win.Rect = newSizing.Rect()
	w.log.Debug("window is currently near-maximised or snapped, preserving layout across monitors", "handle", win.Handle, "preset", presetName)
	return win
}

func (w *Workspace) centerAndClamp(win window.Window) window.Window {
	width := win.Rect.Width()
	height := win.Rect.Height()
	center := w.Monitor.WorkArea.Center()
	left := center.X - width/2
	top := center.Y - height/2
	win.Rect = geometry.NewRect(left, top, left+width, top+height).Clamp(w.Monitor.WorkArea, centerClampMargin)
	return win
}
