package workspace

import (
	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/platform"
	"github.com/kimgoetzke/randolf/internal/window"
)

// StoreAndHide stores win and hides it, unless it is already stored or
// currently minimised (a minimised window is left alone: restoring it later
// would un-minimise it, which is not what the user asked for).
func (w *Workspace) StoreAndHide(win window.Window, sourceMonitor identity.MonitorHandle, api platform.Api) {
	w.mu.Lock()
	for _, existing := range w.windows {
		if existing.Handle == win.Handle {
			w.mu.Unlock()
			w.log.Warn("window already stored in workspace, ignoring", "handle", win.Handle, "workspace", w.ID)
			return
		}
	}
	w.mu.Unlock()

	if api.IsMinimised(win.Handle) {
		w.log.Debug("window is minimised, ignoring for workspace", "handle", win.Handle, "workspace", w.ID)
		return
	}

	win = w.adjustRectForMonitorChange(win, sourceMonitor, api)
	api.Hide(win.Handle)

	w.mu.Lock()
	w.minimisedFlags = append(w.minimisedFlags, minimisedFlag{handle: win.Handle, isMinimised: false})
	w.windows = append(w.windows, win)
	w.mu.Unlock()
	w.log.Debug("stored and hid window", "handle", win.Handle, "workspace", w.ID)
}

// StoreAndHideWindows clears any previously stored windows and stores+hides
// each of wins in turn, replacing the workspace's whole stored set.
func (w *Workspace) StoreAndHideWindows(wins []window.Window, sourceMonitor identity.MonitorHandle, api platform.Api) {
	w.clear()
	for _, win := range wins {
		w.StoreAndHide(win, sourceMonitor, api)
	}
}
