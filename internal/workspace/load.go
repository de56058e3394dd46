package workspace

import (
	"github.com/kimgoetzke/randolf/internal/platform"
	"github.com/kimgoetzke/randolf/internal/window"
)

// RestoreWindows unhides every stored, non-minimised window and clears the
// stored lists. A length mismatch between the two lists is a data
// inconsistency: it is logged and the operation aborted without repair.
func (w *Workspace) RestoreWindows(api platform.Api) {
	w.mu.Lock()
	if len(w.windows) == 0 && len(w.minimisedFlags) == 0 {
		w.mu.Unlock()
		return
	}
	if len(w.windows) != len(w.minimisedFlags) {
		count, flags := len(w.windows), len(w.minimisedFlags)
		w.mu.Unlock()
		w.log.Error("data inconsistency: window count does not match state count", "workspace", w.ID, "windows", count, "states", flags)
		return
	}
	windows := make([]window.Window, len(w.windows))
	copy(windows, w.windows)
	flags := make([]minimisedFlag, len(w.minimisedFlags))
	copy(flags, w.minimisedFlags)
	w.mu.Unlock()

	restored := 0
	for _, flag := range flags {
		if flag.isMinimised {
			continue
		}
		found := false
		for _, win := range windows {
			if win.Handle == flag.handle {
				found = true
				if api.IsHidden(win.Handle) {
					api.ShowRestore(win, flag.isMinimised)
					restored++
				} else {
					w.log.Warn("attempted to restore window but it is already visible", "handle", win.Handle)
				}
				break
			}
		}
		if !found {
			w.log.Warn("attempted to restore unknown window", "handle", flag.handle)
		}
	}
	w.log.Debug("restored windows on workspace", "count", restored, "workspace", w.ID)
	w.clear()
}
