package workspace

import (
	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/window"
)

// RemoveIfPresent removes every window in wins from the stored lists. No
// code outside tests calls it; the persisted at-most-one-workspace rule is
// kept by persistence.File.RemoveAllExcluding.
func (w *Workspace) RemoveIfPresent(wins []window.Window) {
	if len(wins) == 0 {
		return
	}
	remove := make(map[identity.WindowHandle]bool, len(wins))
	for _, win := range wins {
		remove[win.Handle] = true
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	filteredWindows := w.windows[:0:0]
	for _, win := range w.windows {
		if !remove[win.Handle] {
			filteredWindows = append(filteredWindows, win)
		}
	}
	filteredFlags := w.minimisedFlags[:0:0]
	for _, flag := range w.minimisedFlags {
		if !remove[flag.handle] {
			filteredFlags = append(filteredFlags, flag)
		}
	}
	w.windows = filteredWindows
	w.minimisedFlags = filteredFlags
}
