// Package workspace implements the state and invariants of a single
// workspace on a single monitor: windows hidden while it is inactive, live
// on the desktop while it is active.
package workspace

import (
	"fmt"
	"sync"

	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/logging"
	"github.com/kimgoetzke/randolf/internal/monitors"
	"github.com/kimgoetzke/randolf/internal/window"
)

// Action reports what MoveOrStore did, for callers (and tests) that need to
// distinguish the two outcomes.
type Action int

const (
	Moved Action = iota
	Stored
)

func (a Action) String() string {
	if a == Moved {
		return "moved"
	}
	return "stored"
}

// crossMonitorSettleDelay separates the two SetPosition calls issued when a
// window crosses onto a different monitor, giving the window manager time to
// re-render the window at its new DPI before the final rect is applied.
const crossMonitorSettleDelay = 10 // milliseconds, see move.go

// centerClampMargin is the margin used to clamp a centred window into its
// new monitor's work area. It is deliberately not the workspace's own
// (configurable) margin: this path is a best-effort fallback for windows
// that aren't snapped to a known preset, not a placement the user chose.
const centerClampMargin = 10

type minimisedFlag struct {
	handle      identity.WindowHandle
	isMinimised bool
}

// Workspace holds the windows stored (hidden) on behalf of one (monitor,
// workspace index) pair, plus the monitor geometry needed to place windows
// that become active on it. windows and minimisedFlags always have equal
// length and refer to the same handles in the same order; an active
// workspace's stored lists are always empty.
type Workspace struct {
	mu             sync.Mutex
	ID             identity.PersistentWorkspaceId
	Monitor        monitors.Monitor
	windows        []window.Window
	minimisedFlags []minimisedFlag
	margin         int32
	isActive       bool
	log            logging.Sink
}

// New returns a new, empty workspace for the given monitor and margin.
// active determines whether it starts as the monitor's active workspace.
func New(id identity.PersistentWorkspaceId, monitor monitors.Monitor, margin int32, active bool, log logging.Sink) *Workspace {
	return &Workspace{ID: id, Monitor: monitor, margin: margin, isActive: active, log: log}
}

// IsActive reports whether the workspace is currently active.
func (w *Workspace) IsActive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isActive
}

// SetActive flips the active flag.
func (w *Workspace) SetActive(active bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.isActive = active
}

// UpdateMonitorHandle refreshes the volatile monitor handle embedded in
// w.Monitor. Must be called before any other operation after a display
// reconfiguration, since the handle is reissued by the OS on every change.
func (w *Workspace) UpdateMonitorHandle(m monitors.Monitor) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Monitor = m
}

// Windows returns a copy of the stored windows.
func (w *Workspace) Windows() []window.Window {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]window.Window, len(w.windows))
	copy(out, w.windows)
	return out
}

// LargestWindow returns the stored window with the greatest rect area.
func (w *Workspace) LargestWindow() (window.Window, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	var largest window.Window
	found := false
	for _, win := range w.windows {
		if !found || win.Rect.Area() > largest.Rect.Area() {
			largest = win
			found = true
		}
	}
	return largest, found
}

// Stores reports whether handle is currently stored by this workspace.
func (w *Workspace) Stores(handle identity.WindowHandle) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, win := range w.windows {
		if win.Handle == handle {
			return true
		}
	}
	return false
}

func (w *Workspace) clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.windows = nil
	w.minimisedFlags = nil
}

func (w *Workspace) String() string {
	return fmt.Sprintf("Workspace{id: %s, monitor: %s, is_primary: %t}", w.ID, w.Monitor.Handle, w.Monitor.IsPrimary)
}
