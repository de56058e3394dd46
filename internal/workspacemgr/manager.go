// Package workspacemgr owns the full set of workspaces across every
// monitor, initialises them at startup and answers the two commands that
// act across workspace boundaries: SwitchWorkspace and
// MoveWindowToWorkspace.
package workspacemgr

import (
	"sort"
	"sync"

	"github.com/kimgoetzke/randolf/internal/config"
	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/logging"
	"github.com/kimgoetzke/randolf/internal/monitors"
	"github.com/kimgoetzke/randolf/internal/persistence"
	"github.com/kimgoetzke/randolf/internal/workspace"
)

// Manager owns every workspace, keyed by its persistent id's string form.
// It outlives individual commands; WorkspaceGuard is the short-lived object
// bound to a single command execution.
type Manager struct {
	mu          sync.Mutex
	workspaces  map[string]*workspace.Workspace
	persistence *persistence.File
	cfg         *config.Config
	log         logging.Sink
}

// New returns an empty Manager. Call InitialiseWorkspaces before using it.
func New(cfg *config.Config, persist *persistence.File, log logging.Sink) *Manager {
	return &Manager{
		workspaces:  map[string]*workspace.Workspace{},
		persistence: persist,
		cfg:         cfg,
		log:         log,
	}
}

// InitialiseWorkspaces builds one Workspace per (monitor, index) pair: the
// primary monitor gets Config.General.DesktopContainerCount workspaces
// (workspace 1 active, the rest inactive); every non-primary monitor gets
// exactly one workspace, which is always active, since a monitor with only
// one workspace has nothing to switch to.
func (m *Manager) InitialiseWorkspaces(mons *monitors.Monitors) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workspaces = map[string]*workspace.Workspace{}
	for _, mon := range mons.All() {
		count := 1
		if mon.IsPrimary {
			count = m.cfg.General.DesktopContainerCount
		}
		for n := 1; n <= count; n++ {
			id := identity.NewPersistentWorkspaceId(mon.ID, n, mon.IsPrimary)
			active := n == 1
			ws := workspace.New(id, mon, m.cfg.General.WindowMargin, active, m.log)
			m.workspaces[id.Key()] = ws
		}
		m.log.Info("initialised workspaces for monitor", "monitor", mon.ID, "count", count)
	}
}

// workspaceByID returns the Workspace for id, if any.
func (m *Manager) workspaceByID(id identity.PersistentWorkspaceId) (*workspace.Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws, ok := m.workspaces[id.Key()]
	return ws, ok
}

// activeOnMonitor returns the workspace currently active on the monitor
// identified by handle, if any.
func (m *Manager) activeOnMonitor(handle identity.MonitorHandle) (*workspace.Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ws := range m.workspaces {
		if ws.Monitor.Handle == handle && ws.IsActive() {
			return ws, true
		}
	}
	return nil, false
}

// isStoredAnywhere reports whether handle is currently stored by any
// workspace.
func (m *Manager) isStoredAnywhere(handle identity.WindowHandle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ws := range m.workspaces {
		if ws.Stores(handle) {
			return true
		}
	}
	return false
}

// GetOrderedWorkspaceIDs returns every workspace id sorted first by monitor
// center.x ascending (left to right), then by monitor center.y ascending
// (top to bottom), then by workspace index ascending. Used to number
// hotkeys 1..8.
func (m *Manager) GetOrderedWorkspaceIDs() []identity.PersistentWorkspaceId {
	m.mu.Lock()
	defer m.mu.Unlock()

	type entry struct {
		id     identity.PersistentWorkspaceId
		center struct{ x, y int32 }
	}
	entries := make([]entry, 0, len(m.workspaces))
	for _, ws := range m.workspaces {
		e := entry{id: ws.ID}
		e.center.x = ws.Monitor.Center.X
		e.center.y = ws.Monitor.Center.Y
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.center.x != b.center.x {
			return a.center.x < b.center.x
		}
		if a.center.y != b.center.y {
			return a.center.y < b.center.y
		}
		return a.id.Workspace < b.id.Workspace
	})

	out := make([]identity.PersistentWorkspaceId, len(entries))
	for i, e := range entries {
		out[i] = e.id
	}
	return out
}
