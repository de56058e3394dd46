package identity

import (
	"fmt"
	"strconv"
	"strings"
)

// PersistentWorkspaceId identifies a workspace in a form that is stable
// across restarts and display reconfiguration: it is keyed by the monitor's
// stable output name rather than its volatile handle.
type PersistentWorkspaceId struct {
	MonitorID   string
	Workspace   int
	IsOnPrimary bool
}

// NewPersistentWorkspaceId returns a PersistentWorkspaceId for the given
// monitor output name, 1-based workspace index and primary-monitor flag.
func NewPersistentWorkspaceId(monitorID string, workspace int, isOnPrimary bool) PersistentWorkspaceId {
	return PersistentWorkspaceId{MonitorID: monitorID, Workspace: workspace, IsOnPrimary: isOnPrimary}
}

// IsSameMonitor reports whether id and other refer to the same monitor.
func (id PersistentWorkspaceId) IsSameMonitor(other PersistentWorkspaceId) bool {
	return id.MonitorID == other.MonitorID
}

// IsSameWorkspace reports whether id and other have the same workspace index,
// irrespective of monitor.
func (id PersistentWorkspaceId) IsSameWorkspace(other PersistentWorkspaceId) bool {
	return id.Workspace == other.Workspace
}

// Key returns the "<monitor_id>|<workspace>|<is_on_primary>" string used both
// as the persistence file's map key and as the Display form.
func (id PersistentWorkspaceId) Key() string {
	return fmt.Sprintf("%s|%d|%t", id.MonitorID, id.Workspace, id.IsOnPrimary)
}

func (id PersistentWorkspaceId) String() string {
	return "wsp#" + id.Key()
}

// ParsePersistentWorkspaceId parses the "<monitor_id>|<workspace>|<bool>" key
// form. It rejects any key that does not split into exactly 3 segments, per
// the persistence file's schema-stability requirement.
func ParsePersistentWorkspaceId(key string) (PersistentWorkspaceId, error) {
	parts := strings.Split(key, "|")
	if len(parts) != 3 {
		return PersistentWorkspaceId{}, fmt.Errorf("invalid workspace id %q: expected 3 segments, got %d", key, len(parts))
	}
	workspace, err := strconv.Atoi(parts[1])
	if err != nil {
		return PersistentWorkspaceId{}, fmt.Errorf("invalid workspace id %q: %w", key, err)
	}
	isOnPrimary, err := strconv.ParseBool(parts[2])
	if err != nil {
		return PersistentWorkspaceId{}, fmt.Errorf("invalid workspace id %q: %w", key, err)
	}
	return PersistentWorkspaceId{MonitorID: parts[0], Workspace: workspace, IsOnPrimary: isOnPrimary}, nil
}

// TransientWorkspaceId additionally carries the monitor's volatile handle.
// It is only valid for the duration of the command execution that resolved
// it from a PersistentWorkspaceId.
type TransientWorkspaceId struct {
	MonitorID     string
	MonitorHandle MonitorHandle
	Workspace     int
}

// IsSameMonitor reports whether id and other refer to the same monitor.
func (id TransientWorkspaceId) IsSameMonitor(other TransientWorkspaceId) bool {
	return id.MonitorHandle == other.MonitorHandle
}

// Persistent returns the persistent form of id, given whether its monitor is
// the primary one.
func (id TransientWorkspaceId) Persistent(isOnPrimary bool) PersistentWorkspaceId {
	return NewPersistentWorkspaceId(id.MonitorID, id.Workspace, isOnPrimary)
}

func (id TransientWorkspaceId) String() string {
	return fmt.Sprintf("wsp#%s|%d@%s", id.MonitorID, id.Workspace, id.MonitorHandle)
}
