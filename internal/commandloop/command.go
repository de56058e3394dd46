// Package commandloop defines the Command values produced by the
// HotkeyDispatcher and DragResizeEngine and the single-consumer loop that
// applies them to the workspace state.
package commandloop

import (
	"fmt"

	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/monitors"
)

// Kind identifies which action a Command carries out. Most kinds ignore
// most of Command's fields; see the field comments for which kind uses
// which.
type Kind int

const (
	CloseWindow Kind = iota
	NearMaximiseWindow
	MinimiseWindow
	MoveWindow
	MoveCursor
	SwitchWorkspace
	MoveWindowToWorkspace
	OpenApplication
	OpenRandolfFolder
	RestartRandolf
	Exit
)

// Command is a single entry on the CommandLoop's channel. Only the fields
// relevant to Kind are populated by the producer.
type Command struct {
	Kind Kind

	// Direction is set for MoveWindow and MoveCursor.
	Direction monitors.Direction

	// Workspace is set for SwitchWorkspace and MoveWindowToWorkspace.
	Workspace identity.PersistentWorkspaceId

	// Path and AsAdmin are set for OpenApplication.
	Path    string
	AsAdmin bool
}

func (c Command) String() string {
	switch c.Kind {
	case CloseWindow:
		return "close window"
	case NearMaximiseWindow:
		return "near maximise window"
	case MinimiseWindow:
		return "minimise window"
	case MoveWindow:
		return fmt.Sprintf("move window [%s]", c.Direction)
	case MoveCursor:
		return fmt.Sprintf("move cursor [%s]", c.Direction)
	case SwitchWorkspace:
		return fmt.Sprintf("switch to workspace [%s]", c.Workspace)
	case MoveWindowToWorkspace:
		return fmt.Sprintf("move window to workspace [%s]", c.Workspace)
	case OpenApplication:
		return fmt.Sprintf("open [%s] as admin [%t]", c.Path, c.AsAdmin)
	case OpenRandolfFolder:
		return "open randolf folder"
	case RestartRandolf:
		return "restart randolf"
	case Exit:
		return "exit application"
	default:
		return "unknown command"
	}
}
