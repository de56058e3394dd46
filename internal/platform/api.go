// Package platform is the capability boundary between the core state engine
// and the host window system. Every OS call the core needs lives behind the
// Api interface; Real binds it to X11, Mock is an in-memory test double.
package platform

import (
	"github.com/kimgoetzke/randolf/internal/geometry"
	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/monitors"
	"github.com/kimgoetzke/randolf/internal/window"
)

// Api is the single capability covering every OS call the core needs.
// Recoverable failures are reported as a boolean/zero-value pair rather than
// an error, per the "favour explicit Option returns" design note — only a
// window manager bug, not user action, should ever produce a Go error here.
type Api interface {
	ForegroundWindow() (identity.WindowHandle, bool)
	SetForegroundWindow(h identity.WindowHandle)
	VisibleWindows() []window.Window
	VisibleWindowsWithin(r geometry.Rect) []window.Window
	WindowTitle(h identity.WindowHandle) string
	WindowClass(h identity.WindowHandle) string
	IsMinimised(h identity.WindowHandle) bool
	IsHidden(h identity.WindowHandle) bool
	SetPosition(h identity.WindowHandle, r geometry.Rect)
	Hide(h identity.WindowHandle)
	ShowRestore(w window.Window, wasMinimised bool)
	Maximise(h identity.WindowHandle)
	Close(h identity.WindowHandle)
	Placement(h identity.WindowHandle) (window.Placement, bool)
	SetPlacementAndRepaint(h identity.WindowHandle, p window.Placement)
	CursorPosition() geometry.Point
	SetCursorPosition(p geometry.Point)
	AllMonitors() *monitors.Monitors
	MonitorInfoForMonitor(mh identity.MonitorHandle) (monitors.Monitor, bool)
	MonitorInfoForWindow(h identity.WindowHandle) (monitors.Monitor, bool)
	MonitorForWindow(h identity.WindowHandle) identity.MonitorHandle
	MonitorForPoint(p geometry.Point) identity.MonitorHandle
	// ActiveDesktopTag reports a pager-specific virtual-desktop tag for h.
	// Plain X11 has no first-class equivalent of a Virtual Desktop Manager;
	// Real always returns ("", false) — see the Open Question decision in
	// the project's design notes.
	ActiveDesktopTag(h identity.WindowHandle) (string, bool)
}

// IgnoredClasses are window classes that are never considered real
// application windows (desktop shell surfaces).
var IgnoredClasses = map[string]bool{
	"Progman":                   true,
	"WorkerW":                   true,
	"Shell_TrayWnd":             true,
	"Shell_SecondaryTrayWnd":    true,
	"DV2ControlHost":            true,
	"xdg-desktop-portal-dialog": true,
}

// IgnoredTitles are window titles that are never considered real
// application windows.
var IgnoredTitles = map[string]bool{
	"":                         true,
	"Program Manager":          true,
	"Windows Input Experience": true,
	"Settings":                 true,
	"Desktop":                  true,
}

// IsIgnored reports whether a window with the given class and title should
// be excluded from enumeration and foreground-window results.
func IsIgnored(class, title string) bool {
	return IgnoredClasses[class] || IgnoredTitles[title]
}
