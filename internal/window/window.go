// Package window defines the Window value type and the OS placement struct
// used to distinguish minimised/maximised/normal window states.
package window

import (
	"fmt"

	"github.com/kimgoetzke/randolf/internal/geometry"
	"github.com/kimgoetzke/randolf/internal/identity"
)

// Window is a snapshot of a top-level window: its handle, last-observed
// title and rect. Equality is by handle+title+rect, matching the semantics
// the original workspace-membership tests rely on.
type Window struct {
	Handle identity.WindowHandle
	Title  string
	Rect   geometry.Rect
}

// New returns a Window with the given handle, title and rect.
func New(handle identity.WindowHandle, title string, rect geometry.Rect) Window {
	return Window{Handle: handle, Title: title, Rect: rect}
}

// Center returns the center point of the window's rect.
func (w Window) Center() geometry.Point {
	return w.Rect.Center()
}

// TitleTrunc returns the title truncated to 40 runes, for log lines.
func (w Window) TitleTrunc() string {
	r := []rune(w.Title)
	if len(r) <= 40 {
		return w.Title
	}
	return string(r[:40]) + "…"
}

func (w Window) String() string {
	return fmt.Sprintf("%s (%s)", w.Handle, w.TitleTrunc())
}

// ShowCmd mirrors the subset of window show-state flags Randolf needs to
// distinguish: normal, minimised or maximised.
type ShowCmd int

const (
	ShowNormal ShowCmd = iota
	ShowMinimised
	ShowMaximised
)

// Placement is the window-manager-observable placement state of a window:
// whether it is minimised/maximised/normal, plus its minimised and maximised
// positions and the rect it occupies in the normal state. Used to restore a
// window to its pre-hide state.
type Placement struct {
	ShowCmd        ShowCmd
	MinPosition    geometry.Point
	MaxPosition    geometry.Point
	NormalPosition geometry.Rect
}
