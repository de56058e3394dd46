//go:build linux

package platform

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/kimgoetzke/randolf/internal/geometry"
	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/logging"
	"github.com/kimgoetzke/randolf/internal/monitors"
	"github.com/kimgoetzke/randolf/internal/window"
)

// iconicState is the ICCCM WM_STATE value requested via WM_CHANGE_STATE to
// minimise a window.
const iconicState = 3

// Real is the X11-bound Api implementation. All calls are best-effort: a
// failing X11 request is translated into the interface's boolean/zero-value
// contract rather than propagated as an error. Some failures are logged;
// others (geometry, class and state lookups) are dropped silently.
type Real struct {
	conn *xgbutil.XUtil
	Root xproto.Window
	Log  logging.Sink
}

// NewReal connects to the X11 server and initialises the extensions Randolf
// needs (RandR for monitors; the keybind/mousebind modules for hotkeys and
// drag/resize are initialised by their own packages).
func NewReal(log logging.Sink) (*Real, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X11: %w", err)
	}
	if err := randr.Init(xu.Conn()); err != nil {
		return nil, fmt.Errorf("init randr: %w", err)
	}
	return &Real{conn: xu, Root: xu.RootWin(), Log: log}, nil
}

func (r *Real) ForegroundWindow() (identity.WindowHandle, bool) {
	w, err := ewmh.ActiveWindowGet(r.conn)
	if err != nil || w == 0 {
		return 0, false
	}
	h := identity.WindowHandle(w)
	if IsIgnored(r.WindowClass(h), r.WindowTitle(h)) {
		return 0, false
	}
	return h, true
}

func (r *Real) SetForegroundWindow(h identity.WindowHandle) {
	if err := ewmh.ActiveWindowReq(r.conn, xproto.Window(h)); err != nil {
		r.Log.Warn("set foreground window failed", "handle", h, "err", err)
	}
}

func (r *Real) VisibleWindows() []window.Window {
	ids, err := ewmh.ClientListGet(r.conn)
	if err != nil {
		r.Log.Warn("list clients failed", "err", err)
		return nil
	}
	var out []window.Window
	for _, id := range ids {
		h := identity.WindowHandle(id)
		title := r.WindowTitle(h)
		class := r.WindowClass(h)
		if IsIgnored(class, title) || r.IsHidden(h) {
			continue
		}
		out = append(out, window.New(h, title, r.windowRect(id)))
	}
	return out
}

func (r *Real) VisibleWindowsWithin(area geometry.Rect) []window.Window {
	var out []window.Window
	for _, w := range r.VisibleWindows() {
		if rectFullyWithin(w.Rect, area) {
			out = append(out, w)
		}
	}
	return out
}

// windowRect mirrors the teacher's GetGeometry+TranslateCoordinates pair:
// GetGeometry returns width/height relative to the window's own origin,
// TranslateCoordinates gives the screen-relative position.
func (r *Real) windowRect(id xproto.Window) geometry.Rect {
	geom, err := xproto.GetGeometry(r.conn.Conn(), xproto.Drawable(id)).Reply()
	if err != nil {
		return geometry.Rect{}
	}
	translated, err := xproto.TranslateCoordinates(r.conn.Conn(), id, r.Root, 0, 0).Reply()
	if err != nil {
		return geometry.Rect{}
	}
	x, y := int32(translated.DstX), int32(translated.DstY)
	return geometry.NewRect(x, y, x+int32(geom.Width), y+int32(geom.Height))
}

func (r *Real) WindowTitle(h identity.WindowHandle) string {
	if title, err := ewmh.WmNameGet(r.conn, xproto.Window(h)); err == nil && title != "" {
		return title
	}
	title, _ := icccm.WmNameGet(r.conn, xproto.Window(h))
	return title
}

func (r *Real) WindowClass(h identity.WindowHandle) string {
	class, err := icccm.WmClassGet(r.conn, xproto.Window(h))
	if err != nil {
		return ""
	}
	return class.Class
}

func (r *Real) hasState(h identity.WindowHandle, state string) bool {
	states, err := ewmh.WmStateGet(r.conn, xproto.Window(h))
	if err != nil {
		return false
	}
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}

func (r *Real) IsMinimised(h identity.WindowHandle) bool {
	return r.hasState(h, "_NET_WM_STATE_HIDDEN")
}

func (r *Real) IsHidden(h identity.WindowHandle) bool {
	attrs, err := xproto.GetWindowAttributes(r.conn.Conn(), xproto.Window(h)).Reply()
	if err != nil {
		return true
	}
	return attrs.MapState != xproto.MapStateViewable
}

func (r *Real) SetPosition(h identity.WindowHandle, rect geometry.Rect) {
	r.unmaximise(xproto.Window(h))
	x, y, w, ht := int(rect.Left), int(rect.Top), int(rect.Width()), int(rect.Height())
	if err := ewmh.MoveresizeWindow(r.conn, xproto.Window(h), x, y, w, ht); err != nil {
		_ = xproto.ConfigureWindowChecked(r.conn.Conn(), xproto.Window(h),
			xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
			[]uint32{uint32(x), uint32(y), uint32(w), uint32(ht)},
		).Check()
	}
}

func (r *Real) unmaximise(id xproto.Window) {
	states, err := ewmh.WmStateGet(r.conn, id)
	if err != nil {
		return
	}
	for _, s := range states {
		if s == "_NET_WM_STATE_MAXIMIZED_HORZ" || s == "_NET_WM_STATE_MAXIMIZED_VERT" {
			_ = ewmh.WmStateReq(r.conn, id, 0, s)
		}
	}
}

// changeState sends the WM_CHANGE_STATE client message a conforming window
// manager uses to honour iconify/restore requests from a pager.
func (r *Real) changeState(id xproto.Window, state uint32) error {
	atom, err := xproto.InternAtom(r.conn.Conn(), false, uint16(len("WM_CHANGE_STATE")), "WM_CHANGE_STATE").Reply()
	if err != nil {
		return err
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: id,
		Type:   atom.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{state, 0, 0, 0, 0}),
	}
	return xproto.SendEvent(r.conn.Conn(), false, r.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify, string(ev.Bytes()),
	).Check()
}

func (r *Real) Hide(h identity.WindowHandle) {
	if err := r.changeState(xproto.Window(h), iconicState); err != nil {
		r.Log.Warn("hide window failed", "handle", h, "err", err)
	}
}

func (r *Real) ShowRestore(w window.Window, wasMinimised bool) {
	if wasMinimised {
		return
	}
	if err := ewmh.ActiveWindowReq(r.conn, xproto.Window(w.Handle)); err != nil {
		r.Log.Warn("restore window failed", "handle", w.Handle, "err", err)
	}
	r.SetPosition(w.Handle, w.Rect)
}

func (r *Real) Maximise(h identity.WindowHandle) {
	if err := ewmh.WmStateReq(r.conn, xproto.Window(h), 1, "_NET_WM_STATE_MAXIMIZED_HORZ"); err != nil {
		r.Log.Warn("maximise window failed", "handle", h, "err", err)
	}
	_ = ewmh.WmStateReq(r.conn, xproto.Window(h), 1, "_NET_WM_STATE_MAXIMIZED_VERT")
}

// Close requests graceful window close via WM_DELETE_WINDOW; the window may
// veto it by not responding.
func (r *Real) Close(h identity.WindowHandle) {
	deleteAtom, err := xproto.InternAtom(r.conn.Conn(), false, uint16(len("WM_DELETE_WINDOW")), "WM_DELETE_WINDOW").Reply()
	if err != nil {
		r.Log.Warn("close window failed", "handle", h, "err", err)
		return
	}
	protocolsAtom, err := xproto.InternAtom(r.conn.Conn(), false, uint16(len("WM_PROTOCOLS")), "WM_PROTOCOLS").Reply()
	if err != nil {
		r.Log.Warn("close window failed", "handle", h, "err", err)
		return
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(h),
		Type:   protocolsAtom.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(deleteAtom.Atom), 0, 0, 0, 0}),
	}
	if err := xproto.SendEventChecked(r.conn.Conn(), false, xproto.Window(h), xproto.EventMaskNoEvent, string(ev.Bytes())).Check(); err != nil {
		r.Log.Warn("close window failed", "handle", h, "err", err)
	}
}

func (r *Real) Placement(h identity.WindowHandle) (window.Placement, bool) {
	rect := r.windowRect(xproto.Window(h))
	if rect == (geometry.Rect{}) {
		return window.Placement{}, false
	}
	showCmd := window.ShowNormal
	switch {
	case r.IsMinimised(h):
		showCmd = window.ShowMinimised
	case r.hasState(h, "_NET_WM_STATE_MAXIMIZED_HORZ") || r.hasState(h, "_NET_WM_STATE_MAXIMIZED_VERT"):
		showCmd = window.ShowMaximised
	}
	return window.Placement{ShowCmd: showCmd, NormalPosition: rect}, true
}

func (r *Real) SetPlacementAndRepaint(h identity.WindowHandle, p window.Placement) {
	r.SetPosition(h, p.NormalPosition)
	switch p.ShowCmd {
	case window.ShowMinimised:
		r.Hide(h)
	case window.ShowMaximised:
		r.Maximise(h)
	}
}

func (r *Real) CursorPosition() geometry.Point {
	p, err := xproto.QueryPointer(r.conn.Conn(), r.Root).Reply()
	if err != nil {
		return geometry.Point{}
	}
	return geometry.NewPoint(int32(p.RootX), int32(p.RootY))
}

func (r *Real) SetCursorPosition(p geometry.Point) {
	if err := xproto.WarpPointerChecked(r.conn.Conn(), 0, r.Root, 0, 0, 0, 0, int16(p.X), int16(p.Y)).Check(); err != nil {
		r.Log.Warn("set cursor position failed", "err", err)
	}
}

func (r *Real) AllMonitors() *monitors.Monitors {
	resources, err := randr.GetScreenResources(r.conn.Conn(), r.Root).Reply()
	if err != nil {
		r.Log.Error("get screen resources failed", "err", err)
		return monitors.NewMonitors(nil)
	}

	primary, _ := randr.GetOutputPrimary(r.conn.Conn(), r.Root).Reply()

	var all []monitors.Monitor
	for _, output := range resources.Outputs {
		info, err := randr.GetOutputInfo(r.conn.Conn(), output, resources.ConfigTimestamp).Reply()
		if err != nil || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(r.conn.Conn(), info.Crtc, resources.ConfigTimestamp).Reply()
		if err != nil || crtc.Width == 0 || crtc.Height == 0 {
			continue
		}
		area := geometry.NewRect(
			int32(crtc.X), int32(crtc.Y),
			int32(crtc.X)+int32(crtc.Width), int32(crtc.Y)+int32(crtc.Height),
		)
		isPrimary := primary != nil && output == primary.Output
		all = append(all, monitors.NewMonitor(
			string(info.Name), identity.MonitorHandle(output), isPrimary, area, r.workAreaFor(area),
		))
	}

	return monitors.NewMonitors(all)
}

// workAreaFor subtracts the _NET_WORKAREA strut reservation from the full
// monitor area. Randolf only tracks one virtual desktop at a time, so the
// first workarea entry applies to every monitor uniformly.
func (r *Real) workAreaFor(area geometry.Rect) geometry.Rect {
	workareas, err := ewmh.WorkareaGet(r.conn)
	if err != nil || len(workareas) == 0 {
		return area
	}
	wa := workareas[0]
	reserved := geometry.NewRect(int32(wa.X), int32(wa.Y), int32(wa.X+wa.Width), int32(wa.Y+wa.Height))
	return area.Clamp(reserved, 0)
}

func (r *Real) MonitorInfoForMonitor(mh identity.MonitorHandle) (monitors.Monitor, bool) {
	return r.AllMonitors().GetByHandle(mh)
}

func (r *Real) MonitorInfoForWindow(h identity.WindowHandle) (monitors.Monitor, bool) {
	return r.AllMonitors().GetByHandle(r.MonitorForWindow(h))
}

func (r *Real) MonitorForWindow(h identity.WindowHandle) identity.MonitorHandle {
	return r.MonitorForPoint(r.windowRect(xproto.Window(h)).Center())
}

func (r *Real) MonitorForPoint(p geometry.Point) identity.MonitorHandle {
	for _, m := range r.AllMonitors().All() {
		if m.MonitorArea.Contains(p) {
			return m.Handle
		}
	}
	return 0
}

// ActiveDesktopTag always reports absent on plain X11 — see the Open
// Question decision recorded in DESIGN.md.
func (r *Real) ActiveDesktopTag(identity.WindowHandle) (string, bool) {
	return "", false
}

// XUtil exposes the underlying X connection to packages that register their
// own key/mouse grabs directly (internal/hotkeys, internal/dragresize),
// satisfying the x11Accessor interface those packages type-assert for.
func (r *Real) XUtil() *xgbutil.XUtil {
	return r.conn
}

// RootWindow exposes the root window those same grabs are registered on.
func (r *Real) RootWindow() xproto.Window {
	return r.Root
}

// EventLoop runs the X11 event dispatch loop, blocking until the connection
// closes. cmd/randolf runs it on the main goroutine per spec.md §5's thread
// model (the OS input thread).
func (r *Real) EventLoop() {
	xevent.Main(r.conn)
}

// Quit stops a running EventLoop, causing it to return.
func (r *Real) Quit() {
	xevent.Quit(r.conn)
}

var _ Api = (*Real)(nil)
