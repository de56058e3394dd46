package platform

import (
	"sync"

	"github.com/kimgoetzke/randolf/internal/geometry"
	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/monitors"
	"github.com/kimgoetzke/randolf/internal/window"
)

type mockWindow struct {
	window    window.Window
	class     string
	hidden    bool
	minimised bool
	maximised bool
	placement window.Placement
	monitor   identity.MonitorHandle
}

// Mock is an in-memory Api used by tests. It holds no goroutine-local state;
// create a fresh Mock per test case instead of calling Reset concurrently.
type Mock struct {
	mu            sync.Mutex
	order         []identity.WindowHandle
	windows       map[identity.WindowHandle]*mockWindow
	foreground    identity.WindowHandle
	hasForeground bool
	cursor        geometry.Point
	monitors      *monitors.Monitors
}

// NewMock returns an empty Mock backed by the given monitor topology.
func NewMock(m *monitors.Monitors) *Mock {
	return &Mock{
		windows:  make(map[identity.WindowHandle]*mockWindow),
		monitors: m,
	}
}

// Reset clears all windows, the foreground window and the cursor position.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order = nil
	m.windows = make(map[identity.WindowHandle]*mockWindow)
	m.hasForeground = false
	m.cursor = geometry.Point{}
}

// AddWindow registers a window on the given monitor as visible, normal and
// not minimised. It is a test-setup helper, not part of Api.
func (m *Mock) AddWindow(w window.Window, class string, monitor identity.MonitorHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.windows[w.Handle]; !exists {
		m.order = append(m.order, w.Handle)
	}
	m.windows[w.Handle] = &mockWindow{
		window:    w,
		class:     class,
		monitor:   monitor,
		placement: window.Placement{ShowCmd: window.ShowNormal, NormalPosition: w.Rect},
	}
}

// SetForeground designates handle as the foreground window. It is a
// test-setup helper, not part of Api.
func (m *Mock) SetForeground(handle identity.WindowHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.foreground = handle
	m.hasForeground = true
}

// SetMinimised marks handle as minimised. Test-setup helper.
func (m *Mock) SetMinimised(handle identity.WindowHandle, minimised bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.windows[handle]; ok {
		w.minimised = minimised
	}
}

func (m *Mock) ForegroundWindow() (identity.WindowHandle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasForeground {
		return 0, false
	}
	w, ok := m.windows[m.foreground]
	if !ok || IsIgnored(w.class, w.window.Title) {
		return 0, false
	}
	return m.foreground, true
}

func (m *Mock) SetForegroundWindow(h identity.WindowHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.windows[h]; ok {
		m.foreground = h
		m.hasForeground = true
	}
}

func (m *Mock) VisibleWindows() []window.Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []window.Window
	for _, h := range m.order {
		w := m.windows[h]
		if w.hidden || IsIgnored(w.class, w.window.Title) {
			continue
		}
		out = append(out, w.window)
	}
	return out
}

func (m *Mock) VisibleWindowsWithin(r geometry.Rect) []window.Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []window.Window
	for _, h := range m.order {
		w := m.windows[h]
		if w.hidden || IsIgnored(w.class, w.window.Title) {
			continue
		}
		if rectFullyWithin(w.window.Rect, r) {
			out = append(out, w.window)
		}
	}
	return out
}

func rectFullyWithin(inner, outer geometry.Rect) bool {
	return inner.Left >= outer.Left && inner.Top >= outer.Top && inner.Right <= outer.Right && inner.Bottom <= outer.Bottom
}

func (m *Mock) WindowTitle(h identity.WindowHandle) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.windows[h]; ok {
		return w.window.Title
	}
	return ""
}

func (m *Mock) WindowClass(h identity.WindowHandle) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.windows[h]; ok {
		return w.class
	}
	return ""
}

func (m *Mock) IsMinimised(h identity.WindowHandle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.windows[h]; ok {
		return w.minimised
	}
	return false
}

func (m *Mock) IsHidden(h identity.WindowHandle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.windows[h]; ok {
		return w.hidden
	}
	return false
}

func (m *Mock) SetPosition(h identity.WindowHandle, r geometry.Rect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.windows[h]; ok {
		w.window.Rect = r
		w.placement.NormalPosition = r
	}
}

func (m *Mock) Hide(h identity.WindowHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.windows[h]; ok {
		w.hidden = true
	}
}

func (m *Mock) ShowRestore(win window.Window, wasMinimised bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.windows[win.Handle]; ok {
		w.hidden = false
		w.minimised = wasMinimised
	}
}

func (m *Mock) Maximise(h identity.WindowHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.windows[h]; ok {
		w.maximised = true
		w.placement.ShowCmd = window.ShowMaximised
	}
}

func (m *Mock) Close(h identity.WindowHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.windows, h)
	for i, oh := range m.order {
		if oh == h {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *Mock) Placement(h identity.WindowHandle) (window.Placement, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.windows[h]
	if !ok {
		return window.Placement{}, false
	}
	return w.placement, true
}

func (m *Mock) SetPlacementAndRepaint(h identity.WindowHandle, p window.Placement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.windows[h]; ok {
		w.placement = p
		w.window.Rect = p.NormalPosition
	}
}

func (m *Mock) CursorPosition() geometry.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

func (m *Mock) SetCursorPosition(p geometry.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor = p
}

func (m *Mock) AllMonitors() *monitors.Monitors {
	return m.monitors
}

func (m *Mock) MonitorInfoForMonitor(mh identity.MonitorHandle) (monitors.Monitor, bool) {
	return m.monitors.GetByHandle(mh)
}

func (m *Mock) MonitorInfoForWindow(h identity.WindowHandle) (monitors.Monitor, bool) {
	return m.monitors.GetByHandle(m.MonitorForWindow(h))
}

func (m *Mock) MonitorForWindow(h identity.WindowHandle) identity.MonitorHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.windows[h]; ok {
		return w.monitor
	}
	return 0
}

func (m *Mock) MonitorForPoint(p geometry.Point) identity.MonitorHandle {
	for _, mon := range m.monitors.All() {
		if mon.MonitorArea.Contains(p) {
			return mon.Handle
		}
	}
	return 0
}

func (m *Mock) ActiveDesktopTag(identity.WindowHandle) (string, bool) {
	return "", false
}

var _ Api = (*Mock)(nil)
