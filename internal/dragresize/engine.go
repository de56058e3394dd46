package dragresize

import (
	"sync"
	"time"

	"github.com/kimgoetzke/randolf/internal/geometry"
	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/logging"
	"github.com/kimgoetzke/randolf/internal/platform"
	"github.com/kimgoetzke/randolf/internal/window"
)

// MouseHook installs and uninstalls the engine's grab on the left and right
// mouse buttons. Real binds it to xgbutil/mousebind; tests use a recording
// fake so the state machine can be exercised without an X connection.
type MouseHook interface {
	Install() error
	Uninstall()
}

// Timer starts a one-shot callback after a delay and supports cancelling it
// before it fires. Real binds it to time.AfterFunc; tests can fire it
// synchronously by calling the callback the fake captured.
type Timer interface {
	Stop() bool
}

// TimerFactory starts a new Timer that calls fire after d.
type TimerFactory func(d time.Duration, fire func()) Timer

// realTimer adapts *time.Timer to the Timer interface.
type realTimer struct{ t *time.Timer }

func (r realTimer) Stop() bool { return r.t.Stop() }

func newRealTimer(d time.Duration, fire func()) Timer {
	return realTimer{t: time.AfterFunc(d, fire)}
}

// Engine is the modifier-gated drag/resize state machine described in
// spec.md §4.7. It owns no X11 state directly — NewEngine's caller is
// responsible for wiring key and mouse events from the X server into
// HandleModifier{Press,Release}, Handle{Left,Right}ButtonDown,
// HandleButtonUp and HandleMotion.
type Engine struct {
	mu sync.Mutex

	api   platform.Api
	hook  MouseHook
	delay time.Duration
	log   logging.Sink

	newTimer TimerFactory
	timer    Timer

	phase  Phase
	drag   *dragState
	resize *resizeState

	// onDragWindowsChanged mirrors the original DragWindows(active) side
	// signal: it fires true when the mouse hook is installed and false
	// when the modifier is released, for cursor/overlay feedback. Nil is a
	// valid no-op default.
	onDragWindowsChanged func(active bool)
}

// NewEngine returns an idle Engine. delay is the hold duration (from
// config.General.DelayBeforeDraggingIsAllowedMs) before a held modifier
// arms the mouse hook.
func NewEngine(api platform.Api, hook MouseHook, delay time.Duration, log logging.Sink) *Engine {
	return &Engine{
		api:      api,
		hook:     hook,
		delay:    delay,
		log:      log,
		newTimer: newRealTimer,
		phase:    Idle,
	}
}

// OnDragWindowsChanged registers the side-signal callback described above.
func (e *Engine) OnDragWindowsChanged(fn func(active bool)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onDragWindowsChanged = fn
}

// Phase reports the engine's current state, for tests and diagnostics.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// HandleModifierPress transitions Idle -> Armed and starts the install
// timer. A press while already Armed or Active is a no-op: the modifier is
// physically a single key, so auto-repeat must not re-arm it.
func (e *Engine) HandleModifierPress() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != Idle {
		return
	}
	e.phase = Armed
	e.timer = e.newTimer(e.delay, e.onTimerFire)
}

// onTimerFire installs the mouse hook and transitions Armed -> Active. It
// is a no-op if the modifier was released before the timer fired (the
// release handler already cancelled the timer, but a fire can still race
// in before Stop takes effect).
func (e *Engine) onTimerFire() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != Armed {
		return
	}
	if err := e.hook.Install(); err != nil {
		e.log.Warn("drag resize: failed to install mouse hook", "error", err)
		e.phase = Idle
		return
	}
	e.phase = Active
	e.notifyDragWindows(true)
}

// HandleModifierRelease finalises any in-progress drag/resize, uninstalls
// the mouse hook if it was installed, and returns to Idle. Releasing before
// the timer fires simply cancels it.
func (e *Engine) HandleModifierRelease() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	wasActive := e.phase == Active
	e.drag = nil
	e.resize = nil
	e.phase = Idle
	if wasActive {
		e.hook.Uninstall()
		e.notifyDragWindows(false)
	}
}

func (e *Engine) notifyDragWindows(active bool) {
	if e.onDragWindowsChanged != nil {
		e.onDragWindowsChanged(active)
	}
}

// HandleLeftButtonDown locates the top-level window under cursor and, if it
// is movable, captures drag state and transitions to Dragging (Active with
// drag set). Returns true if the event should be swallowed (not passed to
// the next hook in the chain).
func (e *Engine) HandleLeftButtonDown(cursor geometry.Point) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != Active || e.drag != nil || e.resize != nil {
		return false
	}
	h, rect, ok := e.windowUnderLocked(cursor)
	if !ok {
		return false
	}
	e.api.SetForegroundWindow(h)
	e.drag = &dragState{handle: h, cursorStart: cursor, windowStart: geometry.NewPoint(rect.Left, rect.Top)}
	return true
}

// HandleRightButtonDown is HandleLeftButtonDown's resize counterpart: it
// additionally records which corner of the window the cursor is closest to.
func (e *Engine) HandleRightButtonDown(cursor geometry.Point) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != Active || e.drag != nil || e.resize != nil {
		return false
	}
	h, rect, ok := e.windowUnderLocked(cursor)
	if !ok {
		return false
	}
	e.api.SetForegroundWindow(h)
	e.resize = &resizeState{handle: h, cursorStart: cursor, startRect: rect, mode: resizeModeFor(cursor, rect)}
	return true
}

// windowUnderLocked returns the top-level window at cursor and its
// placement rect, if one exists and is movable/resizable. Plain X11 (via
// PlatformApi) carries no WS_THICKFRAME-equivalent resizable bit, so the
// same check — normal, not minimised or maximised — gates both drag and
// resize. Callers must hold e.mu.
func (e *Engine) windowUnderLocked(cursor geometry.Point) (identity.WindowHandle, geometry.Rect, bool) {
	for _, w := range e.api.VisibleWindows() {
		if !w.Rect.Contains(cursor) {
			continue
		}
		if e.api.IsMinimised(w.Handle) {
			return 0, geometry.Rect{}, false
		}
		placement, ok := e.api.Placement(w.Handle)
		if !ok || placement.ShowCmd == window.ShowMaximised {
			return 0, geometry.Rect{}, false
		}
		return w.Handle, placement.NormalPosition, true
	}
	return 0, geometry.Rect{}, false
}

// HandleMotion applies the in-progress drag or resize, if any, to the
// captured window's position/size.
func (e *Engine) HandleMotion(cursor geometry.Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case e.drag != nil:
		dx := cursor.X - e.drag.cursorStart.X
		dy := cursor.Y - e.drag.cursorStart.Y
		placement, ok := e.api.Placement(e.drag.handle)
		if !ok {
			return
		}
		w := placement.NormalPosition.Width()
		h := placement.NormalPosition.Height()
		x := e.drag.windowStart.X + dx
		y := e.drag.windowStart.Y + dy
		e.api.SetPosition(e.drag.handle, geometry.NewRect(x, y, x+w, y+h))
	case e.resize != nil:
		e.api.SetPosition(e.resize.handle, e.resize.resizedRect(cursor))
	}
}

// HandleButtonUp clears whichever of drag/resize is in progress and returns
// to Active.
func (e *Engine) HandleButtonUp() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drag = nil
	e.resize = nil
}
