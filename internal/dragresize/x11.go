package dragresize

import (
	"fmt"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/kimgoetzke/randolf/internal/geometry"
	"github.com/kimgoetzke/randolf/internal/logging"
	"github.com/kimgoetzke/randolf/internal/platform"
)

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// x11MouseHook implements MouseHook with a whole-pointer grab on the root
// window: once installed, every button press/release and pointer motion is
// delivered to root regardless of which window the cursor sits over, which
// is the X11 analogue of a process-wide mouse hook.
type x11MouseHook struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

func (h x11MouseHook) Install() error {
	status, err := mousebind.GrabPointer(h.xu, h.root, 0, 0)
	if err != nil {
		return fmt.Errorf("failed to grab pointer: %w", err)
	}
	if !status {
		return fmt.Errorf("pointer grab was not granted")
	}
	return nil
}

func (h x11MouseHook) Uninstall() {
	mousebind.UngrabPointer(h.xu)
}

// NewX11Engine wires an Engine to backend's X connection: it binds the MAIN
// modifier's keysym to arm/disarm the state machine and connects the
// pointer-grab mouse hook that Active installs on the install-timer firing.
func NewX11Engine(backend any, mainKeysym string, delay time.Duration, api platform.Api, log logging.Sink) (*Engine, error) {
	var xu *xgbutil.XUtil
	var root xproto.Window
	if accessor, ok := backend.(x11Accessor); ok {
		xu = accessor.XUtil()
		root = accessor.RootWindow()
	}
	if xu == nil {
		return nil, fmt.Errorf("backend does not expose x11 internals")
	}

	engine := NewEngine(api, x11MouseHook{xu: xu, root: root}, delay, log)

	keycodes := keybind.StrToKeycodes(xu, mainKeysym)
	if len(keycodes) == 0 {
		return nil, fmt.Errorf("no keycode found for modifier keysym %q", mainKeysym)
	}

	if err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		engine.HandleModifierPress()
	}).Connect(xu, root, mainKeysym, true); err != nil {
		return nil, fmt.Errorf("failed to grab modifier key press: %w", err)
	}
	if err := keybind.KeyReleaseFun(func(xu *xgbutil.XUtil, ev xevent.KeyReleaseEvent) {
		engine.HandleModifierRelease()
	}).Connect(xu, root, mainKeysym, true); err != nil {
		return nil, fmt.Errorf("failed to grab modifier key release: %w", err)
	}

	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		cursor := geometry.NewPoint(int32(ev.RootX), int32(ev.RootY))
		switch ev.Detail {
		case 1:
			engine.HandleLeftButtonDown(cursor)
		case 3:
			engine.HandleRightButtonDown(cursor)
		}
	}).Connect(xu, root)

	xevent.ButtonReleaseFun(func(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		engine.HandleButtonUp()
	}).Connect(xu, root)

	xevent.MotionNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		engine.HandleMotion(geometry.NewPoint(int32(ev.RootX), int32(ev.RootY)))
	}).Connect(xu, root)

	return engine, nil
}
