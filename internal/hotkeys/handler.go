// Package hotkeys registers Randolf's global key chords with X11 and turns
// every matching key-press event into a Command sent on the CommandLoop's
// channel.
package hotkeys

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/kimgoetzke/randolf/internal/commandloop"
	"github.com/kimgoetzke/randolf/internal/config"
	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/logging"
	"github.com/kimgoetzke/randolf/internal/monitors"
)

// maxWorkspaceDigits is the highest workspace ordinal reachable by a digit
// chord; spec.md §4.6 assigns only 1..8 and asks that the rest be skipped
// with a warning.
const maxWorkspaceDigits = 8

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// OrderedWorkspaces returns the current digit-to-workspace binding, per
// WorkspaceManager.GetOrderedWorkspaceIDs. Hotkey registration calls it once
// at startup; re-arranging monitors afterwards does not re-register chords.
type OrderedWorkspaces func() []identity.PersistentWorkspaceId

// Handler registers Randolf's global chords and dispatches matching events
// as Command values.
type Handler struct {
	xu       *xgbutil.XUtil
	root     xproto.Window
	commands chan<- commandloop.Command
	log      logging.Sink
}

var ignoreModsOnce sync.Once

// NewHandler creates a Handler bound to backend's X connection and the
// channel the CommandLoop reads from.
func NewHandler(backend any, commands chan<- commandloop.Command, log logging.Sink) *Handler {
	var xu *xgbutil.XUtil
	var root xproto.Window
	if accessor, ok := backend.(x11Accessor); ok {
		xu = accessor.XUtil()
		root = accessor.RootWindow()
	}

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Handler{xu: xu, root: root, commands: commands, log: log}
}

// RegisterAll registers every chord in spec.md §4.6: cursor/window movement,
// close/maximise/minimise, the workspace digit bindings derived from
// orderedWorkspaces, and the user-defined application launchers in
// cfg.Hotkey. It returns the first registration error encountered.
func (h *Handler) RegisterAll(cfg *config.Config, orderedWorkspaces OrderedWorkspaces) error {
	if err := h.registerCursorChords(); err != nil {
		return err
	}
	if err := h.registerMoveChords(); err != nil {
		return err
	}
	if err := h.registerFunc("Mod4-Shift-q", func() {
		h.send(commandloop.Command{Kind: commandloop.CloseWindow})
	}); err != nil {
		return fmt.Errorf("failed to register close window hotkey: %w", err)
	}
	if err := h.registerFunc("Mod4-backslash", func() {
		h.send(commandloop.Command{Kind: commandloop.NearMaximiseWindow})
	}); err != nil {
		return fmt.Errorf("failed to register near maximise hotkey: %w", err)
	}
	if err := h.registerFunc("Mod4-Shift-backslash", func() {
		h.send(commandloop.Command{Kind: commandloop.MinimiseWindow})
	}); err != nil {
		return fmt.Errorf("failed to register minimise hotkey: %w", err)
	}
	if err := h.registerWorkspaceDigits(orderedWorkspaces()); err != nil {
		return err
	}
	if err := h.registerApplicationHotkeys(cfg.Hotkey); err != nil {
		return err
	}
	return nil
}

var cursorChords = map[string]monitors.Direction{
	"Mod4-Left":  monitors.Left,
	"Mod4-Right": monitors.Right,
	"Mod4-Up":    monitors.Up,
	"Mod4-Down":  monitors.Down,
}

func (h *Handler) registerCursorChords() error {
	for seq, dir := range cursorChords {
		dir := dir
		if err := h.registerFunc(seq, func() {
			h.send(commandloop.Command{Kind: commandloop.MoveCursor, Direction: dir})
		}); err != nil {
			return fmt.Errorf("failed to register move cursor hotkey %q: %w", seq, err)
		}
	}
	return nil
}

var moveChords = map[string]monitors.Direction{
	"Mod4-Shift-Left":  monitors.Left,
	"Mod4-Shift-h":     monitors.Left,
	"Mod4-Shift-Right": monitors.Right,
	"Mod4-Shift-l":     monitors.Right,
	"Mod4-Shift-Up":    monitors.Up,
	"Mod4-Shift-k":     monitors.Up,
	"Mod4-Shift-Down":  monitors.Down,
	"Mod4-Shift-j":     monitors.Down,
}

func (h *Handler) registerMoveChords() error {
	for seq, dir := range moveChords {
		dir := dir
		if err := h.registerFunc(seq, func() {
			h.send(commandloop.Command{Kind: commandloop.MoveWindow, Direction: dir})
		}); err != nil {
			return fmt.Errorf("failed to register move window hotkey %q: %w", seq, err)
		}
	}
	return nil
}

// registerWorkspaceDigits binds Mod4-1..8 to SwitchWorkspace(nth) and
// Mod4-Shift-1..8 to MoveWindowToWorkspace(nth), in the order reported by
// orderedWorkspaces. Anything past the eighth workspace is skipped with a
// warning, per spec.md §4.6.
func (h *Handler) registerWorkspaceDigits(ids []identity.PersistentWorkspaceId) error {
	if len(ids) > maxWorkspaceDigits {
		h.log.Warn("more workspaces than hotkey digits, extra workspaces have no binding",
			"workspace_count", len(ids), "max_digits", maxWorkspaceDigits)
	}
	limit := len(ids)
	if limit > maxWorkspaceDigits {
		limit = maxWorkspaceDigits
	}
	for i := 0; i < limit; i++ {
		id := ids[i]
		digit := i + 1
		switchSeq := fmt.Sprintf("Mod4-%d", digit)
		if err := h.registerFunc(switchSeq, func() {
			h.send(commandloop.Command{Kind: commandloop.SwitchWorkspace, Workspace: id})
		}); err != nil {
			return fmt.Errorf("failed to register switch workspace hotkey %q: %w", switchSeq, err)
		}
		moveSeq := fmt.Sprintf("Mod4-Shift-%d", digit)
		if err := h.registerFunc(moveSeq, func() {
			h.send(commandloop.Command{Kind: commandloop.MoveWindowToWorkspace, Workspace: id})
		}); err != nil {
			return fmt.Errorf("failed to register move window to workspace hotkey %q: %w", moveSeq, err)
		}
	}
	return nil
}

// registerApplicationHotkeys binds Mod4-<key> for every user-defined
// launcher in the configuration file.
func (h *Handler) registerApplicationHotkeys(hotkeys []config.Hotkey) error {
	for _, hk := range hotkeys {
		hk := hk
		seq := fmt.Sprintf("Mod4-%s", hk.Hotkey)
		if err := h.registerFunc(seq, func() {
			h.send(commandloop.Command{Kind: commandloop.OpenApplication, Path: hk.Path, AsAdmin: hk.ExecuteAsAdmin})
		}); err != nil {
			return fmt.Errorf("failed to register application hotkey %q (%s): %w", seq, hk.Name, err)
		}
	}
	return nil
}

// send blocks until the CommandLoop accepts cmd. The channel is sized to
// never fill under normal use (see cmd/randolf), so this never stalls the
// X11 event-dispatch goroutine in practice; it only guarantees the FIFO
// ordering spec.md §5 requires instead of silently dropping commands.
func (h *Handler) send(cmd commandloop.Command) {
	h.commands <- cmd
}

func (h *Handler) registerFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
