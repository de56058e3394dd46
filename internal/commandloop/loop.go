package commandloop

import (
	"context"

	"github.com/kimgoetzke/randolf/internal/logging"
)

// Handler applies one Command to the core state.
type Handler interface {
	Handle(cmd Command)
}

// Loop is the single consumer of the Command channel fed by the
// HotkeyDispatcher, DragResizeEngine and tray menu. It blocks only on
// channel receive, per spec.md §5's suspension-point model.
type Loop struct {
	commands <-chan Command
	handler  Handler
	log      logging.Sink
}

// New returns a Loop reading from commands and applying each to handler.
func New(commands <-chan Command, handler Handler, log logging.Sink) *Loop {
	return &Loop{commands: commands, handler: handler, log: log}
}

// Run drains commands until ctx is cancelled, the channel is closed, or an
// Exit command is handled. A panicking handler is recovered and logged so
// one bad command cannot take down the loop.
func (l *Loop) Run(ctx context.Context) {
	l.log.Info("command loop started")
	for {
		select {
		case <-ctx.Done():
			l.log.Info("command loop stopped", "reason", "context cancelled")
			return
		case cmd, ok := <-l.commands:
			if !ok {
				l.log.Info("command loop stopped", "reason", "channel closed")
				return
			}
			l.dispatch(cmd)
			if cmd.Kind == Exit {
				l.log.Info("command loop stopped", "reason", "exit command")
				return
			}
		}
	}
}

func (l *Loop) dispatch(cmd Command) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("command handler panicked", "command", cmd.String(), "panic", r)
		}
	}()
	l.log.Debug("dispatching command", "command", cmd.String())
	l.handler.Handle(cmd)
}
