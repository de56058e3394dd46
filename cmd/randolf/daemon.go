package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/kimgoetzke/randolf/internal/commandloop"
	"github.com/kimgoetzke/randolf/internal/config"
	"github.com/kimgoetzke/randolf/internal/dragresize"
	"github.com/kimgoetzke/randolf/internal/hotkeys"
	"github.com/kimgoetzke/randolf/internal/launcher"
	"github.com/kimgoetzke/randolf/internal/logging"
	"github.com/kimgoetzke/randolf/internal/persistence"
	"github.com/kimgoetzke/randolf/internal/platform"
	"github.com/kimgoetzke/randolf/internal/workspacemgr"
)

// mainModifierKeysym is the MAIN hotkey modifier every chord in spec.md §4.6
// and the drag/resize engine in §4.7 is built on.
const mainModifierKeysym = "Super_L"

// commandQueueCapacity sizes the channel the HotkeyDispatcher and
// DragResizeEngine feed and the CommandLoop drains. It is large enough that
// a burst of chords never blocks the X11 event goroutine in practice.
const commandQueueCapacity = 64

func runDaemon() error {
	configPath, err := config.DefaultConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadFromPath(configPath)
	if err != nil {
		return err
	}

	logPath, err := logging.DefaultLogPath()
	if err != nil {
		return err
	}
	log, err := logging.NewTee(logPath, cfg.General.FileLoggingEnabled, charmlog.InfoLevel, "randolf")
	if err != nil {
		return err
	}

	log.Info("starting randolf", "config", configPath, "log", logPath)

	backend, err := platform.NewReal(log)
	if err != nil {
		return err
	}

	persistPath, err := persistence.DefaultPath()
	if err != nil {
		return err
	}
	store, err := persistence.Load(persistPath, log)
	if err != nil {
		return err
	}

	manager := workspacemgr.New(cfg, store, log)
	manager.InitialiseWorkspaces(backend.AllMonitors())

	commands := make(chan commandloop.Command, commandQueueCapacity)

	lnch := launcher.New(configPath, log)
	stop := func() { backend.Quit() }
	engine := commandloop.NewEngine(manager, backend, lnch, cfg.General.WindowMargin, log, stop)
	loop := commandloop.New(commands, engine, log)

	hk := hotkeys.NewHandler(backend, commands, log)
	if err := hk.RegisterAll(cfg, manager.GetOrderedWorkspaceIDs); err != nil {
		return err
	}

	if cfg.General.EnableFeaturesUsingMouse {
		delay := time.Duration(cfg.General.DelayBeforeDraggingIsAllowedMs) * time.Millisecond
		if _, err := dragresize.NewX11Engine(backend, mainModifierKeysym, delay, backend, log); err != nil {
			return err
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		loop.Run(ctx)
		return nil
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					log.Info("received SIGHUP, reloading config")
					if _, err := config.LoadFromPath(configPath); err != nil {
						log.Warn("config reload failed", "error", err)
						continue
					}
					log.Warn("config reloaded; hotkey and drag/resize bindings require a restart to take effect")
				case os.Interrupt, syscall.SIGTERM:
					log.Info("shutting down randolf")
					backend.Quit()
					return nil
				}
			}
		}
	})

	log.Info("entering X11 event loop")
	backend.EventLoop()
	signal.Stop(sigCh)
	cancel()

	return g.Wait()
}
