// Package launcher spawns child processes on behalf of OpenApplication
// hotkeys and the two process-lifecycle tray menu actions.
package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/kimgoetzke/randolf/internal/logging"
)

// Launcher spawns application and lifecycle commands. Non-admin launches
// exec the path directly; admin launches go through pkexec, the X11
// desktop's privileged-spawn mechanism (the port of the original's
// PowerShell "Start-Process -Verb RunAs").
type Launcher struct {
	configPath string
	log        logging.Sink
}

// New returns a Launcher. configPath is the file whose parent directory
// OpenRandolfFolder opens.
func New(configPath string, log logging.Sink) *Launcher {
	return &Launcher{configPath: configPath, log: log}
}

// Launch spawns the executable at path, detached from Randolf's own
// process group so it survives Randolf exiting.
func (l *Launcher) Launch(path string, asAdmin bool) error {
	if path == "" {
		l.log.Warn("launch: path to executable is empty")
		return nil
	}

	var cmd *exec.Cmd
	if asAdmin {
		cmd = exec.Command("pkexec", path)
	} else {
		cmd = exec.Command(path)
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %q: %w", path, err)
	}
	l.log.Debug("launched application", "path", path, "as_admin", asAdmin)
	return nil
}

// RestartRandolf re-executes the current binary with its original
// arguments and exits the current process once the replacement has
// started.
func (l *Launcher) RestartRandolf() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve own executable: %w", err)
	}
	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to restart: %w", err)
	}
	l.log.Info("restarting randolf", "pid", cmd.Process.Pid)
	os.Exit(0)
	return nil
}

// OpenRandolfFolder opens the configuration directory in the desktop's
// default file manager via xdg-open.
func (l *Launcher) OpenRandolfFolder() error {
	dir := filepath.Dir(l.configPath)
	cmd := exec.Command("xdg-open", dir)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %q: %w", dir, err)
	}
	return nil
}
